package mvvm

// Owner identifies a subscriber to a mapper. Any comparable value works;
// pointers to the subscribing object are the usual choice.
type Owner interface{}

type callbackEntry[F any] struct {
	owner Owner
	f     F
}

// callbackList keeps callbacks in registration order. Removal builds a new
// slice, so a list being iterated is never modified in place.
type callbackList[F any] struct {
	entries []callbackEntry[F]
}

func (l *callbackList[F]) connect(f F, owner Owner) {
	l.entries = append(l.entries, callbackEntry[F]{owner: owner, f: f})
}

func (l *callbackList[F]) removeClient(owner Owner) {
	var kept []callbackEntry[F]
	for _, e := range l.entries {
		if e.owner != owner {
			kept = append(kept, e)
		}
	}
	l.entries = kept
}

func (l *callbackList[F]) len() int {
	return len(l.entries)
}

type (
	// ItemRoleCallback receives an item and the role whose data changed
	ItemRoleCallback func(item *SessionItem, role int)
	// ItemTagRowCallback receives a parent and the position of a child
	ItemTagRowCallback func(parent *SessionItem, tagrow TagRow)
	// ModelCallback receives the model itself
	ModelCallback func(model *SessionModel)
)

// ModelMapper delivers change notifications of a SessionModel to its
// subscribers. Delivery is synchronous and in registration order.
//
// Subscribers must not subscribe or unsubscribe from within a callback.
type ModelMapper struct {
	model  *SessionModel
	active bool

	onDataChange     callbackList[ItemRoleCallback]
	onItemInserted   callbackList[ItemTagRowCallback]
	onItemRemoved    callbackList[ItemTagRowCallback]
	onAboutToRemove  callbackList[ItemTagRowCallback]
	onModelReset     callbackList[ModelCallback]
	onModelDestroyed callbackList[ModelCallback]
}

func newModelMapper(model *SessionModel) *ModelMapper {
	return &ModelMapper{model: model, active: true}
}

// SetOnDataChange is called with (item, role) after item data changes
func (m *ModelMapper) SetOnDataChange(f ItemRoleCallback, owner Owner) {
	m.onDataChange.connect(f, owner)
}

// SetOnItemInserted is called with (parent, tagrow) after a child is inserted
// at tagrow.
func (m *ModelMapper) SetOnItemInserted(f ItemTagRowCallback, owner Owner) {
	m.onItemInserted.connect(f, owner)
}

// SetOnItemRemoved is called with (parent, tagrow) after the child at tagrow
// was removed and destroyed.
func (m *ModelMapper) SetOnItemRemoved(f ItemTagRowCallback, owner Owner) {
	m.onItemRemoved.connect(f, owner)
}

// SetOnAboutToRemoveItem is called with (parent, tagrow) before the child at
// tagrow is removed.
func (m *ModelMapper) SetOnAboutToRemoveItem(f ItemTagRowCallback, owner Owner) {
	m.onAboutToRemove.connect(f, owner)
}

// SetOnModelReset is called after the whole content of the model was replaced
func (m *ModelMapper) SetOnModelReset(f ModelCallback, owner Owner) {
	m.onModelReset.connect(f, owner)
}

// SetOnModelDestroyed is called when the model is destroyed
func (m *ModelMapper) SetOnModelDestroyed(f ModelCallback, owner Owner) {
	m.onModelDestroyed.connect(f, owner)
}

// SetActive enables or disables delivery of all notifications. Callbacks
// stay registered.
func (m *ModelMapper) SetActive(value bool) {
	m.active = value
}

func (m *ModelMapper) Active() bool {
	return m.active
}

// Unsubscribe removes every callback registered by owner
func (m *ModelMapper) Unsubscribe(owner Owner) {
	m.onDataChange.removeClient(owner)
	m.onItemInserted.removeClient(owner)
	m.onItemRemoved.removeClient(owner)
	m.onAboutToRemove.removeClient(owner)
	m.onModelReset.removeClient(owner)
	m.onModelDestroyed.removeClient(owner)
}

// SubscriberCount returns the number of registered callbacks of all kinds
func (m *ModelMapper) SubscriberCount() int {
	return m.onDataChange.len() + m.onItemInserted.len() + m.onItemRemoved.len() +
		m.onAboutToRemove.len() + m.onModelReset.len() + m.onModelDestroyed.len()
}

func (m *ModelMapper) callOnDataChange(item *SessionItem, role int) {
	if !m.active {
		return
	}
	for _, e := range m.onDataChange.entries {
		e.f(item, role)
	}
}

func (m *ModelMapper) callOnItemInserted(parent *SessionItem, tagrow TagRow) {
	if !m.active {
		return
	}
	for _, e := range m.onItemInserted.entries {
		e.f(parent, tagrow)
	}
}

func (m *ModelMapper) callOnItemRemoved(parent *SessionItem, tagrow TagRow) {
	if !m.active {
		return
	}
	for _, e := range m.onItemRemoved.entries {
		e.f(parent, tagrow)
	}
}

func (m *ModelMapper) callOnAboutToRemoveItem(parent *SessionItem, tagrow TagRow) {
	if !m.active {
		return
	}
	for _, e := range m.onAboutToRemove.entries {
		e.f(parent, tagrow)
	}
}

func (m *ModelMapper) callOnModelReset() {
	if !m.active {
		return
	}
	for _, e := range m.onModelReset.entries {
		e.f(m.model)
	}
}

func (m *ModelMapper) callOnModelDestroyed() {
	if !m.active {
		return
	}
	for _, e := range m.onModelDestroyed.entries {
		e.f(m.model)
	}
}
