package mvvm

type (
	// ItemNameCallback receives an item and a property tag name
	ItemNameCallback func(item *SessionItem, name string)
	// ItemCallback receives a single item
	ItemCallback func(item *SessionItem)
)

// ItemMapper delivers the notifications concerning one item. It is
// layered on the ModelMapper of the item's model, so deactivating the
// model mapper silences item mappers as well.
//
// An item mapper lives as long as its item is in the model; it is released
// when the item is removed or the model is reset.
type ItemMapper struct {
	item   *SessionItem
	model  *SessionModel
	active bool

	onDataChange          callbackList[ItemRoleCallback]
	onPropertyChange      callbackList[ItemNameCallback]
	onChildPropertyChange callbackList[ItemNameCallback]
	onItemInserted        callbackList[ItemTagRowCallback]
	onItemRemoved         callbackList[ItemTagRowCallback]
	onAboutToRemove       callbackList[ItemTagRowCallback]
	onItemDestroy         callbackList[ItemCallback]
}

func newItemMapper(item *SessionItem) *ItemMapper {
	m := &ItemMapper{item: item, model: item.model, active: true}

	mapper := m.model.Mapper()
	mapper.SetOnDataChange(m.processDataChange, m)
	mapper.SetOnItemInserted(func(parent *SessionItem, tagrow TagRow) {
		if parent == m.item {
			m.callTagRow(&m.onItemInserted, tagrow)
		}
	}, m)
	mapper.SetOnItemRemoved(func(parent *SessionItem, tagrow TagRow) {
		if parent == m.item {
			m.callTagRow(&m.onItemRemoved, tagrow)
		}
	}, m)
	mapper.SetOnAboutToRemoveItem(func(parent *SessionItem, tagrow TagRow) {
		if parent == m.item {
			m.callTagRow(&m.onAboutToRemove, tagrow)
		}
	}, m)
	return m
}

// SetOnDataChange is called with (item, role) when data of this item changes
func (m *ItemMapper) SetOnDataChange(f ItemRoleCallback, owner Owner) {
	m.onDataChange.connect(f, owner)
}

// SetOnPropertyChange is called with (item, name) when RoleData of the
// property child in tag 'name' changes.
func (m *ItemMapper) SetOnPropertyChange(f ItemNameCallback, owner Owner) {
	m.onPropertyChange.connect(f, owner)
}

// SetOnChildPropertyChange is called with (child, name) when a property of
// a direct child of this item changes.
func (m *ItemMapper) SetOnChildPropertyChange(f ItemNameCallback, owner Owner) {
	m.onChildPropertyChange.connect(f, owner)
}

func (m *ItemMapper) SetOnItemInserted(f ItemTagRowCallback, owner Owner) {
	m.onItemInserted.connect(f, owner)
}

func (m *ItemMapper) SetOnItemRemoved(f ItemTagRowCallback, owner Owner) {
	m.onItemRemoved.connect(f, owner)
}

func (m *ItemMapper) SetOnAboutToRemoveItem(f ItemTagRowCallback, owner Owner) {
	m.onAboutToRemove.connect(f, owner)
}

// SetOnItemDestroy is called when this item is destroyed, including when an
// ancestor is removed.
func (m *ItemMapper) SetOnItemDestroy(f ItemCallback, owner Owner) {
	m.onItemDestroy.connect(f, owner)
}

func (m *ItemMapper) SetActive(value bool) {
	m.active = value
}

func (m *ItemMapper) Unsubscribe(owner Owner) {
	m.onDataChange.removeClient(owner)
	m.onPropertyChange.removeClient(owner)
	m.onChildPropertyChange.removeClient(owner)
	m.onItemInserted.removeClient(owner)
	m.onItemRemoved.removeClient(owner)
	m.onAboutToRemove.removeClient(owner)
	m.onItemDestroy.removeClient(owner)
}

func (m *ItemMapper) processDataChange(item *SessionItem, role int) {
	if !m.active {
		return
	}

	if item == m.item {
		for _, e := range m.onDataChange.entries {
			e.f(item, role)
		}
	}

	if role != RoleData {
		return
	}
	if parent := item.parent; parent == m.item {
		if tagrow := parent.TagRowOfItem(item); parent.tags.IsSinglePropertyTag(tagrow.Tag) {
			for _, e := range m.onPropertyChange.entries {
				e.f(m.item, tagrow.Tag)
			}
		}
	} else if parent != nil && parent.parent == m.item {
		if tagrow := parent.TagRowOfItem(item); parent.tags.IsSinglePropertyTag(tagrow.Tag) {
			for _, e := range m.onChildPropertyChange.entries {
				e.f(parent, tagrow.Tag)
			}
		}
	}
}

func (m *ItemMapper) callTagRow(list *callbackList[ItemTagRowCallback], tagrow TagRow) {
	if !m.active {
		return
	}
	for _, e := range list.entries {
		e.f(m.item, tagrow)
	}
}

func (m *ItemMapper) callOnItemDestroy() {
	if !m.active || !m.model.Mapper().Active() {
		return
	}
	for _, e := range m.onItemDestroy.entries {
		e.f(m.item)
	}
}

// release disconnects from the model mapper
func (m *ItemMapper) release() {
	m.model.Mapper().Unsubscribe(m)
}
