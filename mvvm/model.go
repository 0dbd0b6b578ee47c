package mvvm

import (
	"fmt"

	"go.uber.org/zap"
)

// RootTag is the only tag of a model's root item
const RootTag = "rootTag"

// SessionModel owns a tree of SessionItem under a root item. All
// structural and data changes made through the model go through commands,
// are notified through the ModelMapper and, when enabled, are recorded on
// the UndoStack.
//
// SessionModel is not safe for concurrent use.
type SessionModel struct {
	modelType string
	catalogue *ItemCatalogue
	mapper    *ModelMapper
	root      *SessionItem
	pool      map[string]*SessionItem
	undoStack *UndoStack
	undoLimit int
	log       *zap.Logger
}

// ModelOption configures a SessionModel at construction
type ModelOption func(*SessionModel)

// WithCatalogue sets the catalogue used to create items by model type
func WithCatalogue(c *ItemCatalogue) ModelOption {
	return func(m *SessionModel) {
		m.catalogue = c
	}
}

func WithLogger(l *zap.Logger) ModelOption {
	return func(m *SessionModel) {
		if l != nil {
			m.log = l
		}
	}
}

// WithUndoLimit enables undo/redo, keeping at most limit commands. A limit
// of 0 is unlimited.
func WithUndoLimit(limit int) ModelOption {
	return func(m *SessionModel) {
		m.undoLimit = limit
		m.undoStack = NewUndoStack(limit, nil)
	}
}

func NewSessionModel(modelType string, opts ...ModelOption) *SessionModel {
	m := &SessionModel{
		modelType: modelType,
		pool:      make(map[string]*SessionItem),
		log:       zap.NewNop(),
	}
	m.mapper = newModelMapper(m)
	for _, opt := range opts {
		opt(m)
	}
	if m.catalogue == nil {
		m.catalogue = NewItemCatalogue()
	}
	m.log = m.log.With(zap.String("model", modelType))
	if m.undoStack != nil {
		m.undoStack.log = m.log
	}

	m.root = newRootItem()
	m.root.attach(m)
	return m
}

func newRootItem() *SessionItem {
	root := NewSessionItem(BaseType)
	root.RegisterTag(UniversalTag(RootTag), true)
	root.data[RoleDisplay] = "root"
	return root
}

func (m *SessionModel) ModelType() string {
	return m.modelType
}

func (m *SessionModel) RootItem() *SessionItem {
	return m.root
}

func (m *SessionModel) Mapper() *ModelMapper {
	return m.mapper
}

func (m *SessionModel) Catalogue() *ItemCatalogue {
	return m.catalogue
}

func (m *SessionModel) Logger() *zap.Logger {
	return m.log
}

// TopItems returns the children of the root item
func (m *SessionModel) TopItems() []*SessionItem {
	return m.root.Children()
}

// FindItem returns the item of the model with the identifier, or nil
func (m *SessionModel) FindItem(identifier string) *SessionItem {
	return m.pool[identifier]
}

// SetUndoRedoEnabled creates or drops the undo stack. Dropping it
// discards the recorded history.
func (m *SessionModel) SetUndoRedoEnabled(value bool) {
	if value && m.undoStack == nil {
		m.undoStack = NewUndoStack(m.undoLimit, m.log)
	} else if !value {
		m.undoStack = nil
	}
}

// UndoStack returns the undo stack, or nil if undo/redo is disabled
func (m *SessionModel) UndoStack() *UndoStack {
	return m.undoStack
}

func (m *SessionModel) registerItem(item *SessionItem) {
	if existing, exists := m.pool[item.id]; exists && existing != item {
		m.log.Warn("duplicate item identifier", zap.String("identifier", item.id))
	}
	m.pool[item.id] = item
}

func (m *SessionModel) unregisterItem(item *SessionItem) {
	if m.pool[item.id] == item {
		delete(m.pool, item.id)
	}
}

func (m *SessionModel) process(cmd Command) error {
	if m.undoStack != nil {
		return m.undoStack.Push(cmd)
	}
	return cmd.Execute()
}

func (m *SessionModel) checkItem(item *SessionItem) error {
	if item == nil {
		return fmt.Errorf("%w: nil item", ErrConfiguration)
	} else if item.model != m {
		return fmt.Errorf("%w: item %s doesn't belong to model '%s'", ErrConfiguration, item.id, m.modelType)
	}
	return nil
}

// resolveParent checks parent and maps nil to the root item
func (m *SessionModel) resolveParent(parent *SessionItem) (*SessionItem, error) {
	if parent == nil {
		return m.root, nil
	}
	return parent, m.checkItem(parent)
}

// normalizeTagRow replaces an empty tag with the default tag of parent
func normalizeTagRow(parent *SessionItem, tagrow TagRow) (TagRow, error) {
	if tagrow.Tag == "" {
		tagrow.Tag = parent.DefaultTag()
	}
	if !parent.IsTag(tagrow.Tag) {
		return tagrow, fmt.Errorf("%w: %s has no tag '%s'", ErrConfiguration, parent, tagrow.Tag)
	}
	return tagrow, nil
}

// InsertNewItem creates an item of modelType through the catalogue and
// inserts it into parent at tagrow. A nil parent means the root item.
func (m *SessionModel) InsertNewItem(modelType string, parent *SessionItem, tagrow TagRow) (*SessionItem, error) {
	factory, err := m.catalogue.Factory(modelType)
	if err != nil {
		return nil, err
	}
	return m.InsertItem(factory, parent, tagrow)
}

// InsertItem inserts an item made by factory into parent at tagrow. The
// model keeps ownership of the item.
func (m *SessionModel) InsertItem(factory ItemFactory, parent *SessionItem, tagrow TagRow) (*SessionItem, error) {
	parent, err := m.resolveParent(parent)
	if err != nil {
		return nil, err
	}
	if _, err := normalizeTagRow(parent, tagrow); err != nil {
		return nil, err
	}

	cmd := NewInsertItemCommand(m, factory, parent, tagrow)
	if err := m.process(cmd); err != nil {
		return nil, err
	} else if cmd.IsObsolete() {
		return nil, fmt.Errorf("%w: %s refused", ErrConfiguration, cmd.Description())
	}
	return cmd.Result(), nil
}

// CopyItem inserts a deep copy of item, with new identifiers, into parent
// at tagrow.
func (m *SessionModel) CopyItem(item *SessionItem, parent *SessionItem, tagrow TagRow) (*SessionItem, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: nil item", ErrConfiguration)
	}
	parent, err := m.resolveParent(parent)
	if err != nil {
		return nil, err
	}
	if _, err := normalizeTagRow(parent, tagrow); err != nil {
		return nil, err
	}

	cmd := NewCopyItemCommand(m, ItemToRecord(item), parent, tagrow)
	if err := m.process(cmd); err != nil {
		return nil, err
	} else if cmd.IsObsolete() {
		return nil, fmt.Errorf("%w: %s refused", ErrConfiguration, cmd.Description())
	}
	return cmd.Result(), nil
}

// RemoveItem removes and destroys the child of parent at tagrow
func (m *SessionModel) RemoveItem(parent *SessionItem, tagrow TagRow) error {
	parent, err := m.resolveParent(parent)
	if err != nil {
		return err
	}
	if tagrow, err = normalizeTagRow(parent, tagrow); err != nil {
		return err
	}
	if parent.GetItem(tagrow.Tag, tagrow.Row) == nil {
		return fmt.Errorf("%w: no item to remove at %s of %s", ErrConfiguration, tagrow, parent)
	} else if !parent.tags.CanTakeItem(tagrow) {
		return fmt.Errorf("%w: item at %s of %s can't be removed", ErrConfiguration, tagrow, parent)
	}

	return m.process(NewRemoveItemCommand(m, parent, tagrow))
}

// MoveItem moves item to newParent at tagrow. Moving an item into itself or
// one of its descendants fails before anything changes.
//
// When item stays in the same tag, tagrow.Row is its row after the move.
func (m *SessionModel) MoveItem(item *SessionItem, newParent *SessionItem, tagrow TagRow) error {
	if err := m.checkItem(item); err != nil {
		return err
	} else if item == m.root {
		return fmt.Errorf("%w: can't move the root item", ErrConfiguration)
	}
	newParent, err := m.resolveParent(newParent)
	if err != nil {
		return err
	}
	if newParent == item || item.IsAncestorOf(newParent) {
		return fmt.Errorf("%w: can't move %s into itself or its descendant", ErrConfiguration, item)
	}
	if tagrow, err = normalizeTagRow(newParent, tagrow); err != nil {
		return err
	}
	if !canMoveItem(item, newParent, tagrow) {
		return fmt.Errorf("%w: can't move %s to %s of %s", ErrConfiguration, item, tagrow, newParent)
	}

	return m.process(NewMoveItemCommand(m, item, newParent, tagrow))
}

func canMoveItem(item, newParent *SessionItem, tagrow TagRow) bool {
	info, ok := newParent.tags.TagInfo(tagrow.Tag)
	if !ok || !info.IsValidChild(item.modelType) {
		return false
	}

	oldParent, oldTagRow := item.parent, item.TagRow()
	if !oldParent.tags.CanTakeItem(oldTagRow) {
		return false
	}
	count := newParent.ItemCount(tagrow.Tag)
	if oldParent == newParent && oldTagRow.Tag == tagrow.Tag {
		return tagrow.Row >= -1 && tagrow.Row < count
	}
	if info.MaximumReached(count) {
		return false
	}
	return tagrow.Row >= -1 && tagrow.Row <= count
}

// SetData sets data of an item of this model and returns true if the value
// changed.
func (m *SessionModel) SetData(item *SessionItem, role int, value interface{}) (bool, error) {
	if err := m.checkItem(item); err != nil {
		return false, err
	}
	if _, err := item.checkData(role, value); err != nil {
		return false, err
	}

	cmd := NewSetValueCommand(m, item, role, value)
	if err := m.process(cmd); err != nil {
		return false, err
	}
	return cmd.Result(), nil
}

// Data returns data of item for role
func (m *SessionModel) Data(item *SessionItem, role int) interface{} {
	return item.Data(role)
}

// Clear removes all items, replacing the root
func (m *SessionModel) Clear() {
	m.ResetRoot(newRootItem())
}

// ResetRoot replaces the root item with the detached root, destroying the
// current tree. The undo history is cleared, and ModelReset is notified.
func (m *SessionModel) ResetRoot(root *SessionItem) error {
	if root == nil {
		return fmt.Errorf("%w: nil root", ErrConfiguration)
	} else if root.parent != nil || root.model != nil {
		return fmt.Errorf("%w: new root %s is not detached", ErrConfiguration, root)
	}

	if m.root != nil {
		m.destroyItem(m.root)
	}
	m.root = root
	m.root.attach(m)
	if m.undoStack != nil {
		m.undoStack.Clear()
	}
	m.mapper.callOnModelReset()
	return nil
}

// Snapshot returns the persisted form of the whole model
func (m *SessionModel) Snapshot() ModelRecord {
	return ModelRecord{Model: m.modelType, Root: ItemToRecord(m.root)}
}

// Restore replaces the content of the model with record. If the record
// doesn't match the model, nothing is changed.
func (m *SessionModel) Restore(record ModelRecord) error {
	root, err := m.PrepareRestore(record)
	if err != nil {
		return err
	}
	return m.ResetRoot(root)
}

// PrepareRestore builds the detached root for record without changing the
// model. Passing it to ResetRoot completes the restore.
func (m *SessionModel) PrepareRestore(record ModelRecord) (*SessionItem, error) {
	if record.Model != m.modelType {
		return nil, fmt.Errorf("%w: record of model '%s' can't restore model '%s'", ErrRestore, record.Model, m.modelType)
	}
	root, err := ItemFromRecord(m.catalogue, record.Root, false)
	if err != nil {
		m.log.Warn("restore rejected", zap.Error(err))
		return nil, fmt.Errorf("%w: model '%s': %w", ErrRestore, m.modelType, err)
	}
	return root, nil
}

// Destroy notifies ModelDestroyed and destroys the tree. The model must not
// be used afterwards.
func (m *SessionModel) Destroy() {
	m.mapper.callOnModelDestroyed()
	if m.root != nil {
		m.destroyItem(m.root)
		m.root = nil
	}
	m.undoStack = nil
}

// insertIntern places child and notifies ItemInserted
func (m *SessionModel) insertIntern(child, parent *SessionItem, tagrow TagRow) (bool, error) {
	ok, err := parent.insertChild(child, tagrow)
	if !ok || err != nil {
		return ok, err
	}
	m.mapper.callOnItemInserted(parent, parent.TagRowOfItem(child))
	return true, nil
}

// removeIntern notifies AboutToRemoveItem, takes the child at tagrow,
// destroys it and notifies ItemRemoved
func (m *SessionModel) removeIntern(parent *SessionItem, tagrow TagRow) error {
	if !parent.tags.CanTakeItem(tagrow) || parent.GetItem(tagrow.Tag, tagrow.Row) == nil {
		return fmt.Errorf("%w: no removable item at %s of %s", ErrResolution, tagrow, parent)
	}

	m.mapper.callOnAboutToRemoveItem(parent, tagrow)
	child := parent.tags.TakeItem(tagrow)
	m.destroyItem(child)
	m.mapper.callOnItemRemoved(parent, tagrow)
	return nil
}

// moveIntern takes item from its parent and places it into newParent at
// tagrow, returning its new position. Notifications are those of a removal
// followed by an insertion. The item and its mappers stay attached.
func (m *SessionModel) moveIntern(item, newParent *SessionItem, tagrow TagRow) (TagRow, error) {
	oldParent, oldTagRow := item.parent, item.TagRow()
	if !oldParent.tags.CanTakeItem(oldTagRow) {
		return invalidTagRow, fmt.Errorf("%w: %s can't be taken from %s", ErrConfiguration, item, oldParent)
	}

	m.mapper.callOnAboutToRemoveItem(oldParent, oldTagRow)
	oldParent.tags.TakeItem(oldTagRow)
	item.parent = nil
	m.mapper.callOnItemRemoved(oldParent, oldTagRow)

	if ok, err := newParent.tags.InsertItem(item, tagrow); !ok || err != nil {
		// Put it back where it was
		oldParent.tags.InsertItem(item, oldTagRow)
		item.parent = oldParent
		m.mapper.callOnItemInserted(oldParent, oldTagRow)
		if err == nil {
			err = fmt.Errorf("%w: %s doesn't fit %s of %s", ErrConfiguration, item, tagrow, newParent)
		}
		return invalidTagRow, err
	}
	item.parent = newParent
	newTagRow := newParent.TagRowOfItem(item)
	m.mapper.callOnItemInserted(newParent, newTagRow)
	return newTagRow, nil
}

// setDataIntern applies a value and notifies DataChanged if it changed. A
// nil value with present false removes the role.
func (m *SessionModel) setDataIntern(item *SessionItem, role int, value interface{}, present bool) (bool, error) {
	var changed bool
	if present {
		var err error
		if changed, err = item.setDataIntern(role, value); err != nil {
			return false, err
		}
	} else if item.HasData(role) {
		delete(item.data, role)
		changed = true
	}

	if changed {
		m.mapper.callOnDataChange(item, role)
	}
	return changed, nil
}

// destroyItem destroys the subtree of item depth-first. Each item with an
// ItemMapper notifies its own destruction; children leave tombstones in
// their dying parent.
func (m *SessionModel) destroyItem(item *SessionItem) {
	for _, child := range item.tags.AllItems() {
		if child == nil {
			continue
		}
		m.destroyItem(child)
		item.tags.ItemDeleted(child)
	}

	if item.mapper != nil {
		item.mapper.callOnItemDestroy()
		item.mapper.release()
		item.mapper = nil
	}
	m.unregisterItem(item)
	item.model = nil
	item.parent = nil
}
