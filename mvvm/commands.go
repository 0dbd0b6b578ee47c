package mvvm

import "fmt"

// InsertItemCommand inserts a new item into a parent. The first execution
// builds the item with a factory; after an undo the removed subtree is
// kept as a record, and redo rebuilds it with the same identifiers.
type InsertItemCommand struct {
	abstractItemCommand
	build      func() (*SessionItem, error)
	parentPath Path
	tagrow     TagRow
	itemPath   Path
	snapshot   *ItemRecord
	result     *SessionItem
}

// NewInsertItemCommand creates a command inserting an item made by factory
func NewInsertItemCommand(model *SessionModel, factory ItemFactory, parent *SessionItem, tagrow TagRow) *InsertItemCommand {
	build := func() (*SessionItem, error) {
		item := factory()
		if item == nil {
			return nil, fmt.Errorf("%w: factory returned nil", ErrConfiguration)
		}
		return item, nil
	}
	return newInsertItemCommand(model, build, parent, tagrow)
}

// NewCopyItemCommand creates a command inserting a copy of record, with new
// identifiers.
func NewCopyItemCommand(model *SessionModel, record ItemRecord, parent *SessionItem, tagrow TagRow) *InsertItemCommand {
	build := func() (*SessionItem, error) {
		return buildItem(bareItem, record, true)
	}
	c := newInsertItemCommand(model, build, parent, tagrow)
	c.description = describeInsert(record.ModelType, tagrow)
	return c
}

func newInsertItemCommand(model *SessionModel, build func() (*SessionItem, error), parent *SessionItem, tagrow TagRow) *InsertItemCommand {
	c := &InsertItemCommand{
		build:      build,
		parentPath: PathFromItem(parent),
		tagrow:     tagrow,
	}
	c.model = model
	c.impl = c
	c.description = describeInsert("", tagrow)
	return c
}

func describeInsert(modelType string, tagrow TagRow) string {
	return fmt.Sprintf("New item type '%s' tag:'%s', row:%d", modelType, tagrow.Tag, tagrow.Row)
}

// Result returns the inserted item while the command is executed
func (c *InsertItemCommand) Result() *SessionItem {
	return c.result
}

func (c *InsertItemCommand) executeCommand() error {
	parent, err := c.resolve(c.parentPath)
	if err != nil {
		return err
	}

	var child *SessionItem
	if c.snapshot != nil {
		child, err = buildItem(bareItem, *c.snapshot, false)
	} else {
		child, err = c.build()
	}
	if err != nil {
		return err
	}
	c.description = describeInsert(child.ModelType(), c.tagrow)

	ok, err := c.model.insertIntern(child, parent, c.tagrow)
	if err != nil {
		return err
	} else if !ok {
		c.SetObsolete(true)
		return nil
	}
	// Undo and redo address the exact slot, and undo the exact item
	c.tagrow = parent.TagRowOfItem(child)
	c.itemPath = PathFromItem(child)
	c.description = describeInsert(child.ModelType(), c.tagrow)
	c.result = child
	return nil
}

func (c *InsertItemCommand) undoCommand() error {
	child, err := c.resolve(c.itemPath)
	if err != nil {
		return err
	}
	parent, tagrow := child.parent, child.TagRow()

	snapshot := ItemToRecord(child)
	c.snapshot = &snapshot
	c.result = nil
	return c.model.removeIntern(parent, tagrow)
}

// RemoveItemCommand removes the child at a position; undo restores the
// serialized subtree, identifiers included.
type RemoveItemCommand struct {
	abstractItemCommand
	parentPath Path
	tagrow     TagRow
	childID    string
	snapshot   *ItemRecord
}

func NewRemoveItemCommand(model *SessionModel, parent *SessionItem, tagrow TagRow) *RemoveItemCommand {
	if tagrow.Tag == "" {
		tagrow.Tag = parent.DefaultTag()
	}
	c := &RemoveItemCommand{
		parentPath: PathFromItem(parent),
		tagrow:     tagrow,
	}
	if child := parent.GetItem(tagrow.Tag, tagrow.Row); child != nil {
		c.childID = child.id
	}
	c.model = model
	c.impl = c
	c.description = fmt.Sprintf("Remove item from tag '%s', row %d", tagrow.Tag, tagrow.Row)
	return c
}

func (c *RemoveItemCommand) executeCommand() error {
	parent, err := c.resolve(c.parentPath)
	if err != nil {
		return err
	}
	child := parent.GetItem(c.tagrow.Tag, c.tagrow.Row)
	if child == nil {
		return fmt.Errorf("'%s': %w: nothing at %s", c.description, ErrResolution, c.tagrow)
	} else if c.childID != "" && child.id != c.childID {
		return fmt.Errorf("'%s': %w: item %s at %s was replaced by %s", c.description, ErrResolution, c.childID, c.tagrow, child.id)
	}

	snapshot := ItemToRecord(child)
	c.snapshot = &snapshot
	c.childID = child.id
	return c.model.removeIntern(parent, c.tagrow)
}

func (c *RemoveItemCommand) undoCommand() error {
	parent, err := c.resolve(c.parentPath)
	if err != nil {
		return err
	}
	child, err := buildItem(bareItem, *c.snapshot, false)
	if err != nil {
		return err
	}
	if ok, err := c.model.insertIntern(child, parent, c.tagrow); err != nil {
		return err
	} else if !ok {
		return fmt.Errorf("'%s': %w: can't restore item at %s", c.description, ErrConfiguration, c.tagrow)
	}
	return nil
}

// SetValueCommand sets one role of an item's data, swapping with the
// previous value on each execute and undo. It is obsolete when the value
// didn't change.
type SetValueCommand struct {
	abstractItemCommand
	itemPath Path
	role     int
	value    interface{}
	present  bool
	result   bool
}

func NewSetValueCommand(model *SessionModel, item *SessionItem, role int, value interface{}) *SetValueCommand {
	c := &SetValueCommand{
		itemPath: PathFromItem(item),
		role:     role,
		value:    value,
		present:  true,
	}
	c.model = model
	c.impl = c
	c.description = fmt.Sprintf("Set value: %v", value)
	return c
}

// Result returns true if the last execution changed the value
func (c *SetValueCommand) Result() bool {
	return c.result
}

func (c *SetValueCommand) swap() (bool, error) {
	item, err := c.resolve(c.itemPath)
	if err != nil {
		return false, err
	}

	old, oldPresent := item.data[c.role]
	old = copyVariant(old)
	changed, err := c.model.setDataIntern(item, c.role, c.value, c.present)
	if err != nil {
		return false, err
	}
	c.value, c.present = old, oldPresent
	return changed, nil
}

func (c *SetValueCommand) executeCommand() error {
	changed, err := c.swap()
	if err != nil {
		return err
	}
	c.result = changed
	c.SetObsolete(!changed)
	return nil
}

func (c *SetValueCommand) undoCommand() error {
	_, err := c.swap()
	return err
}

// MoveItemCommand moves an item to another parent or position. Positions
// are recomputed after every execute and undo, since moving changes the
// paths of the items involved.
type MoveItemCommand struct {
	abstractItemCommand
	itemPath         Path
	targetParentPath Path
	targetTagRow     TagRow
	sourceParentPath Path
	sourceTagRow     TagRow
}

func NewMoveItemCommand(model *SessionModel, item, newParent *SessionItem, tagrow TagRow) *MoveItemCommand {
	if tagrow.Tag == "" {
		tagrow.Tag = newParent.DefaultTag()
	}
	c := &MoveItemCommand{
		itemPath:         PathFromItem(item),
		targetParentPath: PathFromItem(newParent),
		targetTagRow:     tagrow,
	}
	c.model = model
	c.impl = c
	c.description = fmt.Sprintf("Move item '%s' to tag '%s', row %d", item.ModelType(), tagrow.Tag, tagrow.Row)
	return c
}

// move resolves item and destination before changing anything, then moves
// the item and returns it with the parent and position it came from.
func (c *MoveItemCommand) move(parentPath Path, tagrow TagRow) (*SessionItem, *SessionItem, TagRow, error) {
	item, err := c.resolve(c.itemPath)
	if err != nil {
		return nil, nil, invalidTagRow, err
	}
	parent, err := c.resolve(parentPath)
	if err != nil {
		return nil, nil, invalidTagRow, err
	}
	if parent == item || item.IsAncestorOf(parent) {
		return nil, nil, invalidTagRow, fmt.Errorf("'%s': %w: move into own descendant", c.description, ErrConfiguration)
	}

	oldParent, oldTagRow := item.parent, item.TagRow()
	if _, err := c.model.moveIntern(item, parent, tagrow); err != nil {
		return nil, nil, invalidTagRow, err
	}
	c.itemPath = PathFromItem(item)
	return item, oldParent, oldTagRow, nil
}

func (c *MoveItemCommand) executeCommand() error {
	item, oldParent, oldTagRow, err := c.move(c.targetParentPath, c.targetTagRow)
	if err != nil {
		return err
	}
	c.sourceParentPath, c.sourceTagRow = PathFromItem(oldParent), oldTagRow
	c.targetParentPath, c.targetTagRow = PathFromItem(item.parent), item.TagRow()
	return nil
}

func (c *MoveItemCommand) undoCommand() error {
	item, target, _, err := c.move(c.sourceParentPath, c.sourceTagRow)
	if err != nil {
		return err
	}
	c.sourceParentPath = PathFromItem(item.parent)
	c.targetParentPath = PathFromItem(target)
	return nil
}
