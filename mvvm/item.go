package mvvm

import (
	"fmt"
	"sort"

	uuid "github.com/satori/go.uuid"
)

// BaseType is the model type of a plain SessionItem
const BaseType = "SessionItem"

// SessionItem is a node of the session tree. It holds data by role, owns
// its children through tags, and knows its parent and model.
//
// Items only belong to a model after being inserted through SessionModel
// operations; everything done through the model is notified and undoable.
// The raw tag operations on SessionItem (InsertItem, TakeItem) assemble
// items before they enter a model. They are not notified, and are refused
// once the item belongs to a model.
type SessionItem struct {
	id        string
	modelType string
	data      map[int]interface{}
	tags      *SessionItemTags
	parent    *SessionItem
	model     *SessionModel
	mapper    *ItemMapper
}

func newIdentifier() string {
	u, _ := uuid.NewV4()
	return u.String()
}

// NewSessionItem returns a detached item with a new unique identifier
func NewSessionItem(modelType string) *SessionItem {
	if modelType == "" {
		modelType = BaseType
	}
	item := &SessionItem{
		id:        newIdentifier(),
		modelType: modelType,
		data:      make(map[int]interface{}),
		tags:      NewSessionItemTags(),
	}
	item.data[RoleDisplay] = modelType
	return item
}

func (item *SessionItem) Identifier() string {
	return item.id
}

func (item *SessionItem) ModelType() string {
	return item.modelType
}

func (item *SessionItem) Parent() *SessionItem {
	return item.parent
}

// Model returns the owning model, or nil for detached items
func (item *SessionItem) Model() *SessionModel {
	return item.model
}

func (item *SessionItem) DisplayName() string {
	name, _ := item.data[RoleDisplay].(string)
	return name
}

func (item *SessionItem) SetDisplayName(name string) error {
	_, err := item.SetData(RoleDisplay, name)
	return err
}

// Data returns the value stored for role, or nil
func (item *SessionItem) Data(role int) interface{} {
	return copyVariant(item.data[role])
}

func (item *SessionItem) HasData(role int) bool {
	_, exists := item.data[role]
	return exists
}

// Roles returns all roles holding data, in ascending order
func (item *SessionItem) Roles() []int {
	roles := make([]int, 0, len(item.data))
	for role := range item.data {
		roles = append(roles, role)
	}
	sort.Ints(roles)
	return roles
}

// SetData stores value for role and returns true if the stored value
// changed. When the item belongs to a model, the change goes through the
// model and is notified and undoable.
//
// A role keeps the type of its first value; setting a value of another
// type fails with ErrVariantType.
func (item *SessionItem) SetData(role int, value interface{}) (bool, error) {
	if item.model != nil {
		return item.model.SetData(item, role, value)
	}
	return item.setDataIntern(role, value)
}

// Value returns the RoleData value
func (item *SessionItem) Value() interface{} {
	return item.Data(RoleData)
}

// SetValue is SetData for RoleData
func (item *SessionItem) SetValue(value interface{}) error {
	_, err := item.SetData(RoleData, value)
	return err
}

func (item *SessionItem) checkData(role int, value interface{}) (interface{}, error) {
	v, typeName, err := normalizeVariant(value)
	if err != nil {
		return nil, err
	}
	if old, exists := item.data[role]; exists {
		if oldType := VariantTypeName(old); oldType != typeName {
			return nil, fmt.Errorf("%w: role %d holds '%s', can't set '%s'", ErrVariantType, role, oldType, typeName)
		}
	}
	return v, nil
}

func (item *SessionItem) setDataIntern(role int, value interface{}) (bool, error) {
	v, err := item.checkData(role, value)
	if err != nil {
		return false, err
	}
	if old, exists := item.data[role]; exists && variantEqual(old, v) {
		return false, nil
	}
	item.data[role] = copyVariant(v)
	return true, nil
}

// Tags returns the tag set of the item
func (item *SessionItem) Tags() *SessionItemTags {
	return item.tags
}

// RegisterTag adds a tag to the item, see SessionItemTags.RegisterTag
func (item *SessionItem) RegisterTag(info TagInfo, setAsDefault bool) error {
	return item.tags.RegisterTag(info, setAsDefault)
}

func (item *SessionItem) IsTag(name string) bool {
	return item.tags.IsTag(name)
}

func (item *SessionItem) DefaultTag() string {
	return item.tags.DefaultTag()
}

func (item *SessionItem) SetDefaultTag(name string) error {
	return item.tags.SetDefaultTag(name)
}

// InsertItem places child at tagrow without notification; see the type
// documentation. The child must be detached, and so must item: children of
// items in a model are inserted with SessionModel.InsertItem.
func (item *SessionItem) InsertItem(child *SessionItem, tagrow TagRow) (bool, error) {
	if item.model != nil {
		return false, fmt.Errorf("%w: %s belongs to a model, insert through the model", ErrConfiguration, item)
	}
	return item.insertChild(child, tagrow)
}

func (item *SessionItem) insertChild(child *SessionItem, tagrow TagRow) (bool, error) {
	if child == nil {
		return false, fmt.Errorf("%w: can't insert nil item", ErrConfiguration)
	} else if child.parent != nil || child.model != nil {
		return false, fmt.Errorf("%w: item %s already has a parent", ErrConfiguration, child.id)
	} else if child == item || child.IsAncestorOf(item) {
		return false, fmt.Errorf("%w: item %s can't become its own descendant", ErrConfiguration, child.id)
	}

	if ok, err := item.tags.InsertItem(child, tagrow); !ok || err != nil {
		return ok, err
	}
	child.parent = item
	if item.model != nil {
		child.attach(item.model)
	}
	return true, nil
}

// TakeItem removes the child at tagrow without notification and returns
// it detached. It returns nil if there is no such child, or if item belongs
// to a model; those children are removed with SessionModel.RemoveItem.
func (item *SessionItem) TakeItem(tagrow TagRow) *SessionItem {
	if item.model != nil {
		return nil
	}
	child := item.tags.TakeItem(tagrow)
	if child == nil {
		return nil
	}
	child.parent = nil
	return child
}

func (item *SessionItem) GetItem(tag string, row int) *SessionItem {
	return item.tags.GetItem(tag, row)
}

func (item *SessionItem) GetItems(tag string) []*SessionItem {
	return item.tags.GetItems(tag)
}

// Children returns all children in global order, tombstones excluded
func (item *SessionItem) Children() []*SessionItem {
	var children []*SessionItem
	for _, child := range item.tags.AllItems() {
		if child != nil {
			children = append(children, child)
		}
	}
	return children
}

func (item *SessionItem) ChildrenCount() int {
	return len(item.Children())
}

func (item *SessionItem) ItemCount(tag string) int {
	return item.tags.ItemCount(tag)
}

func (item *SessionItem) TagRowOfItem(child *SessionItem) TagRow {
	return item.tags.TagRowOfItem(child)
}

// TagRow returns the item's own position within its parent
func (item *SessionItem) TagRow() TagRow {
	if item.parent == nil {
		return invalidTagRow
	}
	return item.parent.TagRowOfItem(item)
}

// IsAncestorOf returns true if other is somewhere below item
func (item *SessionItem) IsAncestorOf(other *SessionItem) bool {
	if other == nil {
		return false
	}
	for p := other.parent; p != nil; p = p.parent {
		if p == item {
			return true
		}
	}
	return false
}

// Property returns RoleData of the item in a single property tag
func (item *SessionItem) Property(tag string) interface{} {
	if !item.tags.IsSinglePropertyTag(tag) {
		return nil
	}
	if child := item.GetItem(tag, 0); child != nil {
		return child.Value()
	}
	return nil
}

// SetProperty sets RoleData of the item in a single property tag
func (item *SessionItem) SetProperty(tag string, value interface{}) error {
	if !item.tags.IsSinglePropertyTag(tag) {
		return fmt.Errorf("%w: '%s' is not a property tag of %s", ErrConfiguration, tag, item.modelType)
	}
	child := item.GetItem(tag, 0)
	if child == nil {
		return fmt.Errorf("%w: property '%s' of %s is missing", ErrConfiguration, tag, item.modelType)
	}
	return child.SetValue(value)
}

// Mapper returns the item-level mapper, which requires that the item
// belongs to a model.
func (item *SessionItem) Mapper() (*ItemMapper, error) {
	if item.model == nil {
		return nil, fmt.Errorf("%w: item %s doesn't belong to a model", ErrConfiguration, item.id)
	}
	if item.mapper == nil {
		item.mapper = newItemMapper(item)
	}
	return item.mapper, nil
}

// attach sets the model of item and its subtree, registering identifiers.
func (item *SessionItem) attach(m *SessionModel) {
	item.model = m
	m.registerItem(item)
	for _, child := range item.Children() {
		child.attach(m)
	}
}

func (item *SessionItem) detach() {
	for _, child := range item.Children() {
		child.detach()
	}
	if item.mapper != nil {
		item.mapper.release()
		item.mapper = nil
	}
	item.model.unregisterItem(item)
	item.model = nil
}

func (item *SessionItem) String() string {
	return fmt.Sprintf("%s(%s)", item.modelType, item.id)
}
