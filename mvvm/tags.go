package mvvm

import "fmt"

type tagContainer struct {
	info  TagInfo
	items []*SessionItem
}

func (c *tagContainer) indexOf(item *SessionItem) int {
	for i, it := range c.items {
		if it == item {
			return i
		}
	}
	return -1
}

// SessionItemTags stores the children of an item, partitioned by tag.
//
// Tags keep their registration order, and the global order of children
// (AllItems) is the concatenation of all tags in that order. Deleted
// children leave a tombstone (nil) in their slot, so row numbers held
// elsewhere remain stable.
type SessionItemTags struct {
	containers []*tagContainer
	defaultTag string
}

// NewSessionItemTags returns an empty tag set
func NewSessionItemTags() *SessionItemTags {
	return &SessionItemTags{}
}

func (t *SessionItemTags) container(name string) *tagContainer {
	if name == "" {
		name = t.defaultTag
	}
	for _, c := range t.containers {
		if c.info.Name == name {
			return c
		}
	}
	return nil
}

// RegisterTag adds a new tag. The first registered tag, or any tag with
// setAsDefault, becomes the default tag.
func (t *SessionItemTags) RegisterTag(info TagInfo, setAsDefault bool) error {
	if info.Name == "" {
		return fmt.Errorf("%w: tag name must not be empty", ErrConfiguration)
	} else if t.IsTag(info.Name) {
		return fmt.Errorf("%w: tag '%s' is already registered", ErrConfiguration, info.Name)
	}

	t.containers = append(t.containers, &tagContainer{info: info.clone()})
	if setAsDefault || len(t.containers) == 1 {
		t.defaultTag = info.Name
	}
	return nil
}

// IsTag returns true if a tag with the name exists
func (t *SessionItemTags) IsTag(name string) bool {
	for _, c := range t.containers {
		if c.info.Name == name {
			return true
		}
	}
	return false
}

func (t *SessionItemTags) DefaultTag() string {
	return t.defaultTag
}

// SetDefaultTag changes the default tag to an existing tag
func (t *SessionItemTags) SetDefaultTag(name string) error {
	if name != "" && !t.IsTag(name) {
		return fmt.Errorf("%w: can't set unknown tag '%s' as default", ErrConfiguration, name)
	}
	t.defaultTag = name
	return nil
}

// TagInfo returns the descriptor of a tag; the empty name means the default tag
func (t *SessionItemTags) TagInfo(name string) (TagInfo, bool) {
	c := t.container(name)
	if c == nil {
		return TagInfo{}, false
	}
	return c.info.clone(), true
}

// Tags returns all tag descriptors in registration order
func (t *SessionItemTags) Tags() []TagInfo {
	infos := make([]TagInfo, 0, len(t.containers))
	for _, c := range t.containers {
		infos = append(infos, c.info.clone())
	}
	return infos
}

// ItemCount returns the number of slots in a tag, tombstones included
func (t *SessionItemTags) ItemCount(tag string) int {
	if c := t.container(tag); c != nil {
		return len(c.items)
	}
	return 0
}

// CanInsertItem reports whether InsertItem would succeed. An unknown tag
// is reported as false rather than as an error.
func (t *SessionItemTags) CanInsertItem(item *SessionItem, tagrow TagRow) bool {
	c := t.container(tagrow.Tag)
	if c == nil || item == nil {
		return false
	}
	if tagrow.Row < -1 || tagrow.Row > len(c.items) {
		return false
	}
	return !c.info.MaximumReached(len(c.items)) && c.info.IsValidChild(item.ModelType())
}

// InsertItem places item at the tag-local row. It returns an error only for
// an unknown tag; capacity, type and range violations return false.
func (t *SessionItemTags) InsertItem(item *SessionItem, tagrow TagRow) (bool, error) {
	c := t.container(tagrow.Tag)
	if c == nil {
		return false, fmt.Errorf("%w: no such tag '%s'", ErrConfiguration, tagrow.Tag)
	}
	if !t.CanInsertItem(item, tagrow) {
		return false, nil
	}

	row := tagrow.Row
	if row == -1 {
		row = len(c.items)
	}
	c.items = append(c.items, nil)
	copy(c.items[row+1:], c.items[row:])
	c.items[row] = item
	return true, nil
}

// CanTakeItem reports whether TakeItem would return an item
func (t *SessionItemTags) CanTakeItem(tagrow TagRow) bool {
	c := t.container(tagrow.Tag)
	if c == nil || tagrow.Row < 0 || tagrow.Row >= len(c.items) || c.items[tagrow.Row] == nil {
		return false
	}
	return !c.info.MinimumReached(len(c.items))
}

// TakeItem removes the child at the tag-local row and returns it. nil is
// returned, and nothing changes, if there is no such child, the row is a
// tombstone or the tag is at its minimum size.
func (t *SessionItemTags) TakeItem(tagrow TagRow) *SessionItem {
	if !t.CanTakeItem(tagrow) {
		return nil
	}
	c := t.container(tagrow.Tag)
	item := c.items[tagrow.Row]
	c.items = append(c.items[:tagrow.Row], c.items[tagrow.Row+1:]...)
	return item
}

// GetItem returns the child at the tag-local row, or nil
func (t *SessionItemTags) GetItem(tag string, row int) *SessionItem {
	c := t.container(tag)
	if c == nil || row < 0 || row >= len(c.items) {
		return nil
	}
	return c.items[row]
}

// GetItems returns a copy of the children of one tag
func (t *SessionItemTags) GetItems(tag string) []*SessionItem {
	c := t.container(tag)
	if c == nil {
		return nil
	}
	return append([]*SessionItem(nil), c.items...)
}

// AllItems returns a copy of all children in global order
func (t *SessionItemTags) AllItems() []*SessionItem {
	var items []*SessionItem
	for _, c := range t.containers {
		items = append(items, c.items...)
	}
	return items
}

// TagRowOfItem returns the position of a child, or {"", -1} if item is nil
// or is not a child in this tag set.
func (t *SessionItemTags) TagRowOfItem(item *SessionItem) TagRow {
	if item == nil {
		return invalidTagRow
	}
	for _, c := range t.containers {
		if i := c.indexOf(item); i >= 0 {
			return TagRow{Tag: c.info.Name, Row: i}
		}
	}
	return invalidTagRow
}

// ItemDeleted replaces item with a tombstone. Counts are unchanged.
func (t *SessionItemTags) ItemDeleted(item *SessionItem) {
	if item == nil {
		return
	}
	for _, c := range t.containers {
		if i := c.indexOf(item); i >= 0 {
			c.items[i] = nil
			return
		}
	}
}

// IsSinglePropertyTag returns true if tag exists and holds exactly one item
func (t *SessionItemTags) IsSinglePropertyTag(tag string) bool {
	c := t.container(tag)
	return c != nil && c.info.IsSinglePropertyTag()
}
