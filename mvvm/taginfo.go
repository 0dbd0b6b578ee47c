package mvvm

import (
	"fmt"
	"strings"
)

// TagInfo describes a named slot for children of a SessionItem.
//
// Min and Max bound the number of children in the tag; a Max of -1 means
// unlimited. When ModelTypes is empty, children of any model type are
// accepted.
type TagInfo struct {
	Name       string
	Min        int
	Max        int
	ModelTypes []string
}

// UniversalTag returns a tag with unlimited capacity, accepting the given
// model types (or any type when none are given).
func UniversalTag(name string, modelTypes ...string) TagInfo {
	return TagInfo{Name: name, Min: 0, Max: -1, ModelTypes: modelTypes}
}

// PropertyTag returns a tag holding exactly one item of modelType.
func PropertyTag(name, modelType string) TagInfo {
	return TagInfo{Name: name, Min: 1, Max: 1, ModelTypes: []string{modelType}}
}

// IsValidChild returns true if an item of modelType may be placed in this tag.
func (t TagInfo) IsValidChild(modelType string) bool {
	if len(t.ModelTypes) == 0 {
		return true
	}
	for _, name := range t.ModelTypes {
		if name == modelType {
			return true
		}
	}
	return false
}

// MaximumReached returns true when count children already fill the tag
func (t TagInfo) MaximumReached(count int) bool {
	return t.Max != -1 && count >= t.Max
}

// MinimumReached returns true when removing a child would leave fewer than
// Min children.
func (t TagInfo) MinimumReached(count int) bool {
	return t.Min != -1 && count <= t.Min
}

// IsSinglePropertyTag returns true for tags made by PropertyTag
func (t TagInfo) IsSinglePropertyTag() bool {
	return t.Min == 1 && t.Max == 1
}

func (t TagInfo) String() string {
	return fmt.Sprintf("tag '%s' min:%d max:%d types:[%s]", t.Name, t.Min, t.Max, strings.Join(t.ModelTypes, ","))
}

func (t TagInfo) clone() TagInfo {
	t.ModelTypes = append([]string(nil), t.ModelTypes...)
	return t
}

// TagRow is the position of a child: its tag and its row within that tag.
// An empty Tag refers to the default tag; a Row of -1 means append.
type TagRow struct {
	Tag string `json:"tag"`
	Row int    `json:"row"`
}

// Append returns the TagRow appending to tag
func Append(tag string) TagRow {
	return TagRow{Tag: tag, Row: -1}
}

// Next returns the row following t in the same tag
func (t TagRow) Next() TagRow {
	return TagRow{Tag: t.Tag, Row: t.Row + 1}
}

// Prev returns the row preceding t in the same tag
func (t TagRow) Prev() TagRow {
	return TagRow{Tag: t.Tag, Row: t.Row - 1}
}

// IsValid returns false for the position of an item that has no parent
func (t TagRow) IsValid() bool {
	return t.Row >= 0
}

func (t TagRow) String() string {
	return fmt.Sprintf("%s[%d]", t.Tag, t.Row)
}

var invalidTagRow = TagRow{Tag: "", Row: -1}
