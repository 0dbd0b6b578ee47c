package mvvm

import (
	"fmt"
	"strings"
)

// PathStep is one level of a Path: the tag and row of a child, and the
// identifier of the child that occupied it when the path was captured.
type PathStep struct {
	Tag        string
	Row        int
	Identifier string
}

// Path addresses an item by its structural position from the model root.
// The root itself has the empty path.
//
// Commands hold Paths instead of item pointers, and resolve them right
// before acting. Resolution fails if any step is out of range, or the slot
// is now a tombstone or a different item.
type Path []PathStep

// PathFromItem walks from item up to the topmost ancestor
func PathFromItem(item *SessionItem) Path {
	var path Path
	for current := item; current != nil && current.parent != nil; current = current.parent {
		tagrow := current.parent.TagRowOfItem(current)
		path = append(path, PathStep{Tag: tagrow.Tag, Row: tagrow.Row, Identifier: current.id})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// ItemFromPath resolves path from the root of model
func ItemFromPath(model *SessionModel, path Path) (*SessionItem, error) {
	if model == nil {
		return nil, fmt.Errorf("%w: nil model", ErrResolution)
	}
	current := model.RootItem()
	for i, step := range path {
		if !current.IsTag(step.Tag) {
			return nil, fmt.Errorf("%w: step %d of %s, no tag '%s'", ErrResolution, i, path, step.Tag)
		}
		next := current.GetItem(step.Tag, step.Row)
		if next == nil {
			return nil, fmt.Errorf("%w: step %d of %s, no item at row %d", ErrResolution, i, path, step.Row)
		} else if step.Identifier != "" && next.id != step.Identifier {
			return nil, fmt.Errorf("%w: step %d of %s, item %s was replaced by %s", ErrResolution, i, path, step.Identifier, next.id)
		}
		current = next
	}
	return current, nil
}

// IsEmpty returns true for the path of the root item
func (p Path) IsEmpty() bool {
	return len(p) == 0
}

// Parent returns the path with the last step removed
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return append(Path(nil), p[:len(p)-1]...)
}

func (p Path) String() string {
	if len(p) == 0 {
		return "/"
	}
	parts := make([]string, len(p))
	for i, step := range p {
		parts[i] = fmt.Sprintf("%s[%d]", step.Tag, step.Row)
	}
	return "/" + strings.Join(parts, "/")
}
