package standarditems

import (
	"fmt"

	"github.com/CrimsonAS/qmvvm/mvvm"
)

// Model types
const (
	PropertyType      = "Property"
	CompoundType      = "Compound"
	ContainerType     = "Container"
	VectorType        = "Vector"
	FixedBinAxisType  = "FixedBinAxis"
	ViewportAxisType  = "ViewportAxis"
	Data1DType        = "Data1D"
	GraphType         = "Graph"
	GraphViewportType = "GraphViewport"
)

// TagItems is the default tag of containers and viewports
const TagItems = "T_ITEMS"

// NewProperty returns a property item holding value as RoleData
func NewProperty(value interface{}) (*mvvm.SessionItem, error) {
	item := mvvm.NewSessionItem(PropertyType)
	if err := item.SetValue(value); err != nil {
		return nil, err
	}
	return item, nil
}

// NewCompound returns an item without tags, to be filled with AddProperty
func NewCompound() *mvvm.SessionItem {
	return mvvm.NewSessionItem(CompoundType)
}

// AddProperty registers a single property tag called name and puts a
// property holding value in it. The property is displayed as name.
//
// AddProperty builds items; it fails for items that are already in a
// model.
func AddProperty(item *mvvm.SessionItem, name string, value interface{}) (*mvvm.SessionItem, error) {
	if item.Model() != nil {
		return nil, fmt.Errorf("%w: can't add property '%s' to %s, it is in a model", mvvm.ErrConfiguration, name, item)
	}
	property, err := NewProperty(value)
	if err != nil {
		return nil, fmt.Errorf("property '%s': %w", name, err)
	}
	if err := property.SetDisplayName(name); err != nil {
		return nil, err
	}

	if err := item.RegisterTag(mvvm.PropertyTag(name, PropertyType), false); err != nil {
		return nil, err
	}
	if _, err := item.InsertItem(property, mvvm.Append(name)); err != nil {
		return nil, err
	}
	return property, nil
}

// mustAddProperty is AddProperty for factories, whose tags are fixed
func mustAddProperty(item *mvvm.SessionItem, name string, value interface{}) {
	if _, err := AddProperty(item, name, value); err != nil {
		panic(err)
	}
}

// NewContainer returns an item with a single universal tag TagItems
func NewContainer() *mvvm.SessionItem {
	item := mvvm.NewSessionItem(ContainerType)
	item.RegisterTag(mvvm.UniversalTag(TagItems), true)
	return item
}

func floatProperty(item *mvvm.SessionItem, name string) float64 {
	v, _ := item.Property(name).(float64)
	return v
}

func intProperty(item *mvvm.SessionItem, name string) int {
	v, _ := item.Property(name).(int)
	return v
}

func boolProperty(item *mvvm.SessionItem, name string) bool {
	v, _ := item.Property(name).(bool)
	return v
}

func stringProperty(item *mvvm.SessionItem, name string) string {
	v, _ := item.Property(name).(string)
	return v
}

// grouped runs f as one undoable step, if item is in a model with undo
func grouped(item *mvvm.SessionItem, name string, f func() error) error {
	var stack *mvvm.UndoStack
	if model := item.Model(); model != nil {
		stack = model.UndoStack()
	}
	if stack == nil {
		return f()
	}

	stack.BeginMacro(name)
	err := f()
	if endErr := stack.EndMacro(); err == nil {
		err = endErr
	}
	return err
}

// replaceChild puts child as the only item of tag, going through the model
// when parent is in one.
func replaceChild(parent, child *mvvm.SessionItem, tag string) error {
	model := parent.Model()
	if model == nil {
		for parent.ItemCount(tag) > 0 {
			if parent.TakeItem(mvvm.TagRow{Tag: tag, Row: 0}) == nil {
				return fmt.Errorf("%w: can't empty tag '%s' of %s", mvvm.ErrConfiguration, tag, parent)
			}
		}
		ok, err := parent.InsertItem(child, mvvm.Append(tag))
		if err == nil && !ok {
			err = fmt.Errorf("%w: %s doesn't fit tag '%s' of %s", mvvm.ErrConfiguration, child, tag, parent)
		}
		return err
	}

	return grouped(parent, fmt.Sprintf("Replace '%s'", tag), func() error {
		for parent.ItemCount(tag) > 0 {
			if err := model.RemoveItem(parent, mvvm.TagRow{Tag: tag, Row: 0}); err != nil {
				return err
			}
		}
		_, err := model.InsertItem(func() *mvvm.SessionItem { return child }, parent, mvvm.Append(tag))
		return err
	})
}
