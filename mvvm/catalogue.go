package mvvm

import "fmt"

// ItemFactory constructs a new item of one model type. Factories set up
// tags and default properties; kind-specific behavior lives in the data of
// the item, not in Go types.
type ItemFactory func() *SessionItem

type catalogueEntry struct {
	Label   string
	Factory ItemFactory
}

// ItemCatalogue maps model type names to factories
type ItemCatalogue struct {
	names   []string
	entries map[string]catalogueEntry
}

// NewItemCatalogue returns a catalogue containing only the BaseType
func NewItemCatalogue() *ItemCatalogue {
	c := &ItemCatalogue{entries: make(map[string]catalogueEntry)}
	c.RegisterItem(BaseType, func() *SessionItem { return NewSessionItem(BaseType) }, "Item")
	return c
}

// RegisterItem adds a factory for modelType. Types can only be registered once.
func (c *ItemCatalogue) RegisterItem(modelType string, factory ItemFactory, label string) error {
	if modelType == "" {
		return fmt.Errorf("%w: empty model type", ErrConfiguration)
	} else if factory == nil {
		return fmt.Errorf("%w: nil factory for type '%s'", ErrConfiguration, modelType)
	} else if c.Contains(modelType) {
		return fmt.Errorf("%w: type '%s' is already registered", ErrConfiguration, modelType)
	}

	if label == "" {
		label = modelType
	}
	c.names = append(c.names, modelType)
	c.entries[modelType] = catalogueEntry{Label: label, Factory: factory}
	return nil
}

func (c *ItemCatalogue) Contains(modelType string) bool {
	_, exists := c.entries[modelType]
	return exists
}

// Create constructs a new item of modelType
func (c *ItemCatalogue) Create(modelType string) (*SessionItem, error) {
	entry, exists := c.entries[modelType]
	if !exists {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownType, modelType)
	}
	item := entry.Factory()
	if item == nil {
		return nil, fmt.Errorf("%w: factory for '%s' returned nil", ErrConfiguration, modelType)
	} else if item.ModelType() != modelType {
		return nil, fmt.Errorf("%w: factory for '%s' made item of type '%s'", ErrConfiguration, modelType, item.ModelType())
	}
	return item, nil
}

// Factory returns the factory of modelType as an ItemFactory
func (c *ItemCatalogue) Factory(modelType string) (ItemFactory, error) {
	if !c.Contains(modelType) {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownType, modelType)
	}
	return c.entries[modelType].Factory, nil
}

// ModelTypes returns registered types in registration order
func (c *ItemCatalogue) ModelTypes() []string {
	return append([]string(nil), c.names...)
}

func (c *ItemCatalogue) Label(modelType string) string {
	return c.entries[modelType].Label
}

// Merge registers every type of other in c. It fails without changes if
// any type exists in both.
func (c *ItemCatalogue) Merge(other *ItemCatalogue) error {
	for _, name := range other.names {
		if name != BaseType && c.Contains(name) {
			return fmt.Errorf("%w: type '%s' is already registered", ErrConfiguration, name)
		}
	}
	for _, name := range other.names {
		if name == BaseType && c.Contains(name) {
			continue
		}
		c.names = append(c.names, name)
		c.entries[name] = other.entries[name]
	}
	return nil
}
