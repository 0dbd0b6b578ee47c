package mvvm

import (
	"encoding/json"
	"fmt"
)

// DataRecord is the persisted form of one role of item data
type DataRecord struct {
	Role  int         `json:"role" yaml:"role" toml:"role"`
	Type  string      `json:"type" yaml:"type" toml:"type"`
	Value interface{} `json:"value" yaml:"value" toml:"value"`
}

func (d *DataRecord) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role  int             `json:"role"`
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	value, err := decodeVariant(raw.Type, raw.Value)
	if err != nil {
		return fmt.Errorf("role %d: %w", raw.Role, err)
	}
	d.Role, d.Type, d.Value = raw.Role, raw.Type, value
	return nil
}

// TagRecord is the persisted form of a TagInfo
type TagRecord struct {
	Name       string   `json:"name" yaml:"name" toml:"name"`
	Min        int      `json:"min" yaml:"min" toml:"min"`
	Max        int      `json:"max" yaml:"max" toml:"max"`
	ModelTypes []string `json:"modelTypes,omitempty" yaml:"modelTypes,omitempty" toml:"modelTypes,omitempty"`
}

// ItemRecord is the persisted form of an item and its subtree. Children are
// listed in global order, each naming the tag it belongs to.
type ItemRecord struct {
	Identifier  string       `json:"identifier" yaml:"identifier" toml:"identifier"`
	ModelType   string       `json:"modelType" yaml:"modelType" toml:"modelType"`
	DisplayName string       `json:"displayName" yaml:"displayName" toml:"displayName"`
	Tag         string       `json:"tag,omitempty" yaml:"tag,omitempty" toml:"tag,omitempty"`
	Data        []DataRecord `json:"data" yaml:"data" toml:"data"`
	Tags        []TagRecord  `json:"tags" yaml:"tags" toml:"tags"`
	DefaultTag  string       `json:"defaultTag" yaml:"defaultTag" toml:"defaultTag"`
	Items       []ItemRecord `json:"items" yaml:"items" toml:"items"`
}

// ModelRecord is the persisted form of a model
type ModelRecord struct {
	Model string     `json:"model" yaml:"model" toml:"model"`
	Root  ItemRecord `json:"root" yaml:"root" toml:"root"`
}

// ItemToRecord converts item and its subtree. Tombstones are skipped.
func ItemToRecord(item *SessionItem) ItemRecord {
	record := ItemRecord{
		Identifier:  item.id,
		ModelType:   item.modelType,
		DisplayName: item.DisplayName(),
		DefaultTag:  item.tags.DefaultTag(),
		Data:        []DataRecord{},
		Tags:        []TagRecord{},
		Items:       []ItemRecord{},
	}

	for _, role := range item.Roles() {
		if role == RoleDisplay {
			continue
		}
		value := item.data[role]
		record.Data = append(record.Data, DataRecord{Role: role, Type: VariantTypeName(value), Value: copyVariant(value)})
	}

	for _, info := range item.tags.Tags() {
		record.Tags = append(record.Tags, TagRecord{Name: info.Name, Min: info.Min, Max: info.Max, ModelTypes: info.ModelTypes})
		for _, child := range item.tags.GetItems(info.Name) {
			if child == nil {
				continue
			}
			childRecord := ItemToRecord(child)
			childRecord.Tag = info.Name
			record.Items = append(record.Items, childRecord)
		}
	}
	return record
}

// ItemFromRecord builds a detached item from record. Items are constructed
// through the catalogue, then their tags, data and children are replaced
// with the record's content. With regenerateIDs, every item of the subtree
// gets a new identifier.
func ItemFromRecord(catalogue *ItemCatalogue, record ItemRecord, regenerateIDs bool) (*SessionItem, error) {
	return buildItem(catalogue.Create, record, regenerateIDs)
}

// bareItem creates items without a catalogue. Records taken from live items
// already carry every tag and value, so no factory is needed to rebuild them.
func bareItem(modelType string) (*SessionItem, error) {
	return NewSessionItem(modelType), nil
}

func buildItem(create func(string) (*SessionItem, error), record ItemRecord, regenerateIDs bool) (*SessionItem, error) {
	item, err := create(record.ModelType)
	if err != nil {
		return nil, err
	}

	if regenerateIDs || record.Identifier == "" {
		item.id = newIdentifier()
	} else {
		item.id = record.Identifier
	}

	item.tags = NewSessionItemTags()
	for _, t := range record.Tags {
		info := TagInfo{Name: t.Name, Min: t.Min, Max: t.Max, ModelTypes: t.ModelTypes}
		if err := item.tags.RegisterTag(info, false); err != nil {
			return nil, fmt.Errorf("%w: item %s: %w", ErrRestore, record.Identifier, err)
		}
	}
	if err := item.tags.SetDefaultTag(record.DefaultTag); err != nil {
		return nil, fmt.Errorf("%w: item %s: %w", ErrRestore, record.Identifier, err)
	}

	item.data = make(map[int]interface{})
	item.data[RoleDisplay] = record.DisplayName
	for _, d := range record.Data {
		value, typeName, err := normalizeVariant(d.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: item %s role %d: %w", ErrRestore, record.Identifier, d.Role, err)
		} else if d.Type != "" && d.Type != typeName {
			return nil, fmt.Errorf("%w: item %s role %d: recorded as '%s', decoded as '%s'", ErrRestore, record.Identifier, d.Role, d.Type, typeName)
		}
		item.data[d.Role] = value
	}

	for _, childRecord := range record.Items {
		child, err := buildItem(create, childRecord, regenerateIDs)
		if err != nil {
			return nil, err
		}
		if childRecord.Tag == "" {
			return nil, fmt.Errorf("%w: child %s of %s has no tag", ErrRestore, childRecord.Identifier, record.Identifier)
		}
		if ok, err := item.InsertItem(child, Append(childRecord.Tag)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRestore, err)
		} else if !ok {
			return nil, fmt.Errorf("%w: child %s doesn't fit tag '%s' of %s", ErrRestore, childRecord.Identifier, childRecord.Tag, record.Identifier)
		}
	}
	return item, nil
}
