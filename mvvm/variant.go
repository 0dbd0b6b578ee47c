package mvvm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Data roles of a SessionItem. The identifier of an item is not a role.
const (
	RoleData = iota + 1
	RoleDisplay
	RoleAppearance
	RoleLimits
	RoleTooltip
	RoleEditorType
)

// Type names used for values in persisted records
const (
	VariantBool         = "bool"
	VariantInt          = "int"
	VariantDouble       = "double"
	VariantString       = "string"
	VariantVectorDouble = "vector_double"
	VariantBlob         = "blob"
)

// normalizeVariant converts value into one of the supported value types,
// returning the converted value and its type name.
func normalizeVariant(value interface{}) (interface{}, string, error) {
	if value == nil {
		return nil, "", fmt.Errorf("%w: nil value", ErrVariantType)
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool(), VariantBool, nil

	case reflect.Int:
		fallthrough
	case reflect.Int8:
		fallthrough
	case reflect.Int16:
		fallthrough
	case reflect.Int32:
		fallthrough
	case reflect.Int64:
		return int(v.Int()), VariantInt, nil

	case reflect.Uint:
		fallthrough
	case reflect.Uint8:
		fallthrough
	case reflect.Uint16:
		fallthrough
	case reflect.Uint32:
		fallthrough
	case reflect.Uint64:
		if v.Uint() > math.MaxInt {
			return nil, "", fmt.Errorf("%w: %d overflows int", ErrVariantType, v.Uint())
		}
		return int(v.Uint()), VariantInt, nil

	case reflect.Float32:
		fallthrough
	case reflect.Float64:
		return v.Float(), VariantDouble, nil

	case reflect.String:
		return v.String(), VariantString, nil

	case reflect.Slice:
		switch v.Type().Elem().Kind() {
		case reflect.Float64:
			out := make([]float64, v.Len())
			reflect.Copy(reflect.ValueOf(out), v)
			return out, VariantVectorDouble, nil
		case reflect.Uint8:
			out := make([]byte, v.Len())
			reflect.Copy(reflect.ValueOf(out), v)
			return out, VariantBlob, nil
		}
	}

	return nil, "", fmt.Errorf("%w: unsupported value type %T", ErrVariantType, value)
}

// VariantTypeName returns the persisted type name of value, or an empty
// string if the value is not supported.
func VariantTypeName(value interface{}) string {
	_, name, err := normalizeVariant(value)
	if err != nil {
		return ""
	}
	return name
}

// variantEqual compares two normalized values
func variantEqual(a, b interface{}) bool {
	switch av := a.(type) {
	case []byte:
		bv, ok := b.([]byte)
		return ok && bytes.Equal(av, bv)
	case []float64:
		bv, ok := b.([]float64)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}

// copyVariant returns a value that shares no memory with v
func copyVariant(v interface{}) interface{} {
	switch vv := v.(type) {
	case []byte:
		out := make([]byte, len(vv))
		copy(out, vv)
		return out
	case []float64:
		out := make([]float64, len(vv))
		copy(out, vv)
		return out
	default:
		return v
	}
}

func decodeVariant(typeName string, raw json.RawMessage) (interface{}, error) {
	var err error
	switch typeName {
	case VariantBool:
		var v bool
		err = json.Unmarshal(raw, &v)
		return v, err
	case VariantInt:
		var v int
		err = json.Unmarshal(raw, &v)
		return v, err
	case VariantDouble:
		var v float64
		err = json.Unmarshal(raw, &v)
		return v, err
	case VariantString:
		var v string
		err = json.Unmarshal(raw, &v)
		return v, err
	case VariantVectorDouble:
		v := []float64{}
		err = json.Unmarshal(raw, &v)
		return v, err
	case VariantBlob:
		var v []byte
		err = json.Unmarshal(raw, &v)
		return v, err
	default:
		return nil, fmt.Errorf("%w: unknown variant type '%s'", ErrVariantType, typeName)
	}
}
