package mvvm

import "errors"

// Errors returned by this package are wrapped with context; use errors.Is
// to test for these categories.
var (
	// ErrConfiguration covers structural misuse: duplicate tag names,
	// unknown tags, violated tag capacity and cycle-inducing moves.
	ErrConfiguration = errors.New("configuration error")
	// ErrResolution is returned when a Path no longer resolves to the item
	// it was captured from.
	ErrResolution = errors.New("path does not resolve")
	// ErrUnknownType is returned when a model type has no registered factory.
	ErrUnknownType = errors.New("unknown model type")
	// ErrRestore is returned when a persisted record is incompatible with
	// the model it is restored into.
	ErrRestore = errors.New("restore error")
	// ErrVariantType is returned for unsupported data values, or when a role
	// already holds a value of a different type.
	ErrVariantType = errors.New("variant type mismatch")
	// ErrCommandState is returned when a command is executed or undone out
	// of order.
	ErrCommandState = errors.New("invalid command state")
)
