package core

import (
	"errors"
)

// Asset loading failure kinds. Loaders wrap these with fmt.Errorf("...: %w")
// so that callers can classify a failed load with errors.Is while still
// getting a descriptive message.
var (
	// ErrFormat means the input does not conform to its structural contract
	// (bad magic, wrong version, malformed JSON, invalid type code, ...).
	ErrFormat = errors.New("malformed asset")

	// ErrOutOfBounds means a resolved reference falls outside its backing
	// storage. Surfaces at first data access, never as a panic.
	ErrOutOfBounds = errors.New("reference out of bounds")

	// ErrUnsupported means the input is structurally valid but uses a shape
	// this engine does not implement. Always fatal to the load.
	ErrUnsupported = errors.New("unsupported feature")

	ErrUnknown = errors.New("unknown")
)
