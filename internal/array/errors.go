package array

import (
	"errors"

	"github.com/born-ml/blockstore/internal/origin"
)

// Contract violations reported by records and backends. Match them with errors.Is.
var (
	// ErrUnknownOrigin is returned when an origin ID was never registered.
	ErrUnknownOrigin = origin.ErrUnknownOrigin

	// ErrUnsupportedBackend is returned when a value or record belongs to no known backend.
	ErrUnsupportedBackend = errors.New("unsupported array backend")

	// ErrInvalidShape is returned for rank < 2, negative sizes or element count mismatches.
	ErrInvalidShape = errors.New("invalid shape")

	// ErrAxisOutOfRange is returned when SwapAxes names an axis outside the current rank.
	ErrAxisOutOfRange = errors.New("axis out of range")

	// ErrOriginMismatch is returned when two arrays from different backends are combined.
	ErrOriginMismatch = errors.New("data origin mismatch")

	// ErrIndexOutOfBounds is returned for sample rows or property ranges outside an array.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrDestroyed is returned when a record or handle is used after Destroy.
	ErrDestroyed = errors.New("array already destroyed")
)
