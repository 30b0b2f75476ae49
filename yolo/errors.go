package yolo

import "github.com/pkg/errors"

var (
	// ErrInvalidConfig is returned when the output geometry is inconsistent.
	ErrInvalidConfig = errors.New("invalid detector config")
	// ErrTensorSize is returned when a raw tensor does not match the configured geometry.
	ErrTensorSize = errors.New("tensor size mismatch")
	// ErrIndexOutOfRange is returned by Indexer for coordinates outside the grid.
	ErrIndexOutOfRange = errors.New("index out of range")
)
