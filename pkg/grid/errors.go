package grid

import "errors"

// Callers match these with errors.Is; operations wrap them with context.
var (
	// ErrInvalidArgument rejects bad construction parameters before any allocation.
	ErrInvalidArgument = errors.New("grid: invalid argument")
	// ErrIndexOutOfBounds reports access outside [0,width) x [0,height).
	ErrIndexOutOfBounds = errors.New("grid: index out of bounds")
	// ErrUnsupportedOperation reports a traversal the storage strategy does not bind.
	ErrUnsupportedOperation = errors.New("grid: unsupported operation")
	// ErrOutOfMemory reports an allocation that cannot be satisfied.
	ErrOutOfMemory = errors.New("grid: out of memory")
	// ErrReleased reports use of a grid after it was freed.
	ErrReleased = errors.New("grid: grid already released")
	// ErrForeignGrid reports a grid handed to a suite that did not create it.
	ErrForeignGrid = errors.New("grid: grid belongs to another suite")
)
