// Package grid defines the storage-agnostic contract for two-dimensional
// containers of fixed-size elements.
//
// A Suite is chosen once (see packages plain and blocked) and every operation
// on the containers it creates goes through that suite, so client code such as
// the transform engine is written once against either storage strategy.
package grid

import (
	"fmt"
	"unsafe"
)

// Grid is a width x height container of T, addressed by (col, row).
type Grid[T any] interface {
	// Width is the number of columns
	Width() int
	// Height is the number of rows
	Height() int
	// Size is the size in bytes of one element slot
	Size() int
	// Blocksize is the edge length of a storage block, 1 for dense storage
	Blocksize() int
	// At returns the slot at (col, row). The pointer is only valid until the
	// grid is released.
	At(col, row int) (*T, error)
}

// Visitor is invoked once per cell by the full traversals. elem must not be
// retained after the visitor returns. A non-nil error stops the traversal.
type Visitor[T any] func(col, row int, g Grid[T], elem *T) error

// SmallVisitor is the coordinate-free form of Visitor.
type SmallVisitor[T any] func(elem *T) error

// MapFunc runs a full traversal over g.
type MapFunc[T any] func(g Grid[T], visit Visitor[T]) error

// SmallMapFunc runs a small traversal over g.
type SmallMapFunc[T any] func(g Grid[T], visit SmallVisitor[T]) error

// Suite is an immutable table of operations over one storage strategy.
// Implementations carry no state and are safe to share.
type Suite[T any] interface {
	// Name identifies the storage strategy ("plain", "blocked")
	Name() string

	New(width, height int) (Grid[T], error)
	// NewWithBlocksize allocates with a blocksize hint; dense storage ignores it
	NewWithBlocksize(width, height, blocksize int) (Grid[T], error)
	// Free releases g. A released grid fails every further access.
	Free(g Grid[T]) error

	Width(g Grid[T]) int
	Height(g Grid[T]) int
	Size(g Grid[T]) int
	Blocksize(g Grid[T]) int
	At(g Grid[T], col, row int) (*T, error)

	MapRowMajor(g Grid[T], visit Visitor[T]) error
	MapColMajor(g Grid[T], visit Visitor[T]) error
	MapBlockMajor(g Grid[T], visit Visitor[T]) error
	MapDefault(g Grid[T], visit Visitor[T]) error

	SmallMapRowMajor(g Grid[T], visit SmallVisitor[T]) error
	SmallMapColMajor(g Grid[T], visit SmallVisitor[T]) error
	SmallMapBlockMajor(g Grid[T], visit SmallVisitor[T]) error
	SmallMapDefault(g Grid[T], visit SmallVisitor[T]) error

	// Mapper resolves order to a bound traversal, or ErrUnsupportedOperation
	Mapper(order Order) (MapFunc[T], error)
	// SmallMapper resolves order to a bound small traversal
	SmallMapper(order Order) (SmallMapFunc[T], error)
}

// SizeOf returns the slot size of T in bytes.
func SizeOf[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// InBounds reports whether (col, row) addresses a cell of a width x height grid.
func InBounds(width, height, col, row int) bool {
	return col >= 0 && col < width && row >= 0 && row < height
}

// CheckDims validates construction parameters shared by every storage strategy.
func CheckDims(width, height, size int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("dimensions %dx%d: %w", width, height, ErrInvalidArgument)
	}
	if size <= 0 {
		return fmt.Errorf("element size %d: %w", size, ErrInvalidArgument)
	}
	return nil
}

// CheckAlloc fails with ErrOutOfMemory when cells slots of size bytes cannot
// be addressed by a single allocation.
func CheckAlloc(cells, size int) error {
	const maxBytes = int(^uint(0) >> 1)
	if cells <= 0 || size <= 0 || cells > maxBytes/size {
		return fmt.Errorf("%d cells of %d bytes: %w", cells, size, ErrOutOfMemory)
	}
	return nil
}

// Small adapts a SmallVisitor to a full Visitor.
func Small[T any](visit SmallVisitor[T]) Visitor[T] {
	return func(_, _ int, _ Grid[T], elem *T) error {
		return visit(elem)
	}
}
