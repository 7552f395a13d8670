// Package plain is dense row-major storage for grid.Grid and the suite that
// dispatches over it.
package plain

import (
	"fmt"

	"github.com/jpfielding/ppmtrans.go/pkg/grid"
)

// Array is a width x height grid of T stored row-major in one flat slice.
type Array[T any] struct {
	width, height int
	size          int
	cells         []T // len == width*height, nil once released
}

var _ grid.Grid[int] = (*Array[int])(nil)

// New allocates a width x height Array. Cells start at the zero value of T.
func New[T any](width, height int) (*Array[T], error) {
	size := grid.SizeOf[T]()
	if err := grid.CheckDims(width, height, size); err != nil {
		return nil, fmt.Errorf("plain.New: %w", err)
	}
	if width > int(^uint(0)>>1)/height {
		return nil, fmt.Errorf("plain.New: %dx%d: %w", width, height, grid.ErrOutOfMemory)
	}
	if err := grid.CheckAlloc(width*height, size); err != nil {
		return nil, fmt.Errorf("plain.New: %w", err)
	}
	return &Array[T]{
		width:  width,
		height: height,
		size:   size,
		cells:  make([]T, width*height),
	}, nil
}

// Width returns the number of columns.
func (a *Array[T]) Width() int { return a.width }

// Height returns the number of rows.
func (a *Array[T]) Height() int { return a.height }

// Size returns the slot size in bytes.
func (a *Array[T]) Size() int { return a.size }

// Blocksize is always 1 for dense storage.
func (a *Array[T]) Blocksize() int { return 1 }

// released reports whether Free has been called.
func (a *Array[T]) released() bool { return a.cells == nil }

func (a *Array[T]) indexOf(col, row int) (int, error) {
	if a.released() {
		return 0, grid.ErrReleased
	}
	if !grid.InBounds(a.width, a.height, col, row) {
		return 0, fmt.Errorf("plain.At(%d,%d) in %dx%d: %w", col, row, a.width, a.height, grid.ErrIndexOutOfBounds)
	}
	return row*a.width + col, nil
}

// At returns the slot at (col, row).
func (a *Array[T]) At(col, row int) (*T, error) {
	idx, err := a.indexOf(col, row)
	if err != nil {
		return nil, err
	}
	return &a.cells[idx], nil
}

// Free drops the backing storage. Calling it twice returns grid.ErrReleased.
func (a *Array[T]) Free() error {
	if a.released() {
		return grid.ErrReleased
	}
	a.cells = nil
	return nil
}

// MapRowMajor visits rows top to bottom, each row left to right.
func (a *Array[T]) MapRowMajor(visit grid.Visitor[T]) error {
	if a.released() {
		return grid.ErrReleased
	}
	for row := 0; row < a.height; row++ {
		base := row * a.width
		for col := 0; col < a.width; col++ {
			if err := visit(col, row, a, &a.cells[base+col]); err != nil {
				return err
			}
		}
	}
	return nil
}

// MapColMajor visits columns left to right, each column top to bottom.
func (a *Array[T]) MapColMajor(visit grid.Visitor[T]) error {
	if a.released() {
		return grid.ErrReleased
	}
	for col := 0; col < a.width; col++ {
		for row := 0; row < a.height; row++ {
			if err := visit(col, row, a, &a.cells[row*a.width+col]); err != nil {
				return err
			}
		}
	}
	return nil
}
