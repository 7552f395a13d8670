// Package blocked is cache-blocked storage for grid.Grid and the suite that
// dispatches over it.
//
// An Array of blocksize B is a grid of ceil(H/B) x ceil(W/B) blocks. Each
// block is a flat buffer of B*B slots addressed row-major, so the cells of one
// block sit next to each other in memory. Blocks on the right and bottom edges
// keep their full B*B capacity; the slots past the logical extent are never
// handed out.
package blocked

import (
	"fmt"
	"math"

	"github.com/jpfielding/ppmtrans.go/pkg/grid"
	"github.com/jpfielding/ppmtrans.go/pkg/grid/plain"
)

// CacheBudget is the per-block footprint NewAuto aims for, in bytes.
const CacheBudget = 64000

// Array is a blocked width x height grid of T.
type Array[T any] struct {
	width, height int
	size          int
	blocksize     int
	blocks        *plain.Array[[]T] // nil once released
}

var _ grid.Grid[int] = (*Array[int])(nil)

// New allocates a width x height Array with the given blocksize, which must
// satisfy 1 <= blocksize <= min(width, height). Cells start at the zero value
// of T.
func New[T any](width, height, blocksize int) (*Array[T], error) {
	size := grid.SizeOf[T]()
	if err := grid.CheckDims(width, height, size); err != nil {
		return nil, fmt.Errorf("blocked.New: %w", err)
	}
	if blocksize <= 0 || blocksize > width || blocksize > height {
		return nil, fmt.Errorf("blocked.New: blocksize %d for %dx%d: %w",
			blocksize, width, height, grid.ErrInvalidArgument)
	}
	bw := ceilDiv(width, blocksize)
	bh := ceilDiv(height, blocksize)
	// the padded footprint is what actually gets allocated
	if bw > int(^uint(0)>>1)/bh || blocksize > int(^uint(0)>>1)/blocksize ||
		bw*bh > int(^uint(0)>>1)/(blocksize*blocksize) {
		return nil, fmt.Errorf("blocked.New: %dx%d/%d: %w", width, height, blocksize, grid.ErrOutOfMemory)
	}
	if err := grid.CheckAlloc(bw*bh*blocksize*blocksize, size); err != nil {
		return nil, fmt.Errorf("blocked.New: %w", err)
	}

	blocks, err := plain.New[[]T](bw, bh)
	if err != nil {
		return nil, fmt.Errorf("blocked.New: block grid: %w", err)
	}
	capacity := blocksize * blocksize
	err = blocks.MapRowMajor(func(_, _ int, _ grid.Grid[[]T], block *[]T) error {
		*block = make([]T, capacity)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Array[T]{
		width:     width,
		height:    height,
		size:      size,
		blocksize: blocksize,
		blocks:    blocks,
	}, nil
}

// NewAuto allocates a width x height Array whose blocksize is chosen by
// AutoBlocksize for the slot size of T.
func NewAuto[T any](width, height int) (*Array[T], error) {
	size := grid.SizeOf[T]()
	if err := grid.CheckDims(width, height, size); err != nil {
		return nil, fmt.Errorf("blocked.NewAuto: %w", err)
	}
	return New[T](width, height, AutoBlocksize(width, height, size))
}

// AutoBlocksize picks the largest square block of size-byte slots that fits
// in CacheBudget, clamped to the smaller extent.
func AutoBlocksize(width, height, size int) int {
	cells := CacheBudget / size
	if cells < 1 {
		return 1
	}
	edge := math.Sqrt(float64(cells))
	if edge > float64(width) || edge > float64(height) {
		return min(width, height)
	}
	return int(edge)
}

// Width returns the number of columns.
func (a *Array[T]) Width() int { return a.width }

// Height returns the number of rows.
func (a *Array[T]) Height() int { return a.height }

// Size returns the slot size in bytes.
func (a *Array[T]) Size() int { return a.size }

// Blocksize returns the block edge length.
func (a *Array[T]) Blocksize() int { return a.blocksize }

// released reports whether Free has been called.
func (a *Array[T]) released() bool { return a.blocks == nil }

// At returns the slot at (col, row).
func (a *Array[T]) At(col, row int) (*T, error) {
	if a.released() {
		return nil, grid.ErrReleased
	}
	if !grid.InBounds(a.width, a.height, col, row) {
		return nil, fmt.Errorf("blocked.At(%d,%d) in %dx%d: %w", col, row, a.width, a.height, grid.ErrIndexOutOfBounds)
	}
	b := a.blocksize
	block, err := a.blocks.At(col/b, row/b)
	if err != nil {
		return nil, err
	}
	return &(*block)[(row%b)*b+col%b], nil
}

// Free drops every block buffer, then the block grid. Calling it twice
// returns grid.ErrReleased.
func (a *Array[T]) Free() error {
	if a.released() {
		return grid.ErrReleased
	}
	_ = a.blocks.MapRowMajor(func(_, _ int, _ grid.Grid[[]T], block *[]T) error {
		*block = nil
		return nil
	})
	if err := a.blocks.Free(); err != nil {
		return err
	}
	a.blocks = nil
	return nil
}

// MapBlockMajor visits one block at a time: block rows top to bottom, block
// columns left to right, and inside a block local rows then local columns.
// Padding slots of edge blocks are skipped, so every cell is visited once.
func (a *Array[T]) MapBlockMajor(visit grid.Visitor[T]) error {
	if a.released() {
		return grid.ErrReleased
	}
	b := a.blocksize
	return a.blocks.MapRowMajor(func(bc, br int, _ grid.Grid[[]T], block *[]T) error {
		rows := min(b, a.height-br*b)
		cols := min(b, a.width-bc*b)
		cells := *block
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				if err := visit(bc*b+x, br*b+y, a, &cells[y*b+x]); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// MapRowMajor visits cells in logical row-major order.
func (a *Array[T]) MapRowMajor(visit grid.Visitor[T]) error {
	if a.released() {
		return grid.ErrReleased
	}
	for row := 0; row < a.height; row++ {
		for col := 0; col < a.width; col++ {
			if err := a.visitAt(col, row, visit); err != nil {
				return err
			}
		}
	}
	return nil
}

// MapColMajor visits cells in logical column-major order.
func (a *Array[T]) MapColMajor(visit grid.Visitor[T]) error {
	if a.released() {
		return grid.ErrReleased
	}
	for col := 0; col < a.width; col++ {
		for row := 0; row < a.height; row++ {
			if err := a.visitAt(col, row, visit); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *Array[T]) visitAt(col, row int, visit grid.Visitor[T]) error {
	elem, err := a.At(col, row)
	if err != nil {
		return err
	}
	return visit(col, row, a, elem)
}

func ceilDiv(n, d int) int {
	return (n-1)/d + 1
}
