package plain

import (
	"fmt"

	"github.com/jpfielding/ppmtrans.go/pkg/grid"
)

// Suite dispatches grid operations over dense Arrays. Block-major traversal is
// not bound and fails with grid.ErrUnsupportedOperation; the default order is
// row-major.
type Suite[T any] struct{}

var _ grid.Suite[int] = Suite[int]{}

// Methods returns the plain suite for T.
func Methods[T any]() grid.Suite[T] { return Suite[T]{} }

func (Suite[T]) Name() string { return "plain" }

func (Suite[T]) New(width, height int) (grid.Grid[T], error) {
	a, err := New[T](width, height)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// NewWithBlocksize ignores the blocksize hint.
func (s Suite[T]) NewWithBlocksize(width, height, _ int) (grid.Grid[T], error) {
	return s.New(width, height)
}

func (Suite[T]) Free(g grid.Grid[T]) error {
	a, err := own(g)
	if err != nil {
		return err
	}
	return a.Free()
}

func (Suite[T]) Width(g grid.Grid[T]) int     { return g.Width() }
func (Suite[T]) Height(g grid.Grid[T]) int    { return g.Height() }
func (Suite[T]) Size(g grid.Grid[T]) int      { return g.Size() }
func (Suite[T]) Blocksize(g grid.Grid[T]) int { return 1 }

func (Suite[T]) At(g grid.Grid[T], col, row int) (*T, error) {
	a, err := own(g)
	if err != nil {
		return nil, err
	}
	return a.At(col, row)
}

func (Suite[T]) MapRowMajor(g grid.Grid[T], visit grid.Visitor[T]) error {
	a, err := own(g)
	if err != nil {
		return err
	}
	return a.MapRowMajor(visit)
}

func (Suite[T]) MapColMajor(g grid.Grid[T], visit grid.Visitor[T]) error {
	a, err := own(g)
	if err != nil {
		return err
	}
	return a.MapColMajor(visit)
}

// MapBlockMajor always fails: dense storage has no blocks to walk.
func (Suite[T]) MapBlockMajor(grid.Grid[T], grid.Visitor[T]) error {
	return fmt.Errorf("plain: block-major traversal: %w", grid.ErrUnsupportedOperation)
}

func (s Suite[T]) MapDefault(g grid.Grid[T], visit grid.Visitor[T]) error {
	return s.MapRowMajor(g, visit)
}

func (s Suite[T]) SmallMapRowMajor(g grid.Grid[T], visit grid.SmallVisitor[T]) error {
	return s.MapRowMajor(g, grid.Small(visit))
}

func (s Suite[T]) SmallMapColMajor(g grid.Grid[T], visit grid.SmallVisitor[T]) error {
	return s.MapColMajor(g, grid.Small(visit))
}

func (s Suite[T]) SmallMapBlockMajor(g grid.Grid[T], visit grid.SmallVisitor[T]) error {
	return s.MapBlockMajor(g, grid.Small(visit))
}

func (s Suite[T]) SmallMapDefault(g grid.Grid[T], visit grid.SmallVisitor[T]) error {
	return s.SmallMapRowMajor(g, visit)
}

func (s Suite[T]) Mapper(order grid.Order) (grid.MapFunc[T], error) {
	switch order {
	case grid.OrderDefault:
		return s.MapDefault, nil
	case grid.OrderRowMajor:
		return s.MapRowMajor, nil
	case grid.OrderColMajor:
		return s.MapColMajor, nil
	case grid.OrderBlockMajor:
		return nil, fmt.Errorf("plain: %s: %w", order, grid.ErrUnsupportedOperation)
	}
	return nil, fmt.Errorf("plain: %s: %w", order, grid.ErrInvalidArgument)
}

func (s Suite[T]) SmallMapper(order grid.Order) (grid.SmallMapFunc[T], error) {
	switch order {
	case grid.OrderDefault:
		return s.SmallMapDefault, nil
	case grid.OrderRowMajor:
		return s.SmallMapRowMajor, nil
	case grid.OrderColMajor:
		return s.SmallMapColMajor, nil
	case grid.OrderBlockMajor:
		return nil, fmt.Errorf("plain: %s: %w", order, grid.ErrUnsupportedOperation)
	}
	return nil, fmt.Errorf("plain: %s: %w", order, grid.ErrInvalidArgument)
}

func own[T any](g grid.Grid[T]) (*Array[T], error) {
	a, ok := g.(*Array[T])
	if !ok || a == nil {
		return nil, fmt.Errorf("plain: %T: %w", g, grid.ErrForeignGrid)
	}
	return a, nil
}
