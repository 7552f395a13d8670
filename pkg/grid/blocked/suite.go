package blocked

import (
	"fmt"

	"github.com/jpfielding/ppmtrans.go/pkg/grid"
)

// Suite dispatches grid operations over blocked Arrays. Every traversal order
// is bound and the default is block-major.
type Suite[T any] struct{}

var _ grid.Suite[int] = Suite[int]{}

// Methods returns the blocked suite for T.
func Methods[T any]() grid.Suite[T] { return Suite[T]{} }

func (Suite[T]) Name() string { return "blocked" }

// New sizes blocks with AutoBlocksize.
func (Suite[T]) New(width, height int) (grid.Grid[T], error) {
	a, err := NewAuto[T](width, height)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (Suite[T]) NewWithBlocksize(width, height, blocksize int) (grid.Grid[T], error) {
	a, err := New[T](width, height, blocksize)
	if err != nil {
		return nil, err
	}
	return a, nil
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
func (Suite[T]) Blocksize(g grid.Grid[T]) int { return g.Blocksize() }

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

func (Suite[T]) MapBlockMajor(g grid.Grid[T], visit grid.Visitor[T]) error {
	a, err := own(g)
	if err != nil {
		return err
	}
	return a.MapBlockMajor(visit)
}

func (s Suite[T]) MapDefault(g grid.Grid[T], visit grid.Visitor[T]) error {
	return s.MapBlockMajor(g, visit)
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
	return s.SmallMapBlockMajor(g, visit)
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
		return s.MapBlockMajor, nil
	}
	return nil, fmt.Errorf("blocked: %s: %w", order, grid.ErrInvalidArgument)
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
		return s.SmallMapBlockMajor, nil
	}
	return nil, fmt.Errorf("blocked: %s: %w", order, grid.ErrInvalidArgument)
}

func own[T any](g grid.Grid[T]) (*Array[T], error) {
	a, ok := g.(*Array[T])
	if !ok || a == nil {
		return nil, fmt.Errorf("blocked: %T: %w", g, grid.ErrForeignGrid)
	}
	return a, nil
}
