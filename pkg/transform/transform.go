// Package transform rotates, flips and transposes grids through a grid.Suite.
//
// A transform allocates the destination through the same suite as the source
// and copies every source cell into its mapped destination slot in one
// traversal. The traversal order changes how fast the pass runs, never what it
// produces.
package transform

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jpfielding/ppmtrans.go/pkg/grid"
	"github.com/jpfielding/ppmtrans.go/pkg/timing"
)

// Result is the outcome of Run.
type Result[T any] struct {
	Grid    grid.Grid[T]  // destination, now the container of record
	Elapsed time.Duration // time spent in the single traversal
}

// Apply writes k of src into a newly allocated grid using mapFn as the one
// traversal. src is left untouched and still owned by the caller. On error the
// destination is freed and never returned.
func Apply[T any](suite grid.Suite[T], src grid.Grid[T], mapFn grid.MapFunc[T], k Kind) (grid.Grid[T], error) {
	dst, _, err := apply(suite, src, mapFn, k)
	return dst, err
}

func apply[T any](suite grid.Suite[T], src grid.Grid[T], mapFn grid.MapFunc[T], k Kind) (grid.Grid[T], time.Duration, error) {
	width, height := suite.Width(src), suite.Height(src)
	mapping, err := Mapping(k, width, height)
	if err != nil {
		return nil, 0, err
	}
	dw, dh := Dims(k, width, height)
	// src blocksize <= min(width,height), which Dims preserves
	dst, err := suite.NewWithBlocksize(dw, dh, suite.Blocksize(src))
	if err != nil {
		return nil, 0, fmt.Errorf("allocate %dx%d destination: %w", dw, dh, err)
	}

	elapsed, err := timing.Time(func() error {
		return mapFn(src, func(col, row int, _ grid.Grid[T], elem *T) error {
			dc, dr := mapping(col, row)
			slot, err := suite.At(dst, dc, dr)
			if err != nil {
				return err
			}
			*slot = *elem
			return nil
		})
	})
	if err != nil {
		_ = suite.Free(dst)
		return nil, 0, fmt.Errorf("%s: %w", k, err)
	}
	return dst, elapsed, nil
}

// Run resolves order through suite, applies k to src and releases src. The
// returned Result holds the new container of record. An order the suite does
// not bind fails before anything is allocated; any failure leaves src owned by
// the caller.
func Run[T any](ctx context.Context, suite grid.Suite[T], src grid.Grid[T], order grid.Order, k Kind) (Result[T], error) {
	mapFn, err := suite.Mapper(order)
	if err != nil {
		return Result[T]{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result[T]{}, err
	}
	dst, elapsed, err := apply(suite, src, mapFn, k)
	if err != nil {
		return Result[T]{}, err
	}
	if err := suite.Free(src); err != nil {
		_ = suite.Free(dst)
		return Result[T]{}, fmt.Errorf("release source: %w", err)
	}
	slog.DebugContext(ctx, "transform complete",
		slog.String("suite", suite.Name()),
		slog.String("order", order.String()),
		slog.String("kind", k.String()),
		slog.Int("width", dst.Width()),
		slog.Int("height", dst.Height()),
		slog.Int("blocksize", dst.Blocksize()),
		slog.Duration("elapsed", elapsed))
	return Result[T]{Grid: dst, Elapsed: elapsed}, nil
}
