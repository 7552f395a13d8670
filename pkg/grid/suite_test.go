package grid_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpfielding/ppmtrans.go/pkg/grid"
	"github.com/jpfielding/ppmtrans.go/pkg/grid/blocked"
	"github.com/jpfielding/ppmtrans.go/pkg/grid/plain"
)

type cell struct{ col, row int }

func suites() []grid.Suite[int] {
	return []grid.Suite[int]{plain.Methods[int](), blocked.Methods[int]()}
}

func fill(t *testing.T, s grid.Suite[int], g grid.Grid[int]) {
	t.Helper()
	for row := 0; row < s.Height(g); row++ {
		for col := 0; col < s.Width(g); col++ {
			p, err := s.At(g, col, row)
			require.NoError(t, err)
			*p = row*s.Width(g) + col
		}
	}
}

func TestSuite_Metadata(t *testing.T) {
	for _, s := range suites() {
		t.Run(s.Name(), func(t *testing.T) {
			g, err := s.NewWithBlocksize(5, 3, 2)
			require.NoError(t, err)
			assert.Equal(t, 5, s.Width(g))
			assert.Equal(t, 3, s.Height(g))
			assert.Equal(t, grid.SizeOf[int](), s.Size(g))
			if s.Name() == "plain" {
				assert.Equal(t, 1, s.Blocksize(g))
			} else {
				assert.Equal(t, 2, s.Blocksize(g))
			}
		})
	}
}

func TestSuite_FullTraversalsCoverGrid(t *testing.T) {
	for _, s := range suites() {
		for _, order := range grid.Orders() {
			mapFn, err := s.Mapper(order)
			if s.Name() == "plain" && order == grid.OrderBlockMajor {
				assert.ErrorIs(t, err, grid.ErrUnsupportedOperation)
				continue
			}
			require.NoError(t, err)
			t.Run(s.Name()+"/"+order.String(), func(t *testing.T) {
				g, err := s.NewWithBlocksize(5, 3, 2)
				require.NoError(t, err)
				fill(t, s, g)
				seen := map[cell]bool{}
				err = mapFn(g, func(col, row int, src grid.Grid[int], elem *int) error {
					require.True(t, grid.InBounds(5, 3, col, row))
					assert.Equal(t, row*5+col, *elem)
					assert.Same(t, g, src)
					assert.False(t, seen[cell{col, row}])
					seen[cell{col, row}] = true
					return nil
				})
				require.NoError(t, err)
				assert.Len(t, seen, 15)
			})
		}
	}
}

func TestSuite_SmallTraversals(t *testing.T) {
	for _, s := range suites() {
		for _, order := range grid.Orders() {
			mapFn, err := s.SmallMapper(order)
			if s.Name() == "plain" && order == grid.OrderBlockMajor {
				assert.ErrorIs(t, err, grid.ErrUnsupportedOperation)
				continue
			}
			require.NoError(t, err)
			g, err := s.NewWithBlocksize(4, 6, 3)
			require.NoError(t, err)
			fill(t, s, g)
			sum := 0
			require.NoError(t, mapFn(g, func(elem *int) error {
				sum += *elem
				return nil
			}))
			assert.Equal(t, 23*24/2, sum, "%s/%s", s.Name(), order)
		}
	}
}

func TestSuite_DefaultOrder(t *testing.T) {
	var got []cell
	record := func(col, row int, _ grid.Grid[int], _ *int) error {
		got = append(got, cell{col, row})
		return nil
	}

	ps := plain.Methods[int]()
	pg, err := ps.New(3, 2)
	require.NoError(t, err)
	require.NoError(t, ps.MapDefault(pg, record))
	assert.Equal(t, []cell{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}, got)

	got = nil
	bs := blocked.Methods[int]()
	bg, err := bs.NewWithBlocksize(3, 2, 2)
	require.NoError(t, err)
	require.NoError(t, bs.MapDefault(bg, record))
	assert.Equal(t, []cell{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 0}, {2, 1}}, got)
}

func TestPlain_BlockMajorUnsupported(t *testing.T) {
	s := plain.Methods[int]()
	g, err := s.New(2, 2)
	require.NoError(t, err)
	fill(t, s, g)

	called := false
	err = s.MapBlockMajor(g, func(_, _ int, _ grid.Grid[int], elem *int) error {
		called = true
		*elem = -1
		return nil
	})
	assert.ErrorIs(t, err, grid.ErrUnsupportedOperation)
	err = s.SmallMapBlockMajor(g, func(elem *int) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, grid.ErrUnsupportedOperation)
	assert.False(t, called)

	p, err := s.At(g, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, *p)
}

func TestPlain_BlocksizeHintIgnored(t *testing.T) {
	s := plain.Methods[int]()
	g, err := s.NewWithBlocksize(4, 4, 99)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Blocksize(g))
}

func TestBlocked_NewUsesAutoBlocksize(t *testing.T) {
	s := blocked.Methods[[4000]byte]()
	g, err := s.New(8, 8)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Blocksize(g))
}

func TestSuite_InvalidArgument(t *testing.T) {
	for _, s := range suites() {
		_, err := s.New(0, 3)
		assert.ErrorIs(t, err, grid.ErrInvalidArgument, s.Name())
		_, err = s.NewWithBlocksize(3, -1, 1)
		assert.ErrorIs(t, err, grid.ErrInvalidArgument, s.Name())
	}
	_, err := blocked.Methods[int]().NewWithBlocksize(3, 3, 4)
	assert.ErrorIs(t, err, grid.ErrInvalidArgument)
}

func TestSuite_OutOfBounds(t *testing.T) {
	for _, s := range suites() {
		g, err := s.NewWithBlocksize(5, 3, 2)
		require.NoError(t, err)
		for _, c := range []cell{{5, 0}, {0, 3}, {-1, 2}, {2, -1}} {
			_, err := s.At(g, c.col, c.row)
			assert.ErrorIs(t, err, grid.ErrIndexOutOfBounds, "%s (%d,%d)", s.Name(), c.col, c.row)
		}
	}
}

func TestSuite_Free(t *testing.T) {
	for _, s := range suites() {
		g, err := s.New(3, 3)
		require.NoError(t, err)
		require.NoError(t, s.Free(g))
		_, err = s.At(g, 0, 0)
		assert.ErrorIs(t, err, grid.ErrReleased, s.Name())
		assert.ErrorIs(t, s.MapRowMajor(g, func(_, _ int, _ grid.Grid[int], _ *int) error { return nil }), grid.ErrReleased)
		assert.ErrorIs(t, s.Free(g), grid.ErrReleased, s.Name())
	}
}

func TestSuite_ForeignGrid(t *testing.T) {
	ps, bs := plain.Methods[int](), blocked.Methods[int]()
	pg, err := ps.New(2, 2)
	require.NoError(t, err)
	bg, err := bs.New(2, 2)
	require.NoError(t, err)

	_, err = ps.At(bg, 0, 0)
	assert.ErrorIs(t, err, grid.ErrForeignGrid)
	_, err = bs.At(pg, 0, 0)
	assert.ErrorIs(t, err, grid.ErrForeignGrid)
	assert.ErrorIs(t, bs.Free(pg), grid.ErrForeignGrid)
}

func TestSuite_VisitorErrorStops(t *testing.T) {
	stop := errors.New("stop")
	for _, s := range suites() {
		g, err := s.New(4, 4)
		require.NoError(t, err)
		n := 0
		err = s.MapDefault(g, func(_, _ int, _ grid.Grid[int], _ *int) error {
			n++
			return stop
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, 1, n)
	}
}
