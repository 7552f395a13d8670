package transform

import (
	"fmt"
	"strings"

	"github.com/jpfielding/ppmtrans.go/pkg/grid"
)

// Kind is a geometric transform of a grid.
type Kind int

const (
	Rotate0 Kind = iota
	Rotate90
	Rotate180
	Rotate270
	FlipHorizontal
	FlipVertical
	Transpose
)

var kindNames = [...]string{
	Rotate0:        "rotate-0",
	Rotate90:       "rotate-90",
	Rotate180:      "rotate-180",
	Rotate270:      "rotate-270",
	FlipHorizontal: "flip-horizontal",
	FlipVertical:   "flip-vertical",
	Transpose:      "transpose",
}

func (k Kind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	return k >= Rotate0 && k <= Transpose
}

// Kinds lists every transform kind.
func Kinds() []Kind {
	return []Kind{Rotate0, Rotate90, Rotate180, Rotate270, FlipHorizontal, FlipVertical, Transpose}
}

// ParseRotation maps a clockwise angle in degrees to a rotate kind.
func ParseRotation(degrees int) (Kind, error) {
	switch degrees {
	case 0:
		return Rotate0, nil
	case 90:
		return Rotate90, nil
	case 180:
		return Rotate180, nil
	case 270:
		return Rotate270, nil
	}
	return Rotate0, fmt.Errorf("rotation must be 0, 90, 180 or 270, got %d: %w", degrees, grid.ErrInvalidArgument)
}

// ParseFlip maps "horizontal" or "vertical" to a flip kind.
func ParseFlip(direction string) (Kind, error) {
	switch strings.ToLower(direction) {
	case "horizontal":
		return FlipHorizontal, nil
	case "vertical":
		return FlipVertical, nil
	}
	return Rotate0, fmt.Errorf("flip must be horizontal or vertical, got %q: %w", direction, grid.ErrInvalidArgument)
}

// Dims returns the destination extent of applying k to a width x height grid.
func Dims(k Kind, width, height int) (int, int) {
	switch k {
	case Rotate90, Rotate270, Transpose:
		return height, width
	}
	return width, height
}

// Mapping returns the source (col,row) to destination (col,row) map of k for
// a width x height source. Each mapping is a bijection onto the Dims extent.
func Mapping(k Kind, width, height int) (func(col, row int) (int, int), error) {
	switch k {
	case Rotate0:
		return func(col, row int) (int, int) { return col, row }, nil
	case Rotate90:
		return func(col, row int) (int, int) { return height - 1 - row, col }, nil
	case Rotate180:
		return func(col, row int) (int, int) { return width - 1 - col, height - 1 - row }, nil
	case Rotate270:
		return func(col, row int) (int, int) { return row, width - 1 - col }, nil
	case FlipHorizontal:
		return func(col, row int) (int, int) { return width - 1 - col, row }, nil
	case FlipVertical:
		return func(col, row int) (int, int) { return col, height - 1 - row }, nil
	case Transpose:
		return func(col, row int) (int, int) { return row, col }, nil
	}
	return nil, fmt.Errorf("transform %s: %w", k, grid.ErrInvalidArgument)
}
