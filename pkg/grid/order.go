package grid

import (
	"fmt"
	"strings"
)

// Order selects a traversal.
type Order int

const (
	OrderDefault Order = iota
	OrderRowMajor
	OrderColMajor
	OrderBlockMajor
)

var orderNames = map[Order]string{
	OrderDefault:    "default",
	OrderRowMajor:   "row-major",
	OrderColMajor:   "col-major",
	OrderBlockMajor: "block-major",
}

func (o Order) String() string {
	if s, ok := orderNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Order(%d)", int(o))
}

// Orders lists every traversal order, default first.
func Orders() []Order {
	return []Order{OrderDefault, OrderRowMajor, OrderColMajor, OrderBlockMajor}
}

// ParseOrder accepts "row-major", "col-major" (or "column-major"),
// "block-major" and "default".
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return OrderDefault, nil
	case "row-major", "row":
		return OrderRowMajor, nil
	case "col-major", "column-major", "col":
		return OrderColMajor, nil
	case "block-major", "block":
		return OrderBlockMajor, nil
	}
	return OrderDefault, fmt.Errorf("order %q: %w", s, ErrInvalidArgument)
}
