package transform_test

import (
	"context"
	"fmt"

	"github.com/jpfielding/ppmtrans.go/pkg/grid"
	"github.com/jpfielding/ppmtrans.go/pkg/grid/blocked"
	"github.com/jpfielding/ppmtrans.go/pkg/transform"
)

func ExampleRun() {
	s := blocked.Methods[rune]()
	src, _ := s.NewWithBlocksize(3, 2, 2)
	for i, r := range "abcdef" {
		p, _ := s.At(src, i%3, i/3)
		*p = r
	}

	res, err := transform.Run(context.Background(), s, src, grid.OrderBlockMajor, transform.Rotate90)
	if err != nil {
		fmt.Println(err)
		return
	}
	_ = s.SmallMapRowMajor(res.Grid, func(r *rune) error {
		fmt.Print(string(*r))
		return nil
	})
	fmt.Println()
	fmt.Println(s.Width(res.Grid), s.Height(res.Grid))
	// Output:
	// daebfc
	// 2 3
}
