package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/jpfielding/ppmtrans.go/pkg/grid"
	"github.com/jpfielding/ppmtrans.go/pkg/transform"
)

// selection collects the transform and traversal flags. pflag calls Set in
// command line order, so the last transform flag and the last order flag win.
type selection struct {
	kind  transform.Kind
	order grid.Order
}

// kindFlag sets selection.kind from one of --rotate, --flip, --transpose.
type kindFlag struct {
	sel   *selection
	name  string
	parse func(string) (transform.Kind, error)
	value string
}

func (f *kindFlag) String() string { return f.value }
func (f *kindFlag) Type() string   { return f.name }

func (f *kindFlag) Set(s string) error {
	k, err := f.parse(s)
	if err != nil {
		return err
	}
	f.value = s
	f.sel.kind = k
	return nil
}

// orderFlag sets selection.order from --row-major, --col-major, --block-major.
type orderFlag struct {
	sel   *selection
	order grid.Order
	set   bool
}

func (f *orderFlag) String() string { return strconv.FormatBool(f.set) }
func (f *orderFlag) Type() string   { return "bool" }

func (f *orderFlag) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	f.set = on
	if on {
		f.sel.order = f.order
	}
	return nil
}

func parseRotation(s string) (transform.Kind, error) {
	deg, err := strconv.Atoi(s)
	if err != nil {
		return transform.Rotate0, fmt.Errorf("rotation must be 0, 90, 180 or 270, got %q", s)
	}
	return transform.ParseRotation(deg)
}

func parseTranspose(s string) (transform.Kind, error) {
	on, err := strconv.ParseBool(s)
	if err != nil || !on {
		return transform.Rotate0, fmt.Errorf("--transpose takes no value")
	}
	return transform.Transpose, nil
}

// addSelectionFlags registers the transform and order flags on fs.
func addSelectionFlags(fs *pflag.FlagSet, sel *selection) {
	fs.Var(&kindFlag{sel: sel, name: "angle", parse: parseRotation, value: "0"},
		"rotate", "rotate clockwise by 0, 90, 180 or 270 degrees")
	fs.Var(&kindFlag{sel: sel, name: "direction", parse: transform.ParseFlip},
		"flip", "flip horizontal or vertical")
	fs.Var(&kindFlag{sel: sel, name: "bool", parse: parseTranspose, value: "false"},
		"transpose", "transpose across the main diagonal")
	fs.Lookup("transpose").NoOptDefVal = "true"

	for _, o := range []grid.Order{grid.OrderRowMajor, grid.OrderColMajor, grid.OrderBlockMajor} {
		fs.Var(&orderFlag{sel: sel, order: o}, o.String(), "traverse in "+o.String()+" order")
		fs.Lookup(o.String()).NoOptDefVal = "true"
	}
}
