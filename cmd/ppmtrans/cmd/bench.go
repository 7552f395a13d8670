package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jpfielding/ppmtrans.go/pkg/grid"
	"github.com/jpfielding/ppmtrans.go/pkg/logging"
	"github.com/jpfielding/ppmtrans.go/pkg/pnm"
	"github.com/jpfielding/ppmtrans.go/pkg/timing"
	"github.com/jpfielding/ppmtrans.go/pkg/transform"
	"github.com/jpfielding/ppmtrans.go/pkg/util"
)

// NewBenchCmd times every storage and traversal combination on one image
func NewBenchCmd(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench [file]",
		Short: "time every traversal order for each transform",
		Long: "Runs each transform once per storage/traversal combination and prints the traversal " +
			"time and a digest of the result. Digests must agree for the same transform.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			blocksize, _ := cmd.Flags().GetInt("blocksize")
			names, _ := cmd.Flags().GetStringSlice("order")
			orders, err := parseOrders(names)
			if err != nil {
				return err
			}
			in, closer, err := openInput(args)
			if err != nil {
				return err
			}
			defer closer()
			raw, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return runBench(ctx, raw, cmd.OutOrStdout(), blocksize, orders)
		},
	}
	cmd.Flags().Int("blocksize", 0, "blocksize for blocked storage (0 picks one for a 64KB block)")
	cmd.Flags().StringSlice("order", nil, "only run these traversal orders (default, row-major, col-major, block-major)")
	return cmd
}

// benchCase is one storage/traversal combination
type benchCase struct {
	order grid.Order
	suite grid.Suite[pnm.Pixel]
}

// parseOrders resolves order names, all orders when names is empty.
func parseOrders(names []string) ([]grid.Order, error) {
	if len(names) == 0 {
		return grid.Orders(), nil
	}
	orders := make([]grid.Order, 0, len(names))
	for _, n := range names {
		o, err := grid.ParseOrder(n)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// benchCases pairs both suites with every order in orders they bind.
func benchCases(orders []grid.Order) []benchCase {
	var cases []benchCase
	for _, s := range []grid.Suite[pnm.Pixel]{suiteFor(grid.OrderRowMajor), suiteFor(grid.OrderBlockMajor)} {
		for _, o := range orders {
			if _, err := s.Mapper(o); err != nil {
				continue
			}
			cases = append(cases, benchCase{order: o, suite: s})
		}
	}
	return cases
}

func runBench(ctx context.Context, raw []byte, out io.Writer, blocksize int, orders []grid.Order) error {
	cases := benchCases(orders)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "kind\tsuite\torder\tblocksize\ttotal\tns/pixel\tmd5")

	var id string
	for _, k := range transform.Kinds() {
		var digest string
		for _, bc := range cases {
			var opts []pnm.ReadOption
			if blocksize > 0 {
				opts = append(opts, pnm.WithBlocksize(blocksize))
			}
			img, err := pnm.Read(bytes.NewReader(raw), bc.suite, opts...)
			if err != nil {
				return fmt.Errorf("failed to read image: %w", err)
			}
			if id == "" {
				id = util.HashUUID(map[string]any{
					"md5":       util.Md5ThenHex(raw),
					"blocksize": blocksize,
				})
				ctx = logging.AppendCtx(ctx, slog.String("bench", id))
			}
			bs := bc.suite.Blocksize(img.Pixels)
			res, err := transform.Run(ctx, bc.suite, img.Pixels, bc.order, k)
			if err != nil {
				_ = bc.suite.Free(img.Pixels)
				return fmt.Errorf("%s/%s/%s: %w", k, bc.suite.Name(), bc.order, err)
			}
			sum, err := util.GridMd5(bc.suite, res.Grid)
			pixels := res.Grid.Width() * res.Grid.Height()
			_ = bc.suite.Free(res.Grid)
			if err != nil {
				return err
			}
			report := timing.Report{Total: res.Elapsed, Pixels: pixels}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%.1f\t%s\n",
				k, bc.suite.Name(), bc.order, bs, res.Elapsed, report.PerPixel(), sum)

			if digest == "" {
				digest = sum
			} else if digest != sum {
				tw.Flush()
				return fmt.Errorf("%s: %s/%s produced a different image", k, bc.suite.Name(), bc.order)
			}
		}
	}
	slog.InfoContext(ctx, "bench complete")
	return tw.Flush()
}
