package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jpfielding/ppmtrans.go/pkg/grid"
	"github.com/jpfielding/ppmtrans.go/pkg/grid/blocked"
	"github.com/jpfielding/ppmtrans.go/pkg/grid/plain"
	"github.com/jpfielding/ppmtrans.go/pkg/logging"
	"github.com/jpfielding/ppmtrans.go/pkg/pnm"
	"github.com/jpfielding/ppmtrans.go/pkg/timing"
	"github.com/jpfielding/ppmtrans.go/pkg/transform"
)

func NewRoot(ctx context.Context, gitsha string) *cobra.Command {
	sel := &selection{kind: transform.Rotate0, order: grid.OrderDefault}
	var logCloser io.Closer
	cmd := &cobra.Command{
		Use:   "ppmtrans [flags] [file]",
		Short: "rotate, flip or transpose a PNM image",
		Long: "Reads a PNM image from file or standard input, applies one transform and writes the " +
			"result to standard output in the same format. Row and column major traversals use " +
			"plain storage, block major uses blocked storage.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logCloser, err = setupLogging(ctx, cmd)
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser == nil {
				return nil
			}
			err := logCloser.Close()
			logCloser = nil
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			timePath, _ := cmd.Flags().GetString("time")
			blocksize, _ := cmd.Flags().GetInt("blocksize")

			in, closer, err := openInput(args)
			if err != nil {
				return err
			}
			defer closer()
			return runTransform(ctx, in, cmd.OutOrStdout(), *sel, blocksize, timePath)
		},
	}
	cmd.AddCommand(
		NewVersionCmd(ctx, gitsha),
		NewBenchCmd(ctx),
	)
	pf := cmd.PersistentFlags()
	pf.String("log-level", "INFO", "Log level (DEBUG, INFO, WARN, ERROR)")
	pf.String("log-file", "", "write logs to this rotating file instead of stderr")
	pf.Bool("log-json", false, "log as json")

	f := cmd.Flags()
	addSelectionFlags(f, sel)
	f.String("time", "", "write traversal timing to this file")
	f.Int("blocksize", 0, "blocksize for block-major storage (0 picks one for a 64KB block)")
	return cmd
}

func NewVersionCmd(ctx context.Context, gitsha string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "git sha for this build",
		Long:  "git sha for this build",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), gitsha)
		},
	}
	return cmd
}

// setupLogging installs the default logger. The returned closer is non-nil
// when logs go to a file.
func setupLogging(ctx context.Context, cmd *cobra.Command) (io.Closer, error) {
	logLevel, _ := cmd.Flags().GetString("log-level")
	logFile, _ := cmd.Flags().GetString("log-file")
	asJSON, _ := cmd.Flags().GetBool("log-json")

	var level slog.Level
	levelErr := level.UnmarshalText([]byte(strings.ToUpper(logLevel)))
	if levelErr != nil {
		level = slog.LevelInfo
	}
	var w io.Writer = cmd.ErrOrStderr()
	var closer io.Closer
	if logFile != "" {
		fw := logging.FileWriter(logFile, 10)
		w, closer = fw, fw
	}
	slog.SetDefault(logging.Logger(w, asJSON, level))
	if levelErr != nil {
		slog.WarnContext(ctx, "Invalid log level, defaulting to INFO", "level", logLevel, "error", levelErr)
	}
	return closer, nil
}

// openInput opens the single positional file, or stdin when there is none.
func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// suiteFor picks the storage that binds order: blocked for block-major,
// plain otherwise.
func suiteFor(order grid.Order) grid.Suite[pnm.Pixel] {
	if order == grid.OrderBlockMajor {
		return blocked.Methods[pnm.Pixel]()
	}
	return plain.Methods[pnm.Pixel]()
}

func runTransform(ctx context.Context, in io.Reader, out io.Writer, sel selection, blocksize int, timePath string) error {
	suite := suiteFor(sel.order)
	// fail on an unbound order before reading anything
	if _, err := suite.Mapper(sel.order); err != nil {
		return fmt.Errorf("%s does not support %s traversal: %w", suite.Name(), sel.order, err)
	}

	var opts []pnm.ReadOption
	if blocksize > 0 {
		opts = append(opts, pnm.WithBlocksize(blocksize))
	}
	img, err := pnm.Read(in, suite, opts...)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}
	slog.DebugContext(ctx, "read image",
		slog.String("format", string(img.Format)),
		slog.Int("width", img.Width()),
		slog.Int("height", img.Height()),
		slog.String("suite", suite.Name()),
		slog.Int("blocksize", suite.Blocksize(img.Pixels)))

	res, err := transform.Run(ctx, suite, img.Pixels, sel.order, sel.kind)
	if err != nil {
		_ = suite.Free(img.Pixels)
		return fmt.Errorf("failed to %s: %w", sel.kind, err)
	}
	img.Pixels = res.Grid
	defer suite.Free(img.Pixels)

	if timePath != "" {
		report := timing.Report{Total: res.Elapsed, Pixels: img.Width() * img.Height()}
		if err := timing.WriteFile(timePath, report); err != nil {
			return err
		}
	}
	return pnm.Write(out, img, suite)
}
