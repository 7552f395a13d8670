// Package timing measures a single traversal and writes the timing report.
package timing

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Time runs fn and returns how long it took. Only fn is bracketed.
func Time(fn func() error) (time.Duration, error) {
	start := time.Now()
	err := fn()
	return time.Since(start), err
}

// Report is the timing of one transform pass over Pixels cells.
type Report struct {
	Total  time.Duration
	Pixels int
}

// PerPixel returns the mean nanoseconds spent per cell.
func (r Report) PerPixel() float64 {
	if r.Pixels <= 0 {
		return 0
	}
	return float64(r.Total.Nanoseconds()) / float64(r.Pixels)
}

// WriteTo writes the report in the TIMING text format.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "TIMING\nTotal:\t\t%.0f nanoseconds\nPer pixel:\t%.0f nanoseconds\n",
		float64(r.Total.Nanoseconds()), r.PerPixel())
	return int64(n), err
}

// WriteFile writes the report to path, replacing any existing file.
func WriteFile(path string, r Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create timing file: %w", err)
	}
	if _, err := r.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write timing file: %w", err)
	}
	return f.Close()
}
