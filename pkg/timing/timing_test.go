package timing

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTime(t *testing.T) {
	boom := errors.New("boom")
	d, err := Time(func() error {
		time.Sleep(time.Millisecond)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.GreaterOrEqual(t, d, time.Millisecond)
}

func TestReport_WriteTo(t *testing.T) {
	r := Report{Total: 1500 * time.Nanosecond, Pixels: 10}
	assert.Equal(t, 150.0, r.PerPixel())

	var buf bytes.Buffer
	_, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "TIMING\nTotal:\t\t1500 nanoseconds\nPer pixel:\t150 nanoseconds\n", buf.String())

	assert.Equal(t, 0.0, Report{Total: time.Second}.PerPixel())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timing.txt")
	require.NoError(t, WriteFile(path, Report{Total: 42, Pixels: 2}))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Total:\t\t42 nanoseconds")

	assert.Error(t, WriteFile(filepath.Join(t.TempDir(), "missing", "t.txt"), Report{}))
}
