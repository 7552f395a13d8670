// Package pnm reads and writes portable anymap images (P2, P3, P5, P6) into
// grids allocated through a grid.Suite, so the pixels land in whichever
// storage strategy the caller selected. Decoding and encoding of the netpbm
// formats is done by github.com/spakin/netpbm.
package pnm

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log/slog"

	"github.com/spakin/netpbm"
	"github.com/spakin/netpbm/npcolor"

	"github.com/jpfielding/ppmtrans.go/pkg/grid"
)

var (
	ErrBadHeader         = errors.New("pnm: malformed header")
	ErrUnsupportedFormat = errors.New("pnm: unsupported format")
	ErrShortData         = errors.New("pnm: raster short or malformed")
)

// MaxPixels bounds width*height accepted from a header. Larger images are
// rejected with ErrBadHeader before any raster is allocated.
const MaxPixels = 1 << 26

// Format is the magic number of the image.
type Format string

const (
	GrayASCII  Format = "P2"
	PixASCII   Format = "P3"
	GrayBinary Format = "P5"
	PixBinary  Format = "P6"
)

// Gray reports whether the format carries one sample per pixel.
func (f Format) Gray() bool { return f == GrayASCII || f == GrayBinary }

// Binary reports whether the raster is raw bytes rather than decimal text.
func (f Format) Binary() bool { return f == GrayBinary || f == PixBinary }

func (f Format) netpbm() netpbm.Format {
	if f.Gray() {
		return netpbm.PGM
	}
	return netpbm.PPM
}

// Pixel is one cell. Graymaps keep their sample in all three channels.
type Pixel struct {
	R, G, B uint16
}

// Image is a decoded anymap.
type Image struct {
	Format Format
	Maxval int
	Pixels grid.Grid[Pixel]
}

// Width of the raster.
func (img *Image) Width() int { return img.Pixels.Width() }

// Height of the raster.
func (img *Image) Height() int { return img.Pixels.Height() }

// ReadOption tunes Read.
type ReadOption func(*readConfig)

type readConfig struct {
	blocksize int
}

// WithBlocksize allocates the raster with a blocksize hint instead of the
// suite's default sizing. Suites without blocks ignore it.
func WithBlocksize(blocksize int) ReadOption {
	return func(c *readConfig) { c.blocksize = blocksize }
}

// Read decodes one image from r, allocating the raster through suite.
func Read(r io.Reader, suite grid.Suite[Pixel], opts ...ReadOption) (*Image, error) {
	var cfg readConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	br := bufio.NewReader(r)
	format, err := readMagic(br)
	if err != nil {
		return nil, err
	}
	// the header is replayed to the decoder after it has been checked
	var header bytes.Buffer
	conf, err := netpbm.DecodeConfig(bufio.NewReader(io.TeeReader(br, &header)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	width, height := conf.Width, conf.Height
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrBadHeader, width, height)
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrBadHeader, width, height, MaxPixels)
	}

	decoded, err := netpbm.Decode(io.MultiReader(&header, br), &netpbm.DecodeOptions{
		Target: format.netpbm(),
		Exact:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrShortData, err)
	}
	pixelAt, err := pixelReader(decoded)
	if err != nil {
		return nil, err
	}
	maxval := int(decoded.MaxValue())
	slog.Debug("pnm header",
		slog.String("format", string(format)),
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("maxval", maxval))

	var pixels grid.Grid[Pixel]
	if cfg.blocksize > 0 {
		pixels, err = suite.NewWithBlocksize(width, height, cfg.blocksize)
	} else {
		pixels, err = suite.New(width, height)
	}
	if err != nil {
		return nil, fmt.Errorf("pnm: allocate raster: %w", err)
	}
	err = suite.MapRowMajor(pixels, func(col, row int, _ grid.Grid[Pixel], p *Pixel) error {
		*p = pixelAt(col, row)
		return nil
	})
	if err != nil {
		_ = suite.Free(pixels)
		return nil, err
	}
	return &Image{Format: format, Maxval: maxval, Pixels: pixels}, nil
}

// Write encodes img to w in img.Format, reading the raster through suite.
func Write(w io.Writer, img *Image, suite grid.Suite[Pixel]) error {
	switch img.Format {
	case GrayASCII, PixASCII, GrayBinary, PixBinary:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, img.Format)
	}
	if img.Maxval <= 0 || img.Maxval > 65535 {
		return fmt.Errorf("%w: maxval %d", ErrBadHeader, img.Maxval)
	}
	// a released or foreign raster fails here rather than inside the encoder
	if _, err := suite.At(img.Pixels, 0, 0); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	err := netpbm.Encode(bw, &raster{img: img, suite: suite}, &netpbm.EncodeOptions{
		Format:   img.Format.netpbm(),
		MaxValue: uint16(img.Maxval),
		Plain:    !img.Format.Binary(),
	})
	if err != nil {
		return err
	}
	return bw.Flush()
}

func readMagic(br *bufio.Reader) (Format, error) {
	magic, err := br.Peek(2)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	format := Format(magic)
	switch format {
	case GrayASCII, PixASCII, GrayBinary, PixBinary:
		return format, nil
	}
	return "", fmt.Errorf("%w: magic %q", ErrUnsupportedFormat, magic)
}

// pixelReader returns an accessor over the decoded samples. The values are
// the raw samples, not rescaled.
func pixelReader(img netpbm.Image) (func(col, row int) Pixel, error) {
	switch im := img.(type) {
	case *netpbm.GrayM:
		return func(col, row int) Pixel {
			v := uint16(im.GrayMAt(col, row).Y)
			return Pixel{R: v, G: v, B: v}
		}, nil
	case *netpbm.GrayM32:
		return func(col, row int) Pixel {
			v := im.GrayM32At(col, row).Y
			return Pixel{R: v, G: v, B: v}
		}, nil
	case *netpbm.RGBM:
		return func(col, row int) Pixel {
			c := im.RGBMAt(col, row)
			return Pixel{R: uint16(c.R), G: uint16(c.G), B: uint16(c.B)}
		}, nil
	case *netpbm.RGBM64:
		return func(col, row int) Pixel {
			c := im.RGBM64At(col, row)
			return Pixel{R: c.R, G: c.G, B: c.B}
		}, nil
	}
	return nil, fmt.Errorf("%w: %s image", ErrUnsupportedFormat, img.Format())
}

// raster is an image.Image view of a grid for the encoder. Its colors carry
// the image maxval, so the encoder writes the samples unchanged.
type raster struct {
	img   *Image
	suite grid.Suite[Pixel]
}

func (r *raster) ColorModel() color.Model {
	m := r.img.Maxval
	switch {
	case r.img.Format.Gray() && m < 256:
		return npcolor.GrayMModel{M: uint8(m)}
	case r.img.Format.Gray():
		return npcolor.GrayM32Model{M: uint16(m)}
	case m < 256:
		return npcolor.RGBMModel{M: uint8(m)}
	}
	return npcolor.RGBM64Model{M: uint16(m)}
}

func (r *raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.img.Width(), r.img.Height())
}

func (r *raster) At(x, y int) color.Color {
	var p Pixel
	if elem, err := r.suite.At(r.img.Pixels, x, y); err == nil {
		p = *elem
	}
	m := r.img.Maxval
	switch {
	case r.img.Format.Gray() && m < 256:
		return npcolor.GrayM{Y: uint8(p.R), M: uint8(m)}
	case r.img.Format.Gray():
		return npcolor.GrayM32{Y: p.R, M: uint16(m)}
	case m < 256:
		return npcolor.RGBM{R: uint8(p.R), G: uint8(p.G), B: uint8(p.B), M: uint8(m)}
	}
	return npcolor.RGBM64{R: p.R, G: p.G, B: p.B, M: uint16(m)}
}
