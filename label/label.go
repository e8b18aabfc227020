// Package label reads and writes indexed-color label tiles. A label tile
// stores one class index per pixel; the palette maps indices to colors.
package label

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/ndavid/robosat.pink/raster"
)

var (
	ErrNotIndexed = errors.New("rsp: not an indexed-color tile")
	ErrClassIndex = errors.New("rsp: class index outside palette")
)

// Encode turns a single-channel buffer of class indices into an
// indexed-color PNG with the given palette.
func Encode(b *raster.Buffer, palette color.Palette) ([]byte, error) {
	if b.C != 1 {
		return nil, fmt.Errorf("%w: buffer has %d channels, want 1", ErrNotIndexed, b.C)
	}
	if len(palette) == 0 || len(palette) > 256 {
		return nil, fmt.Errorf("rsp: palette needs 1 to 256 colors, got %d", len(palette))
	}
	for _, idx := range b.Pix {
		if int(idx) >= len(palette) {
			return nil, fmt.Errorf("%w: %d with %d colors", ErrClassIndex, idx, len(palette))
		}
	}

	m := &image.Paletted{
		Pix:     b.Pix,
		Stride:  b.W,
		Rect:    image.Rect(0, 0, b.W, b.H),
		Palette: palette,
	}

	var out bytes.Buffer
	if err := png.Encode(&out, m); err != nil {
		return nil, fmt.Errorf("rsp: encoding label tile: %w", err)
	}
	return out.Bytes(), nil
}

// Colorize expands class indices into a 3-channel color buffer through the
// palette.
func Colorize(classes *raster.Buffer, palette color.Palette) (*raster.Buffer, error) {
	if classes.C != 1 {
		return nil, fmt.Errorf("%w: buffer has %d channels, want 1", ErrNotIndexed, classes.C)
	}

	lut := make([]color.NRGBA, len(palette))
	for i, entry := range palette {
		lut[i] = color.NRGBAModel.Convert(entry).(color.NRGBA)
	}

	out := raster.New(classes.W, classes.H, 3)
	for i, idx := range classes.Pix {
		if int(idx) >= len(lut) {
			return nil, fmt.Errorf("%w: %d with %d colors", ErrClassIndex, idx, len(lut))
		}
		out.Pix[3*i+0] = lut[idx].R
		out.Pix[3*i+1] = lut[idx].G
		out.Pix[3*i+2] = lut[idx].B
	}
	return out, nil
}

// Decode turns an indexed-color image back into a single-channel buffer of
// class indices.
func Decode(data []byte) (*raster.Buffer, error) {
	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("rsp: decoding label tile: %w", err)
	}

	p, ok := m.(*image.Paletted)
	if !ok {
		return nil, fmt.Errorf("%w: decoded as %T", ErrNotIndexed, m)
	}

	r := p.Bounds()
	buf := raster.New(r.Dx(), r.Dy(), 1)
	for y := 0; y < r.Dy(); y++ {
		row := p.PixOffset(r.Min.X, r.Min.Y+y)
		copy(buf.Pix[y*buf.W:(y+1)*buf.W], p.Pix[row:row+r.Dx()])
	}
	return buf, nil
}
