package raster

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/ericpauley/go-quantize/quantize"
)

// HStack lays buffers out side by side, left to right. All buffers must
// share height and channel count.
func HStack(buffers ...*Buffer) (*Buffer, error) {
	if len(buffers) == 0 {
		return nil, errors.New("rsp: nothing to stack")
	}

	h, c := buffers[0].H, buffers[0].C
	w := 0
	for _, b := range buffers {
		if b.H != h || b.C != c {
			return nil, fmt.Errorf("rsp: cannot stack (%d, %d, %d) next to (%d, %d, %d)",
				b.W, b.H, b.C, buffers[0].W, h, c)
		}
		w += b.W
	}

	out := New(w, h, c)
	x0 := 0
	for _, b := range buffers {
		for y := 0; y < h; y++ {
			copy(out.Pix[(y*w+x0)*c:(y*w+x0+b.W)*c], b.Pix[y*b.W*c:(y+1)*b.W*c])
		}
		x0 += b.W
	}
	return out, nil
}

// EncodeIndexedPNG quantizes a 3 or 4 channel buffer down to maxColors and
// encodes it as an indexed-color PNG.
func EncodeIndexedPNG(b *Buffer, maxColors int) ([]byte, error) {
	if maxColors < 1 || maxColors > 256 {
		return nil, fmt.Errorf("rsp: indexed PNG needs 1 to 256 colors, got %d", maxColors)
	}
	if b.C != 3 && b.C != 4 {
		return nil, fmt.Errorf("rsp: cannot quantize %d-channel buffer", b.C)
	}

	m := toNRGBA(b)
	q := quantize.MedianCutQuantizer{}
	paletted := image.NewPaletted(m.Bounds(), q.Quantize(make(color.Palette, 0, maxColors), m))
	draw.Draw(paletted, paletted.Rect, m, image.Point{}, draw.Src)

	var out bytes.Buffer
	if err := png.Encode(&out, paletted); err != nil {
		return nil, fmt.Errorf("rsp: encoding preview tile: %w", err)
	}
	return out.Bytes(), nil
}
