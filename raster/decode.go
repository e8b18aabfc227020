package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/tiff"
)

// Decode converts an encoded tile (PNG, JPEG, GIF or TIFF) into a pixel
// buffer. Grayscale images decode to a single channel, everything else to
// four channels in RGBA order with opaque alpha where the source had none.
// Optional bands select and reorder channels out of the decoded set.
func Decode(data []byte, bands ...int) (*Buffer, error) {
	m, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("rsp: decoding tile: %w", err)
	}

	buf := fromImage(m)
	if len(bands) == 0 {
		return buf, nil
	}
	return buf.Select(bands...)
}

func fromImage(m image.Image) *Buffer {
	r := m.Bounds()
	w, h := r.Dx(), r.Dy()

	if g, ok := m.(*image.Gray); ok {
		buf := New(w, h, 1)
		for y := 0; y < h; y++ {
			row := g.PixOffset(r.Min.X, r.Min.Y+y)
			copy(buf.Pix[y*w:(y+1)*w], g.Pix[row:row+w])
		}
		return buf
	}

	n := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(n, n.Bounds(), m, r.Min, draw.Src)
	return &Buffer{W: w, H: h, C: 4, Pix: n.Pix}
}

// EncodePNG encodes a 1, 3 or 4 channel buffer as PNG. Three-channel buffers
// gain an opaque alpha channel.
func EncodePNG(b *Buffer) ([]byte, error) {
	var m image.Image
	switch b.C {
	case 1:
		m = &image.Gray{Pix: b.Pix, Stride: b.W, Rect: image.Rect(0, 0, b.W, b.H)}
	case 3, 4:
		m = toNRGBA(b)
	default:
		return nil, fmt.Errorf("rsp: cannot encode %d-channel buffer as PNG", b.C)
	}

	var out bytes.Buffer
	if err := png.Encode(&out, m); err != nil {
		return nil, fmt.Errorf("rsp: encoding tile: %w", err)
	}
	return out.Bytes(), nil
}

// toNRGBA views a 3 or 4 channel buffer as an NRGBA image. Three-channel
// buffers gain an opaque alpha channel; four-channel buffers share pixels
// with b.
func toNRGBA(b *Buffer) *image.NRGBA {
	if b.C == 4 {
		return &image.NRGBA{Pix: b.Pix, Stride: 4 * b.W, Rect: image.Rect(0, 0, b.W, b.H)}
	}

	n := image.NewNRGBA(image.Rect(0, 0, b.W, b.H))
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			s := b.offset(x, y)
			d := n.PixOffset(x, y)
			n.Pix[d+0] = b.Pix[s+0]
			n.Pix[d+1] = b.Pix[s+1]
			n.Pix[d+2] = b.Pix[s+2]
			n.Pix[d+3] = 0xff
		}
	}
	return n
}
