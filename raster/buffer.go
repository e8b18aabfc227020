// Package raster provides the pixel model for raster tiles and the
// compositor that assembles a tile together with the overlapping margins of
// its eight grid neighbors.
package raster

import "fmt"

// Buffer is a dense uint8 pixel array of W columns, H rows and C interleaved
// channels, stored row-major. len(Pix) == H*W*C.
type Buffer struct {
	W int
	H int
	C int

	Pix []uint8
}

// New allocates a zero-filled buffer of the given dimensions.
func New(w, h, c int) *Buffer {
	return &Buffer{W: w, H: h, C: c, Pix: make([]uint8, h*w*c)}
}

func (b *Buffer) offset(x, y int) int {
	return (y*b.W + x) * b.C
}

// At returns the sample at column x, row y, channel c.
func (b *Buffer) At(x, y, c int) uint8 {
	return b.Pix[b.offset(x, y)+c]
}

// Set stores the sample at column x, row y, channel c.
func (b *Buffer) Set(x, y, c int, v uint8) {
	b.Pix[b.offset(x, y)+c] = v
}

// Fill sets every sample of every channel to v.
func (b *Buffer) Fill(v uint8) {
	for i := range b.Pix {
		b.Pix[i] = v
	}
}

// Select returns a new buffer holding the given channels of b, in the given
// order. A channel may be picked more than once.
func (b *Buffer) Select(bands ...int) (*Buffer, error) {
	for _, band := range bands {
		if band < 0 || band >= b.C {
			return nil, fmt.Errorf("rsp: band %d out of range for %d-channel buffer", band, b.C)
		}
	}

	out := New(b.W, b.H, len(bands))
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			s := b.offset(x, y)
			d := out.offset(x, y)
			for i, band := range bands {
				out.Pix[d+i] = b.Pix[s+band]
			}
		}
	}
	return out, nil
}
