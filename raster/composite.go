package raster

import (
	"errors"
	"fmt"
	"image"

	"github.com/ndavid/robosat.pink/tile"
)

var (
	// ErrNoCenter reports a composite whose center tile could not be fetched.
	ErrNoCenter = errors.New("rsp: missing center tile")
	// ErrOverlap reports an overlap outside [0, tileSize].
	ErrOverlap = errors.New("rsp: overlap out of range")
	// ErrChannels reports a source tile with fewer than three channels.
	ErrChannels = errors.New("rsp: not enough channels")
	// ErrTileSize reports a source tile whose dimensions do not match the center.
	ErrTileSize = errors.New("rsp: tile size mismatch")
)

// Resolver fetches the pixels of a tile adjacent to center, dx and dy in
// {-1, 0, 1}, dy = -1 pointing one tile row up (north). A nil result means
// the neighbor is absent; its share of the composite stays zero.
type Resolver interface {
	Resolve(center tile.ID, dx, dy int) *Buffer
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(center tile.ID, dx, dy int) *Buffer

func (f ResolverFunc) Resolve(center tile.ID, dx, dy int) *Buffer {
	return f(center, dx, dy)
}

// A region is one cell of the 3x3 assembly: the slice of the tile at grid
// offset (dx, dy) that borders the center, and where it lands in the
// composite. Rectangles are half-open, x is the column and y the row.
type region struct {
	dx, dy int
	src    image.Rectangle
	dst    image.Rectangle
}

// regions returns the nine copy rules for tile size ts and overlap o. Side
// neighbors contribute an o-deep strip of their edge facing the center,
// diagonal neighbors the o by o corner, the center tile all of itself.
func regions(ts, o int) [9]region {
	return [9]region{
		{-1, -1, image.Rect(ts-o, ts-o, ts, ts), image.Rect(0, 0, o, o)},
		{+0, -1, image.Rect(0, ts-o, ts, ts), image.Rect(o, 0, ts+o, o)},
		{+1, -1, image.Rect(0, ts-o, o, ts), image.Rect(ts+o, 0, ts+2*o, o)},
		{-1, +0, image.Rect(ts-o, 0, ts, ts), image.Rect(0, o, o, ts+o)},
		{+0, +0, image.Rect(0, 0, ts, ts), image.Rect(o, o, ts+o, ts+o)},
		{+1, +0, image.Rect(0, 0, o, ts), image.Rect(ts+o, o, ts+2*o, ts+o)},
		{-1, +1, image.Rect(ts-o, 0, ts, o), image.Rect(0, ts+o, o, ts+2*o)},
		{+0, +1, image.Rect(0, 0, ts, o), image.Rect(o, ts+o, ts+o, ts+2*o)},
		{+1, +1, image.Rect(0, 0, o, o), image.Rect(ts+o, ts+o, ts+2*o, ts+2*o)},
	}
}

// Composite assembles the buffer for the tile at the given address: a
// (ts+2o) by (ts+2o) three-channel pixel array holding the center tile in
// the middle and, around it, the o-deep margins of the eight adjacent tiles.
// Margins of absent neighbors are zero. Only the first three channels of any
// source tile are copied.
//
// The center must be present and square, overlap must lie in [0, ts] and
// every resolved tile must be ts by ts with at least three channels;
// violations return an error. Absent neighbors are normal, never an error.
func Composite(at tile.ID, center *Buffer, neighbors Resolver, overlap int) (*Buffer, error) {
	if center == nil {
		return nil, fmt.Errorf("%w: %v", ErrNoCenter, at)
	}
	if center.W != center.H {
		return nil, fmt.Errorf("%w: center is %dx%d", ErrTileSize, center.W, center.H)
	}
	ts := center.H
	if overlap < 0 || overlap > ts {
		return nil, fmt.Errorf("%w: overlap %d with tile size %d", ErrOverlap, overlap, ts)
	}

	out := New(ts+2*overlap, ts+2*overlap, 3)
	for _, reg := range regions(ts, overlap) {
		src := center
		if reg.dx != 0 || reg.dy != 0 {
			src = neighbors.Resolve(at, reg.dx, reg.dy)
			if src == nil {
				continue
			}
		}
		if src.C < 3 {
			return nil, fmt.Errorf("%w: %d at offset (%+d, %+d)", ErrChannels, src.C, reg.dx, reg.dy)
		}
		if src.W != ts || src.H != ts {
			return nil, fmt.Errorf("%w: %dx%d at offset (%+d, %+d), want %dx%d",
				ErrTileSize, src.W, src.H, reg.dx, reg.dy, ts, ts)
		}
		copyRect(out, reg.dst, src, reg.src)
	}
	return out, nil
}

// copyRect copies the first three channels of src's sr rectangle into dst at
// dr. Both rectangles have the same size.
func copyRect(dst *Buffer, dr image.Rectangle, src *Buffer, sr image.Rectangle) {
	for y := 0; y < dr.Dy(); y++ {
		s := src.offset(sr.Min.X, sr.Min.Y+y)
		d := dst.offset(dr.Min.X, dr.Min.Y+y)
		for x := 0; x < dr.Dx(); x++ {
			copy(dst.Pix[d:d+3], src.Pix[s:s+3])
			s += src.C
			d += dst.C
		}
	}
}
