// Package tile provides slippy map tile addressing and tile store interfaces.
// See: https://wiki.openstreetmap.org/wiki/Slippy_map_tilenames
package tile

import "cmp"

// ID represents tile coordinates in the XYZ scheme (Tiled web map).
// Coordinates are signed: neighbor arithmetic at the pyramid boundary may
// produce addresses outside [0, 2^z), which no store resolves.
type ID struct {
	X int
	Y int
	Z int
}

// Valid reports whether the tile lies inside the pyramid at its zoom level.
func (t ID) Valid() bool {
	return 0 <= t.Z && t.Z < 32 &&
		0 <= t.X && t.X < 1<<t.Z &&
		0 <= t.Y && t.Y < 1<<t.Z
}

// Adjacent returns the tile offset by (dx, dy) grid cells at the same zoom.
// The result may lie outside the pyramid.
func (t ID) Adjacent(dx, dy int) ID {
	return ID{X: t.X + dx, Y: t.Y + dy, Z: t.Z}
}

// Compare orders tiles by zoom, then column, then row.
func Compare(a, b ID) int {
	if c := cmp.Compare(a.Z, b.Z); c != 0 {
		return c
	}
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

// Writer defines an interface for writing tiles to a tileset.
type Writer interface {
	// WriteTile writes a single tile to the tileset.
	WriteTile(tileID ID, tileData []byte) error

	// Finalize completes the writing process: flushes buffers and indices.
	// It must be called before closing the Writer.
	Finalize() error
}

type Reader interface {
	// ReadTile reads a single tile from the tileset.
	// It returns the tile data or an error if the tile cannot be read.
	// If the tile does not exist, it returns an empty slice with no error.
	ReadTile(tileID ID) ([]byte, error)
}

type Visitor interface {
	// VisitTiles visits all tiles in the tileset, calling the visitor for each.
	// It returns an error if visiting fails.
	// Order of tiles, upfront cpu and memory consumption are implementation-defined.
	VisitTiles(visitor func(ID, []byte) error) error
}
