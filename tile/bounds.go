package tile

import (
	"fmt"

	"github.com/paulmach/orb/maptile"
)

// Bounds is the geographic bounding box of a tile, in WGS84 degrees.
type Bounds struct {
	West  float64
	South float64
	East  float64
	North float64
}

// Bounds returns the WGS84 bounding box of the tile under the standard
// Web Mercator tiling. The tile must be Valid.
func (t ID) Bounds() Bounds {
	b := maptile.New(uint32(t.X), uint32(t.Y), maptile.Zoom(t.Z)).Bound()
	return Bounds{
		West:  b.Min.Lon(),
		South: b.Min.Lat(),
		East:  b.Max.Lon(),
		North: b.Max.Lat(),
	}
}

// PixelLocation converts a fractional pixel position within the tile to a
// lon/lat location. fx runs west to east, fy south to north; both must lie
// in [0, 1].
func (t ID) PixelLocation(fx, fy float64) (lon, lat float64) {
	return t.Bounds().At(fx, fy)
}

// At linearly interpolates a fractional position across the bounding box.
// It panics if fx or fy falls outside [0, 1]; callers own that contract.
func (b Bounds) At(fx, fy float64) (lon, lat float64) {
	if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
		panic(fmt.Sprintf("rsp: pixel fraction out of range [0, 1]: (%v, %v)", fx, fy))
	}
	return lerp(b.West, b.East, fx), lerp(b.South, b.North, fy)
}

func lerp(a, b, c float64) float64 {
	return a + c*(b-a)
}
