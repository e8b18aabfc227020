package mb

import (
	"fmt"
	"strconv"

	"github.com/ndavid/robosat.pink/tile"
)

// Metadata assembles the metadata rows of a raster tileset: name, tile image
// format ("png", "jpg" or "webp"), geographic bounds and the zoom range.
func Metadata(name, format string, bounds tile.Bounds, minZoom, maxZoom int) map[string]string {
	return map[string]string{
		"name":    name,
		"format":  format,
		"type":    "baselayer",
		"version": "1",
		"bounds":  fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", bounds.West, bounds.South, bounds.East, bounds.North),
		"minzoom": strconv.Itoa(minZoom),
		"maxzoom": strconv.Itoa(maxZoom),
	}
}
