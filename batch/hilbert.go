package batch

import (
	"cmp"
	"slices"

	"github.com/google/hilbert"
	"github.com/ndavid/robosat.pink/tile"
)

// SortHilbert orders the worklist along the Hilbert curve of each zoom
// level, zoom levels ascending. Grid neighbors end up near each other in
// the list.
func SortHilbert(worklist []tile.ID) {
	slices.SortFunc(worklist, func(a, b tile.ID) int {
		return cmp.Compare(hilbertIndex(a), hilbertIndex(b))
	})
}

func hilbertIndex(tileID tile.ID) uint64 {
	if !tileID.Valid() {
		// Addresses outside the pyramid have no curve position.
		return 0
	}

	h, _ := hilbert.NewHilbert(1 << tileID.Z)
	d, _ := h.MapInverse(tileID.X, tileID.Y)

	// Offset by the number of tiles on all lower zoom levels, so indices
	// order by zoom first and stay unique across levels.
	tilesBelow := (1<<(tileID.Z*2) - 1) / 3
	return uint64(d + tilesBelow)
}
