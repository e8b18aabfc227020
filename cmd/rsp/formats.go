package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/ndavid/robosat.pink/mb"
	"github.com/ndavid/robosat.pink/tile"
	"github.com/ndavid/robosat.pink/xyz"
	"github.com/schollz/progressbar/v3"
)

// store is a tile source that can be both scanned and addressed.
type store interface {
	tile.Reader
	tile.Visitor
}

func isMBTiles(path string) bool {
	return strings.HasSuffix(path, ".mbtiles")
}

// openStore opens a tile store by path shape: an .mbtiles file or an
// xyz directory tree.
func openStore(path string) (store, error) {
	if isMBTiles(path) {
		return mb.NewReader(path)
	}
	return xyz.NewReader(path)
}

// createStore creates a tile store by path shape. The extension applies to
// xyz trees, the metadata to MBTiles files.
func createStore(path, ext string, metadata map[string]string) (tile.Writer, error) {
	if isMBTiles(path) {
		return mb.NewWriter(path, mb.WithMetadata(metadata), mb.WithLogger(slog.Default()))
	}
	return xyz.NewWriter(path, ext)
}

func tilesetName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".mbtiles")
}

// tilesetMetadata summarizes a worklist into MBTiles metadata rows.
func tilesetMetadata(name, format string, worklist []tile.ID) map[string]string {
	bounds := worklist[0].Bounds()
	minZoom, maxZoom := worklist[0].Z, worklist[0].Z
	for _, tileID := range worklist[1:] {
		b := tileID.Bounds()
		bounds.West = min(bounds.West, b.West)
		bounds.South = min(bounds.South, b.South)
		bounds.East = max(bounds.East, b.East)
		bounds.North = max(bounds.North, b.North)
		minZoom = min(minZoom, tileID.Z)
		maxZoom = max(maxZoom, tileID.Z)
	}
	return mb.Metadata(name, format, bounds, minZoom, maxZoom)
}

// scanTiles collects every tile address in the store.
func scanTiles(reader store) ([]tile.ID, error) {
	bar := scanBar(reader)

	var worklist []tile.ID
	err := reader.VisitTiles(func(tileID tile.ID, _ []byte) error {
		worklist = append(worklist, tileID)
		bar.Add(1)
		return nil
	})
	bar.Finish()
	fmt.Println()

	return worklist, err
}

func scanBar(reader store) *progressbar.ProgressBar {
	if counter, ok := reader.(interface{ CountTiles() (int, error) }); ok {
		if n, err := counter.CountTiles(); err == nil {
			return progressbar.New(n)
		}
	}
	return progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
}
