package mb_test

import (
	"database/sql"
	"maps"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/ndavid/robosat.pink/mb"
	"github.com/ndavid/robosat.pink/tile"
	"github.com/stretchr/testify/require"
)

func TestWriterReader(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "tiles.mbtiles")

	tiles := map[tile.ID][]byte{
		{X: 0, Y: 0, Z: 0}: []byte("tile000"),
		{X: 1, Y: 0, Z: 1}: []byte("tile101"),
		{X: 2, Y: 3, Z: 2}: []byte("tile232"),
	}
	metadata := mb.Metadata("buffered", "png", tile.Bounds{West: -4, South: 42, East: 5, North: 51}, 2, 2)

	writer, err := mb.NewWriter(filePath, mb.WithMetadata(metadata))
	require.Nil(t, err)
	for tileID, tileData := range tiles {
		require.Nil(t, writer.WriteTile(tileID, tileData))
	}
	require.Nil(t, writer.Finalize())
	require.Nil(t, writer.Close())

	reader, err := mb.NewReader(filePath)
	require.Nil(t, err)
	defer reader.Close()

	for tileID, tileData := range tiles {
		data, err := reader.ReadTile(tileID)
		require.Nil(t, err)
		require.Equal(t, tileData, data)
	}

	data, err := reader.ReadTile(tile.ID{X: 3, Y: 3, Z: 3})
	require.Nil(t, err)
	require.Empty(t, data)

	got, err := reader.ReadMetadata()
	require.Nil(t, err)
	require.Equal(t, metadata, got)

	count, err := reader.CountTiles()
	require.Nil(t, err)
	require.Equal(t, len(tiles), count)

	require.Equal(t, tiles, maps.Collect(tile.IterTiles(reader)))
}

// The tiles table stores TMS row numbers: row 0 is the southernmost tile,
// while XYZ counts from the north.
func TestRowOrderOnDisk(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "tiles.mbtiles")

	writer, err := mb.NewWriter(filePath)
	require.Nil(t, err)
	require.Nil(t, writer.WriteTile(tile.ID{X: 3, Y: 1, Z: 2}, []byte("t")))
	require.Nil(t, writer.Finalize())
	require.Nil(t, writer.Close())

	db, err := sql.Open("sqlite3", filePath)
	require.Nil(t, err)
	defer db.Close()

	var row int
	require.Nil(t, db.QueryRow("SELECT tile_row FROM tiles WHERE zoom_level = 2 AND tile_column = 3").Scan(&row))
	require.Equal(t, 2, row)
}

func TestMetadataBounds(t *testing.T) {
	metadata := mb.Metadata("osm", "webp", tile.Bounds{West: -180, South: -85.051129, East: 180, North: 85.051129}, 0, 18)
	require.Equal(t, "-180.000000,-85.051129,180.000000,85.051129", metadata["bounds"])
	require.Equal(t, "webp", metadata["format"])
	require.Equal(t, "0", metadata["minzoom"])
	require.Equal(t, "18", metadata["maxzoom"])
}
