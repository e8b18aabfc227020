// Package cover reads and writes tile worklists as line-delimited CSV, one
// "x,y,z" row per tile.
package cover

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ndavid/robosat.pink/tile"
)

// Read parses a worklist. Blank lines are skipped, row order is preserved.
func Read(r io.Reader) ([]tile.ID, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3

	var tiles []tile.ID
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("rsp: reading cover: %w", err)
		}

		var coords [3]int
		for i, field := range record {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				line, _ := reader.FieldPos(i)
				return nil, fmt.Errorf("rsp: cover line %d: %q is not a tile coordinate", line, field)
			}
			coords[i] = v
		}
		tiles = append(tiles, tile.ID{X: coords[0], Y: coords[1], Z: coords[2]})
	}
	return tiles, nil
}

// ReadFile reads a worklist from a CSV file.
func ReadFile(path string) ([]tile.ID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// Write emits one "x,y,z" row per tile.
func Write(w io.Writer, tiles []tile.ID) error {
	writer := csv.NewWriter(w)
	for _, tileID := range tiles {
		record := []string{
			strconv.Itoa(tileID.X),
			strconv.Itoa(tileID.Y),
			strconv.Itoa(tileID.Z),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile writes a worklist to a CSV file.
func WriteFile(path string, tiles []tile.ID) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, tiles); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
