package xyz

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ndavid/robosat.pink/tile"
)

// Reader implements the tile.Reader and tile.Visitor interfaces over an XYZ
// directory tree.
type Reader struct {
	rootDir string
}

// NewReader creates a new Reader for the given tree root (e.g. "/home/user/tiles").
func NewReader(rootDir string) (*Reader, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %v", ErrNotDirectory, rootDir)
	}
	return &Reader{rootDir}, nil
}

// Lookup returns the path of the file holding the tile, whatever its
// extension. When several extensions exist the lexically first wins.
func (r *Reader) Lookup(tileID tile.ID) (string, bool) {
	pattern := filepath.Join(r.rootDir,
		strconv.Itoa(tileID.Z),
		strconv.Itoa(tileID.X),
		strconv.Itoa(tileID.Y)+".*")

	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}

func (r *Reader) ReadTile(tileID tile.ID) ([]byte, error) {
	filePath, ok := r.Lookup(tileID)
	if !ok {
		return make([]byte, 0), nil
	}

	tileData, err := os.ReadFile(filePath)
	if os.IsNotExist(err) {
		return make([]byte, 0), nil
	}
	if err != nil {
		return nil, err
	}
	return tileData, nil
}

func (r *Reader) VisitTiles(visitor func(tile.ID, []byte) error) error {
	return filepath.WalkDir(r.rootDir, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(r.rootDir, filePath)
		if err != nil {
			return err
		}

		matches := tilePathRegexp.FindStringSubmatch(filepath.ToSlash(relPath))
		if matches == nil {
			return nil
		}

		z, _ := strconv.Atoi(matches[tilePathRegexp.SubexpIndex("z")])
		x, _ := strconv.Atoi(matches[tilePathRegexp.SubexpIndex("x")])
		y, _ := strconv.Atoi(matches[tilePathRegexp.SubexpIndex("y")])

		tileData, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}

		return visitor(tile.ID{X: x, Y: y, Z: z}, tileData)
	})
}
