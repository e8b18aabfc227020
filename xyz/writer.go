package xyz

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ndavid/robosat.pink/tile"
)

// Writer implements the tile.Writer interface over an XYZ directory tree,
// creating z/x directories as needed.
type Writer struct {
	rootDir string
	ext     string
}

// NewWriter creates a new Writer storing tiles under rootDir with the given
// file extension. A leading dot in ext is accepted.
func NewWriter(rootDir, ext string) (*Writer, error) {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" || strings.ContainsAny(ext, `/\`) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
	}
	return &Writer{rootDir, ext}, nil
}

func (w *Writer) WriteTile(tileID tile.ID, tileData []byte) error {
	filePath := tilePath(w.rootDir, tileID, w.ext)

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}

	return os.WriteFile(filePath, tileData, 0644)
}

func (w *Writer) Finalize() error {
	return nil
}
