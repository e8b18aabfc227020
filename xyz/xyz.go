// Package xyz provides API for reading and writing tiles in XYZ directory
// format, where tiles are stored as individual files with paths like
// "/z/x/y.ext". Reading does not care which extension a tile carries.
package xyz

import (
	"errors"
	"path/filepath"
	"regexp"
	"strconv"

	"github.com/ndavid/robosat.pink/tile"
)

var (
	ErrNotDirectory     = errors.New("rsp: tileset root is not a directory")
	ErrInvalidExtension = errors.New("rsp: invalid tile extension")
)

// tilePathRegexp matches z/x/y tile paths relative to the tree root, with
// any file extension.
var tilePathRegexp = regexp.MustCompile(`^(?P<z>\d+)/(?P<x>\d+)/(?P<y>\d+)\.[^/]+$`)

func tilePath(rootDir string, tileID tile.ID, ext string) string {
	return filepath.Join(rootDir,
		strconv.Itoa(tileID.Z),
		strconv.Itoa(tileID.X),
		strconv.Itoa(tileID.Y)+"."+ext)
}
