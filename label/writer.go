package label

import (
	"image/color"

	"github.com/ndavid/robosat.pink/colors"
	"github.com/ndavid/robosat.pink/raster"
	"github.com/ndavid/robosat.pink/tile"
	"github.com/ndavid/robosat.pink/xyz"
)

// Writer stores label tiles as indexed PNG files in an XYZ directory tree.
type Writer struct {
	tree    *xyz.Writer
	palette color.Palette
}

// NewWriter creates a Writer rooted at rootDir. Labels are encoded in the
// complementary palette derived from the base class colors, one per class
// index, named or in #RRGGBB form.
func NewWriter(rootDir string, baseColors ...string) (*Writer, error) {
	palette, err := colors.Make(baseColors...)
	if err != nil {
		return nil, err
	}
	tree, err := xyz.NewWriter(rootDir, "png")
	if err != nil {
		return nil, err
	}
	return &Writer{tree: tree, palette: colors.Complementary(palette)}, nil
}

// WriteLabel encodes the class-index buffer and writes it as z/x/y.png.
func (w *Writer) WriteLabel(tileID tile.ID, classes *raster.Buffer) error {
	data, err := Encode(classes, w.palette)
	if err != nil {
		return err
	}
	return w.tree.WriteTile(tileID, data)
}

func (w *Writer) Finalize() error {
	return w.tree.Finalize()
}
