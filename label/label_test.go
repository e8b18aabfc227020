package label_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ndavid/robosat.pink/colors"
	"github.com/ndavid/robosat.pink/label"
	"github.com/ndavid/robosat.pink/raster"
	"github.com/ndavid/robosat.pink/tile"
	"github.com/ndavid/robosat.pink/xyz"
)

func checkerboard(side int) *raster.Buffer {
	b := raster.New(side, side, 1)
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			b.Set(x, y, 0, uint8((x+y)%2))
		}
	}
	return b
}

func TestEncodeDecode(t *testing.T) {
	palette, err := colors.Make("white", "deeppink")
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}

	want := checkerboard(8)
	data, err := label.Encode(want, palette)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	got, err := label.Decode(data)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("class indices mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeErrors(t *testing.T) {
	palette, err := colors.Make("white", "deeppink")
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}

	if _, err := label.Encode(raster.New(4, 4, 3), palette); !errors.Is(err, label.ErrNotIndexed) {
		t.Errorf("Encode(3-channel) error = %v, want ErrNotIndexed", err)
	}

	outside := raster.New(4, 4, 1)
	outside.Fill(2)
	if _, err := label.Encode(outside, palette); !errors.Is(err, label.ErrClassIndex) {
		t.Errorf("Encode(index 2 of 2-color palette) error = %v, want ErrClassIndex", err)
	}
}

func TestColorize(t *testing.T) {
	palette, err := colors.Make("black", "deeppink")
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}

	got, err := label.Colorize(checkerboard(4), palette)
	if err != nil {
		t.Fatalf("Colorize failed: %v", err)
	}
	if got.W != 4 || got.H != 4 || got.C != 3 {
		t.Fatalf("Colorize shape = (%d, %d, %d), want (4, 4, 3)", got.W, got.H, got.C)
	}

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := [3]uint8{}
			if (x+y)%2 == 1 {
				want = [3]uint8{0xff, 0x14, 0x93}
			}
			sample := [3]uint8{got.At(x, y, 0), got.At(x, y, 1), got.At(x, y, 2)}
			if sample != want {
				t.Errorf("pixel (%d, %d) = %v, want %v", x, y, sample, want)
			}
		}
	}
}

func TestColorizeErrors(t *testing.T) {
	palette, err := colors.Make("black", "deeppink")
	if err != nil {
		t.Fatalf("Make failed: %v", err)
	}

	if _, err := label.Colorize(raster.New(4, 4, 3), palette); !errors.Is(err, label.ErrNotIndexed) {
		t.Errorf("Colorize(3-channel) error = %v, want ErrNotIndexed", err)
	}

	outside := raster.New(4, 4, 1)
	outside.Fill(9)
	if _, err := label.Colorize(outside, palette); !errors.Is(err, label.ErrClassIndex) {
		t.Errorf("Colorize(index 9 of 2-color palette) error = %v, want ErrClassIndex", err)
	}
}

func TestDecodeRejectsContinuousTone(t *testing.T) {
	rgb := raster.New(4, 4, 3)
	rgb.Fill(42)
	data, err := raster.EncodePNG(rgb)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}

	if _, err := label.Decode(data); !errors.Is(err, label.ErrNotIndexed) {
		t.Errorf("Decode(truecolor PNG) error = %v, want ErrNotIndexed", err)
	}
}

func TestWriter(t *testing.T) {
	rootDir := t.TempDir()

	writer, err := label.NewWriter(rootDir, "white", "deeppink")
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	tileID := tile.ID{X: 69623, Y: 104945, Z: 18}
	want := checkerboard(4)
	if err := writer.WriteLabel(tileID, want); err != nil {
		t.Fatalf("WriteLabel failed: %v", err)
	}
	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(rootDir, "18", "69623", "104945.png"))
	if err != nil {
		t.Fatalf("label file not written where expected: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding written label: %v", err)
	}
	paletted, ok := img.(*image.Paletted)
	if !ok {
		t.Fatalf("written label decoded as %T, want *image.Paletted", img)
	}
	// The on-disk palette is the complement of the base colors.
	wantColors := []color.NRGBA{
		{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		{R: 0x14, G: 0xff, B: 0x80, A: 0xff},
	}
	if len(paletted.Palette) < len(wantColors) {
		t.Fatalf("palette has %d entries, want %d", len(paletted.Palette), len(wantColors))
	}
	for i, wantColor := range wantColors {
		if got := color.NRGBAModel.Convert(paletted.Palette[i]).(color.NRGBA); got != wantColor {
			t.Errorf("palette[%d] = %v, want %v", i, got, wantColor)
		}
	}

	reader, err := xyz.NewReader(rootDir)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	read, err := reader.ReadTile(tileID)
	if err != nil {
		t.Fatalf("ReadTile failed: %v", err)
	}

	got, err := label.Decode(read)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("written label mismatch (-want +got):\n%s", diff)
	}
}

func TestNewWriterUnknownColor(t *testing.T) {
	if _, err := label.NewWriter(t.TempDir(), "white", "not-a-color"); !errors.Is(err, colors.ErrUnknownColor) {
		t.Errorf("NewWriter(unknown color) error = %v, want ErrUnknownColor", err)
	}
}
