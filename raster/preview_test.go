package raster_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ndavid/robosat.pink/internal"
	"github.com/ndavid/robosat.pink/raster"
)

func TestHStack(t *testing.T) {
	left := solid(2, 3, 10)
	right := raster.New(3, 2, 3)
	right.Fill(20)
	right.Set(0, 1, 2, 99)

	got, err := raster.HStack(left, right)
	if err != nil {
		t.Fatalf("HStack failed: %v", err)
	}
	if got.W != 5 || got.H != 2 || got.C != 3 {
		t.Fatalf("HStack shape = (%d, %d, %d), want (5, 2, 3)", got.W, got.H, got.C)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got.At(x, y, 0) != 10 {
				t.Errorf("pixel (%d, %d) = %d, want the left buffer's 10", x, y, got.At(x, y, 0))
			}
		}
		for x := 2; x < 5; x++ {
			if got.At(x, y, 0) != 20 {
				t.Errorf("pixel (%d, %d) = %d, want the right buffer's 20", x, y, got.At(x, y, 0))
			}
		}
	}
	if got.At(2, 1, 2) != 99 {
		t.Errorf("right buffer sample landed at %d, want 99 at (2, 1)", got.At(2, 1, 2))
	}

	// Stacking must copy, not alias.
	left.Fill(0)
	if got.At(0, 0, 0) != 10 {
		t.Errorf("stacked pixels changed after mutating an input")
	}
}

func TestHStackMismatch(t *testing.T) {
	if _, err := raster.HStack(); err == nil {
		t.Errorf("HStack() of nothing succeeded, want error")
	}
	if _, err := raster.HStack(solid(2, 3, 1), raster.New(2, 3, 3)); err == nil {
		t.Errorf("HStack of different heights succeeded, want error")
	}
	if _, err := raster.HStack(solid(2, 3, 1), raster.New(2, 2, 4)); err == nil {
		t.Errorf("HStack of different channel counts succeeded, want error")
	}
}

func TestEncodeIndexedPNG(t *testing.T) {
	src, err := raster.Decode(internal.GradientTile(t, 16))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	data, err := raster.EncodeIndexedPNG(src, 8)
	if err != nil {
		t.Fatalf("EncodeIndexedPNG failed: %v", err)
	}

	got, err := raster.Decode(data)
	if err != nil {
		t.Fatalf("Decode(EncodeIndexedPNG(...)) failed: %v", err)
	}
	if got.W != 16 || got.H != 16 {
		t.Fatalf("round-tripped shape = (%d, %d), want (16, 16)", got.W, got.H)
	}

	colors := map[[3]uint8]bool{}
	for y := 0; y < got.H; y++ {
		for x := 0; x < got.W; x++ {
			colors[[3]uint8{got.At(x, y, 0), got.At(x, y, 1), got.At(x, y, 2)}] = true
		}
	}
	if len(colors) > 8 {
		t.Errorf("quantized tile has %d distinct colors, want at most 8", len(colors))
	}
}

func TestEncodeIndexedPNGSolid(t *testing.T) {
	// A uniform tile survives quantization byte for byte.
	src := solid(4, 3, 77)
	data, err := raster.EncodeIndexedPNG(src, 2)
	if err != nil {
		t.Fatalf("EncodeIndexedPNG failed: %v", err)
	}
	got, err := raster.Decode(data, 0, 1, 2)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff(src, got); diff != "" {
		t.Errorf("solid tile changed under quantization (-want +got):\n%s", diff)
	}
}

func TestEncodeIndexedPNGErrors(t *testing.T) {
	if _, err := raster.EncodeIndexedPNG(solid(4, 3, 1), 0); err == nil {
		t.Errorf("EncodeIndexedPNG with 0 colors succeeded, want error")
	}
	if _, err := raster.EncodeIndexedPNG(solid(4, 3, 1), 257); err == nil {
		t.Errorf("EncodeIndexedPNG with 257 colors succeeded, want error")
	}
	if _, err := raster.EncodeIndexedPNG(raster.New(4, 4, 1), 16); err == nil {
		t.Errorf("EncodeIndexedPNG of a single-channel buffer succeeded, want error")
	}
}
