package internal

import (
	"testing"

	"github.com/ndavid/robosat.pink/raster"
)

// SolidTile returns an encoded PNG tile of one uniform color on all three
// channels.
func SolidTile(t *testing.T, ts int, v uint8) []byte {
	t.Helper()

	b := raster.New(ts, ts, 3)
	b.Fill(v)

	data, err := raster.EncodePNG(b)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

// GradientTile returns an encoded PNG tile whose channels 0 and 1 hold each
// pixel's x and y coordinates. Any misplaced copy of its pixels is visible
// in the samples themselves.
func GradientTile(t *testing.T, ts int) []byte {
	t.Helper()

	b := raster.New(ts, ts, 3)
	for y := 0; y < ts; y++ {
		for x := 0; x < ts; x++ {
			b.Set(x, y, 0, uint8(x))
			b.Set(x, y, 1, uint8(y))
			b.Set(x, y, 2, uint8(x+y))
		}
	}

	data, err := raster.EncodePNG(b)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
