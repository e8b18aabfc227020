// Package colors builds the color palettes used for indexed label tiles.
package colors

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"golang.org/x/image/colornames"
)

var ErrUnknownColor = errors.New("rsp: unknown color")

// Make builds a palette from CSS3 color names (lowercase, e.g. "deeppink")
// or hex values in #RRGGBB form. Palette entry order follows the arguments,
// so the first color is class index zero.
func Make(specs ...string) (color.Palette, error) {
	if len(specs) == 0 || len(specs) > 256 {
		return nil, fmt.Errorf("rsp: palette needs 1 to 256 colors, got %d", len(specs))
	}

	palette := make(color.Palette, len(specs))
	for i, spec := range specs {
		c, err := parseColor(spec)
		if err != nil {
			return nil, err
		}
		palette[i] = c
	}
	return palette, nil
}

func parseColor(spec string) (color.NRGBA, error) {
	if len(spec) > 0 && spec[0] == '#' {
		if len(spec) != 7 {
			return color.NRGBA{}, fmt.Errorf("%w: %q is not #RRGGBB", ErrUnknownColor, spec)
		}
		var channels [3]uint8
		for i := range channels {
			v, err := strconv.ParseUint(spec[1+2*i:3+2*i], 16, 8)
			if err != nil {
				return color.NRGBA{}, fmt.Errorf("%w: %q is not #RRGGBB", ErrUnknownColor, spec)
			}
			channels[i] = uint8(v)
		}
		return color.NRGBA{R: channels[0], G: channels[1], B: channels[2], A: 0xff}, nil
	}

	c, ok := colornames.Map[spec]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrUnknownColor, spec)
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, nil
}

// Complementary returns the palette with every hue rotated by half a turn at
// unchanged saturation and value.
func Complementary(palette color.Palette) color.Palette {
	comp := make(color.Palette, len(palette))
	for i, entry := range palette {
		c := color.NRGBAModel.Convert(entry).(color.NRGBA)
		h, s, v := rgbToHSV(c.R, c.G, c.B)
		r, g, b := hsvToRGB(math.Mod(h+0.5, 1), s, v)
		comp[i] = color.NRGBA{R: r, G: g, B: b, A: c.A}
	}
	return comp
}

// rgbToHSV converts 8-bit RGB to hue, saturation and value, each in [0, 1].
func rgbToHSV(r8, g8, b8 uint8) (h, s, v float64) {
	r, g, b := float64(r8)/255, float64(g8)/255, float64(b8)/255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	v = max
	if max == min {
		return 0, 0, v
	}
	d := max - min
	s = d / max

	switch max {
	case r:
		h = (g - b) / d
		if h < 0 {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	return h / 6, s, v
}

func hsvToRGB(h, s, v float64) (uint8, uint8, uint8) {
	if s == 0 {
		c := toByte(v)
		return c, c, c
	}

	i := int(h*6) % 6
	f := h*6 - math.Floor(h*6)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch i {
	case 0:
		return toByte(v), toByte(t), toByte(p)
	case 1:
		return toByte(q), toByte(v), toByte(p)
	case 2:
		return toByte(p), toByte(v), toByte(t)
	case 3:
		return toByte(p), toByte(q), toByte(v)
	case 4:
		return toByte(t), toByte(p), toByte(v)
	default:
		return toByte(v), toByte(p), toByte(q)
	}
}

func toByte(v float64) uint8 {
	return uint8(math.Round(v * 255))
}
