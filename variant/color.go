package variant

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGBA color. RGB channels are carried by a colorful.Color
// (components in [0,1]); Alpha is in [0,1] with 1 fully opaque.
type Color struct {
	colorful.Color
	Alpha float64
}

// NewColor creates a color from RGBA components in [0,1].
func NewColor(r, g, b, a float64) Color {
	return Color{Color: colorful.Color{R: r, G: g, B: b}, Alpha: a}
}

// ColorFromRGBA255 creates a color from 8-bit RGBA components.
func ColorFromRGBA255(r, g, b, a uint8) Color {
	return Color{
		Color: colorful.Color{
			R: float64(r) / 255.0,
			G: float64(g) / 255.0,
			B: float64(b) / 255.0,
		},
		Alpha: float64(a) / 255.0,
	}
}

// Hex returns the color as "#rrggbbaa". The alpha digits are always
// present so encoded colors round-trip without a separate alpha field.
func (c Color) Hex() string {
	return fmt.Sprintf("%s%02x", c.Color.Hex(), clampByte(c.Alpha))
}

// Equal reports whether two colors are equal at 8-bit channel precision,
// the precision of the hex encoding.
func (c Color) Equal(other Color) bool {
	return c.Hex() == other.Hex()
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". A missing alpha component
// means fully opaque.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	switch len(s) {
	case 7:
		rgb, err := colorful.Hex(s)
		if err != nil {
			return Color{}, err
		}
		return Color{Color: rgb, Alpha: 1.0}, nil
	case 9:
		rgb, err := colorful.Hex(s[:7])
		if err != nil {
			return Color{}, err
		}
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha component in %q: %w", s, err)
		}
		return Color{Color: rgb, Alpha: float64(a) / 255.0}, nil
	default:
		return Color{}, fmt.Errorf("invalid color format %q, expected #rrggbb or #rrggbbaa", s)
	}
}

func clampByte(f float64) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 1:
		return 255
	default:
		return uint8(f*255.0 + 0.5)
	}
}
