package text

import (
	"fmt"
	"strings"
)

// Rect is a pixel rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y int
	W, H int
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Point is a pixel coordinate.
type Point struct {
	X, Y int
}

// Size is a pixel extent.
type Size struct {
	W, H int
}

// Padding insets text from the edges of its bounding box.
type Padding struct {
	Top, Bottom, Left, Right int
}

// Color is a 32-bit ARGB colour.
type Color uint32

// DefaultColor is the toolkit's default text colour.
const DefaultColor Color = 0xFFE6E6E6

// ParseColor parses "#RRGGBB" or "#AARRGGBB".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	var v uint32
	if _, err := fmt.Sscanf(hex, "%x", &v); err != nil {
		return 0, fmt.Errorf("text: invalid colour %q: %w", s, err)
	}
	switch len(hex) {
	case 6:
		return Color(0xFF000000 | v), nil
	case 8:
		return Color(v), nil
	default:
		return 0, fmt.Errorf("text: invalid colour %q", s)
	}
}

func (c Color) String() string {
	return fmt.Sprintf("#%08X", uint32(c))
}

// FontFlags selects a style variant of a font family.
type FontFlags uint8

const (
	FontBold FontFlags = 1 << iota
	FontItalic
)

// Font describes a typeface at a pixel size. Fonts are shared between text
// objects and never owned by them.
type Font struct {
	Family string
	Size   int
	Flags  FontFlags
}

// DefaultFont is used by text objects created without a font.
var DefaultFont = &Font{Family: "goregular", Size: 12}

// Measurer measures the pixel extent of a string rendered with a font.
// It is supplied by the renderer.
type Measurer interface {
	MeasureText(f *Font, s string) (w, h int)
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(f *Font, s string) (w, h int)

// MeasureText calls fn.
func (fn MeasurerFunc) MeasureText(f *Font, s string) (w, h int) {
	return fn(f, s)
}
