// Package text keeps a mutable text buffer together with the screen
// geometry derived from it: measured size, aligned draw position and caret
// positions for hit-testing.
package text

import (
	"fmt"
	"math"
	"unicode/utf8"
)

const (
	// heightCorrection is subtracted from every measured height. The
	// measurement backends report glyph boxes two pixels taller than the
	// baseline-to-baseline distance the layout expects.
	heightCorrection = 2

	// maxFormatted bounds the output of SetBufferf, in bytes.
	maxFormatted = 511

	// maxCaretPrefix bounds the prefix measured by CharPos, in characters.
	maxCaretPrefix = 511
)

// Text is a text buffer with cached layout. Size and Pos always reflect the
// last buffer content, font, padding and bounds: every setter recomputes
// them before returning.
//
// A Text is owned by a single element and is not safe for concurrent use.
type Text struct {
	buf []rune

	size Size
	pos  Point

	bounds    Rect
	pad       Padding
	alignment Alignment
	color     Color

	font     *Font
	measurer Measurer
}

// New creates an empty text object centred in its bounds. A nil font selects
// DefaultFont.
func New(m Measurer, f *Font) *Text {
	if f == nil {
		f = DefaultFont
	}
	return &Text{
		alignment: AlignCenter,
		color:     DefaultColor,
		font:      f,
		measurer:  m,
	}
}

// Destroy releases the buffer. The text must not be used afterwards;
// calling Destroy again is a no-op.
func (t *Text) Destroy() {
	t.buf = nil
	t.measurer = nil
}

// SetBuffer replaces the content with s.
//
// Capacity never shrinks: assigning a shorter string reuses the existing
// storage, so repeated edits do not reallocate.
func (t *Text) SetBuffer(s string) {
	need := utf8.RuneCountInString(s) + 1
	if cap(t.buf) < need {
		t.buf = make([]rune, 0, need)
	}
	t.buf = t.buf[:0]
	for _, r := range s {
		t.buf = append(t.buf, r)
	}
	t.UpdateDimensions()
}

// SetBufferf replaces the content with formatted output. The formatted
// string is cut to 511 bytes, on a character boundary.
func (t *Text) SetBufferf(format string, args ...any) {
	s := fmt.Sprintf(format, args...)
	if len(s) > maxFormatted {
		cut := maxFormatted
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	t.SetBuffer(s)
}

// String returns the buffer content.
func (t *Text) String() string {
	return string(t.buf)
}

// Len returns the number of characters in the buffer.
func (t *Text) Len() int {
	return len(t.buf)
}

// Capacity returns the number of characters the buffer can hold, including
// room for a terminator. It is at least Len()+1 once content has been set.
func (t *Text) Capacity() int {
	return cap(t.buf)
}

// Size returns the measured pixel size of the content.
func (t *Text) Size() Size { return t.size }

// Pos returns the draw position. Y denotes the text baseline.
func (t *Text) Pos() Point { return t.pos }

// Bounds returns the bounding box the text is aligned in.
func (t *Text) Bounds() Rect { return t.bounds }

// SetBounds moves the text to a new bounding box.
func (t *Text) SetBounds(r Rect) {
	t.bounds = r
	t.UpdatePosition()
}

// Padding returns the insets applied to the bounds.
func (t *Text) Padding() Padding { return t.pad }

// SetPadding changes the insets applied to the bounds.
func (t *Text) SetPadding(p Padding) {
	t.pad = p
	t.UpdatePosition()
}

// Alignment returns the alignment mode.
func (t *Text) Alignment() Alignment { return t.alignment }

// SetAlignment changes how the text is placed within its bounds.
func (t *Text) SetAlignment(a Alignment) {
	t.alignment = a
	t.UpdatePosition()
}

// Color returns the text colour.
func (t *Text) Color() Color { return t.color }

// SetColor changes the text colour.
func (t *Text) SetColor(c Color) { t.color = c }

// Font returns the font the text is measured with.
func (t *Text) Font() *Font { return t.font }

// SetFont changes the font and remeasures. A nil font selects DefaultFont.
func (t *Text) SetFont(f *Font) {
	if f == nil {
		f = DefaultFont
	}
	t.font = f
	t.UpdateDimensions()
}

// UpdateDimensions remeasures the buffer and recomputes the position.
func (t *Text) UpdateDimensions() {
	w, h := t.measurer.MeasureText(t.font, string(t.buf))
	t.size = Size{W: w, H: h - heightCorrection}
	t.UpdatePosition()
}

// UpdatePosition recomputes the draw position from the bounds, padding and
// alignment. The vertical anchor is lifted by one font size because the
// position denotes a baseline rather than a top-left corner.
func (t *Text) UpdatePosition() {
	x := t.bounds.X + t.pad.Left
	y := t.bounds.Y + t.pad.Top - t.font.Size
	w := t.bounds.W - t.pad.Left - t.pad.Right
	h := t.bounds.H - t.pad.Top - t.pad.Bottom

	ha, va := t.alignment.split()

	switch ha {
	case hLeft:
		t.pos.X = x
	case hRight:
		t.pos.X = x + w - t.size.W
	default:
		t.pos.X = x + (w-t.size.W)/2
	}

	switch va {
	case vTop:
		t.pos.Y = y + t.size.H
	case vBottom:
		t.pos.Y = y + h
	default:
		t.pos.Y = y + t.size.H + (h-t.size.H)/2
	}
}

// CharPos returns the caret position in front of the character at index,
// relative to the start of the text. X is the measured width of the
// preceding characters and Y the measured height.
func (t *Text) CharPos(index int) (x, y int) {
	if len(t.buf) == 0 || index <= 0 {
		return 0, t.font.Size
	}
	n := min(index, len(t.buf), maxCaretPrefix)
	return t.measurer.MeasureText(t.font, string(t.buf[:n]))
}

// ClosestChar returns the caret index nearest to x, measured the same way
// as CharPos. Every index from 0 to Len() inclusive is a candidate; ties go
// to the lower index. The vertical coordinate is unused since text is laid
// out on one line.
func (t *Text) ClosestChar(x, _ int) int {
	best, dist := 0, math.MaxInt
	for i := 0; i <= len(t.buf); i++ {
		cx, _ := t.CharPos(i)
		d := cx - x
		if d < 0 {
			d = -d
		}
		if d < dist {
			best, dist = i, d
		}
	}
	return best
}
