package retained

import (
	"github.com/agiangrant/tactile/input"
	"github.com/agiangrant/tactile/text"
)

// ============================================================================
// Button
// ============================================================================

type buttonCaps struct{ NopCapabilities }

// NewButton creates a push button. Buttons react to the mouse and, while
// focused, to Return and Space.
func NewButton(t *Tree, parent *Element, label string) *Element {
	e := t.NewElement(parent, KindButton, buttonCaps{})
	e.flags |= FlagBorder | FlagBackground | FlagMouseCtrl | FlagKbCtrl
	e.SetText(label)
	return e
}

func (buttonCaps) Render(e *Element) {
	if s := e.tree.skin; s != nil {
		s.DrawButton(e)
	}
}

func (buttonCaps) MouseEnter(e *Element) { e.RequestRedraw() }
func (buttonCaps) MouseLeave(e *Element) { e.RequestRedraw() }

func (buttonCaps) MouseClick(e *Element, _ MouseButton, _, _ int)   { e.RequestRedraw() }
func (buttonCaps) MouseRelease(e *Element, _ MouseButton, _, _ int) { e.RequestRedraw() }

// KeyPress turns Return and Space into click and release events. Other keys
// are ignored.
func (buttonCaps) KeyPress(e *Element, key input.Key, down bool) bool {
	if key != input.KeyReturn && key != input.KeySpace {
		return true
	}
	if down {
		e.setState(StatePressed, true)
		e.fire(EventClick, 0, 0)
	} else {
		e.setState(StatePressed, false)
		e.fire(EventRelease, 0, 0)
	}
	e.RequestRedraw()
	return true
}

// ============================================================================
// Label
// ============================================================================

type labelCaps struct{ NopCapabilities }

// NewLabel creates a static, left-aligned text element. Labels do not take
// mouse or keyboard input, so hit-testing passes through them.
func NewLabel(t *Tree, parent *Element, s string) *Element {
	e := t.NewElement(parent, KindLabel, labelCaps{})
	e.text.SetAlignment(text.AlignLeft)
	e.SetText(s)
	return e
}

func (labelCaps) Render(e *Element) {
	if s := e.tree.skin; s != nil {
		s.DrawLabel(e)
	}
}

// ============================================================================
// Window
// ============================================================================

// windowCaps moves the window with the cursor while it is dragged, keeping
// the grab offset from the press.
type windowCaps struct {
	NopCapabilities
	grabX, grabY int
}

// NewWindow creates a draggable top-level window with a title.
func NewWindow(t *Tree, title string, bounds text.Rect) *Element {
	caps := &windowCaps{}
	e := t.NewElement(nil, KindWindow, caps)
	e.flags |= FlagBorder | FlagBackground | FlagMouseCtrl | FlagDraggable
	e.text.SetAlignment(text.AlignTop | text.AlignCenterH)
	e.SetBounds(bounds)
	e.SetText(title)
	return e
}

func (w *windowCaps) Render(e *Element) {
	if s := e.tree.skin; s != nil {
		s.DrawWindow(e)
	}
}

func (w *windowCaps) MouseClick(e *Element, _ MouseButton, x, y int) {
	w.grabX, w.grabY = x-e.bounds.X, y-e.bounds.Y
	e.tree.SendToTop(e)
}

func (w *windowCaps) MouseDrag(e *Element, x, y int) {
	dx := x - w.grabX - e.bounds.X
	dy := y - w.grabY - e.bounds.Y
	e.tree.walk(e, func(c *Element) bool {
		c.SetPos(c.bounds.X+dx, c.bounds.Y+dy)
		return true
	})
}

// ============================================================================
// EditBox
// ============================================================================

// EditBox is a single-line text input. Typed characters are inserted at the
// caret; clicking places the caret at the nearest character boundary.
type EditBox struct {
	NopCapabilities
	elem  *Element
	caret int
	max   int
}

// NewEditBox creates an empty edit box.
func NewEditBox(t *Tree, parent *Element) *EditBox {
	b := &EditBox{}
	b.elem = t.NewElement(parent, KindEditBox, b)
	b.elem.flags |= FlagBorder | FlagBackground | FlagMouseCtrl | FlagKbCtrl
	b.elem.text.SetAlignment(text.AlignLeft)
	b.elem.text.SetPadding(text.Padding{Left: 4, Right: 4})
	return b
}

// Element returns the element backing the edit box.
func (b *EditBox) Element() *Element { return b.elem }

// Caret returns the caret index.
func (b *EditBox) Caret() int { return b.caret }

// SetMaxLength limits the number of characters. Zero means no limit.
func (b *EditBox) SetMaxLength(n int) { b.max = n }

// SetValue replaces the content and moves the caret to the end.
func (b *EditBox) SetValue(s string) {
	b.elem.SetText(s)
	b.caret = b.elem.text.Len()
}

// Value returns the content.
func (b *EditBox) Value() string { return b.elem.Text() }

func (b *EditBox) Render(e *Element) {
	if s := e.tree.skin; s != nil {
		s.DrawEditBox(e, b.caret)
	}
}

func (b *EditBox) MouseEnter(e *Element) { e.RequestRedraw() }
func (b *EditBox) MouseLeave(e *Element) { e.RequestRedraw() }

func (b *EditBox) MouseClick(e *Element, _ MouseButton, x, y int) {
	pos := e.text.Pos()
	b.caret = e.text.ClosestChar(x-pos.X, y-pos.Y)
	e.RequestRedraw()
}

func (b *EditBox) Character(e *Element, c rune) bool {
	if c < 0x20 || c == 0x7F {
		return false
	}
	runes := []rune(e.text.String())
	if b.max > 0 && len(runes) >= b.max {
		return true
	}
	b.caret = min(b.caret, len(runes))
	runes = append(runes[:b.caret], append([]rune{c}, runes[b.caret:]...)...)
	b.caret++
	e.SetText(string(runes))
	return true
}

func (b *EditBox) KeyPress(e *Element, key input.Key, down bool) bool {
	if !down {
		return true
	}
	runes := []rune(e.text.String())
	b.caret = min(b.caret, len(runes))

	switch key {
	case input.KeyBackspace:
		if b.caret == 0 {
			return true
		}
		runes = append(runes[:b.caret-1], runes[b.caret:]...)
		b.caret--
		e.SetText(string(runes))
	case input.KeyDelete:
		if b.caret == len(runes) {
			return true
		}
		runes = append(runes[:b.caret], runes[b.caret+1:]...)
		e.SetText(string(runes))
	case input.KeyLeft:
		b.caret = max(b.caret-1, 0)
	case input.KeyRight:
		b.caret = min(b.caret+1, len(runes))
	case input.KeyHome:
		b.caret = 0
	case input.KeyEnd:
		b.caret = len(runes)
	default:
		return false
	}
	e.RequestRedraw()
	return true
}
