package retained

import (
	"github.com/agiangrant/tactile/input"
	"github.com/agiangrant/tactile/text"
)

// ============================================================================
// Flags
// ============================================================================

// Flags are persistent element properties set by the owner.
type Flags uint32

const (
	FlagVisible Flags = 1 << iota
	FlagMouseCtrl
	FlagKbCtrl
	FlagDraggable
	FlagBorder
	FlagBackground
)

// State holds the transient interaction state maintained by the Dispatcher.
type State uint8

const (
	StateHover State = 1 << iota
	StatePressed
	StateFocus
)

// Kind identifies the widget variant of an element.
type Kind uint8

const (
	KindGeneric Kind = iota
	KindButton
	KindEditBox
	KindLabel
	KindWindow
)

func (k Kind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindEditBox:
		return "editbox"
	case KindLabel:
		return "label"
	case KindWindow:
		return "window"
	default:
		return "generic"
	}
}

// ============================================================================
// Capabilities
// ============================================================================

// Capabilities is the set of callbacks the Dispatcher and the Tree invoke on
// an element. Widgets embed NopCapabilities and override what they need.
type Capabilities interface {
	Render(e *Element)
	MouseEnter(e *Element)
	MouseLeave(e *Element)
	MouseClick(e *Element, button MouseButton, x, y int)
	MouseRelease(e *Element, button MouseButton, x, y int)
	MouseDrag(e *Element, x, y int)
	// Character receives typed characters while the element has keyboard
	// focus.
	Character(e *Element, c rune) bool
	// KeyPress receives key presses and releases while the element has
	// keyboard focus. The return value is for the widget's own use; the
	// Dispatcher does not branch on it.
	KeyPress(e *Element, key input.Key, down bool) bool
}

// NopCapabilities implements every capability as a no-op.
type NopCapabilities struct{}

func (NopCapabilities) Render(*Element)                              {}
func (NopCapabilities) MouseEnter(*Element)                          {}
func (NopCapabilities) MouseLeave(*Element)                          {}
func (NopCapabilities) MouseClick(*Element, MouseButton, int, int)   {}
func (NopCapabilities) MouseRelease(*Element, MouseButton, int, int) {}
func (NopCapabilities) MouseDrag(*Element, int, int)                 {}
func (NopCapabilities) Character(*Element, rune) bool                { return false }
func (NopCapabilities) KeyPress(*Element, input.Key, bool) bool      { return false }

// ============================================================================
// Element
// ============================================================================

// Element is a node in the widget tree. Elements are created and destroyed
// through their Tree; the Dispatcher only keeps Handles to them.
type Element struct {
	handle   Handle
	tree     *Tree
	parent   *Element
	children []*Element

	kind   Kind
	flags  Flags
	state  State
	bounds text.Rect
	text   *text.Text

	caps    Capabilities
	handler EventHandler
	data    any

	destroyed bool
}

// Handle returns the generation-checked reference to the element.
func (e *Element) Handle() Handle { return e.handle }

// Tree returns the tree the element belongs to.
func (e *Element) Tree() *Tree { return e.tree }

// Kind returns the widget variant.
func (e *Element) Kind() Kind { return e.kind }

// Parent returns the parent element, or nil for a top-level layer.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the children in draw order. The slice must not be
// modified.
func (e *Element) Children() []*Element { return e.children }

// Destroyed reports whether the element has been destroyed.
func (e *Element) Destroyed() bool { return e.destroyed }

// Capabilities returns the element's callback set.
func (e *Element) Capabilities() Capabilities { return e.caps }

// Flags returns the persistent property flags.
func (e *Element) Flags() Flags { return e.flags }

// HasFlags reports whether every flag in f is set.
func (e *Element) HasFlags(f Flags) bool { return e.flags&f == f }

// AddFlags sets property flags.
func (e *Element) AddFlags(f Flags) {
	e.flags |= f
	e.RequestRedraw()
}

// RemoveFlags clears property flags.
func (e *Element) RemoveFlags(f Flags) {
	e.flags &^= f
	e.RequestRedraw()
}

// State returns the interaction state.
func (e *Element) State() State { return e.state }

// Hovered reports whether the cursor is over the element.
func (e *Element) Hovered() bool { return e.state&StateHover != 0 }

// Pressed reports whether the element is held down.
func (e *Element) Pressed() bool { return e.state&StatePressed != 0 }

// Focused reports whether the element has keyboard focus.
func (e *Element) Focused() bool { return e.state&StateFocus != 0 }

func (e *Element) setState(s State, on bool) {
	if on {
		e.state |= s
	} else {
		e.state &^= s
	}
}

// Bounds returns the absolute bounding rectangle.
func (e *Element) Bounds() text.Rect { return e.bounds }

// SetBounds moves and resizes the element. The text follows.
func (e *Element) SetBounds(r text.Rect) {
	e.bounds = r
	e.text.SetBounds(r)
	e.RequestRedraw()
}

// SetPos moves the element, keeping its size.
func (e *Element) SetPos(x, y int) {
	e.SetBounds(text.Rect{X: x, Y: y, W: e.bounds.W, H: e.bounds.H})
}

// SetSize resizes the element, keeping its position.
func (e *Element) SetSize(w, h int) {
	e.SetBounds(text.Rect{X: e.bounds.X, Y: e.bounds.Y, W: w, H: h})
}

// TextObject returns the element's text sub-object.
func (e *Element) TextObject() *text.Text { return e.text }

// Text returns the element's text.
func (e *Element) Text() string { return e.text.String() }

// SetText replaces the element's text.
func (e *Element) SetText(s string) {
	e.text.SetBuffer(s)
	e.RequestRedraw()
}

// SetTextf replaces the element's text with formatted output.
func (e *Element) SetTextf(format string, args ...any) {
	e.text.SetBufferf(format, args...)
	e.RequestRedraw()
}

// SetAlignment changes how the text is aligned within the bounds.
func (e *Element) SetAlignment(a text.Alignment) {
	e.text.SetAlignment(a)
	e.RequestRedraw()
}

// SetTextPadding changes the text insets.
func (e *Element) SetTextPadding(p text.Padding) {
	e.text.SetPadding(p)
	e.RequestRedraw()
}

// SetFont changes the font used for the element's text.
func (e *Element) SetFont(f *text.Font) {
	e.text.SetFont(f)
	e.RequestRedraw()
}

// SetEventHandler installs the generic event handler. data is passed back
// in every Event.
func (e *Element) SetEventHandler(h EventHandler, data any) {
	e.handler = h
	e.data = data
}

func (e *Element) fire(t EventType, x, y int) {
	if e.handler == nil {
		return
	}
	e.handler(Event{Type: t, Element: e, Data: e.data, X: x, Y: y})
}

// RequestRedraw asks the tree to repaint the element.
func (e *Element) RequestRedraw() {
	if e.tree != nil {
		e.tree.RequestRedraw(e)
	}
}

// IsChildOf reports whether e is a descendant of parent.
func (e *Element) IsChildOf(parent *Element) bool {
	for p := e.parent; p != nil; p = p.parent {
		if p == parent {
			return true
		}
	}
	return false
}
