package retained

import (
	"log/slog"

	"github.com/agiangrant/tactile/text"
)

// Skin draws widgets. Pixel output is up to the implementation.
type Skin interface {
	DrawButton(e *Element)
	DrawEditBox(e *Element, caret int)
	DrawLabel(e *Element)
	DrawWindow(e *Element)
}

// TreeConfig configures a widget tree.
type TreeConfig struct {
	// Measurer measures every element's text. Required.
	Measurer text.Measurer
	// Font is the default font for new elements. Default: text.DefaultFont.
	Font *text.Font
	// TextColor is the default text colour. Default: text.DefaultColor.
	TextColor text.Color
	// Skin draws widgets during Render. Optional.
	Skin Skin
	// Logger receives diagnostics. Default: discard.
	Logger *slog.Logger
}

// Tree owns the element hierarchy. It resolves handles, hit-tests screen
// coordinates and collects redraw requests.
//
// A Tree and its elements are owned by the UI goroutine.
type Tree struct {
	reg    registry
	layers []*Element

	measurer  text.Measurer
	font      *text.Font
	textColor text.Color
	skin      Skin
	log       *slog.Logger

	listeners  map[int]func(*Element)
	listenerID int

	forced   uint64
	dirty    map[Handle]struct{}
	onRedraw func(*Element)
}

// NewTree creates an empty tree.
func NewTree(config TreeConfig) *Tree {
	t := &Tree{
		measurer:  config.Measurer,
		font:      config.Font,
		textColor: config.TextColor,
		skin:      config.Skin,
		log:       config.Logger,
		listeners: make(map[int]func(*Element)),
		dirty:     make(map[Handle]struct{}),
	}
	if t.font == nil {
		t.font = text.DefaultFont
	}
	if t.textColor == 0 {
		t.textColor = text.DefaultColor
	}
	if t.log == nil {
		t.log = slog.New(slog.DiscardHandler)
	}
	return t
}

// Font returns the default font of new elements.
func (t *Tree) Font() *text.Font { return t.font }

// SetSkin replaces the skin used by Render.
func (t *Tree) SetSkin(s Skin) { t.skin = s }

// Skin returns the current skin, possibly nil.
func (t *Tree) Skin() Skin { return t.skin }

// NewElement creates a visible element. A nil parent makes it a top-level
// layer drawn above the existing ones; otherwise it is appended to the
// parent's children. A nil caps means every capability is a no-op.
func (t *Tree) NewElement(parent *Element, kind Kind, caps Capabilities) *Element {
	if caps == nil {
		caps = NopCapabilities{}
	}
	e := &Element{
		tree:  t,
		kind:  kind,
		flags: FlagVisible,
		caps:  caps,
		text:  text.New(t.measurer, t.font),
	}
	e.text.SetColor(t.textColor)
	e.handle = t.reg.add(e)
	if parent == nil {
		t.layers = append(t.layers, e)
	} else {
		e.parent = parent
		parent.children = append(parent.children, e)
	}
	return e
}

// Len returns the number of live elements.
func (t *Tree) Len() int { return t.reg.live }

// Layers returns the top-level elements in draw order.
func (t *Tree) Layers() []*Element { return t.layers }

// Resolve returns the element a handle refers to. The zero handle resolves
// to nil without error; a handle to a destroyed element yields
// ErrStaleHandle.
func (t *Tree) Resolve(h Handle) (*Element, error) {
	return t.reg.resolve(h)
}

// Contains reports whether e is a live element attached to this tree.
func (t *Tree) Contains(e *Element) bool {
	if e == nil || e.tree != t || e.destroyed {
		return false
	}
	got, err := t.reg.resolve(e.handle)
	return err == nil && got == e
}

// OnDestroy registers fn to run whenever an element is destroyed or
// detached, before the element is invalidated. The returned function
// unregisters it.
func (t *Tree) OnDestroy(fn func(*Element)) (unregister func()) {
	t.listenerID++
	id := t.listenerID
	t.listeners[id] = fn
	return func() { delete(t.listeners, id) }
}

func (t *Tree) notifyDestroyed(e *Element) {
	for _, fn := range t.listeners {
		fn(e)
	}
}

// Destroy destroys e and its subtree. Listeners registered with OnDestroy
// see every element before its handle is invalidated.
func (t *Tree) Destroy(e *Element) error {
	if !t.Contains(e) {
		return ErrNotInTree
	}
	t.unlink(e)
	t.destroyRecursive(e)
	t.ForceRedraw()
	return nil
}

func (t *Tree) destroyRecursive(e *Element) {
	for len(e.children) > 0 {
		child := e.children[len(e.children)-1]
		e.children = e.children[:len(e.children)-1]
		t.destroyRecursive(child)
	}
	t.notifyDestroyed(e)
	t.reg.remove(e.handle)
	delete(t.dirty, e.handle)
	e.text.Destroy()
	e.destroyed = true
	e.parent = nil
	e.handler = nil
}

// unlink removes e from its parent's children or from the layer list.
func (t *Tree) unlink(e *Element) {
	if e.parent == nil {
		t.layers = removeElement(t.layers, e)
		return
	}
	e.parent.children = removeElement(e.parent.children, e)
	e.parent = nil
}

func removeElement(list []*Element, e *Element) []*Element {
	for i, c := range list {
		if c == e {
			copy(list[i:], list[i+1:])
			list[len(list)-1] = nil
			return list[:len(list)-1]
		}
	}
	return list
}

// AddChild moves child under parent, on top of its siblings.
func (t *Tree) AddChild(parent, child *Element) error {
	if !t.Contains(parent) || !t.Contains(child) {
		return ErrNotInTree
	}
	if parent == child || parent.IsChildOf(child) {
		return ErrNotInTree
	}
	t.unlink(child)
	child.parent = parent
	parent.children = append(parent.children, child)
	t.RequestRedraw(parent)
	return nil
}

// RemoveChild detaches child from its parent and turns it into a hidden
// top-level layer. Interaction state referring to the detached subtree is
// dropped through the OnDestroy listeners.
func (t *Tree) RemoveChild(child *Element) error {
	if !t.Contains(child) || child.parent == nil {
		return ErrNotInTree
	}
	parent := child.parent
	t.unlink(child)
	t.walk(child, func(e *Element) bool {
		t.notifyDestroyed(e)
		e.state = 0
		return true
	})
	child.flags &^= FlagVisible
	t.layers = append(t.layers, child)
	t.RequestRedraw(parent)
	return nil
}

// SendToTop raises e above its siblings.
func (t *Tree) SendToTop(e *Element) {
	if !t.Contains(e) {
		return
	}
	if e.parent == nil {
		t.layers = append(removeElement(t.layers, e), e)
	} else {
		e.parent.children = append(removeElement(e.parent.children, e), e)
	}
	t.RequestRedraw(e)
}

// walk visits e and its descendants in draw order until fn returns false.
func (t *Tree) walk(e *Element, fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !t.walk(c, fn) {
			return false
		}
	}
	return true
}

// ElementAt returns the topmost visible, mouse-controllable element at the
// given screen coordinate, or nil. Layers and children are tested from the
// last drawn to the first.
func (t *Tree) ElementAt(x, y int) *Element {
	for i := len(t.layers) - 1; i >= 0; i-- {
		if e := t.elementAt(t.layers[i], x, y); e != nil {
			return e
		}
	}
	return nil
}

func (t *Tree) elementAt(e *Element, x, y int) *Element {
	if !e.HasFlags(FlagVisible) || !e.bounds.Contains(x, y) {
		return nil
	}
	for i := len(e.children) - 1; i >= 0; i-- {
		if hit := t.elementAt(e.children[i], x, y); hit != nil {
			return hit
		}
	}
	if e.HasFlags(FlagMouseCtrl) {
		return e
	}
	return nil
}

// Render invokes the render capability of every visible element in draw
// order and clears pending redraw requests.
func (t *Tree) Render() {
	for _, layer := range t.layers {
		t.render(layer)
	}
	clear(t.dirty)
}

func (t *Tree) render(e *Element) {
	if !e.HasFlags(FlagVisible) {
		return
	}
	e.caps.Render(e)
	for _, c := range e.children {
		t.render(c)
	}
}

// OnRedraw registers a callback invoked for every redraw request. The
// element is nil for a full redraw.
func (t *Tree) OnRedraw(fn func(*Element)) {
	t.onRedraw = fn
}

// RequestRedraw marks e as needing a repaint.
func (t *Tree) RequestRedraw(e *Element) {
	if e == nil || e.destroyed {
		return
	}
	t.dirty[e.handle] = struct{}{}
	if t.onRedraw != nil {
		t.onRedraw(e)
	}
}

// ForceRedraw requests a repaint of the whole tree.
func (t *Tree) ForceRedraw() {
	t.forced++
	if t.onRedraw != nil {
		t.onRedraw(nil)
	}
}

// ForcedRedraws returns how many full redraws have been requested.
func (t *Tree) ForcedRedraws() uint64 { return t.forced }

// Dirty reports whether e has a pending redraw request.
func (t *Tree) Dirty(e *Element) bool {
	_, ok := t.dirty[e.handle]
	return ok
}
