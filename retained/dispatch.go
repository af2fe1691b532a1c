package retained

import (
	"errors"
	"log/slog"

	"github.com/agiangrant/tactile/input"
)

// ============================================================================
// Dispatcher
// ============================================================================

// Role is one of the interaction registers tracked by the Dispatcher.
type Role uint8

const (
	RoleHovered Role = iota
	RolePressed
	RoleDragged
	RoleMouseFocus
	RoleKeyboardFocus

	numRoles
)

func (r Role) String() string {
	switch r {
	case RoleHovered:
		return "hovered"
	case RolePressed:
		return "pressed"
	case RoleDragged:
		return "dragged"
	case RoleMouseFocus:
		return "mouse-focus"
	case RoleKeyboardFocus:
		return "keyboard-focus"
	default:
		return "unknown"
	}
}

// Host is the element tree as seen by the Dispatcher.
type Host interface {
	// ElementAt returns the topmost interactive element at a screen
	// coordinate, or nil.
	ElementAt(x, y int) *Element
	// Resolve turns a handle back into a live element.
	Resolve(h Handle) (*Element, error)
	// OnDestroy registers a callback run before an element is invalidated.
	OnDestroy(fn func(*Element)) (unregister func())
	// ForceRedraw schedules a repaint of everything.
	ForceRedraw()
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// Dispatcher turns raw input into role transitions and element callbacks.
// It holds at most one element per role, only as weak Handles, and handles
// each raw event to completion before returning to the input source.
//
// A Dispatcher is not safe for concurrent use; raw events must arrive from
// a single goroutine (see input.Queue).
type Dispatcher struct {
	host   Host
	source *input.Source
	log    *slog.Logger

	roles [numRoles]Handle

	hooks      []input.HookID
	unregister func()
}

// NewDispatcher creates a dispatcher for the given tree and input source.
// It does not listen for events until Initialize is called.
func NewDispatcher(host Host, source *input.Source, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		host:   host,
		source: source,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.log == nil {
		d.log = slog.New(slog.DiscardHandler)
	}
	return d
}

// Initialize registers the dispatcher as the consumer of the seven raw
// input kinds and starts tracking element destruction.
func (d *Dispatcher) Initialize() {
	if d.unregister != nil {
		d.log.Warn("dispatcher already initialized")
		return
	}
	handlers := map[input.Kind]input.Hook{
		input.KindCharacter:   d.handleChar,
		input.KindKeyUp:       d.handleKeyUp,
		input.KindKeyDown:     d.handleKeyDown,
		input.KindMouseMove:   d.handleMouseMove,
		input.KindMouseWheel:  d.handleMouseWheel,
		input.KindLButtonUp:   d.handleLButtonUp,
		input.KindLButtonDown: d.handleLButtonDown,
	}
	for _, kind := range input.Kinds {
		d.hooks = append(d.hooks, d.source.AddHook(kind, handlers[kind]))
	}
	d.unregister = d.host.OnDestroy(d.NotifyElementDestroyed)
	d.log.Info("dispatcher initialized", "hooks", len(d.hooks))
}

// Shutdown unregisters the input hooks and clears every role.
func (d *Dispatcher) Shutdown() {
	if d.unregister == nil {
		return
	}
	for _, id := range d.hooks {
		d.source.RemoveHook(id)
	}
	d.hooks = nil
	d.unregister()
	d.unregister = nil
	d.roles = [numRoles]Handle{}
	d.log.Info("dispatcher shut down")
}

// NotifyElementDestroyed clears every role referring to e. The tree calls
// it through OnDestroy; owners that free elements by other means must call
// it before doing so.
func (d *Dispatcher) NotifyElementDestroyed(e *Element) {
	if e == nil {
		return
	}
	for r := range d.roles {
		if d.roles[r] == e.handle {
			d.roles[r] = Handle{}
		}
	}
}

// Role returns the element holding role r, or nil. A handle left behind by
// an element destroyed without notification is logged and cleared.
func (d *Dispatcher) Role(r Role) *Element {
	h := d.roles[r]
	if h.IsZero() {
		return nil
	}
	e, err := d.host.Resolve(h)
	if err != nil {
		if errors.Is(err, ErrStaleHandle) {
			d.log.Warn("dropping stale role reference", "role", r, "handle", h)
		}
		d.roles[r] = Handle{}
		return nil
	}
	return e
}

func (d *Dispatcher) set(r Role, e *Element) {
	if e == nil {
		d.roles[r] = Handle{}
		return
	}
	d.roles[r] = e.handle
}

// Hovered returns the element under the cursor, or nil.
func (d *Dispatcher) Hovered() *Element { return d.Role(RoleHovered) }

// Pressed returns the element held down by the left button, or nil.
func (d *Dispatcher) Pressed() *Element { return d.Role(RolePressed) }

// Dragged returns the element being dragged, or nil.
func (d *Dispatcher) Dragged() *Element { return d.Role(RoleDragged) }

// MouseFocus returns the element with mouse focus, or nil.
func (d *Dispatcher) MouseFocus() *Element { return d.Role(RoleMouseFocus) }

// KeyboardFocus returns the element with keyboard focus, or nil.
func (d *Dispatcher) KeyboardFocus() *Element { return d.Role(RoleKeyboardFocus) }

// SetKeyboardFocus moves keyboard focus to e. A nil e removes focus. An
// element that is not keyboard-controllable or not visible is rejected: the
// previous holder still loses focus but no new holder is installed. Focusing
// the current holder fires FOCUS_ENTER again without a FOCUS_EXIT. A full
// redraw is requested in every case.
func (d *Dispatcher) SetKeyboardFocus(e *Element) {
	defer d.host.ForceRedraw()

	eligible := e != nil && e.HasFlags(FlagKbCtrl|FlagVisible)
	// The holder keeps focus without an exit when it is focused again, and
	// enters focus a second time.
	if old := d.KeyboardFocus(); old != nil && (old != e || !eligible) {
		d.blur(old)
	}
	if e == nil {
		return
	}
	if !eligible {
		d.log.Debug("keyboard focus rejected", "element", e.handle, "kind", e.kind)
		return
	}
	d.focus(e)
}

// blur removes keyboard focus from e, which must be the current holder.
func (d *Dispatcher) blur(e *Element) {
	e.fire(EventFocusExit, 0, 0)
	e.setState(StateFocus, false)
	d.set(RoleKeyboardFocus, nil)
}

func (d *Dispatcher) focus(e *Element) {
	d.set(RoleKeyboardFocus, e)
	e.setState(StateFocus, true)
	e.fire(EventFocusEnter, 0, 0)
}

// ============================================================================
// Raw Event Handlers
// ============================================================================

func (d *Dispatcher) handleChar(ev input.Event) bool {
	if e := d.KeyboardFocus(); e != nil {
		e.caps.Character(e, ev.Char)
	}
	return true
}

func (d *Dispatcher) handleKeyUp(ev input.Event) bool {
	if e := d.KeyboardFocus(); e != nil {
		e.caps.KeyPress(e, ev.Key, false)
	}
	return true
}

func (d *Dispatcher) handleKeyDown(ev input.Event) bool {
	if e := d.KeyboardFocus(); e != nil {
		e.caps.KeyPress(e, ev.Key, true)
	}
	return true
}

func (d *Dispatcher) handleMouseMove(ev input.Event) bool {
	x, y := ev.X, ev.Y

	if dragged := d.Dragged(); dragged != nil {
		dragged.caps.MouseDrag(dragged, x, y)
		d.host.ForceRedraw()
	}

	target := d.host.ElementAt(x, y)
	hovered := d.Hovered()
	if target == hovered {
		return true
	}

	if hovered != nil {
		hovered.setState(StateHover, false)
		hovered.caps.MouseLeave(hovered)
		hovered.fire(EventHoverLeave, x, y)
	}

	d.set(RoleHovered, target)
	if target != nil && !target.destroyed {
		target.setState(StateHover, true)
		target.caps.MouseEnter(target)
		target.fire(EventHoverEnter, x, y)
	}

	d.host.ForceRedraw()
	return true
}

// handleMouseWheel consumes wheel events. Scrolling has no effect on any
// role yet.
func (d *Dispatcher) handleMouseWheel(input.Event) bool {
	return true
}

func (d *Dispatcher) handleLButtonDown(ev input.Event) bool {
	x, y := ev.X, ev.Y

	d.set(RoleDragged, nil)
	target := d.host.ElementAt(x, y)

	// Pressing anywhere else removes keyboard focus, even when the new
	// target cannot take focus itself.
	if focused := d.KeyboardFocus(); focused != nil && focused != target {
		d.blur(focused)
		d.host.ForceRedraw()
	}

	if pressed := d.Pressed(); pressed != nil {
		pressed.setState(StatePressed, false)
		pressed.caps.MouseRelease(pressed, MouseButtonLeft, x, y)
		pressed.fire(EventRelease, x, y)
		d.host.ForceRedraw()
	}

	d.set(RolePressed, target)
	if target == nil || target.destroyed {
		d.set(RolePressed, nil)
		return true
	}

	target.setState(StatePressed, true)
	target.caps.MouseClick(target, MouseButtonLeft, x, y)
	if target.destroyed {
		return true
	}
	if target.HasFlags(FlagDraggable) {
		d.set(RoleDragged, target)
	}
	target.fire(EventClick, x, y)

	if !target.destroyed && target.HasFlags(FlagKbCtrl) {
		d.focus(target)
	}

	d.host.ForceRedraw()
	return true
}

func (d *Dispatcher) handleLButtonUp(ev input.Event) bool {
	x, y := ev.X, ev.Y

	d.set(RoleDragged, nil)

	// Release goes to whoever was pressed, not to what is under the cursor.
	under := d.host.ElementAt(x, y)

	if pressed := d.Pressed(); pressed != nil {
		pressed.setState(StatePressed, false)
		pressed.caps.MouseRelease(pressed, MouseButtonLeft, x, y)
		pressed.fire(EventRelease, x, y)
		d.set(RolePressed, nil)
		d.log.Debug("released", "element", pressed.handle, "inside", under == pressed)
		d.host.ForceRedraw()
	}
	return true
}
