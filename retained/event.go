package retained

import "fmt"

// ============================================================================
// Generic Events
// ============================================================================

// EventType identifies a generic element event.
type EventType uint8

const (
	EventClick EventType = iota + 1
	EventRelease
	EventHoverEnter
	EventHoverLeave
	EventFocusEnter
	EventFocusExit
)

func (t EventType) String() string {
	switch t {
	case EventClick:
		return "click"
	case EventRelease:
		return "release"
	case EventHoverEnter:
		return "hover-enter"
	case EventHoverLeave:
		return "hover-leave"
	case EventFocusEnter:
		return "focus-enter"
	case EventFocusExit:
		return "focus-exit"
	default:
		return fmt.Sprintf("EventType(%d)", uint8(t))
	}
}

// Event is the coarse notification delivered to an element's event
// handler. It fires alongside the capability callbacks, never instead of
// them. X and Y are zero for focus events.
type Event struct {
	Type    EventType
	Element *Element
	Data    any
	X, Y    int
}

// EventHandler receives generic events for an element.
type EventHandler func(Event)

// MouseButton identifies which mouse button was pressed.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	default:
		return "none"
	}
}
