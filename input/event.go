// Package input delivers raw keyboard and mouse events to registered hooks.
//
// A Source owns one hook list per event kind and calls them synchronously
// from Emit. Events produced on several goroutines must go through a Queue,
// which serializes them onto the single goroutine that owns the Source.
package input

import (
	"fmt"
	"strconv"
)

// Kind identifies a raw input event.
type Kind uint8

const (
	KindCharacter Kind = iota + 1
	KindKeyUp
	KindKeyDown
	KindMouseMove
	KindMouseWheel
	KindLButtonUp
	KindLButtonDown
)

// Kinds lists every raw event kind in registration order.
var Kinds = []Kind{
	KindCharacter,
	KindKeyUp,
	KindKeyDown,
	KindMouseMove,
	KindMouseWheel,
	KindLButtonUp,
	KindLButtonDown,
}

var kindNames = map[Kind]string{
	KindCharacter:   "character",
	KindKeyUp:       "key-up",
	KindKeyDown:     "key-down",
	KindMouseMove:   "mouse-move",
	KindMouseWheel:  "mouse-wheel",
	KindLButtonUp:   "lbutton-up",
	KindLButtonDown: "lbutton-down",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, fmt.Errorf("input: unknown event kind %d", uint8(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	for kind, name := range kindNames {
		if name == string(b) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("input: unknown event kind %q", string(b))
}

// Key is a platform independent key code.
type Key uint32

// Key codes for the keys the toolkit widgets react to. Printable keys use
// their ASCII value.
const (
	KeyBackspace Key = 0x08
	KeyTab       Key = 0x09
	KeyReturn    Key = 0x0D
	KeyEscape    Key = 0x1B
	KeySpace     Key = 0x20
	KeyDelete    Key = 0x7F
)

// Navigation keys sit above the ASCII range.
const (
	KeyLeft Key = 0x100 + iota
	KeyRight
	KeyArrowUp
	KeyArrowDown
	KeyHome
	KeyEnd
)

var keyNames = map[Key]string{
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyReturn:    "return",
	KeyEscape:    "escape",
	KeySpace:     "space",
	KeyDelete:    "delete",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyArrowUp:   "up",
	KeyArrowDown: "down",
	KeyHome:      "home",
	KeyEnd:       "end",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k > 0x20 && k < 0x7F {
		return string(rune(k))
	}
	return fmt.Sprintf("Key(%#x)", uint32(k))
}

// MarshalText implements encoding.TextMarshaler. Named keys use their name,
// other keys their decimal code.
func (k Key) MarshalText() ([]byte, error) {
	if name, ok := keyNames[k]; ok {
		return []byte(name), nil
	}
	return []byte(strconv.FormatUint(uint64(k), 10)), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It accepts a key name,
// a decimal or 0x-prefixed code, or a single printable character.
func (k *Key) UnmarshalText(b []byte) error {
	s := string(b)
	for key, name := range keyNames {
		if name == s {
			*k = key
			return nil
		}
	}
	if n, err := strconv.ParseUint(s, 0, 32); err == nil {
		*k = Key(n)
		return nil
	}
	if r := []rune(s); len(r) == 1 && r[0] > 0x20 && r[0] < 0x7F {
		*k = Key(r[0])
		return nil
	}
	return fmt.Errorf("input: unknown key %q", s)
}

// Event is a single raw input event. Only the fields relevant to Kind are
// meaningful: Key for key events, Char for character input, X and Y for
// mouse events and Wheel for the wheel.
type Event struct {
	Kind  Kind    `yaml:"kind" toml:"kind"`
	Key   Key     `yaml:"key,omitempty" toml:"key,omitempty"`
	Char  rune    `yaml:"char,omitempty" toml:"char,omitempty"`
	X     int     `yaml:"x,omitempty" toml:"x,omitempty"`
	Y     int     `yaml:"y,omitempty" toml:"y,omitempty"`
	Wheel float32 `yaml:"wheel,omitempty" toml:"wheel,omitempty"`
}

// Character returns a character input event.
func Character(c rune) Event { return Event{Kind: KindCharacter, Char: c} }

// KeyDown returns a key press event.
func KeyDown(k Key) Event { return Event{Kind: KindKeyDown, Key: k} }

// KeyUp returns a key release event.
func KeyUp(k Key) Event { return Event{Kind: KindKeyUp, Key: k} }

// MouseMove returns a cursor movement event.
func MouseMove(x, y int) Event { return Event{Kind: KindMouseMove, X: x, Y: y} }

// MouseWheel returns a wheel event at the given cursor position.
func MouseWheel(x, y int, diff float32) Event {
	return Event{Kind: KindMouseWheel, X: x, Y: y, Wheel: diff}
}

// LButtonDown returns a left mouse button press event.
func LButtonDown(x, y int) Event { return Event{Kind: KindLButtonDown, X: x, Y: y} }

// LButtonUp returns a left mouse button release event.
func LButtonUp(x, y int) Event { return Event{Kind: KindLButtonUp, X: x, Y: y} }
