package retained

import (
	"errors"
	"fmt"
)

var (
	// ErrStaleHandle is returned when a handle refers to a destroyed
	// element.
	ErrStaleHandle = errors.New("retained: stale element handle")

	// ErrNotInTree is returned when an element does not belong to the tree
	// it is used with.
	ErrNotInTree = errors.New("retained: element not in tree")
)

// Handle is a weak, generation-checked reference to an element. The zero
// Handle refers to nothing. A handle to a destroyed element never resolves
// again, even after its slot is reused.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether the handle is empty.
func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string {
	if h.IsZero() {
		return "handle(nil)"
	}
	return fmt.Sprintf("handle(%d#%d)", h.index, h.gen)
}

type slot struct {
	elem *Element
	gen  uint32
}

// registry maps handles to live elements. Generations start at 1 so the
// zero Handle never matches a slot.
type registry struct {
	slots []slot
	free  []uint32
	live  int
}

func (r *registry) add(e *Element) Handle {
	var idx uint32
	if n := len(r.free); n > 0 {
		idx = r.free[n-1]
		r.free = r.free[:n-1]
	} else {
		idx = uint32(len(r.slots))
		r.slots = append(r.slots, slot{})
	}
	s := &r.slots[idx]
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	s.elem = e
	r.live++
	return Handle{index: idx, gen: s.gen}
}

func (r *registry) remove(h Handle) {
	if _, err := r.resolve(h); err != nil || h.IsZero() {
		return
	}
	s := &r.slots[h.index]
	s.elem = nil
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	r.free = append(r.free, h.index)
	r.live--
}

func (r *registry) resolve(h Handle) (*Element, error) {
	if h.IsZero() {
		return nil, nil
	}
	if int(h.index) >= len(r.slots) {
		return nil, fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	s := r.slots[h.index]
	if s.gen != h.gen || s.elem == nil {
		return nil, fmt.Errorf("%w: %s", ErrStaleHandle, h)
	}
	return s.elem, nil
}
