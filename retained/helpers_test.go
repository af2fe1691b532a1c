package retained

import (
	"fmt"
	"testing"

	"github.com/agiangrant/tactile/input"
	"github.com/agiangrant/tactile/text"
	"github.com/agiangrant/tactile/text/measure"
)

// recorder logs capability callbacks and generic events in arrival order.
type recorder struct {
	NopCapabilities
	log *[]string
	// onClick runs inside MouseClick, after logging.
	onClick func(e *Element)
}

func (r *recorder) add(format string, args ...any) {
	*r.log = append(*r.log, fmt.Sprintf(format, args...))
}

func (r *recorder) MouseEnter(e *Element) { r.add("%s enter", e.Text()) }
func (r *recorder) MouseLeave(e *Element) { r.add("%s leave", e.Text()) }

func (r *recorder) MouseClick(e *Element, b MouseButton, x, y int) {
	r.add("%s click %s %d,%d", e.Text(), b, x, y)
	if r.onClick != nil {
		r.onClick(e)
	}
}

func (r *recorder) MouseRelease(e *Element, b MouseButton, x, y int) {
	r.add("%s release %s %d,%d", e.Text(), b, x, y)
}

func (r *recorder) MouseDrag(e *Element, x, y int) { r.add("%s drag %d,%d", e.Text(), x, y) }

func (r *recorder) Character(e *Element, c rune) bool {
	r.add("%s char %c", e.Text(), c)
	return true
}

func (r *recorder) KeyPress(e *Element, k input.Key, down bool) bool {
	r.add("%s key %d %t", e.Text(), k, down)
	return false
}

type fixture struct {
	t      *testing.T
	tree   *Tree
	source *input.Source
	disp   *Dispatcher
	log    []string
	recs   map[*Element]*recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{t: t, recs: make(map[*Element]*recorder)}
	f.tree = NewTree(TreeConfig{Measurer: measure.Fixed{Advance: 8}, Font: &text.Font{Size: 12}})
	f.source = input.NewSource(nil)
	f.disp = NewDispatcher(f.tree, f.source)
	f.disp.Initialize()
	t.Cleanup(f.disp.Shutdown)
	return f
}

// element creates a recorded element named name at the given bounds.
func (f *fixture) element(parent *Element, name string, bounds text.Rect, flags Flags) *Element {
	rec := &recorder{log: &f.log}
	e := f.tree.NewElement(parent, KindGeneric, rec)
	e.AddFlags(flags)
	e.SetBounds(bounds)
	e.SetText(name)
	e.SetEventHandler(func(ev Event) {
		f.log = append(f.log, fmt.Sprintf("%s event %s %d,%d data=%v", ev.Element.Text(), ev.Type, ev.X, ev.Y, ev.Data))
	}, name)
	f.recs[e] = rec
	return e
}

func (f *fixture) emit(evs ...input.Event) {
	for _, ev := range evs {
		if !f.source.Emit(ev) {
			f.t.Fatalf("event %v not consumed", ev.Kind)
		}
	}
}

// take returns the recorded log and clears it.
func (f *fixture) take() []string {
	got := f.log
	f.log = nil
	return got
}
