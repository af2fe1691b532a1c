package commands

import (
	"fmt"
	"io"

	"github.com/agiangrant/tactile"
	"github.com/agiangrant/tactile/retained"
	"github.com/agiangrant/tactile/text"
)

// scene is the demo form replay scripts are played against:
//
//	+-- Demo ------------------------------+  (10,10) 300x140
//	| Name [____________________]          |  label (20,40), edit box (90,40)
//	| [  OK  ] [Cancel]                    |  buttons (20,80) and (110,80)
//	+--------------------------------------+
type scene struct {
	window *retained.Element
	label  *retained.Element
	name   *retained.EditBox
	ok     *retained.Element
	cancel *retained.Element
}

func buildScene(e *tactile.Engine, out io.Writer) *scene {
	t := e.Tree()
	s := &scene{}

	s.window = retained.NewWindow(t, "Demo", text.Rect{X: 10, Y: 10, W: 300, H: 140})

	s.label = retained.NewLabel(t, s.window, "Name")
	s.label.SetBounds(text.Rect{X: 20, Y: 40, W: 60, H: 20})

	s.name = retained.NewEditBox(t, s.window)
	s.name.Element().SetBounds(text.Rect{X: 90, Y: 40, W: 200, H: 20})
	s.name.SetMaxLength(32)

	s.ok = retained.NewButton(t, s.window, "OK")
	s.ok.SetBounds(text.Rect{X: 20, Y: 80, W: 80, H: 24})

	s.cancel = retained.NewButton(t, s.window, "Cancel")
	s.cancel.SetBounds(text.Rect{X: 110, Y: 80, W: 80, H: 24})

	show := func(ev retained.Event) {
		fmt.Fprintf(out, "%-12s %s\n", ev.Type, ev.Data)
	}
	s.window.SetEventHandler(show, "window")
	s.name.Element().SetEventHandler(show, "name")
	s.ok.SetEventHandler(show, "ok")
	s.cancel.SetEventHandler(show, "cancel")
	return s
}

func (s *scene) summary(e *tactile.Engine, out io.Writer) {
	d := e.Dispatcher()
	fmt.Fprintf(out, "name  = %q\n", s.name.Value())
	fmt.Fprintf(out, "focus = %s\n", describe(d.KeyboardFocus()))
	fmt.Fprintf(out, "hover = %s\n", describe(d.Hovered()))
	b := s.window.Bounds()
	fmt.Fprintf(out, "window at %d,%d\n", b.X, b.Y)
}

func describe(e *retained.Element) string {
	if e == nil {
		return "none"
	}
	if e.Text() == "" {
		return e.Kind().String()
	}
	return fmt.Sprintf("%s %q", e.Kind(), e.Text())
}
