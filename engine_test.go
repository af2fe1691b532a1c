package tactile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/agiangrant/tactile/input"
	"github.com/agiangrant/tactile/retained"
	"github.com/agiangrant/tactile/text"
	"github.com/agiangrant/tactile/text/measure"
)

func fixedConfig() Config {
	cfg := DefaultConfig()
	cfg.Measure.Backend = string(measure.BackendFixed)
	cfg.Measure.Advance = 8
	cfg.Measure.CacheSize = 0
	return cfg
}

func TestNewEngineDefaults(t *testing.T) {
	e, err := NewEngine(DefaultConfig())
	require.NoError(t, err)
	defer e.Close()

	cached, ok := e.Measurer().(*measure.Cached)
	require.True(t, ok)
	_, ok = cached.Unwrap().(*measure.OpenType)
	assert.True(t, ok)
	assert.Equal(t, 12, e.Tree().Font().Size)
}

func TestNewEngineInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Measure.Backend = "vector"
	_, err := NewEngine(cfg)
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Font.Files = map[string]string{"missing": "/nonexistent/font.ttf"}
	_, err = NewEngine(cfg)
	assert.Error(t, err)
}

func TestEngineEmit(t *testing.T) {
	e, err := NewEngine(fixedConfig())
	require.NoError(t, err)
	defer e.Close()

	btn := retained.NewButton(e.Tree(), nil, "ok")
	btn.SetBounds(text.Rect{X: 0, Y: 0, W: 40, H: 20})

	var clicks int
	btn.SetEventHandler(func(ev retained.Event) {
		if ev.Type == retained.EventClick {
			clicks++
		}
	}, nil)

	assert.False(t, e.Emit(input.LButtonDown(5, 5)), "no hooks before Start")

	e.Start()
	e.Start()
	assert.True(t, e.Emit(input.LButtonDown(5, 5)))
	assert.True(t, e.Emit(input.LButtonUp(5, 5)))
	assert.Equal(t, 1, clicks)
	assert.Same(t, btn, e.Dispatcher().KeyboardFocus())

	require.NoError(t, e.Close())
	assert.Nil(t, e.Dispatcher().KeyboardFocus())
	assert.False(t, e.Emit(input.LButtonDown(5, 5)))
}

func TestEngineRunConcurrentPosts(t *testing.T) {
	e, err := NewEngine(fixedConfig(), WithQueueSize(4))
	require.NoError(t, err)
	defer e.Close()

	box := retained.NewEditBox(e.Tree(), nil)
	box.Element().SetBounds(text.Rect{X: 0, Y: 0, W: 200, H: 20})
	e.Dispatcher().SetKeyboardFocus(box.Element())

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	var g errgroup.Group
	for i := 0; i < 4; i++ {
		g.Go(func() error {
			for j := 0; j < 25; j++ {
				if err := e.Post(ctx, input.Character('x')); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	e.Stop()
	require.NoError(t, <-done)

	assert.Len(t, box.Value(), 100)
	assert.ErrorIs(t, e.Post(ctx, input.Character('y')), input.ErrQueueClosed)
}

func TestEngineRender(t *testing.T) {
	skin := &countingSkin{}
	e, err := NewEngine(fixedConfig(), WithSkin(skin))
	require.NoError(t, err)
	defer e.Close()

	w := retained.NewWindow(e.Tree(), "main", text.Rect{W: 100, H: 100})
	retained.NewButton(e.Tree(), w, "a")
	retained.NewButton(e.Tree(), w, "b")

	e.Render()
	assert.Equal(t, 1, skin.windows)
	assert.Equal(t, 2, skin.buttons)
}

type countingSkin struct{ windows, buttons int }

func (s *countingSkin) DrawButton(*retained.Element)       { s.buttons++ }
func (s *countingSkin) DrawEditBox(*retained.Element, int) {}
func (s *countingSkin) DrawLabel(*retained.Element)        {}
func (s *countingSkin) DrawWindow(*retained.Element)       { s.windows++ }
