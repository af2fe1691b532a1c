// Package tactile wires the input source, element tree, interaction
// dispatcher and text measurement into one engine.
package tactile

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/agiangrant/tactile/input"
	"github.com/agiangrant/tactile/internal/logging"
	"github.com/agiangrant/tactile/retained"
	"github.com/agiangrant/tactile/text"
	"github.com/agiangrant/tactile/text/measure"
)

// Engine owns one element tree and the dispatcher driving it.
//
// Events reach the tree either synchronously through Emit, from the UI
// goroutine, or through Post from any goroutine while Run is active.
type Engine struct {
	config   Config
	log      *slog.Logger
	measurer text.Measurer

	source *input.Source
	queue  *input.Queue
	tree   *retained.Tree
	disp   *retained.Dispatcher

	started bool
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	logger    *slog.Logger
	measurer  text.Measurer
	skin      retained.Skin
	queueSize int
}

// WithLogger sets the logger. Without it the engine logs nothing.
func WithLogger(l *slog.Logger) EngineOption {
	return func(o *engineOptions) { o.logger = l }
}

// WithMeasurer overrides the measurer selected by the [measure] section.
func WithMeasurer(m text.Measurer) EngineOption {
	return func(o *engineOptions) { o.measurer = m }
}

// WithSkin sets the skin used by Render.
func WithSkin(s retained.Skin) EngineOption {
	return func(o *engineOptions) { o.skin = s }
}

// WithQueueSize sets the buffer size of the event queue.
func WithQueueSize(n int) EngineOption {
	return func(o *engineOptions) { o.queueSize = n }
}

// NewEngine creates a new engine with the given configuration
func NewEngine(config Config, opts ...EngineOption) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}
	var o engineOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}

	m := o.measurer
	if m == nil {
		var err error
		m, err = newMeasurer(config)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize engine: %w", err)
		}
	}

	color, err := config.TextColor()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize engine: %w", err)
	}

	e := &Engine{
		config:   config,
		log:      o.logger,
		measurer: m,
		source:   input.NewSource(o.logger),
		queue:    input.NewQueue(input.QueueConfig{BufferSize: o.queueSize}),
	}
	e.tree = retained.NewTree(retained.TreeConfig{
		Measurer:  m,
		Font:      config.DefaultFont(),
		TextColor: color,
		Skin:      o.skin,
		Logger:    o.logger,
	})
	e.disp = retained.NewDispatcher(e.tree, e.source, retained.WithLogger(o.logger))
	return e, nil
}

func newMeasurer(config Config) (text.Measurer, error) {
	m, err := measure.New(config.MeasureOptions())
	if err != nil {
		return nil, err
	}
	if ot, ok := m.(*measure.OpenType); ok {
		for family, path := range config.Font.Files {
			if err := ot.RegisterFile(family, path); err != nil {
				ot.Close()
				return nil, err
			}
		}
	}
	if n := config.Measure.CacheSize; n > 0 {
		m = measure.NewCached(m, n)
	}
	return m, nil
}

// Config returns the configuration the engine was created with.
func (e *Engine) Config() Config { return e.config }

// Tree returns the element tree.
func (e *Engine) Tree() *retained.Tree { return e.tree }

// Dispatcher returns the interaction dispatcher.
func (e *Engine) Dispatcher() *retained.Dispatcher { return e.disp }

// Source returns the raw input source.
func (e *Engine) Source() *input.Source { return e.source }

// Measurer returns the text measurer shared by all elements.
func (e *Engine) Measurer() text.Measurer { return e.measurer }

// Logger returns the engine logger.
func (e *Engine) Logger() *slog.Logger { return e.log }

// Start attaches the dispatcher to the input source. It is called by Run
// and may be called directly when events are delivered with Emit.
func (e *Engine) Start() {
	if e.started {
		return
	}
	e.disp.Initialize()
	e.started = true
}

// Emit delivers ev synchronously. It must be called from the goroutine
// that owns the tree, and reports whether a hook consumed the event.
func (e *Engine) Emit(ev input.Event) bool {
	return e.source.Emit(ev)
}

// Post queues ev for delivery by Run. It is safe for concurrent use.
func (e *Engine) Post(ctx context.Context, ev input.Event) error {
	return e.queue.Post(ctx, ev)
}

// Run delivers posted events on the calling goroutine until Stop is
// called and the queue is drained, or ctx is done. The calling goroutine
// becomes the owner of the tree for the duration.
func (e *Engine) Run(ctx context.Context) error {
	e.Start()
	e.log.Debug("engine running")
	err := e.queue.Run(ctx, e.source)
	e.log.Debug("engine stopped", "delivered", e.queue.Delivered())
	return err
}

// Stop refuses further posts. Run returns once queued events are handled.
func (e *Engine) Stop() {
	e.queue.Close()
}

// Render redraws the tree through its skin.
func (e *Engine) Render() {
	e.tree.Render()
}

// Close stops the queue, detaches the dispatcher and releases the
// measurer. It must not be called while Run is active.
func (e *Engine) Close() error {
	e.queue.Close()
	if e.started {
		e.disp.Shutdown()
		e.started = false
	}
	if c, ok := e.measurer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
