package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/tactile/text"
)

type countingMeasurer struct {
	calls  int
	closed bool
}

func (m *countingMeasurer) MeasureText(f *text.Font, s string) (int, int) {
	m.calls++
	return 8 * len(s), f.Size
}

func (m *countingMeasurer) Close() error {
	m.closed = true
	return nil
}

func TestCachedHits(t *testing.T) {
	inner := &countingMeasurer{}
	c := NewCached(inner, 0)
	f := &text.Font{Family: "goregular", Size: 12}

	w, h := c.MeasureText(f, "abc")
	assert.Equal(t, 24, w)
	assert.Equal(t, 12, h)

	w, h = c.MeasureText(f, "abc")
	assert.Equal(t, 24, w)
	assert.Equal(t, 12, h)
	assert.Equal(t, 1, inner.calls)

	c.MeasureText(&text.Font{Family: "goregular", Size: 12, Flags: text.FontBold}, "abc")
	c.MeasureText(&text.Font{Family: "goregular", Size: 14}, "abc")
	assert.Equal(t, 3, inner.calls, "style and size are part of the key")

	hits, misses := c.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(3), misses)
}

func TestCachedEviction(t *testing.T) {
	inner := &countingMeasurer{}
	c := NewCached(inner, 2)
	f := &text.Font{Size: 10}

	c.MeasureText(f, "a")
	c.MeasureText(f, "b")
	c.MeasureText(f, "a") // a is now the most recently used
	c.MeasureText(f, "c") // evicts b
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 3, inner.calls)

	c.MeasureText(f, "a")
	assert.Equal(t, 3, inner.calls)
	c.MeasureText(f, "b")
	assert.Equal(t, 4, inner.calls)
}

func TestCachedClose(t *testing.T) {
	inner := &countingMeasurer{}
	c := NewCached(inner, 4)
	c.MeasureText(nil, "x")
	require.NoError(t, c.Close())
	assert.Zero(t, c.Len())
	assert.True(t, inner.closed)
	assert.Same(t, inner, c.Unwrap())
}

func TestCachedClosestChar(t *testing.T) {
	inner := &countingMeasurer{}
	tx := text.New(NewCached(inner, 0), &text.Font{Size: 12})
	tx.SetBuffer("hello")

	tx.ClosestChar(20, 0)
	first := inner.calls
	tx.ClosestChar(30, 0)
	assert.Equal(t, first, inner.calls, "second scan is served from the cache")
}
