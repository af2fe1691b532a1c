package input

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSourceEmitOrder(t *testing.T) {
	src := NewSource(nil)

	var got []string
	src.AddHook(KindMouseMove, func(ev Event) bool {
		got = append(got, "first")
		return false
	})
	src.AddHook(KindMouseMove, func(ev Event) bool {
		got = append(got, "second")
		return true
	})
	src.AddHook(KindMouseMove, func(ev Event) bool {
		got = append(got, "third")
		return true
	})

	handled := src.Emit(MouseMove(1, 2))
	assert.True(t, handled)
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestSourceEmitUnhooked(t *testing.T) {
	src := NewSource(nil)
	assert.False(t, src.Emit(Character('a')))
}

func TestSourceRemoveHook(t *testing.T) {
	src := NewSource(nil)

	calls := 0
	id := src.AddHook(KindKeyDown, func(Event) bool {
		calls++
		return true
	})
	require.Equal(t, 1, src.HookCount(KindKeyDown))

	src.Emit(KeyDown(KeyReturn))
	assert.True(t, src.RemoveHook(id))
	assert.False(t, src.RemoveHook(id), "second removal must report absence")
	src.Emit(KeyDown(KeyReturn))

	assert.Equal(t, 1, calls)
	assert.Zero(t, src.HookCount(KindKeyDown))
}

func TestKindText(t *testing.T) {
	for _, k := range Kinds {
		b, err := k.MarshalText()
		require.NoError(t, err)

		var back Kind
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, k, back)
	}

	var k Kind
	assert.Error(t, k.UnmarshalText([]byte("right-button")))
	_, err := Kind(99).MarshalText()
	assert.Error(t, err)
}

func TestEventYAML(t *testing.T) {
	script := `
- kind: mouse-move
  x: 12
  y: 30
- kind: lbutton-down
  x: 12
  y: 30
- kind: character
  char: 65
`
	var events []Event
	require.NoError(t, yaml.Unmarshal([]byte(script), &events))
	assert.Equal(t, []Event{
		MouseMove(12, 30),
		LButtonDown(12, 30),
		Character('A'),
	}, events)
}

func TestQueueSerializesProducers(t *testing.T) {
	q := NewQueue(QueueConfig{BufferSize: 4})
	src := NewSource(nil)

	// The hook runs only on the Run goroutine, so no locking is needed.
	var seen int
	src.AddHook(KindCharacter, func(Event) bool {
		seen++
		return true
	})

	ctx := context.Background()
	done := make(chan error, 1)
	go func() { done <- q.Run(ctx, src) }()

	const producers, perProducer = 8, 50
	var wg sync.WaitGroup
	for i := 0; i < producers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perProducer; j++ {
				assert.NoError(t, q.Post(ctx, Character('x')))
			}
		}()
	}
	wg.Wait()
	q.Close()

	require.NoError(t, <-done)
	assert.Equal(t, producers*perProducer, seen)
	assert.Equal(t, uint64(producers*perProducer), q.Delivered())
}

func TestQueuePostAfterClose(t *testing.T) {
	q := NewQueue(DefaultQueueConfig())
	q.Close()
	q.Close()
	assert.ErrorIs(t, q.Post(context.Background(), KeyUp(KeySpace)), ErrQueueClosed)
}

func TestQueueCloseWakesBlockedPost(t *testing.T) {
	q := NewQueue(QueueConfig{BufferSize: 1})
	ctx := context.Background()
	require.NoError(t, q.Post(ctx, Character('a')))

	posted := make(chan error, 1)
	go func() { posted <- q.Post(ctx, Character('b')) }()

	closed := make(chan struct{})
	go func() {
		q.Close()
		close(closed)
	}()

	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked behind a producer waiting on a full queue")
	}
	select {
	case err := <-posted:
		assert.ErrorIs(t, err, ErrQueueClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("blocked Post did not return after Close")
	}
}

func TestQueueDrainsAfterClose(t *testing.T) {
	q := NewQueue(QueueConfig{BufferSize: 4})
	ctx := context.Background()
	for _, r := range "abc" {
		require.NoError(t, q.Post(ctx, Character(r)))
	}
	q.Close()

	var got []rune
	src := NewSource(nil)
	src.AddHook(KindCharacter, func(ev Event) bool {
		got = append(got, ev.Char)
		return true
	})
	require.NoError(t, q.Run(ctx, src))
	assert.Equal(t, []rune("abc"), got)
	assert.Equal(t, uint64(3), q.Delivered())
}

func TestQueueRunCancelled(t *testing.T) {
	q := NewQueue(DefaultQueueConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, q.Run(ctx, NewSource(nil)), context.Canceled)
}

func TestKeyText(t *testing.T) {
	b, err := KeyReturn.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "return", string(b))

	b, err = Key('a').MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "97", string(b))

	for in, want := range map[string]Key{
		"home": KeyHome,
		"13":   KeyReturn,
		"0x7f": KeyDelete,
		"q":    Key('q'),
	} {
		var k Key
		require.NoError(t, k.UnmarshalText([]byte(in)), in)
		assert.Equal(t, want, k, in)
	}

	var k Key
	assert.Error(t, k.UnmarshalText([]byte("hyper")))
	assert.Equal(t, "left", KeyLeft.String())
	assert.Equal(t, "up", KeyArrowUp.String())

	require.NoError(t, k.UnmarshalText([]byte("down")))
	assert.Equal(t, KeyArrowDown, k)
	assert.Equal(t, "x", Key('x').String())
}

func TestEventYAMLKeys(t *testing.T) {
	var events []Event
	require.NoError(t, yaml.Unmarshal([]byte(`
- kind: key-down
  key: backspace
- kind: key-up
  key: 32
- kind: key-down
  key: up
`), &events))
	assert.Equal(t, []Event{KeyDown(KeyBackspace), KeyUp(KeySpace), KeyDown(KeyArrowUp)}, events)
}
