package commands

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agiangrant/tactile"
	"github.com/agiangrant/tactile/input"
	"github.com/agiangrant/tactile/text"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func fixedConfigFile(t *testing.T, dir string) string {
	return writeFile(t, dir, "tactile.toml", "[measure]\nbackend = \"fixed\"\n")
}

// normalize collapses the column padding of every output line.
func normalize(out string) []string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		lines = append(lines, strings.Join(strings.Fields(l), " "))
	}
	return lines
}

func TestParseScript(t *testing.T) {
	events, err := ParseScript([]byte(`
- kind: mouse-move
  x: 5
  y: 6
- text: hi
- kind: key-down
  key: left
  repeat: 2
`))
	require.NoError(t, err)
	assert.Equal(t, []input.Event{
		input.MouseMove(5, 6),
		input.Character('h'),
		input.Character('i'),
		input.KeyDown(input.KeyLeft),
		input.KeyDown(input.KeyLeft),
	}, events)

	_, err = ParseScript([]byte("- x: 3\n"))
	assert.ErrorContains(t, err, "step 1")

	_, err = ParseScript([]byte("- kind: teleport\n"))
	assert.Error(t, err)
}

func TestDefaultScriptParses(t *testing.T) {
	events, err := ParseScript([]byte(defaultScript))
	require.NoError(t, err)
	assert.Len(t, events, 14)
}

func TestReplayDemo(t *testing.T) {
	dir := t.TempDir()
	opts := replayOptions{
		ConfigPath: fixedConfigFile(t, dir),
		Script:     writeFile(t, dir, "demo.yaml", defaultScript),
	}

	var out bytes.Buffer
	require.NoError(t, runReplay(context.Background(), opts, &out, io.Discard))

	assert.Equal(t, []string{
		"hover-enter name",
		"click name",
		"focus-enter name",
		"release name",
		"hover-leave name",
		"hover-enter ok",
		"focus-exit name",
		"click ok",
		"focus-enter ok",
		"release ok",
		`name = "gophe"`,
		`focus = button "OK"`,
		`hover = button "OK"`,
		"window at 10,10",
	}, normalize(out.String()))
}

func TestReplayDragWindow(t *testing.T) {
	dir := t.TempDir()
	opts := replayOptions{
		ConfigPath: fixedConfigFile(t, dir),
		Script: writeFile(t, dir, "drag.yaml", `
- {kind: lbutton-down, x: 200, y: 20}
- {kind: mouse-move, x: 230, y: 60}
- {kind: lbutton-up, x: 230, y: 60}
`),
	}

	var out bytes.Buffer
	require.NoError(t, runReplay(context.Background(), opts, &out, io.Discard))
	assert.Contains(t, normalize(out.String()), "window at 40,50")
}

func TestReplayErrors(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	err := runReplay(ctx, replayOptions{ConfigPath: fixedConfigFile(t, dir), Script: filepath.Join(dir, "none.yaml")}, io.Discard, io.Discard)
	assert.Error(t, err)

	err = runReplay(ctx, replayOptions{ConfigPath: filepath.Join(dir, "tactile.ini"), Script: "x"}, io.Discard, io.Discard)
	assert.ErrorIs(t, err, tactile.ErrUnknownFormat)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	script := writeFile(t, dir, "long.yaml", "- {kind: mouse-move, x: 1, y: 1, repeat: 1000}\n")
	err = runReplay(cancelled, replayOptions{ConfigPath: fixedConfigFile(t, dir), Script: script}, io.Discard, io.Discard)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMeasure(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer
	require.NoError(t, runMeasure(measureOptions{
		ConfigPath: fixedConfigFile(t, dir),
		Align:      "top-left",
		Bounds:     mustRect(t, "0,0,200,40"),
		Text:       "Hi",
	}, &out))

	assert.Equal(t, []string{
		`text "Hi"`,
		"font goregular 12px (fixed)",
		"align top-left",
		"size 16x12",
		"pos 0,0",
		"carets 0 8 16",
	}, normalize(out.String()))

	err := runMeasure(measureOptions{ConfigPath: fixedConfigFile(t, dir), Align: "diagonal", Text: "x"}, io.Discard)
	assert.Error(t, err)
}

func mustRect(t *testing.T, s string) text.Rect {
	r, err := parseRect(s)
	require.NoError(t, err)
	return r
}

func TestParseRect(t *testing.T) {
	r, err := parseRect("1,2,3,4")
	require.NoError(t, err)
	assert.Equal(t, text.Rect{X: 1, Y: 2, W: 3, H: 4}, r)

	_, err = parseRect("1,2")
	assert.Error(t, err)
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	var out bytes.Buffer

	require.NoError(t, runInit(dir, initOptions{Format: "toml", Backend: "cells"}, &out))
	assert.Contains(t, out.String(), "created tactile.toml")
	assert.Contains(t, out.String(), "created demo.yaml")

	cfg, err := tactile.LoadConfig(filepath.Join(dir, "tactile.toml"))
	require.NoError(t, err)
	assert.Equal(t, "cells", cfg.Measure.Backend)

	_, err = LoadScript(filepath.Join(dir, "demo.yaml"))
	require.NoError(t, err)

	err = runInit(dir, initOptions{Format: "toml"}, io.Discard)
	assert.ErrorContains(t, err, "already exists")
	require.NoError(t, runInit(dir, initOptions{Format: "toml", Force: true}, io.Discard))

	require.NoError(t, runInit(dir, initOptions{Format: "yaml"}, io.Discard))
	_, err = os.Stat(filepath.Join(dir, "tactile.yaml"))
	assert.NoError(t, err)

	assert.ErrorIs(t, runInit(dir, initOptions{Format: "ini"}, io.Discard), tactile.ErrUnknownFormat)
	assert.Error(t, runInit(t.TempDir(), initOptions{Backend: "vector"}, io.Discard))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchReplaysOnChange(t *testing.T) {
	dir := t.TempDir()
	opts := replayOptions{
		ConfigPath: fixedConfigFile(t, dir),
		Script:     writeFile(t, dir, "demo.yaml", defaultScript),
	}

	ctx, cancel := context.WithCancel(context.Background())
	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- watchScript(ctx, opts, 10*time.Millisecond, &out, io.Discard) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `"gophe"`)
	}, 5*time.Second, 10*time.Millisecond)

	writeFile(t, dir, "demo.yaml", strings.Replace(defaultScript, "gopher", "gophers", 1))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "script changed") &&
			strings.Contains(out.String(), `"gopher"`)
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}
