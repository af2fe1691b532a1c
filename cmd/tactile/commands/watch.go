package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch implements the 'tactile watch' command. It replays a script and
// replays it again every time the file changes.
func Watch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to tactile.toml or tactile.yaml (default: project root)")
	verbose := fs.Bool("verbose", false, "Log at debug level")
	debounce := fs.Duration("debounce", 100*time.Millisecond, "Delay before replaying after a change")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tactile watch [options] <script.yaml>")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Watching for changes, press Ctrl+C to stop")
	return watchScript(ctx, replayOptions{
		ConfigPath: *configPath,
		Script:     fs.Arg(0),
		Verbose:    *verbose,
	}, *debounce, os.Stdout, os.Stderr)
}

func watchScript(ctx context.Context, opts replayOptions, delay time.Duration, out, logOut io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files on save, so watch the directory.
	script := filepath.Clean(opts.Script)
	if err := watcher.Add(filepath.Dir(script)); err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}

	replay := func() {
		if err := runReplay(ctx, opts, out, logOut); err != nil {
			fmt.Fprintf(out, "replay failed: %v\n", err)
		}
	}
	replay()

	timer := time.NewTimer(delay)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != script {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			timer.Reset(delay)

		case <-timer.C:
			fmt.Fprintln(out, "--- script changed, replaying")
			replay()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", script, err)
		}
	}
}
