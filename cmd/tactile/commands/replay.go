package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/agiangrant/tactile"
)

type replayOptions struct {
	ConfigPath string
	Script     string
	Verbose    bool
}

// Replay implements the 'tactile replay' command
func Replay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to tactile.toml or tactile.yaml (default: project root)")
	verbose := fs.Bool("verbose", false, "Log at debug level")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: tactile replay [options] <script.yaml>")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runReplay(ctx, replayOptions{
		ConfigPath: *configPath,
		Script:     fs.Arg(0),
		Verbose:    *verbose,
	}, os.Stdout, os.Stderr)
}

// runReplay plays a script against the demo scene. Events are posted from
// one goroutine and dispatched on another, the way a platform backend
// feeds the engine.
func runReplay(ctx context.Context, opts replayOptions, out, logOut io.Writer) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log, err := newLogger(cfg, opts.Verbose, logOut)
	if err != nil {
		return err
	}

	events, err := LoadScript(opts.Script)
	if err != nil {
		return err
	}

	engine, err := tactile.NewEngine(cfg, tactile.WithLogger(log))
	if err != nil {
		return err
	}
	defer engine.Close()

	sc := buildScene(engine, out)
	log.Debug("replaying script", "path", opts.Script, "events", len(events))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return engine.Run(gctx)
	})
	g.Go(func() error {
		defer engine.Stop()
		for _, ev := range events {
			if err := engine.Post(gctx, ev); err != nil {
				return err
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("replay interrupted: %w", err)
	}

	sc.summary(engine, out)
	return nil
}
