package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agiangrant/tactile"
	"github.com/agiangrant/tactile/text/measure"
)

type initOptions struct {
	Format  string
	Backend string
	Force   bool
}

// Init implements the 'tactile init' command
func Init(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	format := fs.String("format", "toml", "Config format: toml or yaml")
	backend := fs.String("backend", string(measure.BackendOpenType), "Measure backend: opentype, basic, cells or fixed")
	force := fs.Bool("force", false, "Overwrite existing files")
	fs.Parse(args)

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	return runInit(cwd, initOptions{Format: *format, Backend: *backend, Force: *force}, os.Stdout)
}

func runInit(dir string, opts initOptions, out io.Writer) error {
	var name string
	switch opts.Format {
	case "", "toml":
		name = "tactile.toml"
	case "yaml", "yml":
		name = "tactile.yaml"
	default:
		return fmt.Errorf("%w: %s", tactile.ErrUnknownFormat, opts.Format)
	}
	path := filepath.Join(dir, name)

	if _, err := os.Stat(path); err == nil && !opts.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", name)
	}

	config := tactile.DefaultConfig()
	if opts.Backend != "" {
		config.Measure.Backend = opts.Backend
	}
	if err := config.Validate(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Initializing tactile project in %s\n", dir)

	if err := tactile.SaveConfig(path, config); err != nil {
		return err
	}
	fmt.Fprintf(out, "  created %s\n", name)

	script := filepath.Join(dir, "demo.yaml")
	if _, err := os.Stat(script); os.IsNotExist(err) || opts.Force {
		if err := os.WriteFile(script, []byte(defaultScript), 0644); err != nil {
			return fmt.Errorf("failed to create demo.yaml: %w", err)
		}
		fmt.Fprintln(out, "  created demo.yaml")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  tactile replay demo.yaml")
	return nil
}
