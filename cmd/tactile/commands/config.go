package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/agiangrant/tactile"
	"github.com/agiangrant/tactile/internal/logging"
)

// configNames are the file names looked up in the project root, in order.
var configNames = []string{"tactile.toml", "tactile.yaml", "tactile.yml"}

// loadConfig loads the configuration at path. With an empty path it looks
// for a config file in the project root and falls back to defaults.
func loadConfig(path string) (tactile.Config, error) {
	if path != "" {
		return tactile.LoadConfig(path)
	}

	root, err := FindProjectRoot()
	if err != nil {
		return tactile.DefaultConfig(), nil
	}
	for _, name := range configNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return tactile.LoadConfig(p)
		}
	}
	return tactile.DefaultConfig(), nil
}

// newLogger builds the command logger. verbose forces debug level.
func newLogger(cfg tactile.Config, verbose bool, w io.Writer) (*slog.Logger, error) {
	lc, err := cfg.Logging()
	if err != nil {
		return nil, err
	}
	if verbose {
		lc.Level = logging.LevelDebug
	}
	return logging.New(lc, w), nil
}

// FindProjectRoot finds the project root by looking for a tactile config
// file or go.mod
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		for _, name := range configNames {
			if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
				return dir, nil
			}
		}
		// Check for go.mod as fallback
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a tactile project (no tactile.toml or go.mod found)")
		}
		dir = parent
	}
}
