package tactile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/agiangrant/tactile/internal/logging"
	"github.com/agiangrant/tactile/text"
	"github.com/agiangrant/tactile/text/measure"
)

// ErrUnknownFormat is returned when a config file extension is neither
// TOML nor YAML.
var ErrUnknownFormat = errors.New("tactile: unknown config format")

// Config represents the tactile.toml (or tactile.yaml) configuration file.
type Config struct {
	Font    FontConfig    `toml:"font" yaml:"font"`
	Measure MeasureConfig `toml:"measure" yaml:"measure"`
	Text    TextConfig    `toml:"text" yaml:"text"`
	Log     LogConfig     `toml:"log" yaml:"log"`
}

// FontConfig selects the default font of new elements.
type FontConfig struct {
	Family string `toml:"family" yaml:"family"`
	// Size in pixels
	Size   int  `toml:"size" yaml:"size"`
	Bold   bool `toml:"bold" yaml:"bold"`
	Italic bool `toml:"italic" yaml:"italic"`
	// DPI and Hinting only apply to the opentype backend.
	DPI     float64 `toml:"dpi" yaml:"dpi"`
	Hinting string  `toml:"hinting" yaml:"hinting"`
	// Extra font files, family name to path
	Files map[string]string `toml:"files,omitempty" yaml:"files,omitempty"`
}

type MeasureConfig struct {
	// Backend is one of opentype, basic, cells, fixed.
	Backend    string `toml:"backend" yaml:"backend"`
	CellWidth  int    `toml:"cell_width" yaml:"cell_width"`
	CellHeight int    `toml:"cell_height" yaml:"cell_height"`
	Advance    int    `toml:"advance" yaml:"advance"`
	// CacheSize bounds the measurement cache. Zero disables it.
	CacheSize int `toml:"cache_size" yaml:"cache_size"`
}

type TextConfig struct {
	// DefaultColor is #RRGGBB or #AARRGGBB.
	DefaultColor string         `toml:"default_color" yaml:"default_color"`
	Alignment    text.Alignment `toml:"alignment" yaml:"alignment"`
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		Font: FontConfig{
			Family:  text.DefaultFont.Family,
			Size:    text.DefaultFont.Size,
			DPI:     72,
			Hinting: "full",
		},
		Measure: MeasureConfig{
			Backend:   string(measure.BackendOpenType),
			CacheSize: measure.DefaultCacheSize,
		},
		Text: TextConfig{
			DefaultColor: text.DefaultColor.String(),
			Alignment:    text.AlignCenter,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

type format int

const (
	formatTOML format = iota
	formatYAML
)

func formatOf(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return formatTOML, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// LoadConfig loads the configuration from path. The format follows the
// extension. If the file doesn't exist, returns default config.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	f, err := formatOf(path)
	if err != nil {
		return config, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}

	switch f {
	case formatTOML:
		err = toml.Unmarshal(data, &config)
	case formatYAML:
		err = yaml.Unmarshal(data, &config)
	}
	if err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid %s: %w", path, err)
	}
	return config, nil
}

// SaveConfig saves the configuration to path in the format given by its
// extension.
func SaveConfig(path string, config Config) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}

	var data []byte
	switch f {
	case formatTOML:
		data, err = toml.Marshal(config)
	case formatYAML:
		data, err = yaml.Marshal(config)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Validate checks every field that is parsed later on.
func (c Config) Validate() error {
	if c.Font.Size <= 0 {
		return fmt.Errorf("font size must be positive, got %d", c.Font.Size)
	}
	if _, err := text.ParseColor(c.Text.DefaultColor); err != nil {
		return err
	}
	switch measure.Backend(c.Measure.Backend) {
	case "", measure.BackendOpenType, measure.BackendBasic, measure.BackendCells, measure.BackendFixed:
	default:
		return fmt.Errorf("unknown measure backend %q", c.Measure.Backend)
	}
	if c.Measure.CacheSize < 0 {
		return fmt.Errorf("measure cache_size must not be negative, got %d", c.Measure.CacheSize)
	}
	if _, err := c.Logging(); err != nil {
		return err
	}
	return nil
}

// DefaultFont returns the font described by the [font] section.
func (c Config) DefaultFont() *text.Font {
	f := &text.Font{Family: c.Font.Family, Size: c.Font.Size}
	if f.Family == "" {
		f.Family = text.DefaultFont.Family
	}
	if c.Font.Bold {
		f.Flags |= text.FontBold
	}
	if c.Font.Italic {
		f.Flags |= text.FontItalic
	}
	return f
}

// TextColor returns the parsed default text colour.
func (c Config) TextColor() (text.Color, error) {
	return text.ParseColor(c.Text.DefaultColor)
}

// MeasureOptions returns the options for measure.New.
func (c Config) MeasureOptions() measure.Options {
	return measure.Options{
		Backend: measure.Backend(c.Measure.Backend),
		OpenType: measure.OpenTypeOptions{
			DPI:     c.Font.DPI,
			Hinting: c.Font.Hinting,
		},
		CellWidth:  c.Measure.CellWidth,
		CellHeight: c.Measure.CellHeight,
		Advance:    c.Measure.Advance,
	}
}

// Logging returns the logger configuration of the [log] section.
func (c Config) Logging() (logging.Config, error) {
	lc := logging.DefaultConfig()
	if c.Log.Level != "" {
		level, err := logging.ParseLevel(c.Log.Level)
		if err != nil {
			return lc, err
		}
		lc.Level = level
	}
	format, err := logging.ParseFormat(c.Log.Format)
	if err != nil {
		return lc, err
	}
	lc.Format = format
	return lc, nil
}
