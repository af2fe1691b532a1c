package commands

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agiangrant/tactile/text"
	"github.com/agiangrant/tactile/text/measure"
)

type measureOptions struct {
	ConfigPath string
	Family     string
	Size       int
	Align      string
	Bounds     text.Rect
	Padding    int
	Text       string
}

// Measure implements the 'tactile measure' command
func Measure(args []string) error {
	fs := flag.NewFlagSet("measure", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to tactile.toml or tactile.yaml (default: project root)")
	family := fs.String("font", "", "Font family (default: from config)")
	size := fs.Int("size", 0, "Font size in pixels (default: from config)")
	align := fs.String("align", "", "Alignment, e.g. top-left or center (default: from config)")
	bounds := fs.String("bounds", "0,0,200,40", "Bounding box as x,y,w,h")
	padding := fs.Int("padding", 0, "Padding on every side")
	fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("usage: tactile measure [options] <text>")
	}

	r, err := parseRect(*bounds)
	if err != nil {
		return err
	}

	return runMeasure(measureOptions{
		ConfigPath: *configPath,
		Family:     *family,
		Size:       *size,
		Align:      *align,
		Bounds:     r,
		Padding:    *padding,
		Text:       strings.Join(fs.Args(), " "),
	}, os.Stdout)
}

func parseRect(s string) (text.Rect, error) {
	var r text.Rect
	if _, err := fmt.Sscanf(s, "%d,%d,%d,%d", &r.X, &r.Y, &r.W, &r.H); err != nil {
		return r, fmt.Errorf("invalid bounds %q: %w", s, err)
	}
	return r, nil
}

// runMeasure lays the text out the way an element would and prints the
// resulting geometry.
func runMeasure(opts measureOptions, out io.Writer) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Family != "" {
		cfg.Font.Family = opts.Family
	}
	if opts.Size > 0 {
		cfg.Font.Size = opts.Size
	}
	align := cfg.Text.Alignment
	if opts.Align != "" {
		if err := align.UnmarshalText([]byte(opts.Align)); err != nil {
			return err
		}
	}

	m, err := measure.New(cfg.MeasureOptions())
	if err != nil {
		return err
	}
	if c, ok := m.(io.Closer); ok {
		defer c.Close()
	}

	font := cfg.DefaultFont()
	t := text.New(m, font)
	defer t.Destroy()
	t.SetBuffer(opts.Text)
	t.SetAlignment(align)
	p := opts.Padding
	t.SetPadding(text.Padding{Top: p, Bottom: p, Left: p, Right: p})
	t.SetBounds(opts.Bounds)

	size, pos := t.Size(), t.Pos()
	fmt.Fprintf(out, "text    %q\n", t.String())
	fmt.Fprintf(out, "font    %s %dpx (%s)\n", font.Family, font.Size, backendName(cfg.Measure.Backend))
	fmt.Fprintf(out, "align   %s\n", align)
	fmt.Fprintf(out, "size    %dx%d\n", size.W, size.H)
	fmt.Fprintf(out, "pos     %d,%d\n", pos.X, pos.Y)

	carets := make([]string, 0, t.Len()+1)
	for i := 0; i <= t.Len(); i++ {
		x, _ := t.CharPos(i)
		carets = append(carets, fmt.Sprint(x))
	}
	fmt.Fprintf(out, "carets  %s\n", strings.Join(carets, " "))
	return nil
}

func backendName(b string) string {
	if b == "" {
		return string(measure.BackendOpenType)
	}
	return b
}
