package measure

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/agiangrant/tactile/text"
)

type faceKey struct {
	family string
	size   int
	flags  text.FontFlags
}

// OpenType measures text with scalable OpenType faces. The Go font family is
// built in under the names goregular, gobold, goitalic, gobolditalic and
// gomono; other families are added with Register or RegisterFile.
//
// Faces are created lazily per family, size and style and cached. OpenType
// is safe for concurrent use.
type OpenType struct {
	mu      sync.Mutex
	fonts   map[string]*opentype.Font
	faces   map[faceKey]font.Face
	dpi     float64
	hinting font.Hinting
}

// OpenTypeOptions configures face rasterization.
type OpenTypeOptions struct {
	// DPI scales font sizes. Default: 72, which makes one point one pixel.
	DPI float64
	// Hinting is "none", "vertical" or "full". Default: full.
	Hinting string
}

// NewOpenType creates a measurer with the Go fonts registered.
func NewOpenType(opts OpenTypeOptions) (*OpenType, error) {
	hinting, err := parseHinting(opts.Hinting)
	if err != nil {
		return nil, err
	}
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = 72
	}
	m := &OpenType{
		fonts:   make(map[string]*opentype.Font),
		faces:   make(map[faceKey]font.Face),
		dpi:     dpi,
		hinting: hinting,
	}
	builtin := map[string][]byte{
		"goregular":    goregular.TTF,
		"gobold":       gobold.TTF,
		"goitalic":     goitalic.TTF,
		"gobolditalic": gobolditalic.TTF,
		"gomono":       gomono.TTF,
	}
	for name, data := range builtin {
		if err := m.Register(name, data); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func parseHinting(s string) (font.Hinting, error) {
	switch s {
	case "", "full":
		return font.HintingFull, nil
	case "vertical":
		return font.HintingVertical, nil
	case "none":
		return font.HintingNone, nil
	default:
		return font.HintingNone, fmt.Errorf("measure: unknown hinting %q", s)
	}
}

// Register parses TrueType or OpenType data under a family name.
func (m *OpenType) Register(family string, data []byte) error {
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("measure: parse font %q: %w", family, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fonts[family] = f
	for k, face := range m.faces {
		if k.family == family {
			face.Close()
			delete(m.faces, k)
		}
	}
	return nil
}

// RegisterFile loads a font file and registers it under family.
func (m *OpenType) RegisterFile(family, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("measure: read font %s: %w", path, err)
	}
	return m.Register(family, data)
}

// Face returns the cached face for f, creating it on first use.
func (m *OpenType) Face(f *text.Font) (font.Face, error) {
	if f == nil {
		f = text.DefaultFont
	}
	key := faceKey{family: f.Family, size: f.Size, flags: f.Flags}

	m.mu.Lock()
	defer m.mu.Unlock()
	if face, ok := m.faces[key]; ok {
		return face, nil
	}
	src, ok := m.fonts[styledFamily(f.Family, f.Flags)]
	if !ok {
		src, ok = m.fonts[f.Family]
	}
	if !ok {
		return nil, fmt.Errorf("measure: unknown font family %q", f.Family)
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    float64(f.Size),
		DPI:     m.dpi,
		Hinting: m.hinting,
	})
	if err != nil {
		return nil, fmt.Errorf("measure: face %s/%d: %w", f.Family, f.Size, err)
	}
	m.faces[key] = face
	return face, nil
}

// styledFamily maps the regular Go font to its bold and italic cuts.
func styledFamily(family string, flags text.FontFlags) string {
	if family != "goregular" {
		return family
	}
	switch {
	case flags&text.FontBold != 0 && flags&text.FontItalic != 0:
		return "gobolditalic"
	case flags&text.FontBold != 0:
		return "gobold"
	case flags&text.FontItalic != 0:
		return "goitalic"
	}
	return family
}

// MeasureText returns the advance width of s and the ascent plus descent of
// the face. Unknown families measure as zero.
func (m *OpenType) MeasureText(f *text.Font, s string) (int, int) {
	face, err := m.Face(f)
	if err != nil {
		return 0, 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return measureFace(face, s)
}

// Close releases every cached face.
func (m *OpenType) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, face := range m.faces {
		face.Close()
		delete(m.faces, k)
	}
	return nil
}

func measureFace(face font.Face, s string) (int, int) {
	metrics := face.Metrics()
	w := font.MeasureString(face, s).Ceil()
	h := (metrics.Ascent + metrics.Descent).Ceil()
	return w, h
}
