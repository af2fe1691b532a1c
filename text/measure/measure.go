// Package measure provides text.Measurer implementations backed by real
// glyph metrics (OpenType and bitmap faces) or by terminal cell widths.
package measure

import (
	"fmt"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/agiangrant/tactile/text"
)

// Backend names a measurer implementation.
type Backend string

const (
	BackendOpenType Backend = "opentype"
	BackendBasic    Backend = "basic"
	BackendCells    Backend = "cells"
	BackendFixed    Backend = "fixed"
)

// Options selects and configures a backend.
type Options struct {
	Backend  Backend
	OpenType OpenTypeOptions
	// CellWidth and CellHeight size one terminal cell for BackendCells.
	CellWidth, CellHeight int
	// Advance is the per-character width for BackendFixed.
	Advance int
}

// New returns the measurer selected by opts.Backend. An empty backend
// selects OpenType.
func New(opts Options) (text.Measurer, error) {
	switch opts.Backend {
	case "", BackendOpenType:
		return NewOpenType(opts.OpenType)
	case BackendBasic:
		return Basic{}, nil
	case BackendCells:
		return Cells{Width: opts.CellWidth, Height: opts.CellHeight}, nil
	case BackendFixed:
		return Fixed{Advance: opts.Advance}, nil
	default:
		return nil, fmt.Errorf("measure: unknown backend %q", opts.Backend)
	}
}

// Basic measures with the 7x13 bitmap face, ignoring font family and size.
type Basic struct{}

// MeasureText implements text.Measurer.
func (Basic) MeasureText(_ *text.Font, s string) (int, int) {
	var face font.Face = basicfont.Face7x13
	return measureFace(face, s)
}

// Cells measures text laid out on a terminal grid. East Asian wide
// characters take two cells.
type Cells struct {
	Width, Height int
}

// MeasureText implements text.Measurer. Zero cell sizes default to 8x16.
func (c Cells) MeasureText(_ *text.Font, s string) (int, int) {
	w, h := c.Width, c.Height
	if w <= 0 {
		w = 8
	}
	if h <= 0 {
		h = 16
	}
	return runewidth.StringWidth(s) * w, h
}

// Fixed gives every character the same advance and reports a height two
// pixels above the font size. It is deterministic and intended for tests
// and headless replays.
type Fixed struct {
	Advance int
}

// MeasureText implements text.Measurer. A zero advance defaults to 8.
func (f Fixed) MeasureText(fnt *text.Font, s string) (int, int) {
	adv := f.Advance
	if adv <= 0 {
		adv = 8
	}
	size := text.DefaultFont.Size
	if fnt != nil {
		size = fnt.Size
	}
	return adv * utf8.RuneCountInString(s), size + 2
}
