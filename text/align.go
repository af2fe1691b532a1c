package text

import "fmt"

// Alignment places text inside its bounding box. A value combines at most
// one horizontal and one vertical flag. Zero and every combination that is
// not a single horizontal plus a single vertical choice behave as Center.
type Alignment uint32

const (
	AlignLeft Alignment = 1 << iota
	AlignRight
	AlignCenterH
	AlignTop
	AlignBottom
	AlignCenterV

	AlignCenter = AlignCenterH | AlignCenterV

	AlignTopLeft     = AlignTop | AlignLeft
	AlignTopRight    = AlignTop | AlignRight
	AlignBottomLeft  = AlignBottom | AlignLeft
	AlignBottomRight = AlignBottom | AlignRight
)

const (
	horizontalMask = AlignLeft | AlignRight | AlignCenterH
	verticalMask   = AlignTop | AlignBottom | AlignCenterV
)

type hAlign uint8

const (
	hCenter hAlign = iota
	hLeft
	hRight
)

type vAlign uint8

const (
	vCenter vAlign = iota
	vTop
	vBottom
)

// split resolves the alignment into its horizontal and vertical placement.
func (a Alignment) split() (hAlign, vAlign) {
	h, v := a&horizontalMask, a&verticalMask
	if a&^(horizontalMask|verticalMask) != 0 || !singleBit(h) || !singleBit(v) {
		return hCenter, vCenter
	}
	var ha hAlign
	switch h {
	case AlignLeft:
		ha = hLeft
	case AlignRight:
		ha = hRight
	}
	var va vAlign
	switch v {
	case AlignTop:
		va = vTop
	case AlignBottom:
		va = vBottom
	}
	return ha, va
}

func singleBit(a Alignment) bool {
	return a&(a-1) == 0
}

var alignNames = []struct {
	h    hAlign
	v    vAlign
	name string
}{
	{hLeft, vTop, "top-left"},
	{hCenter, vTop, "top"},
	{hRight, vTop, "top-right"},
	{hLeft, vCenter, "left"},
	{hCenter, vCenter, "center"},
	{hRight, vCenter, "right"},
	{hLeft, vBottom, "bottom-left"},
	{hCenter, vBottom, "bottom"},
	{hRight, vBottom, "bottom-right"},
}

var alignValues = map[string]Alignment{
	"top-left":     AlignTopLeft,
	"top":          AlignTop,
	"top-right":    AlignTopRight,
	"left":         AlignLeft,
	"center":       AlignCenter,
	"right":        AlignRight,
	"bottom-left":  AlignBottomLeft,
	"bottom":       AlignBottom,
	"bottom-right": AlignBottomRight,
}

// String returns the name of the placement the alignment resolves to.
func (a Alignment) String() string {
	h, v := a.split()
	for _, n := range alignNames {
		if n.h == h && n.v == v {
			return n.name
		}
	}
	return "center"
}

// MarshalText implements encoding.TextMarshaler.
func (a Alignment) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Alignment) UnmarshalText(b []byte) error {
	v, ok := alignValues[string(b)]
	if !ok {
		return fmt.Errorf("text: unknown alignment %q", string(b))
	}
	*a = v
	return nil
}
