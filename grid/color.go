package grid

// ColorType identifies how a Color's value should be interpreted.
type ColorType uint8

const (
	ColorDefault ColorType = iota
	ColorIndexed
	ColorRGB
)

// Color represents a terminal foreground or background color: the
// default pen color, a 0-255 palette index, or a 24-bit RGB triple.
type Color struct {
	Type    ColorType
	Index   uint8
	R, G, B uint8
}

// DefaultFg returns the default foreground color.
func DefaultFg() Color { return Color{Type: ColorDefault} }

// DefaultBg returns the default background color.
func DefaultBg() Color { return Color{Type: ColorDefault} }

// IndexedColor creates a palette-indexed color.
func IndexedColor(index uint8) Color { return Color{Type: ColorIndexed, Index: index} }

// RGBColor creates a 24-bit truecolor color.
func RGBColor(r, g, b uint8) Color { return Color{Type: ColorRGB, R: r, G: g, B: b} }

// UnderlineStyle distinguishes the SGR 4 underline variants.
type UnderlineStyle uint8

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
)

// Attrs holds the SGR rendition state applied to a cell.
type Attrs struct {
	Bold          bool
	Italic        bool
	Underline     UnderlineStyle
	Blink         bool
	Reverse       bool
	Strikethrough bool
	Conceal       bool
}
