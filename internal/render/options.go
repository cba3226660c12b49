package render

import (
	"github.com/cristianadrielbraun/qrrestyle/internal/imageio"
	"github.com/cristianadrielbraun/qrrestyle/internal/logomask"
)

// Style selects the shape drawn for a module.
type Style string

// Module styles. StyleDot is offered for finder modules only; the module
// renderer draws it like any unknown style, as a square.
const (
	StyleSquare       Style = "square"
	StyleRounded      Style = "rounded"
	StyleDots         Style = "dots"
	StyleExtraRounded Style = "extra-rounded"
	StyleDot          Style = "dot"
)

// ParseStyle maps a wire name to a Style. Unknown names are kept as-is and
// render as squares.
func ParseStyle(s string) Style {
	return Style(s)
}

// Logo is an embedded raster logo.
type Logo struct {
	// Data is the encoded image.
	Data []byte

	// Href is the data URI of Data.
	Href string
}

// NewLogo wraps encoded image bytes. It returns nil for empty input.
func NewLogo(data []byte) *Logo {
	if len(data) == 0 {
		return nil
	}
	return &Logo{Data: data, Href: imageio.DataURI(data)}
}

// Options configure a render. Options is a value: callers copy and modify
// it rather than sharing one instance.
type Options struct {
	DotsColor         string
	BackgroundColor   string
	DotsType          Style
	CornersSquareType Style

	// Transparent drops the background; BackgroundColor is ignored.
	Transparent bool

	Logo *Logo

	// LogoSize is the logo side relative to the document; 0 means
	// logomask.DefaultFraction.
	LogoSize float64

	// Debug overlays the mask coverage grid.
	Debug bool
}

// DefaultOptions are the options of a fresh editor.
func DefaultOptions() Options {
	return Options{
		DotsColor:         "#000000",
		BackgroundColor:   "#ffffff",
		DotsType:          StyleSquare,
		CornersSquareType: StyleSquare,
	}
}

// WithDefaults fills empty fields from DefaultOptions.
func (o Options) WithDefaults() Options {
	d := DefaultOptions()
	if o.DotsColor == "" {
		o.DotsColor = d.DotsColor
	}
	if o.BackgroundColor == "" {
		o.BackgroundColor = d.BackgroundColor
	}
	if o.DotsType == "" {
		o.DotsType = d.DotsType
	}
	if o.CornersSquareType == "" {
		o.CornersSquareType = d.CornersSquareType
	}
	if o.LogoSize <= 0 {
		o.LogoSize = logomask.DefaultFraction
	}
	return o
}

// Fraction is LogoSize with the default applied.
func (o Options) Fraction() float64 {
	if o.LogoSize <= 0 {
		return logomask.DefaultFraction
	}
	return o.LogoSize
}
