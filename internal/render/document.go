package render

import (
	"fmt"
	"io"
	"strings"
)

// Placement is where the logo raster is drawn, in render units.
type Placement struct {
	X, Y, Side float64
	Data       []byte
}

// Document is a composed render, kept as separate layers so rasterizers can
// draw the logo raster between the vector layers.
type Document struct {
	// Size is the width and height of the document.
	Size int

	// Layers, back to front. Background is empty for transparent renders.
	Background string
	Modules    string
	LogoPatch  string
	LogoImage  string
	Debug      string

	// Logo is nil when no logo is set.
	Logo *Placement

	// Drawn and Occluded count the dark modules emitted and hidden by the
	// logo mask.
	Drawn    int
	Occluded int
}

// SVG returns the full document.
func (d *Document) SVG() string {
	return d.svg(d.Background, d.Modules, d.LogoPatch, d.LogoImage, d.Debug)
}

// BaseSVG returns the layers below the logo image.
func (d *Document) BaseSVG() string {
	return d.svg(d.Background, d.Modules, d.LogoPatch)
}

// DebugSVG returns only the debug overlay, or "" when there is none.
func (d *Document) DebugSVG() string {
	if d.Debug == "" {
		return ""
	}
	return d.svg(d.Debug)
}

// WriteTo writes the full document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.SVG())
	return int64(n), err
}

func (d *Document) svg(layers ...string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" version="1.1" width="%d" height="%d" viewBox="0 0 %d %d">`,
		d.Size, d.Size, d.Size, d.Size)
	for _, l := range layers {
		if l == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(l)
	}
	b.WriteString("\n</svg>\n")
	return b.String()
}
