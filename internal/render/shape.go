// Package render turns a module grid into a styled SVG document.
package render

import (
	"html"
	"strconv"
)

// Shape returns the SVG element for one module of the given size whose top
// left corner is at (x, y).
func Shape(x, y, size float64, color string, kind Style) string {
	fill := html.EscapeString(color)
	switch kind {
	case StyleRounded:
		r := num(size * 0.25)
		return `<rect x="` + num(x) + `" y="` + num(y) + `" width="` + num(size) + `" height="` + num(size) +
			`" rx="` + r + `" ry="` + r + `" fill="` + fill + `"/>`
	case StyleDots:
		return `<circle cx="` + num(x+size/2) + `" cy="` + num(y+size/2) + `" r="` + num(size*0.45) +
			`" fill="` + fill + `"/>`
	case StyleExtraRounded:
		r := num(size * 0.5)
		return `<rect x="` + num(x) + `" y="` + num(y) + `" width="` + num(size) + `" height="` + num(size) +
			`" rx="` + r + `" ry="` + r + `" fill="` + fill + `"/>`
	default:
		return `<rect x="` + num(x) + `" y="` + num(y) + `" width="` + num(size) + `" height="` + num(size) +
			`" fill="` + fill + `"/>`
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
