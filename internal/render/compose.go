package render

import (
	"fmt"
	"html"
	"math"
	"strings"

	"github.com/cristianadrielbraun/qrrestyle/internal/logomask"
	"github.com/cristianadrielbraun/qrrestyle/internal/qrgrid"
)

const (
	// ModuleSize is the render size of one module.
	ModuleSize = logomask.ModuleSize

	// QuietZone is the number of empty modules around the symbol.
	QuietZone = 4

	// finderSize is the side of a finder pattern in modules.
	finderSize = 7
)

// DocumentSize is the side of the rendered document for an n-module symbol.
func DocumentSize(n int) int {
	return (n + 2*QuietZone) * ModuleSize
}

// InFinder reports whether module (x, y) of an n-module symbol lies in one
// of the three finder pattern corners.
func InFinder(x, y, n int) bool {
	inSpan := func(v, start int) bool { return v >= start && v < start+finderSize }
	return (inSpan(x, 0) && inSpan(y, 0)) ||
		(inSpan(x, n-finderSize) && inSpan(y, 0)) ||
		(inSpan(x, 0) && inSpan(y, n-finderSize))
}

// LogoSide is the side, in render units, of the square the logo image is
// drawn into: round(n*fraction) modules, bumped to an even count.
func LogoSide(n int, fraction float64) int {
	modules := int(math.Round(float64(n) * fraction))
	if modules%2 != 0 {
		modules++
	}
	return modules * ModuleSize
}

// Compose renders g with opts. m may be nil, in which case a logo gets a
// round background patch instead of the module-aligned contour.
func Compose(g *qrgrid.Grid, opts Options, m *logomask.Mask) *Document {
	opts = opts.WithDefaults()
	n := g.Size()
	size := DocumentSize(n)
	doc := &Document{Size: size}

	patchFill := html.EscapeString(opts.BackgroundColor)
	if opts.Transparent {
		patchFill = "none"
	} else {
		doc.Background = fmt.Sprintf(`<rect width="%d" height="%d" fill="%s"/>`, size, size, patchFill)
	}

	var occluder logomask.Occluder
	if m != nil {
		occluder = m.Occluder()
	}

	var modules strings.Builder
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if !g.At(x, y) {
				continue
			}
			px := (x + QuietZone) * ModuleSize
			py := (y + QuietZone) * ModuleSize
			if occluder != nil && occluder.Occludes(px, py, ModuleSize) {
				doc.Occluded++
				continue
			}
			kind := opts.DotsType
			if InFinder(x, y, n) {
				kind = opts.CornersSquareType
			}
			modules.WriteString(Shape(float64(px), float64(py), ModuleSize, opts.DotsColor, kind))
			doc.Drawn++
		}
	}
	doc.Modules = modules.String()

	if opts.Logo != nil {
		side := LogoSide(n, opts.Fraction())
		pos := float64(size-side) / 2
		doc.Logo = &Placement{X: pos, Y: pos, Side: float64(side), Data: opts.Logo.Data}

		if m != nil {
			if m.Path != "" {
				doc.LogoPatch = fmt.Sprintf(`<path d="%s" fill="%s"/>`, m.Path, patchFill)
			}
		} else {
			doc.LogoPatch = fmt.Sprintf(`<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
				num(float64(size)/2), num(float64(size)/2), num(float64(side)/2+ModuleSize), patchFill)
		}
		doc.LogoImage = fmt.Sprintf(`<image xlink:href="%s" x="%s" y="%s" width="%d" height="%d"/>`,
			html.EscapeString(opts.Logo.Href), num(pos), num(pos), side, side)
	}

	if opts.Debug && m != nil && m.Coverage != nil && m.Origin != nil {
		doc.Debug = debugOverlay(m)
	}

	return doc
}

func debugOverlay(m *logomask.Mask) string {
	var b strings.Builder
	for gy, row := range m.Coverage {
		for gx, covered := range row {
			x := m.Origin.X + gx*m.ModuleSize
			y := m.Origin.Y + gy*m.ModuleSize
			if covered {
				fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="#ff00ff" fill-opacity="0.3" stroke="#0000ff" stroke-width="0.5"/>`,
					x, y, m.ModuleSize, m.ModuleSize)
			} else {
				fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="none" stroke="#00ff00" stroke-width="0.5" stroke-dasharray="2,2"/>`,
					x, y, m.ModuleSize, m.ModuleSize)
			}
		}
	}
	return b.String()
}
