package logomask

import (
	"crypto/sha256"
	"image"
	"math"
)

// Rect is an axis-aligned rectangle in render units. The zero Rect is the
// empty box.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Key identifies the inputs a mask was computed from.
type Key struct {
	LogoHash   [32]byte
	RenderSize int
	Fraction   float64
}

// NewKey returns the key of a mask computed from the given inputs.
func NewKey(logo []byte, renderSize int, fraction float64) Key {
	if fraction <= 0 {
		fraction = DefaultFraction
	}
	return Key{LogoHash: sha256.Sum256(logo), RenderSize: renderSize, Fraction: fraction}
}

// DebugArtifacts are diagnostic by-products of an analysis.
type DebugArtifacts struct {
	// Mosaic is the dilated coverage grid, one ModuleSize block per cell,
	// black where covered.
	Mosaic *image.Gray

	// SVG overlays the contour path and covered cell outlines on a canvas
	// of the analysed render size.
	SVG string
}

// Mask describes which modules a logo occludes. A Mask is never modified
// after it is returned.
type Mask struct {
	// Path is the outline of every covered cell as closed square sub-paths.
	Path string

	// Bounds is the tight box around the covered cells.
	Bounds Rect

	// HasTransparency is set when at least one sampled cell was below the
	// opacity threshold.
	HasTransparency bool

	// Coverage is the dilated opacity grid, indexed [row][col]. Nil for
	// masks that only know their bounds.
	Coverage [][]bool

	// Origin is the render position of Coverage[0][0].
	Origin *image.Point

	// ModuleSize is the render size of one coverage cell.
	ModuleSize int

	// Debug is nil unless the analyzer was asked for debug output.
	Debug *DebugArtifacts

	key Key
}

// Key returns the inputs the mask was computed from.
func (m *Mask) Key() Key {
	return m.key
}

// Covered returns the number of covered cells.
func (m *Mask) Covered() int {
	n := 0
	for _, row := range m.Coverage {
		for _, c := range row {
			if c {
				n++
			}
		}
	}
	return n
}

// FromBounds returns a mask that knows only the logo footprint. Occlusion
// against it uses the ellipse inscribed in r.
func FromBounds(r Rect) *Mask {
	return &Mask{Bounds: r, ModuleSize: ModuleSize}
}

// Occluder decides whether a module at a render position is hidden by the
// logo.
type Occluder interface {
	Occludes(x, y, moduleSize int) bool
}

// Occluder returns the exact coverage-grid test when the mask has a grid and
// the bounding ellipse test otherwise.
func (m *Mask) Occluder() Occluder {
	if m.Coverage != nil && m.Origin != nil && m.ModuleSize > 0 {
		return gridOccluder{coverage: m.Coverage, origin: *m.Origin, size: m.ModuleSize}
	}
	return ellipseOccluder{bounds: m.Bounds}
}

type gridOccluder struct {
	coverage [][]bool
	origin   image.Point
	size     int
}

func (g gridOccluder) Occludes(x, y, _ int) bool {
	gx := int(math.Round(float64(x-g.origin.X) / float64(g.size)))
	gy := int(math.Round(float64(y-g.origin.Y) / float64(g.size)))
	if gy < 0 || gy >= len(g.coverage) || gx < 0 || gx >= len(g.coverage[gy]) {
		return false
	}
	return g.coverage[gy][gx]
}

type ellipseOccluder struct {
	bounds Rect
}

func (e ellipseOccluder) Occludes(x, y, moduleSize int) bool {
	if e.bounds.Empty() {
		return false
	}
	rx := float64(e.bounds.Width) / 2
	ry := float64(e.bounds.Height) / 2
	cx := float64(e.bounds.X) + rx
	cy := float64(e.bounds.Y) + ry

	nx := (float64(x) + float64(moduleSize)/2 - cx) / rx
	ny := (float64(y) + float64(moduleSize)/2 - cy) / ry
	return nx*nx+ny*ny <= 1
}
