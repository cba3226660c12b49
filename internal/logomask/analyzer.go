// Package logomask works out which QR modules a centre logo hides. The logo
// is resampled onto the module grid, every cell's average alpha decides
// whether it is covered, and the covered region is grown by one module so no
// visible logo pixel sits next to a module the renderer still draws.
package logomask

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"

	"github.com/cristianadrielbraun/qrrestyle/internal/imageio"
	"github.com/cristianadrielbraun/qrrestyle/internal/logging"
)

const (
	// ModuleSize is the render size of one QR module. The compositor uses
	// the same value.
	ModuleSize = 10

	// DefaultFraction is the logo size, relative to the rendered document,
	// used when none is given.
	DefaultFraction = 0.2

	// paddingModules of transparent border surround the resampled logo.
	paddingModules = 2

	// dilation is the Chebyshev radius the covered region is grown by.
	dilation = 1

	// opaqueAlpha is the average alpha above which a cell is covered.
	opaqueAlpha = 128
)

var (
	// ErrDecode is returned when the logo cannot be decoded.
	ErrDecode = errors.New("logo decode failed")

	// ErrResize is returned when the resampler fails or the logo would
	// shrink below a single module.
	ErrResize = errors.New("logo resize failed")
)

// Analyzer computes logo masks.
type Analyzer struct {
	resampler Resampler

	// Debug makes Analyze attach DebugArtifacts to its masks.
	Debug bool
}

// NewAnalyzer returns an analyzer using r, or Lanczos when r is nil.
func NewAnalyzer(r Resampler) *Analyzer {
	if r == nil {
		r = Lanczos{}
	}
	return &Analyzer{resampler: r}
}

// Geometry is the placement of the analysed logo on the render canvas.
type Geometry struct {
	InnerModules int
	GridCount    int
	Origin       image.Point
}

// Layout computes where a logo of the given fraction lands on a square
// canvas of renderSize units.
func Layout(renderSize int, fraction float64) Geometry {
	if fraction <= 0 {
		fraction = DefaultFraction
	}
	target := int(float64(renderSize) * fraction)
	inner := target / ModuleSize
	count := inner + 2*paddingModules
	px := count * ModuleSize
	off := floorDiv(renderSize-px, 2*ModuleSize) * ModuleSize
	return Geometry{
		InnerModules: inner,
		GridCount:    count,
		Origin:       image.Point{X: off, Y: off},
	}
}

// Analyze decodes logo, places it on the module grid of a renderSize square
// canvas at the given fraction and returns the resulting mask.
func (a *Analyzer) Analyze(ctx context.Context, logo []byte, renderSize int, fraction float64) (*Mask, error) {
	if fraction <= 0 {
		fraction = DefaultFraction
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, _, err := imageio.Decode(logo)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	geo := Layout(renderSize, fraction)
	if geo.InnerModules <= 0 {
		return nil, fmt.Errorf("%w: logo of %.2f on %d units covers no module", ErrResize, fraction, renderSize)
	}
	innerPx := geo.InnerModules * ModuleSize
	gridPx := geo.GridCount * ModuleSize

	resized, err := a.resampler.Resample(ctx, src, innerPx, innerPx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrResize, err)
	}

	canvas := image.NewRGBA(image.Rect(0, 0, gridPx, gridPx))
	off := paddingModules * ModuleSize
	draw.Draw(canvas, image.Rect(off, off, off+innerPx, off+innerPx), resized, resized.Bounds().Min, draw.Over)

	opaque := make([][]bool, geo.GridCount)
	hasTransparency := false
	for gy := range opaque {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		opaque[gy] = make([]bool, geo.GridCount)
		for gx := range opaque[gy] {
			if cellAlpha(canvas, gx, gy) > opaqueAlpha {
				opaque[gy][gx] = true
			} else {
				hasTransparency = true
			}
		}
	}

	coverage := Dilate(opaque, dilation)
	origin := geo.Origin

	m := &Mask{
		Path:            ContourPath(coverage, origin, ModuleSize),
		Bounds:          bounds(coverage, origin, ModuleSize),
		HasTransparency: hasTransparency,
		Coverage:        coverage,
		Origin:          &origin,
		ModuleSize:      ModuleSize,
		key:             NewKey(logo, renderSize, fraction),
	}
	if a.Debug {
		m.Debug = &DebugArtifacts{
			Mosaic: mosaic(coverage, ModuleSize),
			SVG:    debugSVG(m, renderSize),
		}
	}

	logging.Logger().Debug("logo mask computed",
		"gridCount", geo.GridCount,
		"covered", m.Covered(),
		"transparent", hasTransparency,
		"bounds", m.Bounds,
	)

	return m, nil
}

// cellAlpha is the mean alpha of the ModuleSize block at cell (gx, gy).
func cellAlpha(img *image.RGBA, gx, gy int) float64 {
	sum := 0
	for y := gy * ModuleSize; y < (gy+1)*ModuleSize; y++ {
		row := img.Pix[y*img.Stride:]
		for x := gx * ModuleSize; x < (gx+1)*ModuleSize; x++ {
			sum += int(row[x*4+3])
		}
	}
	return float64(sum) / float64(ModuleSize*ModuleSize)
}

// Dilate returns a copy of grid in which every cell within Chebyshev distance
// r of a set cell is set. The result is always a superset of grid.
func Dilate(grid [][]bool, r int) [][]bool {
	out := make([][]bool, len(grid))
	for y, row := range grid {
		out[y] = make([]bool, len(row))
		copy(out[y], row)
	}
	for y, row := range grid {
		for x, set := range row {
			if !set {
				continue
			}
			for dy := -r; dy <= r; dy++ {
				ny := y + dy
				if ny < 0 || ny >= len(out) {
					continue
				}
				for dx := -r; dx <= r; dx++ {
					nx := x + dx
					if nx >= 0 && nx < len(out[ny]) {
						out[ny][nx] = true
					}
				}
			}
		}
	}
	return out
}

// ContourPath emits one closed square sub-path per set cell. Abutting squares
// fill as one region under the default fill rule.
func ContourPath(grid [][]bool, origin image.Point, size int) string {
	var b strings.Builder
	for y, row := range grid {
		for x, set := range row {
			if !set {
				continue
			}
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "M %d,%d h %d v %d h %d Z", origin.X+x*size, origin.Y+y*size, size, size, -size)
		}
	}
	return b.String()
}

func bounds(grid [][]bool, origin image.Point, size int) Rect {
	minX, minY, maxX, maxY := 0, 0, 0, 0
	found := false
	for y, row := range grid {
		for x, set := range row {
			if !set {
				continue
			}
			px, py := origin.X+x*size, origin.Y+y*size
			if !found {
				minX, minY, maxX, maxY = px, py, px+size, py+size
				found = true
				continue
			}
			minX = min(minX, px)
			minY = min(minY, py)
			maxX = max(maxX, px+size)
			maxY = max(maxY, py+size)
		}
	}
	if !found {
		return Rect{}
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
