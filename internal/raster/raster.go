// Package raster draws composed documents into images and encodes them as
// PNG or JPEG.
package raster

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"github.com/cristianadrielbraun/qrrestyle/internal/imageio"
	"github.com/cristianadrielbraun/qrrestyle/internal/logging"
	"github.com/cristianadrielbraun/qrrestyle/internal/qrgrid"
	"github.com/cristianadrielbraun/qrrestyle/internal/render"
)

// ErrContextUnavailable is returned when the output surface cannot be
// allocated.
var ErrContextUnavailable = qrgrid.ErrContextUnavailable

// MaxSide bounds the pixel side of a rasterized document.
const MaxSide = 16384

// Side is the pixel side of doc drawn at scale.
func Side(doc *render.Document, scale float64) int {
	return int(math.Round(float64(doc.Size) * scale))
}

// Rasterize draws doc at scale pixels per render unit. The logo raster is
// composited between the vector layers and the debug overlay, because the
// SVG rasterizer does not draw <image> elements.
func Rasterize(ctx context.Context, doc *render.Document, scale float64) (*image.RGBA, error) {
	side := Side(doc, scale)
	if side <= 0 || side > MaxSide {
		return nil, fmt.Errorf("%w: %dx%d", ErrContextUnavailable, side, side)
	}
	img := image.NewRGBA(image.Rect(0, 0, side, side))

	if err := drawSVG(img, doc.BaseSVG()); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if doc.Logo != nil {
		drawLogo(img, doc.Logo, scale)
	}

	if overlay := doc.DebugSVG(); overlay != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := drawSVG(img, overlay); err != nil {
			return nil, err
		}
	}
	return img, nil
}

func drawSVG(dst *image.RGBA, svg string) error {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return nil
}

func drawLogo(dst *image.RGBA, p *render.Placement, scale float64) {
	logo, _, err := imageio.Decode(p.Data)
	if err != nil {
		logging.Logger().Warn("skipping logo raster", "error", err)
		return
	}
	r := image.Rect(
		int(math.Round(p.X*scale)),
		int(math.Round(p.Y*scale)),
		int(math.Round((p.X+p.Side)*scale)),
		int(math.Round((p.Y+p.Side)*scale)),
	)
	draw.CatmullRom.Scale(dst, r, logo, logo.Bounds(), draw.Over, nil)
}

// Flatten composites img over an opaque bg.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	r, g, b, _ := bg.RGBA()
	opaque := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}

	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, &image.Uniform{C: opaque}, image.Point{}, draw.Src)
	draw.Draw(out, bounds, img, bounds.Min, draw.Over)
	return out
}
