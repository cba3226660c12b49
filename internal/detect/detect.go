// Package detect locates a QR symbol in a decoded image. It is the only place
// that knows about the barcode library; the rest of the pipeline works with
// the module count and the symbol quadrilateral it reports.
package detect

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

import (
	"context"
	"errors"
	"image"

	"github.com/cristianadrielbraun/qrrestyle/internal/qrgrid"
)

// ErrDetectionFailure is returned when no valid symbol is found.
var ErrDetectionFailure = errors.New("no QR code detected")

// Detection is what the detector learned about a symbol.
type Detection struct {
	// ModuleCount is the number of modules per side, 4*version+17.
	ModuleCount int

	// Quad holds the outer corners of the symbol in image pixels.
	Quad qrgrid.Quad

	// Payload is the decoded text, empty when only the geometry was
	// recovered.
	Payload string
}

// Version is the QR version implied by ModuleCount.
func (d *Detection) Version() int {
	return (d.ModuleCount - 17) / 4
}

//counterfeiter:generate . Detector

// Detector finds a single QR symbol in an image.
type Detector interface {
	Detect(ctx context.Context, img image.Image) (*Detection, error)
}

// Scan runs d over img and samples the symbol it found into a module grid.
func Scan(ctx context.Context, d Detector, img image.Image) (*qrgrid.Grid, *Detection, error) {
	det, err := d.Detect(ctx, img)
	if err != nil {
		return nil, nil, err
	}
	b := img.Bounds()
	quad := det.Quad
	if b.Min != (image.Point{}) {
		quad = shift(quad, -float64(b.Min.X), -float64(b.Min.Y))
	}
	return qrgrid.SampleImage(img, quad, det.ModuleCount), det, nil
}

func shift(q qrgrid.Quad, dx, dy float64) qrgrid.Quad {
	move := func(p qrgrid.Point) qrgrid.Point { return qrgrid.Point{X: p.X + dx, Y: p.Y + dy} }
	return qrgrid.Quad{
		TopLeft:     move(q.TopLeft),
		TopRight:    move(q.TopRight),
		BottomLeft:  move(q.BottomLeft),
		BottomRight: move(q.BottomRight),
	}
}
