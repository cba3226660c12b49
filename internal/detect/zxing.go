package detect

import (
	"context"
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode/detector"

	"github.com/cristianadrielbraun/qrrestyle/internal/logging"
	"github.com/cristianadrielbraun/qrrestyle/internal/qrgrid"
)

// ZXing detects symbols with the gozxing finder-pattern detector and decodes
// their payload with the gozxing QR reader.
type ZXing struct {
	// TryHarder spends more time looking for finder patterns.
	TryHarder bool
}

// NewZXing returns a ZXing detector.
func NewZXing() *ZXing {
	return &ZXing{TryHarder: true}
}

// Detect implements Detector.
func (z *ZXing) Detect(ctx context.Context, img image.Image) (*Detection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: creating bitmap: %v", ErrDetectionFailure, err)
	}
	matrix, err := bmp.GetBlackMatrix()
	if err != nil {
		return nil, fmt.Errorf("%w: binarizing: %v", ErrDetectionFailure, err)
	}

	hints := make(map[gozxing.DecodeHintType]interface{})
	if z.TryHarder {
		hints[gozxing.DecodeHintType_TRY_HARDER] = true
	}

	res, err := detector.NewDetector(matrix).Detect(hints)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetectionFailure, err)
	}

	// The detector reports finder pattern centres as bottom-left, top-left,
	// top-right, optionally followed by the alignment pattern.
	points := res.GetPoints()
	if len(points) < 3 {
		return nil, fmt.Errorf("%w: detector returned %d points", ErrDetectionFailure, len(points))
	}
	n := res.GetBits().GetWidth()
	if n < 21 || (n-17)%4 != 0 {
		return nil, fmt.Errorf("%w: invalid dimension %d", ErrDetectionFailure, n)
	}

	det := &Detection{
		ModuleCount: n,
		Quad: cornersFromCentres(
			toPoint(points[1]),
			toPoint(points[2]),
			toPoint(points[0]),
			n,
		),
	}

	if result, err := qrcode.NewQRCodeReader().Decode(bmp, hints); err == nil {
		det.Payload = result.GetText()
	} else {
		logging.Logger().Debug("qr payload not decoded", "err", err)
	}

	logging.Logger().Debug("qr detected",
		"modules", det.ModuleCount,
		"tl", det.Quad.TopLeft,
		"tr", det.Quad.TopRight,
		"bl", det.Quad.BottomLeft,
	)

	return det, nil
}

func toPoint(p gozxing.ResultPoint) qrgrid.Point {
	return qrgrid.Point{X: p.GetX(), Y: p.GetY()}
}

// cornersFromCentres extends the finder pattern centres, which sit 3.5
// modules inside the symbol, out to the symbol's outer corners.
func cornersFromCentres(tl, tr, bl qrgrid.Point, n int) qrgrid.Quad {
	span := float64(n - 7)
	ux := qrgrid.Point{X: (tr.X - tl.X) / span, Y: (tr.Y - tl.Y) / span}
	uy := qrgrid.Point{X: (bl.X - tl.X) / span, Y: (bl.Y - tl.Y) / span}

	const h = 3.5
	q := qrgrid.Quad{
		TopLeft:    qrgrid.Point{X: tl.X - h*ux.X - h*uy.X, Y: tl.Y - h*ux.Y - h*uy.Y},
		TopRight:   qrgrid.Point{X: tr.X + h*ux.X - h*uy.X, Y: tr.Y + h*ux.Y - h*uy.Y},
		BottomLeft: qrgrid.Point{X: bl.X - h*ux.X + h*uy.X, Y: bl.Y - h*ux.Y + h*uy.Y},
	}
	q.BottomRight = qrgrid.Point{
		X: q.TopRight.X + q.BottomLeft.X - q.TopLeft.X,
		Y: q.TopRight.Y + q.BottomLeft.Y - q.TopLeft.Y,
	}
	return q
}
