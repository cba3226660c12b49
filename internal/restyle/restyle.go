// Package restyle runs the whole conversion: decode a scan, find and sample
// the symbol, analyse the logo and compose the styled document.
package restyle

import (
	"context"
	"errors"
	"fmt"

	"github.com/cristianadrielbraun/qrrestyle/internal/detect"
	"github.com/cristianadrielbraun/qrrestyle/internal/imageio"
	"github.com/cristianadrielbraun/qrrestyle/internal/logging"
	"github.com/cristianadrielbraun/qrrestyle/internal/logomask"
	"github.com/cristianadrielbraun/qrrestyle/internal/qrgrid"
	"github.com/cristianadrielbraun/qrrestyle/internal/render"
)

// ErrUnsupportedImage is returned when the scan cannot be decoded.
var ErrUnsupportedImage = errors.New("unsupported image format")

// Pipeline converts scans. The zero value uses the zxing detector and the
// Lanczos resampler.
type Pipeline struct {
	Detector  detect.Detector
	Resampler logomask.Resampler
}

// Result is a composed document and what went into it.
type Result struct {
	Document *render.Document

	// Mask is nil when no logo is set or its analysis failed.
	Mask *logomask.Mask

	// MaskErr is the analysis failure the document fell back from.
	MaskErr error
}

// Scan decodes data and samples the symbol it shows.
func (p *Pipeline) Scan(ctx context.Context, data []byte) (*qrgrid.Grid, *detect.Detection, error) {
	img, format, err := imageio.Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	d := p.Detector
	if d == nil {
		d = detect.NewZXing()
	}
	g, det, err := detect.Scan(ctx, d, img)
	if err != nil {
		return nil, nil, err
	}

	logging.Logger().Debug("scanned symbol",
		"format", format,
		"modules", det.ModuleCount,
		"version", det.Version(),
		"dark", g.Dark(),
	)
	return g, det, nil
}

// Compose renders g with opts, analysing the logo first when there is one.
// A failed analysis is not fatal: the document falls back to the round
// logo patch and Result.MaskErr says why. Only a cancelled ctx fails the
// call.
func (p *Pipeline) Compose(ctx context.Context, g *qrgrid.Grid, opts render.Options) (*Result, error) {
	res := &Result{}
	if opts.Logo != nil {
		m, err := logomask.NewAnalyzer(p.Resampler).Analyze(ctx, opts.Logo.Data, render.DocumentSize(g.Size()), opts.Fraction())
		switch {
		case err == nil:
			res.Mask = m
		case ctx.Err() != nil:
			return nil, err
		default:
			logging.Logger().Warn("logo mask failed, using fallback", "error", err)
			res.MaskErr = err
		}
	}
	res.Document = render.Compose(g, opts, res.Mask)
	return res, nil
}

// Convert is Scan followed by Compose.
func (p *Pipeline) Convert(ctx context.Context, data []byte, opts render.Options) (*Result, *detect.Detection, error) {
	g, det, err := p.Scan(ctx, data)
	if err != nil {
		return nil, nil, err
	}
	res, err := p.Compose(ctx, g, opts)
	if err != nil {
		return nil, nil, err
	}
	return res, det, nil
}
