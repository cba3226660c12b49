package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/cristianadrielbraun/qrrestyle/internal/compress"
	"github.com/cristianadrielbraun/qrrestyle/internal/logging"
	"github.com/cristianadrielbraun/qrrestyle/internal/logomask"
	"github.com/cristianadrielbraun/qrrestyle/internal/raster"
	"github.com/cristianadrielbraun/qrrestyle/internal/render"
	"github.com/cristianadrielbraun/qrrestyle/internal/restyle"
)

func runConvert(ctx context.Context, fsys afero.Fs, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	inPath := fs.String("in", "", "scanned QR image")
	outPath := fs.String("out", "", "output file; the extension picks the format (default: input name with .svg)")
	style := addStyleFlags(fs)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" {
		return errors.New("missing required argument -in")
	}
	out := *outPath
	if out == "" {
		out = strings.TrimSuffix(*inPath, filepath.Ext(*inPath)) + ".svg"
	}

	opts, err := style.options(fsys)
	if err != nil {
		return err
	}
	p := &restyle.Pipeline{Resampler: logomask.ResamplerByName(*style.resampler)}
	return convertFile(ctx, fsys, p, *inPath, out, opts, *style.scale)
}

// convertFile restyles the scan at in and writes it to out in the format
// named by out's extension.
func convertFile(ctx context.Context, fsys afero.Fs, p *restyle.Pipeline, in, out string, opts render.Options, scale float64) error {
	data, err := afero.ReadFile(fsys, in)
	if err != nil {
		return err
	}

	res, det, err := p.Convert(ctx, data, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if res.MaskErr != nil {
		logging.Logger().Warn("logo mask failed, used the round patch", "file", in, "error", res.MaskErr)
	}

	encoded, err := encodeDocument(ctx, res.Document, opts, filepath.Ext(out), scale)
	if err != nil {
		return fmt.Errorf("%s: %w", out, err)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := afero.WriteFile(fsys, out, encoded, 0o644); err != nil {
		return err
	}

	logging.Logger().Info("converted",
		"in", in,
		"out", out,
		"modules", det.ModuleCount,
		"payload", det.Payload,
		"occluded", res.Document.Occluded,
	)
	return nil
}

// encodeDocument serialises doc for a file extension: .svg, .svgz (gzip),
// .png or .jpg.
func encodeDocument(ctx context.Context, doc *render.Document, opts render.Options, ext string, scale float64) ([]byte, error) {
	format, err := raster.ParseFormat(ext)
	if err != nil {
		return nil, err
	}
	if format == raster.FormatSVG {
		svg := []byte(doc.SVG())
		if strings.EqualFold(ext, ".svgz") {
			return compress.Encode(compress.Gzip{}, svg)
		}
		return svg, nil
	}

	img, err := raster.Rasterize(ctx, doc, scale)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if format == raster.FormatJPEG {
		var bg color.Color = color.White
		if !opts.Transparent {
			if c, err := raster.ParseColor(opts.BackgroundColor); err == nil {
				bg = c
			}
		}
		err = raster.EncodeJPEG(&buf, img, bg)
	} else {
		err = raster.EncodePNG(&buf, img)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
