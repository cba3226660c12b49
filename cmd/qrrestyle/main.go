package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/afero"

	"github.com/cristianadrielbraun/qrrestyle/internal/config"
	"github.com/cristianadrielbraun/qrrestyle/internal/logging"
	"github.com/cristianadrielbraun/qrrestyle/internal/logomask"
	"github.com/cristianadrielbraun/qrrestyle/internal/raster"
	"github.com/cristianadrielbraun/qrrestyle/internal/render"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fsys := afero.NewOsFs()
	var err error
	switch os.Args[1] {
	case "convert":
		err = runConvert(ctx, fsys, os.Args[2:])
	case "batch":
		err = runBatch(ctx, fsys, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fail(err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: qrrestyle <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  convert -in scan.jpg [-out out.svg|.svgz|.png|.jpg] [-logo logo.png] [style flags]")
	fmt.Fprintln(os.Stderr, "  batch   -dir scans/ -out restyled/ [-format svg|svgz|png|jpg] [-workers N] [-watch] [-logo logo.png] [style flags]")
	fmt.Fprintln(os.Stderr, "Style flags:")
	fmt.Fprintln(os.Stderr, "  -dots-color #000000 -bg-color #ffffff -dots-type square|rounded|dots|extra-rounded")
	fmt.Fprintln(os.Stderr, "  -corners-type square|dot|extra-rounded -transparent -logo-size 0.2 -debug -scale 1")
	fmt.Fprintln(os.Stderr, "  -resampler lanczos|catmullrom -log-level warn")
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}

// styleFlags are the flags shared by convert and batch.
type styleFlags struct {
	dotsColor   *string
	bgColor     *string
	dotsType    *string
	cornersType *string
	transparent *bool
	logo        *string
	logoSize    *float64
	debug       *bool
	scale       *float64
	resampler   *string
	logLevel    *string
}

func addStyleFlags(fs *flag.FlagSet) *styleFlags {
	d := render.DefaultOptions()
	return &styleFlags{
		dotsColor:   fs.String("dots-color", d.DotsColor, "module colour"),
		bgColor:     fs.String("bg-color", d.BackgroundColor, "background colour"),
		dotsType:    fs.String("dots-type", string(d.DotsType), "data module style"),
		cornersType: fs.String("corners-type", string(d.CornersSquareType), "finder pattern style"),
		transparent: fs.Bool("transparent", false, "omit the background"),
		logo:        fs.String("logo", "", "centre logo image"),
		logoSize:    fs.Float64("logo-size", logomask.DefaultFraction, "logo side relative to the code, in (0, 1)"),
		debug:       fs.Bool("debug", false, "overlay the logo mask grid"),
		scale:       fs.Float64("scale", 1, "pixels per render unit for png and jpg output"),
		resampler:   fs.String("resampler", config.ResamplerLanczos, "logo resampler"),
		logLevel:    fs.String("log-level", "warn", "debug, info, warn or error"),
	}
}

// options validates the flags and loads the logo from fsys.
func (f *styleFlags) options(fsys afero.Fs) (render.Options, error) {
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logging.ParseLevel(*f.logLevel),
	})))

	if *f.logoSize <= 0 || *f.logoSize >= 1 {
		return render.Options{}, fmt.Errorf("-logo-size must be in (0, 1), got %v", *f.logoSize)
	}
	if *f.scale <= 0 {
		return render.Options{}, fmt.Errorf("-scale must be positive, got %v", *f.scale)
	}

	for _, c := range []string{*f.dotsColor, *f.bgColor} {
		if _, err := raster.ParseColor(c); err != nil {
			return render.Options{}, err
		}
	}

	opts := render.Options{
		DotsColor:         *f.dotsColor,
		BackgroundColor:   *f.bgColor,
		DotsType:          render.ParseStyle(*f.dotsType),
		CornersSquareType: render.ParseStyle(*f.cornersType),
		Transparent:       *f.transparent,
		LogoSize:          *f.logoSize,
		Debug:             *f.debug,
	}
	if *f.logo != "" {
		data, err := afero.ReadFile(fsys, *f.logo)
		if err != nil {
			return opts, fmt.Errorf("reading logo: %w", err)
		}
		opts.Logo = render.NewLogo(data)
	}
	return opts.WithDefaults(), nil
}
