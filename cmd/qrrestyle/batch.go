package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/howeyc/fsnotify"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/cristianadrielbraun/qrrestyle/internal/logging"
	"github.com/cristianadrielbraun/qrrestyle/internal/logomask"
	"github.com/cristianadrielbraun/qrrestyle/internal/render"
	"github.com/cristianadrielbraun/qrrestyle/internal/restyle"
)

var scanExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true, ".webp": true,
}

func runBatch(ctx context.Context, fsys afero.Fs, args []string) error {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	dir := fs.String("dir", "", "directory of scanned QR images")
	outDir := fs.String("out", "", "output directory")
	format := fs.String("format", "svg", "output format: svg, svgz, png or jpg")
	workers := fs.Int("workers", runtime.NumCPU(), "parallel conversions")
	watch := fs.Bool("watch", false, "keep converting scans added to -dir until interrupted")
	style := addStyleFlags(fs)
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dir == "" || *outDir == "" {
		return errors.New("missing required arguments -dir and -out")
	}

	opts, err := style.options(fsys)
	if err != nil {
		return err
	}
	p := &restyle.Pipeline{Resampler: logomask.ResamplerByName(*style.resampler)}
	ext := "." + strings.TrimPrefix(strings.ToLower(*format), ".")

	var w *fsnotify.Watcher
	if *watch {
		// Watch before the first pass so scans added during it are not missed.
		if w, err = newDirWatcher(*dir); err != nil {
			return err
		}
		defer w.Close()
	}

	n, failed, err := convertDir(ctx, fsys, p, *dir, *outDir, ext, opts, *style.scale, *workers)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "converted %d of %d files\n", n-failed, n)
	if w != nil {
		return serveWatch(ctx, w, fsys, p, *outDir, ext, opts, *style.scale)
	}
	if failed > 0 {
		return fmt.Errorf("%d files failed", failed)
	}
	return nil
}

// convertDir converts every image in dir into outDir with the extension
// ext. Files without a readable symbol are logged and counted; other errors
// stop the batch.
func convertDir(ctx context.Context, fsys afero.Fs, p *restyle.Pipeline, dir, outDir, ext string, opts render.Options, scale float64, workers int) (total, failed int, err error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return 0, 0, err
	}
	if err := fsys.MkdirAll(outDir, 0o755); err != nil {
		return 0, 0, err
	}

	var failures atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isScan(name) {
			continue
		}
		total++

		in := filepath.Join(dir, name)
		out := outputPath(outDir, in, ext)
		g.Go(func() error {
			err := convertFile(gctx, fsys, p, in, out, opts, scale)
			if skippable(err) {
				logging.Logger().Warn("skipping file", "file", in, "error", err)
				failures.Add(1)
				return nil
			}
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return total, int(failures.Load()), err
	}
	return total, int(failures.Load()), nil
}
