package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/howeyc/fsnotify"
	"github.com/spf13/afero"

	"github.com/cristianadrielbraun/qrrestyle/internal/detect"
	"github.com/cristianadrielbraun/qrrestyle/internal/logging"
	"github.com/cristianadrielbraun/qrrestyle/internal/render"
	"github.com/cristianadrielbraun/qrrestyle/internal/restyle"
)

// newDirWatcher watches dir for new and rewritten files.
func newDirWatcher(dir string) (*fsnotify.Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating directory watcher: %w", err)
	}
	if err := w.WatchFlags(dir, fsnotify.FSN_CREATE|fsnotify.FSN_MODIFY|fsnotify.FSN_RENAME); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}
	return w, nil
}

// serveWatch converts every scan that shows up on w until ctx is done or the
// watcher is closed. Scans that cannot be read are skipped; a half-written
// file is picked up again by its next modify event.
func serveWatch(ctx context.Context, w *fsnotify.Watcher, fsys afero.Fs, p *restyle.Pipeline, outDir, ext string, opts render.Options, scale float64) error {
	log := logging.Logger()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-w.Event:
			if ev == nil {
				return nil
			}
			if !(ev.IsCreate() || ev.IsModify()) || !isScan(ev.Name) {
				continue
			}
			out := outputPath(outDir, ev.Name, ext)
			if err := convertFile(ctx, fsys, p, ev.Name, out, opts, scale); err != nil {
				if skippable(err) {
					log.Debug("scan not ready", "file", ev.Name, "error", err)
					continue
				}
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		case err := <-w.Error:
			if err == nil {
				return nil
			}
			log.Warn("directory watcher error", "error", err)
		}
	}
}

func isScan(name string) bool {
	return scanExtensions[strings.ToLower(filepath.Ext(name))]
}

func outputPath(outDir, in, ext string) string {
	name := filepath.Base(in)
	return filepath.Join(outDir, strings.TrimSuffix(name, filepath.Ext(name))+ext)
}

// skippable reports whether err concerns only the one scan being converted.
func skippable(err error) bool {
	return errors.Is(err, detect.ErrDetectionFailure) ||
		errors.Is(err, restyle.ErrUnsupportedImage) ||
		errors.Is(err, os.ErrNotExist)
}
