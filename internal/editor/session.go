// Package editor keeps the state of one interactive restyling session: the
// scanned grid, the current render options and the logo mask computed for
// them in the background.
package editor

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/cristianadrielbraun/qrrestyle/internal/logging"
	"github.com/cristianadrielbraun/qrrestyle/internal/logomask"
	"github.com/cristianadrielbraun/qrrestyle/internal/qrgrid"
	"github.com/cristianadrielbraun/qrrestyle/internal/render"
)

// ErrNoGrid is returned by Render before a grid has been set.
var ErrNoGrid = errors.New("no grid scanned")

// Session is safe for concurrent use.
//
// Every change to the logo, its size or the grid size starts a new analysis
// and bumps the session generation. An analysis result is applied only if
// no newer analysis was started meanwhile, so a slow stale analysis never
// replaces a newer mask.
type Session struct {
	analyzer *logomask.Analyzer

	mu         sync.Mutex
	grid       *qrgrid.Grid
	opts       render.Options
	mask       *logomask.Mask
	err        error
	generation uint64
	cancel     context.CancelFunc

	// done is closed once the latest analysis and every analysis started
	// before it have returned.
	done chan struct{}
}

// New returns an empty session whose masks are resampled with r. A nil r
// means Lanczos.
func New(r logomask.Resampler) *Session {
	a := logomask.NewAnalyzer(r)
	a.Debug = true
	return &Session{
		analyzer: a,
		opts:     render.DefaultOptions().WithDefaults(),
	}
}

// SetGrid replaces the grid. A change of symbol size invalidates the mask.
func (s *Session) SetGrid(g *qrgrid.Grid) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resized := s.grid == nil || s.grid.Size() != g.Size()
	s.grid = g
	if resized {
		s.analyzeLocked()
	}
}

// SetOptions replaces the render options. Changing the logo bytes or the
// logo size starts a new analysis; other changes keep the current mask.
// Removing the logo resets the logo size to the default.
func (s *Session) SetOptions(opts render.Options) {
	_ = s.Update(func(render.Options) (render.Options, error) {
		return opts, nil
	})
}

// Update replaces the options with fn applied to the current ones, as one
// step with respect to other updates. When fn fails the options are left
// unchanged and its error is returned.
func (s *Session) Update(fn func(render.Options) (render.Options, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts, err := fn(s.opts)
	if err != nil {
		return err
	}
	opts = opts.WithDefaults()
	if opts.Logo == nil {
		opts.LogoSize = logomask.DefaultFraction
	}

	changed := !sameLogo(s.opts.Logo, opts.Logo) || s.opts.Fraction() != opts.Fraction()
	s.opts = opts
	if changed {
		s.analyzeLocked()
	}
	return nil
}

// Reanalyze restarts the analysis for the current inputs, e.g. after a
// failure.
func (s *Session) Reanalyze() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.analyzeLocked()
}

// Options returns the current options.
func (s *Session) Options() render.Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// Grid returns the current grid, or nil.
func (s *Session) Grid() *qrgrid.Grid {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid
}

// Mask returns the mask for the current inputs, or nil while it is being
// computed, after a failure, or when no logo is set.
func (s *Session) Mask() *logomask.Mask {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mask
}

// Err returns the error of the last analysis for the current inputs.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Generation counts the analyses started so far.
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Render composes the current state. Without a mask the logo, if any, gets
// the fallback round patch.
func (s *Session) Render() (*render.Document, error) {
	s.mu.Lock()
	g, opts, m := s.grid, s.opts, s.mask
	s.mu.Unlock()

	if g == nil {
		return nil, ErrNoGrid
	}
	return render.Compose(g, opts, m), nil
}

// Wait blocks until every started analysis has finished, including ones
// started while waiting.
func (s *Session) Wait() {
	for {
		s.mu.Lock()
		done, gen := s.done, s.generation
		s.mu.Unlock()

		if done != nil {
			<-done
		}

		s.mu.Lock()
		settled := gen == s.generation
		s.mu.Unlock()
		if settled {
			return
		}
	}
}

// Close cancels the running analysis and waits for it.
func (s *Session) Close() {
	s.mu.Lock()
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.Wait()
}

func (s *Session) analyzeLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.generation++
	s.mask, s.err = nil, nil

	if s.grid == nil || s.opts.Logo == nil {
		return
	}

	gen := s.generation
	logo := s.opts.Logo.Data
	size := render.DocumentSize(s.grid.Size())
	fraction := s.opts.Fraction()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	prev, done := s.done, make(chan struct{})
	s.done = done

	go func() {
		defer func() {
			// Finish after the predecessor so done covers the whole chain.
			if prev != nil {
				<-prev
			}
			close(done)
		}()
		defer cancel()

		m, err := s.analyzer.Analyze(ctx, logo, size, fraction)

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.generation {
			logging.Logger().Debug("discarding stale logo analysis", "generation", gen, "current", s.generation)
			return
		}
		s.cancel = nil
		if err != nil {
			logging.Logger().Warn("logo analysis failed", "generation", gen, "error", err)
			s.err = err
			return
		}
		s.mask = m
	}()
}

func sameLogo(a, b *render.Logo) bool {
	if a == nil || b == nil {
		return a == b
	}
	return bytes.Equal(a.Data, b.Data)
}
