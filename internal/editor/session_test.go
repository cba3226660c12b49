package editor_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/cristianadrielbraun/qrrestyle/internal/editor"
	"github.com/cristianadrielbraun/qrrestyle/internal/logomask"
	"github.com/cristianadrielbraun/qrrestyle/internal/logomask/logomaskfakes"
	"github.com/cristianadrielbraun/qrrestyle/internal/qrgrid"
	"github.com/cristianadrielbraun/qrrestyle/internal/qrgrid/qrgridtest"
	"github.com/cristianadrielbraun/qrrestyle/internal/render"
)

func grid(t *testing.T, n int) *qrgrid.Grid {
	t.Helper()
	g, err := qrgrid.FromRows(qrgridtest.FinderRows(n))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func logoPNG(t *testing.T, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func opaque(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return img
}

func TestSessionWithoutLogo(t *testing.T) {
	s := editor.New(nil)
	if _, err := s.Render(); !errors.Is(err, editor.ErrNoGrid) {
		t.Fatalf("got %v, want ErrNoGrid", err)
	}

	s.SetGrid(grid(t, 21))
	s.Wait()
	doc, err := s.Render()
	if err != nil {
		t.Fatal(err)
	}
	if doc.LogoPatch != "" || doc.LogoImage != "" || s.Mask() != nil {
		t.Error("no logo set, yet logo layers or a mask exist")
	}
}

func TestSessionAnalyzesLogo(t *testing.T) {
	s := editor.New(nil)
	s.SetGrid(grid(t, 21))

	logo := logoPNG(t, color.Black)
	opts := render.DefaultOptions()
	opts.Logo = render.NewLogo(logo)
	s.SetOptions(opts)
	s.Wait()

	m := s.Mask()
	if m == nil {
		t.Fatalf("no mask after analysis, err = %v", s.Err())
	}
	if m.Key() != logomask.NewKey(logo, 290, 0.2) {
		t.Errorf("mask computed for %+v", m.Key())
	}
	if m.Debug == nil || m.Debug.Mosaic == nil {
		t.Error("session masks carry debug artifacts")
	}

	doc, err := s.Render()
	if err != nil {
		t.Fatal(err)
	}
	if doc.Occluded == 0 || !bytes.Contains([]byte(doc.LogoPatch), []byte("<path ")) {
		t.Error("render ignores the analysed mask")
	}

	// Colour changes keep the mask.
	gen := s.Generation()
	opts.DotsColor = "#336699"
	s.SetOptions(opts)
	if s.Generation() != gen || s.Mask() != m {
		t.Error("a colour change restarted the analysis")
	}
}

func TestSessionRemovingLogoResetsSize(t *testing.T) {
	s := editor.New(nil)
	s.SetGrid(grid(t, 25))

	opts := render.DefaultOptions()
	opts.Logo = render.NewLogo(logoPNG(t, color.Black))
	opts.LogoSize = 0.3
	s.SetOptions(opts)
	s.Wait()

	opts.Logo = nil
	s.SetOptions(opts)
	if got := s.Options().LogoSize; got != logomask.DefaultFraction {
		t.Errorf("logo size %v after removal, want %v", got, logomask.DefaultFraction)
	}
	if s.Mask() != nil {
		t.Error("mask survived logo removal")
	}
}

func TestSessionDiscardsStaleAnalysis(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32

	fake := &logomaskfakes.FakeResampler{}
	fake.ResampleCalls(func(_ context.Context, _ image.Image, w, h int) (image.Image, error) {
		if calls.Add(1) == 1 {
			// Ignores cancellation like a non-cooperative resampler.
			<-release
		}
		return opaque(w, h), nil
	})

	s := editor.New(fake)
	s.SetGrid(grid(t, 21))

	first := logoPNG(t, color.Black)
	second := logoPNG(t, color.RGBA{R: 255, A: 255})

	opts := render.DefaultOptions()
	opts.Logo = render.NewLogo(first)
	s.SetOptions(opts)
	opts.Logo = render.NewLogo(second)
	s.SetOptions(opts)

	close(release)
	s.Wait()

	if fake.ResampleCallCount() != 2 {
		t.Fatalf("%d analyses ran, want 2", fake.ResampleCallCount())
	}
	m := s.Mask()
	if m == nil {
		t.Fatalf("no mask, err = %v", s.Err())
	}
	if m.Key() != logomask.NewKey(second, 290, 0.2) {
		t.Error("stale analysis overwrote the newer mask")
	}
}

func TestSessionGridResize(t *testing.T) {
	s := editor.New(nil)
	opts := render.DefaultOptions()
	opts.Logo = render.NewLogo(logoPNG(t, color.Black))
	s.SetOptions(opts)

	s.SetGrid(grid(t, 21))
	s.Wait()
	if m := s.Mask(); m == nil || m.Key().RenderSize != 290 {
		t.Fatal("missing mask for the first grid")
	}

	gen := s.Generation()
	s.SetGrid(grid(t, 21))
	if s.Generation() != gen {
		t.Error("same-size grid restarted the analysis")
	}

	s.SetGrid(grid(t, 25))
	s.Wait()
	if m := s.Mask(); m == nil || m.Key().RenderSize != 330 {
		t.Error("mask not recomputed for the resized grid")
	}
}

func TestSessionAnalysisFailure(t *testing.T) {
	fake := &logomaskfakes.FakeResampler{}
	fake.ResampleReturns(nil, errors.New("out of memory"))

	s := editor.New(fake)
	s.SetGrid(grid(t, 21))
	opts := render.DefaultOptions()
	opts.Logo = render.NewLogo(logoPNG(t, color.Black))
	s.SetOptions(opts)
	s.Wait()

	if !errors.Is(s.Err(), logomask.ErrResize) {
		t.Fatalf("got %v, want ErrResize", s.Err())
	}
	doc, err := s.Render()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix([]byte(doc.LogoPatch), []byte("<circle ")) {
		t.Errorf("failed analysis should fall back to the round patch, got %s", doc.LogoPatch)
	}

	fake.ResampleReturns(opaque(40, 40), nil)
	s.Reanalyze()
	s.Wait()
	if s.Err() != nil || s.Mask() == nil {
		t.Errorf("reanalysis did not recover: %v", s.Err())
	}
}

func TestSessionClose(t *testing.T) {
	fake := &logomaskfakes.FakeResampler{}
	fake.ResampleCalls(func(ctx context.Context, _ image.Image, w, h int) (image.Image, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	s := editor.New(fake)
	s.SetGrid(grid(t, 21))
	opts := render.DefaultOptions()
	opts.Logo = render.NewLogo(logoPNG(t, color.Black))
	s.SetOptions(opts)

	s.Close()
	if s.Mask() != nil || s.Err() != nil {
		t.Error("cancelled analysis left state behind")
	}
}

func TestSessionWaitDuringUpdates(t *testing.T) {
	s := editor.New(nil)
	s.SetGrid(grid(t, 21))

	logos := [][]byte{logoPNG(t, color.Black), logoPNG(t, color.RGBA{B: 255, A: 255})}
	const rounds = 40

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		opts := render.DefaultOptions()
		for i := 0; i < rounds; i++ {
			opts.Logo = render.NewLogo(logos[i%2])
			s.SetOptions(opts)
		}
	}()
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				s.Wait()
			}
		}()
	}
	wg.Wait()
	s.Wait()

	m := s.Mask()
	if m == nil {
		t.Fatalf("no mask after settling, err = %v", s.Err())
	}
	if m.Key() != logomask.NewKey(logos[(rounds-1)%2], 290, 0.2) {
		t.Error("mask does not match the last logo")
	}
}

func TestSessionUpdate(t *testing.T) {
	// No grid, so no analysis runs.
	s := editor.New(nil)
	opts := render.DefaultOptions()
	opts.Logo = render.NewLogo(logoPNG(t, color.Black))
	opts.LogoSize = 0.1
	s.SetOptions(opts)

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(func(o render.Options) (render.Options, error) {
				o.LogoSize += 0.01
				return o, nil
			})
		}()
	}
	wg.Wait()
	s.Wait()

	if got := s.Options().LogoSize; math.Abs(got-0.3) > 1e-9 {
		t.Errorf("logo size %v after %d increments, want 0.3", got, writers)
	}

	boom := errors.New("bad form")
	err := s.Update(func(o render.Options) (render.Options, error) {
		o.LogoSize = 0.5
		return o, boom
	})
	if !errors.Is(err, boom) || s.Options().LogoSize == 0.5 {
		t.Errorf("failed update applied: err %v, size %v", err, s.Options().LogoSize)
	}
}
