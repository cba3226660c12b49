package logomask_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"github.com/cristianadrielbraun/qrrestyle/internal/logomask"
	"github.com/cristianadrielbraun/qrrestyle/internal/logomask/logomaskfakes"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture: %s", err)
	}
	return buf.Bytes()
}

var red = color.NRGBA{R: 255, A: 255}

func TestLayout(t *testing.T) {
	tests := []struct {
		desc       string
		renderSize int
		fraction   float64
		want       logomask.Geometry
	}{
		{
			desc:       "version 1 at 20 percent",
			renderSize: 290,
			fraction:   0.2,
			want:       logomask.Geometry{InnerModules: 5, GridCount: 9, Origin: image.Point{X: 100, Y: 100}},
		},
		{
			desc:       "default fraction",
			renderSize: 290,
			fraction:   0,
			want:       logomask.Geometry{InnerModules: 5, GridCount: 9, Origin: image.Point{X: 100, Y: 100}},
		},
		{
			desc:       "version 5 at 40 percent",
			renderSize: 450,
			fraction:   0.4,
			want:       logomask.Geometry{InnerModules: 18, GridCount: 22, Origin: image.Point{X: 110, Y: 110}},
		},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			if got := logomask.Layout(test.renderSize, test.fraction); got != test.want {
				t.Errorf("got %+v, want %+v", got, test.want)
			}
		})
	}
}

func TestAnalyzeOpaqueLogo(t *testing.T) {
	a := logomask.NewAnalyzer(logomask.Lanczos{})
	m, err := a.Analyze(context.Background(), encodePNG(t, solid(64, 64, red)), 290, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if len(m.Coverage) != 9 {
		t.Fatalf("coverage grid has %d rows, want 9", len(m.Coverage))
	}
	if m.Origin == nil || *m.Origin != (image.Point{X: 100, Y: 100}) {
		t.Fatalf("origin %v, want (100,100)", m.Origin)
	}
	if !m.HasTransparency {
		t.Error("the padding ring is transparent, HasTransparency must be set")
	}

	// The 5x5 logo sits at cells 2..6; dilation grows it to 1..7.
	for y := 0; y < 9; y++ {
		for x := 0; x < 9; x++ {
			want := x >= 1 && x <= 7 && y >= 1 && y <= 7
			if m.Coverage[y][x] != want {
				t.Errorf("coverage[%d][%d] = %v, want %v", y, x, m.Coverage[y][x], want)
			}
		}
	}

	want := logomask.Rect{X: 110, Y: 110, Width: 70, Height: 70}
	if m.Bounds != want {
		t.Errorf("bounds %+v, want %+v", m.Bounds, want)
	}

	subPaths := strings.Count(m.Path, "M ")
	if subPaths != 49 || subPaths > 81 {
		t.Errorf("contour has %d sub-paths, want 49", subPaths)
	}
	if strings.Count(m.Path, "h 10 v 10 h -10 Z") != subPaths {
		t.Errorf("every sub-path must be a 10x10 square: %.80s", m.Path)
	}
	if !strings.HasPrefix(m.Path, "M 110,110 h 10 v 10 h -10 Z") {
		t.Errorf("unexpected first sub-path: %.40s", m.Path)
	}
	if m.Debug != nil {
		t.Error("debug artifacts must be opt-in")
	}
	if key := m.Key(); key.RenderSize != 290 || key.Fraction != 0.2 {
		t.Errorf("unexpected key %+v", key)
	}
}

func TestAnalyzeHalfTransparentLogo(t *testing.T) {
	// Only the left 20 pixels of the 50 pixel logo are opaque: inner
	// columns 0 and 1, grid columns 2 and 3.
	logo := solid(50, 50, color.NRGBA{})
	for y := 0; y < 50; y++ {
		for x := 0; x < 20; x++ {
			logo.SetNRGBA(x, y, red)
		}
	}
	fake := &logomaskfakes.FakeResampler{}
	fake.ResampleReturns(logo, nil)

	m, err := logomask.NewAnalyzer(fake).Analyze(context.Background(), encodePNG(t, solid(8, 8, red)), 290, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	_, _, w, h := fake.ResampleArgsForCall(0)
	if w != 50 || h != 50 {
		t.Errorf("resampled to %dx%d, want 50x50", w, h)
	}

	tests := []struct {
		x, y    int
		covered bool
	}{
		{x: 2, y: 2, covered: true},
		{x: 3, y: 6, covered: true},
		{x: 1, y: 1, covered: true},
		{x: 4, y: 7, covered: true},
		{x: 5, y: 4, covered: false},
		{x: 0, y: 4, covered: false},
		{x: 2, y: 0, covered: false},
	}
	for _, test := range tests {
		if got := m.Coverage[test.y][test.x]; got != test.covered {
			t.Errorf("coverage[%d][%d] = %v, want %v", test.y, test.x, got, test.covered)
		}
	}
	want := logomask.Rect{X: 110, Y: 110, Width: 40, Height: 70}
	if m.Bounds != want {
		t.Errorf("bounds %+v, want %+v", m.Bounds, want)
	}
}

func TestAnalyzeFullyTransparentLogo(t *testing.T) {
	a := logomask.NewAnalyzer(logomask.CatmullRom{})
	m, err := a.Analyze(context.Background(), encodePNG(t, solid(30, 30, color.NRGBA{})), 290, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if m.Path != "" {
		t.Errorf("expected an empty contour, got %q", m.Path)
	}
	if m.Bounds != (logomask.Rect{}) || !m.Bounds.Empty() {
		t.Errorf("expected the empty rect, got %+v", m.Bounds)
	}
	if !m.HasTransparency {
		t.Error("HasTransparency must be set")
	}
	if m.Covered() != 0 {
		t.Errorf("%d cells covered, want 0", m.Covered())
	}
}

func TestAnalyzeErrors(t *testing.T) {
	logo := encodePNG(t, solid(10, 10, red))
	failing := &logomaskfakes.FakeResampler{}
	failing.ResampleReturns(nil, errors.New("out of memory"))

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		desc      string
		ctx       context.Context
		resampler logomask.Resampler
		logo      []byte
		fraction  float64
		want      error
	}{
		{desc: "undecodable logo", logo: []byte("not a png"), fraction: 0.2, want: logomask.ErrDecode},
		{desc: "empty logo", logo: nil, fraction: 0.2, want: logomask.ErrDecode},
		{desc: "resampler failure", resampler: failing, logo: logo, fraction: 0.2, want: logomask.ErrResize},
		{desc: "logo smaller than a module", logo: logo, fraction: 0.01, want: logomask.ErrResize},
		{desc: "cancelled", ctx: cancelled, logo: logo, fraction: 0.2, want: context.Canceled},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			ctx := test.ctx
			if ctx == nil {
				ctx = context.Background()
			}
			_, err := logomask.NewAnalyzer(test.resampler).Analyze(ctx, test.logo, 290, test.fraction)
			if !errors.Is(err, test.want) {
				t.Errorf("got %v, want %v", err, test.want)
			}
		})
	}
}

func TestAnalyzeDebugArtifacts(t *testing.T) {
	a := logomask.NewAnalyzer(logomask.Lanczos{})
	a.Debug = true
	m, err := a.Analyze(context.Background(), encodePNG(t, solid(40, 40, red)), 290, 0.2)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if m.Debug == nil || m.Debug.Mosaic == nil {
		t.Fatal("expected debug artifacts")
	}
	if b := m.Debug.Mosaic.Bounds(); b.Dx() != 90 || b.Dy() != 90 {
		t.Errorf("mosaic bounds %v, want 90x90", b)
	}
	if m.Debug.Mosaic.GrayAt(45, 45).Y != 0 {
		t.Error("covered cell must be black in the mosaic")
	}
	if m.Debug.Mosaic.GrayAt(5, 5).Y != 255 {
		t.Error("uncovered cell must be white in the mosaic")
	}
	if !strings.Contains(m.Debug.SVG, `<path d="M 110,110`) {
		t.Errorf("debug SVG does not contain the contour: %.200s", m.Debug.SVG)
	}
	if !strings.HasPrefix(m.Debug.SVG, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("debug SVG is missing the XML declaration")
	}
}

func TestDilateIsMonotonic(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		n := 1 + rnd.Intn(12)
		grid := make([][]bool, n)
		for y := range grid {
			grid[y] = make([]bool, n)
			for x := range grid[y] {
				grid[y][x] = rnd.Intn(5) == 0
			}
		}
		out := logomask.Dilate(grid, 1)
		for y := range grid {
			for x := range grid[y] {
				if grid[y][x] && !out[y][x] {
					t.Fatalf("dilation cleared cell (%d,%d)", x, y)
				}
				if !out[y][x] {
					continue
				}
				// Every set output cell has a set input cell within distance 1.
				found := false
				for dy := -1; dy <= 1 && !found; dy++ {
					for dx := -1; dx <= 1 && !found; dx++ {
						ny, nx := y+dy, x+dx
						found = ny >= 0 && ny < n && nx >= 0 && nx < n && grid[ny][nx]
					}
				}
				if !found {
					t.Fatalf("dilation set isolated cell (%d,%d)", x, y)
				}
			}
		}
	}
}

func TestDilateDoesNotAlias(t *testing.T) {
	grid := [][]bool{{false, false, false}, {false, true, false}, {false, false, false}}
	out := logomask.Dilate(grid, 1)
	if grid[0][0] {
		t.Error("input grid was modified")
	}
	for y := range out {
		for x := range out[y] {
			if !out[y][x] {
				t.Errorf("cell (%d,%d) not set", x, y)
			}
		}
	}
}

func TestContourPath(t *testing.T) {
	got := logomask.ContourPath([][]bool{{true, false}, {false, true}}, image.Point{X: 100, Y: 50}, 10)
	want := "M 100,50 h 10 v 10 h -10 Z M 110,60 h 10 v 10 h -10 Z"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if logomask.ContourPath(nil, image.Point{}, 10) != "" {
		t.Error("empty grid must give an empty path")
	}
}
