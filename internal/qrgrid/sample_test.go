package qrgrid_test

import (
	"errors"
	"image"
	"testing"

	"github.com/cristianadrielbraun/qrrestyle/internal/qrgrid"
	"github.com/cristianadrielbraun/qrrestyle/internal/qrgrid/qrgridtest"
)

func axisQuad(offset, side float64) qrgrid.Quad {
	return qrgrid.Quad{
		TopLeft:     qrgrid.Point{X: offset, Y: offset},
		TopRight:    qrgrid.Point{X: offset + side, Y: offset},
		BottomLeft:  qrgrid.Point{X: offset, Y: offset + side},
		BottomRight: qrgrid.Point{X: offset + side, Y: offset + side},
	}
}

func sameRows(t *testing.T, got *qrgrid.Grid, want [][]bool) {
	t.Helper()
	if got.Size() != len(want) {
		t.Fatalf("grid size %d, want %d", got.Size(), len(want))
	}
	for y, row := range want {
		for x, dark := range row {
			if got.At(x, y) != dark {
				t.Fatalf("module (%d,%d) = %v, want %v\n%s", x, y, got.At(x, y), dark, got)
			}
		}
	}
}

func TestSampleRecoversFinderPatterns(t *testing.T) {
	const n, moduleSize, quiet = 21, 10, 4
	rows := qrgridtest.FinderRows(n)
	img := qrgridtest.Paint(rows, moduleSize, quiet)

	g := qrgrid.Sample(img.Pix, img.Rect.Dx(), img.Rect.Dy(), axisQuad(quiet*moduleSize, n*moduleSize), n)
	sameRows(t, g, rows)
}

func TestSampleEncodedSymbols(t *testing.T) {
	tests := []struct {
		desc    string
		content string
	}{
		{desc: "version 1", content: "hello"},
		{desc: "url", content: "https://qrcreator.link/some/longer/path?with=query"},
		{desc: "larger version", content: "The quick brown fox jumps over the lazy dog, twice, and then once more for luck."},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			rows, err := qrgridtest.EncodedRows(test.content)
			if err != nil {
				t.Fatalf("encoding fixture: %s", err)
			}
			const moduleSize, quiet = 6, 4
			img := qrgridtest.Paint(rows, moduleSize, quiet)
			n := len(rows)
			g := qrgrid.SampleImage(img, axisQuad(quiet*moduleSize, float64(n*moduleSize)), n)
			sameRows(t, g, rows)
			if g.Version() != (n-17)/4 {
				t.Errorf("version %d, want %d", g.Version(), (n-17)/4)
			}
		})
	}
}

func TestSampleOutOfBoundsIsLight(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	quad := axisQuad(1000, 210)

	g := qrgrid.Sample(img.Pix, 50, 50, quad, 21)
	if g.Size() != 21 {
		t.Fatalf("grid size %d, want 21", g.Size())
	}
	if g.Dark() != 0 {
		t.Errorf("expected no dark modules, got %d", g.Dark())
	}
}

func TestSampleShortBufferDoesNotPanic(t *testing.T) {
	// Only the first four pixels of row 0 exist; every module centre lies
	// further into the buffer.
	g := qrgrid.Sample(make([]byte, 16), 100, 100, axisQuad(0, 100), 25)
	if g.Size() != 25 {
		t.Fatalf("grid size %d, want 25", g.Size())
	}
	if g.Dark() != 0 {
		t.Errorf("expected no dark modules, got %d", g.Dark())
	}
}

func TestSampleThreshold(t *testing.T) {
	tests := []struct {
		gray uint8
		dark bool
	}{
		{gray: 0, dark: true},
		{gray: 120, dark: true},
		{gray: 135, dark: false},
		{gray: 255, dark: false},
	}
	for _, test := range tests {
		pix := []byte{test.gray, test.gray, test.gray, 255}
		g := qrgrid.Sample(pix, 1, 1, axisQuad(0, 1), 1)
		if g.At(0, 0) != test.dark {
			t.Errorf("gray %d: dark = %v, want %v", test.gray, g.At(0, 0), test.dark)
		}
	}
}

func TestSampleIsDeterministic(t *testing.T) {
	rows, err := qrgridtest.EncodedRows("deterministic")
	if err != nil {
		t.Fatal(err)
	}
	img := qrgridtest.Paint(rows, 5, 2)
	quad := qrgrid.Quad{
		TopLeft:    qrgrid.Point{X: 11, Y: 9},
		TopRight:   qrgrid.Point{X: 120, Y: 14},
		BottomLeft: qrgrid.Point{X: 7, Y: 118},
	}
	a := qrgrid.SampleImage(img, quad, len(rows))
	b := qrgrid.SampleImage(img, quad, len(rows))
	if a.String() != b.String() {
		t.Error("sampling the same input twice gave different grids")
	}
}

func TestFromRows(t *testing.T) {
	if _, err := qrgrid.FromRows(nil); !errors.Is(err, qrgrid.ErrInvalidGrid) {
		t.Errorf("empty rows: got %v, want ErrInvalidGrid", err)
	}
	if _, err := qrgrid.FromRows([][]bool{{true, false}, {true}}); !errors.Is(err, qrgrid.ErrInvalidGrid) {
		t.Errorf("ragged rows: got %v, want ErrInvalidGrid", err)
	}

	rows := qrgridtest.FinderRows(21)
	g, err := qrgrid.FromRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	rows[0][0] = false
	if !g.At(0, 0) {
		t.Error("grid shares memory with its input rows")
	}
	if g.At(-1, 0) || g.At(0, 21) {
		t.Error("out of range lookups must be light")
	}
}
