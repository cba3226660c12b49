// Package qrgrid holds the module grid of a QR symbol and the sampler that
// reconstructs it from a photographed image.
package qrgrid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrid is returned by FromRows for ragged or empty input.
	ErrInvalidGrid = errors.New("invalid module grid")

	// ErrContextUnavailable is returned when a raster surface needed for
	// sampling, analysis or compositing cannot be allocated.
	ErrContextUnavailable = errors.New("rendering surface unavailable")
)

// Grid is an immutable square grid of QR modules. A true cell is a dark module.
type Grid struct {
	size  int
	cells []bool
}

// FromRows builds a grid from row-major booleans. The input is copied.
func FromRows(rows [][]bool) (*Grid, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidGrid)
	}
	g := &Grid{size: n, cells: make([]bool, n*n)}
	for y, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, y, len(row), n)
		}
		copy(g.cells[y*n:], row)
	}
	return g, nil
}

// Size returns the number of modules per side.
func (g *Grid) Size() int {
	if g == nil {
		return 0
	}
	return g.size
}

// At reports whether the module at column x, row y is dark. Coordinates
// outside the grid are light.
func (g *Grid) At(x, y int) bool {
	if g == nil || x < 0 || y < 0 || x >= g.size || y >= g.size {
		return false
	}
	return g.cells[y*g.size+x]
}

// Rows returns a copy of the grid as row-major booleans.
func (g *Grid) Rows() [][]bool {
	rows := make([][]bool, g.Size())
	for y := range rows {
		rows[y] = make([]bool, g.size)
		copy(rows[y], g.cells[y*g.size:(y+1)*g.size])
	}
	return rows
}

// Version returns the QR version implied by the grid size, or 0 when the size
// is not 4*version+17.
func (g *Grid) Version() int {
	n := g.Size()
	if n < 21 || (n-17)%4 != 0 {
		return 0
	}
	return (n - 17) / 4
}

// Dark returns the number of dark modules.
func (g *Grid) Dark() int {
	count := 0
	if g == nil {
		return 0
	}
	for _, c := range g.cells {
		if c {
			count++
		}
	}
	return count
}

// String renders the grid as text, '#' for dark and '.' for light modules.
func (g *Grid) String() string {
	n := g.Size()
	b := make([]byte, 0, n*(n+1))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if g.cells[y*n+x] {
				b = append(b, '#')
			} else {
				b = append(b, '.')
			}
		}
		b = append(b, '\n')
	}
	return string(b)
}
