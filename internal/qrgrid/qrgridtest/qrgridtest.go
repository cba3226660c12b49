// Package qrgridtest builds synthetic symbols for tests.
package qrgridtest

import (
	"image"
	"image/color"

	"github.com/skip2/go-qrcode"
	"golang.org/x/image/draw"
)

// FinderRows returns an n x n grid with only the three finder patterns set.
func FinderRows(n int) [][]bool {
	rows := make([][]bool, n)
	for y := range rows {
		rows[y] = make([]bool, n)
	}
	for _, o := range [][2]int{{0, 0}, {n - 7, 0}, {0, n - 7}} {
		for dy := 0; dy < 7; dy++ {
			for dx := 0; dx < 7; dx++ {
				ring := dx == 0 || dy == 0 || dx == 6 || dy == 6
				core := dx >= 2 && dx <= 4 && dy >= 2 && dy <= 4
				rows[o[1]+dy][o[0]+dx] = ring || core
			}
		}
	}
	return rows
}

// EncodedRows returns the module bitmap of content encoded at medium
// recovery, without quiet zone.
func EncodedRows(content string) ([][]bool, error) {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	// Bitmap includes a four module quiet zone.
	const quiet = 4
	bm := q.Bitmap()
	rows := make([][]bool, 0, len(bm)-2*quiet)
	for _, row := range bm[quiet : len(bm)-quiet] {
		rows = append(rows, append([]bool(nil), row[quiet:len(row)-quiet]...))
	}
	return rows, nil
}

// Paint draws rows as black squares of moduleSize pixels on a white canvas
// with quiet modules of margin on every side.
func Paint(rows [][]bool, moduleSize, quiet int) *image.RGBA {
	n := len(rows)
	side := (n + 2*quiet) * moduleSize
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	black := image.NewUniform(color.Black)
	for y, row := range rows {
		for x, dark := range row {
			if !dark {
				continue
			}
			px := (x + quiet) * moduleSize
			py := (y + quiet) * moduleSize
			draw.Draw(img, image.Rect(px, py, px+moduleSize, py+moduleSize), black, image.Point{}, draw.Src)
		}
	}
	return img
}
