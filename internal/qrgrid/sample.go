package qrgrid

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

// Point is a position in source-image pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Quad locates a symbol inside a source image. BottomRight is kept for
// callers that have it; Sample does not use it.
type Quad struct {
	TopLeft     Point `json:"topLeft"`
	TopRight    Point `json:"topRight"`
	BottomLeft  Point `json:"bottomLeft"`
	BottomRight Point `json:"bottomRight"`
}

// Project maps normalized symbol coordinates (u along the top edge, v along
// the left edge) to source pixels using TL, TR and BL as an affine basis.
func (q Quad) Project(u, v float64) Point {
	return Point{
		X: q.TopLeft.X + u*(q.TopRight.X-q.TopLeft.X) + v*(q.BottomLeft.X-q.TopLeft.X),
		Y: q.TopLeft.Y + u*(q.TopRight.Y-q.TopLeft.Y) + v*(q.BottomLeft.Y-q.TopLeft.Y),
	}
}

// darkThreshold is the luminance below which a sampled pixel is a dark module.
const darkThreshold = 127

// Sample reads a moduleCount x moduleCount grid out of a packed RGBA buffer
// (4 bytes per pixel, stride 4*width). Each module is the pixel nearest to the
// projection of its centre. Modules projecting outside the image, or past the
// end of a short buffer, are light.
//
// The projection is affine: strong perspective skew is not corrected because
// the bottom-right corner is ignored.
func Sample(pix []byte, width, height int, q Quad, moduleCount int) *Grid {
	if moduleCount <= 0 {
		return &Grid{}
	}
	g := &Grid{size: moduleCount, cells: make([]bool, moduleCount*moduleCount)}
	n := float64(moduleCount)
	for row := 0; row < moduleCount; row++ {
		for col := 0; col < moduleCount; col++ {
			p := q.Project((float64(col)+0.5)/n, (float64(row)+0.5)/n)
			px := int(math.Round(p.X))
			py := int(math.Round(p.Y))
			if px < 0 || px >= width || py < 0 || py >= height {
				continue
			}
			i := (py*width + px) * 4
			if i+2 >= len(pix) {
				continue
			}
			g.cells[row*moduleCount+col] = Luminance(pix[i], pix[i+1], pix[i+2]) < darkThreshold
		}
	}
	return g
}

// SampleImage converts img to packed RGBA and samples it. The quad is
// relative to img's bounds origin.
func SampleImage(img image.Image, q Quad, moduleCount int) *Grid {
	rgba := ToRGBA(img)
	b := rgba.Bounds()
	return Sample(rgba.Pix, b.Dx(), b.Dy(), q, moduleCount)
}

// ToRGBA returns img as a zero-origin *image.RGBA with a tight stride,
// reusing img when it already is one.
func ToRGBA(img image.Image) *image.RGBA {
	if m, ok := img.(*image.RGBA); ok && m.Rect.Min == (image.Point{}) && m.Stride == 4*m.Rect.Dx() {
		return m
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Luminance is the Rec. 601 luma of an 8-bit RGB triple.
func Luminance(r, g, b uint8) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}
