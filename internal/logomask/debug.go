package logomask

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
)

func mosaic(grid [][]bool, size int) *image.Gray {
	n := len(grid)
	img := image.NewGray(image.Rect(0, 0, n*size, n*size))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	black := image.NewUniform(color.Black)
	for y, row := range grid {
		for x, set := range row {
			if set {
				draw.Draw(img, image.Rect(x*size, y*size, (x+1)*size, (y+1)*size), black, image.Point{}, draw.Src)
			}
		}
	}
	return img
}

func debugSVG(m *Mask, renderSize int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		renderSize, renderSize, renderSize, renderSize)
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#f0f0f0"/>`, renderSize, renderSize)
	if m.Path != "" {
		fmt.Fprintf(&b, `<path d="%s" fill="#ff0000" fill-opacity="0.3" stroke="#ff0000" stroke-width="2"/>`, m.Path)
	}
	for y, row := range m.Coverage {
		for x, set := range row {
			if !set {
				continue
			}
			fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%d" height="%d" fill="none" stroke="#0000ff" stroke-width="0.5"/>`,
				m.Origin.X+x*m.ModuleSize, m.Origin.Y+y*m.ModuleSize, m.ModuleSize, m.ModuleSize)
		}
	}
	b.WriteString(`</svg>`)
	return b.String()
}
