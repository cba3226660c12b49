package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strconv"
	"strings"
)

// Format is an output encoding.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpg"
)

// JPEGQuality is the quality used for JPEG output.
const JPEGQuality = 92

var ErrUnknownFormat = errors.New("unknown output format")

// ParseFormat maps a format name or file extension to a Format. The empty
// string is svg.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "", "svg", "svgz":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType is the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	default:
		return "image/svg+xml"
	}
}

// EncodePNG writes img as PNG, keeping transparency.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// EncodeJPEG flattens img on bg and writes it as JPEG. A nil bg means white.
func EncodeJPEG(w io.Writer, img image.Image, bg color.Color) error {
	if bg == nil {
		bg = color.White
	}
	return jpeg.Encode(w, Flatten(img, bg), &jpeg.Options{Quality: JPEGQuality})
}

// ParseColor parses #rgb or #rrggbb (with or without the leading #).
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
