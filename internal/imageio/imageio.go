// Package imageio decodes uploaded raster images and turns them into data
// URIs suitable for embedding in SVG documents.
package imageio

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"

	// Formats accepted for scans and logos.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gabriel-vasile/mimetype"
)

var (
	// ErrEmpty is returned when there are no image bytes to decode.
	ErrEmpty = errors.New("empty image data")

	// ErrTooLarge is returned by ReadAll when the input exceeds its limit.
	ErrTooLarge = errors.New("image too large")
)

// Decode decodes an image in any registered format and returns it together
// with the format name.
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmpty
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("error decoding image: %w", err)
	}
	return img, format, nil
}

// ReadAll reads at most limit bytes from r. Longer inputs are an error.
func ReadAll(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, limit)
	}
	return data, nil
}

// MIME sniffs the media type of data, e.g. "image/png".
func MIME(data []byte) string {
	return mimetype.Detect(data).String()
}

// IsImage reports whether data sniffs as an image media type.
func IsImage(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("image/png") || m.Is("image/jpeg") || m.Is("image/gif") ||
			m.Is("image/bmp") || m.Is("image/tiff") || m.Is("image/webp") ||
			m.Is("image/svg+xml") {
			return true
		}
	}
	return false
}

// DataURI encodes data as a base64 data URI with its sniffed media type.
func DataURI(data []byte) string {
	return "data:" + MIME(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}
