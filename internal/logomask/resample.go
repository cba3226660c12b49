package logomask

import (
	"context"
	"fmt"
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

//counterfeiter:generate . Resampler

// Resampler scales a raster to an exact size, preserving alpha.
type Resampler interface {
	Resample(ctx context.Context, src image.Image, width, height int) (image.Image, error)
}

// Lanczos resamples with a Lanczos3 kernel.
type Lanczos struct{}

// Resample implements Resampler. The work runs in its own goroutine so a
// cancelled ctx returns immediately; the result is then dropped.
func (Lanczos) Resample(ctx context.Context, src image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}

	done := make(chan image.Image, 1)
	go func() {
		done <- resize.Resize(uint(width), uint(height), src, resize.Lanczos3)
	}()

	select {
	case img := <-done:
		return img, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// CatmullRom resamples with the Catmull-Rom kernel from x/image/draw.
type CatmullRom struct{}

// Resample implements Resampler.
func (CatmullRom) Resample(ctx context.Context, src image.Image, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// ResamplerByName returns the resampler for "lanczos" or "catmullrom".
// Anything else is Lanczos.
func ResamplerByName(name string) Resampler {
	if name == "catmullrom" {
		return CatmullRom{}
	}
	return Lanczos{}
}
