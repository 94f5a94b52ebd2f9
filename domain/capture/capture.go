// Package capture produces canvases for segmentation: screen grabs, decoded
// files, and vertical stacks of several pasted images.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/vova616/screenshot"
	_ "golang.org/x/image/bmp"
)

// ErrNoImages is returned by Stack when called without images.
var ErrNoImages = errors.New("capture: no images")

// Grab returns a screen capture of the primary monitor.
func Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture: screen: %w", err)
	}
	return img, nil
}

// Decode reads a PNG, JPEG or BMP image.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("capture: decode: %w", err)
	}
	return img, nil
}

// ToRGBA copies img into a new opaque RGBA image with a zero origin.
func ToRGBA(img image.Image) *image.RGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xFF
	}
	return out
}

// Stack composes images top to bottom, left aligned, into one canvas as wide
// as the widest input. Area to the right of narrower images is white so the
// result keeps a near-white background between sub-images.
func Stack(images ...image.Image) (*image.RGBA, error) {
	var w, h int
	for _, img := range images {
		if img == nil {
			continue
		}
		b := img.Bounds()
		w = max(w, b.Dx())
		h += b.Dy()
	}
	if w == 0 || h == 0 {
		return nil, ErrNoImages
	}
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	y := 0
	for _, img := range images {
		if img == nil {
			continue
		}
		b := img.Bounds()
		dst := image.Rect(0, y, b.Dx(), y+b.Dy())
		draw.Draw(canvas, dst, img, b.Min, draw.Over)
		y += b.Dy()
	}
	return canvas, nil
}
