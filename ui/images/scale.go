package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// Thumbnail returns img scaled down to fit within maxW x maxH preserving
// aspect ratio. Images that already fit are returned unchanged; it never
// upscales.
func Thumbnail(img image.Image, maxW, maxH int) image.Image {
	if img == nil {
		return nil
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	b := img.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}
	return imaging.Fit(img, maxW, maxH, imaging.Lanczos)
}

// Placeholder returns a blank light-grey image used before any content is shown.
func Placeholder(w, h int) image.Image {
	return imaging.New(w, h, color.NRGBA{0xee, 0xee, 0xee, 0xff})
}
