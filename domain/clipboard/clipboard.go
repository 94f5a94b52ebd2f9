// Package clipboard moves images between the OS clipboard and the program.
//
// Reading goes through golang.design/x/clipboard on every platform. Writing
// uses a native CF_DIB bitmap on Windows, which spreadsheet and office
// applications paste as a picture, and a PNG payload elsewhere.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"sync"

	xclip "golang.design/x/clipboard"
	"golang.org/x/image/bmp"
)

// ErrNoImage is returned when the clipboard holds no image.
var ErrNoImage = errors.New("clipboard: no image")

var (
	initOnce sync.Once
	initErr  error
)

// Init prepares the clipboard backend. It is safe to call repeatedly.
func Init() error {
	initOnce.Do(func() { initErr = xclip.Init() })
	return initErr
}

// ReadImage returns the image currently on the clipboard.
func ReadImage() (image.Image, error) {
	if err := Init(); err != nil {
		return nil, fmt.Errorf("clipboard: init: %w", err)
	}
	data := xclip.Read(xclip.FmtImage)
	if len(data) == 0 {
		return nil, ErrNoImage
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("clipboard: decode: %w", err)
	}
	return img, nil
}

// bmpFileHeaderSize is the BITMAPFILEHEADER prefix that CF_DIB omits.
const bmpFileHeaderSize = 14

// EncodeDIB encodes img as a packed device-independent bitmap
// (BITMAPINFOHEADER followed by pixel rows). Alpha is discarded.
func EncodeDIB(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("clipboard: empty image")
	}
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, opaque(img)); err != nil {
		return nil, fmt.Errorf("clipboard: encode bmp: %w", err)
	}
	b := buf.Bytes()
	if len(b) <= bmpFileHeaderSize {
		return nil, errors.New("clipboard: short bmp")
	}
	return b[bmpFileHeaderSize:], nil
}

// EncodePNG encodes img as PNG for clipboard backends that take PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, errors.New("clipboard: empty image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, opaque(img)); err != nil {
		return nil, fmt.Errorf("clipboard: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// opaque returns an RGBA copy of img with every alpha set to 0xFF, so the
// BMP encoder emits 24-bit rows.
func opaque(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && rgba.Opaque() && b.Min == (image.Point{}) {
		return rgba
	}
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 0xFF
	}
	return out
}

// Native writes images onto the OS clipboard. It implements
// replay.ImageClipboard. Each write opens and closes the clipboard.
type Native struct{}

// NewNative returns the platform clipboard writer.
func NewNative() *Native { return &Native{} }

// WriteImage replaces the clipboard contents with img.
func (n *Native) WriteImage(img image.Image) error { return writeImage(img) }
