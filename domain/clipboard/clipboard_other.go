//go:build !windows

package clipboard

import (
	"fmt"
	"image"

	xclip "golang.design/x/clipboard"
)

func writeImage(img image.Image) error {
	if err := Init(); err != nil {
		return fmt.Errorf("clipboard: init: %w", err)
	}
	data, err := EncodePNG(img)
	if err != nil {
		return err
	}
	xclip.Write(xclip.FmtImage, data)
	return nil
}
