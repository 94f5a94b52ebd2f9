package segment

import (
	"errors"
	"image"

	"github.com/soocke/image-splitter-go/config"
)

// ErrEmptyCanvas is returned for a nil or zero-area canvas.
var ErrEmptyCanvas = errors.New("segment: empty canvas")

// Region is the bounding box and contour area of one external foreground
// component. Coordinates are relative to the canvas' top-left corner.
type Region struct {
	X, Y          int
	Width, Height int
	Area          float64
}

// Bounds returns the region as a rectangle in canvas coordinates.
func (r Region) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// Row returns the coarse row bucket used for reading-order sorting.
func (r Region) Row(bucket int) int {
	if bucket <= 0 {
		bucket = 1
	}
	return r.Y / bucket
}

// SegmentedImage is a margin-trimmed copy of the canvas at Region.
// Index is 1-based and reflects emission order.
type SegmentedImage struct {
	Index  int
	Region Region
	Image  *image.RGBA
}

// Options tunes binarization, filtering, ordering and cropping.
type Options struct {
	Threshold uint8
	MinArea   float64
	MinWidth  int
	MinHeight int
	RowBucket int
	Margin    int
}

// DefaultOptions returns the standard parameters for content on a white background.
func DefaultOptions() Options {
	return OptionsFromConfig(nil)
}

// OptionsFromConfig maps configuration onto Options. A nil cfg yields defaults.
func OptionsFromConfig(cfg *config.Config) Options {
	var local config.Config
	if cfg == nil {
		local = *config.DefaultConfig()
	} else {
		local = *cfg
	}
	_ = local.Validate()
	return Options{
		Threshold: uint8(local.Threshold),
		MinArea:   local.MinArea,
		MinWidth:  local.MinWidth,
		MinHeight: local.MinHeight,
		RowBucket: local.RowBucket,
		Margin:    local.Margin,
	}
}
