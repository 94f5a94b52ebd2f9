package segment

import (
	"image"
	"image/draw"
	"sort"
)

// Segment splits canvas into sub-images laid out on a near-white background
// and returns them in reading order (coarse rows top to bottom, then left to
// right). It has no side effects; the returned images do not share memory
// with canvas. A canvas without qualifying regions yields an empty slice.
func Segment(canvas image.Image, opts Options) ([]SegmentedImage, error) {
	regions, err := Regions(canvas, opts)
	if err != nil {
		return nil, err
	}
	out := make([]SegmentedImage, 0, len(regions))
	for _, r := range regions {
		img := crop(canvas, r.Bounds().Inset(opts.Margin))
		if img == nil {
			continue
		}
		out = append(out, SegmentedImage{Index: len(out) + 1, Region: r, Image: img})
	}
	return out, nil
}

// Regions returns the filtered regions of canvas in emission order, before
// cropping.
func Regions(canvas image.Image, opts Options) ([]Region, error) {
	if canvas == nil || canvas.Bounds().Empty() {
		return nil, ErrEmptyCanvas
	}
	m := binarize(canvas, opts.Threshold)
	type candidate struct {
		r     Region
		order int
	}
	var kept []candidate
	for _, b := range externalBlobs(m) {
		r := b.region(contourArea(m, b.startX, b.startY))
		if r.Area <= opts.MinArea || r.Width <= opts.MinWidth || r.Height <= opts.MinHeight {
			continue
		}
		kept = append(kept, candidate{r: r, order: b.order})
	}
	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i].r, kept[j].r
		if ra, rb := a.Row(opts.RowBucket), b.Row(opts.RowBucket); ra != rb {
			return ra < rb
		}
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return kept[i].order < kept[j].order
	})
	regions := make([]Region, len(kept))
	for i, c := range kept {
		regions[i] = c.r
	}
	return regions, nil
}

// crop copies rect (canvas-relative) into a fresh opaque RGBA image with a
// zero origin. It returns nil when rect is empty.
func crop(canvas image.Image, rect image.Rectangle) *image.RGBA {
	if rect.Empty() {
		return nil
	}
	b := canvas.Bounds()
	src := rect.Add(b.Min).Intersect(b)
	if src.Empty() {
		return nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Draw(dst, dst.Bounds(), canvas, src.Min, draw.Src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xFF
	}
	return dst
}
