package segment

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// newCanvas returns a white RGBA canvas.
func newCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func fillRect(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// outlineRect draws a hollow rectangle with the given border thickness.
func outlineRect(img draw.Image, r image.Rectangle, t int, c color.Color) {
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+t), c)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-t, r.Max.X, r.Max.Y), c)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+t, r.Max.Y), c)
	fillRect(img, image.Rect(r.Max.X-t, r.Min.Y, r.Max.X, r.Max.Y), c)
}

var (
	red   = color.RGBA{200, 30, 30, 255}
	blue  = color.RGBA{20, 40, 220, 255}
	black = color.RGBA{0, 0, 0, 255}
)

func boxes(imgs []SegmentedImage) []image.Rectangle {
	out := make([]image.Rectangle, len(imgs))
	for i, s := range imgs {
		out[i] = s.Region.Bounds()
	}
	return out
}

func TestSegment_BlankCanvasIsEmpty(t *testing.T) {
	got, err := Segment(newCanvas(300, 200), DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no images, got %d", len(got))
	}
}

func TestSegment_EmptyCanvasError(t *testing.T) {
	if _, err := Segment(nil, DefaultOptions()); !errors.Is(err, ErrEmptyCanvas) {
		t.Fatalf("nil canvas: expected ErrEmptyCanvas, got %v", err)
	}
	if _, err := Segment(image.NewRGBA(image.Rect(0, 0, 0, 10)), DefaultOptions()); !errors.Is(err, ErrEmptyCanvas) {
		t.Fatalf("zero-width canvas: expected ErrEmptyCanvas, got %v", err)
	}
}

func TestSegment_FiltersNoise(t *testing.T) {
	c := newCanvas(600, 400)
	fillRect(c, image.Rect(10, 10, 50, 50), red)      // 40x40: too small on both axes
	fillRect(c, image.Rect(100, 10, 400, 20), red)    // 300x10: too thin
	fillRect(c, image.Rect(10, 100, 40, 300), blue)   // 30x200: too narrow
	fillRect(c, image.Rect(100, 100, 151, 151), blue) // 51x51: area 2500 > 1000 passes
	// L shape: 1px strokes, bbox 120x120 but enclosed area 0.
	fillRect(c, image.Rect(300, 200, 420, 201), black)
	fillRect(c, image.Rect(300, 200, 301, 320), black)
	got, err := Segment(c, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := []image.Rectangle{image.Rect(100, 100, 151, 151)}
	if diff := cmp.Diff(want, boxes(got)); diff != "" {
		t.Fatalf("regions mismatch (-want +got):\n%s", diff)
	}
	for _, s := range got {
		r := s.Region
		if !(r.Area > 1000 && r.Width > 50 && r.Height > 50) {
			t.Fatalf("region violates size filter: %+v", r)
		}
	}
}

func TestSegment_ExactlyMinimumIsDropped(t *testing.T) {
	c := newCanvas(300, 300)
	fillRect(c, image.Rect(10, 10, 60, 110), red) // width exactly 50
	got, _ := Segment(c, DefaultOptions())
	if len(got) != 0 {
		t.Fatalf("width == 50 must be rejected, got %v", boxes(got))
	}
}

func TestSegment_ThresholdBoundary(t *testing.T) {
	c := newCanvas(400, 200)
	fillRect(c, image.Rect(10, 10, 110, 110), color.RGBA{250, 250, 250, 255})
	fillRect(c, image.Rect(200, 10, 300, 110), color.RGBA{251, 251, 251, 255})
	got, _ := Segment(c, DefaultOptions())
	want := []image.Rectangle{image.Rect(10, 10, 110, 110)}
	if diff := cmp.Diff(want, boxes(got)); diff != "" {
		t.Fatalf("threshold boundary mismatch (-want +got):\n%s", diff)
	}
}

func TestSegment_ReadingOrderToleratesJitter(t *testing.T) {
	c := newCanvas(800, 500)
	// Row bucket 0 (y < 100) with vertical jitter; inserted out of order.
	fillRect(c, image.Rect(500, 40, 600, 140), red)
	fillRect(c, image.Rect(20, 90, 120, 190), blue)
	fillRect(c, image.Rect(260, 5, 360, 105), red)
	// Row bucket 2; leftmost but lower.
	fillRect(c, image.Rect(10, 250, 110, 350), blue)
	got, err := Segment(c, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	want := []image.Rectangle{
		image.Rect(20, 90, 120, 190),
		image.Rect(260, 5, 360, 105),
		image.Rect(500, 40, 600, 140),
		image.Rect(10, 250, 110, 350),
	}
	if diff := cmp.Diff(want, boxes(got)); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
	for i, s := range got {
		if s.Index != i+1 {
			t.Fatalf("index %d at position %d", s.Index, i)
		}
	}
}

func TestSegment_CropIsInsetCopy(t *testing.T) {
	c := newCanvas(300, 300)
	r := image.Rect(40, 60, 140, 180)
	outlineRect(c, r, 2, black)
	fillRect(c, r.Inset(2), red)
	got, err := Segment(c, DefaultOptions())
	if err != nil || len(got) != 1 {
		t.Fatalf("expected one image, got %d err=%v", len(got), err)
	}
	img := got[0].Image
	if img.Bounds() != image.Rect(0, 0, 96, 116) {
		t.Fatalf("unexpected crop bounds %v", img.Bounds())
	}
	// The 2px border is trimmed, so every pixel is the fill colour.
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			if got := img.RGBAAt(x, y); got != red {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, red)
			}
		}
	}
	// Mutating the canvas afterwards must not affect the result.
	fillRect(c, c.Bounds(), blue)
	if img.RGBAAt(10, 10) != red {
		t.Fatalf("crop shares memory with canvas")
	}
}

func TestSegment_NestedComponentsIgnored(t *testing.T) {
	c := newCanvas(500, 500)
	outer := image.Rect(50, 50, 450, 450)
	outlineRect(c, outer, 3, black)
	fillRect(c, image.Rect(150, 150, 300, 300), red) // inside the frame's hole
	got, _ := Segment(c, DefaultOptions())
	want := []image.Rectangle{outer}
	if diff := cmp.Diff(want, boxes(got)); diff != "" {
		t.Fatalf("expected only the outer frame (-want +got):\n%s", diff)
	}
	// The crop still contains the nested content.
	if px := got[0].Image.RGBAAt(200-52, 200-52); px != red {
		t.Fatalf("nested content missing from crop: %v", px)
	}
}

func TestSegment_NonZeroOriginCanvas(t *testing.T) {
	c := newCanvas(400, 400)
	fillRect(c, image.Rect(150, 150, 250, 260), blue)
	sub := c.SubImage(image.Rect(100, 100, 400, 400))
	got, err := Segment(sub, DefaultOptions())
	if err != nil || len(got) != 1 {
		t.Fatalf("expected one image, got %d err=%v", len(got), err)
	}
	if b := got[0].Region.Bounds(); b != image.Rect(50, 50, 150, 160) {
		t.Fatalf("region should be canvas-relative, got %v", b)
	}
	if got[0].Image.RGBAAt(0, 0) != blue {
		t.Fatalf("crop read from wrong offset: %v", got[0].Image.RGBAAt(0, 0))
	}
}

func TestSegment_MarginCollapseShiftsIndices(t *testing.T) {
	c := newCanvas(400, 200)
	fillRect(c, image.Rect(10, 10, 13, 110), red) // 3px wide: passes a zero filter, collapses after inset
	fillRect(c, image.Rect(100, 10, 200, 110), blue)
	opts := DefaultOptions()
	opts.MinArea, opts.MinWidth, opts.MinHeight = 0, 0, 0
	regions, _ := Regions(c, opts)
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions before cropping, got %d", len(regions))
	}
	got, _ := Segment(c, opts)
	if len(got) != 1 || got[0].Index != 1 || got[0].Region.X != 100 {
		t.Fatalf("expected collapsed crop to be dropped and index shifted, got %+v", boxes(got))
	}
}

func TestSegment_Idempotent(t *testing.T) {
	c := randomLayout(rand.New(rand.NewSource(7)))
	a, err := Segment(c, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, _ := Segment(c, DefaultOptions())
	if diff := cmp.Diff(boxes(a), boxes(b)); diff != "" {
		t.Fatalf("boxes differ between runs:\n%s", diff)
	}
	for i := range a {
		if diff := cmp.Diff(a[i].Image.Pix, b[i].Image.Pix); diff != "" {
			t.Fatalf("pixels differ for image %d", a[i].Index)
		}
	}
}

func TestSegment_OrderingProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 20; n++ {
		c := randomLayout(rng)
		got, err := Segment(c, DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}
		if len(got) == 0 {
			t.Fatalf("layout %d produced no images", n)
		}
		for i := 1; i < len(got); i++ {
			p, q := got[i-1].Region, got[i].Region
			rp, rq := p.Row(100), q.Row(100)
			if rp > rq || (rp == rq && p.X > q.X) {
				t.Fatalf("layout %d: %+v emitted before %+v", n, p, q)
			}
			if got[i].Index != got[i-1].Index+1 {
				t.Fatalf("layout %d: non-consecutive indices", n)
			}
		}
	}
}

// randomLayout places solid tiles in a jittered grid with white gutters.
func randomLayout(rng *rand.Rand) *image.RGBA {
	c := newCanvas(900, 700)
	for row := 0; row < 3; row++ {
		for col := 0; col < 4; col++ {
			x := 20 + col*220 + rng.Intn(30)
			y := 20 + row*220 + rng.Intn(60)
			w := 60 + rng.Intn(100)
			h := 60 + rng.Intn(100)
			c0 := color.RGBA{uint8(rng.Intn(200)), uint8(rng.Intn(200)), uint8(rng.Intn(200)), 255}
			fillRect(c, image.Rect(x, y, x+w, y+h), c0)
		}
	}
	return c
}

func TestOptionsFromConfig_NilUsesDefaults(t *testing.T) {
	want := Options{Threshold: 250, MinArea: 1000, MinWidth: 50, MinHeight: 50, RowBucket: 100, Margin: 2}
	if diff := cmp.Diff(want, DefaultOptions()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}
