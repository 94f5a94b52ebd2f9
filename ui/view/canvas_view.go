package view

import (
	"fmt"
	"image"

	"github.com/soocke/image-splitter-go/domain/segment"
	"github.com/soocke/image-splitter-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	previewW, previewH = 400, 400
	pendingW, pendingH = 200, 200
	galleryW, galleryH = 350, 250
)

// canvasView renders the current image preview, the pending list and the
// gallery of segmented images. The two lists scroll vertically.
// Every refresh deletes the previous Tk photos so replaced pixel data is
// released.
type canvasView struct {
	preview      *LabelWidget
	previewPhoto *Img

	pendingCount *LabelWidget
	pending      *thumbList
	gallery      *thumbList
}

// newCanvasView creates the preview label in previewParent and the scrolling
// pending list and gallery in their frames.
func newCanvasView(previewParent, pendingFrame, galleryFrame *FrameWidget, columns int) *canvasView {
	photo := NewPhoto(Data(images.EncodePNG(images.Placeholder(previewW, previewH))))
	preview := Label(Image(photo), Borderwidth(1), Relief("sunken"))
	Grid(preview, In(previewParent), Row(0), Column(0), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	count := Label(Txt("Pending images: 0"), Anchor("w"))
	Grid(count, In(pendingFrame), Row(0), Column(0), Columnspan(2), Sticky("w"), Padx("0.4m"), Pady("0.2m"))
	return &canvasView{
		preview:      preview,
		previewPhoto: photo,
		pendingCount: count,
		pending:      newThumbList(pendingFrame, 1, 30, 24, 1, pendingW, pendingH),
		gallery:      newThumbList(galleryFrame, 0, 160, 22, columns, galleryW, galleryH),
	}
}

func (v *canvasView) ShowCurrent(img image.Image) {
	if v == nil || v.preview == nil {
		return
	}
	if img == nil {
		img = images.Placeholder(previewW, previewH)
	}
	photo := NewPhoto(Data(images.EncodePNG(images.Thumbnail(img, previewW, previewH))))
	if v.previewPhoto != nil {
		v.previewPhoto.Delete()
	}
	v.previewPhoto = photo
	v.preview.Configure(Image(photo))
}

func (v *canvasView) ShowPending(imgs []image.Image) {
	if v == nil || v.pending == nil {
		return
	}
	v.pendingCount.Configure(Txt(fmt.Sprintf("Pending images: %d", len(imgs))))
	items := make([]thumbItem, len(imgs))
	for i, img := range imgs {
		items[i] = thumbItem{caption: images.Caption(i + 1), img: img}
	}
	v.pending.set(items)
}

func (v *canvasView) ShowGallery(seq []segment.SegmentedImage) {
	if v == nil || v.gallery == nil {
		return
	}
	items := make([]thumbItem, len(seq))
	for i, s := range seq {
		items[i] = thumbItem{caption: images.Caption(s.Index), img: s.Image}
	}
	v.gallery.set(items)
}
