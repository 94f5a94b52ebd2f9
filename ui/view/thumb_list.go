package view

import (
	"fmt"
	"image"
	"strings"

	"github.com/soocke/image-splitter-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// thumbItem is one captioned thumbnail.
type thumbItem struct {
	caption string
	img     image.Image
}

// thumbList shows captioned thumbnails in a read-only text widget with a
// vertical scrollbar, columns per row. Cells are aligned on tab stops one
// thumbnail width apart, so captions line up above their images.
type thumbList struct {
	text    *TextWidget
	scroll  *TScrollbarWidget
	photos  []*Img
	columns int
	maxW    int
	maxH    int
}

// newThumbList grids the list into parent at row. width and height are in
// characters and lines.
func newThumbList(parent *FrameWidget, row, width, height, columns, maxW, maxH int) *thumbList {
	if columns < 1 {
		columns = 1
	}
	l := &thumbList{columns: columns, maxW: maxW, maxH: maxH}
	l.text = Text(Width(width), Height(height), Wrap("none"), Borderwidth(0),
		Tabs(fmt.Sprintf("%d", maxW+16)),
		Yscrollcommand(func(e *Event) { e.ScrollSet(l.scroll) }))
	l.scroll = TScrollbar(Command(func(e *Event) { e.Yview(l.text) }))
	Grid(l.text, In(parent), Row(row), Column(0), Sticky("nsew"))
	Grid(l.scroll, In(parent), Row(row), Column(1), Sticky("ns"))
	l.text.Configure(State("disabled"))
	return l
}

// set replaces the list contents. Photos of the previous contents are
// deleted.
func (l *thumbList) set(items []thumbItem) {
	if l == nil || l.text == nil {
		return
	}
	l.text.Configure(State("normal"))
	l.text.Delete("1.0", END)
	for _, p := range l.photos {
		p.Delete()
	}
	l.photos = l.photos[:0]
	for _, row := range images.Rows(len(items), l.columns) {
		captions := make([]string, 0, len(row))
		for _, i := range row {
			captions = append(captions, items[i].caption)
		}
		l.text.Insert(END, strings.Join(captions, "\t")+"\n")
		for _, i := range row {
			photo := NewPhoto(Data(images.EncodePNG(images.Thumbnail(items[i].img, l.maxW, l.maxH))))
			l.photos = append(l.photos, photo)
			l.text.ImageCreate(END, Image(photo), Padx(4), Pady(4))
			l.text.Insert(END, "\t")
		}
		l.text.Insert(END, "\n")
	}
	l.text.Configure(State("disabled"))
}
