package model

import (
	"image"

	"github.com/soocke/image-splitter-go/domain/capture"
)

// CanvasModel holds the most recently pasted image and the list of images
// queued for splitting. The zero value is usable.
// No synchronization needed: updates occur on the UI thread.
type CanvasModel struct {
	current image.Image
	pending []image.Image
}

func NewCanvasModel() *CanvasModel { return &CanvasModel{} }

// SetCurrent replaces the current image. nil clears it.
func (m *CanvasModel) SetCurrent(img image.Image) {
	if m == nil {
		return
	}
	m.current = img
}

// Current returns the current image (may be nil).
func (m *CanvasModel) Current() image.Image {
	if m == nil {
		return nil
	}
	return m.current
}

// AddCurrent queues a copy of the current image. It reports false when
// there is no current image.
func (m *CanvasModel) AddCurrent() bool {
	if m == nil || m.current == nil {
		return false
	}
	m.pending = append(m.pending, capture.ToRGBA(m.current))
	return true
}

// Pending returns the queued images in insertion order.
func (m *CanvasModel) Pending() []image.Image {
	if m == nil {
		return nil
	}
	return append([]image.Image(nil), m.pending...)
}

// PendingCount returns the number of queued images.
func (m *CanvasModel) PendingCount() int {
	if m == nil {
		return 0
	}
	return len(m.pending)
}

// ClearPending empties the queue. The current image is kept.
func (m *CanvasModel) ClearPending() {
	if m == nil {
		return
	}
	m.pending = nil
}
