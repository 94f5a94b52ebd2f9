package model

import "github.com/soocke/image-splitter-go/domain/segment"

// GalleryModel holds the result of the last split, in replay order.
type GalleryModel struct {
	images []segment.SegmentedImage
}

func NewGalleryModel() *GalleryModel { return &GalleryModel{} }

// Set replaces the gallery contents.
func (m *GalleryModel) Set(images []segment.SegmentedImage) {
	if m == nil {
		return
	}
	m.images = images
}

// Images returns the segmented images. Callers must not modify the slice.
func (m *GalleryModel) Images() []segment.SegmentedImage {
	if m == nil {
		return nil
	}
	return m.images
}

// Len returns the number of segmented images.
func (m *GalleryModel) Len() int {
	if m == nil {
		return 0
	}
	return len(m.images)
}
