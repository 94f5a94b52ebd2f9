package presenter

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/image-splitter-go/config"
	"github.com/soocke/image-splitter-go/domain/capture"
	"github.com/soocke/image-splitter-go/domain/clipboard"
	"github.com/soocke/image-splitter-go/domain/segment"
	"github.com/soocke/image-splitter-go/ui/model"
)

// Dialogs shows modal message boxes.
type Dialogs interface {
	Warn(title, msg string)
	Info(title, msg string)
	Confirm(title, msg string) bool
}

// CanvasView renders the current image, the pending list and the gallery.
type CanvasView interface {
	ShowCurrent(img image.Image)
	ShowPending(imgs []image.Image)
	ShowGallery(seq []segment.SegmentedImage)
}

// ImageSource yields a new current image (clipboard, screen).
type ImageSource func() (image.Image, error)

// SplitPresenter owns the paste / add / split / reset workflow.
type SplitPresenter struct {
	logger  *slog.Logger
	cfg     *config.Config
	canvas  *model.CanvasModel
	gallery *model.GalleryModel
	view    CanvasView
	dialogs Dialogs
	paste   ImageSource
	grab    ImageSource
}

func NewSplitPresenter(logger *slog.Logger, cfg *config.Config, canvas *model.CanvasModel, gallery *model.GalleryModel, view CanvasView, dialogs Dialogs, paste, grab ImageSource) *SplitPresenter {
	return &SplitPresenter{logger: logger, cfg: cfg, canvas: canvas, gallery: gallery, view: view, dialogs: dialogs, paste: paste, grab: grab}
}

// Paste loads the clipboard image as the current image.
func (p *SplitPresenter) Paste() {
	if p == nil || p.paste == nil {
		return
	}
	img, err := p.paste()
	if errors.Is(err, clipboard.ErrNoImage) || (err == nil && img == nil) {
		p.dialogs.Warn("Warning", "No image found in clipboard.")
		return
	}
	if err != nil {
		p.logError("clipboard read failed", err)
		p.dialogs.Warn("Warning", "Could not read clipboard: "+err.Error())
		return
	}
	p.setCurrent(img)
}

// CaptureScreen grabs the primary screen as the current image.
func (p *SplitPresenter) CaptureScreen() {
	if p == nil || p.grab == nil {
		return
	}
	img, err := p.grab()
	if err != nil || img == nil {
		if err == nil {
			err = capture.ErrNoImages
		}
		p.logError("screen capture failed", err)
		p.dialogs.Warn("Warning", "Screen capture failed: "+err.Error())
		return
	}
	p.setCurrent(img)
}

func (p *SplitPresenter) setCurrent(img image.Image) {
	p.canvas.SetCurrent(img)
	p.view.ShowCurrent(img)
	if p.logger != nil {
		b := img.Bounds()
		p.logger.Debug("current image set", "width", b.Dx(), "height", b.Dy())
	}
}

// Add queues the current image for splitting.
func (p *SplitPresenter) Add() {
	if p == nil {
		return
	}
	if !p.canvas.AddCurrent() {
		p.dialogs.Warn("Warning", "Please paste an image first.")
		return
	}
	p.view.ShowPending(p.canvas.Pending())
	p.dialogs.Info("Added", fmt.Sprintf("Image added. %d image(s) pending.", p.canvas.PendingCount()))
}

// Split stacks the pending images, segments the result into the gallery and
// clears the pending list.
func (p *SplitPresenter) Split() {
	if p == nil {
		return
	}
	pending := p.canvas.Pending()
	if len(pending) == 0 {
		p.dialogs.Warn("Warning", "No images to split.")
		return
	}
	stacked, err := capture.Stack(pending...)
	if err != nil {
		p.logError("stack failed", err)
		p.dialogs.Warn("Warning", "Could not combine images: "+err.Error())
		return
	}
	seq, err := segment.Segment(stacked, segment.OptionsFromConfig(p.cfg))
	if err != nil {
		p.logError("segment failed", err)
		p.dialogs.Warn("Warning", "Could not split images: "+err.Error())
		return
	}
	if p.logger != nil {
		b := stacked.Bounds()
		p.logger.Info("segment.done", "pending", len(pending), "width", b.Dx(), "height", b.Dy(), "images", len(seq))
	}
	p.gallery.Set(seq)
	p.view.ShowGallery(seq)
	p.canvas.ClearPending()
	p.view.ShowPending(nil)
	if len(seq) == 0 {
		p.dialogs.Info("Info", "No images found in the pending images.")
	}
}

// Reset clears the pending list after confirmation.
func (p *SplitPresenter) Reset() {
	if p == nil {
		return
	}
	if p.canvas.PendingCount() == 0 {
		p.dialogs.Info("Info", "The pending list is already empty.")
		return
	}
	if !p.dialogs.Confirm("Confirm", "Clear all pending images?") {
		return
	}
	p.canvas.ClearPending()
	p.view.ShowPending(nil)
}

func (p *SplitPresenter) logError(msg string, err error) {
	if p.logger != nil {
		p.logger.Error(msg, "error", err)
	}
}
