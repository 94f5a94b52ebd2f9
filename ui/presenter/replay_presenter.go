package presenter

import (
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/soocke/image-splitter-go/config"
	"github.com/soocke/image-splitter-go/domain/replay"
	"github.com/soocke/image-splitter-go/domain/segment"
	"github.com/soocke/image-splitter-go/ui/model"
)

// ReplayDriver runs a blocking replay.
type ReplayDriver interface {
	Replay(seq []segment.SegmentedImage, opts replay.Options, confirm func() bool, cancelRequested func() bool) (replay.Result, error)
}

// WindowControl hides the main window while keystrokes target another app.
type WindowControl interface {
	Hide()
	Show()
}

// ReplayPresenter starts replays of the gallery and reports their outcome.
type ReplayPresenter struct {
	logger     *slog.Logger
	cfg        *config.Config
	gallery    *model.GalleryModel
	driver     ReplayDriver
	window     WindowControl
	dialogs    Dialogs
	cancel     func() bool
	foreground func() (string, error)

	running atomic.Bool
	hidden  bool
}

func NewReplayPresenter(logger *slog.Logger, cfg *config.Config, gallery *model.GalleryModel, driver ReplayDriver, window WindowControl, dialogs Dialogs, cancel func() bool) *ReplayPresenter {
	return &ReplayPresenter{logger: logger, cfg: cfg, gallery: gallery, driver: driver, window: window, dialogs: dialogs, cancel: cancel}
}

// SetForegroundLookup sets the function used to log the replay target window.
func (p *ReplayPresenter) SetForegroundLookup(fn func() (string, error)) {
	if p != nil {
		p.foreground = fn
	}
}

// Running reports whether a replay is in progress.
func (p *ReplayPresenter) Running() bool { return p != nil && p.running.Load() }

// Instructions returns the confirmation text shown before a replay.
func Instructions(startDelay time.Duration) string {
	return fmt.Sprintf("1. Open the target application and prepare the grid.\n"+
		"2. Select the first cell.\n"+
		"3. Press Yes, then focus the target: pasting starts in %d seconds.\n"+
		"4. Hold ESC to stop.", int(startDelay.Round(time.Second)/time.Second))
}

// Replay pastes the gallery into the target application. Calls while a
// replay is running are ignored.
func (p *ReplayPresenter) Replay() {
	if p == nil || p.driver == nil {
		return
	}
	seq := p.gallery.Images()
	if len(seq) == 0 {
		p.dialogs.Warn("Warning", "No images to replay. Split images first.")
		return
	}
	if !p.running.CompareAndSwap(false, true) {
		return
	}
	defer p.running.Store(false)

	opts := replay.OptionsFromConfig(p.cfg)
	confirm := func() bool { return p.dialogs.Confirm("Replay", Instructions(opts.StartDelay)) }
	res, err := p.driver.Replay(seq, opts, confirm, p.cancel)
	if p.hidden && p.window != nil {
		p.window.Show()
		p.hidden = false
	}
	switch res.Outcome {
	case replay.Completed:
		p.dialogs.Info("Done", fmt.Sprintf("Pasted %d images.", res.Completed))
	case replay.Cancelled:
		p.dialogs.Info("Stopped", fmt.Sprintf("Replay stopped after %d of %d images.", res.Completed, res.Total))
	case replay.Failed:
		if p.logger != nil {
			p.logger.Error("replay failed", "error", err, "completed", res.Completed)
		}
		p.dialogs.Warn("Error", fmt.Sprintf("Replay failed after %d of %d images: %v", res.Completed, res.Total, err))
	}
}

// OnState is registered as a driver listener.
func (p *ReplayPresenter) OnState(prev, next replay.State, step int) {
	if p == nil {
		return
	}
	switch {
	case next == replay.StateCountdown:
		if p.window != nil {
			p.window.Hide()
			p.hidden = true
		}
	case next == replay.StateCopy && step == 1:
		if p.foreground == nil || p.logger == nil {
			return
		}
		if title, err := p.foreground(); err == nil {
			p.logger.Info("replay target", "window", title)
		}
	}
}
