package view

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/image-splitter-go/config"
	"github.com/soocke/image-splitter-go/domain/segment"
	"github.com/soocke/image-splitter-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions wired to the toolbar.
type Handlers struct {
	Paste   func()
	Capture func()
	Add     func()
	Split   func()
	Reset   func()
	Replay  func()
	Exit    func()
}

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	ConfigPanel ConfigPanel
	canvas      *canvasView

	// Widgets
	StatusLabel *TLabelWidget
	pending     int
	gallery     int
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout and binds Ctrl+V to the paste handler.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	theme.InitStyles()

	// Row 0: toolbar
	btnFrame := Frame()
	Grid(btnFrame, Row(0), Column(0), Columnspan(3), Sticky("we"), Padx("0.3m"), Pady("0.3m"))
	buttons := []struct {
		label, style string
		fn           func()
	}{
		{"Paste image (Ctrl+V)", theme.StylePrimaryButton, h.Paste},
		{"Capture screen", theme.StylePrimaryButton, h.Capture},
		{"Add image", theme.StylePrimaryButton, h.Add},
		{"Split images", theme.StylePrimaryButton, h.Split},
		{"Reset", theme.StyleDangerButton, h.Reset},
		{"Replay", theme.StylePrimaryButton, h.Replay},
		{"Exit", theme.StyleDangerButton, h.Exit},
	}
	for i, b := range buttons {
		fn := b.fn
		if fn == nil {
			fn = func() {}
		}
		btn := TButton(Style(b.style), Txt(b.label), Command(fn))
		Grid(btn, In(btnFrame), Row(0), Column(i), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	}
	if h.Paste != nil {
		Bind(App, "<Control-v>", Command(h.Paste))
	}

	// Row 1: preview | pending list | config
	previewFrame := Frame()
	Grid(previewFrame, Row(1), Column(0), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	pendingFrame := Frame(Borderwidth(1), Relief("groove"))
	Grid(pendingFrame, Row(1), Column(1), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	configFrame := Frame()
	Grid(configFrame, Row(1), Column(2), Sticky("ne"), Padx("0.4m"), Pady("0.4m"))
	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger)
	rv.ConfigPanel.Build(configFrame)

	// Row 2: status, Row 3: gallery
	rv.StatusLabel = TLabel(Style(theme.StyleStatusLabel), Txt(rv.statusText()))
	Grid(rv.StatusLabel, Row(2), Column(0), Columnspan(3), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	galleryFrame := Frame()
	Grid(galleryFrame, Row(3), Column(0), Columnspan(3), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))

	columns := 3
	if rv.cfg != nil {
		columns = rv.cfg.GalleryColumns
	}
	rv.canvas = newCanvasView(previewFrame, pendingFrame, galleryFrame, columns)
}

func (rv *RootView) statusText() string {
	return fmt.Sprintf("Pending: %d | Segmented: %d", rv.pending, rv.gallery)
}

func (rv *RootView) refreshStatus() {
	if rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(rv.statusText()))
	}
}

// --- SplitPresenter view contract ---

func (rv *RootView) ShowCurrent(img image.Image) {
	if rv != nil && rv.canvas != nil {
		rv.canvas.ShowCurrent(img)
	}
}

func (rv *RootView) ShowPending(imgs []image.Image) {
	if rv == nil || rv.canvas == nil {
		return
	}
	rv.canvas.ShowPending(imgs)
	rv.pending = len(imgs)
	rv.refreshStatus()
}

func (rv *RootView) ShowGallery(seq []segment.SegmentedImage) {
	if rv == nil || rv.canvas == nil {
		return
	}
	rv.canvas.ShowGallery(seq)
	rv.gallery = len(seq)
	rv.refreshStatus()
}

// --- ReplayPresenter window contract ---

// Hide iconifies the main window and flushes pending events so the target
// application regains focus before the replay blocks the event loop.
func (rv *RootView) Hide() {
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(false)
	}
	WmIconify(App)
	Update()
}

// Show restores the main window after a replay.
func (rv *RootView) Show() {
	WmDeiconify(App)
	if rv != nil && rv.ConfigPanel != nil {
		rv.ConfigPanel.SetEditable(true)
	}
}
