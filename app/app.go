package app

import (
	"fmt"
	"log/slog"

	"github.com/soocke/image-splitter-go/config"
	"github.com/soocke/image-splitter-go/domain/clipboard"
	"github.com/soocke/image-splitter-go/ui/view"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

type app struct {
	container *AppContainer
	logger    *slog.Logger
	width     int
	height    int
}

// NewApp configures the main window and builds the component container.
func NewApp(title string, width, height int, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	a := &app{
		container: BuildContainer(cfg, logger, cfgPath),
		logger:    logger,
		width:     width,
		height:    height,
	}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", width, height))
	return a
}

// Start builds the layout and runs the Tk event loop until the window closes.
func (a *app) Start() {
	if err := clipboard.Init(); err != nil && a.logger != nil {
		a.logger.Warn("clipboard unavailable", "error", err)
	}
	c := a.container
	c.RootView.Build(a.handlers())
	if a.logger != nil {
		a.logger.Info("ui started", "width", a.width, "height", a.height)
	}
	App.Wait()
}

func (a *app) handlers() view.Handlers {
	sp, rp := a.container.SplitPresenter, a.container.ReplayPresenter
	return view.Handlers{
		Paste:   sp.Paste,
		Capture: sp.CaptureScreen,
		Add:     sp.Add,
		Split:   sp.Split,
		Reset:   sp.Reset,
		Replay:  rp.Replay,
		Exit:    a.exitHandler,
	}
}

func (a *app) exitHandler() {
	if a.container.ReplayPresenter.Running() {
		return
	}
	Destroy(App)
}
