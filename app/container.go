package app

import (
	"image"
	"log/slog"

	"github.com/soocke/image-splitter-go/config"
	"github.com/soocke/image-splitter-go/domain/action"
	"github.com/soocke/image-splitter-go/domain/capture"
	"github.com/soocke/image-splitter-go/domain/clipboard"
	"github.com/soocke/image-splitter-go/domain/replay"
	"github.com/soocke/image-splitter-go/ui/model"
	"github.com/soocke/image-splitter-go/ui/presenter"
	"github.com/soocke/image-splitter-go/ui/view"
)

// Container assembles models, services, presenters and the root view.
type AppContainer struct {
	Config   *config.Config
	Logger   *slog.Logger
	Canvas   *model.CanvasModel
	Gallery  *model.GalleryModel
	Driver   *replay.Driver
	RootView *view.RootView
	Dialogs  *view.Dialogs

	// Presenters
	SplitPresenter  *presenter.SplitPresenter
	ReplayPresenter *presenter.ReplayPresenter
}

// BuildContainer constructs all components. No widgets are created here.
func BuildContainer(cfg *config.Config, logger *slog.Logger, cfgPath string) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Canvas = model.NewCanvasModel()
	c.Gallery = model.NewGalleryModel()
	c.Driver = replay.NewDriver(logger, clipboard.NewNative(), action.NewKeyboard())
	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.Dialogs = view.NewDialogs()

	c.SplitPresenter = presenter.NewSplitPresenter(logger, cfg, c.Canvas, c.Gallery, c.RootView, c.Dialogs,
		clipboard.ReadImage,
		func() (image.Image, error) { return capture.Grab() },
	)
	c.ReplayPresenter = presenter.NewReplayPresenter(logger, cfg, c.Gallery, c.Driver, c.RootView, c.Dialogs, action.EscapePressed)
	c.ReplayPresenter.SetForegroundLookup(action.ForegroundWindowTitle)
	c.Driver.AddListener(c.ReplayPresenter.OnState)
	return c
}
