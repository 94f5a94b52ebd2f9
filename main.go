package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/soocke/image-splitter-go/app"
	"github.com/soocke/image-splitter-go/config"
	"github.com/soocke/image-splitter-go/headless"
)

const (
	flagConfig = "config"
	flagDebug  = "debug"

	defaultConfigPath = "image-splitter.json"
)

func main() {
	cliApp := &cli.App{
		Name:  "image-splitter",
		Usage: "split a canvas of images into pieces and paste them into a grid",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagConfig,
				Value: defaultConfigPath,
				Usage: "path of the JSON config file",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "enable debug logging",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, logger := setup(c, os.Stdout)
			app.NewApp("Image Splitter", 1280, 900, cfg, c.String(flagConfig), logger).Start()
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "segment",
				Usage:     "print the regions found in an image",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					cfg, logger := setup(c, os.Stderr)
					if c.Args().Len() != 1 {
						return cli.Exit("segment requires exactly one FILE argument", 2)
					}
					r := &headless.Runner{Out: c.App.Writer, Config: cfg, Logger: logger}
					return r.Segment(c.Args().First())
				},
			},
			{
				Name:      "replay",
				Usage:     "split an image and paste the pieces into the focused window",
				ArgsUsage: "FILE",
				Action: func(c *cli.Context) error {
					cfg, logger := setup(c, os.Stderr)
					if c.Args().Len() != 1 {
						return cli.Exit("replay requires exactly one FILE argument", 2)
					}
					ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
					defer stop()
					r := &headless.Runner{Out: c.App.Writer, Config: cfg, Logger: logger}
					return r.Replay(ctx, c.Args().First())
				},
			},
		},
	}
	if err := cliApp.RunContext(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config and builds the logger. A missing config file yields
// defaults; a malformed one is reported and defaults are used.
func setup(c *cli.Context, logOut io.Writer) (*config.Config, *slog.Logger) {
	path := c.String(flagConfig)
	cfg, loadErr := config.Load(path)
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	level := slog.LevelInfo
	if c.Bool(flagDebug) || cfg.Debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(logOut, level)
	if loadErr != nil {
		logger.Warn("config load failed, using defaults", "path", path, "error", loadErr)
	}
	return cfg, logger
}
