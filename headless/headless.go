// Package headless implements the terminal subcommands: printing the regions
// of an image and replaying it without the Tk window.
package headless

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/soocke/image-splitter-go/config"
	"github.com/soocke/image-splitter-go/domain/action"
	"github.com/soocke/image-splitter-go/domain/capture"
	"github.com/soocke/image-splitter-go/domain/clipboard"
	"github.com/soocke/image-splitter-go/domain/replay"
	"github.com/soocke/image-splitter-go/domain/segment"
	"github.com/soocke/image-splitter-go/ui/presenter"
)

// Replayer runs a blocking replay. *replay.Driver satisfies it.
type Replayer interface {
	Replay(seq []segment.SegmentedImage, opts replay.Options, confirm func() bool, cancelRequested func() bool) (replay.Result, error)
}

// Runner executes subcommands. Zero-valued hooks fall back to the native
// clipboard and keyboard, a huh prompt and the Escape key.
type Runner struct {
	Out    io.Writer
	Config *config.Config
	Logger *slog.Logger

	Driver  Replayer
	Confirm func(images int, instructions string) bool
	Escape  func() bool
}

// DecodeFile reads a PNG, JPEG or BMP image from disk.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := capture.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// tableRows converts regions into table rows in emission order.
func tableRows(regions []segment.Region, rowBucket int) []table.Row {
	rows := make([]table.Row, len(regions))
	for i, r := range regions {
		rows[i] = table.Row{i + 1, r.X, r.Y, r.Width, r.Height, fmt.Sprintf("%.0f", r.Area), r.Row(rowBucket)}
	}
	return rows
}

// RegionTable renders regions in emission order.
func RegionTable(regions []segment.Region, rowBucket int) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "X", "Y", "Width", "Height", "Area", "Row"})
	t.AppendRows(tableRows(regions, rowBucket))
	t.AppendFooter(table.Row{"", "", "", "", "", "Total", len(regions)})
	return t.Render()
}

// Segment prints the region table for the image at path.
func (r *Runner) Segment(path string) error {
	img, err := DecodeFile(path)
	if err != nil {
		return err
	}
	opts := segment.OptionsFromConfig(r.Config)
	regions, err := segment.Regions(img, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.Out, RegionTable(regions, opts.RowBucket))
	return err
}

// Replay segments the image at path and pastes the pieces into the focused
// application. ctx cancellation (SIGINT) and Escape both stop it.
func (r *Runner) Replay(ctx context.Context, path string) error {
	img, err := DecodeFile(path)
	if err != nil {
		return err
	}
	seq, err := segment.Segment(img, segment.OptionsFromConfig(r.Config))
	if err != nil {
		return err
	}
	if len(seq) == 0 {
		fmt.Fprintln(r.Out, "No images found.")
		return nil
	}
	driver := r.Driver
	if driver == nil {
		if err := clipboard.Init(); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
		driver = replay.NewDriver(r.Logger, clipboard.NewNative(), action.NewKeyboard())
	}
	ask := r.Confirm
	if ask == nil {
		ask = r.prompt
	}
	escape := r.Escape
	if escape == nil {
		escape = action.EscapePressed
	}

	opts := replay.OptionsFromConfig(r.Config)
	confirm := func() bool { return ask(len(seq), presenter.Instructions(opts.StartDelay)) }
	cancel := func() bool { return ctx.Err() != nil || escape() }

	res, err := driver.Replay(seq, opts, confirm, cancel)
	switch res.Outcome {
	case replay.NoOp:
		fmt.Fprintln(r.Out, "Replay not started.")
	case replay.Completed:
		fmt.Fprintf(r.Out, "Pasted %d images.\n", res.Completed)
	case replay.Cancelled:
		fmt.Fprintf(r.Out, "Replay stopped after %d of %d images.\n", res.Completed, res.Total)
	}
	return err
}

// prompt asks for confirmation on the terminal.
func (r *Runner) prompt(images int, instructions string) bool {
	ok := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Replay %d images?", images)).
		Description(instructions).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil && !errors.Is(err, huh.ErrUserAborted) && r.Logger != nil {
		r.Logger.Error("confirm prompt failed", "error", err)
	}
	return err == nil && ok
}
