package replay

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/image-splitter-go/domain/action"
	"github.com/soocke/image-splitter-go/domain/segment"
)

// Driver pastes a sequence of images into the focused application, one per
// grid cell, moving the target's cursor with arrow keys between pastes.
// It is blind to the target's real state: the cursor is assumed to move
// exactly as simulated. Not safe for concurrent use; run one replay at a time.
type Driver struct {
	clipboard ImageClipboard
	keys      Keyboard
	logger    *slog.Logger
	sleep     func(time.Duration)
	listeners []StateListener
	state     State
}

// runState is the per-run cursor into the sequence.
type runState struct {
	position  int
	cancelled bool
}

// NewDriver constructs a driver using the given clipboard and keyboard.
func NewDriver(logger *slog.Logger, clipboard ImageClipboard, keys Keyboard) *Driver {
	return &Driver{clipboard: clipboard, keys: keys, logger: logger, sleep: time.Sleep}
}

// SetSleep replaces the blocking delay function (tests).
func (d *Driver) SetSleep(fn func(time.Duration)) {
	if fn == nil {
		fn = time.Sleep
	}
	d.sleep = fn
}

// AddListener registers l for state transitions. Call before Replay.
func (d *Driver) AddListener(l StateListener) {
	if l != nil {
		d.listeners = append(d.listeners, l)
	}
}

// Current returns the state of the last or ongoing run.
func (d *Driver) Current() State { return d.state }

// Replay runs the sequence front to back and blocks until it ends.
//
// An empty sequence, or a false answer from confirm, returns NoOp without
// touching the clipboard or keyboard; a nil confirm counts as yes.
// cancelRequested is polled before every step; once it reports true no
// further input is sent and the result is Cancelled. The first clipboard or
// keystroke failure ends the run as Failed and is returned as the error.
func (d *Driver) Replay(seq []segment.SegmentedImage, opts Options, confirm func() bool, cancelRequested func() bool) (Result, error) {
	res := Result{Outcome: NoOp, Total: len(seq)}
	if len(seq) == 0 {
		return res, nil
	}
	if confirm != nil && !confirm() {
		return res, nil
	}
	grid := opts.GridWidth
	if grid < 1 {
		grid = 1
	}

	d.state = StateIdle
	d.transition(StateCountdown, 0)
	d.sleep(opts.StartDelay)

	run := runState{}
	for run.position < len(seq) {
		step := run.position + 1
		if cancelRequested != nil && cancelRequested() {
			run.cancelled = true
			break
		}

		d.transition(StateCopy, step)
		if err := d.clipboard.WriteImage(seq[run.position].Image); err != nil {
			return d.fail(res, run, step, "copy", err)
		}

		d.transition(StatePaste, step)
		if err := d.keys.Hotkey(action.KeyCtrl, action.KeyV); err != nil {
			return d.fail(res, run, step, "paste", err)
		}
		d.sleep(opts.StepDelay)

		d.transition(StateAdvance, step)
		if err := d.advance(step, grid); err != nil {
			return d.fail(res, run, step, "advance", err)
		}
		d.sleep(opts.StepDelay)

		run.position++
	}

	res.Completed = run.position
	if run.cancelled {
		res.Outcome = Cancelled
		d.transition(StateCancelled, run.position)
	} else {
		res.Outcome = Completed
		d.transition(StateCompleted, run.position)
	}
	d.logFinished(res, nil)
	return res, nil
}

// advance moves the assumed grid cursor after 1-based step: right within a
// row, down then back to column 0 after every grid-th step.
func (d *Driver) advance(step, grid int) error {
	if step%grid != 0 {
		return d.keys.Press(action.KeyRight)
	}
	if err := d.keys.Press(action.KeyDown); err != nil {
		return err
	}
	for i := 0; i < grid-1; i++ {
		if err := d.keys.Press(action.KeyLeft); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) fail(res Result, run runState, step int, phase string, cause error) (Result, error) {
	res.Outcome = Failed
	res.Completed = run.position
	err := fmt.Errorf("replay: step %d %s: %w", step, phase, cause)
	d.transition(StateFailed, step)
	d.logFinished(res, err)
	return res, err
}

func (d *Driver) transition(next State, step int) {
	prev := d.state
	d.state = next
	if d.logger != nil {
		d.logger.Debug("replay state transition", "from", prev.String(), "to", next.String(), "step", step)
	}
	for _, l := range d.listeners {
		l(prev, next, step)
	}
}

func (d *Driver) logFinished(res Result, err error) {
	if d.logger == nil {
		return
	}
	if err != nil {
		d.logger.Error("replay finished", "outcome", res.Outcome.String(), "completed", res.Completed, "total", res.Total, "error", err)
		return
	}
	d.logger.Info("replay finished", "outcome", res.Outcome.String(), "completed", res.Completed, "total", res.Total)
}
