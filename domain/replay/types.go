package replay

import (
	"image"
	"time"

	"github.com/soocke/image-splitter-go/config"
	"github.com/soocke/image-splitter-go/domain/action"
)

// State enumerates the phases of one replay run.
type State int

const (
	StateIdle State = iota
	StateCountdown
	StateCopy
	StatePaste
	StateAdvance
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCountdown:
		return "countdown"
	case StateCopy:
		return "copy"
	case StatePaste:
		return "paste"
	case StateAdvance:
		return "advance"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of a run.
type Outcome int

const (
	NoOp Outcome = iota
	Completed
	Cancelled
	Failed
)

func (o Outcome) String() string {
	switch o {
	case NoOp:
		return "noop"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result reports how a run ended and how many steps fully finished.
type Result struct {
	Outcome   Outcome
	Completed int
	Total     int
}

// ImageClipboard writes a bitmap onto the OS clipboard.
type ImageClipboard interface {
	WriteImage(img image.Image) error
}

// Keyboard sends simulated input to the focused application.
type Keyboard interface {
	Hotkey(keys ...action.Key) error
	Press(key action.Key) error
}

// StateListener is called on each state transition, on the replay goroutine.
type StateListener func(prev, next State, step int)

// Options controls grid shape and timing.
type Options struct {
	GridWidth  int
	StartDelay time.Duration
	StepDelay  time.Duration
}

// DefaultOptions returns a 3-wide grid, 3s countdown and 500ms step delay.
func DefaultOptions() Options { return OptionsFromConfig(nil) }

// OptionsFromConfig maps configuration onto Options. A nil cfg yields defaults.
func OptionsFromConfig(cfg *config.Config) Options {
	var local config.Config
	if cfg == nil {
		local = *config.DefaultConfig()
	} else {
		local = *cfg
	}
	_ = local.Validate()
	return Options{
		GridWidth:  local.GridWidth,
		StartDelay: time.Duration(local.StartDelayMs) * time.Millisecond,
		StepDelay:  time.Duration(local.StepDelayMs) * time.Millisecond,
	}
}
