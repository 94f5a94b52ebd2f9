package action

import (
	"errors"
	"strings"
)

// ErrUnsupported is returned by input operations on platforms without a
// simulated-input backend.
var ErrUnsupported = errors.New("action: simulated input not supported on this platform")

// Key names a physical key used by the replay protocol.
type Key string

const (
	KeyCtrl   Key = "ctrl"
	KeyV      Key = "v"
	KeyLeft   Key = "left"
	KeyRight  Key = "right"
	KeyUp     Key = "up"
	KeyDown   Key = "down"
	KeyEscape Key = "esc"
)

// ParseKey converts a key token (e.g. "Esc", "left") into a Key.
// Unknown tokens return false.
func ParseKey(token string) (Key, bool) {
	switch k := Key(strings.ToLower(strings.TrimSpace(token))); k {
	case KeyCtrl, KeyV, KeyLeft, KeyRight, KeyUp, KeyDown, KeyEscape:
		return k, true
	case "escape":
		return KeyEscape, true
	case "control":
		return KeyCtrl, true
	}
	return "", false
}

// Keyboard sends simulated key presses to whichever window has focus.
// The zero value is ready to use. It implements replay.Keyboard.
type Keyboard struct{}

// NewKeyboard returns the platform keyboard.
func NewKeyboard() *Keyboard { return &Keyboard{} }

// Press sends a single key down + key up.
func (k *Keyboard) Press(key Key) error { return pressKey(key) }

// Hotkey holds all keys but the last, taps the last, then releases the
// held keys in reverse order (e.g. Hotkey(KeyCtrl, KeyV) pastes).
func (k *Keyboard) Hotkey(keys ...Key) error {
	if len(keys) == 0 {
		return nil
	}
	return hotkey(keys)
}

// IsKeyDown reports whether key is currently held. It never blocks.
func IsKeyDown(key Key) bool { return keyDown(key) }

// EscapePressed is the cancellation check used during a replay run.
func EscapePressed() bool { return IsKeyDown(KeyEscape) }
