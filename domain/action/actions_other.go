//go:build !windows

package action

func pressKey(Key) error { return ErrUnsupported }

func hotkey([]Key) error { return ErrUnsupported }

func keyDown(Key) bool { return false }

// ForegroundWindowTitle is only available on Windows.
func ForegroundWindowTitle() (string, error) { return "", ErrUnsupported }
