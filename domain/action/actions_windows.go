package action

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32              = windows.NewLazySystemDLL("user32.dll")
	procKeybdEvent      = user32.NewProc("keybd_event")
	procGetAsyncKey     = user32.NewProc("GetAsyncKeyState")
	procGetForeground   = user32.NewProc("GetForegroundWindow")
	procGetWindowTextW  = user32.NewProc("GetWindowTextW")
	keyPressDuration    = 40 * time.Millisecond
	keyEventExtendedKey = uintptr(0x0001)
	keyEventKeyUp       = uintptr(0x0002)
)

// virtual-key codes
var vkCodes = map[Key]byte{
	KeyCtrl:   0x11,
	KeyV:      0x56,
	KeyLeft:   0x25,
	KeyUp:     0x26,
	KeyRight:  0x27,
	KeyDown:   0x28,
	KeyEscape: 0x1B,
}

// Arrow keys live on the extended keypad; without the flag some targets
// see numpad digits instead.
func extended(key Key) bool {
	switch key {
	case KeyLeft, KeyRight, KeyUp, KeyDown:
		return true
	}
	return false
}

func vk(key Key) (byte, error) {
	code, ok := vkCodes[key]
	if !ok {
		return 0, fmt.Errorf("action: unknown key %q", key)
	}
	return code, nil
}

func keyEvent(key Key, up bool) error {
	code, err := vk(key)
	if err != nil {
		return err
	}
	var flags uintptr
	if extended(key) {
		flags |= keyEventExtendedKey
	}
	if up {
		flags |= keyEventKeyUp
	}
	if err := procKeybdEvent.Find(); err != nil {
		return err
	}
	_, _, _ = procKeybdEvent.Call(uintptr(code), 0, flags, 0)
	return nil
}

// pressKey sends a key down followed by a key up using keybd_event.
func pressKey(key Key) error {
	if err := keyEvent(key, false); err != nil {
		return err
	}
	// small sleep to emulate human press duration
	time.Sleep(keyPressDuration)
	return keyEvent(key, true)
}

func hotkey(keys []Key) error {
	held := keys[:len(keys)-1]
	for i, k := range held {
		if err := keyEvent(k, false); err != nil {
			for j := i - 1; j >= 0; j-- {
				_ = keyEvent(held[j], true)
			}
			return err
		}
	}
	err := pressKey(keys[len(keys)-1])
	for j := len(held) - 1; j >= 0; j-- {
		if uerr := keyEvent(held[j], true); err == nil {
			err = uerr
		}
	}
	return err
}

// keyDown queries GetAsyncKeyState; the high bit marks a held key.
func keyDown(key Key) bool {
	code, err := vk(key)
	if err != nil {
		return false
	}
	r, _, _ := procGetAsyncKey.Call(uintptr(code))
	return r&0x8000 != 0
}

// ForegroundWindowTitle returns the title of the current foreground window.
// If no foreground window is available an error is returned.
func ForegroundWindowTitle() (string, error) {
	hwnd, _, _ := procGetForeground.Call()
	if hwnd == 0 {
		return "", errors.New("no foreground window")
	}
	const maxChars = 256
	buf := make([]uint16, maxChars)
	r, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if r == 0 {
		return "", nil
	}
	end := int(r)
	for i, v := range buf[:end] {
		if v == 0 {
			end = i
			break
		}
	}
	return strings.TrimSpace(string(utf16.Decode(buf[:end]))), nil
}
