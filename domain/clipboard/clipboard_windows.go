package clipboard

import (
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	cfDIB        = 8
	gmemMoveable = 0x0002
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	procOpenClipboard    = user32.NewProc("OpenClipboard")
	procCloseClipboard   = user32.NewProc("CloseClipboard")
	procEmptyClipboard   = user32.NewProc("EmptyClipboard")
	procSetClipboardData = user32.NewProc("SetClipboardData")
	procGlobalAlloc      = kernel32.NewProc("GlobalAlloc")
	procGlobalFree       = kernel32.NewProc("GlobalFree")
	procGlobalLock       = kernel32.NewProc("GlobalLock")
	procGlobalUnlock     = kernel32.NewProc("GlobalUnlock")
	procRtlMoveMemory    = kernel32.NewProc("RtlMoveMemory")
)

// writeImage places img on the clipboard as CF_DIB. On success the
// clipboard owns the global memory block.
func writeImage(img image.Image) error {
	dib, err := EncodeDIB(img)
	if err != nil {
		return err
	}
	if r, _, callErr := procOpenClipboard.Call(0); r == 0 {
		return fmt.Errorf("clipboard: OpenClipboard: %w", callErr)
	}
	defer procCloseClipboard.Call()

	if r, _, callErr := procEmptyClipboard.Call(); r == 0 {
		return fmt.Errorf("clipboard: EmptyClipboard: %w", callErr)
	}
	hMem, _, callErr := procGlobalAlloc.Call(gmemMoveable, uintptr(len(dib)))
	if hMem == 0 {
		return fmt.Errorf("clipboard: GlobalAlloc %d bytes: %w", len(dib), callErr)
	}
	ptr, _, callErr := procGlobalLock.Call(hMem)
	if ptr == 0 {
		procGlobalFree.Call(hMem)
		return fmt.Errorf("clipboard: GlobalLock: %w", callErr)
	}
	// ptr is foreign memory; copy with the kernel rather than converting it.
	procRtlMoveMemory.Call(ptr, uintptr(unsafe.Pointer(&dib[0])), uintptr(len(dib)))
	procGlobalUnlock.Call(hMem)

	if r, _, callErr := procSetClipboardData.Call(cfDIB, hMem); r == 0 {
		procGlobalFree.Call(hMem)
		return fmt.Errorf("clipboard: SetClipboardData: %w", callErr)
	}
	return nil
}
