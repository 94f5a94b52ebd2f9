package replay

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/soocke/image-splitter-go/domain/action"
	"github.com/soocke/image-splitter-go/domain/segment"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

// recorder is a shared call log for the fake clipboard and keyboard.
type recorder struct {
	calls []string
}

type mockClipboard struct {
	rec    *recorder
	writes int
	failOn int // 1-based write that fails; 0 never
}

func (c *mockClipboard) WriteImage(img image.Image) error {
	c.writes++
	if c.failOn == c.writes {
		return errors.New("clipboard locked")
	}
	c.rec.calls = append(c.rec.calls, fmt.Sprintf("copy:%d", img.Bounds().Dx()))
	return nil
}

type mockKeyboard struct {
	rec       *recorder
	pressFail action.Key
}

func (k *mockKeyboard) Hotkey(keys ...action.Key) error {
	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = string(key)
	}
	k.rec.calls = append(k.rec.calls, "hotkey:"+strings.Join(names, "+"))
	return nil
}

func (k *mockKeyboard) Press(key action.Key) error {
	if key == k.pressFail {
		return errors.New("input blocked")
	}
	k.rec.calls = append(k.rec.calls, "press:"+string(key))
	return nil
}

type mockSleep struct{ slept []time.Duration }

func (s *mockSleep) sleep(d time.Duration) { s.slept = append(s.slept, d) }

// newTestDriver returns a driver with recording fakes and no real sleeping.
// Each image is i+1 pixels wide so copy calls identify the item.
func newTestDriver() (*Driver, *recorder, *mockClipboard, *mockKeyboard, *mockSleep) {
	rec := &recorder{}
	clip := &mockClipboard{rec: rec}
	keys := &mockKeyboard{rec: rec}
	s := &mockSleep{}
	d := NewDriver(discardLogger, clip, keys)
	d.SetSleep(s.sleep)
	return d, rec, clip, keys, s
}

func sequence(n int) []segment.SegmentedImage {
	seq := make([]segment.SegmentedImage, n)
	for i := range seq {
		seq[i] = segment.SegmentedImage{Index: i + 1, Image: image.NewRGBA(image.Rect(0, 0, i+1, 1))}
	}
	return seq
}

func yes() bool   { return true }
func never() bool { return false }

// advances extracts the movement keys emitted after each paste.
func advances(calls []string) []string {
	var out []string
	cur := ""
	for _, c := range calls {
		switch {
		case strings.HasPrefix(c, "hotkey:"):
			if cur != "" {
				out = append(out, cur)
			}
			cur = ""
		case strings.HasPrefix(c, "press:"):
			if cur != "" {
				cur += "-"
			}
			cur += strings.TrimPrefix(c, "press:")
		}
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}

func TestReplay_EmptySequenceIsNoOp(t *testing.T) {
	d, rec, _, _, s := newTestDriver()
	asked := false
	res, err := d.Replay(nil, DefaultOptions(), func() bool { asked = true; return true }, never)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Outcome != NoOp || asked || len(rec.calls) != 0 || len(s.slept) != 0 {
		t.Fatalf("expected silent NoOp: res=%+v asked=%v calls=%v slept=%v", res, asked, rec.calls, s.slept)
	}
}

func TestReplay_DeclinedConfirmationIsNoOp(t *testing.T) {
	d, rec, _, _, s := newTestDriver()
	res, err := d.Replay(sequence(3), DefaultOptions(), func() bool { return false }, never)
	if err != nil || res.Outcome != NoOp {
		t.Fatalf("expected NoOp, got %+v err=%v", res, err)
	}
	if len(rec.calls) != 0 || len(s.slept) != 0 {
		t.Fatalf("declined run must not act: calls=%v slept=%v", rec.calls, s.slept)
	}
}

func TestReplay_FiveItemsGridThree(t *testing.T) {
	d, rec, _, _, s := newTestDriver()
	res, err := d.Replay(sequence(5), DefaultOptions(), yes, never)
	if err != nil {
		t.Fatal(err)
	}
	if res.Outcome != Completed || res.Completed != 5 || res.Total != 5 {
		t.Fatalf("unexpected result %+v", res)
	}
	want := []string{"right", "right", "down-left-left", "right", "right"}
	if diff := cmp.Diff(want, advances(rec.calls)); diff != "" {
		t.Fatalf("advance pattern mismatch (-want +got):\n%s", diff)
	}
	if rec.calls[0] != "copy:1" || rec.calls[1] != "hotkey:ctrl+v" {
		t.Fatalf("step must copy then paste, got %v", rec.calls[:2])
	}
	// countdown + two delays per step
	wantSleep := []time.Duration{3 * time.Second}
	for i := 0; i < 5; i++ {
		wantSleep = append(wantSleep, 500*time.Millisecond, 500*time.Millisecond)
	}
	if diff := cmp.Diff(wantSleep, s.slept); diff != "" {
		t.Fatalf("sleep schedule mismatch (-want +got):\n%s", diff)
	}
}

func TestReplay_GridWidths(t *testing.T) {
	tests := []struct {
		grid int
		n    int
		want []string
	}{
		{1, 3, []string{"down", "down", "down"}},
		{2, 4, []string{"right", "down-left", "right", "down-left"}},
		{4, 5, []string{"right", "right", "right", "down-left-left-left", "right"}},
		{0, 2, []string{"down", "down"}}, // clamped to 1
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("grid%d", tc.grid), func(t *testing.T) {
			d, rec, _, _, _ := newTestDriver()
			opts := DefaultOptions()
			opts.GridWidth = tc.grid
			if _, err := d.Replay(sequence(tc.n), opts, yes, never); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, advances(rec.calls)); diff != "" {
				t.Fatalf("advance mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReplay_CancelAfterK(t *testing.T) {
	for k := 1; k < 5; k++ {
		d, rec, clip, _, _ := newTestDriver()
		polls := 0
		cancel := func() bool {
			polls++
			return polls > k // polls 1..k allow steps 1..k
		}
		res, err := d.Replay(sequence(5), DefaultOptions(), yes, cancel)
		if err != nil {
			t.Fatal(err)
		}
		if res.Outcome != Cancelled || res.Completed != k {
			t.Fatalf("k=%d: expected Cancelled with %d completed, got %+v", k, k, res)
		}
		if clip.writes != k {
			t.Fatalf("k=%d: expected %d clipboard writes, got %d", k, k, clip.writes)
		}
		if got := len(advances(rec.calls)); got != k {
			t.Fatalf("k=%d: expected %d advances, got %d (%v)", k, k, got, rec.calls)
		}
		if polls != k+1 {
			t.Fatalf("k=%d: expected %d polls, got %d", k, k+1, polls)
		}
		if d.Current() != StateCancelled {
			t.Fatalf("k=%d: final state %v", k, d.Current())
		}
	}
}

func TestReplay_CancelBeforeFirstStep(t *testing.T) {
	d, rec, _, _, _ := newTestDriver()
	res, err := d.Replay(sequence(2), DefaultOptions(), yes, func() bool { return true })
	if err != nil || res.Outcome != Cancelled || res.Completed != 0 {
		t.Fatalf("expected Cancelled/0, got %+v err=%v", res, err)
	}
	if len(rec.calls) != 0 {
		t.Fatalf("no input expected, got %v", rec.calls)
	}
}

func TestReplay_CopyFailureIsTerminal(t *testing.T) {
	d, rec, clip, _, _ := newTestDriver()
	clip.failOn = 3
	res, err := d.Replay(sequence(5), DefaultOptions(), yes, never)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "step 3 copy") || !strings.Contains(err.Error(), "clipboard locked") {
		t.Fatalf("error should name step and cause: %v", err)
	}
	if res.Outcome != Failed || res.Completed != 2 {
		t.Fatalf("expected Failed after 2 steps, got %+v", res)
	}
	want := []string{
		"copy:1", "hotkey:ctrl+v", "press:right",
		"copy:2", "hotkey:ctrl+v", "press:right",
	}
	if diff := cmp.Diff(want, rec.calls); diff != "" {
		t.Fatalf("no paste/advance may follow a failed copy (-want +got):\n%s", diff)
	}
	if clip.writes != 3 {
		t.Fatalf("copy must not be retried, writes=%d", clip.writes)
	}
}

func TestReplay_KeystrokeFailureIsTerminal(t *testing.T) {
	d, rec, _, keys, _ := newTestDriver()
	keys.pressFail = action.KeyDown
	res, err := d.Replay(sequence(5), DefaultOptions(), yes, never)
	if err == nil || !strings.Contains(err.Error(), "step 3 advance") {
		t.Fatalf("expected advance failure on step 3, got %v", err)
	}
	if res.Outcome != Failed || res.Completed != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if last := rec.calls[len(rec.calls)-1]; last != "hotkey:ctrl+v" {
		t.Fatalf("expected run to stop after step 3 paste, last call %q", last)
	}
}

func TestReplay_NilConfirmCountsAsYes(t *testing.T) {
	d, _, clip, _, _ := newTestDriver()
	res, err := d.Replay(sequence(2), DefaultOptions(), nil, nil)
	if err != nil || res.Outcome != Completed || clip.writes != 2 {
		t.Fatalf("expected completed run, got %+v err=%v writes=%d", res, err, clip.writes)
	}
}

func TestReplay_ListenerSeesStateSequence(t *testing.T) {
	d, _, _, _, _ := newTestDriver()
	var seq []string
	d.AddListener(func(prev, next State, step int) {
		seq = append(seq, fmt.Sprintf("%s@%d", next, step))
	})
	if _, err := d.Replay(sequence(2), DefaultOptions(), yes, never); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"countdown@0",
		"copy@1", "paste@1", "advance@1",
		"copy@2", "paste@2", "advance@2",
		"completed@2",
	}
	if diff := cmp.Diff(want, seq); diff != "" {
		t.Fatalf("state sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestOptionsFromConfig_Defaults(t *testing.T) {
	want := Options{GridWidth: 3, StartDelay: 3 * time.Second, StepDelay: 500 * time.Millisecond}
	if diff := cmp.Diff(want, DefaultOptions()); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}
