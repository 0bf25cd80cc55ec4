package keyboard

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/pshvedko/synth/note"
	"github.com/pshvedko/synth/synth"
)

func testBoard(t *testing.T) (*Board, *synth.Engine) {
	t.Helper()
	e, err := synth.NewEngine(note.Default(), 8000)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	b := New(e, note.Default(), 750, 228, false)
	b.start = func() error { return nil } // no real audio under test
	return b, e
}

func TestPressSuppressesKeyRepeat(t *testing.T) {
	b, e := testBoard(t)
	for i := 0; i < 5; i++ {
		b.press("z")
	}
	if n := e.Voices(); n != 1 {
		t.Errorf("Voices() = %d after repeated press, want 1", n)
	}
	if !b.pressed["z"] {
		t.Errorf("pressed set lost z")
	}
}

func TestPressReleasePairs(t *testing.T) {
	b, e := testBoard(t)
	b.press("z")
	b.press("s")
	if n := e.Voices(); n != 2 {
		t.Fatalf("Voices() = %d, want 2", n)
	}
	b.release("z")
	b.release("z") // second release of the same gesture is a no-op
	if b.pressed["z"] {
		t.Errorf("z still in pressed set after release")
	}
	if !b.pressed["s"] {
		t.Errorf("s dropped from pressed set by unrelated release")
	}
}

func TestReleaseWithoutPress(t *testing.T) {
	b, e := testBoard(t)
	b.release("z")
	if n := e.Voices(); n != 0 {
		t.Errorf("Voices() = %d, want 0", n)
	}
}

func TestAudioFailureDropsGesture(t *testing.T) {
	b, e := testBoard(t)
	fail := errors.New("no device")
	b.start = func() error { return fail }
	b.press("z")
	if n := e.Voices(); n != 0 {
		t.Errorf("Voices() = %d with audio down, want 0", n)
	}
	if b.pressed["z"] {
		t.Errorf("pressed set recorded a dropped gesture")
	}
	// next gesture retries after the subsystem recovers
	b.start = func() error { return nil }
	b.press("z")
	if n := e.Voices(); n != 1 {
		t.Errorf("Voices() = %d after recovery, want 1", n)
	}
}

func TestMouseLeaveReleasesHeldKey(t *testing.T) {
	b, e := testBoard(t)
	b.mouseTransition(5, b.height-10, true, false)
	if !b.pressed["z"] || b.mouse != "z" {
		t.Fatalf("press on bottom-left key not tracked: pressed=%v mouse=%q", b.pressed, b.mouse)
	}
	// cursor drifts into the readout band with the button still down
	b.mouseTransition(5, 5, false, false)
	if b.pressed["z"] {
		t.Errorf("z still held after the cursor left the key")
	}
	if b.mouse != "" {
		t.Errorf("mouse still tracking %q after leave", b.mouse)
	}
	if n := e.Voices(); n != 1 {
		t.Errorf("Voices() = %d, want 1 releasing voice", n)
	}
}

func TestMouseSlideOntoAnotherKey(t *testing.T) {
	b, _ := testBoard(t)
	b.mouseTransition(5, b.height-10, true, false)
	// slide to the second white key while held: the first note ends,
	// the second needs its own press
	white := 0
	for _, e := range b.table.Entries() {
		if !e.Accidental {
			white++
		}
	}
	ww := b.width / white
	b.mouseTransition(ww+ww/2, b.height-10, false, false)
	if b.pressed["z"] {
		t.Errorf("z still held after sliding off it")
	}
	if b.pressed["x"] {
		t.Errorf("slide started x without a button press")
	}
	if b.mouse != "" {
		t.Errorf("mouse still tracking %q after slide", b.mouse)
	}
}

func TestMouseButtonUpReleasesKey(t *testing.T) {
	b, _ := testBoard(t)
	b.mouseTransition(5, b.height-10, true, false)
	b.mouseTransition(5, b.height-10, false, true)
	if b.pressed["z"] || b.mouse != "" {
		t.Errorf("z not released on button up: pressed=%v mouse=%q", b.pressed["z"], b.mouse)
	}
}

func TestMousePressOutsideKeys(t *testing.T) {
	b, e := testBoard(t)
	b.mouseTransition(5, 5, true, false)
	if b.mouse != "" || len(b.pressed) != 0 || e.Voices() != 0 {
		t.Errorf("press in the readout band started a note: mouse=%q pressed=%v", b.mouse, b.pressed)
	}
}

func TestSymbolKey(t *testing.T) {
	tests := []struct {
		symbol string
		key    ebiten.Key
		ok     bool
	}{
		{"z", ebiten.KeyZ, true},
		{"a", ebiten.KeyA, true},
		{"2", ebiten.KeyDigit2, true},
		{"", 0, false},
		{"zz", 0, false},
		{"?", 0, false},
	}
	for _, tt := range tests {
		key, ok := symbolKey(tt.symbol)
		if ok != tt.ok || (ok && key != tt.key) {
			t.Errorf("symbolKey(%q) = %v, %v, want %v, %v", tt.symbol, key, ok, tt.key, tt.ok)
		}
	}
}

func TestKeyBindingsCoverTable(t *testing.T) {
	b, _ := testBoard(t)
	if len(b.keyFor) != b.table.Len() {
		t.Errorf("keyFor binds %d keys, want %d", len(b.keyFor), b.table.Len())
	}
}

func TestHitWhiteAndBlack(t *testing.T) {
	b, _ := testBoard(t)
	// leftmost white key
	symbol, ok := b.hit(5, b.height-10)
	if !ok || symbol != "z" {
		t.Errorf("hit bottom-left = %q, %v, want z", symbol, ok)
	}
	// first accidental straddles the first two white keys
	white := 0
	for _, e := range b.table.Entries() {
		if !e.Accidental {
			white++
		}
	}
	ww := b.width / white
	symbol, ok = b.hit(ww, labelBand+5)
	if !ok || symbol != "s" {
		t.Errorf("hit first boundary = %q, %v, want s", symbol, ok)
	}
	// above the keys is dead space
	if _, ok = b.hit(5, 5); ok {
		t.Errorf("hit in the readout band found a key")
	}
}

func TestHitOutsideBoard(t *testing.T) {
	b, _ := testBoard(t)
	if _, ok := b.hit(-1, -1); ok {
		t.Errorf("hit outside the board found a key")
	}
	if _, ok := b.hit(b.width+10, b.height+10); ok {
		t.Errorf("hit outside the board found a key")
	}
}
