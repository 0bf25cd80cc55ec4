package keyboard

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/pshvedko/synth/synth"
)

// symbolKey maps a one-character table symbol to its physical key.
func symbolKey(symbol string) (ebiten.Key, bool) {
	if len(symbol) != 1 {
		return 0, false
	}
	c := symbol[0]
	switch {
	case c >= 'a' && c <= 'z':
		return ebiten.KeyA + ebiten.Key(c-'a'), true
	case c >= '0' && c <= '9':
		return ebiten.KeyDigit0 + ebiten.Key(c-'0'), true
	}
	return 0, false
}

// pollKeys edge-detects the note keys. OS key repeat shows up as held,
// not just-pressed, so a held key fires exactly one note-on.
func (b *Board) pollKeys() {
	for key, symbol := range b.keyFor {
		if inpututil.IsKeyJustPressed(key) {
			b.press(symbol)
		}
		if inpututil.IsKeyJustReleased(key) {
			b.release(symbol)
		}
	}
}

// pollMouse tracks at most one mouse-held key.
func (b *Board) pollMouse() {
	x, y := ebiten.CursorPosition()
	b.mouseTransition(x, y,
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft))
}

// mouseTransition applies one frame of cursor state to the mouse-held
// key. Moving off the key while the button is down ends the note, so it
// cannot stick.
func (b *Board) mouseTransition(x, y int, justPressed, justReleased bool) {
	if justPressed {
		if symbol, ok := b.hit(x, y); ok {
			b.mouse = symbol
			b.press(symbol)
		}
	}
	if b.mouse == "" {
		return
	}
	symbol, ok := b.hit(x, y)
	if justReleased || !ok || symbol != b.mouse {
		b.release(b.mouse)
		b.mouse = ""
	}
}

// pollTouch keeps a symbol per touch ID; begin and end are 1:1 with
// note on/off.
func (b *Board) pollTouch() {
	b.touchIDs = inpututil.AppendJustPressedTouchIDs(b.touchIDs[:0])
	for _, id := range b.touchIDs {
		x, y := ebiten.TouchPosition(id)
		if symbol, ok := b.hit(x, y); ok {
			b.touch[id] = symbol
			b.press(symbol)
		}
	}
	for id, symbol := range b.touch {
		if inpututil.IsTouchJustReleased(id) {
			b.release(symbol)
			delete(b.touch, id)
		}
	}
}

// pollControls drives the parameter surface from the keys the note map
// leaves free.
func (b *Board) pollControls() {
	e := b.engine
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		e.SetWaveform(synth.Waveform((int(e.Waveform()) + 1) % 4))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) {
		e.SetTranspose(e.Transpose() + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) {
		e.SetTranspose(e.Transpose() - 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		e.SetDelayTime(e.DelayTime() - 0.05)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		e.SetDelayTime(e.DelayTime() + 0.05)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		e.SetFeedback(e.Feedback() - 0.05)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF4) {
		e.SetFeedback(e.Feedback() + 0.05)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		e.SetReverbMix(e.ReverbMix() - 0.05)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF6) {
		e.SetReverbMix(e.ReverbMix() + 0.05)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF7) {
		e.SetMasterGain(e.MasterGain() - 0.05)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF8) {
		e.SetMasterGain(e.MasterGain() + 0.05)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
}
