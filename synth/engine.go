package synth

import (
	"encoding/binary"
	"fmt"
	"io"
	"log"
	"math"
	"sync"

	"github.com/pshvedko/synth/note"
)

const (
	releaseSeconds = 0.1
	bytesPerFrame  = 4 // int16 little-endian, stereo
)

// Engine owns the live voices and the shared effect chain. Note events
// and parameter writes come from the UI side; the audio player pulls the
// mixed signal through Read as int16 little-endian stereo PCM. One lock
// covers both, and no operation blocks: releasing a voice is a
// sample-counted deadline consumed by the render loop.
type Engine struct {
	mu sync.Mutex

	table      *note.Table
	sampleRate float64

	waveform  Waveform
	transpose int

	voices map[string]*Voice
	chain  *Chain

	logf func(format string, args ...any)
}

// NewEngine builds the engine and its effect chain once. A construction
// failure leaves nothing to clean up.
func NewEngine(table *note.Table, sampleRate float64) (*Engine, error) {
	if table == nil || table.Len() == 0 {
		return nil, fmt.Errorf("synth: empty note table")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("synth: sample rate must be > 0: %f", sampleRate)
	}
	chain, err := newChain(sampleRate)
	if err != nil {
		return nil, fmt.Errorf("synth: build effect chain: %w", err)
	}
	return &Engine{
		table:      table,
		sampleRate: sampleRate,
		voices:     map[string]*Voice{},
		chain:      chain,
		logf:       log.Printf,
	}, nil
}

func (e *Engine) SampleRate() float64 {
	return e.sampleRate
}

// NoteOn starts the voice for symbol. Unknown symbols are ignored. A
// voice already sounding or releasing for the same symbol is
// force-stopped first, so the old tail never overlaps the new attack
// and at most one voice per symbol exists.
func (e *Engine) NoteOn(symbol string) {
	entry, ok := e.table.Lookup(symbol)
	if !ok {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if old := e.voices[symbol]; old != nil {
		e.retire(old)
		delete(e.voices, symbol)
	}
	frequency := entry.Frequency * math.Exp2(float64(e.transpose)/12)
	e.voices[symbol] = newVoice(symbol, frequency, e.waveform, e.sampleRate)
}

// NoteOff moves the voice for symbol into its release stage; the render
// loop removes it once the fall-out completes. Without an active voice
// this is a no-op.
func (e *Engine) NoteOff(symbol string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v := e.voices[symbol]
	if v == nil {
		return
	}
	v.release(int(releaseSeconds * e.sampleRate))
}

// retire stops a voice immediately. Stopping a voice that already
// stopped is recovered here: logged, never propagated.
func (e *Engine) retire(v *Voice) {
	if !v.stop() {
		e.logf("synth: voice %q already stopped", v.Symbol)
	}
}

// ActiveSymbols reports the symbols with a sounding or releasing voice,
// for key highlighting.
func (e *Engine) ActiveSymbols() map[string]bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	active := make(map[string]bool, len(e.voices))
	for symbol, v := range e.voices {
		if !v.stopped {
			active[symbol] = true
		}
	}
	return active
}

// Voices reports the number of live voices, sounding or releasing.
func (e *Engine) Voices() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, v := range e.voices {
		if !v.stopped {
			n++
		}
	}
	return n
}

// SetWaveform selects the oscillator shape of future voices. Values
// outside the known set are ignored.
func (e *Engine) SetWaveform(w Waveform) {
	if w < Sine || w > Triangle {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.waveform = w
}

func (e *Engine) Waveform() Waveform {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.waveform
}

// SetTranspose shifts future voices by semitones, clamped to [-12, 12].
func (e *Engine) SetTranspose(semitones int) {
	if semitones < -12 {
		semitones = -12
	}
	if semitones > 12 {
		semitones = 12
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.transpose = semitones
}

func (e *Engine) Transpose() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.transpose
}

func (e *Engine) SetDelayTime(seconds float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.chain.setDelayTime(seconds); err != nil {
		e.logf("synth: set delay time: %v", err)
	}
}

func (e *Engine) DelayTime() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chain.delay.Time()
}

func (e *Engine) SetFeedback(gain float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.chain.setFeedback(gain); err != nil {
		e.logf("synth: set feedback: %v", err)
	}
}

func (e *Engine) Feedback() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chain.delay.Feedback()
}

func (e *Engine) SetReverbMix(level float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.chain.setReverbMix(level)
}

func (e *Engine) ReverbMix() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chain.wet.target
}

func (e *Engine) SetMasterGain(level float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.chain.setMasterGain(level)
}

func (e *Engine) MasterGain() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.chain.master.target
}

// Read renders len(b)/4 stereo frames; with no live voices it streams
// the chain tail and then silence. A non-empty buffer shorter than one
// frame cannot progress and reports io.ErrShortBuffer rather than a
// zero-byte nil return.
func (e *Engine) Read(b []byte) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := len(b) / bytesPerFrame * bytesPerFrame
	if n == 0 && len(b) > 0 {
		return 0, io.ErrShortBuffer
	}
	for i := 0; i < n; i += bytesPerFrame {
		l, r := e.renderFrame()
		binary.LittleEndian.PutUint16(b[i:i+2], uint16(int16(l*math.MaxInt16)))
		binary.LittleEndian.PutUint16(b[i+2:i+4], uint16(int16(r*math.MaxInt16)))
	}
	return n, nil
}

// renderFrame mixes every live voice, sweeps out the ones whose release
// just completed and runs the sum through the chain.
func (e *Engine) renderFrame() (float64, float64) {
	var sum float64
	for symbol, v := range e.voices {
		sum += v.next()
		if v.stopped {
			delete(e.voices, symbol)
		}
	}
	return e.chain.process(sum)
}
