package synth

import "math"

const (
	attackLevel  = 0.5
	releaseFloor = 0.001
)

// Voice is one sounding note: a phase-accumulator oscillator and its
// envelope stage. Voices are owned by the Engine and touched only under
// its lock.
type Voice struct {
	Symbol    string
	Frequency float64
	Waveform  Waveform

	phase     float64
	phaseStep float64

	level      float64
	multiplier float64
	releasing  bool
	remaining  int
	stopped    bool
}

func newVoice(symbol string, frequency float64, w Waveform, sampleRate float64) *Voice {
	return &Voice{
		Symbol:     symbol,
		Frequency:  frequency,
		Waveform:   w,
		phaseStep:  2 * math.Pi * frequency / sampleRate,
		level:      attackLevel,
		multiplier: 1,
	}
}

// release schedules an exponential fall from the current level to the
// release floor over n samples. Releasing an already releasing or
// stopped voice does nothing.
func (v *Voice) release(n int) {
	if v.releasing || v.stopped {
		return
	}
	if n < 1 {
		n = 1
	}
	v.releasing = true
	v.remaining = n
	v.multiplier = levelMultiplier(v.level, releaseFloor, float64(n))
}

func (v *Voice) Releasing() bool {
	return v.releasing
}

// stop retires the oscillator immediately. The second stop of a voice
// reports false so the caller can log it instead of crashing.
func (v *Voice) stop() bool {
	if v.stopped {
		return false
	}
	v.stopped = true
	return true
}

// next computes one output sample and advances the envelope. A stopped
// voice is silent.
func (v *Voice) next() float64 {
	if v.stopped {
		return 0
	}
	s := v.Waveform.sample(v.phase) * v.level
	v.phase += v.phaseStep
	if v.phase >= 2*math.Pi {
		v.phase -= 2 * math.Pi
	}
	if v.releasing {
		v.level *= v.multiplier
		v.remaining--
		if v.remaining <= 0 {
			v.stopped = true
		}
	}
	return s
}

// levelMultiplier is the per-sample factor that carries start to target
// in frames steps along an exponential curve. Over very few frames the
// linearized factor can cross zero, so it is floored there: the level
// must never change sign.
func levelMultiplier(start, target, frames float64) float64 {
	if start < releaseFloor {
		start = releaseFloor
	}
	if frames < 1 {
		frames = 1
	}
	m := 1 + (math.Log(target)-math.Log(start))/frames
	if m < 0 {
		m = 0
	}
	return m
}
