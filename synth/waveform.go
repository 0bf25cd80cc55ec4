package synth

import (
	"fmt"
	"math"
)

// Waveform selects the oscillator shape of newly created voices.
type Waveform int

const (
	Sine Waveform = iota
	Square
	Sawtooth
	Triangle
)

func (w Waveform) String() string {
	switch w {
	case Sine:
		return "sine"
	case Square:
		return "square"
	case Sawtooth:
		return "sawtooth"
	case Triangle:
		return "triangle"
	}
	return fmt.Sprintf("waveform(%d)", int(w))
}

func ParseWaveform(s string) (Waveform, error) {
	for _, w := range []Waveform{Sine, Square, Sawtooth, Triangle} {
		if w.String() == s {
			return w, nil
		}
	}
	return 0, fmt.Errorf("unknown waveform %q", s)
}

// sample evaluates the waveform at phase, phase in [0, 2π).
func (w Waveform) sample(phase float64) float64 {
	switch w {
	case Square:
		if phase < math.Pi {
			return 1
		}
		return -1
	case Sawtooth:
		return phase/math.Pi - 1
	case Triangle:
		return 2*math.Abs(2*(phase/(2*math.Pi))-1) - 1
	}
	return math.Sin(phase)
}
