package synth

import "math"

// smoothed is a scalar parameter that glides to its target through a
// one-pole ramp, so control writes never step the signal.
type smoothed struct {
	value  float64
	target float64
	coef   float64
}

func newSmoothed(initial, seconds, sampleRate float64) smoothed {
	return smoothed{
		value:  initial,
		target: initial,
		coef:   1 - math.Exp(-1/(seconds*sampleRate)),
	}
}

func (s *smoothed) set(target float64) {
	s.target = target
}

func (s *smoothed) next() float64 {
	s.value += (s.target - s.value) * s.coef
	return s.value
}
