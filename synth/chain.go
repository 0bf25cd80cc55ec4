package synth

import (
	"github.com/cwbudde/algo-dsp/dsp/effects"
)

const (
	// fixed wet weight of the delay path; the delay unit keeps
	// 1-delayMixWeight of the input on the dry side
	delayMixWeight = 0.35

	minDelaySeconds = 0.001
	maxDelaySeconds = 1.0
	maxFeedback     = 0.9

	defaultDelaySeconds = 0.25
	defaultFeedback     = 0.3
	defaultReverbMix    = 0.25
	defaultMasterGain   = 0.8

	smoothingSeconds = 0.008
)

// Chain is the shared signal path every voice feeds: the dry and delay
// paths handled by a feedback delay, a convolution reverb in parallel,
// and a master gain stage. Built once, lives as long as the engine.
type Chain struct {
	delay  *effects.Delay
	verb   *reverb
	wet    smoothed
	master smoothed
}

func newChain(sampleRate float64) (*Chain, error) {
	d, err := effects.NewDelay(sampleRate)
	if err != nil {
		return nil, err
	}
	if err = d.SetTime(defaultDelaySeconds); err != nil {
		return nil, err
	}
	if err = d.SetFeedback(defaultFeedback); err != nil {
		return nil, err
	}
	if err = d.SetMix(delayMixWeight); err != nil {
		return nil, err
	}
	verb, err := newReverb(sampleRate)
	if err != nil {
		return nil, err
	}
	return &Chain{
		delay:  d,
		verb:   verb,
		wet:    newSmoothed(defaultReverbMix, smoothingSeconds, sampleRate),
		master: newSmoothed(defaultMasterGain, smoothingSeconds, sampleRate),
	}, nil
}

// process runs one mono input sample through the chain and returns the
// stereo output pair in [-1, 1].
func (c *Chain) process(x float64) (float64, float64) {
	dry := c.delay.ProcessSample(x)
	wl, wr := c.verb.process(x)
	w := c.wet.next()
	m := c.master.next()
	return clamp((dry+wl*w)*m, -1, 1), clamp((dry+wr*w)*m, -1, 1)
}

func (c *Chain) setDelayTime(seconds float64) error {
	return c.delay.SetTime(clamp(seconds, minDelaySeconds, maxDelaySeconds))
}

func (c *Chain) setFeedback(gain float64) error {
	return c.delay.SetFeedback(clamp(gain, 0, maxFeedback))
}

func (c *Chain) setReverbMix(level float64) {
	c.wet.set(clamp(level, 0, 1))
}

func (c *Chain) setMasterGain(level float64) {
	c.master.set(clamp(level, 0, 1))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
