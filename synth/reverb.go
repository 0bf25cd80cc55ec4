package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-dsp/dsp/conv"
)

const (
	irSeconds = 3.0
	irDecay   = 0.5

	// partition orders for the long-IR convolution;
	// latency is 1<<convMinOrder samples
	convMinOrder = 7
	convMaxOrder = 13
)

// reverb convolves the chain input against a fixed decaying-noise
// impulse response, one convolver per output channel.
type reverb struct {
	left  *conv.PartitionedConvolution
	right *conv.PartitionedConvolution

	in   [1]float64
	outL [1]float64
	outR [1]float64
}

func newReverb(sampleRate float64) (*reverb, error) {
	left, err := conv.NewPartitionedConvolution(impulseResponse(sampleRate), convMinOrder, convMaxOrder)
	if err != nil {
		return nil, fmt.Errorf("reverb left channel: %w", err)
	}
	right, err := conv.NewPartitionedConvolution(impulseResponse(sampleRate), convMinOrder, convMaxOrder)
	if err != nil {
		return nil, fmt.Errorf("reverb right channel: %w", err)
	}
	return &reverb{left: left, right: right}, nil
}

// process feeds one input sample and returns the wet stereo pair,
// delayed by the convolver latency.
func (r *reverb) process(x float64) (float64, float64) {
	r.in[0] = x
	if err := r.left.ProcessBlock(r.in[:], r.outL[:]); err != nil {
		return 0, 0
	}
	if err := r.right.ProcessBlock(r.in[:], r.outR[:]); err != nil {
		return 0, 0
	}
	return r.outL[0], r.outR[0]
}

// impulseResponse builds one channel of the reverb kernel: uniform noise
// in [-1, 1] under an exponential decay with a 0.5 s time constant,
// irSeconds long.
func impulseResponse(sampleRate float64) []float64 {
	ir := make([]float64, int(sampleRate*irSeconds))
	for i := range ir {
		ir[i] = (rand.Float64()*2 - 1) * math.Exp(-float64(i)/(sampleRate*irDecay))
	}
	return ir
}
