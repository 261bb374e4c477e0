// Package audio provides the metronome's synthesized tick
package audio

import (
	"sync"
	"time"

	"github.com/fogleman/ease"
)

const (
	sampleRate   = 44100
	channelCount = 2 // stereo
	bitDepth     = 2 // 16-bit
	frameSize    = channelCount * bitDepth

	// DefaultFrequency is middle C.
	DefaultFrequency = 261.63
	// DefaultRampDuration smooths gain steps so they do not click.
	DefaultRampDuration = 5 * time.Millisecond
)

// ToneOptions configures a Tone. Zero values select the defaults.
type ToneOptions struct {
	Wave         WaveType
	Frequency    float64
	RampDuration time.Duration
	Curve        ease.Function
}

// Tone is a single oscillator that runs continuously. Only its amplitude changes
// after construction: SetGain moves the level toward a target along an easing
// curve, one sample at a time.
type Tone struct {
	mu        sync.Mutex
	wave      WaveType
	frequency float64
	phase     float64

	level   float64 // current amplitude
	from    float64
	target  float64
	rampPos int
	rampLen int
	curve   ease.Function
}

// NewTone creates a silent tone. It does not touch the audio device, see Output.
func NewTone(opts ToneOptions) *Tone {
	if opts.Frequency <= 0 {
		opts.Frequency = DefaultFrequency
	}
	if opts.RampDuration < 0 {
		opts.RampDuration = 0
	} else if opts.RampDuration == 0 {
		opts.RampDuration = DefaultRampDuration
	}
	if opts.Curve == nil {
		opts.Curve = ease.InOutQuad
	}

	return &Tone{
		wave:      opts.Wave,
		frequency: opts.Frequency,
		rampLen:   int(opts.RampDuration.Seconds() * sampleRate),
		curve:     opts.Curve,
	}
}

// SetGain sets the target amplitude, clamped to [0, 1].
func (t *Tone) SetGain(v float64) {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if v == t.target {
		return
	}
	t.from = t.level
	t.target = v
	t.rampPos = 0
	if t.rampLen == 0 {
		t.level = v
	}
}

// Gain returns the amplitude currently being rendered.
func (t *Tone) Gain() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.level
}

// Target returns the amplitude the tone is moving toward.
func (t *Tone) Target() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.target
}

// Frequency returns the oscillator frequency in Hz.
func (t *Tone) Frequency() float64 {
	return t.frequency
}

// Read renders interleaved stereo signed 16-bit little-endian samples. It never
// returns an error, so the player keeps pulling for the lifetime of the program.
func (t *Tone) Read(buf []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	numSamples := len(buf) / frameSize
	for i := 0; i < numSamples; i++ {
		t.stepRamp()

		sample := generateWave(t.wave, t.phase) * t.level

		// Advance phase
		t.phase += t.frequency / sampleRate
		if t.phase >= 1.0 {
			t.phase -= 1.0
		}

		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}

		// Convert to 16-bit signed integer
		sampleInt := int16(sample * 32767)

		// Write stereo samples (same for L and R)
		idx := i * frameSize
		buf[idx] = byte(sampleInt)
		buf[idx+1] = byte(sampleInt >> 8)
		buf[idx+2] = byte(sampleInt)
		buf[idx+3] = byte(sampleInt >> 8)
	}

	return numSamples * frameSize, nil
}

func (t *Tone) stepRamp() {
	if t.level == t.target {
		return
	}
	t.rampPos++
	if t.rampPos >= t.rampLen {
		t.level = t.target
		return
	}
	progress := t.curve(float64(t.rampPos) / float64(t.rampLen))
	t.level = t.from + (t.target-t.from)*progress
}
