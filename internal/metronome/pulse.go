package metronome

import (
	"sync"
	"time"
)

const (
	// PulseGain is the amplitude of the tone while a beat sounds.
	PulseGain = 0.4
	// PulseDuration is how long the tone and the hit effect last.
	PulseDuration = 100 * time.Millisecond
)

// Gain is an amplitude control, typically the synthesizer's output level.
type Gain interface {
	SetGain(v float64)
}

// GainFunc adapts a function to Gain.
type GainFunc func(v float64)

func (f GainFunc) SetGain(v float64) { f(v) }

// Highlighter shows or hides the visual hit effect.
type Highlighter interface {
	SetHighlight(on bool)
}

// HighlightFunc adapts a function to Highlighter.
type HighlightFunc func(on bool)

func (f HighlightFunc) SetHighlight(on bool) { f(on) }

// PulseOptions tunes a Pulse. Zero values select the package defaults.
type PulseOptions struct {
	Gain     float64
	Duration time.Duration
}

// Pulse is the audible and visual effect of one beat. Fire raises the gain and the
// highlight together, and both are cleared together one Duration later.
type Pulse struct {
	mu       sync.Mutex
	clock    Clock
	gain     Gain
	lights   []Highlighter
	level    float64
	duration time.Duration
	fired    uint64
}

// NewPulse wires a pulse to its outputs. gain may be nil when audio is muted.
func NewPulse(c Clock, gain Gain, opts PulseOptions, lights ...Highlighter) *Pulse {
	if opts.Gain <= 0 {
		opts.Gain = PulseGain
	}
	if opts.Duration <= 0 {
		opts.Duration = PulseDuration
	}
	return &Pulse{
		clock:    c,
		gain:     gain,
		lights:   lights,
		level:    opts.Gain,
		duration: opts.Duration,
	}
}

// Fire starts a pulse. The clear is always scheduled and never cancelled, so an
// earlier pulse may end a later one early when beats are closer than Duration.
func (p *Pulse) Fire() {
	p.mu.Lock()
	p.fired++
	p.set(p.level, true)
	p.mu.Unlock()

	p.clock.AfterFunc(p.duration, p.clear)
}

// OnBeat lets a Pulse be handed straight to NewScheduler.
func (p *Pulse) OnBeat(Beat) {
	p.Fire()
}

// Fired returns the number of pulses started so far.
func (p *Pulse) Fired() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fired
}

func (p *Pulse) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.set(0, false)
}

func (p *Pulse) set(level float64, on bool) {
	if p.gain != nil {
		p.gain.SetGain(level)
	}
	for _, l := range p.lights {
		l.SetHighlight(on)
	}
}
