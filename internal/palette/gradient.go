// Package palette builds the tempo color gradient and derives the base and accent
// colors applied to the interface.
package palette

import (
	"errors"
	"fmt"
	"sync"
)

// TableSize holds one sample per integer tempo 0..208.
const TableSize = 209

var (
	ErrInvalidStops    = errors.New("invalid gradient stops")
	ErrInvalidSize     = errors.New("invalid gradient size")
	ErrIndexOutOfRange = errors.New("gradient index out of range")
)

// Stop is a color pinned at a relative offset in [0, 1].
type Stop struct {
	Offset float64
	Color  RGB
}

// DefaultStops runs from a slow indigo to a fast red.
var DefaultStops = []Stop{
	{Offset: 0.002, Color: MustParseHex("#3f51b5")},
	{Offset: 0.217, Color: MustParseHex("#00bcd4")},
	{Offset: 0.506, Color: MustParseHex("#8bc34a")},
	{Offset: 0.735, Color: MustParseHex("#ffc107")},
	{Offset: 1.0, Color: MustParseHex("#f44336")},
}

// Gradient is a precomputed lookup table of linearly interpolated colors.
// It is immutable once built.
type Gradient struct {
	samples []RGB
}

var (
	defaultOnce     sync.Once
	defaultGradient *Gradient
)

// Default returns the process-wide gradient built from DefaultStops. The table is
// computed on first use only.
func Default() *Gradient {
	defaultOnce.Do(func() {
		g, err := NewGradient(DefaultStops, TableSize)
		if err != nil {
			panic(fmt.Sprintf("palette: default gradient: %v", err))
		}
		defaultGradient = g
	})
	return defaultGradient
}

// NewGradient samples stops at size evenly spaced positions, the same way a canvas
// linear gradient fills a size-pixel strip.
func NewGradient(stops []Stop, size int) (*Gradient, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if err := validateStops(stops); err != nil {
		return nil, err
	}

	samples := make([]RGB, size)
	for i := range samples {
		t := float64(i) / float64(size-1)
		samples[i] = sample(stops, t)
	}
	return &Gradient{samples: samples}, nil
}

func validateStops(stops []Stop) error {
	if len(stops) < 2 {
		return fmt.Errorf("%w: need at least 2, got %d", ErrInvalidStops, len(stops))
	}
	prev := 0.0
	for i, s := range stops {
		if s.Offset < 0 || s.Offset > 1 {
			return fmt.Errorf("%w: stop %d offset %v outside [0, 1]", ErrInvalidStops, i, s.Offset)
		}
		if s.Offset < prev {
			return fmt.Errorf("%w: stop %d offset %v before %v", ErrInvalidStops, i, s.Offset, prev)
		}
		prev = s.Offset
	}
	return nil
}

// sample blends between the last stop at or before t and the one after it. Where
// stops share an offset the later one wins at that offset, as in a canvas gradient.
func sample(stops []Stop, t float64) RGB {
	first, last := stops[0], stops[len(stops)-1]
	if t <= first.Offset {
		return first.Color
	}
	if t >= last.Offset {
		return last.Color
	}

	for k := len(stops) - 2; k >= 0; k-- {
		a, b := stops[k], stops[k+1]
		if t < a.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span == 0 {
			return b.Color
		}
		f := (t - a.Offset) / span
		return FromColorful(a.Color.Colorful().BlendRgb(b.Color.Colorful(), f))
	}
	return first.Color
}

// Len returns the number of samples in the table.
func (g *Gradient) Len() int {
	return len(g.samples)
}

// At returns sample i. It panics when i is out of range, like a slice index.
func (g *Gradient) At(i int) RGB {
	return g.samples[i]
}

// ColorFor returns the swatch for bpm, using bpm directly as the table index.
func (g *Gradient) ColorFor(bpm int) (Swatch, error) {
	if bpm < 0 || bpm >= len(g.samples) {
		return Swatch{}, fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, bpm, len(g.samples)-1)
	}
	base := g.samples[bpm]
	return Swatch{Base: base, Accent: Accent(base)}, nil
}
