package audio

import (
	"fmt"
	"math"
	"strings"
)

// WaveType represents different oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSawtooth
	WaveTriangle
)

var waveNames = map[WaveType]string{
	WaveSine:     "sine",
	WaveSquare:   "square",
	WaveSawtooth: "sawtooth",
	WaveTriangle: "triangle",
}

func (w WaveType) String() string {
	if name, ok := waveNames[w]; ok {
		return name
	}
	return fmt.Sprintf("WaveType(%d)", int(w))
}

// ParseWave accepts the names returned by WaveType.String, case-insensitively.
func ParseWave(s string) (WaveType, error) {
	for w, name := range waveNames {
		if strings.EqualFold(s, name) {
			return w, nil
		}
	}
	return 0, fmt.Errorf("unknown waveform %q", s)
}

// generateWave returns the oscillator value in [-1, 1] at phase in [0, 1).
func generateWave(waveType WaveType, phase float64) float64 {
	switch waveType {
	case WaveSine:
		return math.Sin(2 * math.Pi * phase)
	case WaveSquare:
		if phase < 0.5 {
			return 0.8
		}
		return -0.8
	case WaveSawtooth:
		return 2*phase - 1
	case WaveTriangle:
		if phase < 0.5 {
			return 4*phase - 1
		}
		return 3 - 4*phase
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}
