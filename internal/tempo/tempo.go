// Package tempo maps slider positions to beats per minute and beat intervals.
package tempo

import (
	"errors"
	"fmt"
	"time"
)

const (
	MinPosition = 0
	MaxPosition = 42

	// Step is the BPM increment between two adjacent slider positions.
	Step = 4

	MinBPM = MinPosition*Step + 40 // 40
	MaxBPM = MaxPosition*Step + 40 // 208
)

var (
	ErrPositionOutOfRange = errors.New("slider position out of range")
	ErrInvalidTempo       = errors.New("tempo not reachable from the slider")
)

// FromPosition converts a slider position in [MinPosition, MaxPosition] to BPM.
func FromPosition(p int) (int, error) {
	if p < MinPosition || p > MaxPosition {
		return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrPositionOutOfRange, p, MinPosition, MaxPosition)
	}
	return p*Step + MinBPM, nil
}

// PositionFor is the inverse of FromPosition.
func PositionFor(bpm int) (int, error) {
	if bpm < MinBPM || bpm > MaxBPM || (bpm-MinBPM)%Step != 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidTempo, bpm)
	}
	return (bpm - MinBPM) / Step, nil
}

// ClampPosition pins p into the slider range.
func ClampPosition(p int) int {
	if p < MinPosition {
		return MinPosition
	}
	if p > MaxPosition {
		return MaxPosition
	}
	return p
}

// Interval returns the time between two beats at bpm.
func Interval(bpm int) time.Duration {
	if bpm <= 0 {
		panic(fmt.Sprintf("tempo: non-positive bpm %d", bpm))
	}
	return time.Minute / time.Duration(bpm)
}
