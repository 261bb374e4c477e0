package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/fogleman/ease"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readSamples(t *testing.T, tone *Tone, n int) []int16 {
	t.Helper()

	buf := make([]byte, n*frameSize)
	read, err := tone.Read(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), read)

	out := make([]int16, n)
	for i := range out {
		left := int16(binary.LittleEndian.Uint16(buf[i*frameSize:]))
		right := int16(binary.LittleEndian.Uint16(buf[i*frameSize+2:]))
		require.Equal(t, left, right, "channels must match at sample %d", i)
		out[i] = left
	}
	return out
}

func TestToneIsSilentByDefault(t *testing.T) {
	t.Parallel()

	tone := NewTone(ToneOptions{Wave: WaveTriangle})
	for _, s := range readSamples(t, tone, 512) {
		require.Zero(t, s)
	}
	assert.Equal(t, DefaultFrequency, tone.Frequency())
}

func TestToneRampsToTarget(t *testing.T) {
	t.Parallel()

	tone := NewTone(ToneOptions{Wave: WaveTriangle})
	tone.SetGain(0.4)
	assert.Equal(t, 0.4, tone.Target())
	assert.Zero(t, tone.Gain(), "level only moves while rendering")

	// 5ms at 44.1kHz is 220 samples.
	readSamples(t, tone, 100)
	mid := tone.Gain()
	assert.Greater(t, mid, 0.0)
	assert.Less(t, mid, 0.4)

	readSamples(t, tone, 200)
	assert.Equal(t, 0.4, tone.Gain())

	tone.SetGain(0)
	readSamples(t, tone, 300)
	assert.Zero(t, tone.Gain())
}

func TestToneWithoutRamp(t *testing.T) {
	t.Parallel()

	tone := NewTone(ToneOptions{Wave: WaveSquare, RampDuration: -1})
	tone.SetGain(0.5)
	assert.Equal(t, 0.5, tone.Gain())

	samples := readSamples(t, tone, 4)
	// 0.8 * 0.5 * 32767, truncated
	assert.Equal(t, int16(13106), samples[0])
}

func TestToneTriangleAmplitude(t *testing.T) {
	t.Parallel()

	tone := NewTone(ToneOptions{Wave: WaveTriangle, Curve: ease.Linear})
	tone.SetGain(1)

	// Skip the ramp, then render one full period (~169 samples at 261.63Hz).
	readSamples(t, tone, 300)
	samples := readSamples(t, tone, 400)

	var peak int16
	for _, s := range samples {
		if s > peak {
			peak = s
		}
	}
	assert.Greater(t, peak, int16(31000))
}

func TestToneClampsGain(t *testing.T) {
	t.Parallel()

	tone := NewTone(ToneOptions{})
	tone.SetGain(3)
	assert.Equal(t, 1.0, tone.Target())
	tone.SetGain(-1)
	assert.Equal(t, 0.0, tone.Target())
}

func TestGenerateWave(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		wave     WaveType
		phase    float64
		expected float64
	}{
		{WaveTriangle, 0, -1},
		{WaveTriangle, 0.25, 0},
		{WaveTriangle, 0.5, 1},
		{WaveTriangle, 0.75, 0},
		{WaveSawtooth, 0, -1},
		{WaveSawtooth, 0.5, 0},
		{WaveSquare, 0.1, 0.8},
		{WaveSquare, 0.9, -0.8},
		{WaveSine, 0.25, 1},
	}

	for _, tc := range testCases {
		got := generateWave(tc.wave, tc.phase)
		assert.True(t, math.Abs(got-tc.expected) < 1e-9, "%v at %v: got %v want %v", tc.wave, tc.phase, got, tc.expected)
	}
}

func TestParseWave(t *testing.T) {
	t.Parallel()

	for _, w := range []WaveType{WaveSine, WaveSquare, WaveSawtooth, WaveTriangle} {
		got, err := ParseWave(w.String())
		require.NoError(t, err)
		assert.Equal(t, w, got)
	}

	got, err := ParseWave("Triangle")
	require.NoError(t, err)
	assert.Equal(t, WaveTriangle, got)

	_, err = ParseWave("noise")
	require.Error(t, err)
}
