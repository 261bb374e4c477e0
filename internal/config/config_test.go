package config

import (
	"os"
	"testing"
	"time"

	"github.com/icco/beatglow/internal/audio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"BEATGLOW_POSITION", "BEATGLOW_FREQUENCY", "BEATGLOW_WAVEFORM", "BEATGLOW_MUTE",
	"BEATGLOW_PULSE_GAIN", "BEATGLOW_PULSE_DURATION", "BEATGLOW_MIDI_OUT",
	"BEATGLOW_LOG_FILE", "BEATGLOW_LOG_LEVEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		if v, ok := os.LookupEnv(k); ok {
			require.NoError(t, os.Unsetenv(k))
			t.Cleanup(func() { _ = os.Setenv(k, v) })
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Position)
	assert.Equal(t, 120, cfg.BPM())
	assert.Equal(t, 261.63, cfg.Frequency)
	assert.Equal(t, "triangle", cfg.Waveform)
	assert.Equal(t, audio.WaveTriangle, cfg.Wave())
	assert.False(t, cfg.Mute)
	assert.Equal(t, 0.4, cfg.PulseGain)
	assert.Equal(t, 100*time.Millisecond, cfg.PulseDuration)
	assert.Empty(t, cfg.MIDIPort)
	assert.Equal(t, "beatglow.log", cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("BEATGLOW_POSITION", "42")
	t.Setenv("BEATGLOW_FREQUENCY", "440")
	t.Setenv("BEATGLOW_WAVEFORM", "sine")
	t.Setenv("BEATGLOW_MUTE", "true")
	t.Setenv("BEATGLOW_PULSE_GAIN", "0.8")
	t.Setenv("BEATGLOW_PULSE_DURATION", "50ms")
	t.Setenv("BEATGLOW_MIDI_OUT", "IAC")
	t.Setenv("BEATGLOW_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 208, cfg.BPM())
	assert.Equal(t, 440.0, cfg.Frequency)
	assert.Equal(t, audio.WaveSine, cfg.Wave())
	assert.True(t, cfg.Mute)
	assert.Equal(t, 0.8, cfg.PulseGain)
	assert.Equal(t, 50*time.Millisecond, cfg.PulseDuration)
	assert.Equal(t, "IAC", cfg.MIDIPort)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadPosition(t *testing.T) {
	clearEnv(t)
	t.Setenv("BEATGLOW_POSITION", "43")

	_, err := Load()
	require.ErrorIs(t, err, ErrInvalid)
}

func TestParseLeavesValidationToCaller(t *testing.T) {
	clearEnv(t)
	t.Setenv("BEATGLOW_POSITION", "99")

	cfg, err := Parse()
	require.NoError(t, err)
	require.ErrorIs(t, cfg.Validate(), ErrInvalid)

	cfg.Position = 3
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 52, cfg.BPM())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := Config{
		Position:      20,
		Frequency:     261.63,
		Waveform:      "triangle",
		PulseGain:     0.4,
		PulseDuration: 100 * time.Millisecond,
		LogLevel:      "info",
	}
	require.NoError(t, valid.Validate())

	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative position", func(c *Config) { c.Position = -1 }},
		{"zero frequency", func(c *Config) { c.Frequency = 0 }},
		{"unknown waveform", func(c *Config) { c.Waveform = "noise" }},
		{"zero gain", func(c *Config) { c.PulseGain = 0 }},
		{"gain above one", func(c *Config) { c.PulseGain = 1.5 }},
		{"zero duration", func(c *Config) { c.PulseDuration = 0 }},
		{"unknown level", func(c *Config) { c.LogLevel = "loud" }},
	}

	for _, tc := range testCases {
		cfg := valid
		tc.mutate(&cfg)
		require.ErrorIs(t, cfg.Validate(), ErrInvalid, tc.name)
	}
}
