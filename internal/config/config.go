// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/icco/beatglow/internal/audio"
	"github.com/icco/beatglow/internal/tempo"
	"github.com/sirupsen/logrus"
)

var ErrInvalid = errors.New("invalid configuration")

// Config holds all runtime configuration. Command-line flags override it.
type Config struct {
	// Initial slider position, 0..42 (120 BPM at 20)
	Position int `env:"BEATGLOW_POSITION" envDefault:"20"`

	// Tone
	Frequency float64 `env:"BEATGLOW_FREQUENCY" envDefault:"261.63"`
	Waveform  string  `env:"BEATGLOW_WAVEFORM" envDefault:"triangle"`
	Mute      bool    `env:"BEATGLOW_MUTE" envDefault:"false"`

	// Pulse
	PulseGain     float64       `env:"BEATGLOW_PULSE_GAIN" envDefault:"0.4"`
	PulseDuration time.Duration `env:"BEATGLOW_PULSE_DURATION" envDefault:"100ms"`

	// Optional MIDI mirror, matched by substring
	MIDIPort string `env:"BEATGLOW_MIDI_OUT"`

	LogFile  string `env:"BEATGLOW_LOG_FILE" envDefault:"beatglow.log"`
	LogLevel string `env:"BEATGLOW_LOG_LEVEL" envDefault:"info"`
}

// Parse reads the environment without validating it, so flags can still
// override a bad value.
func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	return cfg, nil
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	cfg, err := Parse()
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if _, err := tempo.FromPosition(c.Position); err != nil {
		return fmt.Errorf("%w: position: %w", ErrInvalid, err)
	}
	if c.Frequency <= 0 {
		return fmt.Errorf("%w: frequency must be positive, got %v", ErrInvalid, c.Frequency)
	}
	if _, err := audio.ParseWave(c.Waveform); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.PulseGain <= 0 || c.PulseGain > 1 {
		return fmt.Errorf("%w: pulse gain must be in (0, 1], got %v", ErrInvalid, c.PulseGain)
	}
	if c.PulseDuration <= 0 {
		return fmt.Errorf("%w: pulse duration must be positive, got %v", ErrInvalid, c.PulseDuration)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// BPM returns the tempo of the configured slider position. Validate first.
func (c Config) BPM() int {
	bpm, _ := tempo.FromPosition(c.Position)
	return bpm
}

// Wave returns the parsed waveform. Validate first.
func (c Config) Wave() audio.WaveType {
	w, _ := audio.ParseWave(c.Waveform)
	return w
}
