// Package clicktrack renders a metronome click as a Standard MIDI File.
package clicktrack

import (
	"errors"
	"fmt"
	"io"

	"github.com/icco/beatglow/internal/tempo"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerQuarterNote = 960 // Standard MIDI resolution
	clickLength         = ticksPerQuarterNote / 4

	channel        uint8 = 9 // General MIDI percussion
	downbeatNote   uint8 = 76
	offbeatNote    uint8 = 77
	downbeatVel    uint8 = 127
	offbeatVel     uint8 = 90
	maxBeatsPerBar       = 16
)

var ErrInvalidLength = errors.New("invalid click track length")

// Info summarizes a click track read back from disk.
type Info struct {
	BPM   float64
	Beats int
}

// Validate reports whether Write would accept the arguments.
func Validate(bpm, bars, beatsPerBar int) error {
	if _, err := tempo.PositionFor(bpm); err != nil {
		return err
	}
	if bars < 1 || beatsPerBar < 1 || beatsPerBar > maxBeatsPerBar {
		return fmt.Errorf("%w: %d bars of %d beats", ErrInvalidLength, bars, beatsPerBar)
	}
	return nil
}

// Write encodes bars bars of beatsPerBar clicks at bpm. The first beat of every bar
// is accented. bpm must be reachable from the tempo slider.
func Write(w io.Writer, bpm, bars, beatsPerBar int) error {
	if err := Validate(bpm, bars, beatsPerBar); err != nil {
		return err
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(ticksPerQuarterNote)

	// Track 0: Tempo track
	var track0 smf.Track
	track0.Add(0, smf.MetaMeter(uint8(beatsPerBar), 4)) //nolint:gosec // bounded by maxBeatsPerBar
	track0.Add(0, smf.MetaTempo(float64(bpm)))
	track0.Close(0)
	if err := sm.Add(track0); err != nil {
		return fmt.Errorf("error adding tempo track: %w", err)
	}

	var clicks smf.Track
	var delta uint32
	for beat := 0; beat < bars*beatsPerBar; beat++ {
		note, vel := offbeatNote, offbeatVel
		if beat%beatsPerBar == 0 {
			note, vel = downbeatNote, downbeatVel
		}
		clicks.Add(delta, midi.NoteOn(channel, note, vel))
		clicks.Add(clickLength, midi.NoteOff(channel, note))
		delta = ticksPerQuarterNote - clickLength
	}
	clicks.Close(delta)
	if err := sm.Add(clicks); err != nil {
		return fmt.Errorf("error adding click track: %w", err)
	}

	if _, err := sm.WriteTo(w); err != nil {
		return fmt.Errorf("error writing MIDI file: %w", err)
	}
	return nil
}

// Read parses a click track and reports its tempo and number of clicks.
func Read(r io.Reader) (Info, error) {
	rd, err := smf.ReadFrom(r)
	if err != nil {
		return Info{}, fmt.Errorf("error reading MIDI file: %w", err)
	}

	var info Info
	if tc := rd.TempoChanges(); len(tc) > 0 {
		info.BPM = tc[0].BPM
	}
	for _, track := range rd.Tracks {
		for _, ev := range track {
			var ch, key, vel uint8
			if ev.Message.GetNoteOn(&ch, &key, &vel) && vel > 0 {
				info.Beats++
			}
		}
	}
	return info, nil
}
