// Package midiout mirrors metronome pulses onto a MIDI output port.
package midiout

import (
	"fmt"
	"sync"

	"github.com/icco/beatglow/internal/logger"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

const (
	// Channel is the General MIDI percussion channel (channel 10).
	Channel uint8 = 9
	// Note is a side stick in the General MIDI drum map.
	Note     uint8 = 37
	Velocity uint8 = 100

	allNotesOff uint8 = 123
)

// Ports lists the names of the available MIDI outputs.
func Ports() []string {
	var names []string
	for _, out := range midi.GetOutPorts() {
		names = append(names, out.String())
	}
	return names
}

// Sink sends a note for every pulse. It implements metronome.Highlighter, so the
// note lasts exactly as long as the visual hit effect.
type Sink struct {
	mu       sync.Mutex
	name     string
	send     func(msg midi.Message) error
	port     drivers.Out
	sounding bool
	log      logrus.FieldLogger
}

// Open connects to the first output port whose name contains name.
func Open(name string) (*Sink, error) {
	out, err := midi.FindOutPort(name)
	if err != nil {
		return nil, fmt.Errorf("failed to find MIDI output %q: %w", name, err)
	}

	send, err := midi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("failed to open port %s: %w", out.String(), err)
	}

	s := newSink(out.String(), send)
	s.port = out
	return s, nil
}

func newSink(name string, send func(msg midi.Message) error) *Sink {
	return &Sink{
		name: name,
		send: send,
		log:  logger.GetProjectLogger().WithField("midi_out", name),
	}
}

// Name returns the connected port's name.
func (s *Sink) Name() string {
	return s.name
}

// SetHighlight sends NoteOn when a pulse starts and NoteOff when it clears.
func (s *Sink) SetHighlight(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if on == s.sounding {
		// Overlapping pulses: retrigger without stacking notes.
		if on {
			s.write(midi.NoteOff(Channel, Note))
			s.write(midi.NoteOn(Channel, Note, Velocity))
		}
		return
	}
	s.sounding = on
	if on {
		s.write(midi.NoteOn(Channel, Note, Velocity))
	} else {
		s.write(midi.NoteOff(Channel, Note))
	}
}

// Close silences the channel and closes the port.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.write(midi.ControlChange(Channel, allNotesOff, 0))
	s.sounding = false
	if s.port != nil {
		return s.port.Close()
	}
	return nil
}

func (s *Sink) write(msg midi.Message) {
	if err := s.send(msg); err != nil {
		s.log.WithError(err).Warnf("failed to send %s", msg)
	}
}
