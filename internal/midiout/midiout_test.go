package midiout

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

type captured struct {
	msgs []midi.Message
}

func (c *captured) send(msg midi.Message) error {
	c.msgs = append(c.msgs, msg)
	return nil
}

func TestSinkFollowsPulse(t *testing.T) {
	t.Parallel()

	c := &captured{}
	s := newSink("test", c.send)

	s.SetHighlight(true)
	s.SetHighlight(false)
	s.SetHighlight(false)

	require.Len(t, c.msgs, 2)

	var ch, key, vel uint8
	require.True(t, c.msgs[0].GetNoteOn(&ch, &key, &vel))
	assert.Equal(t, Channel, ch)
	assert.Equal(t, Note, key)
	assert.Equal(t, Velocity, vel)

	require.True(t, c.msgs[1].GetNoteOff(&ch, &key, &vel))
	assert.Equal(t, Note, key)
}

func TestSinkRetriggersOverlappingPulse(t *testing.T) {
	t.Parallel()

	c := &captured{}
	s := newSink("test", c.send)

	s.SetHighlight(true)
	s.SetHighlight(true)

	require.Len(t, c.msgs, 3)
	var ch, key, vel uint8
	assert.True(t, c.msgs[1].GetNoteOff(&ch, &key, &vel))
	assert.True(t, c.msgs[2].GetNoteOn(&ch, &key, &vel))
}

func TestSinkClose(t *testing.T) {
	t.Parallel()

	c := &captured{}
	s := newSink("test", c.send)
	s.SetHighlight(true)
	require.NoError(t, s.Close())

	var ch, ctl, val uint8
	last := c.msgs[len(c.msgs)-1]
	require.True(t, last.GetControlChange(&ch, &ctl, &val))
	assert.Equal(t, allNotesOff, ctl)
	assert.Equal(t, "test", s.Name())
}

func TestSinkSendErrorsAreLogged(t *testing.T) {
	t.Parallel()

	s := newSink("broken", func(midi.Message) error { return errors.New("port gone") })
	assert.NotPanics(t, func() {
		s.SetHighlight(true)
		s.SetHighlight(false)
	})
}
