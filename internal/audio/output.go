package audio

import (
	"fmt"
	"io"

	"github.com/ebitengine/oto/v3"
)

// Output plays a Tone on the system audio device.
type Output struct {
	otoCtx *oto.Context
	player *oto.Player
}

// Open creates the oto context and starts streaming src. The context can only be
// created once per process.
func Open(src io.Reader) (*Output, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	otoCtx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio: %w", err)
	}
	<-readyChan

	// Start the audio stream
	player := otoCtx.NewPlayer(src)
	player.Play()

	return &Output{otoCtx: otoCtx, player: player}, nil
}

// Close stops playback and suspends the device.
func (o *Output) Close() error {
	o.player.Pause()
	// Note: As of oto v3.4, player.Close() is deprecated and no longer needed.
	// The player will be cleaned up when garbage collected.
	return o.otoCtx.Suspend()
}
