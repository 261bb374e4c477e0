package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/icco/beatglow/internal/audio"
	"github.com/icco/beatglow/internal/logger"
	"github.com/icco/beatglow/internal/metronome"
	"github.com/icco/beatglow/internal/midiout"
	"github.com/icco/beatglow/internal/palette"
	"github.com/icco/beatglow/internal/tui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"k8s.io/utils/clock"
)

var playOpts struct {
	position int
	mute     bool
	midiOut  string
	waveform string
}

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the metronome",
	Long: `Start the metronome with an interactive TUI.

The slider position maps to tempo as 40 + 4*position, so position 20 is 120 BPM.
Use --midi-out to mirror every beat to a MIDI output as a side stick note.

Example:
  beatglow play --position 0 --waveform sine
`,
	RunE: runPlay,
}

func init() {
	addPlayFlags(playCmd)
	rootCmd.AddCommand(playCmd)
}

func addPlayFlags(c *cobra.Command) {
	c.Flags().IntVarP(&playOpts.position, "position", "p", 20, "Initial slider position (0-42)")
	c.Flags().BoolVarP(&playOpts.mute, "mute", "m", false, "Run without audio output")
	c.Flags().StringVar(&playOpts.midiOut, "midi-out", "", "Mirror beats to the MIDI output whose name contains this")
	c.Flags().StringVarP(&playOpts.waveform, "waveform", "w", "triangle", "Tone waveform (sine, square, sawtooth, triangle)")
}

func applyPlayFlags(c *cobra.Command) {
	if c.Flags().Changed("position") {
		cfg.Position = playOpts.position
	}
	if c.Flags().Changed("mute") {
		cfg.Mute = playOpts.mute
	}
	if c.Flags().Changed("midi-out") {
		cfg.MIDIPort = playOpts.midiOut
	}
	if c.Flags().Changed("waveform") {
		cfg.Waveform = playOpts.waveform
	}
}

// resolvePlayConfig applies play flags over the environment and validates the result.
func resolvePlayConfig(c *cobra.Command) error {
	applyPlayFlags(c)
	return cfg.Validate()
}

func runPlay(cmd *cobra.Command, _ []string) error {
	if err := resolvePlayConfig(cmd); err != nil {
		return err
	}

	log := logger.GetProjectLogger()
	clk := clock.RealClock{}

	var (
		gain  metronome.Gain
		notes []string
	)
	if cfg.Mute {
		notes = append(notes, "muted")
	} else {
		tone := audio.NewTone(audio.ToneOptions{Wave: cfg.Wave(), Frequency: cfg.Frequency})
		out, err := audio.Open(tone)
		if err != nil {
			return err
		}
		defer func() { _ = out.Close() }()
		gain = tone
	}

	var lights []metronome.Highlighter
	if cfg.MIDIPort != "" {
		sink, err := midiout.Open(cfg.MIDIPort)
		if err != nil {
			return err
		}
		defer func() { _ = sink.Close() }()
		lights = append(lights, sink)
		notes = append(notes, "midi: "+sink.Name())
	}

	// The beat callback is bound before the program exists; nothing can start the
	// scheduler until the program runs.
	var (
		pulse  *metronome.Pulse
		notify func(metronome.Beat)
	)
	sched := metronome.NewScheduler(clk, func(b metronome.Beat) {
		pulse.OnBeat(b)
		notify(b)
	}, metronome.WithTempo(cfg.BPM()), metronome.WithLogger(log))

	thumb := tui.SelectThumb(lipgloss.ColorProfile())
	bg := palette.RGB{}
	if !lipgloss.HasDarkBackground() {
		bg = palette.RGB{R: 255, G: 255, B: 255}
	}

	m := tui.New(sched, tui.Options{
		Position:   cfg.Position,
		Thumb:      thumb,
		Background: bg,
		Note:       strings.Join(notes, " · "),
	})
	p := tea.NewProgram(m, tea.WithAltScreen())

	var light metronome.Highlighter
	notify, light = tui.Forward(p)
	lights = append(lights, light)
	pulse = metronome.NewPulse(clk, gain, metronome.PulseOptions{
		Gain:     cfg.PulseGain,
		Duration: cfg.PulseDuration,
	}, lights...)

	log.WithFields(logrus.Fields{
		"bpm":      cfg.BPM(),
		"waveform": cfg.Waveform,
		"thumb":    thumb.Name(),
		"mute":     cfg.Mute,
		"midi":     cfg.MIDIPort,
	}).Info("metronome ready")

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(c)
	go func() {
		if _, ok := <-c; ok {
			p.Send(tea.Quit())
		}
	}()

	_, runErr := p.Run()
	_ = sched.Close()
	log.WithField("beats", pulse.Fired()).Info("metronome stopped")
	if runErr != nil {
		return fmt.Errorf("error running program: %w", runErr)
	}
	return nil
}
