// Package tui is the terminal front end: a tempo slider, a BPM readout and a
// play/pause button colored from the tempo gradient.
package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
	"github.com/icco/beatglow/internal/metronome"
	"github.com/icco/beatglow/internal/palette"
	"github.com/icco/beatglow/internal/tempo"
)

const (
	// commitDelay is how long the slider must rest before the scheduler is re-armed.
	commitDelay = 250 * time.Millisecond

	fps         = 60
	needleEps   = 0.01
	iconPlay    = "▶"
	iconPause   = "⏸"
	trackGlyph  = "─"
	needleGlyph = "▲"
)

// Controller is the part of the scheduler the UI drives.
type Controller interface {
	Toggle() (bool, error)
	SetTempo(bpm int) error
}

// Sender delivers messages into a running program. *tea.Program implements it.
type Sender interface {
	Send(msg tea.Msg)
}

// BeatMsg reports a fired beat.
type BeatMsg struct {
	Beat metronome.Beat
}

// HighlightMsg switches the hit effect on or off.
type HighlightMsg struct {
	On bool
}

type (
	commitMsg    struct{ gen int }
	committedMsg struct {
		bpm int
		err error
	}
	toggledMsg struct {
		running bool
		err     error
	}
	frameMsg time.Time
)

// Forward returns a beat callback and a highlighter that post into p. Both are safe
// to call from any goroutine.
func Forward(p Sender) (func(metronome.Beat), metronome.Highlighter) {
	onBeat := func(b metronome.Beat) { p.Send(BeatMsg{Beat: b}) }
	light := metronome.HighlightFunc(func(on bool) { p.Send(HighlightMsg{On: on}) })
	return onBeat, light
}

// Options configures a Model.
type Options struct {
	Position   int
	Gradient   *palette.Gradient
	Thumb      ThumbStyler
	Background palette.RGB
	// Note is shown under the button, e.g. "muted" or the MIDI port.
	Note string
}

// Model is the bubbletea model.
type Model struct {
	ctrl Controller

	position  int
	committed int // slider position the scheduler last confirmed
	requested int // slider position last sent to the scheduler
	inflight  bool
	dirty     bool // a commit was asked for while one was in flight
	gen       int
	playing   bool
	hit       bool
	beats     uint64

	gradient   *palette.Gradient
	swatch     palette.Swatch
	thumb      ThumbStyler
	background palette.RGB
	note       string

	spring    harmonica.Spring
	needle    float64
	needleVel float64
	animating bool

	keys keyMap
	help help.Model
	err  error
}

// New returns a stopped model showing opts.Position.
func New(ctrl Controller, opts Options) Model {
	if opts.Gradient == nil {
		opts.Gradient = palette.Default()
	}
	if opts.Thumb == nil {
		opts.Thumb = trueColorThumb{}
	}
	pos := tempo.ClampPosition(opts.Position)

	m := Model{
		ctrl:       ctrl,
		position:   pos,
		committed:  pos,
		requested:  pos,
		gradient:   opts.Gradient,
		thumb:      opts.Thumb,
		background: opts.Background,
		note:       opts.Note,
		spring:     harmonica.NewSpring(harmonica.FPS(fps), 6.0, 0.5),
		needle:     float64(pos),
		keys:       defaultKeyMap(),
		help:       help.New(),
	}
	m.recolor()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// BPM returns the tempo under the slider, committed or not.
func (m Model) BPM() int {
	bpm, _ := tempo.FromPosition(m.position)
	return bpm
}

func (m Model) Playing() bool { return m.playing }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeys(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case commitMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		cmd := m.commit()
		return m, cmd

	case committedMsg:
		m.inflight = false
		m.err = msg.err
		if msg.err != nil {
			m.requested = m.committed
		} else if p, err := tempo.PositionFor(msg.bpm); err == nil {
			m.committed = p
		}
		if m.dirty {
			m.dirty = false
			cmd := m.commit()
			return m, cmd
		}
		return m, nil

	case toggledMsg:
		m.err = msg.err
		if msg.err == nil {
			m.playing = msg.running
		}
		if !m.playing {
			m.hit = false
		}
		return m, nil

	case BeatMsg:
		m.beats = msg.Beat.Seq
		return m, nil

	case HighlightMsg:
		m.hit = msg.On
		return m, nil

	case frameMsg:
		target := float64(m.position)
		m.needle, m.needleVel = m.spring.Update(m.needle, m.needleVel, target)
		if math.Abs(m.needle-target) < needleEps && math.Abs(m.needleVel) < needleEps {
			m.needle, m.needleVel = target, 0
			m.animating = false
			return m, nil
		}
		return m, frame()
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Toggle):
		return m, m.toggle()
	case key.Matches(msg, m.keys.Commit):
		m.gen++
		cmd := m.commit()
		return m, cmd
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Slower):
		return m.move(m.position - 1)
	case key.Matches(msg, m.keys.Faster):
		return m.move(m.position + 1)
	case key.Matches(msg, m.keys.Min):
		return m.move(tempo.MinPosition)
	case key.Matches(msg, m.keys.Max):
		return m.move(tempo.MaxPosition)
	}
	return m, nil
}

// move is the slider "input" event: readout and colors follow at once, the
// scheduler only after the debounce.
func (m Model) move(p int) (tea.Model, tea.Cmd) {
	p = tempo.ClampPosition(p)
	if p == m.position {
		return m, nil
	}
	m.position = p
	m.recolor()
	m.gen++
	gen := m.gen

	cmds := []tea.Cmd{
		tea.Tick(commitDelay, func(time.Time) tea.Msg { return commitMsg{gen: gen} }),
	}
	if !m.animating {
		m.animating = true
		cmds = append(cmds, frame())
	}
	return m, tea.Batch(cmds...)
}

// Scheduler transitions wait for the beat goroutine, which may itself be blocked
// sending to this program, so they run as commands off the update loop.
//
// Only one SetTempo runs at a time so the scheduler sees requests in order. A
// commit asked for meanwhile is replayed when the running one reports back.
func (m *Model) commit() tea.Cmd {
	if m.inflight {
		m.dirty = true
		return nil
	}
	if m.position == m.requested {
		return nil
	}
	m.requested = m.position
	m.inflight = true
	ctrl, bpm := m.ctrl, m.BPM()
	return func() tea.Msg {
		return committedMsg{bpm: bpm, err: ctrl.SetTempo(bpm)}
	}
}

func (m Model) toggle() tea.Cmd {
	ctrl := m.ctrl
	return func() tea.Msg {
		running, err := ctrl.Toggle()
		return toggledMsg{running: running, err: err}
	}
}

func (m *Model) recolor() {
	sw, err := m.gradient.ColorFor(m.BPM())
	if err != nil {
		m.err = err
		return
	}
	m.swatch = sw
}

func frame() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	bpmStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("beatglow") + "\n\n")

	bpm := m.BPM()
	readout := bpmStyle.Foreground(lipgloss.Color(m.swatch.Base.Hex())).Render(fmt.Sprintf("%3d BPM", bpm))
	if m.position != m.committed {
		readout += dimStyle.Render(" (pending)")
	}
	b.WriteString(readout + "\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %v per beat", tempo.Interval(bpm).Round(time.Millisecond))) + "\n\n")

	b.WriteString(m.viewSlider() + "\n")
	b.WriteString(m.viewNeedle() + "\n\n")
	b.WriteString(m.viewButton() + "\n")

	status := "stopped"
	if m.playing {
		status = fmt.Sprintf("beat %d", m.beats)
	}
	if m.note != "" {
		status += " · " + m.note
	}
	b.WriteString(dimStyle.Render(status) + "\n")

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) viewSlider() string {
	var b strings.Builder
	for i := tempo.MinPosition; i <= tempo.MaxPosition; i++ {
		if i == m.position {
			b.WriteString(m.thumb.Thumb(m.swatch.Base))
			continue
		}
		b.WriteString(dimStyle.Render(trackGlyph))
	}
	return b.String()
}

// viewNeedle draws the eased gauge under the slider.
func (m Model) viewNeedle() string {
	n := int(math.Round(m.needle))
	n = tempo.ClampPosition(n)
	return strings.Repeat(" ", n) + lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.swatch.Base.Hex())).
		Render(needleGlyph)
}

// viewButton renders the play/pause control. The accent is composited over the
// terminal background since cells have no alpha.
func (m Model) viewButton() string {
	icon := iconPlay
	if m.playing {
		icon = iconPause
	}

	border := m.swatch.Accent.Over(m.background)
	fill := m.swatch.Base
	if m.hit {
		fill = border
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border.Hex())).
		Background(lipgloss.Color(fill.Hex())).
		Foreground(lipgloss.Color("#FAFAFA")).
		Bold(true).
		Padding(0, 3).
		Render(icon)
}
