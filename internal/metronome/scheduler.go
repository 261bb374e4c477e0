// Package metronome turns a tempo into a stream of beats and drives the audible and
// visual pulse of each beat.
package metronome

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/icco/beatglow/internal/logger"
	"github.com/icco/beatglow/internal/tempo"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// DefaultBPM is the tempo of a scheduler created without WithTempo.
const DefaultBPM = 120

var (
	ErrInvalidTempo = errors.New("invalid tempo")
	ErrClosed       = errors.New("scheduler closed")
)

// Clock is the time source shared by the scheduler and the pulse.
// clock.RealClock satisfies it, and so does the fake clock in k8s.io/utils/clock/testing.
type Clock interface {
	clock.WithTicker
	AfterFunc(d time.Duration, f func()) clock.Timer
}

// State is the scheduler's playback state.
type State int

const (
	Stopped State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	default:
		return "unknown"
	}
}

// Beat describes a single fired beat.
type Beat struct {
	Seq uint64
	At  time.Time
	BPM int
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithTempo sets the initial tempo. Non-positive values are ignored.
func WithTempo(bpm int) Option {
	return func(s *Scheduler) {
		if bpm > 0 {
			s.bpm = bpm
		}
	}
}

// WithLogger replaces the project logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Scheduler) {
		s.log = l
	}
}

// run is one armed period of the scheduler: a ticker and the goroutine reading it.
type run struct {
	ticker   clock.Ticker
	interval time.Duration
	done     chan struct{}
	exited   chan struct{}
}

// Scheduler fires onBeat at the current tempo while running. It is a two-state
// machine. Every transition tears down the previous ticker before a new one is
// armed, so at most one ticker is live at any time.
//
// onBeat is called from the scheduler's goroutine, and from the caller's goroutine
// for the first beat of Start. Calls never overlap. onBeat must not call Start, Stop,
// SetTempo, Toggle or Close.
type Scheduler struct {
	// transition serializes Start, Stop, SetTempo and Close.
	transition sync.Mutex
	// fire serializes beat callbacks.
	fire sync.Mutex

	mu     sync.Mutex
	bpm    int
	seq    uint64
	active *run
	closed bool

	clock  Clock
	onBeat func(Beat)
	log    logrus.FieldLogger
}

// NewScheduler returns a stopped scheduler.
func NewScheduler(c Clock, onBeat func(Beat), opts ...Option) *Scheduler {
	s := &Scheduler{
		bpm:    DefaultBPM,
		clock:  c,
		onBeat: onBeat,
		log:    logger.GetProjectLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tempo returns the stored tempo in BPM.
func (s *Scheduler) Tempo() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bpm
}

// Interval returns the beat interval at the stored tempo.
func (s *Scheduler) Interval() time.Duration {
	return tempo.Interval(s.Tempo())
}

// State reports whether the scheduler is armed.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		return Running
	}
	return Stopped
}

// Running is shorthand for State() == Running.
func (s *Scheduler) Running() bool {
	return s.State() == Running
}

// Start fires one beat immediately and arms the repeating trigger. Starting a
// running scheduler does nothing.
func (s *Scheduler) Start() error {
	s.transition.Lock()
	defer s.transition.Unlock()
	return s.start()
}

// Stop cancels the repeating trigger and waits for its goroutine to exit.
// Stopping a stopped scheduler does nothing.
func (s *Scheduler) Stop() {
	s.transition.Lock()
	defer s.transition.Unlock()
	s.disarm()
}

// Toggle flips between running and stopped and returns true if it is now running.
func (s *Scheduler) Toggle() (bool, error) {
	s.transition.Lock()
	defer s.transition.Unlock()

	if s.State() == Running {
		s.disarm()
		return false, nil
	}
	if err := s.start(); err != nil {
		return false, err
	}
	return true, nil
}

// SetTempo stores bpm. A running scheduler is re-armed so that the next beat lands
// one new interval from now.
func (s *Scheduler) SetTempo(bpm int) error {
	if bpm <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTempo, bpm)
	}

	s.transition.Lock()
	defer s.transition.Unlock()

	s.mu.Lock()
	if s.bpm == bpm {
		s.mu.Unlock()
		return nil
	}
	s.bpm = bpm
	running := s.active != nil
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"bpm": bpm, "running": running}).Debug("tempo changed")

	if running {
		s.disarm()
		s.arm()
	}
	return nil
}

// Close stops the scheduler for good.
func (s *Scheduler) Close() error {
	s.transition.Lock()
	defer s.transition.Unlock()

	s.disarm()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// start must be called with transition held.
func (s *Scheduler) start() error {
	s.mu.Lock()
	closed, running := s.closed, s.active != nil
	s.mu.Unlock()

	if closed {
		return ErrClosed
	}
	if running {
		return nil
	}

	s.beat()
	s.arm()
	return nil
}

// arm must be called with transition held and no active run.
func (s *Scheduler) arm() {
	interval := s.Interval()
	r := &run{
		ticker:   s.clock.NewTicker(interval),
		interval: interval,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}

	s.mu.Lock()
	s.active = r
	s.mu.Unlock()

	s.log.WithField("interval", interval).Debug("scheduler armed")
	go s.loop(r)
}

// disarm must be called with transition held.
func (s *Scheduler) disarm() {
	s.mu.Lock()
	r := s.active
	s.active = nil
	s.mu.Unlock()

	if r == nil {
		return
	}
	r.ticker.Stop()
	close(r.done)
	<-r.exited
	s.log.Debug("scheduler stopped")
}

func (s *Scheduler) loop(r *run) {
	defer close(r.exited)

	for {
		select {
		case <-r.done:
			return
		case <-r.ticker.C():
			// A tick racing with disarm must not fire.
			select {
			case <-r.done:
				return
			default:
			}
			s.beat()
		}
	}
}

func (s *Scheduler) beat() {
	s.fire.Lock()
	defer s.fire.Unlock()

	s.mu.Lock()
	s.seq++
	b := Beat{Seq: s.seq, At: s.clock.Now(), BPM: s.bpm}
	s.mu.Unlock()

	if s.onBeat != nil {
		s.onBeat(b)
	}
}
