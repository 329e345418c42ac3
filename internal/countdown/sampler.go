package countdown

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mrz1836/countdown/internal/constants"
)

// SamplerState is the lifecycle state of a Sampler.
type SamplerState int

const (
	// SamplerIdle is the initial state: no ticker exists yet.
	SamplerIdle SamplerState = iota
	// SamplerRunning means the ticker is live and refreshing the instant.
	SamplerRunning
	// SamplerStopped is terminal. A stopped sampler is never restarted.
	SamplerStopped
)

// String returns the lowercase state name.
func (s SamplerState) String() string {
	switch s {
	case SamplerIdle:
		return "idle"
	case SamplerRunning:
		return "running"
	case SamplerStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// SamplerOption configures a Sampler.
type SamplerOption func(*Sampler)

// WithSamplerInterval overrides the refresh cadence. Production code keeps
// constants.TickInterval.
func WithSamplerInterval(d time.Duration) SamplerOption {
	return func(s *Sampler) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithSamplerLogger sets the logger used for lifecycle events.
func WithSamplerLogger(logger zerolog.Logger) SamplerOption {
	return func(s *Sampler) {
		s.logger = logger.With().Str("component", "sampler").Logger()
	}
}

type tickSubscriber struct {
	id uint64
	fn func(time.Time)
}

// Sampler holds the current instant and refreshes it on a fixed cadence
// while running. The tick goroutine is the only writer of the instant.
type Sampler struct {
	clock    clockwork.Clock
	interval time.Duration
	logger   zerolog.Logger

	mu     sync.RWMutex
	now    time.Time
	state  SamplerState
	subs   []tickSubscriber
	nextID uint64

	// timer handle, set only while running
	ticker clockwork.Ticker
	done   chan struct{}
}

// NewSampler creates an idle Sampler whose instant starts at clk.Now().
// A nil clock means the real wall clock.
func NewSampler(clk clockwork.Clock, opts ...SamplerOption) *Sampler {
	if clk == nil {
		clk = clockwork.NewRealClock()
	}
	s := &Sampler{
		clock:    clk,
		interval: constants.TickInterval,
		logger:   zerolog.Nop(),
		now:      clk.Now(),
		state:    SamplerIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start begins refreshing the instant once per interval.
// Calling Start while running, or after Stop, does nothing.
func (s *Sampler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case SamplerRunning:
		s.logger.Debug().Msg("sampler already running")
		return
	case SamplerStopped:
		s.logger.Debug().Msg("sampler stopped, not restarting")
		return
	case SamplerIdle:
	}

	started := s.clock.Now()
	s.ticker = s.clock.NewTicker(s.interval)
	s.done = make(chan struct{})
	s.state = SamplerRunning
	go s.loop(s.ticker, s.done, started.Add(s.interval))

	s.logger.Debug().Dur("interval", s.interval).Msg("sampler started")
}

// Stop halts the refresh and releases the ticker. It is safe to call
// before Start, before the first tick, and more than once.
// A tick already delivering to subscribers finishes; no tick starts after Stop returns.
func (s *Sampler) Stop() {
	s.mu.Lock()
	if s.state != SamplerRunning {
		s.mu.Unlock()
		return
	}
	ticker, done := s.ticker, s.done
	s.ticker, s.done = nil, nil
	s.state = SamplerStopped
	s.mu.Unlock()

	ticker.Stop()
	close(done)

	s.logger.Debug().Msg("sampler stopped")
}

// Now returns the most recently sampled instant.
func (s *Sampler) Now() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.now
}

// State returns the lifecycle state.
func (s *Sampler) State() SamplerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// OnTick registers fn to run after every tick, on the tick goroutine, with
// the freshly written instant. Subscribers run in registration order.
// The returned func removes the subscription.
func (s *Sampler) OnTick(fn func(time.Time)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, tickSubscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { s.removeSubscriber(id) })
	}
}

func (s *Sampler) removeSubscriber(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sub := range s.subs {
		if sub.id == id {
			s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
			return
		}
	}
}

// loop receives ticks until done is closed. A ticker channel holds a
// single pending tick, so when several intervals elapse between receives
// the loop replays one tick per missed boundary. Replayed ticks carry their
// boundary instant; the last one carries the clock's current instant.
func (s *Sampler) loop(ticker clockwork.Ticker, done <-chan struct{}, next time.Time) {
	for {
		select {
		case <-done:
			return
		case <-ticker.Chan():
			now := s.clock.Now()
			for !next.After(now) {
				at := next
				next = next.Add(s.interval)
				if next.After(now) {
					at = now
				}
				if !s.tick(at) {
					return
				}
			}
		}
	}
}

// tick writes the sampled instant and notifies subscribers synchronously.
// It reports false once the sampler is no longer running.
func (s *Sampler) tick(now time.Time) bool {
	s.mu.Lock()
	if s.state != SamplerRunning {
		s.mu.Unlock()
		return false
	}
	s.now = now
	subs := make([]tickSubscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(now)
	}
	return true
}
