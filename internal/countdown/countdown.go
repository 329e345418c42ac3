package countdown

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/mrz1836/countdown/internal/constants"
)

// options collects construction settings for a Countdown.
type options struct {
	clock    clockwork.Clock
	location *time.Location
	logger   zerolog.Logger
	interval time.Duration
}

// Option configures a Countdown.
type Option func(*options)

// WithClock sets the time source. Tests pass a clockwork.FakeClock.
func WithClock(clk clockwork.Clock) Option {
	return func(o *options) {
		if clk != nil {
			o.clock = clk
		}
	}
}

// WithLocation sets the zone used for end dates without an offset.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithLogger sets the logger for countdown and sampler events.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithTickInterval overrides the sampler cadence.
func WithTickInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

func defaultOptions() options {
	return options{
		clock:    clockwork.NewRealClock(),
		location: time.Local,
		logger:   zerolog.Nop(),
		interval: constants.TickInterval,
	}
}

type remainingSubscriber struct {
	id uint64
	fn func(Remaining)
}

// Countdown counts down to one fixed target instant.
//
// The current Remaining is recomputed synchronously on every sampler tick,
// then handed to each subscriber, so a value seen after a tick always
// reflects that tick or a later one.
type Countdown struct {
	target  time.Time
	sampler *Sampler
	logger  zerolog.Logger

	mu        sync.RWMutex
	remaining Remaining
	at        time.Time
	subs      []remainingSubscriber
	nextID    uint64
}

// New parses endDate and returns an inactive Countdown whose initial
// Remaining is computed from the construction instant.
// An unparseable endDate returns an error wrapping errors.ErrInvalidEndDate.
func New(endDate string, opts ...Option) (*Countdown, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	target, err := ParseEndDate(endDate, o.location)
	if err != nil {
		return nil, err
	}
	return newCountdown(target, o), nil
}

// NewWithTarget returns an inactive Countdown to an already parsed instant.
func NewWithTarget(target time.Time, opts ...Option) *Countdown {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return newCountdown(target, o)
}

func newCountdown(target time.Time, o options) *Countdown {
	logger := o.logger.With().Str("component", "countdown").Time("target", target).Logger()
	sampler := NewSampler(o.clock,
		WithSamplerInterval(o.interval),
		WithSamplerLogger(o.logger),
	)

	c := &Countdown{
		target:    target,
		sampler:   sampler,
		logger:    logger,
		remaining: Compute(target, sampler.Now()),
		at:        sampler.Now(),
	}
	sampler.OnTick(c.recompute)
	return c
}

// Target returns the deadline.
func (c *Countdown) Target() time.Time {
	return c.target
}

// Now returns the sampler's current instant.
func (c *Countdown) Now() time.Time {
	return c.sampler.Now()
}

// Remaining returns the current breakdown.
func (c *Countdown) Remaining() Remaining {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.remaining
}

// Sample returns the current breakdown together with the instant it was
// computed from.
func (c *Countdown) Sample() (Remaining, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.remaining, c.at
}

// Expired reports whether the deadline has passed as of the latest tick.
func (c *Countdown) Expired() bool {
	return c.Remaining().IsExpired
}

// State returns the sampler lifecycle state.
func (c *Countdown) State() SamplerState {
	return c.sampler.State()
}

// Subscribe registers fn to receive every recomputed Remaining.
// fn runs on the tick goroutine and must not block for long.
// The returned func removes the subscription and is safe to call twice.
func (c *Countdown) Subscribe(fn func(Remaining)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, remainingSubscriber{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { c.unsubscribe(id) })
	}
}

func (c *Countdown) unsubscribe(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, sub := range c.subs {
		if sub.id == id {
			c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
			return
		}
	}
}

// Activate starts live updates. It is the mount hook and is idempotent.
func (c *Countdown) Activate() {
	c.sampler.Start()
}

// Deactivate stops live updates and releases the timer. It is the unmount
// hook, idempotent, and terminal.
func (c *Countdown) Deactivate() {
	c.sampler.Stop()
}

// Run activates the countdown, blocks until ctx is done, and deactivates on
// the way out. Cancellation is the normal way to end a Run and returns nil.
func (c *Countdown) Run(ctx context.Context) error {
	c.Activate()
	defer c.Deactivate()

	<-ctx.Done()
	return nil
}

// recompute derives a fresh Remaining from now and publishes it.
func (c *Countdown) recompute(now time.Time) {
	next := Compute(c.target, now)

	c.mu.Lock()
	wasExpired := c.remaining.IsExpired
	c.remaining = next
	c.at = now
	subs := make([]remainingSubscriber, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	if next.IsExpired && !wasExpired {
		c.logger.Info().Time("now", now).Msg("countdown reached deadline")
	}

	for _, sub := range subs {
		sub.fn(next)
	}
}
