package service

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// lockedRand serializes access to a rand.Rand. math/rand sources are not
// safe for concurrent use and request handlers share one per service.
type lockedRand struct {
	mu  sync.Mutex
	src *rand.Rand
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(n)
}

// options bundles the time, randomness, and latency knobs every service
// takes. Synthetic bill generation is random by design, so tests pin the
// random source and clock to make reads reproducible.
type options struct {
	now   func() time.Time
	sleep func(time.Duration)
	rng   *lockedRand
	newID func() string
	delay time.Duration
}

// Option configures a service at construction time.
type Option func(*options)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithRand replaces the random source used for synthetic amounts.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = &lockedRand{src: r} }
}

// WithIDGenerator replaces the identifier generator.
func WithIDGenerator(f func() string) Option {
	return func(o *options) { o.newID = f }
}

// WithDelay sets the simulated network latency. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(o *options) { o.delay = d }
}

func newOptions(delay time.Duration, opts []Option) options {
	o := options{
		now:   time.Now,
		sleep: time.Sleep,
		rng:   &lockedRand{src: rand.New(rand.NewSource(time.Now().UnixNano()))},
		newID: func() string { return uuid.New().String() },
		delay: delay,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// simulateLatency models the network round trip the original flows fake.
// Cancellation is deliberately unsupported: a started operation always
// completes its delay before reporting a result.
func (o options) simulateLatency() {
	if o.delay > 0 {
		o.sleep(o.delay)
	}
}
