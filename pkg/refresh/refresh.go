// Package refresh keeps a dashboard payload fresh by polling it on a fixed
// interval.
//
// A [Controller] runs two independent loops: one fetches the payload every
// Interval, the other recomputes the time remaining until the next refresh
// every second. Both read and write the shared state under a mutex; they are
// not otherwise coordinated. A manual [Controller.Refresh] fetches out of
// band without resetting the poll ticker.
//
// # Usage
//
//	c := refresh.New(&refresh.HTTPFetcher{BaseURL: "http://localhost:8080", Username: "octocat"}, 0)
//	go c.Run(ctx)
//	for st := range c.Updates() {
//	    render(st)
//	}
package refresh

import (
	"context"
	"sync"
	"time"

	"github.com/matzehuels/ghdash/pkg/dashboard"
)

// Default timings.
const (
	DefaultInterval = 5 * time.Minute
	DefaultTick     = time.Second
)

// Fetcher retrieves the current dashboard payload.
type Fetcher interface {
	Fetch(ctx context.Context) (*dashboard.Response, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context) (*dashboard.Response, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context) (*dashboard.Response, error) { return f(ctx) }

// State is a snapshot of the controller.
type State struct {
	Data        *dashboard.Response // last successful payload, nil before the first
	Err         error               // error of the most recent fetch, nil on success
	Loading     bool                // a fetch is in flight
	LastRefresh time.Time           // completion time of the last successful fetch
	Remaining   time.Duration       // time until the next scheduled refresh
}

// Controller polls a Fetcher and publishes state changes.
type Controller struct {
	interval time.Duration
	tick     time.Duration
	fetcher  Fetcher
	now      func() time.Time

	mu      sync.Mutex
	state   State
	updates chan State
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the time source used for the countdown.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithTick sets the countdown tick. Default DefaultTick.
func WithTick(d time.Duration) Option {
	return func(c *Controller) { c.tick = d }
}

// New creates a Controller. An interval <= 0 means DefaultInterval.
func New(f Fetcher, interval time.Duration, opts ...Option) *Controller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	c := &Controller{
		interval: interval,
		tick:     DefaultTick,
		fetcher:  f,
		now:      time.Now,
		updates:  make(chan State, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = State{LastRefresh: c.now(), Remaining: interval}
	return c
}

// Interval returns the poll interval.
func (c *Controller) Interval() time.Duration { return c.interval }

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Updates delivers the latest state after every change. Only the newest
// undelivered state is kept; slow readers skip intermediate states.
func (c *Controller) Updates() <-chan State {
	return c.updates
}

// Run fetches once, then keeps polling and counting down until ctx is done.
// It returns ctx.Err().
func (c *Controller) Run(ctx context.Context) error {
	c.Refresh(ctx)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		c.loop(ctx, c.interval, func() { c.Refresh(ctx) })
	}()
	go func() {
		defer wg.Done()
		c.loop(ctx, c.tick, c.countdown)
	}()
	wg.Wait()
	return ctx.Err()
}

func (c *Controller) loop(ctx context.Context, every time.Duration, fn func()) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			fn()
		}
	}
}

// Refresh fetches immediately. On success the payload replaces the previous
// one, the error is cleared and the countdown restarts. On failure the
// previous payload and countdown are kept and the error is recorded.
func (c *Controller) Refresh(ctx context.Context) {
	c.update(func(s *State) { s.Loading = true })

	data, err := c.fetcher.Fetch(ctx)

	c.update(func(s *State) {
		s.Loading = false
		if err != nil {
			s.Err = err
			return
		}
		s.Data = data
		s.Err = nil
		s.LastRefresh = c.now()
		s.Remaining = c.interval
	})
}

// countdown recomputes the time remaining until the next refresh.
func (c *Controller) countdown() {
	c.update(func(s *State) {
		s.Remaining = max(0, c.interval-c.now().Sub(s.LastRefresh))
	})
}

func (c *Controller) update(fn func(*State)) {
	c.mu.Lock()
	fn(&c.state)
	st := c.state
	c.mu.Unlock()
	c.publish(st)
}

// publish replaces any undelivered state with st.
func (c *Controller) publish(st State) {
	for {
		select {
		case c.updates <- st:
			return
		default:
		}
		select {
		case <-c.updates:
		default:
		}
	}
}
