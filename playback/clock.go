package playback

import (
	"math"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Clock advances a State from a TickSource and notifies onFrame after every
// advancement. Within one tick the ordering is fixed: time advances first,
// then onFrame runs with the new value.
type Clock struct {
	mu      sync.Mutex
	state   *State
	ticks   TickSource
	onFrame func(t float64)
	log     *zap.Logger

	lastTick time.Time
	hasLast  bool
}

// NewClock wires a state to a tick source. onFrame may be nil.
func NewClock(state *State, ticks TickSource, onFrame func(t float64), log *zap.Logger) *Clock {
	if log == nil {
		log = zap.NewNop()
	}
	return &Clock{state: state, ticks: ticks, onFrame: onFrame, log: log}
}

// Start begins scheduling ticks. Ticks run even while paused so that
// resuming is low-latency; a paused tick performs no advancement and no
// render.
func (c *Clock) Start() {
	c.ticks.Start(c.tick)
}

// Stop cancels tick scheduling. The underlying TickSource guarantees no tick
// fires after Stop returns.
func (c *Clock) Stop() {
	c.ticks.Stop()
}

// Play resumes advancement. The next tick only records its timestamp and
// advances by zero, so a long pause never produces a synthetic jump.
func (c *Clock) Play() {
	c.mu.Lock()
	c.state.Playing = true
	c.hasLast = false
	c.mu.Unlock()
}

// Pause halts advancement without stopping tick scheduling.
func (c *Clock) Pause() {
	c.mu.Lock()
	c.state.Playing = false
	c.hasLast = false
	c.mu.Unlock()
}

// SetSpeed sets the speed multiplier. Any positive value is accepted; the UI
// restricts itself to a fixed set but the contract does not.
func (c *Clock) SetSpeed(v float64) error {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.Newf("speed multiplier must be positive, got %g", v)
	}
	c.mu.Lock()
	c.state.Speed = v
	c.mu.Unlock()
	return nil
}

// Scrub sets the current time directly, clamped into the bounds, and
// triggers exactly one render without changing the play/pause state.
func (c *Clock) Scrub(t float64) {
	c.mu.Lock()
	if t < c.state.MinTime {
		t = c.state.MinTime
	}
	if t > c.state.MaxTime {
		t = c.state.MaxTime
	}
	c.state.Current = t
	// Drop the tick baseline so a running clock measures its next delta
	// from after the scrub, not across it.
	c.hasLast = false
	fn := c.onFrame
	c.mu.Unlock()
	if fn != nil {
		fn(t)
	}
}

// CurrentTime returns the current playback time.
func (c *Clock) CurrentTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Current
}

// IsPlaying reports whether the clock is advancing.
func (c *Clock) IsPlaying() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Playing
}

// Speed returns the current speed multiplier.
func (c *Clock) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Speed
}

func (c *Clock) tick(now time.Time) {
	c.mu.Lock()
	if !c.state.Playing {
		c.hasLast = false
		c.mu.Unlock()
		return
	}
	if !c.hasLast {
		c.lastTick = now
		c.hasLast = true
		c.mu.Unlock()
		return
	}
	delta := now.Sub(c.lastTick).Seconds()
	c.lastTick = now

	cur := c.state.Current + delta*c.state.Speed
	wrapped := false
	if cur > c.state.MaxTime {
		span := c.state.MaxTime - c.state.MinTime
		if span <= 0 {
			cur = c.state.MinTime
		} else {
			// Hard wrap-around, never a clamp: playback is cyclic.
			cur = c.state.MinTime + math.Mod(cur-c.state.MinTime, span)
		}
		wrapped = true
	}
	c.state.Current = cur
	fn := c.onFrame
	c.mu.Unlock()
	if wrapped {
		c.log.Debug("playback wrapped to start", zap.Float64("time", cur))
	}
	if fn != nil {
		fn(cur)
	}
}
