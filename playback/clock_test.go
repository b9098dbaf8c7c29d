package playback

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualTicker drives the clock by hand so tests simulate time without real
// delays.
type manualTicker struct {
	fn      func(time.Time)
	stopped bool
}

func (m *manualTicker) Start(fn func(now time.Time)) { m.fn = fn }
func (m *manualTicker) Stop()                        { m.stopped = true; m.fn = nil }
func (m *manualTicker) fire(t time.Time) {
	if m.fn != nil {
		m.fn(t)
	}
}

func newTestClock(min, max float64) (*Clock, *manualTicker, *int) {
	ticks := &manualTicker{}
	renders := 0
	state := NewState(min, max)
	clock := NewClock(state, ticks, func(float64) { renders++ }, nil)
	clock.Start()
	return clock, ticks, &renders
}

func TestClockAdvancesByScaledDelta(t *testing.T) {
	tests := []struct {
		name    string
		speed   float64
		elapsed time.Duration
		want    float64
	}{
		{"1x", 1, 4 * time.Second, 4},
		{"2x", 2, 3 * time.Second, 6},
		{"half speed", 0.5, 10 * time.Second, 5},
		{"60x short tick", 60, 100 * time.Millisecond, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock, ticks, _ := newTestClock(0, 100)
			require.NoError(t, clock.SetSpeed(tt.speed))
			clock.Play()

			base := time.Unix(1000, 0)
			ticks.fire(base) // baseline only, advances 0
			assert.Equal(t, 0.0, clock.CurrentTime())
			ticks.fire(base.Add(tt.elapsed))
			assert.InDelta(t, tt.want, clock.CurrentTime(), 1e-9)
		})
	}
}

func TestClockStartsFromMinBound(t *testing.T) {
	clock, _, _ := newTestClock(30, 90)
	assert.Equal(t, 30.0, clock.CurrentTime())
	assert.False(t, clock.IsPlaying())
	assert.Equal(t, 1.0, clock.Speed())
}

func TestClockWrapsAroundNotClamps(t *testing.T) {
	clock, ticks, _ := newTestClock(10, 20)
	clock.Play()
	base := time.Unix(0, 0)
	ticks.fire(base)
	// 15s at 1x from t=10 overshoots max=20 by 5: wrap to 15.
	ticks.fire(base.Add(15 * time.Second))
	assert.InDelta(t, 15.0, clock.CurrentTime(), 1e-9)

	// Multiple laps still land inside [min, max).
	ticks.fire(base.Add(15 * time.Second).Add(33 * time.Second))
	got := clock.CurrentTime()
	assert.GreaterOrEqual(t, got, 10.0)
	assert.Less(t, got, 20.0)
}

func TestClockZeroSpanWrapsToMin(t *testing.T) {
	clock, ticks, _ := newTestClock(5, 5)
	clock.Play()
	base := time.Unix(0, 0)
	ticks.fire(base)
	ticks.fire(base.Add(time.Second))
	assert.Equal(t, 5.0, clock.CurrentTime())
}

func TestClockPausedTicksDoNothing(t *testing.T) {
	clock, ticks, renders := newTestClock(0, 100)
	base := time.Unix(0, 0)
	ticks.fire(base)
	ticks.fire(base.Add(5 * time.Second))
	assert.Equal(t, 0.0, clock.CurrentTime())
	assert.Equal(t, 0, *renders, "paused ticks must not trigger renders")
}

func TestClockFirstTickAfterResumeAdvancesZero(t *testing.T) {
	clock, ticks, _ := newTestClock(0, 100)
	clock.Play()
	base := time.Unix(0, 0)
	ticks.fire(base)
	ticks.fire(base.Add(2 * time.Second))
	assert.InDelta(t, 2.0, clock.CurrentTime(), 1e-9)

	clock.Pause()
	// A long pause passes in wall time.
	clock.Play()
	resumeAt := base.Add(2 * time.Minute)
	ticks.fire(resumeAt)
	assert.InDelta(t, 2.0, clock.CurrentTime(), 1e-9,
		"first tick after resume must not apply the pause duration")
	ticks.fire(resumeAt.Add(time.Second))
	assert.InDelta(t, 3.0, clock.CurrentTime(), 1e-9)
}

func TestClockScrub(t *testing.T) {
	clock, _, renders := newTestClock(10, 50)

	clock.Scrub(30)
	assert.Equal(t, 30.0, clock.CurrentTime())
	assert.Equal(t, 1, *renders, "scrub triggers exactly one render")
	assert.False(t, clock.IsPlaying(), "scrub must not change the run state")

	// Scrub input is clamped into bounds.
	clock.Scrub(-5)
	assert.Equal(t, 10.0, clock.CurrentTime())
	clock.Scrub(999)
	assert.Equal(t, 50.0, clock.CurrentTime())
	assert.Equal(t, 3, *renders)
}

func TestClockScrubWhilePlayingResetsBaseline(t *testing.T) {
	clock, ticks, _ := newTestClock(0, 1000)
	clock.Play()
	base := time.Unix(0, 0)
	ticks.fire(base)
	ticks.fire(base.Add(time.Second))

	clock.Scrub(100)
	assert.True(t, clock.IsPlaying())
	// Next tick re-establishes the baseline instead of measuring across
	// the scrub.
	ticks.fire(base.Add(10 * time.Second))
	assert.Equal(t, 100.0, clock.CurrentTime())
	ticks.fire(base.Add(11 * time.Second))
	assert.InDelta(t, 101.0, clock.CurrentTime(), 1e-9)
}

func TestClockSetSpeed(t *testing.T) {
	clock, _, _ := newTestClock(0, 10)
	assert.NoError(t, clock.SetSpeed(7.3), "any positive value is accepted")
	assert.Equal(t, 7.3, clock.Speed())
	assert.Error(t, clock.SetSpeed(0))
	assert.Error(t, clock.SetSpeed(-1))
	assert.Equal(t, 7.3, clock.Speed(), "rejected values must not stick")
}

func TestClockStopCancelsTicks(t *testing.T) {
	clock, ticks, renders := newTestClock(0, 10)
	clock.Play()
	clock.Stop()
	assert.True(t, ticks.stopped)
	ticks.fire(time.Unix(0, 0)) // stale tick, fn already cleared
	assert.Equal(t, 0, *renders)
}

func TestFrameTickerStopIsDeterministic(t *testing.T) {
	ft := NewFrameTicker(time.Millisecond)
	var count atomic.Int64
	ft.Start(func(time.Time) { count.Add(1) })

	deadline := time.Now().Add(time.Second)
	for count.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.Greater(t, count.Load(), int64(0), "ticker should have fired")

	ft.Stop()
	after := count.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, count.Load(), "no tick may fire after Stop returns")

	// Stop is idempotent and the ticker is restartable.
	ft.Stop()
	ft.Start(func(time.Time) { count.Add(1) })
	ft.Stop()
}
