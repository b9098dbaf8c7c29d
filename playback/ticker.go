package playback

import (
	"sync"
	"time"
)

// TickSource schedules repeated callbacks. Start begins delivery and Stop
// cancels it; after Stop returns, the callback must not run again. The
// production implementation is FrameTicker; tests substitute a manual source.
type TickSource interface {
	Start(fn func(now time.Time))
	Stop()
}

// FrameTicker is a wall-clock TickSource backed by a time.Ticker.
type FrameTicker struct {
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewFrameTicker creates a ticker firing at the given interval. An interval
// of zero defaults to roughly 60 ticks per second.
func NewFrameTicker(interval time.Duration) *FrameTicker {
	if interval <= 0 {
		interval = time.Second / 60
	}
	return &FrameTicker{interval: interval}
}

// Start begins delivering ticks to fn on a dedicated goroutine. A second
// Start without an intervening Stop is a no-op.
func (ft *FrameTicker) Start(fn func(now time.Time)) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	if ft.stop != nil {
		return
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	ft.stop, ft.done = stop, done
	go func() {
		defer close(done)
		t := time.NewTicker(ft.interval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case now := <-t.C:
				fn(now)
			}
		}
	}()
}

// Stop cancels ticking. It blocks until the delivery goroutine has exited,
// so no tick fires after Stop returns.
func (ft *FrameTicker) Stop() {
	ft.mu.Lock()
	stop, done := ft.stop, ft.done
	ft.stop, ft.done = nil, nil
	ft.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}
