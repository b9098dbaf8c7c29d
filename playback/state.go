package playback

// State holds the playback position and bounds for one view instance.
// It is mutated only by the Clock and by direct user scrubbing through the
// Clock's setters.
type State struct {
	Current float64
	MinTime float64
	MaxTime float64
	Playing bool
	Speed   float64
}

// NewState creates a paused state at the minimum bound with 1x speed.
func NewState(min, max float64) *State {
	return &State{Current: min, MinTime: min, MaxTime: max, Speed: 1}
}

// Reset snaps the current time back to the minimum bound. Called whenever
// the active dataset changes.
func (s *State) Reset() { s.Current = s.MinTime }

// SetBounds replaces the time bounds and clamps the current time into them.
func (s *State) SetBounds(min, max float64) {
	s.MinTime, s.MaxTime = min, max
	if s.Current < min {
		s.Current = min
	}
	if s.Current > max {
		s.Current = max
	}
}
