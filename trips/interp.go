package trips

import "sort"

// SampleAt resamples a trajectory at query time t.
//
// Outside [StartTime, EndTime] the vehicle does not exist and no sample is
// returned. An exact timestamp match returns the recorded sample verbatim.
// Anywhere in between, the bracketing pair is found by binary search and
// position, speed and angle are interpolated linearly. A ratio is
// interpolated only when both endpoints carry one; a single-sided ratio is
// used as-is and two absent ratios yield an absent ratio.
//
// SampleAt is pure: identical inputs always produce identical output.
func SampleAt(tr Trajectory, t float64) (Sample, bool) {
	n := len(tr.Samples)
	if n == 0 {
		return Sample{}, false
	}
	first := tr.Samples[0]
	last := tr.Samples[n-1]
	if t < first.Time || t > last.Time {
		return Sample{}, false
	}
	if t == first.Time {
		return first, true
	}
	if t == last.Time {
		return last, true
	}

	// First sample with Time >= t. Since first.Time < t < last.Time the
	// index is in (0, n-1].
	i := sort.Search(n, func(i int) bool { return tr.Samples[i].Time >= t })
	p1 := tr.Samples[i]
	if p1.Time == t {
		return p1, true
	}
	p0 := tr.Samples[i-1]

	f := 0.0
	if dt := p1.Time - p0.Time; dt > 0 {
		f = (t - p0.Time) / dt
	}

	s := Sample{
		Lon:   lerp(p0.Lon, p1.Lon, f),
		Lat:   lerp(p0.Lat, p1.Lat, f),
		Time:  t,
		Speed: lerp(p0.Speed, p1.Speed, f),
		Angle: lerp(p0.Angle, p1.Angle, f),
	}
	switch {
	case p0.HasRatio && p1.HasRatio:
		s.Ratio = lerp(p0.Ratio, p1.Ratio, f)
		s.HasRatio = true
	case p0.HasRatio:
		s.Ratio = p0.Ratio
		s.HasRatio = true
	case p1.HasRatio:
		s.Ratio = p1.Ratio
		s.HasRatio = true
	}
	return s, true
}

func lerp(a, b, f float64) float64 { return a + (b-a)*f }
