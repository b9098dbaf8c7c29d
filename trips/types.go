package trips

// Sample is one timestamped observation within a trajectory.
type Sample struct {
	Lon   float64
	Lat   float64
	Time  float64 // seconds, dataset-relative
	Speed float64 // m/s
	Ratio float64 // speed / free-flow speed, valid only when HasRatio
	// HasRatio distinguishes a recorded zero ratio from an absent one.
	HasRatio bool
	Angle    float64 // heading, degrees
}

// Trajectory is the ordered time series of samples for one vehicle.
type Trajectory struct {
	ID      string
	Samples []Sample
}

// Empty reports whether the trajectory has no samples.
func (tr Trajectory) Empty() bool { return len(tr.Samples) == 0 }

// StartTime returns the first sample's timestamp, or 0 for an empty trajectory.
func (tr Trajectory) StartTime() float64 {
	if len(tr.Samples) == 0 {
		return 0
	}
	return tr.Samples[0].Time
}

// EndTime returns the last sample's timestamp, or 0 for an empty trajectory.
func (tr Trajectory) EndTime() float64 {
	if len(tr.Samples) == 0 {
		return 0
	}
	return tr.Samples[len(tr.Samples)-1].Time
}

// Metadata carries scenario-level information attached to a dataset.
type Metadata struct {
	ClosedEdges   []string
	InsertionRate int
}

// Dataset is a full set of trajectories plus scenario metadata. It is
// replaced wholesale when the dataset selection changes, never patched.
type Dataset struct {
	Trips    []Trajectory
	Metadata Metadata
}

// TimeBounds returns the global min and max sample timestamps across all
// trajectories. ok is false when no trajectory has any sample.
func (d *Dataset) TimeBounds() (min, max float64, ok bool) {
	for _, tr := range d.Trips {
		if tr.Empty() {
			continue
		}
		if !ok {
			min, max, ok = tr.StartTime(), tr.EndTime(), true
			continue
		}
		if s := tr.StartTime(); s < min {
			min = s
		}
		if e := tr.EndTime(); e > max {
			max = e
		}
	}
	return min, max, ok
}

// ClosedEdgeSet returns the metadata's closed edges as a set.
func (d *Dataset) ClosedEdgeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(d.Metadata.ClosedEdges))
	for _, e := range d.Metadata.ClosedEdges {
		set[e] = struct{}{}
	}
	return set
}
