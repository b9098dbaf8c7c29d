/*
Package trips provides the trip dataset model and time interpolation.

A dataset is the JSON produced by the simulation pipeline:

	{
	  "metadata": {"insertion_rate": 600, "closed_edges": ["E12", "E13"]},
	  "trips": [
	    {"id": "veh0", "path": [[lon, lat, t, speed, ratio, angle], ...]},
	    ...
	  ]
	}

Path rows are positional and may omit trailing fields; speed and angle
default to 0 and a missing ratio is recorded as absent. Rows are ordered by
ascending time.

Trajectories are immutable once parsed. SampleAt resamples a trajectory at an
arbitrary playback time: exact timestamps return the recorded sample
verbatim, times between samples are linearly interpolated, and times outside
the trajectory's lifespan return no sample at all (the vehicle is not yet
inserted or has arrived).
*/
package trips
