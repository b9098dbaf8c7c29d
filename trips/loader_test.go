package trips

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `{
  "metadata": {"insertion_rate": 600, "closed_edges": ["E12", "E13"]},
  "trips": [
    {"id": "veh0", "path": [[10.0, 59.0, 0, 8.0, 0.4, 90], [10.001, 59.0, 5, 9.0, 0.5, 90]]},
    {"id": "veh1", "path": [[10.0, 59.1, 2], [10.0, 59.2, 9]]}
  ]
}`

func TestParseDataset(t *testing.T) {
	ds, err := ParseDataset([]byte(sampleDoc), nil)
	require.NoError(t, err)
	require.Len(t, ds.Trips, 2)

	assert.Equal(t, "veh0", ds.Trips[0].ID)
	assert.Equal(t, 600, ds.Metadata.InsertionRate)
	assert.Equal(t, []string{"E12", "E13"}, ds.Metadata.ClosedEdges)

	full := ds.Trips[0].Samples[0]
	assert.Equal(t, 10.0, full.Lon)
	assert.Equal(t, 59.0, full.Lat)
	assert.Equal(t, 0.0, full.Time)
	assert.Equal(t, 8.0, full.Speed)
	assert.True(t, full.HasRatio)
	assert.Equal(t, 0.4, full.Ratio)
	assert.Equal(t, 90.0, full.Angle)

	// Short rows default the tail fields.
	short := ds.Trips[1].Samples[0]
	assert.Equal(t, 0.0, short.Speed)
	assert.False(t, short.HasRatio)
	assert.Equal(t, 0.0, short.Angle)
}

func TestParseDatasetSkipsMalformedRows(t *testing.T) {
	doc := `{"trips": [{"id": "v", "path": [[1, 2], ["x", "y", "z"], [1, 2, 3], [1.5, 2.5, 7]]}]}`
	ds, err := ParseDataset([]byte(doc), nil)
	require.NoError(t, err)
	require.Len(t, ds.Trips, 1)
	// Two usable rows survive; the two-element and non-numeric rows are dropped.
	assert.Len(t, ds.Trips[0].Samples, 2)
	assert.Equal(t, 3.0, ds.Trips[0].Samples[0].Time)
	assert.Equal(t, 7.0, ds.Trips[0].Samples[1].Time)
}

func TestParseDatasetSortsOutOfOrderRows(t *testing.T) {
	doc := `{"trips": [{"id": "v", "path": [[0, 0, 10], [0, 0, 5], [0, 0, 20]]}]}`
	ds, err := ParseDataset([]byte(doc), nil)
	require.NoError(t, err)
	tr := ds.Trips[0]
	require.Len(t, tr.Samples, 3)
	assert.Equal(t, 5.0, tr.StartTime())
	assert.Equal(t, 20.0, tr.EndTime())
}

func TestParseDatasetRejectsInvalidDocument(t *testing.T) {
	_, err := ParseDataset([]byte("not json"), nil)
	assert.Error(t, err)
}

func TestTimeBounds(t *testing.T) {
	ds, err := ParseDataset([]byte(sampleDoc), nil)
	require.NoError(t, err)
	min, max, ok := ds.TimeBounds()
	require.True(t, ok)
	assert.Equal(t, 0.0, min)
	assert.Equal(t, 9.0, max)
}

func TestTimeBoundsEmpty(t *testing.T) {
	var ds Dataset
	_, _, ok := ds.TimeBounds()
	assert.False(t, ok)

	ds.Trips = []Trajectory{{ID: "empty"}}
	_, _, ok = ds.TimeBounds()
	assert.False(t, ok, "trajectories without samples must not contribute bounds")
}

func TestClosedEdgeSet(t *testing.T) {
	ds, err := ParseDataset([]byte(sampleDoc), nil)
	require.NoError(t, err)
	set := ds.ClosedEdgeSet()
	assert.Contains(t, set, "E12")
	assert.Contains(t, set, "E13")
	assert.NotContains(t, set, "E14")
}
