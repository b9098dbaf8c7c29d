package trips

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

type wireDataset struct {
	Trips    []wireTrip   `json:"trips"`
	Metadata wireMetadata `json:"metadata"`
}

type wireTrip struct {
	ID   string            `json:"id"`
	Path []json.RawMessage `json:"path"`
}

type wireMetadata struct {
	ClosedEdges   []string `json:"closed_edges"`
	InsertionRate *int     `json:"insertion_rate"`
}

// LoadDataset reads and parses a trips JSON file.
func LoadDataset(path string, log *zap.Logger) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read trips %s", path)
	}
	return ParseDataset(data, log)
}

// ParseDataset decodes a trips dataset. Malformed path rows are skipped with
// a diagnostic; only a structurally invalid document is an error.
func ParseDataset(data []byte, log *zap.Logger) (*Dataset, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var wire wireDataset
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, errors.Wrap(err, "parse trips dataset")
	}

	ds := &Dataset{
		Trips: make([]Trajectory, 0, len(wire.Trips)),
		Metadata: Metadata{
			ClosedEdges: wire.Metadata.ClosedEdges,
		},
	}
	if wire.Metadata.InsertionRate != nil {
		ds.Metadata.InsertionRate = *wire.Metadata.InsertionRate
	}

	for _, wt := range wire.Trips {
		tr := Trajectory{ID: wt.ID, Samples: make([]Sample, 0, len(wt.Path))}
		for i, raw := range wt.Path {
			s, ok := decodePathRow(raw)
			if !ok {
				log.Warn("skipping malformed path row",
					zap.String("trip", wt.ID), zap.Int("row", i))
				continue
			}
			tr.Samples = append(tr.Samples, s)
		}
		if !sort.SliceIsSorted(tr.Samples, func(a, b int) bool {
			return tr.Samples[a].Time < tr.Samples[b].Time
		}) {
			log.Warn("path rows out of order, sorting", zap.String("trip", wt.ID))
			sort.SliceStable(tr.Samples, func(a, b int) bool {
				return tr.Samples[a].Time < tr.Samples[b].Time
			})
		}
		if len(tr.Samples) < 2 {
			log.Debug("trajectory has fewer than two samples",
				zap.String("trip", wt.ID), zap.Int("samples", len(tr.Samples)))
		}
		ds.Trips = append(ds.Trips, tr)
	}
	return ds, nil
}

// decodePathRow decodes one positional [lon, lat, t, speed?, ratio?, angle?]
// row. Rows need at least lon, lat and t to be usable.
func decodePathRow(raw json.RawMessage) (Sample, bool) {
	var row []float64
	if err := json.Unmarshal(raw, &row); err != nil {
		return Sample{}, false
	}
	if len(row) < 3 {
		return Sample{}, false
	}
	s := Sample{Lon: row[0], Lat: row[1], Time: row[2]}
	if len(row) > 3 {
		s.Speed = row[3]
	}
	if len(row) > 4 {
		s.Ratio = row[4]
		s.HasRatio = true
	}
	if len(row) > 5 {
		s.Angle = row[5]
	}
	return s, true
}
