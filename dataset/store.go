package dataset

import (
	"sync"

	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/trip-replay/config"
	"github.com/theoremus-urban-solutions/trip-replay/network"
	"github.com/theoremus-urban-solutions/trip-replay/trips"
)

// Snapshot is an immutable view of the store's contents. The referenced
// dataset and geometry are never mutated in place; a later snapshot simply
// points at replacements.
type Snapshot struct {
	Trips      *trips.Dataset
	Geometry   *network.Geometry
	Generation uint64
}

// Store holds the active dataset selection. Geometry is derived once per
// network change and cached; trajectories are immutable once set.
type Store struct {
	mu   sync.RWMutex
	cfg  config.AppConfig
	log  *zap.Logger
	ds   *trips.Dataset
	raw  *network.RawNetwork
	geom *network.Geometry
	gen  uint64
}

// NewStore creates an empty store.
func NewStore(cfg config.AppConfig, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{cfg: cfg, log: log}
}

// SetTrips replaces the trip dataset wholesale.
func (s *Store) SetTrips(ds *trips.Dataset) {
	s.mu.Lock()
	s.ds = ds
	s.gen++
	s.mu.Unlock()
}

// SetNetwork replaces the raw network and re-derives the cached geometry.
func (s *Store) SetNetwork(raw *network.RawNetwork) {
	geom := network.Derive(raw, s.cfg.Network, s.log)
	s.mu.Lock()
	s.raw = raw
	s.geom = geom
	s.gen++
	s.mu.Unlock()
}

// Snapshot returns the current contents.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Trips: s.ds, Geometry: s.geom, Generation: s.gen}
}

// TimeBounds returns the playback window for the current trips, falling back
// to the configured fixed window when no samples exist.
func (s *Store) TimeBounds() (min, max float64) {
	s.mu.RLock()
	ds := s.ds
	s.mu.RUnlock()
	if ds != nil {
		if lo, hi, ok := ds.TimeBounds(); ok {
			return lo, hi
		}
	}
	return s.cfg.Playback.FallbackMinTime, s.cfg.Playback.FallbackMaxTime
}
