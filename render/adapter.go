package render

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/trip-replay/config"
	"github.com/theoremus-urban-solutions/trip-replay/network"
	"github.com/theoremus-urban-solutions/trip-replay/trips"
)

// DefaultSettleDelay is the pause between tearing a backend down and
// constructing its replacement, giving the host environment time to release
// surface resources.
const DefaultSettleDelay = 100 * time.Millisecond

// Adapter owns exactly one live rendering backend and translates the data
// model into that backend's layer list. Mode switches are transactional:
// complete teardown, settle delay, rebuild. All entry points are serialized
// on one mutex, so a second Activate cannot begin before the prior one has
// finished tearing down.
type Adapter struct {
	mu       sync.Mutex
	backends map[Mode]Backend
	cfg      config.AppConfig
	log      *zap.Logger
	assigner *ModelAssigner

	mode       Mode
	live       Backend
	handle     Handle
	cancelHook func()
	// instance identifies the current backend construction; frame hook
	// closures capture their instance and go quiet once it is replaced.
	instance atomic.Pointer[uuid.UUID]

	frameFn func(now time.Time)
	settle  time.Duration

	ds     *trips.Dataset
	geom   *network.Geometry
	closed map[string]struct{}
}

// NewAdapter creates an adapter over the given mode-to-backend registry.
func NewAdapter(backends map[Mode]Backend, cfg config.AppConfig, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{
		backends: backends,
		cfg:      cfg,
		log:      log,
		assigner: NewModelAssigner(cfg.Render.ModelSeed),
		settle:   DefaultSettleDelay,
	}
}

// SetSettleDelay overrides the teardown/rebuild settle delay.
func (a *Adapter) SetSettleDelay(d time.Duration) {
	a.mu.Lock()
	a.settle = d
	a.mu.Unlock()
}

// Mode returns the active view mode, or empty when no backend is live.
func (a *Adapter) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.live == nil {
		return ""
	}
	return a.mode
}

// SetDataset swaps the trip dataset and derived network geometry the adapter
// renders from. Both are replaced wholesale; the closed-edge set is taken
// from the dataset's metadata.
func (a *Adapter) SetDataset(ds *trips.Dataset, geom *network.Geometry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ds = ds
	a.geom = geom
	if ds != nil {
		a.closed = ds.ClosedEdgeSet()
	} else {
		a.closed = nil
	}
	trsCount := 0
	if ds != nil {
		trsCount = len(ds.Trips)
	}
	a.log.Info("dataset updated", zap.Int("trajectories", trsCount))
}

// Activate tears down the live backend, waits out the settle delay, and
// constructs the backend for the requested mode. On construction failure the
// adapter is left with no live backend and no partial state; the caller may
// retry. The call is synchronous: when it returns, the switch is complete.
func (a *Adapter) Activate(ctx context.Context, mode Mode) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	b, ok := a.backends[mode]
	if !ok {
		return errors.Newf("no backend registered for mode %q", mode)
	}

	a.teardownLocked()

	if a.settle > 0 {
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "activation cancelled during settle")
		case <-time.After(a.settle):
		}
	}

	view := a.initialViewLocked()
	h, err := b.Construct(view)
	if err != nil {
		return errors.Wrapf(err, "construct %s backend", mode)
	}

	a.live, a.handle, a.mode = b, h, mode
	inst := uuid.New()
	a.instance.Store(&inst)
	a.registerHookLocked()

	a.log.Info("backend activated",
		zap.String("mode", string(mode)),
		zap.String("instance", inst.String()),
		zap.Float64("centerLon", view.Center[0]),
		zap.Float64("centerLat", view.Center[1]))
	return nil
}

// Deactivate tears down the live backend, if any.
func (a *Adapter) Deactivate() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.teardownLocked()
}

// Start registers fn as the per-frame callback, hooking it into the live
// backend when one is up. Together with Stop this lets the adapter act as
// the tick source for a playback clock on event-driven backends.
func (a *Adapter) Start(fn func(now time.Time)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.frameFn = fn
	a.registerHookLocked()
}

// Stop cancels the per-frame callback.
func (a *Adapter) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.cancelHook != nil {
		a.cancelHook()
		a.cancelHook = nil
	}
	a.frameFn = nil
}

// RenderFrame recomputes the full layer list for playback time t and pushes
// it to the live backend. With no live backend or no data it is a quiet
// no-op; per-item problems are logged and never abort the pass. For
// identical (t, dataset, closed set) inputs the pushed layers are identical.
func (a *Adapter) RenderFrame(t float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.live == nil {
		return
	}
	layers := a.buildLayersLocked(t)
	if err := a.live.SetLayers(a.handle, layers); err != nil {
		a.log.Warn("backend rejected layer update",
			zap.String("mode", string(a.mode)), zap.Error(err))
	}
}

// BuildLayers returns the layer list for time t without pushing it: the
// same pure derivation RenderFrame uses.
func (a *Adapter) BuildLayers(t float64) []Layer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.buildLayersLocked(t)
}

func (a *Adapter) buildLayersLocked(t float64) []Layer {
	layers := BuildNetworkLayers(a.geom, a.closed)
	if vehicles, ok := BuildVehicleLayer(a.ds, t, a.mode, a.assigner); ok {
		layers = append(layers, vehicles)
	}
	return layers
}

// teardownLocked releases the live backend completely: frame hook first,
// then the surface, then the bookkeeping.
func (a *Adapter) teardownLocked() {
	if a.live == nil {
		return
	}
	if a.cancelHook != nil {
		a.cancelHook()
		a.cancelHook = nil
	}
	a.live.Destroy(a.handle)
	a.log.Info("backend destroyed", zap.String("mode", string(a.mode)))
	a.live, a.handle, a.mode = nil, nil, ""
	a.instance.Store(nil)
}

func (a *Adapter) registerHookLocked() {
	if a.frameFn == nil || a.live == nil {
		return
	}
	if a.cancelHook != nil {
		a.cancelHook()
		a.cancelHook = nil
	}
	inst := a.instance.Load()
	fn := a.frameFn
	cancel := a.live.RegisterFrameHook(a.handle, func(now time.Time) {
		// A tick from a torn-down backend instance must never render.
		if cur := a.instance.Load(); cur == nil || inst == nil || *cur != *inst {
			return
		}
		fn(now)
	})
	a.cancelHook = cancel
}

// initialViewLocked derives the starting camera framing: bounding box of the
// loaded network geometry, else the first point of the first trajectory,
// else the configured default coordinate.
func (a *Adapter) initialViewLocked() View {
	view := View{Zoom: a.cfg.Render.DefaultZoom}
	if a.geom != nil && a.geom.HasBound {
		c := a.geom.Bound.Center()
		view.Center = [2]float64{c[0], c[1]}
		return view
	}
	if a.ds != nil {
		for _, tr := range a.ds.Trips {
			if !tr.Empty() {
				s := tr.Samples[0]
				view.Center = [2]float64{s.Lon, s.Lat}
				return view
			}
		}
	}
	if len(a.cfg.Render.DefaultCenter) == 2 {
		view.Center = [2]float64{a.cfg.Render.DefaultCenter[0], a.cfg.Render.DefaultCenter[1]}
	}
	return view
}
