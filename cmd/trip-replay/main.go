package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/trip-replay/config"
	"github.com/theoremus-urban-solutions/trip-replay/dataset"
	"github.com/theoremus-urban-solutions/trip-replay/internal"
	"github.com/theoremus-urban-solutions/trip-replay/playback"
	"github.com/theoremus-urban-solutions/trip-replay/render"
)

// headlessBackend satisfies the backend contract without a rendering engine,
// recording the last pushed layer list for the summary output.
type headlessBackend struct {
	mu     sync.Mutex
	layers []render.Layer
	pushes int
}

func (b *headlessBackend) Construct(view render.View) (render.Handle, error) {
	return struct{}{}, nil
}

func (b *headlessBackend) SetLayers(_ render.Handle, layers []render.Layer) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.layers = layers
	b.pushes++
	return nil
}

func (b *headlessBackend) Destroy(_ render.Handle) {}

func (b *headlessBackend) RegisterFrameHook(_ render.Handle, fn func(now time.Time)) func() {
	return nil
}

type layerSummary struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Features int    `json:"features"`
}

type summary struct {
	Mode       string         `json:"mode"`
	MinTime    float64        `json:"minTime"`
	MaxTime    float64        `json:"maxTime"`
	RenderTime float64        `json:"renderTime"`
	Frames     int            `json:"frames"`
	Layers     []layerSummary `json:"layers"`
}

func main() {
	configPath := flag.String("config", "", "path to config.yml (optional)")
	tripsPath := flag.String("trips", "", "path to trips JSON")
	networkPath := flag.String("network", "", "path to network GeoJSON")
	mode := flag.String("mode", "flat", "flat|perspective")
	at := flag.Float64("t", -1, "playback time to render; -1 renders at the minimum bound")
	play := flag.Duration("play", 0, "play for this wall duration before the final render")
	speed := flag.Float64("speed", 1, "speed multiplier while playing")
	flag.Parse()

	log := internal.NewLogger()
	defer log.Sync()

	cfg := config.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadAppConfig(*configPath)
		if err != nil {
			log.Fatal("config load failed", zap.Error(err))
		}
	}

	ctx := context.Background()
	store := dataset.NewStore(cfg, log)
	if err := dataset.LoadIntoStore(ctx, store, *tripsPath, *networkPath, log); err != nil {
		log.Fatal("dataset load failed", zap.Error(err))
	}
	snap := store.Snapshot()

	backend := &headlessBackend{}
	adapter := render.NewAdapter(map[render.Mode]render.Backend{
		render.Mode(*mode): backend,
	}, cfg, log)
	adapter.SetDataset(snap.Trips, snap.Geometry)
	if err := adapter.Activate(ctx, render.Mode(*mode)); err != nil {
		log.Fatal("backend activation failed", zap.Error(err))
	}
	defer adapter.Deactivate()

	min, max := store.TimeBounds()
	state := playback.NewState(min, max)
	clock := playback.NewClock(state, playback.NewFrameTicker(0),
		adapter.RenderFrame, log)
	if err := clock.SetSpeed(*speed); err != nil {
		log.Fatal("invalid speed", zap.Error(err))
	}

	if *play > 0 {
		clock.Start()
		clock.Play()
		time.Sleep(*play)
		clock.Stop()
	}

	renderTime := clock.CurrentTime()
	if *at >= 0 {
		clock.Scrub(*at)
		renderTime = clock.CurrentTime()
	} else if *play == 0 {
		adapter.RenderFrame(renderTime)
	}

	backend.mu.Lock()
	out := summary{
		Mode:       *mode,
		MinTime:    min,
		MaxTime:    max,
		RenderTime: renderTime,
		Frames:     backend.pushes,
	}
	for _, l := range backend.layers {
		out.Layers = append(out.Layers, layerSummary{
			ID:       l.ID,
			Kind:     string(l.Kind),
			Features: len(l.Features),
		})
	}
	backend.mu.Unlock()

	enc, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatal("encode summary", zap.Error(err))
	}
	fmt.Println(string(enc))
}
