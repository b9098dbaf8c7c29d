package render

import (
	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/trip-replay/network"
	"github.com/theoremus-urban-solutions/trip-replay/trips"
)

// Mode selects between the two view presentations of the same data.
type Mode string

const (
	ModeFlat        Mode = "flat"
	ModePerspective Mode = "perspective"
)

// LayerKind identifies what a layer contains.
type LayerKind string

const (
	LayerLanes     LayerKind = "lanes"
	LayerJunctions LayerKind = "junctions"
	LayerArrows    LayerKind = "arrows"
	LayerVehicles  LayerKind = "vehicles"
)

// Feature is one drawable geometry plus style attributes. Backends treat it
// as opaque.
type Feature struct {
	Geometry orb.Geometry
	Props    map[string]any
}

// Layer is a named geometry collection pushed to a backend.
type Layer struct {
	ID       string
	Kind     LayerKind
	Features []Feature
}

// BuildNetworkLayers derives the road layers from cached network geometry
// and the scenario's closed-edge set. It is a pure function of those two
// inputs; a nil geometry yields no layers. Closure affects styling only.
func BuildNetworkLayers(geom *network.Geometry, closed map[string]struct{}) []Layer {
	if geom == nil {
		return nil
	}
	var layers []Layer

	if len(geom.Lanes) > 0 {
		lanes := Layer{ID: "network-lanes", Kind: LayerLanes}
		for _, lane := range geom.Lanes {
			lanes.Features = append(lanes.Features, Feature{
				Geometry: lane.Ring,
				Props: map[string]any{
					"id":     lane.Attrs.ID,
					"width":  lane.Attrs.Width,
					"tunnel": lane.Attrs.Tunnel,
					"closed": laneClosed(lane.Attrs.ID, closed),
				},
			})
		}
		layers = append(layers, lanes)
	}

	if len(geom.Junctions) > 0 {
		junctions := Layer{ID: "network-junctions", Kind: LayerJunctions}
		for _, j := range geom.Junctions {
			junctions.Features = append(junctions.Features, Feature{
				Geometry: j.Ring,
				Props:    map[string]any{"id": j.ID},
			})
		}
		layers = append(layers, junctions)
	}

	if len(geom.Arrows) > 0 {
		arrows := Layer{ID: "network-arrows", Kind: LayerArrows}
		for _, arrow := range geom.Arrows {
			closedFlag := laneClosed(arrow.Attrs.ID, closed)
			arrows.Features = append(arrows.Features,
				Feature{
					Geometry: arrow.Head,
					Props:    map[string]any{"id": arrow.Attrs.ID, "part": "head", "closed": closedFlag},
				},
				Feature{
					Geometry: arrow.Stem,
					Props:    map[string]any{"id": arrow.Attrs.ID, "part": "stem", "closed": closedFlag},
				})
		}
		layers = append(layers, arrows)
	}
	return layers
}

// BuildVehicleLayer derives one marker per trajectory alive at time t. The
// mode changes only how a vehicle is drawn (icon vs assigned model), never
// which vehicles appear. An empty layer (no vehicle alive) has ok false.
func BuildVehicleLayer(ds *trips.Dataset, t float64, mode Mode, assigner *ModelAssigner) (Layer, bool) {
	layer := Layer{ID: "vehicles", Kind: LayerVehicles}
	if ds == nil {
		return layer, false
	}
	for _, tr := range ds.Trips {
		s, ok := trips.SampleAt(tr, t)
		if !ok {
			continue
		}
		ratio := 0.0
		if s.HasRatio {
			ratio = s.Ratio
		}
		props := map[string]any{
			"id":    tr.ID,
			"angle": s.Angle,
			"speed": s.Speed,
			"color": ColorForRatio(ratio),
		}
		if mode == ModePerspective && assigner != nil {
			props["model"] = assigner.ModelFor(tr.ID)
		}
		layer.Features = append(layer.Features, Feature{
			Geometry: orb.Point{s.Lon, s.Lat},
			Props:    props,
		})
	}
	return layer, len(layer.Features) > 0
}

// laneClosed reports whether a lane belongs to a closed edge, matching
// either the lane ID itself or its parent edge ID.
func laneClosed(laneID string, closed map[string]struct{}) bool {
	if len(closed) == 0 {
		return false
	}
	if _, ok := closed[laneID]; ok {
		return true
	}
	_, ok := closed[network.EdgeIDForLane(laneID)]
	return ok
}
