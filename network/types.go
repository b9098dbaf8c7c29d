package network

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RawNetwork is a decoded network feature collection, kept opaque until
// derivation.
type RawNetwork struct {
	FC *geojson.FeatureCollection
}

// LaneAttributes are the source lane properties carried onto every piece of
// geometry derived from that lane.
type LaneAttributes struct {
	ID      string
	Allowed []string
	Width   float64
	Tunnel  bool
}

// LanePolygon is a buffered lane centerline.
type LanePolygon struct {
	Ring  orb.Polygon
	Attrs LaneAttributes
}

// JunctionPolygon is a closed junction shape.
type JunctionPolygon struct {
	Ring orb.Polygon
	ID   string
}

// ArrowMarker is a directional marker at the end of a lane: a triangular
// head plus a short stem line trailing behind it.
type ArrowMarker struct {
	Head  orb.Polygon
	Stem  orb.LineString
	Attrs LaneAttributes
}

// Geometry is the derived, cached artifact consumed by the render layer.
type Geometry struct {
	Lanes     []LanePolygon
	Junctions []JunctionPolygon
	Arrows    []ArrowMarker

	// Bound is the union bound of all lane polygons, used for initial
	// camera framing. Valid only when HasBound is true.
	Bound    orb.Bound
	HasBound bool
}

// EdgeIDForLane maps a lane identifier to its parent edge identifier. Lane
// IDs follow the edgeID_laneIndex convention; an ID without an index is its
// own edge.
func EdgeIDForLane(laneID string) string {
	i := strings.LastIndex(laneID, "_")
	if i <= 0 {
		return laneID
	}
	return laneID[:i]
}
