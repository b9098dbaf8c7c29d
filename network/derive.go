package network

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/theoremus-urban-solutions/trip-replay/config"
)

// ParseRawNetwork decodes a network GeoJSON feature collection.
func ParseRawNetwork(data []byte) (*RawNetwork, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse network geojson")
	}
	return &RawNetwork{FC: fc}, nil
}

// LoadRawNetwork reads and parses a network GeoJSON file.
func LoadRawNetwork(path string) (*RawNetwork, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read network %s", path)
	}
	return ParseRawNetwork(data)
}

// Derive converts a raw network into renderable geometry. Lane features are
// filtered to those traversable by the configured highlight classes, buffered
// to their width, and given arrow markers; junction features become closed
// polygons. Malformed features are skipped with a diagnostic.
func Derive(raw *RawNetwork, cfg config.NetworkConfig, log *zap.Logger) *Geometry {
	if log == nil {
		log = zap.NewNop()
	}
	geom := &Geometry{}
	if raw == nil || raw.FC == nil {
		return geom
	}

	for i, f := range raw.FC.Features {
		if f == nil {
			continue
		}
		if isJunction(f) {
			deriveJunction(geom, f, i, log)
			continue
		}
		ls, ok := f.Geometry.(orb.LineString)
		if !ok {
			continue
		}
		attrs := parseLaneAttributes(f)
		if !allowsAny(attrs.Allowed, cfg.HighlightClasses) {
			continue
		}
		if len(ls) < 2 {
			log.Warn("skipping lane with too few points",
				zap.String("lane", attrs.ID), zap.Int("points", len(ls)))
			continue
		}
		width := attrs.Width
		if width <= 0 {
			width = cfg.DefaultLaneWidth
		}

		parts := bufferLineString(ls, width)
		part, ok := largestPart(parts)
		if !ok {
			log.Warn("lane buffering produced no polygon", zap.String("lane", attrs.ID))
			continue
		}
		geom.Lanes = append(geom.Lanes, LanePolygon{Ring: part, Attrs: attrs})
		geom.Arrows = append(geom.Arrows, arrowForLane(ls, attrs, cfg))

		b := part.Bound()
		if geom.HasBound {
			geom.Bound = geom.Bound.Union(b)
		} else {
			geom.Bound = b
			geom.HasBound = true
		}
	}
	log.Info("derived network geometry",
		zap.Int("lanes", len(geom.Lanes)),
		zap.Int("junctions", len(geom.Junctions)),
		zap.Int("arrows", len(geom.Arrows)))
	return geom
}

func deriveJunction(geom *Geometry, f *geojson.Feature, idx int, log *zap.Logger) {
	id := stringProp(f, "id")
	pts := junctionPoints(f.Geometry)
	if countDistinct(pts) <= 2 {
		log.Warn("skipping degenerate junction", zap.String("junction", id), zap.Int("feature", idx))
		return
	}
	ring := make(orb.Ring, 0, len(pts)+1)
	ring = append(ring, pts...)
	if ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}
	if ring.Orientation() == orb.CW {
		ring.Reverse()
	}
	geom.Junctions = append(geom.Junctions, JunctionPolygon{Ring: orb.Polygon{ring}, ID: id})
}

// arrowForLane builds the directional marker at the end of a lane: a
// fixed-size triangular head anchored at the last point and pointing along
// the lane, plus a stem line trailing behind it.
func arrowForLane(ls orb.LineString, attrs LaneAttributes, cfg config.NetworkConfig) ArrowMarker {
	end := ls[len(ls)-1]
	dx, dy := tailDirection(ls)
	px, py := -dy, dx

	tip := orb.Point{end[0] + dx*cfg.ArrowLength, end[1] + dy*cfg.ArrowLength}
	baseL := orb.Point{end[0] + px*cfg.ArrowWidth/2, end[1] + py*cfg.ArrowWidth/2}
	baseR := orb.Point{end[0] - px*cfg.ArrowWidth/2, end[1] - py*cfg.ArrowWidth/2}
	head := orb.Ring{baseL, baseR, tip, baseL}
	if head.Orientation() == orb.CW {
		head.Reverse()
	}

	stemStart := orb.Point{end[0] - dx*cfg.StemLength, end[1] - dy*cfg.StemLength}
	return ArrowMarker{
		Head:  orb.Polygon{head},
		Stem:  orb.LineString{stemStart, end},
		Attrs: attrs,
	}
}

// tailDirection returns the unit direction of the final distinct segment,
// walking backwards past coincident points. A fully degenerate polyline
// falls back to a unit vector pointing east.
func tailDirection(ls orb.LineString) (float64, float64) {
	end := ls[len(ls)-1]
	for i := len(ls) - 2; i >= 0; i-- {
		dx, dy := end[0]-ls[i][0], end[1]-ls[i][1]
		if l := math.Hypot(dx, dy); l > 0 {
			return dx / l, dy / l
		}
	}
	return 1, 0
}

func junctionPoints(g orb.Geometry) []orb.Point {
	switch t := g.(type) {
	case orb.Polygon:
		if len(t) == 0 {
			return nil
		}
		return []orb.Point(t[0])
	case orb.LineString:
		return []orb.Point(t)
	case orb.MultiPoint:
		return []orb.Point(t)
	}
	return nil
}

func countDistinct(pts []orb.Point) int {
	seen := make(map[orb.Point]struct{}, len(pts))
	for _, p := range pts {
		seen[p] = struct{}{}
	}
	return len(seen)
}

func isJunction(f *geojson.Feature) bool {
	if v, ok := f.Properties["element"].(string); ok && v == "junction" {
		return true
	}
	_, isPoly := f.Geometry.(orb.Polygon)
	return isPoly
}

// parseLaneAttributes reads lane properties, tolerating the two property
// encodings net2geojson emits (JSON arrays vs space-separated strings,
// numbers vs numeric strings).
func parseLaneAttributes(f *geojson.Feature) LaneAttributes {
	attrs := LaneAttributes{ID: stringProp(f, "id")}
	switch v := f.Properties["allow"].(type) {
	case string:
		attrs.Allowed = strings.Fields(v)
	case []any:
		for _, e := range v {
			if s, ok := e.(string); ok {
				attrs.Allowed = append(attrs.Allowed, s)
			}
		}
	case []string:
		attrs.Allowed = v
	}
	switch v := f.Properties["width"].(type) {
	case float64:
		attrs.Width = v
	case string:
		if w, err := strconv.ParseFloat(v, 64); err == nil {
			attrs.Width = w
		}
	}
	switch v := f.Properties["tunnel"].(type) {
	case bool:
		attrs.Tunnel = v
	case string:
		attrs.Tunnel = v == "true" || v == "1" || v == "yes"
	}
	return attrs
}

func allowsAny(allowed, wanted []string) bool {
	for _, a := range allowed {
		for _, w := range wanted {
			if a == w {
				return true
			}
		}
	}
	return false
}

func stringProp(f *geojson.Feature, key string) string {
	if v, ok := f.Properties[key].(string); ok {
		return v
	}
	return ""
}
