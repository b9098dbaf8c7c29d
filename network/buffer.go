package network

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// bufferLineString expands a centerline into a polygon of the given total
// width using flat end caps and miter joins. The result is returned as a
// slice of parts; numerically degenerate inputs may in principle split, and
// callers keep only the largest part.
func bufferLineString(ls orb.LineString, width float64) []orb.Polygon {
	if len(ls) < 2 || width <= 0 {
		return nil
	}
	half := width / 2

	left := make([]orb.Point, 0, len(ls))
	right := make([]orb.Point, 0, len(ls))
	for i := range ls {
		nx, ny := vertexNormal(ls, i)
		left = append(left, orb.Point{ls[i][0] + nx*half, ls[i][1] + ny*half})
		right = append(right, orb.Point{ls[i][0] - nx*half, ls[i][1] - ny*half})
	}

	// One ring: left side forward, right side backward, closed.
	ring := make(orb.Ring, 0, 2*len(ls)+1)
	ring = append(ring, left...)
	for i := len(right) - 1; i >= 0; i-- {
		ring = append(ring, right[i])
	}
	ring = append(ring, ring[0])
	if ring.Orientation() == orb.CW {
		ring.Reverse()
	}
	return []orb.Polygon{{ring}}
}

// vertexNormal returns the unit normal at vertex i: the segment perpendicular
// at the endpoints (flat caps) and the miter-scaled averaged perpendicular at
// interior vertices.
func vertexNormal(ls orb.LineString, i int) (float64, float64) {
	segNormal := func(a, b orb.Point) (float64, float64) {
		dx, dy := b[0]-a[0], b[1]-a[1]
		l := math.Hypot(dx, dy)
		if l == 0 {
			return 0, 0
		}
		return -dy / l, dx / l
	}

	switch i {
	case 0:
		return segNormal(ls[0], ls[1])
	case len(ls) - 1:
		return segNormal(ls[len(ls)-2], ls[len(ls)-1])
	}

	n1x, n1y := segNormal(ls[i-1], ls[i])
	n2x, n2y := segNormal(ls[i], ls[i+1])
	mx, my := n1x+n2x, n1y+n2y
	l := math.Hypot(mx, my)
	if l == 0 {
		// 180 degree turn; fall back to the incoming segment's normal.
		return n1x, n1y
	}
	mx, my = mx/l, my/l
	// Miter scale keeps the buffer width constant through the corner.
	scale := 1.0
	if dot := mx*n1x + my*n1y; dot > 1e-9 {
		scale = 1 / dot
	}
	return mx * scale, my * scale
}

// largestPart returns the part with the largest absolute planar area,
// carrying no attributes of its own.
func largestPart(parts []orb.Polygon) (orb.Polygon, bool) {
	if len(parts) == 0 {
		return nil, false
	}
	best := 0
	bestArea := math.Abs(planar.Area(parts[0]))
	for i := 1; i < len(parts); i++ {
		if a := math.Abs(planar.Area(parts[i])); a > bestArea {
			best, bestArea = i, a
		}
	}
	return parts[best], true
}
