package render

import "math"

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Three-stop congestion gradient, low to high ratio: red, yellow, green.
// Matches the palette of the congestion map pipeline.
var gradientStops = [3]Color{
	{0xef, 0x44, 0x44, 0xff},
	{0xea, 0xb3, 0x08, 0xff},
	{0x22, 0xc5, 0x5e, 0xff},
}

// ColorForRatio maps a normalized speed ratio to a congestion color. The
// ratio is clamped to [0,1]; 0 is fully congested, 1 free-flowing. The
// gradient is continuous at the mid stop.
func ColorForRatio(ratio float64) Color {
	if math.IsNaN(ratio) || ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	seg := int(ratio * 2)
	if seg > 1 {
		seg = 1
	}
	f := ratio*2 - float64(seg)
	lo, hi := gradientStops[seg], gradientStops[seg+1]
	return Color{
		R: lerpChannel(lo.R, hi.R, f),
		G: lerpChannel(lo.G, hi.G, f),
		B: lerpChannel(lo.B, hi.B, f),
		A: 0xff,
	}
}

func lerpChannel(a, b uint8, f float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*f))
}
