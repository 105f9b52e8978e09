package lattice

import "math"

// Vec2 is a 2D vector used for positions, scales, sizes, and bezier handle
// offsets throughout the API.
type Vec2 struct {
	X, Y float64
}

// RGB is an 8-bit-per-channel color. Keyframe color values interpolate
// per-channel in integer 0-255 space with rounding.
type RGB struct {
	R, G, B uint8
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Range is a general-purpose min/max range.
// Used by the particle system (EmitterConfig) and potentially other systems.
type Range struct {
	Min, Max float64
}

// Sample returns a value in [Min, Max] drawn from the deterministic random
// state, along with the advanced state. Sampling never touches an ambient
// random source.
func (r Range) Sample(rs RandState) (float64, RandState) {
	if r.Min == r.Max {
		return r.Min, rs
	}
	v, next := rs.Next()
	return r.Min + v*(r.Max-r.Min), next
}

// BlendMode selects a compositing operation for a layer's matte contribution.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over (standard alpha blending)
	BlendAdd                       // additive / lighter
	BlendMultiply                  // multiply (source * destination; only darkens)
	BlendScreen                    // screen (1 - (1-src)*(1-dst); only brightens)
	BlendErase                     // destination-out (punch transparent holes)
)

// InterpMode selects how a keyframe segment interpolates toward its right
// neighbor. The mode of the left keyframe governs the segment.
type InterpMode uint8

const (
	InterpLinear InterpMode = iota // linear progress, no easing
	InterpBezier                   // cubic-bezier easing from the segment's handles
	InterpHold                     // step function: hold the left value until the right keyframe
	InterpPreset                   // named easing preset (see EaseName)
)

// MatteShape selects the geometry a layer rasterizes into the matte.
type MatteShape uint8

const (
	MatteRect    MatteShape = iota // axis-aligned unit rect scaled by Size
	MatteEllipse                   // ellipse inscribed in the layer's rect
)

// FrameCountMax is the largest frame count accepted by SnapFrameCount,
// matching the generation backends the compositor feeds (241 = 4*60+1).
const FrameCountMax = 241

// FrameCountDefault is the default composition length in frames.
const FrameCountDefault = 81

// SnapFrameCount snaps n to the 4N+1 pattern required by the downstream
// video-generation models, clamped to [1, FrameCountMax]. Values are snapped
// downward so a snapped composition never exceeds what the caller asked for.
func SnapFrameCount(n int) int {
	if n < 1 {
		return 1
	}
	if n > FrameCountMax {
		n = FrameCountMax
	}
	return (n-1)/4*4 + 1
}

// lerp linearly interpolates between a and b by t.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clamp01 clamps v to [0, 1].
func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
