package lattice

import "math"

// ValueKind tags the closed set of interpolable value types.
type ValueKind uint8

const (
	ValueNumber ValueKind = iota // scalar float64
	ValueVec2                    // 2D point or size
	ValueColor                   // 8-bit RGB, blended per-channel in integer space
)

// Value is a tagged variant holding one interpolable value. Only the field
// matching Kind is meaningful; the zero Value is Number(0).
type Value struct {
	Kind ValueKind
	Num  float64
	Vec  Vec2
	Col  RGB
}

// Number wraps a scalar as a Value.
func Number(v float64) Value { return Value{Kind: ValueNumber, Num: v} }

// Point wraps a 2D vector as a Value.
func Point(x, y float64) Value { return Value{Kind: ValueVec2, Vec: Vec2{X: x, Y: y}} }

// Color wraps an RGB color as a Value.
func Color(r, g, b uint8) Value { return Value{Kind: ValueColor, Col: RGB{R: r, G: g, B: b}} }

// blend interpolates between two values of the same kind at eased progress t.
// t may fall outside [0,1] when a bezier segment overshoots. Values of
// different kinds cannot blend; the nearest keyframe wins (v1 while t < 0.5).
func blend(v1, v2 Value, t float64) Value {
	if v1.Kind != v2.Kind {
		if t < 0.5 {
			return v1
		}
		return v2
	}
	switch v1.Kind {
	case ValueNumber:
		return Number(lerp(v1.Num, v2.Num, t))
	case ValueVec2:
		return Point(lerp(v1.Vec.X, v2.Vec.X, t), lerp(v1.Vec.Y, v2.Vec.Y, t))
	case ValueColor:
		return Color(
			blendChannel(v1.Col.R, v2.Col.R, t),
			blendChannel(v1.Col.G, v2.Col.G, t),
			blendChannel(v1.Col.B, v2.Col.B, t),
		)
	default:
		if t < 0.5 {
			return v1
		}
		return v2
	}
}

// blendChannel interpolates one color channel in integer 0-255 space with
// rounding, clamped so overshoot easing cannot wrap the channel.
func blendChannel(a, b uint8, t float64) uint8 {
	v := math.Round(lerp(float64(a), float64(b), t))
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Keyframe is a single timed control point: a frame index, a value, and the
// interpolation rule toward the next keyframe. OutHandle and InHandle are
// bezier control offsets used when Interp is InterpBezier: the x-component
// is influence over time (clamped to [0,1] at insertion), the y-component is
// value influence and may overshoot. Ease names the preset used when Interp
// is InterpPreset.
type Keyframe struct {
	Frame     int
	Value     Value
	Interp    InterpMode
	OutHandle Vec2
	InHandle  Vec2
	Ease      EaseName
}

// DefaultHandle is the handle offset for a freshly eased keyframe,
// approximating linear timing (the standard one-third influence).
var DefaultHandle = Vec2{X: 0.33, Y: 0.33}
