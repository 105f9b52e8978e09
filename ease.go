package lattice

import "github.com/tanema/gween/ease"

// EaseName identifies a named easing preset for keyframes using
// InterpPreset. Names are case-sensitive and match the gween/ease function
// set ("linear", "inQuad", "outBounce", ...). An unknown name evaluates as
// linear; preset lookup never fails.
type EaseName string

// easePresets maps preset names to gween easing functions. Populated once at
// init and never mutated afterwards, so preset evaluation is deterministic.
var easePresets = map[EaseName]ease.TweenFunc{
	"linear":       ease.Linear,
	"inQuad":       ease.InQuad,
	"outQuad":      ease.OutQuad,
	"inOutQuad":    ease.InOutQuad,
	"inCubic":      ease.InCubic,
	"outCubic":     ease.OutCubic,
	"inOutCubic":   ease.InOutCubic,
	"inQuart":      ease.InQuart,
	"outQuart":     ease.OutQuart,
	"inOutQuart":   ease.InOutQuart,
	"inQuint":      ease.InQuint,
	"outQuint":     ease.OutQuint,
	"inOutQuint":   ease.InOutQuint,
	"inSine":       ease.InSine,
	"outSine":      ease.OutSine,
	"inOutSine":    ease.InOutSine,
	"inExpo":       ease.InExpo,
	"outExpo":      ease.OutExpo,
	"inOutExpo":    ease.InOutExpo,
	"inCirc":       ease.InCirc,
	"outCirc":      ease.OutCirc,
	"inOutCirc":    ease.InOutCirc,
	"inBack":       ease.InBack,
	"outBack":      ease.OutBack,
	"inOutBack":    ease.InOutBack,
	"inBounce":     ease.InBounce,
	"outBounce":    ease.OutBounce,
	"inOutBounce":  ease.InOutBounce,
	"inElastic":    ease.InElastic,
	"outElastic":   ease.OutElastic,
	"inOutElastic": ease.InOutElastic,
}

// EasePreset returns the easing function for name, or ease.Linear if the
// name is unknown.
func EasePreset(name EaseName) ease.TweenFunc {
	if fn, ok := easePresets[name]; ok {
		return fn
	}
	return ease.Linear
}

// applyPreset remaps linear progress t through the named preset. gween
// easing functions use the (t, begin, change, duration) signature; progress
// remapping is the (t, 0, 1, 1) case.
func applyPreset(name EaseName, t float64) float64 {
	fn := EasePreset(name)
	return float64(fn(float32(t), 0, 1, 1))
}
