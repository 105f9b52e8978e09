package lattice

// Evaluate returns the track's value at the given time (in frames; fractional
// times are valid for sub-frame sampling such as motion blur).
//
// Evaluate is a pure function of the track's contents and the query time:
// the same inputs produce bit-identical results on every call, with no
// dependency on wall-clock time, call order, or any ambient state. Scrubbing
// forward, backward, or re-querying the same frame yields identical values,
// which is the contract the particle checkpoints and export pipeline
// depend on.
//
// Evaluate never fails. Malformed tracks (Animated set with an empty
// keyframe list) fall back to the static value; degenerate segments (two
// keyframes at one frame) evaluate at progress zero.
func (t *Track) Evaluate(time float64) Value {
	if !t.Animated || len(t.keys) == 0 {
		return t.Static
	}

	k1, k2, ok := t.Bracket(time)
	if !ok {
		return t.Static
	}
	// Edge clamp: at or outside the keyframe range, and the single-keyframe
	// case, return the edge value with no extrapolation.
	if k1.Frame == k2.Frame {
		return k1.Value
	}

	progress := (time - float64(k1.Frame)) / float64(k2.Frame-k1.Frame)

	var eased float64
	switch k1.Interp {
	case InterpHold:
		return k1.Value
	case InterpBezier:
		eased = Solve(progress, k1.OutHandle, k2.InHandle)
	case InterpPreset:
		eased = applyPreset(k1.Ease, progress)
	default:
		eased = progress
	}

	return blend(k1.Value, k2.Value, eased)
}

// EvaluateNumber evaluates the track and returns the scalar component.
// Convenient for the many tracks that are known to hold numbers; non-number
// values return their zero scalar.
func (t *Track) EvaluateNumber(time float64) float64 {
	v := t.Evaluate(time)
	if v.Kind != ValueNumber {
		return 0
	}
	return v.Num
}

// EvaluateVec2 evaluates the track and returns the vector component.
func (t *Track) EvaluateVec2(time float64) Vec2 {
	v := t.Evaluate(time)
	if v.Kind != ValueVec2 {
		return Vec2{}
	}
	return v.Vec
}

// EvaluateColor evaluates the track and returns the color component.
func (t *Track) EvaluateColor(time float64) RGB {
	v := t.Evaluate(time)
	if v.Kind != ValueColor {
		return RGB{}
	}
	return v.Col
}
