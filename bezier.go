package lattice

import "math"

// solveIterations bounds the Newton-Raphson loop. Eight rounds converge to
// well under 1e-6 for any handle configuration with clamped x-components.
const solveIterations = 8

// solveSlopeEpsilon is the slope magnitude below which iteration stops and
// the current estimate is returned instead of dividing by near-zero.
const solveSlopeEpsilon = 1e-7

// Solve converts linear progress t in [0,1] into eased progress using the
// cubic bezier through (0,0), (out.X, out.Y), (1-in.X, 1-in.Y), (1,1).
//
// out is the left keyframe's outgoing handle and in is the right keyframe's
// incoming handle, both expressed as offsets from their keyframe. The handle
// x-components are clamped to [0,1] so time influence cannot run backward;
// y-components are unbounded, which is how overshoot easing (e.g.
// ease-out-back) is achieved. The result may therefore fall outside [0,1].
//
// Solve never fails: a degenerate slope terminates iteration early and the
// best current estimate is used.
func Solve(t float64, out, in Vec2) float64 {
	x1 := clamp01(out.X)
	y1 := out.Y
	x2 := clamp01(1 - in.X)
	y2 := 1 - in.Y

	// Fast path: both handles on the diagonal means the curve is the
	// identity and u == t exactly.
	if x1 == y1 && x2 == y2 {
		return t
	}

	u := bezierSolveX(t, x1, x2)
	return bezierAt(u, y1, y2)
}

// bezierSolveX finds the curve parameter u such that the x-component of the
// cubic bezier (with endpoint x-coordinates 0 and 1 and control x-coordinates
// c1, c2) equals target. Newton-Raphson from u = target.
func bezierSolveX(target, c1, c2 float64) float64 {
	u := target
	for i := 0; i < solveIterations; i++ {
		err := bezierAt(u, c1, c2) - target
		if math.Abs(err) < 1e-7 {
			break
		}
		slope := bezierDeriv(u, c1, c2)
		if math.Abs(slope) < solveSlopeEpsilon {
			break
		}
		u -= err / slope
	}
	return u
}

// bezierAt evaluates one component of the cubic bezier with endpoint
// coordinates 0 and 1 and control coordinates c1, c2 at parameter u.
func bezierAt(u, c1, c2 float64) float64 {
	inv := 1 - u
	return 3*inv*inv*u*c1 + 3*inv*u*u*c2 + u*u*u
}

// bezierDeriv is the derivative of bezierAt with respect to u.
func bezierDeriv(u, c1, c2 float64) float64 {
	inv := 1 - u
	return 3*inv*inv*c1 + 6*inv*u*(c2-c1) + 3*u*u*(1-c2)
}
