package lattice

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// layerTransform computes a layer state's affine matrix. The layer's shape
// is defined in local space centered on the origin, so the composition order
// is Scale -> Rotate -> Translate(Position).
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func layerTransform(s LayerState) [6]float64 {
	sin, cos := math.Sincos(s.Rotation)
	return [6]float64{
		cos * s.Scale.X,
		sin * s.Scale.X,
		-sin * s.Scale.Y,
		cos * s.Scale.Y,
		s.Position.X,
		s.Position.Y,
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// shapeAABB computes the axis-aligned bounding box of a w-by-h rectangle
// centered on the local origin after transformation by m.
func shapeAABB(m [6]float64, w, h float64) Rect {
	hw, hh := w/2, h/2

	x0, y0 := transformPoint(m, -hw, -hh)
	x1, y1 := transformPoint(m, hw, -hh)
	x2, y2 := transformPoint(m, hw, hh)
	x3, y3 := transformPoint(m, -hw, hh)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
