package lattice

import (
	"image"
	"math"
)

// RenderMatte rasterizes a frame state's active layers into an 8-bit
// grayscale matte of the given dimensions. Layers composite bottom to top in
// stack order using each layer's blend mode, scaled by its opacity.
//
// Rasterization is pure CPU math over float64 accumulators quantized once at
// the end, so a given frame state always produces byte-identical pixels and
// exported artifacts are reproducible. Edges are hard
// (point-in-shape at pixel centers); mattes feed generation models, not eyes.
func RenderMatte(s FrameState, width, height int) *image.Gray {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	acc := make([]float64, width*height)

	for _, l := range s.Layers {
		if !l.Active || l.Opacity <= 0 {
			continue
		}
		rasterizeLayer(acc, width, height, l)
	}

	img := image.NewGray(image.Rect(0, 0, width, height))
	for i, v := range acc {
		img.Pix[i] = uint8(math.Round(255 * clamp01(v)))
	}
	return img
}

// rasterizeLayer composites one layer state into the accumulator.
func rasterizeLayer(acc []float64, width, height int, l LayerState) {
	m := layerTransform(l)
	inv := invertAffine(m)
	hw := l.Size.X / 2
	hh := l.Size.Y / 2
	if hw <= 0 || hh <= 0 {
		return
	}

	// Multiply zeroes everything outside the shape, so it must visit the
	// whole buffer. The other modes leave untouched pixels alone and can be
	// bounded by the shape's AABB.
	x0, y0, x1, y1 := 0, 0, width, height
	if l.Blend != BlendMultiply {
		aabb := shapeAABB(m, l.Size.X, l.Size.Y)
		x0 = max(0, int(math.Floor(aabb.X)))
		y0 = max(0, int(math.Floor(aabb.Y)))
		x1 = min(width, int(math.Ceil(aabb.X+aabb.Width)))
		y1 = min(height, int(math.Ceil(aabb.Y+aabb.Height)))
	}

	for y := y0; y < y1; y++ {
		row := acc[y*width:]
		for x := x0; x < x1; x++ {
			lx, ly := transformPoint(inv, float64(x)+0.5, float64(y)+0.5)
			var c float64
			if insideShape(l.Shape, lx, ly, hw, hh) {
				c = l.Opacity
			}
			row[x] = blendCoverage(l.Blend, row[x], c)
		}
	}
}

// insideShape reports whether the local-space point lies inside the shape
// centered on the origin with half-extents hw, hh.
func insideShape(shape MatteShape, lx, ly, hw, hh float64) bool {
	switch shape {
	case MatteEllipse:
		nx := lx / hw
		ny := ly / hh
		return nx*nx+ny*ny <= 1
	default:
		return lx >= -hw && lx <= hw && ly >= -hh && ly <= hh
	}
}

// blendCoverage composites coverage c over the destination value, both in
// [0,1], according to the blend mode.
func blendCoverage(mode BlendMode, dst, c float64) float64 {
	switch mode {
	case BlendAdd:
		return math.Min(1, dst+c)
	case BlendMultiply:
		return dst * c
	case BlendScreen:
		return 1 - (1-dst)*(1-c)
	case BlendErase:
		return dst * (1 - c)
	default: // BlendNormal
		return c + dst*(1-c)
	}
}
