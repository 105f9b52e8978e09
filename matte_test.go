package lattice

import (
	"bytes"
	"testing"
)

// singleLayerState builds a frame state with one active layer.
func singleLayerState(l LayerState) FrameState {
	l.Active = true
	if l.Scale == (Vec2{}) {
		l.Scale = Vec2{X: 1, Y: 1}
	}
	if l.Opacity == 0 {
		l.Opacity = 1
	}
	return FrameState{Layers: []LayerState{l}}
}

// --- Rect rasterization ---

func TestMatteRectCoverage(t *testing.T) {
	s := singleLayerState(LayerState{
		Shape:    MatteRect,
		Position: Vec2{X: 8, Y: 8},
		Size:     Vec2{X: 8, Y: 8},
	})
	img := RenderMatte(s, 16, 16)

	// Pixel centers within ±4 of the layer center: columns/rows 4..11.
	if got := img.GrayAt(8, 8).Y; got != 255 {
		t.Errorf("center = %d, want 255", got)
	}
	if got := img.GrayAt(4, 4).Y; got != 255 {
		t.Errorf("inside corner = %d, want 255", got)
	}
	if got := img.GrayAt(3, 8).Y; got != 0 {
		t.Errorf("left of shape = %d, want 0", got)
	}
	if got := img.GrayAt(12, 8).Y; got != 0 {
		t.Errorf("right of shape = %d, want 0", got)
	}
	if got := img.GrayAt(0, 0).Y; got != 0 {
		t.Errorf("far corner = %d, want 0", got)
	}
}

func TestMatteOpacityQuantization(t *testing.T) {
	s := singleLayerState(LayerState{
		Shape:    MatteRect,
		Position: Vec2{X: 8, Y: 8},
		Size:     Vec2{X: 16, Y: 16},
		Opacity:  0.5,
	})
	img := RenderMatte(s, 16, 16)
	// round(255 * 0.5) = 128.
	if got := img.GrayAt(8, 8).Y; got != 128 {
		t.Errorf("half opacity = %d, want 128", got)
	}
}

// --- Ellipse ---

func TestMatteEllipse(t *testing.T) {
	s := singleLayerState(LayerState{
		Shape:    MatteEllipse,
		Position: Vec2{X: 8, Y: 8},
		Size:     Vec2{X: 12, Y: 12},
	})
	img := RenderMatte(s, 16, 16)

	if got := img.GrayAt(8, 8).Y; got != 255 {
		t.Errorf("ellipse center = %d, want 255", got)
	}
	// The AABB corner lies outside the inscribed ellipse.
	if got := img.GrayAt(3, 3).Y; got != 0 {
		t.Errorf("ellipse corner = %d, want 0", got)
	}
}

// --- Transform ---

func TestMatteScaleAppliesToShape(t *testing.T) {
	s := singleLayerState(LayerState{
		Shape:    MatteRect,
		Position: Vec2{X: 8, Y: 8},
		Size:     Vec2{X: 4, Y: 4},
		Scale:    Vec2{X: 3, Y: 1},
	})
	img := RenderMatte(s, 16, 16)
	// Scaled to 12 wide, 4 tall.
	if got := img.GrayAt(3, 8).Y; got != 255 {
		t.Errorf("wide edge = %d, want 255", got)
	}
	if got := img.GrayAt(8, 4).Y; got != 0 {
		t.Errorf("above short edge = %d, want 0", got)
	}
}

func TestMatteRotationCoversDiagonal(t *testing.T) {
	// A tall thin bar rotated 90 degrees becomes a wide flat bar.
	s := singleLayerState(LayerState{
		Shape:    MatteRect,
		Position: Vec2{X: 8, Y: 8},
		Size:     Vec2{X: 2, Y: 12},
		Rotation: 1.5707963267948966, // pi/2
	})
	img := RenderMatte(s, 16, 16)
	if got := img.GrayAt(3, 8).Y; got != 255 {
		t.Errorf("rotated bar left = %d, want 255", got)
	}
	if got := img.GrayAt(8, 3).Y; got != 0 {
		t.Errorf("rotated bar above = %d, want 0", got)
	}
}

// --- Blend modes ---

func TestMatteEraseCutsHole(t *testing.T) {
	bg := LayerState{
		Active:   true,
		Shape:    MatteRect,
		Position: Vec2{X: 8, Y: 8},
		Size:     Vec2{X: 16, Y: 16},
		Scale:    Vec2{X: 1, Y: 1},
		Opacity:  1,
	}
	hole := LayerState{
		Active:   true,
		Shape:    MatteEllipse,
		Blend:    BlendErase,
		Position: Vec2{X: 8, Y: 8},
		Size:     Vec2{X: 6, Y: 6},
		Scale:    Vec2{X: 1, Y: 1},
		Opacity:  1,
	}
	img := RenderMatte(FrameState{Layers: []LayerState{bg, hole}}, 16, 16)
	if got := img.GrayAt(8, 8).Y; got != 0 {
		t.Errorf("hole center = %d, want 0", got)
	}
	if got := img.GrayAt(1, 1).Y; got != 255 {
		t.Errorf("outside hole = %d, want 255", got)
	}
}

func TestMatteMultiplyIntersects(t *testing.T) {
	bg := LayerState{
		Active: true, Shape: MatteRect,
		Position: Vec2{X: 8, Y: 8}, Size: Vec2{X: 16, Y: 16},
		Scale: Vec2{X: 1, Y: 1}, Opacity: 1,
	}
	clip := LayerState{
		Active: true, Shape: MatteRect, Blend: BlendMultiply,
		Position: Vec2{X: 4, Y: 8}, Size: Vec2{X: 8, Y: 16},
		Scale: Vec2{X: 1, Y: 1}, Opacity: 1,
	}
	img := RenderMatte(FrameState{Layers: []LayerState{bg, clip}}, 16, 16)
	if got := img.GrayAt(2, 8).Y; got != 255 {
		t.Errorf("inside intersection = %d, want 255", got)
	}
	// Multiply zeroes everything outside its own shape, even beyond its AABB.
	if got := img.GrayAt(14, 8).Y; got != 0 {
		t.Errorf("outside multiply shape = %d, want 0", got)
	}
}

func TestMatteAddSaturates(t *testing.T) {
	half := LayerState{
		Active: true, Shape: MatteRect, Blend: BlendAdd,
		Position: Vec2{X: 8, Y: 8}, Size: Vec2{X: 16, Y: 16},
		Scale: Vec2{X: 1, Y: 1}, Opacity: 0.7,
	}
	img := RenderMatte(FrameState{Layers: []LayerState{half, half}}, 16, 16)
	if got := img.GrayAt(8, 8).Y; got != 255 {
		t.Errorf("saturated add = %d, want 255", got)
	}
}

// --- Skipping ---

func TestMatteSkipsInactiveAndTransparent(t *testing.T) {
	inactive := LayerState{
		Shape:    MatteRect,
		Position: Vec2{X: 8, Y: 8}, Size: Vec2{X: 16, Y: 16},
		Scale: Vec2{X: 1, Y: 1}, Opacity: 1,
	}
	transparent := LayerState{
		Active: true, Shape: MatteRect,
		Position: Vec2{X: 8, Y: 8}, Size: Vec2{X: 16, Y: 16},
		Scale: Vec2{X: 1, Y: 1}, Opacity: 0,
	}
	img := RenderMatte(FrameState{Layers: []LayerState{inactive, transparent}}, 16, 16)
	for _, p := range img.Pix {
		if p != 0 {
			t.Fatal("inactive/transparent layers rasterized")
		}
	}
}

func TestMatteZeroSizeLayer(t *testing.T) {
	s := singleLayerState(LayerState{
		Shape:    MatteRect,
		Position: Vec2{X: 8, Y: 8},
		Size:     Vec2{X: 0, Y: 0},
	})
	img := RenderMatte(s, 16, 16) // must not divide by zero or panic
	for _, p := range img.Pix {
		if p != 0 {
			t.Fatal("zero-size layer rasterized")
		}
	}
}

// --- Determinism ---

func TestMatteByteDeterminism(t *testing.T) {
	comp := demoComposition()
	comp.Layers[0].Rotation.Insert(Keyframe{
		Frame: 0, Value: Number(0),
		Interp: InterpPreset, Ease: "inOutBack",
	})
	comp.Layers[0].Rotation.Insert(Keyframe{Frame: 32, Value: Number(3.1)})

	for _, f := range []float64{0, 13.5, 32} {
		a := RenderMatte(comp.EvaluateFrame(f), comp.Width, comp.Height)
		b := RenderMatte(comp.EvaluateFrame(f), comp.Width, comp.Height)
		if !bytes.Equal(a.Pix, b.Pix) {
			t.Fatalf("matte bytes diverged at frame %v", f)
		}
	}
}
