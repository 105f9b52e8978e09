package lattice

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a 1x1 white image stretched into solid layer quads and
// particle sprites by the preview renderer.
var whitePixel *ebiten.Image

func init() {
	whitePixel = ebiten.NewImage(1, 1)
	whitePixel.Fill(color.White)
}

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	default:
		return ebiten.BlendSourceOver
	}
}

// Renderer draws evaluated frame states into an ebiten image for interactive
// preview. Layers render as solid tinted quads (ellipses preview as quads;
// exact shapes are the matte rasterizer's job), particles as additive
// squares. The renderer holds only scratch buffers; all state comes from the
// FrameState, so drawing the same state twice draws the same picture.
type Renderer struct {
	scratch []ParticleState
}

// NewRenderer creates a preview renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Draw renders the frame state's active layers bottom to top, then the given
// emitters' live particles on top.
func (r *Renderer) Draw(dst *ebiten.Image, s FrameState, emitters []*Emitter) {
	for _, l := range s.Layers {
		if !l.Active || l.Opacity <= 0 {
			continue
		}
		drawLayerQuad(dst, l)
	}
	for _, e := range emitters {
		r.scratch = e.Particles(r.scratch[:0])
		for _, p := range r.scratch {
			drawParticle(dst, p)
		}
	}
}

// drawLayerQuad stretches the white pixel into the layer's transformed quad.
func drawLayerQuad(dst *ebiten.Image, l LayerState) {
	w := l.Size.X * l.Scale.X
	h := l.Size.Y * l.Scale.Y
	if w <= 0 || h <= 0 {
		return
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(w, h)
	op.GeoM.Rotate(l.Rotation)
	op.GeoM.Translate(l.Position.X, l.Position.Y)
	op.ColorScale.Scale(
		float32(l.Color.R)/255,
		float32(l.Color.G)/255,
		float32(l.Color.B)/255,
		1,
	)
	op.ColorScale.ScaleAlpha(float32(l.Opacity))
	op.Blend = l.Blend.EbitenBlend()
	dst.DrawImage(whitePixel, &op)
}

// particlePreviewSize is the unscaled particle quad size in pixels.
const particlePreviewSize = 4.0

// drawParticle renders one particle as an additive tinted square.
func drawParticle(dst *ebiten.Image, p ParticleState) {
	size := particlePreviewSize * p.Scale
	if size <= 0 || p.Alpha <= 0 {
		return
	}

	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-0.5, -0.5)
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(p.X, p.Y)
	op.ColorScale.Scale(
		float32(p.Color.R)/255,
		float32(p.Color.G)/255,
		float32(p.Color.B)/255,
		1,
	)
	op.ColorScale.ScaleAlpha(float32(clamp01(p.Alpha)))
	op.Blend = ebiten.BlendLighter
	dst.DrawImage(whitePixel, &op)
}
