package lattice

// Layer is the compositor's unit of content: a matte shape whose transform,
// opacity, size, and color are animatable tracks. A single flat struct is
// used for all layer kinds; Shape selects the rasterized geometry.
//
// The layer's shape lives in local space centered on the origin. Position
// places that origin in composition space, so rotation and scale pivot on
// the shape's center.
type Layer struct {
	Name  string
	Shape MatteShape
	Blend BlendMode

	// InPoint and OutPoint bound the layer's active frame range, inclusive.
	InPoint, OutPoint int
	Visible           bool

	// Animatable properties. Each is always non-nil on a layer built with
	// NewLayer; zero-value tracks fall back to their static defaults.
	Position *Track // Vec2, composition pixels
	Scale    *Track // Vec2, multiplier (1,1 = unscaled)
	Rotation *Track // Number, radians clockwise
	Opacity  *Track // Number in [0,1]
	Size     *Track // Vec2, shape dimensions in pixels
	Color    *Track // Color, preview tint
}

// LayerState is an immutable snapshot of a layer's animatable properties at
// one frame, produced by StateAt and consumed by the rasterizer and the
// preview renderer.
type LayerState struct {
	Name    string
	Shape   MatteShape
	Blend   BlendMode
	Active  bool
	Position Vec2
	Scale    Vec2
	Rotation float64
	Opacity  float64
	Size     Vec2
	Color    RGB
}

// NewLayer creates a visible rect layer with identity transform defaults, a
// 100x100 size, full opacity, and a white tint. OutPoint defaults to
// FrameCountDefault-1; callers fit it to their composition.
func NewLayer(name string) *Layer {
	return &Layer{
		Name:     name,
		Visible:  true,
		OutPoint: FrameCountDefault - 1,
		Position: NewTrack(Point(0, 0)),
		Scale:    NewTrack(Point(1, 1)),
		Rotation: NewTrack(Number(0)),
		Opacity:  NewTrack(Number(1)),
		Size:     NewTrack(Point(100, 100)),
		Color:    NewTrack(Color(255, 255, 255)),
	}
}

// StateAt evaluates every animatable property at the given frame. Pure:
// repeated calls with unchanged tracks return identical states. A layer with
// nil tracks (hand-built) evaluates missing properties as their zero value.
func (l *Layer) StateAt(frame float64) LayerState {
	s := LayerState{
		Name:   l.Name,
		Shape:  l.Shape,
		Blend:  l.Blend,
		Active: l.ActiveAt(frame),
	}
	if l.Position != nil {
		s.Position = l.Position.EvaluateVec2(frame)
	}
	if l.Scale != nil {
		s.Scale = l.Scale.EvaluateVec2(frame)
	}
	if l.Rotation != nil {
		s.Rotation = l.Rotation.EvaluateNumber(frame)
	}
	if l.Opacity != nil {
		s.Opacity = clamp01(l.Opacity.EvaluateNumber(frame))
	}
	if l.Size != nil {
		s.Size = l.Size.EvaluateVec2(frame)
	}
	if l.Color != nil {
		s.Color = l.Color.EvaluateColor(frame)
	}
	return s
}

// ActiveAt reports whether the layer contributes at the given frame:
// visible and within its in/out points.
func (l *Layer) ActiveAt(frame float64) bool {
	return l.Visible && frame >= float64(l.InPoint) && frame <= float64(l.OutPoint)
}

// Clone deep-copies the layer and all its tracks.
func (l *Layer) Clone() *Layer {
	c := *l
	if l.Position != nil {
		c.Position = l.Position.Clone()
	}
	if l.Scale != nil {
		c.Scale = l.Scale.Clone()
	}
	if l.Rotation != nil {
		c.Rotation = l.Rotation.Clone()
	}
	if l.Opacity != nil {
		c.Opacity = l.Opacity.Clone()
	}
	if l.Size != nil {
		c.Size = l.Size.Clone()
	}
	if l.Color != nil {
		c.Color = l.Color.Clone()
	}
	return &c
}
