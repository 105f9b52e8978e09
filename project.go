package lattice

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// projectVersion is the current project document version. Loading rejects
// documents from the future; older versions are upgraded where possible.
const projectVersion = 1

// --- Document schema ---

type projectDoc struct {
	Version    int          `json:"version"`
	Name       string       `json:"name"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	FPS        float64      `json:"fps"`
	FrameCount int          `json:"frameCount"`
	Layers     []layerDoc   `json:"layers,omitempty"`
	Camera     *cameraDoc   `json:"camera,omitempty"`
	Emitters   []emitterDoc `json:"emitters,omitempty"`
}

type layerDoc struct {
	Name     string    `json:"name"`
	Shape    string    `json:"shape"`
	Blend    string    `json:"blend"`
	InPoint  int       `json:"inPoint"`
	OutPoint int       `json:"outPoint"`
	Visible  bool      `json:"visible"`
	Position *trackDoc `json:"position,omitempty"`
	Scale    *trackDoc `json:"scale,omitempty"`
	Rotation *trackDoc `json:"rotation,omitempty"`
	Opacity  *trackDoc `json:"opacity,omitempty"`
	Size     *trackDoc `json:"size,omitempty"`
	Color    *trackDoc `json:"color,omitempty"`
}

type cameraDoc struct {
	PosX    *trackDoc `json:"posX,omitempty"`
	PosY    *trackDoc `json:"posY,omitempty"`
	PosZ    *trackDoc `json:"posZ,omitempty"`
	TargetX *trackDoc `json:"targetX,omitempty"`
	TargetY *trackDoc `json:"targetY,omitempty"`
	TargetZ *trackDoc `json:"targetZ,omitempty"`
	FOV     *trackDoc `json:"fov,omitempty"`
	Zoom    *trackDoc `json:"zoom,omitempty"`
}

type emitterDoc struct {
	Name         string    `json:"name"`
	Seed         uint64    `json:"seed"`
	MaxParticles int       `json:"maxParticles"`
	EmitRate     float64   `json:"emitRate"`
	Rate         *trackDoc `json:"rate,omitempty"`
	Origin       *trackDoc `json:"origin,omitempty"`
	OriginX      float64   `json:"originX"`
	OriginY      float64   `json:"originY"`
	Lifetime     Range     `json:"lifetime"`
	Speed        Range     `json:"speed"`
	Angle        Range     `json:"angle"`
	StartScale   Range     `json:"startScale"`
	EndScale     Range     `json:"endScale"`
	StartAlpha   Range     `json:"startAlpha"`
	EndAlpha     Range     `json:"endAlpha"`
	Gravity      Vec2      `json:"gravity"`
	StartColor   string    `json:"startColor"`
	EndColor     string    `json:"endColor"`
}

type trackDoc struct {
	Static    valueDoc `json:"static"`
	Keyframes []keyDoc `json:"keyframes,omitempty"`
}

type keyDoc struct {
	Frame  int      `json:"frame"`
	Value  valueDoc `json:"value"`
	Interp string   `json:"interp"`
	Out    *Vec2    `json:"out,omitempty"`
	In     *Vec2    `json:"in,omitempty"`
	Ease   EaseName `json:"ease,omitempty"`
}

// valueDoc is the tagged on-disk form of a Value. Colors use #RRGGBB hex,
// matching the editor's swatch format.
type valueDoc struct {
	Kind string   `json:"kind"`
	Num  *float64 `json:"num,omitempty"`
	X    *float64 `json:"x,omitempty"`
	Y    *float64 `json:"y,omitempty"`
	Hex  string   `json:"hex,omitempty"`
}

// --- Encoding ---

// SaveProject writes the composition as an indented JSON project document.
func SaveProject(c *Composition, w io.Writer) error {
	doc := projectDoc{
		Version:    projectVersion,
		Name:       c.Name,
		Width:      c.Width,
		Height:     c.Height,
		FPS:        c.FPS,
		FrameCount: c.FrameCount,
	}
	for _, l := range c.Layers {
		doc.Layers = append(doc.Layers, layerDoc{
			Name:     l.Name,
			Shape:    shapeName(l.Shape),
			Blend:    blendName(l.Blend),
			InPoint:  l.InPoint,
			OutPoint: l.OutPoint,
			Visible:  l.Visible,
			Position: encodeTrack(l.Position),
			Scale:    encodeTrack(l.Scale),
			Rotation: encodeTrack(l.Rotation),
			Opacity:  encodeTrack(l.Opacity),
			Size:     encodeTrack(l.Size),
			Color:    encodeTrack(l.Color),
		})
	}
	if c.Camera != nil {
		doc.Camera = &cameraDoc{
			PosX:    encodeTrack(c.Camera.PosX),
			PosY:    encodeTrack(c.Camera.PosY),
			PosZ:    encodeTrack(c.Camera.PosZ),
			TargetX: encodeTrack(c.Camera.TargetX),
			TargetY: encodeTrack(c.Camera.TargetY),
			TargetZ: encodeTrack(c.Camera.TargetZ),
			FOV:     encodeTrack(c.Camera.FOV),
			Zoom:    encodeTrack(c.Camera.Zoom),
		}
	}
	for _, e := range c.Emitters {
		cfg := e.config
		doc.Emitters = append(doc.Emitters, emitterDoc{
			Name:         cfg.Name,
			Seed:         cfg.Seed,
			MaxParticles: cfg.MaxParticles,
			EmitRate:     cfg.EmitRate,
			Rate:         encodeTrack(cfg.Rate),
			Origin:       encodeTrack(cfg.Origin),
			OriginX:      cfg.OriginX,
			OriginY:      cfg.OriginY,
			Lifetime:     cfg.Lifetime,
			Speed:        cfg.Speed,
			Angle:        cfg.Angle,
			StartScale:   cfg.StartScale,
			EndScale:     cfg.EndScale,
			StartAlpha:   cfg.StartAlpha,
			EndAlpha:     cfg.EndAlpha,
			Gravity:      cfg.Gravity,
			StartColor:   hexColor(cfg.StartColor),
			EndColor:     hexColor(cfg.EndColor),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// WriteProjectFile saves the composition to a project file at path.
func WriteProjectFile(c *Composition, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	if err := SaveProject(c, f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save project: %w", err)
	}
	return nil
}

// --- Decoding ---

// LoadProject parses a project document and rebuilds the composition.
// Loading normalizes: keyframes are re-inserted through Track.Insert so
// ordering, frame uniqueness, and handle clamping hold even for hand-edited
// files, and the frame count is re-snapped to 4N+1.
func LoadProject(r io.Reader) (*Composition, error) {
	var doc projectDoc
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	if doc.Version > projectVersion {
		return nil, fmt.Errorf("load project: unsupported version %d", doc.Version)
	}

	c := &Composition{
		Name:       doc.Name,
		Width:      doc.Width,
		Height:     doc.Height,
		FPS:        doc.FPS,
		FrameCount: SnapFrameCount(doc.FrameCount),
	}
	for _, ld := range doc.Layers {
		l := &Layer{
			Name:     ld.Name,
			Shape:    shapeFromName(ld.Shape),
			Blend:    blendFromName(ld.Blend),
			InPoint:  ld.InPoint,
			OutPoint: ld.OutPoint,
			Visible:  ld.Visible,
			Position: decodeTrack(ld.Position, Point(0, 0)),
			Scale:    decodeTrack(ld.Scale, Point(1, 1)),
			Rotation: decodeTrack(ld.Rotation, Number(0)),
			Opacity:  decodeTrack(ld.Opacity, Number(1)),
			Size:     decodeTrack(ld.Size, Point(100, 100)),
			Color:    decodeTrack(ld.Color, Color(255, 255, 255)),
		}
		c.Layers = append(c.Layers, l)
	}
	if doc.Camera != nil {
		c.Camera = &Camera{
			PosX:    decodeTrack(doc.Camera.PosX, Number(0)),
			PosY:    decodeTrack(doc.Camera.PosY, Number(0)),
			PosZ:    decodeTrack(doc.Camera.PosZ, Number(10)),
			TargetX: decodeTrack(doc.Camera.TargetX, Number(0)),
			TargetY: decodeTrack(doc.Camera.TargetY, Number(0)),
			TargetZ: decodeTrack(doc.Camera.TargetZ, Number(0)),
			FOV:     decodeTrack(doc.Camera.FOV, Number(50)),
			Zoom:    decodeTrack(doc.Camera.Zoom, Number(1)),
		}
	}
	for _, ed := range doc.Emitters {
		cfg := EmitterConfig{
			Name:         ed.Name,
			Seed:         ed.Seed,
			MaxParticles: ed.MaxParticles,
			EmitRate:     ed.EmitRate,
			OriginX:      ed.OriginX,
			OriginY:      ed.OriginY,
			Lifetime:     ed.Lifetime,
			Speed:        ed.Speed,
			Angle:        ed.Angle,
			StartScale:   ed.StartScale,
			EndScale:     ed.EndScale,
			StartAlpha:   ed.StartAlpha,
			EndAlpha:     ed.EndAlpha,
			Gravity:      ed.Gravity,
			StartColor:   colorFromHex(ed.StartColor),
			EndColor:     colorFromHex(ed.EndColor),
		}
		if ed.Rate != nil {
			cfg.Rate = decodeTrack(ed.Rate, Number(0))
		}
		if ed.Origin != nil {
			cfg.Origin = decodeTrack(ed.Origin, Point(0, 0))
		}
		c.Emitters = append(c.Emitters, NewEmitter(cfg))
	}
	return c, nil
}

// ReadProjectFile loads a composition from a project file at path.
func ReadProjectFile(path string) (*Composition, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load project: %w", err)
	}
	defer f.Close()
	return LoadProject(f)
}

// --- Track/value codecs ---

func encodeTrack(t *Track) *trackDoc {
	if t == nil {
		return nil
	}
	doc := &trackDoc{Static: encodeValue(t.Static)}
	for _, k := range t.Keyframes() {
		kd := keyDoc{
			Frame:  k.Frame,
			Value:  encodeValue(k.Value),
			Interp: interpName(k.Interp),
			Ease:   k.Ease,
		}
		if k.Interp == InterpBezier {
			out, in := k.OutHandle, k.InHandle
			kd.Out = &out
			kd.In = &in
		}
		doc.Keyframes = append(doc.Keyframes, kd)
	}
	return doc
}

func decodeTrack(doc *trackDoc, fallback Value) *Track {
	if doc == nil {
		return NewTrack(fallback)
	}
	t := NewTrack(decodeValue(doc.Static, fallback))
	for _, kd := range doc.Keyframes {
		k := Keyframe{
			Frame:  kd.Frame,
			Value:  decodeValue(kd.Value, fallback),
			Interp: interpFromName(kd.Interp),
			Ease:   kd.Ease,
		}
		if kd.Out != nil {
			k.OutHandle = *kd.Out
		} else {
			k.OutHandle = DefaultHandle
		}
		if kd.In != nil {
			k.InHandle = *kd.In
		} else {
			k.InHandle = DefaultHandle
		}
		t.Insert(k)
	}
	return t
}

func encodeValue(v Value) valueDoc {
	switch v.Kind {
	case ValueVec2:
		x, y := v.Vec.X, v.Vec.Y
		return valueDoc{Kind: "vec2", X: &x, Y: &y}
	case ValueColor:
		return valueDoc{Kind: "color", Hex: hexColor(v.Col)}
	default:
		n := v.Num
		return valueDoc{Kind: "number", Num: &n}
	}
}

func decodeValue(doc valueDoc, fallback Value) Value {
	switch doc.Kind {
	case "number":
		if doc.Num != nil {
			return Number(*doc.Num)
		}
	case "vec2":
		if doc.X != nil && doc.Y != nil {
			return Point(*doc.X, *doc.Y)
		}
	case "color":
		col := colorFromHex(doc.Hex)
		return Value{Kind: ValueColor, Col: col}
	}
	return fallback
}

// --- Name tables ---

func interpName(m InterpMode) string {
	switch m {
	case InterpBezier:
		return "bezier"
	case InterpHold:
		return "hold"
	case InterpPreset:
		return "preset"
	default:
		return "linear"
	}
}

func interpFromName(s string) InterpMode {
	switch s {
	case "bezier":
		return InterpBezier
	case "hold":
		return InterpHold
	case "preset":
		return InterpPreset
	default:
		return InterpLinear
	}
}

func shapeName(s MatteShape) string {
	if s == MatteEllipse {
		return "ellipse"
	}
	return "rect"
}

func shapeFromName(s string) MatteShape {
	if s == "ellipse" {
		return MatteEllipse
	}
	return MatteRect
}

func blendName(b BlendMode) string {
	switch b {
	case BlendAdd:
		return "add"
	case BlendMultiply:
		return "multiply"
	case BlendScreen:
		return "screen"
	case BlendErase:
		return "erase"
	default:
		return "normal"
	}
}

func blendFromName(s string) BlendMode {
	switch s {
	case "add":
		return BlendAdd
	case "multiply":
		return BlendMultiply
	case "screen":
		return BlendScreen
	case "erase":
		return BlendErase
	default:
		return BlendNormal
	}
}

// hexColor formats a color as #RRGGBB, the editor's swatch format.
func hexColor(c RGB) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// colorFromHex parses #RRGGBB (case-insensitive, leading # optional).
// Malformed strings decode to black; project loading never fails on a color.
func colorFromHex(s string) RGB {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return RGB{}
	}
	var c RGB
	var vals [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(s[i*2])
		lo, ok2 := hexDigit(s[i*2+1])
		if !ok1 || !ok2 {
			return RGB{}
		}
		vals[i] = hi<<4 | lo
	}
	c.R, c.G, c.B = vals[0], vals[1], vals[2]
	return c
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
