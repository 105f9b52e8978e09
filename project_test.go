package lattice

import (
	"bytes"
	"strings"
	"testing"
)

// --- Round trip ---

func TestProjectRoundTrip(t *testing.T) {
	comp := demoComposition()
	comp.Layers[0].Blend = BlendAdd
	comp.Layers[0].Color.Insert(Keyframe{Frame: 0, Value: Color(255, 0, 0)})
	comp.Layers[0].Color.Insert(Keyframe{Frame: 32, Value: Color(0, 0, 255)})
	comp.Layers[0].Rotation.Insert(Keyframe{
		Frame: 0, Value: Number(0),
		Interp:    InterpBezier,
		OutHandle: Vec2{X: 0.42, Y: 0.2},
	})
	comp.Layers[0].Rotation.Insert(Keyframe{
		Frame: 32, Value: Number(1.5),
		InHandle: Vec2{X: 0.58, Y: 0.1},
	})

	var buf bytes.Buffer
	if err := SaveProject(comp, &buf); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadProject(&buf)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Name != comp.Name || loaded.Width != comp.Width ||
		loaded.Height != comp.Height || loaded.FrameCount != comp.FrameCount {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if len(loaded.Layers) != len(comp.Layers) {
		t.Fatalf("layers = %d, want %d", len(loaded.Layers), len(comp.Layers))
	}
	if len(loaded.Emitters) != 1 || loaded.Emitters[0].Config().Name != "spark" {
		t.Fatal("emitter did not round-trip")
	}

	// The loaded composition evaluates identically at every frame.
	for f := 0; f < comp.FrameCount; f++ {
		a := comp.EvaluateFrame(float64(f))
		b := loaded.EvaluateFrame(float64(f))
		if a.Camera != b.Camera {
			t.Fatalf("camera diverged at frame %d: %+v vs %+v", f, a.Camera, b.Camera)
		}
		for i := range a.Layers {
			if a.Layers[i] != b.Layers[i] {
				t.Fatalf("layer %d diverged at frame %d: %+v vs %+v", i, f, a.Layers[i], b.Layers[i])
			}
		}
	}
}

func TestProjectEmitterRoundTripReplaysIdentically(t *testing.T) {
	comp := demoComposition()

	var buf bytes.Buffer
	if err := SaveProject(comp, &buf); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := LoadProject(&buf)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	a := comp.Emitters[0]
	b := loaded.Emitters[0]
	a.Reset()
	for i := 0; i < 25; i++ {
		a.Step()
		b.Step()
	}
	sa := a.Particles(nil)
	sb := b.Particles(nil)
	if len(sa) != len(sb) {
		t.Fatalf("alive counts differ: %d vs %d", len(sa), len(sb))
	}
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("particle %d differs after round trip", i)
		}
	}
}

// --- Normalization ---

func TestLoadProjectNormalizesTracks(t *testing.T) {
	// Hand-edited document: keyframes out of order, duplicated frame, and an
	// out-of-range bezier handle. Loading must restore every track invariant.
	doc := `{
	  "version": 1,
	  "name": "hand",
	  "width": 8, "height": 8, "fps": 16, "frameCount": 82,
	  "layers": [{
	    "name": "box", "shape": "rect", "blend": "normal",
	    "inPoint": 0, "outPoint": 80, "visible": true,
	    "position": {
	      "static": {"kind": "vec2", "x": 0, "y": 0},
	      "keyframes": [
	        {"frame": 40, "value": {"kind": "vec2", "x": 9, "y": 9}, "interp": "bezier",
	         "out": {"x": 5, "y": 2}, "in": {"x": -1, "y": 0}},
	        {"frame": 10, "value": {"kind": "vec2", "x": 1, "y": 1}, "interp": "linear"},
	        {"frame": 40, "value": {"kind": "vec2", "x": 4, "y": 4}, "interp": "linear"}
	      ]
	    }
	  }]
	}`

	comp, err := LoadProject(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if comp.FrameCount != 81 {
		t.Errorf("frame count = %d, want snapped 81", comp.FrameCount)
	}

	track := comp.Layers[0].Position
	keys := track.Keyframes()
	if len(keys) != 2 {
		t.Fatalf("keyframes = %d, want 2 (duplicate collapsed)", len(keys))
	}
	if keys[0].Frame != 10 || keys[1].Frame != 40 {
		t.Errorf("order = %d, %d, want 10, 40", keys[0].Frame, keys[1].Frame)
	}
	// Later duplicate wins (last-writer semantics).
	if keys[1].Value != Point(4, 4) {
		t.Errorf("duplicate value = %+v, want {4 4}", keys[1].Value)
	}
}

func TestLoadProjectClampsHandles(t *testing.T) {
	doc := `{
	  "version": 1, "name": "h", "width": 4, "height": 4, "fps": 16, "frameCount": 5,
	  "layers": [{
	    "name": "l", "shape": "rect", "blend": "normal",
	    "inPoint": 0, "outPoint": 4, "visible": true,
	    "opacity": {
	      "static": {"kind": "number", "num": 1},
	      "keyframes": [
	        {"frame": 0, "value": {"kind": "number", "num": 0}, "interp": "bezier",
	         "out": {"x": 7, "y": 3}, "in": {"x": -2, "y": -3}}
	      ]
	    }
	  }]
	}`
	comp, err := LoadProject(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	k := comp.Layers[0].Opacity.Keyframes()[0]
	if k.OutHandle.X != 1 || k.InHandle.X != 0 {
		t.Errorf("handles not clamped: out=%v in=%v", k.OutHandle.X, k.InHandle.X)
	}
	if k.OutHandle.Y != 3 || k.InHandle.Y != -3 {
		t.Errorf("handle y clamped: out=%v in=%v", k.OutHandle.Y, k.InHandle.Y)
	}
}

// --- Errors ---

func TestLoadProjectFutureVersion(t *testing.T) {
	doc := `{"version": 99, "name": "x", "width": 1, "height": 1, "fps": 1, "frameCount": 1}`
	if _, err := LoadProject(strings.NewReader(doc)); err == nil {
		t.Error("future version loaded without error")
	}
}

func TestLoadProjectMalformedJSON(t *testing.T) {
	if _, err := LoadProject(strings.NewReader("{nope")); err == nil {
		t.Error("malformed JSON loaded without error")
	}
}

// --- Color codec ---

func TestHexColorRoundTrip(t *testing.T) {
	cases := []RGB{
		{R: 0, G: 0, B: 0},
		{R: 255, G: 255, B: 255},
		{R: 0x12, G: 0xAB, B: 0xEF},
	}
	for _, c := range cases {
		if got := colorFromHex(hexColor(c)); got != c {
			t.Errorf("round trip %+v -> %q -> %+v", c, hexColor(c), got)
		}
	}
}

func TestColorFromHexMalformed(t *testing.T) {
	for _, s := range []string{"", "#", "#12345", "zzzzzz", "#GGGGGG"} {
		if got := colorFromHex(s); got != (RGB{}) {
			t.Errorf("colorFromHex(%q) = %+v, want black", s, got)
		}
	}
}

func TestColorFromHexLowercase(t *testing.T) {
	if got := colorFromHex("#ab12cd"); got != (RGB{R: 0xAB, G: 0x12, B: 0xCD}) {
		t.Errorf("lowercase hex = %+v", got)
	}
}
