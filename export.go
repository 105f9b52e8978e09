package lattice

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// ExportMatteSequence renders every frame of the composition to an 8-bit
// grayscale PNG named matte_%05d.png in dir, creating the directory if
// needed. Emitters are not part of the matte; only layers rasterize.
//
// The sequence is byte-reproducible: exporting the same composition twice
// produces identical files.
func ExportMatteSequence(c *Composition, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("matte export: mkdir %s: %w", dir, err)
	}

	var st exportStats
	st.frames = c.FrameCount

	for f := 0; f < c.FrameCount; f++ {
		start := time.Now()
		state := c.EvaluateFrame(float64(f))
		st.evalTime += time.Since(start)

		start = time.Now()
		img := RenderMatte(state, c.Width, c.Height)
		st.rasterTime += time.Since(start)

		start = time.Now()
		path := filepath.Join(dir, fmt.Sprintf("matte_%05d.png", f))
		if err := writePNG(path, img); err != nil {
			return fmt.Errorf("matte export: frame %d: %w", f, err)
		}
		st.encodeTime += time.Since(start)
	}

	st.debugLog()
	return nil
}

// trajectoryDoc is the on-disk camera trajectory format consumed by the
// video-generation pipeline.
type trajectoryDoc struct {
	Version    int           `json:"version"`
	Name       string        `json:"name"`
	FPS        float64       `json:"fps"`
	FrameCount int           `json:"frameCount"`
	Frames     []CameraState `json:"frames"`
}

// trajectoryVersion is the current trajectory document version.
const trajectoryVersion = 1

// ExportCameraTrajectory writes the composition's sampled camera trajectory
// as indented JSON to path. A composition without a camera exports an empty
// frame list.
func ExportCameraTrajectory(c *Composition, path string) error {
	doc := trajectoryDoc{
		Version:    trajectoryVersion,
		Name:       c.Name,
		FPS:        c.FPS,
		FrameCount: c.FrameCount,
	}
	if c.Camera != nil {
		doc.Frames = c.Camera.Trajectory(c.FrameCount)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("trajectory export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("trajectory export: %w", err)
	}
	return nil
}

// writePNG encodes img to a PNG file at path.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
