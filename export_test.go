package lattice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// --- Matte sequence ---

func TestExportMatteSequenceFiles(t *testing.T) {
	comp := demoComposition()
	dir := t.TempDir()

	if err := ExportMatteSequence(comp, dir); err != nil {
		t.Fatalf("export: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != comp.FrameCount {
		t.Fatalf("exported %d files, want %d", len(entries), comp.FrameCount)
	}
	first := filepath.Join(dir, "matte_00000.png")
	if _, err := os.Stat(first); err != nil {
		t.Errorf("missing %s: %v", first, err)
	}
	last := filepath.Join(dir, fmt.Sprintf("matte_%05d.png", comp.FrameCount-1))
	if _, err := os.Stat(last); err != nil {
		t.Errorf("missing %s: %v", last, err)
	}
}

func TestExportMatteSequenceReproducible(t *testing.T) {
	comp := demoComposition()
	dirA := t.TempDir()
	dirB := t.TempDir()

	if err := ExportMatteSequence(comp, dirA); err != nil {
		t.Fatalf("export A: %v", err)
	}
	if err := ExportMatteSequence(comp, dirB); err != nil {
		t.Fatalf("export B: %v", err)
	}

	for _, f := range []int{0, comp.FrameCount / 2, comp.FrameCount - 1} {
		name := fmt.Sprintf("matte_%05d.png", f)
		a, err := os.ReadFile(filepath.Join(dirA, name))
		if err != nil {
			t.Fatalf("read A %s: %v", name, err)
		}
		b, err := os.ReadFile(filepath.Join(dirB, name))
		if err != nil {
			t.Fatalf("read B %s: %v", name, err)
		}
		if !bytes.Equal(a, b) {
			t.Fatalf("%s differs between exports", name)
		}
	}
}

// --- Camera trajectory ---

func TestExportCameraTrajectory(t *testing.T) {
	comp := demoComposition()
	path := filepath.Join(t.TempDir(), "trajectory.json")

	if err := ExportCameraTrajectory(comp, path); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var doc trajectoryDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Version != trajectoryVersion {
		t.Errorf("version = %d, want %d", doc.Version, trajectoryVersion)
	}
	if doc.FrameCount != comp.FrameCount || len(doc.Frames) != comp.FrameCount {
		t.Errorf("frames = %d/%d, want %d", doc.FrameCount, len(doc.Frames), comp.FrameCount)
	}
	// The dolly keyframes survive the round trip.
	assertNear(t, "frame 0 z", doc.Frames[0].Position[2], 10, 1e-9)
	assertNear(t, "frame 32 z", doc.Frames[32].Position[2], 4, 1e-9)
}

func TestExportCameraTrajectoryNoCamera(t *testing.T) {
	comp := NewComposition("bare", 8, 8, 16, 5)
	comp.Camera = nil
	path := filepath.Join(t.TempDir(), "trajectory.json")

	if err := ExportCameraTrajectory(comp, path); err != nil {
		t.Fatalf("export without camera: %v", err)
	}
	data, _ := os.ReadFile(path)
	var doc trajectoryDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Frames) != 0 {
		t.Errorf("frames = %d, want 0", len(doc.Frames))
	}
}
