package lattice

// Camera is a 3D camera whose position, look-at target, field of view, and
// zoom are animatable tracks. The compositor itself never projects through
// the camera; its job is to evaluate deterministic per-frame states and hand
// the sampled trajectory to downstream video-generation pipelines.
type Camera struct {
	PosX, PosY, PosZ          *Track // Number, world units
	TargetX, TargetY, TargetZ *Track // Number, world units
	FOV                       *Track // Number, degrees
	Zoom                      *Track // Number, multiplier (1 = none)
}

// CameraState is the camera's evaluated pose at one frame. The JSON shape is
// the camera-trajectory export format.
type CameraState struct {
	Frame    int        `json:"frame"`
	Position [3]float64 `json:"position"`
	Target   [3]float64 `json:"target"`
	FOV      float64    `json:"fov"`
	Zoom     float64    `json:"zoom"`
}

// NewCamera creates a camera at the origin looking down negative Z with a
// 50 degree field of view and no zoom.
func NewCamera() *Camera {
	return &Camera{
		PosX:    NewTrack(Number(0)),
		PosY:    NewTrack(Number(0)),
		PosZ:    NewTrack(Number(10)),
		TargetX: NewTrack(Number(0)),
		TargetY: NewTrack(Number(0)),
		TargetZ: NewTrack(Number(0)),
		FOV:     NewTrack(Number(50)),
		Zoom:    NewTrack(Number(1)),
	}
}

// StateAt evaluates the camera pose at the given frame. Pure.
func (c *Camera) StateAt(frame float64) CameraState {
	s := CameraState{Frame: int(frame)}
	if c.PosX != nil {
		s.Position[0] = c.PosX.EvaluateNumber(frame)
	}
	if c.PosY != nil {
		s.Position[1] = c.PosY.EvaluateNumber(frame)
	}
	if c.PosZ != nil {
		s.Position[2] = c.PosZ.EvaluateNumber(frame)
	}
	if c.TargetX != nil {
		s.Target[0] = c.TargetX.EvaluateNumber(frame)
	}
	if c.TargetY != nil {
		s.Target[1] = c.TargetY.EvaluateNumber(frame)
	}
	if c.TargetZ != nil {
		s.Target[2] = c.TargetZ.EvaluateNumber(frame)
	}
	if c.FOV != nil {
		s.FOV = c.FOV.EvaluateNumber(frame)
	}
	if c.Zoom != nil {
		s.Zoom = c.Zoom.EvaluateNumber(frame)
	}
	return s
}

// Trajectory samples the camera at every integer frame in [0, frameCount).
func (c *Camera) Trajectory(frameCount int) []CameraState {
	if frameCount < 0 {
		frameCount = 0
	}
	states := make([]CameraState, frameCount)
	for f := 0; f < frameCount; f++ {
		states[f] = c.StateAt(float64(f))
	}
	return states
}

// Clone deep-copies the camera and all its tracks.
func (c *Camera) Clone() *Camera {
	clone := &Camera{}
	if c.PosX != nil {
		clone.PosX = c.PosX.Clone()
	}
	if c.PosY != nil {
		clone.PosY = c.PosY.Clone()
	}
	if c.PosZ != nil {
		clone.PosZ = c.PosZ.Clone()
	}
	if c.TargetX != nil {
		clone.TargetX = c.TargetX.Clone()
	}
	if c.TargetY != nil {
		clone.TargetY = c.TargetY.Clone()
	}
	if c.TargetZ != nil {
		clone.TargetZ = c.TargetZ.Clone()
	}
	if c.FOV != nil {
		clone.FOV = c.FOV.Clone()
	}
	if c.Zoom != nil {
		clone.Zoom = c.Zoom.Clone()
	}
	return clone
}
