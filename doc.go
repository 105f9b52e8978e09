// Package lattice is the deterministic composition core of a motion-graphics
// compositor: keyframe tracks, easing, layers, a 3D camera, particles, and
// export to AI-video-generation-friendly artifacts (matte sequences and
// camera trajectories).
//
// # Determinism contract
//
// Everything the timeline touches is a pure function of its inputs.
// [Track.Evaluate] returns bit-identical values for the same track contents
// and query time, regardless of call order: scrubbing forward, backward,
// or re-querying a frame can never diverge. Randomness flows through the
// value-state [RandState], so seeded consumers ([Emitter]) replay identical
// histories. The contract extends to artifacts: exporting the same
// composition twice produces identical bytes.
//
// Evaluation never fails. Malformed tracks fall back to their static value,
// degenerate bezier solves return their best estimate, and unknown easing
// presets degrade to linear.
//
// # Quick start
//
//	comp := lattice.NewComposition("shot", 512, 512, 16, 81)
//
//	box := lattice.NewLayer("box")
//	box.Position.Insert(lattice.Keyframe{Frame: 0, Value: lattice.Point(64, 256)})
//	box.Position.Insert(lattice.Keyframe{
//		Frame: 80, Value: lattice.Point(448, 256),
//		Interp: lattice.InterpPreset, Ease: "inOutCubic",
//	})
//	comp.AddLayer(box)
//
//	state := comp.EvaluateFrame(40)
//	matte := lattice.RenderMatte(state, comp.Width, comp.Height)
//
// # Tracks and keyframes
//
// A [Track] owns an ordered list of [Keyframe] values plus a static fallback.
// Each keyframe's [InterpMode] governs the segment to its right: linear,
// hold, cubic-bezier with overshoot-capable handles (solved by [Solve]), or a
// named easing preset from the gween/ease set ([EasePreset]).
//
// # Concurrency
//
// The package is single-threaded by contract: tracks and compositions may be
// read from any goroutine, but mutation during evaluation requires external
// synchronization. Clone a track or composition for snapshot isolation.
//
// # Boundaries
//
// Rendering beyond the solid-quad preview ([Renderer]) and matte rasterizer
// ([RenderMatte]), persistence of anything besides project documents
// ([SaveProject]/[LoadProject]), undo history, and the editing UI are
// external collaborators, not part of this core.
package lattice
