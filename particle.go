package lattice

import "math"

// particle holds per-particle simulation state. Unexported; managed by Emitter.
type particle struct {
	x, y       float64
	vx, vy     float64
	life       float64 // remaining lifetime in frames
	maxLife    float64 // initial lifetime (for computing t)
	startScale float64
	endScale   float64
	scale      float64
	startAlpha float64
	endAlpha   float64
	alpha      float64
}

// EmitterConfig controls how particles are spawned and behave. All rates and
// velocities are frame-based (pixels per frame, frames of lifetime) so the
// simulation is independent of wall-clock playback speed.
type EmitterConfig struct {
	// Name identifies the emitter within a composition.
	Name string
	// Seed initializes the emitter's random state. Equal seeds with equal
	// configs replay identical particle histories.
	Seed uint64
	// MaxParticles is the pool size. New particles are silently dropped when full.
	MaxParticles int
	// EmitRate is the number of particles spawned per frame. When Rate is
	// non-nil it overrides EmitRate with a track evaluated at the current frame.
	EmitRate float64
	// Rate optionally animates the per-frame emission rate.
	Rate *Track
	// Origin optionally animates the spawn position; when nil, particles
	// spawn at OriginX, OriginY.
	Origin           *Track
	OriginX, OriginY float64
	// Lifetime is the range of particle lifetimes in frames.
	Lifetime Range
	// Speed is the range of initial particle speeds in pixels per frame.
	Speed Range
	// Angle is the range of emission angles in radians.
	Angle Range
	// StartScale is the range of scale factors at birth, interpolated to EndScale over lifetime.
	StartScale Range
	// EndScale is the range of scale factors at death.
	EndScale Range
	// StartAlpha is the range of alpha values at birth, interpolated to EndAlpha over lifetime.
	StartAlpha Range
	// EndAlpha is the range of alpha values at death.
	EndAlpha Range
	// Gravity is the constant acceleration applied to all particles each
	// frame, in pixels per frame squared.
	Gravity Vec2
	// StartColor is the tint at birth, interpolated to EndColor over lifetime.
	StartColor RGB
	// EndColor is the tint at death.
	EndColor RGB
}

// ParticleState is a read-only view of one live particle, for rendering and
// matte export.
type ParticleState struct {
	X, Y  float64
	Scale float64
	Alpha float64
	Color RGB
}

// Snapshot is an opaque checkpoint of an emitter's entire simulation state.
// Restoring a snapshot and re-stepping replays the exact same particle
// history, which is what makes timeline scrubbing reproducible without
// re-simulating from frame zero.
type Snapshot struct {
	particles []particle
	alive     int
	emitAccum float64
	rng       RandState
	frame     int
}

// Frame returns the frame the snapshot was taken at.
func (s Snapshot) Frame() int { return s.frame }

// Emitter manages a pool of particles with deterministic CPU simulation.
// All randomness flows through the value-state RNG so the same seed always
// produces the same history; the emitter never reads an ambient random
// source. Stepping is frame-based: Step advances exactly one frame.
type Emitter struct {
	config    EmitterConfig
	particles []particle
	alive     int
	emitAccum float64
	rng       RandState
	frame     int
	active    bool
}

// NewEmitter creates an Emitter with a preallocated pool, seeded from the
// config. The emitter starts active.
func NewEmitter(cfg EmitterConfig) *Emitter {
	max := cfg.MaxParticles
	if max <= 0 {
		max = 128
	}
	cfg.MaxParticles = max
	return &Emitter{
		config:    cfg,
		particles: make([]particle, max),
		rng:       NewRandState(cfg.Seed),
		active:    true,
	}
}

// Start begins emitting particles.
func (e *Emitter) Start() { e.active = true }

// Stop stops emitting new particles. Existing particles continue to live out.
func (e *Emitter) Stop() { e.active = false }

// IsActive reports whether the emitter is currently emitting new particles.
func (e *Emitter) IsActive() bool { return e.active }

// AliveCount returns the number of alive particles.
func (e *Emitter) AliveCount() int { return e.alive }

// Frame returns the current simulation frame.
func (e *Emitter) Frame() int { return e.frame }

// Config returns a pointer to the emitter's config for live tuning.
// Reseeding requires Reset to take effect.
func (e *Emitter) Config() *EmitterConfig { return &e.config }

// Reset rewinds the simulation to frame zero: kills all particles and
// restores the seeded random state.
func (e *Emitter) Reset() {
	e.alive = 0
	e.emitAccum = 0
	e.frame = 0
	e.rng = NewRandState(e.config.Seed)
}

// Step advances the simulation by exactly one frame: ages and moves existing
// particles, swap-removes the dead, then emits new ones.
func (e *Emitter) Step() {
	gx := e.config.Gravity.X
	gy := e.config.Gravity.Y

	// Update existing particles, swap-remove dead ones.
	i := 0
	for i < e.alive {
		p := &e.particles[i]
		p.life--
		if p.life <= 0 {
			e.alive--
			e.particles[i] = e.particles[e.alive]
			continue
		}

		p.vx += gx
		p.vy += gy
		p.x += p.vx
		p.y += p.vy

		t := 1.0 - p.life/p.maxLife
		p.scale = lerp(p.startScale, p.endScale, t)
		p.alpha = lerp(p.startAlpha, p.endAlpha, t)

		i++
	}

	// Emit new particles.
	if e.active {
		rate := e.config.EmitRate
		if e.config.Rate != nil {
			rate = e.config.Rate.EvaluateNumber(float64(e.frame))
		}
		if rate > 0 {
			e.emitAccum += rate
			for e.emitAccum >= 1.0 {
				e.emitAccum -= 1.0
				if e.alive < len(e.particles) {
					e.spawnParticle()
				}
			}
		}
	}

	e.frame++
}

// SeekFrame moves the simulation to the given frame deterministically.
// Seeking backward resets and replays from frame zero; seeking forward steps
// the difference. The result is bit-identical to having stepped there
// directly, whatever the scrub history.
func (e *Emitter) SeekFrame(frame int) {
	if frame < 0 {
		frame = 0
	}
	if frame < e.frame {
		e.Reset()
	}
	for e.frame < frame {
		e.Step()
	}
}

// Checkpoint captures the full simulation state. The snapshot owns copies of
// the live particles, so the emitter can keep stepping without invalidating it.
func (e *Emitter) Checkpoint() Snapshot {
	s := Snapshot{
		alive:     e.alive,
		emitAccum: e.emitAccum,
		rng:       e.rng,
		frame:     e.frame,
	}
	s.particles = make([]particle, e.alive)
	copy(s.particles, e.particles[:e.alive])
	return s
}

// Restore rewinds the emitter to a previously captured snapshot.
func (e *Emitter) Restore(s Snapshot) {
	if s.alive > len(e.particles) {
		e.particles = make([]particle, s.alive)
	}
	copy(e.particles, s.particles)
	e.alive = s.alive
	e.emitAccum = s.emitAccum
	e.rng = s.rng
	e.frame = s.frame
}

// Particles appends the state of every live particle to dst and returns it.
// Colors interpolate per-channel from StartColor to EndColor over lifetime.
func (e *Emitter) Particles(dst []ParticleState) []ParticleState {
	for i := 0; i < e.alive; i++ {
		p := &e.particles[i]
		t := 1.0 - p.life/p.maxLife
		dst = append(dst, ParticleState{
			X:     p.x,
			Y:     p.y,
			Scale: p.scale,
			Alpha: p.alpha,
			Color: RGB{
				R: blendChannel(e.config.StartColor.R, e.config.EndColor.R, t),
				G: blendChannel(e.config.StartColor.G, e.config.EndColor.G, t),
				B: blendChannel(e.config.StartColor.B, e.config.EndColor.B, t),
			},
		})
	}
	return dst
}

// spawnParticle initializes the particle at slot e.alive and increments alive.
// Sampling order is fixed; changing it changes every seeded history.
func (e *Emitter) spawnParticle() {
	p := &e.particles[e.alive]

	var angle, speed float64
	angle, e.rng = e.config.Angle.Sample(e.rng)
	speed, e.rng = e.config.Speed.Sample(e.rng)
	p.vx = math.Cos(angle) * speed
	p.vy = math.Sin(angle) * speed

	if e.config.Origin != nil {
		origin := e.config.Origin.EvaluateVec2(float64(e.frame))
		p.x = origin.X
		p.y = origin.Y
	} else {
		p.x = e.config.OriginX
		p.y = e.config.OriginY
	}

	p.life, e.rng = e.config.Lifetime.Sample(e.rng)
	if p.life <= 0 {
		p.life = 1
	}
	p.maxLife = p.life

	p.startScale, e.rng = e.config.StartScale.Sample(e.rng)
	p.endScale, e.rng = e.config.EndScale.Sample(e.rng)
	p.scale = p.startScale

	p.startAlpha, e.rng = e.config.StartAlpha.Sample(e.rng)
	p.endAlpha, e.rng = e.config.EndAlpha.Sample(e.rng)
	p.alpha = p.startAlpha

	e.alive++
}
