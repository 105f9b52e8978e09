package lattice

// RandState is the value-type state of the deterministic random generator.
// Advancing the generator returns a new state rather than mutating in place,
// so consumers can checkpoint a sequence by copying the state and replay it
// exactly. Consumers that need reproducibility (particle emitters, scrubbing
// callers) own their own state and never read from an ambient random source.
type RandState uint64

// randSeedMix replaces a zero seed, which would lock xorshift at zero forever.
const randSeedMix = 0x9E3779B97F4A7C15

// NewRandState returns a generator state for the given seed. Equal seeds
// always produce equal sequences.
func NewRandState(seed uint64) RandState {
	if seed == 0 {
		seed = randSeedMix
	}
	return RandState(seed)
}

// Next returns a uniformly distributed value in [0, 1) and the advanced
// state. The transition is a pure function: the same state always yields the
// same pair. The generator is xorshift64* (Vigna), chosen for a one-word
// copyable state.
func (s RandState) Next() (float64, RandState) {
	x := uint64(s)
	if x == 0 {
		x = randSeedMix
	}
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	out := x * 0x2545F4914F6CDD1D
	// 53 high bits give a full-precision float64 mantissa.
	return float64(out>>11) / (1 << 53), RandState(x)
}
