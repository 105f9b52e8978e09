package lattice

import "sort"

// Track is an animatable property: an ordered list of keyframes plus a
// static value used when no keyframes exist. Keyframes are unique by frame
// and kept in ascending frame order; both invariants are enforced at Insert
// and Remove time, never at evaluation time.
//
// A Track exclusively owns its keyframes. Copying a Track with Clone copies
// them all; no keyframe is shared across tracks. Tracks may be read
// concurrently, but mutation during evaluation requires external
// synchronization; the track itself takes no locks.
type Track struct {
	// Static is the value returned whenever the track is not animated.
	Static Value
	// Animated is true iff the keyframe list is non-empty.
	Animated bool

	keys []Keyframe
}

// NewTrack creates an unanimated track with the given static value.
func NewTrack(static Value) *Track {
	return &Track{Static: static}
}

// Len returns the number of keyframes.
func (t *Track) Len() int { return len(t.keys) }

// Keyframes returns the keyframes in ascending frame order. The returned
// slice is the track's own storage; callers must not mutate it.
func (t *Track) Keyframes() []Keyframe { return t.keys }

// Insert adds a keyframe, replacing any existing keyframe at the same frame,
// and marks the track animated. Handle x-components are clamped to [0,1] so
// time influence cannot run backward; y-components are left unbounded for
// overshoot easing.
func (t *Track) Insert(k Keyframe) {
	k.OutHandle.X = clamp01(k.OutHandle.X)
	k.InHandle.X = clamp01(k.InHandle.X)

	i := sort.Search(len(t.keys), func(i int) bool { return t.keys[i].Frame >= k.Frame })
	if i < len(t.keys) && t.keys[i].Frame == k.Frame {
		t.keys[i] = k
	} else {
		t.keys = append(t.keys, Keyframe{})
		copy(t.keys[i+1:], t.keys[i:])
		t.keys[i] = k
	}
	t.Animated = true
}

// Remove deletes the keyframe at exactly the given frame, if present, and
// reports whether a keyframe was removed. The track stops being animated
// when its last keyframe is removed.
func (t *Track) Remove(frame int) bool {
	i := sort.Search(len(t.keys), func(i int) bool { return t.keys[i].Frame >= frame })
	if i >= len(t.keys) || t.keys[i].Frame != frame {
		t.Animated = len(t.keys) > 0
		return false
	}
	t.keys = append(t.keys[:i], t.keys[i+1:]...)
	t.Animated = len(t.keys) > 0
	return true
}

// Bracket returns the two keyframes whose frames bracket time. Times at or
// before the first keyframe clamp to (first, first); times at or after the
// last clamp to (last, last); a single keyframe brackets itself. ok is false
// only when the track has no keyframes.
func (t *Track) Bracket(time float64) (left, right Keyframe, ok bool) {
	n := len(t.keys)
	if n == 0 {
		return Keyframe{}, Keyframe{}, false
	}
	if time <= float64(t.keys[0].Frame) {
		return t.keys[0], t.keys[0], true
	}
	if time >= float64(t.keys[n-1].Frame) {
		return t.keys[n-1], t.keys[n-1], true
	}
	// First keyframe strictly after time; its predecessor is the left bracket.
	i := sort.Search(n, func(i int) bool { return float64(t.keys[i].Frame) > time })
	return t.keys[i-1], t.keys[i], true
}

// Clone returns a deep copy of the track. The copy owns its own keyframes,
// so callers can snapshot a track for lock-free evaluation while the
// original keeps being edited.
func (t *Track) Clone() *Track {
	c := &Track{Static: t.Static, Animated: t.Animated}
	if len(t.keys) > 0 {
		c.keys = make([]Keyframe, len(t.keys))
		copy(c.keys, t.keys)
	}
	return c
}
