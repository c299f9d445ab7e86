package dice

import (
	"encoding/binary"
	"math/rand/v2"
)

// seededSource implements Source on a ChaCha8 stream.
//
// Invariant: two seededSources built from the same seed yield identical
// sequences on every platform.
type seededSource struct {
	rng *rand.Rand
}

// NewSeededSource returns a reproducible Source derived from seed.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewSeededSource(seed uint64) Source {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return &seededSource{rng: rand.New(rand.NewChaCha8(key))}
}

// Intn returns a pseudorandom int in [0, n).
//
// Precondition: n > 0. Panics with "dice: Intn called with n <= 0" otherwise.
func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return s.rng.IntN(n)
}

// ScriptedSource replays a fixed list of die faces. It lets tests drive the
// production state machines through an exact roll sequence.
type ScriptedSource struct {
	faces []int
	next  int
}

// NewScriptedSource returns a Source that yields the given 1-based faces in
// order, restarting from the first face once the list is exhausted.
//
// Precondition: len(faces) > 0.
func NewScriptedSource(faces ...int) *ScriptedSource {
	if len(faces) == 0 {
		panic("dice: NewScriptedSource requires at least one face")
	}
	return &ScriptedSource{faces: faces}
}

// Intn returns the next scripted face minus one, clamped to [0, n).
func (s *ScriptedSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	face := s.faces[s.next%len(s.faces)]
	s.next++
	v := face - 1
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// Consumed reports how many faces have been drawn so far.
func (s *ScriptedSource) Consumed() int {
	return s.next
}
