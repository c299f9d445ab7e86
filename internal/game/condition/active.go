package condition

import "github.com/cory-johannsen/solo5e/internal/game/ruleset"

// ActiveCondition tracks one applied condition on a combatant.
type ActiveCondition struct {
	Kind Kind
	// SaveEndsEachTurn makes the bearer attempt EndSave at every end of turn.
	SaveEndsEachTurn bool
	EndSave          *ruleset.SavingThrow
	// EndPhase is the boundary at which a one-turn duration lapses.
	EndPhase Phase
	// PendingOneTurn is cleared by removal, so a one-turn duration lapses once.
	PendingOneTurn bool
}

// Permanent returns a record with no save and no expiry.
func Permanent(k Kind) ActiveCondition {
	return ActiveCondition{Kind: k}
}

// Set is the ordered collection of conditions on one combatant.
//
// Invariant: no two records share a Kind.
// A Set is not safe for concurrent use; the caller must serialise access.
type Set struct {
	items []ActiveCondition
}

// NewSet returns a Set holding a permanent record of each kind, skipping
// duplicates.
func NewSet(kinds ...Kind) *Set {
	s := &Set{}
	for _, k := range kinds {
		s.Ensure(k)
	}
	return s
}

func (s *Set) index(k Kind) int {
	for i, c := range s.items {
		if c.Kind == k {
			return i
		}
	}
	return -1
}

// Has reports whether a record of kind k is present.
func (s *Set) Has(k Kind) bool {
	return s.index(k) >= 0
}

// Apply pushes c, replacing any existing record of the same kind in place.
//
// Postcondition: Has(c.Kind); Len() grows by at most one.
func (s *Set) Apply(c ActiveCondition) {
	if i := s.index(c.Kind); i >= 0 {
		s.items[i] = c
		return
	}
	s.items = append(s.items, c)
}

// Ensure adds a permanent record of kind k unless one already exists.
//
// Postcondition: Has(k). Returns true iff a record was added.
func (s *Set) Ensure(k Kind) bool {
	if s.Has(k) {
		return false
	}
	s.items = append(s.items, Permanent(k))
	return true
}

// Remove deletes the record of kind k, preserving the order of the rest.
//
// Postcondition: !Has(k). Returns true iff a record was removed.
func (s *Set) Remove(k Kind) bool {
	i := s.index(k)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// All returns a copy of the records in application order.
func (s *Set) All() []ActiveCondition {
	out := make([]ActiveCondition, len(s.items))
	copy(out, s.items)
	return out
}

// Kinds returns the kinds present in application order.
func (s *Set) Kinds() []Kind {
	out := make([]Kind, len(s.items))
	for i, c := range s.items {
		out[i] = c.Kind
	}
	return out
}

// Len returns the number of records.
func (s *Set) Len() int {
	return len(s.items)
}
