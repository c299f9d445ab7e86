package combat

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
)

// InitiativeEntry is one participant's initiative roll.
type InitiativeEntry struct {
	Combatant *Combatant
	Roll      int
	Total     int
}

// RollInitiative rolls d20 + DexMod for every combatant, in the given order,
// and returns the entries sorted into turn order.
//
// Precondition: r and every combatant must be non-nil.
// Postcondition: the result is ordered by Total descending, then Roll
// descending, then the actor before enemies, then Index ascending.
func RollInitiative(r *dice.Roller, combatants []*Combatant) []InitiativeEntry {
	entries := make([]InitiativeEntry, len(combatants))
	for i, c := range combatants {
		roll := r.D20(dice.Normal).Kept
		entries[i] = InitiativeEntry{Combatant: c, Roll: roll, Total: roll + c.DexMod}
	}
	SortInitiative(entries)
	return entries
}

// SortInitiative orders entries deterministically; ties are never re-rolled.
func SortInitiative(entries []InitiativeEntry) {
	slices.SortStableFunc(entries, func(a, b InitiativeEntry) int {
		return cmp.Or(
			cmp.Compare(b.Total, a.Total),
			cmp.Compare(b.Roll, a.Roll),
			cmp.Compare(a.Combatant.Kind, b.Combatant.Kind),
			cmp.Compare(a.Combatant.Index, b.Combatant.Index),
		)
	})
}

// turnOrder returns the combatants of entries.
func turnOrder(entries []InitiativeEntry) []*Combatant {
	out := make([]*Combatant, len(entries))
	for i, e := range entries {
		out[i] = e.Combatant
	}
	return out
}

func describeInitiative(entries []InitiativeEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s %d", e.Combatant.Name, e.Total)
	}
	return strings.Join(parts, ", ")
}
