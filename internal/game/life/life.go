// Package life tracks hit points and the unconscious and death-save state
// machine of a combatant.
package life

import (
	"github.com/cory-johannsen/solo5e/internal/game/condition"
	"github.com/cory-johannsen/solo5e/internal/game/eventlog"
)

// State is a combatant's life state.
type State int

const (
	Conscious State = iota
	// Unconscious is dying at 0 HP; death saves are rolled each turn.
	Unconscious
	// Stable is unconscious at 0 HP with no further death saves.
	Stable
	Dead
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case Conscious:
		return "Conscious"
	case Unconscious:
		return "Unconscious"
	case Stable:
		return "Unconscious (stable)"
	case Dead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// IsUnconscious reports whether s is Unconscious or Stable.
func (s State) IsUnconscious() bool {
	return s == Unconscious || s == Stable
}

// MaxDeathSaves is the saturating tally for successes and failures.
const MaxDeathSaves = 3

// DeathSaves is the running tally of death saving throws.
//
// Invariant: 0 <= Successes, Failures <= MaxDeathSaves.
type DeathSaves struct {
	Successes int
	Failures  int
}

func (d *DeathSaves) succeed(n int) { d.Successes = min(d.Successes+n, MaxDeathSaves) }
func (d *DeathSaves) fail(n int)    { d.Failures = min(d.Failures+n, MaxDeathSaves) }

// Health is the mutable hit point record of one combatant.
//
// Invariant: 0 <= HP <= MaxHP.
type Health struct {
	HP    int
	MaxHP int
	State State
	Death DeathSaves
}

// NewHealth returns a conscious combatant at full hit points.
//
// Precondition: maxHP >= 0.
func NewHealth(maxHP int) *Health {
	return &Health{HP: maxHP, MaxHP: maxHP, State: Conscious}
}

// ApplyDamage subtracts dmg from h, clamping HP at 0, and handles the
// drop to unconsciousness. A Dead combatant is left untouched.
//
// Postcondition: returns true iff HP went from above 0 to exactly 0 in this
// call, in which case State is Unconscious and set holds Prone.
func ApplyDamage(name string, h *Health, set *condition.Set, dmg int, sink eventlog.Sink) bool {
	if h.State == Dead {
		return false
	}
	before := h.HP
	h.HP = max(h.HP-dmg, 0)
	eventlog.Emitf(sink, eventlog.TagDamage, name, "%d → %d (−%d)", before, h.HP, dmg)

	if before <= 0 || h.HP != 0 {
		return false
	}
	h.State = Unconscious
	if set.Ensure(condition.Prone) {
		eventlog.Emitf(sink, eventlog.TagCondition, name, "gains Prone (unconscious)")
	}
	eventlog.Emitf(sink, eventlog.TagState, name, "drops to 0 HP → Unconscious")
	return true
}

// Heal restores amount hit points, capped at MaxHP. An unconscious combatant
// brought above 0 wakes and its death-save tally resets. Non-positive
// amounts and Dead combatants are ignored.
func Heal(name string, h *Health, amount int, sink eventlog.Sink) {
	if amount <= 0 || h.State == Dead {
		return
	}
	before := h.HP
	h.HP = min(h.HP+amount, h.MaxHP)
	if h.State.IsUnconscious() && h.HP > 0 {
		h.State = Conscious
		h.Death = DeathSaves{}
		eventlog.Emitf(sink, eventlog.TagHeal, name, "+%d HP (%d → %d) and regains consciousness", amount, before, h.HP)
		return
	}
	eventlog.Emitf(sink, eventlog.TagHeal, name, "+%d HP (%d → %d)", amount, before, h.HP)
}

// Stabilize stops death saves for a dying combatant without waking it.
//
// Postcondition: an Unconscious combatant becomes Stable; HP is unchanged.
func Stabilize(name string, h *Health, sink eventlog.Sink) {
	if h.State != Unconscious {
		return
	}
	h.State = Stable
	eventlog.Emitf(sink, eventlog.TagState, name, "is stabilized at 0 HP")
}
