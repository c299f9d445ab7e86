package life

import (
	"fmt"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/eventlog"
)

// ProcessDeathSave rolls a start-of-turn death save for a dying combatant.
//
// A natural 20 wakes the combatant at 1 HP. A natural 1 counts two failures.
// Otherwise 10 or more is a success and anything lower a failure. Three
// failures kill regardless of successes; three successes stabilize.
//
// Precondition: r is non-nil.
// Postcondition: rolled is false, and no die is drawn, unless h was
// Unconscious at 0 HP.
func ProcessDeathSave(name string, h *Health, r *dice.Roller, sink eventlog.Sink) (outcome string, rolled bool) {
	if h.State != Unconscious || h.HP != 0 {
		return "", false
	}
	roll := r.D20(dice.Normal).Kept

	var note string
	switch {
	case roll == 20:
		h.Death = DeathSaves{}
		h.HP = 1
		h.State = Conscious
		note = "NAT20 → regain 1 HP & wake"
	case roll == 1:
		h.Death.fail(2)
		note = "NAT1 → 2 failures"
	case roll >= 10:
		h.Death.succeed(1)
		note = "success"
	default:
		h.Death.fail(1)
		note = "failure"
	}

	if h.Death.Failures >= MaxDeathSaves {
		h.State = Dead
		eventlog.Emitf(sink, eventlog.TagDeathSave, name, "roll=%d → failure tally=%d, success tally=%d → DEAD",
			roll, h.Death.Failures, h.Death.Successes)
		return fmt.Sprintf("roll=%d → DEAD", roll), true
	}
	if h.Death.Successes >= MaxDeathSaves {
		h.State = Stable
		eventlog.Emitf(sink, eventlog.TagDeathSave, name, "roll=%d → stabilized (3 successes)", roll)
		return fmt.Sprintf("roll=%d → stabilized", roll), true
	}
	eventlog.Emitf(sink, eventlog.TagDeathSave, name, "roll=%d → %s (S=%d, F=%d)",
		roll, note, h.Death.Successes, h.Death.Failures)
	return fmt.Sprintf("roll=%d → %s", roll, note), true
}
