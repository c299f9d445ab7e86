package condition

import (
	"github.com/cory-johannsen/solo5e/internal/game/eventlog"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

func verdict(passed bool, pass, fail string) string {
	if passed {
		return pass
	}
	return fail
}

// ProcessTurnBoundary runs the lifecycle of every condition on set at
// boundary b for the combatant called name.
//
// At EndOfTurn, each save-ends condition first rolls its EndSave through
// saver; a success removes it. Then, at either boundary, every pending
// one-turn condition whose EndPhase equals b is removed.
//
// Precondition: b is StartOfTurn or EndOfTurn; saver and sink are non-nil.
// Postcondition: no remaining record has PendingOneTurn && EndPhase == b.
func ProcessTurnBoundary(b Phase, name string, set *Set, saver ruleset.Saver, sink eventlog.Sink) {
	if b == EndOfTurn {
		var ended []Kind
		for _, c := range set.items {
			if !c.SaveEndsEachTurn || c.EndSave == nil {
				continue
			}
			res := saver.SavingThrow(*c.EndSave)
			eventlog.Emitf(sink, eventlog.TagSave, name, "makes a %s save DC %d vs %s: roll=%d total=%d → %s",
				c.EndSave.Ability, c.EndSave.DC, c.Kind, res.Roll, res.Total, verdict(res.Passed, "SUCCESS", "FAIL"))
			if res.Passed {
				ended = append(ended, c.Kind)
			}
		}
		for _, k := range ended {
			set.Remove(k)
			eventlog.Emitf(sink, eventlog.TagCondition, name, "is no longer %s", k)
		}
	}

	var lapsed []Kind
	for _, c := range set.items {
		if c.PendingOneTurn && c.EndPhase == b {
			lapsed = append(lapsed, c.Kind)
		}
	}
	for _, k := range lapsed {
		set.Remove(k)
		eventlog.Emitf(sink, eventlog.TagCondition, name, "%s ends at %s", k, b)
	}
}

// ApplyOnHit lands spec on the target called name. When spec carries a
// save, the target rolls it first and a success aborts with no state change.
//
// Postcondition: returns true iff set now holds a fresh record built from spec.
func ApplyOnHit(name string, set *Set, spec Spec, saver ruleset.Saver, sink eventlog.Sink) bool {
	if spec.Save != nil {
		res := saver.SavingThrow(*spec.Save)
		eventlog.Emitf(sink, eventlog.TagSave, name, "resists %s? %s save DC %d: roll=%d total=%d → %s",
			spec.Kind, spec.Save.Ability, spec.Save.DC, res.Roll, res.Total, verdict(res.Passed, "RESISTED", "FAILED"))
		if res.Passed {
			return false
		}
	}
	set.Apply(spec.Active())
	eventlog.Emitf(sink, eventlog.TagCondition, name, "gains %s", spec.Kind)
	return true
}
