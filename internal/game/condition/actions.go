package condition

import (
	"fmt"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/eventlog"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

// Contestant is one side of a grapple, shove or escape.
type Contestant struct {
	Name   string
	StrMod int
	DexMod int
}

func contest(r *dice.Roller, attacker, defender Contestant, attLabel, defLabel string, sink eventlog.Sink) ruleset.ContestResult {
	_, defMod := ruleset.BestOfStrDex(defender.StrMod, defender.DexMod)
	res := ruleset.Contest(r, attacker.StrMod, defMod)
	eventlog.Emitf(sink, eventlog.TagContest, "", "%s d20=%d (%d total) vs %s d20=%d (%d total)",
		attLabel, res.AttackerRoll, res.AttackerTotal, defLabel, res.DefenderRoll, res.DefenderTotal)
	return res
}

// AttemptGrapple contests the attacker's STR against the defender's better
// of STR or DEX. A win grapples the defender; ties go to the defender.
//
// Postcondition: on success defenderSet holds exactly one Grappled record.
func AttemptGrapple(r *dice.Roller, attacker, defender Contestant, defenderSet *Set, sink eventlog.Sink) bool {
	res := contest(r, attacker, defender,
		fmt.Sprintf("%s (STR)", attacker.Name), fmt.Sprintf("%s (best STR/DEX)", defender.Name), sink)
	if res.Outcome != ruleset.AttackerWins {
		eventlog.Emitf(sink, eventlog.TagContest, "", "Grapple fails")
		return false
	}
	defenderSet.Ensure(Grappled)
	eventlog.Emitf(sink, eventlog.TagCondition, defender.Name, "is now Grappled (speed 0)")
	return true
}

// AttemptShoveProne is AttemptGrapple's twin that knocks the defender Prone.
func AttemptShoveProne(r *dice.Roller, attacker, defender Contestant, defenderSet *Set, sink eventlog.Sink) bool {
	res := contest(r, attacker, defender,
		fmt.Sprintf("%s (STR)", attacker.Name), fmt.Sprintf("%s (best STR/DEX)", defender.Name), sink)
	if res.Outcome != ruleset.AttackerWins {
		eventlog.Emitf(sink, eventlog.TagContest, "", "Shove fails")
		return false
	}
	defenderSet.Ensure(Prone)
	eventlog.Emitf(sink, eventlog.TagCondition, defender.Name, "is shoved Prone")
	return true
}

// AttemptEscapeGrapple lets a grappled creature contest its better of STR or
// DEX against the grappler's STR. The grappler defends, so ties keep the
// grapple. A creature that is not grappled rolls nothing.
//
// Postcondition: returns true iff Grappled was removed from escaperSet.
func AttemptEscapeGrapple(r *dice.Roller, escaper Contestant, escaperSet *Set, grappler Contestant, sink eventlog.Sink) bool {
	if !escaperSet.Has(Grappled) {
		return false
	}
	_, escMod := ruleset.BestOfStrDex(escaper.StrMod, escaper.DexMod)
	res := ruleset.Contest(r, escMod, grappler.StrMod)
	eventlog.Emitf(sink, eventlog.TagContest, "", "%s (best STR/DEX) d20=%d (%d total) vs %s (STR) d20=%d (%d total)",
		escaper.Name, res.AttackerRoll, res.AttackerTotal, grappler.Name, res.DefenderRoll, res.DefenderTotal)
	if res.Outcome != ruleset.AttackerWins {
		eventlog.Emitf(sink, eventlog.TagContest, "", "Escape fails")
		return false
	}
	escaperSet.Remove(Grappled)
	eventlog.Emitf(sink, eventlog.TagCondition, escaper.Name, "escapes the grapple")
	return true
}
