package ruleset

import "github.com/cory-johannsen/solo5e/internal/game/dice"

// ContestOutcome is the result of a contested check.
type ContestOutcome int

const (
	AttackerWins ContestOutcome = iota
	DefenderWins
	TieDefender
)

// ContestResult records both sides of a contested check.
type ContestResult struct {
	AttackerRoll  int
	AttackerTotal int
	DefenderRoll  int
	DefenderTotal int
	Outcome       ContestOutcome
}

// Contest rolls a Normal d20 for the attacker, then one for the defender,
// and adds each side's modifier.
//
// Postcondition: AttackerWins iff AttackerTotal > DefenderTotal; ties go to
// the defender.
func Contest(r *dice.Roller, attackerMod, defenderMod int) ContestResult {
	ar := r.D20(dice.Normal).Kept
	dr := r.D20(dice.Normal).Kept
	res := ContestResult{
		AttackerRoll:  ar,
		AttackerTotal: ar + attackerMod,
		DefenderRoll:  dr,
		DefenderTotal: dr + defenderMod,
	}
	switch {
	case res.AttackerTotal > res.DefenderTotal:
		res.Outcome = AttackerWins
	case res.AttackerTotal == res.DefenderTotal:
		res.Outcome = TieDefender
	default:
		res.Outcome = DefenderWins
	}
	return res
}

// BestOfStrDex picks the defender's better modifier; Str wins ties.
func BestOfStrDex(strMod, dexMod int) (Ability, int) {
	if dexMod > strMod {
		return Dex, dexMod
	}
	return Str, strMod
}
