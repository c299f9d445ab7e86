package ruleset

import "github.com/cory-johannsen/solo5e/internal/game/dice"

// AttackResult exposes the raw and kept d20 together with the hit flags.
type AttackResult struct {
	Mode  dice.Mode
	Rolls []int // raw d20 faces, in draw order
	Roll  int   // kept face
	Bonus int
	Total int
	AC    int
	Hit   bool
	Crit  bool
	Nat1  bool
}

// Attack rolls d20(mode) + bonus against ac.
//
// Postcondition: Crit iff Roll == 20; Nat1 iff Roll == 1;
// Hit iff Crit || (!Nat1 && Total >= AC).
func Attack(r *dice.Roller, mode dice.Mode, bonus, ac int) AttackResult {
	d20 := r.D20(mode)
	res := AttackResult{
		Mode:  mode,
		Rolls: d20.Rolls,
		Roll:  d20.Kept,
		Bonus: bonus,
		Total: d20.Kept + bonus,
		AC:    ac,
		Crit:  d20.Kept == 20,
		Nat1:  d20.Kept == 1,
	}
	res.Hit = res.Crit || (!res.Nat1 && res.Total >= ac)
	return res
}
