package ruleset

import "github.com/cory-johannsen/solo5e/internal/game/dice"

// CheckResult exposes every number behind a check or saving throw.
type CheckResult struct {
	D20      dice.D20Result
	Roll     int // kept d20 face
	Modifier int
	Total    int
	DC       int
	Passed   bool
}

// Check rolls d20(mode) + modifier against dc.
//
// Postcondition: Total == Roll + Modifier; Passed iff Total >= DC.
func Check(r *dice.Roller, dc, modifier int, mode dice.Mode) CheckResult {
	d20 := r.D20(mode)
	total := d20.Kept + modifier
	return CheckResult{
		D20:      d20,
		Roll:     d20.Kept,
		Modifier: modifier,
		Total:    total,
		DC:       dc,
		Passed:   total >= dc,
	}
}

// SavingThrow names the ability and DC of a save.
type SavingThrow struct {
	Ability Ability `yaml:"ability"`
	DC      int     `yaml:"dc"`
}

// Saver resolves saving throws for one combatant.
type Saver interface {
	// SavingThrow rolls a save against st and reports the result.
	SavingThrow(st SavingThrow) CheckResult
}

// ModSaver is a Saver that rolls Normal d20s with a per-ability modifier.
type ModSaver struct {
	Roller *dice.Roller
	Mod    func(Ability) int
}

// SavingThrow rolls d20 + Mod(st.Ability) against st.DC.
func (s ModSaver) SavingThrow(st SavingThrow) CheckResult {
	return Check(s.Roller, st.DC, s.Mod(st.Ability), dice.Normal)
}
