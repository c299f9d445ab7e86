package inventory

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

// AbilityChoice selects which ability drives a weapon attack.
type AbilityChoice int

const (
	// AbilityAuto uses DEX for finesse or ranged weapons and STR otherwise.
	AbilityAuto AbilityChoice = iota
	AbilityStr
	AbilityDex
)

// String returns "auto", "str" or "dex".
func (c AbilityChoice) String() string {
	switch c {
	case AbilityStr:
		return "str"
	case AbilityDex:
		return "dex"
	default:
		return "auto"
	}
}

// ParseAbilityChoice accepts "auto", "str" or "dex" in any case. An empty
// string is auto.
func ParseAbilityChoice(s string) (AbilityChoice, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return AbilityAuto, nil
	case "str", "strength":
		return AbilityStr, nil
	case "dex", "dexterity":
		return AbilityDex, nil
	}
	return 0, fmt.Errorf("inventory: unknown ability choice %q (want auto|str|dex)", s)
}

// Loadout is how the actor wields its weapon for one simulation.
type Loadout struct {
	Weapon     *Weapon
	Ability    AbilityChoice
	Proficient bool
	TwoHanded  bool
	// DiceOverride replaces the weapon's pool when set.
	DiceOverride *dice.DamageDice
	// DamageTypeOverride replaces the weapon's damage type when set.
	DamageTypeOverride *ruleset.DamageType
}

// AttackProfile is the resolved attack of a Loadout for a given actor.
type AttackProfile struct {
	Name       string
	Ability    ruleset.Ability
	Bonus      int
	DamageMod  int
	Dice       dice.DamageDice
	DamageType ruleset.DamageType
	Ranged     bool
}

// AttackAbility resolves the ability choice against the weapon.
func (l Loadout) AttackAbility() ruleset.Ability {
	switch l.Ability {
	case AbilityStr:
		return ruleset.Str
	case AbilityDex:
		return ruleset.Dex
	}
	if l.Weapon.Finesse || l.Weapon.Ranged {
		return ruleset.Dex
	}
	return ruleset.Str
}

// Profile computes attack bonus, damage modifier, dice and damage type.
//
// Precondition: l.Weapon is non-nil.
// Postcondition: Bonus == a.AttackBonus(Ability, l.Proficient).
func (l Loadout) Profile(a ruleset.Actor) AttackProfile {
	ab := l.AttackAbility()
	pool := l.Weapon.Pool(l.TwoHanded)
	if l.DiceOverride != nil {
		pool = *l.DiceOverride
	}
	dt := l.Weapon.ResolvedDamageType()
	if l.DamageTypeOverride != nil {
		dt = *l.DamageTypeOverride
	}
	return AttackProfile{
		Name:       l.Weapon.Name,
		Ability:    ab,
		Bonus:      a.AttackBonus(ab, l.Proficient),
		DamageMod:  a.DamageMod(ab),
		Dice:       pool,
		DamageType: dt,
		Ranged:     l.Weapon.Ranged,
	}
}
