package inventory

import (
	"strings"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

// PresetDamageType returns the damage type the preset table assigns to a
// weapon name. ok is false for names outside the table.
func PresetDamageType(name string) (t ruleset.DamageType, ok bool) {
	switch strings.ToLower(name) {
	case "longsword", "greatsword":
		return ruleset.Slashing, true
	case "shortsword", "dagger", "longbow":
		return ruleset.Piercing, true
	}
	return 0, false
}

func pool(count, sides int) dice.DamageDice {
	return dice.DamageDice{Count: count, Sides: sides}
}

// Presets returns fresh copies of the built-in weapons, in table order.
// The first entry is the longsword.
func Presets() []*Weapon {
	versatile := pool(1, 10)
	return []*Weapon{
		{Name: "longsword", Dice: pool(1, 8), Versatile: &versatile},
		{Name: "shortsword", Dice: pool(1, 6), Finesse: true},
		{Name: "dagger", Dice: pool(1, 4), Finesse: true},
		{Name: "greatsword", Dice: pool(2, 6)},
		{Name: "longbow", Dice: pool(1, 8), Ranged: true},
	}
}

// NewPresetRegistry returns a Registry holding every preset.
//
// Precondition: preset keys are unique.
// Postcondition: Weapon(name) succeeds for each name in Presets.
func NewPresetRegistry() *Registry {
	r := NewRegistry()
	for _, w := range Presets() {
		if err := r.RegisterWeapon(w); err != nil {
			panic("inventory: NewPresetRegistry precondition violated: " + err.Error())
		}
	}
	return r
}
