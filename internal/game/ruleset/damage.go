package ruleset

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
)

// DamageType is the closed set of 5e damage types.
type DamageType int

const (
	Bludgeoning DamageType = iota
	Piercing
	Slashing
	Fire
	Cold
	Lightning
	Acid
	Poison
	Psychic
	Radiant
	Necrotic
	Thunder
	Force
)

var damageTypeNames = [...]string{
	"Bludgeoning", "Piercing", "Slashing", "Fire", "Cold", "Lightning", "Acid",
	"Poison", "Psychic", "Radiant", "Necrotic", "Thunder", "Force",
}

// String returns the capitalised name, e.g. "Slashing".
func (t DamageType) String() string {
	if t < Bludgeoning || t > Force {
		return "Unknown"
	}
	return damageTypeNames[t]
}

// ParseDamageType maps a case-insensitive name to a DamageType.
func ParseDamageType(s string) (DamageType, error) {
	norm := strings.TrimSpace(s)
	for i, name := range damageTypeNames {
		if strings.EqualFold(name, norm) {
			return DamageType(i), nil
		}
	}
	return 0, fmt.Errorf("ruleset: unknown damage type %q", s)
}

// UnmarshalYAML decodes a damage type name.
func (t *DamageType) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseDamageType(value.Value)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalYAML encodes the lower-case name.
func (t DamageType) MarshalYAML() (interface{}, error) {
	return strings.ToLower(t.String()), nil
}

// DamageTypes is a set of damage types stored as a bitmask.
type DamageTypes uint16

// NewDamageTypes returns the set holding types.
func NewDamageTypes(types ...DamageType) DamageTypes {
	var s DamageTypes
	for _, t := range types {
		s |= 1 << t
	}
	return s
}

// ParseDamageTypes builds a set from case-insensitive names.
//
// Postcondition: Returns an error naming the first unknown entry.
func ParseDamageTypes(names []string) (DamageTypes, error) {
	var s DamageTypes
	for _, n := range names {
		t, err := ParseDamageType(n)
		if err != nil {
			return 0, err
		}
		s |= 1 << t
	}
	return s, nil
}

// Has reports whether t is in the set.
func (s DamageTypes) Has(t DamageType) bool {
	return s&(1<<t) != 0
}

// DamageRoll records a damage roll before type mitigation.
type DamageRoll struct {
	Dice     dice.DamageDice // base pool, before crit doubling
	Faces    []int
	Modifier int
	Crit     bool
	Total    int
}

// Damage rolls pool (count doubled on crit) and adds modifier once.
//
// Postcondition: Total == sum(Faces) + Modifier. Total is not clamped and may
// be negative for a large negative modifier.
func Damage(r *dice.Roller, pool dice.DamageDice, modifier int, crit bool) DamageRoll {
	faces := r.RollDamage(pool, crit)
	total := modifier
	for _, f := range faces {
		total += f
	}
	return DamageRoll{Dice: pool, Faces: faces, Modifier: modifier, Crit: crit, Total: total}
}

// AdjustDamageByType applies immunity, resistance and vulnerability to base.
//
// Postcondition: immune → 0; resistant and vulnerable → base; resistant →
// floor(base/2); vulnerable → base*2; otherwise base.
func AdjustDamageByType(base int, t DamageType, resist, vuln, immune DamageTypes) int {
	if immune.Has(t) {
		return 0
	}
	r, v := resist.Has(t), vuln.Has(t)
	switch {
	case r && v:
		return base
	case r:
		return floorDiv(base, 2)
	case v:
		return base * 2
	default:
		return base
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
