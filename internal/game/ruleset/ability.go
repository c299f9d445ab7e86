// Package ruleset holds the 5e rules primitives: ability arithmetic,
// proficiency-gated checks and saves, attack and damage rolls, damage-type
// mitigation, cover, and contested checks.
package ruleset

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Ability names one of the six core ability scores.
type Ability int

const (
	Str Ability = iota
	Dex
	Con
	Int
	Wis
	Cha
)

var abilityNames = [...]string{"Str", "Dex", "Con", "Int", "Wis", "Cha"}

// AllAbilities returns the six abilities in sheet order.
func AllAbilities() []Ability {
	return []Ability{Str, Dex, Con, Int, Wis, Cha}
}

// String returns the three-letter label, e.g. "Con".
func (a Ability) String() string {
	if a < Str || a > Cha {
		return "Unknown"
	}
	return abilityNames[a]
}

// ParseAbility accepts the short ("str") or long ("strength") name, case-insensitively.
func ParseAbility(s string) (Ability, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "str", "strength":
		return Str, nil
	case "dex", "dexterity":
		return Dex, nil
	case "con", "constitution":
		return Con, nil
	case "int", "intelligence":
		return Int, nil
	case "wis", "wisdom":
		return Wis, nil
	case "cha", "charisma":
		return Cha, nil
	default:
		return 0, fmt.Errorf("ruleset: unknown ability %q", s)
	}
}

// UnmarshalYAML decodes an ability name.
func (a *Ability) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseAbility(value.Value)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// MarshalYAML encodes the lower-case short name.
func (a Ability) MarshalYAML() (interface{}, error) {
	return strings.ToLower(a.String()), nil
}

// AbilityMod computes the standard ability modifier using floor division: floor((score - 10) / 2).
// Postcondition: Returns floor((score - 10) / 2), so 8 → -1 and 9 → -1.
func AbilityMod(score int) int {
	diff := score - 10
	if diff < 0 {
		return (diff - 1) / 2
	}
	return diff / 2
}

// AbilityScores holds the six core ability scores.
type AbilityScores struct {
	Strength     int `yaml:"str" json:"str"`
	Dexterity    int `yaml:"dex" json:"dex"`
	Constitution int `yaml:"con" json:"con"`
	Intelligence int `yaml:"int" json:"int"`
	Wisdom       int `yaml:"wis" json:"wis"`
	Charisma     int `yaml:"cha" json:"cha"`
}

// Score returns the raw score for a.
func (s AbilityScores) Score(a Ability) int {
	switch a {
	case Str:
		return s.Strength
	case Dex:
		return s.Dexterity
	case Con:
		return s.Constitution
	case Int:
		return s.Intelligence
	case Wis:
		return s.Wisdom
	case Cha:
		return s.Charisma
	default:
		return 10
	}
}

// Mod returns AbilityMod(s.Score(a)).
func (s AbilityScores) Mod(a Ability) int {
	return AbilityMod(s.Score(a))
}
