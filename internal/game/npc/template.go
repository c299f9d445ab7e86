// Package npc provides target templates and the encounter definitions that
// group them.
package npc

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/solo5e/internal/game/condition"
	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

// ErrNoAttacks is returned when a target that must fight has no attacks.
var ErrNoAttacks = errors.New("attacks must not be empty")

// Attack is one named attack a target can make.
type Attack struct {
	Name       string              `yaml:"name"`
	ToHit      int                 `yaml:"to_hit"`
	Dice       dice.DamageDice     `yaml:"dice"`
	DamageType *ruleset.DamageType `yaml:"damage_type"`
	Ranged     bool                `yaml:"ranged"`
	// ApplyCondition is inflicted on a hit, subject to its resisting save.
	ApplyCondition *condition.Spec `yaml:"apply_condition"`
}

// ResolvedDamageType returns the attack's damage type, defaulting to Slashing.
func (a Attack) ResolvedDamageType() ruleset.DamageType {
	if a.DamageType != nil {
		return *a.DamageType
	}
	return ruleset.Slashing
}

// Style returns Ranged or Melee.
func (a Attack) Style() condition.Style {
	if a.Ranged {
		return condition.Ranged
	}
	return condition.Melee
}

// Template defines a target loaded from YAML or JSON.
type Template struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	AC     int    `yaml:"ac"`
	HP     int    `yaml:"hp"`
	DexMod int    `yaml:"dex_mod"`
	// Abilities, when present, supersedes DexMod for every modifier.
	Abilities       *ruleset.AbilityScores `yaml:"abilities"`
	Attacks         []Attack               `yaml:"attacks"`
	Resistances     []ruleset.DamageType   `yaml:"resistances"`
	Vulnerabilities []ruleset.DamageType   `yaml:"vulnerabilities"`
	Immunities      []ruleset.DamageType   `yaml:"immunities"`
	Conditions      []condition.Kind       `yaml:"conditions"`
	Cover           ruleset.Cover          `yaml:"cover"`
}

var titleCaser = cases.Title(language.English)

// DisplayName returns Name, or a title-cased rendering of ID when Name is
// empty ("poison_goblin" becomes "Poison Goblin").
func (t *Template) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return titleCaser.String(strings.ReplaceAll(t.ID, "_", " "))
}

func (t *Template) label() string {
	if t.ID != "" {
		return t.ID
	}
	return t.Name
}

// AbilityMod returns the modifier used for the target's saves and checks.
//
// Postcondition: Abilities.Mod(ab) when Abilities is set; otherwise DexMod
// for Dex and 0 for every other ability.
func (t *Template) AbilityMod(ab ruleset.Ability) int {
	if t.Abilities != nil {
		return t.Abilities.Mod(ab)
	}
	if ab == ruleset.Dex {
		return t.DexMod
	}
	return 0
}

// StrMod returns the Strength modifier used in contests.
func (t *Template) StrMod() int { return t.AbilityMod(ruleset.Str) }

// DexterityMod returns the initiative modifier.
func (t *Template) DexterityMod() int { return t.AbilityMod(ruleset.Dex) }

// Mitigation returns the resistance, vulnerability and immunity sets.
func (t *Template) Mitigation() (resist, vuln, immune ruleset.DamageTypes) {
	return ruleset.NewDamageTypes(t.Resistances...),
		ruleset.NewDamageTypes(t.Vulnerabilities...),
		ruleset.NewDamageTypes(t.Immunities...)
}

// PrimaryAttack returns the attack the target uses every turn.
//
// Postcondition: err wraps ErrNoAttacks iff Attacks is empty.
func (t *Template) PrimaryAttack() (Attack, error) {
	if len(t.Attacks) == 0 {
		return Attack{}, fmt.Errorf("npc target %q: %w", t.label(), ErrNoAttacks)
	}
	return t.Attacks[0], nil
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff the target has an id or name, HP >= 1,
// AC >= 0 and every attack is well formed; otherwise all violations are
// joined into one error naming the target.
func (t *Template) Validate() error {
	var errs []error
	if t.ID == "" && t.Name == "" {
		errs = append(errs, errors.New("id or name must not be empty"))
	}
	if t.HP < 1 {
		errs = append(errs, fmt.Errorf("hp must be >= 1, got %d", t.HP))
	}
	if t.AC < 0 {
		errs = append(errs, fmt.Errorf("ac must be >= 0, got %d", t.AC))
	}
	for i, a := range t.Attacks {
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("attacks[%d]: name must not be empty", i))
		}
		if err := a.Dice.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("attacks[%d] %q: %w", i, a.Name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("npc target %q: %w", t.label(), errors.Join(errs...))
	}
	return nil
}

// LoadTemplateFromBytes parses a single target from raw YAML or JSON bytes.
//
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing target: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}
