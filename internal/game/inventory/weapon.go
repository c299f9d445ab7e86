// Package inventory provides weapon definitions, the built-in presets and
// the lookup registry used to arm the actor.
package inventory

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

// Weapon defines the static properties of a weapon loaded from YAML or JSON.
type Weapon struct {
	ID   string          `yaml:"id,omitempty"`
	Name string          `yaml:"name"`
	Dice dice.DamageDice `yaml:"dice"`
	// Versatile is the two-handed damage pool; nil when the weapon has none.
	Versatile *dice.DamageDice `yaml:"versatile,omitempty"`
	Finesse   bool             `yaml:"finesse,omitempty"`
	Ranged    bool             `yaml:"ranged,omitempty"`
	// DamageType is nil when the file leaves it to the preset table.
	DamageType *ruleset.DamageType `yaml:"damage_type,omitempty"`
}

// Key returns the lookup key: the lower-cased ID, or Name when ID is empty.
func (w *Weapon) Key() string {
	if w.ID != "" {
		return strings.ToLower(w.ID)
	}
	return strings.ToLower(w.Name)
}

// Pool returns the damage dice for the grip: the versatile pool when
// twoHanded is set and the weapon has one, else the base pool.
func (w *Weapon) Pool(twoHanded bool) dice.DamageDice {
	if twoHanded && w.Versatile != nil {
		return *w.Versatile
	}
	return w.Dice
}

// ResolvedDamageType returns the explicit damage type, else the preset type
// for the weapon's name, else Slashing.
func (w *Weapon) ResolvedDamageType() ruleset.DamageType {
	if w.DamageType != nil {
		return *w.DamageType
	}
	if t, ok := PresetDamageType(w.Name); ok {
		return t
	}
	return ruleset.Slashing
}

// Validate checks that the Weapon satisfies its invariants.
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *Weapon) Validate() error {
	var errs []error
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if err := w.Dice.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("dice: %w", err))
	}
	if w.Versatile != nil {
		if err := w.Versatile.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("versatile: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("inventory weapon %q: %w", w.Key(), errors.Join(errs...))
	}
	return nil
}

// LoadWeapons parses data as a list of weapons and validates each one.
// JSON content decodes through the same path because JSON is valid YAML.
//
// Postcondition: returns every weapon in file order, or the first error.
func LoadWeapons(data []byte) ([]*Weapon, error) {
	var weapons []*Weapon
	if err := yaml.Unmarshal(data, &weapons); err != nil {
		return nil, fmt.Errorf("inventory: cannot parse weapons: %w", err)
	}
	for i, w := range weapons {
		if w == nil {
			return nil, fmt.Errorf("inventory: weapon entry %d is empty", i)
		}
		if err := w.Validate(); err != nil {
			return nil, err
		}
	}
	return weapons, nil
}
