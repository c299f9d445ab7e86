// Package character defines the actor sheet, the sample fighter and the
// sheet's YAML/JSON form.
package character

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

// Character is a named actor sheet.
//
// The embedded Actor is read-only once a simulation starts.
type Character struct {
	ruleset.Actor `yaml:",inline"`

	Name string `yaml:"name,omitempty"`
}

// Validate checks score ranges and the proficiency bonus.
//
// Precondition: c must not be nil.
// Postcondition: Returns nil iff every score is in 1..30 and the
// proficiency bonus is in 0..10.
func (c *Character) Validate() error {
	var errs []error
	for _, ab := range ruleset.AllAbilities() {
		if s := c.Abilities.Score(ab); s < 1 || s > 30 {
			errs = append(errs, fmt.Errorf("%s score %d out of range 1..30", ab, s))
		}
	}
	if c.ProficiencyBonus < 0 || c.ProficiencyBonus > 10 {
		errs = append(errs, fmt.Errorf("proficiency_bonus %d out of range 0..10", c.ProficiencyBonus))
	}
	if len(errs) > 0 {
		return fmt.Errorf("character %q: %w", c.Name, errors.Join(errs...))
	}
	return nil
}

// Load parses a character sheet from YAML or JSON and validates it.
func Load(data []byte) (*Character, error) {
	var c Character
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing character: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Dump renders c as YAML.
func Dump(c *Character) ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encoding character %q: %w", c.Name, err)
	}
	return out, nil
}
