package npc

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNoEnemies is returned for an encounter without enemies.
var ErrNoEnemies = errors.New("encounter must contain at least one enemy")

// Focus names the strategy the actor uses to pick among living enemies.
type Focus string

const (
	// FocusFirst targets the living enemy with the lowest index.
	FocusFirst Focus = "first"
	// FocusLowest targets the living enemy with the least current HP.
	FocusLowest Focus = "lowest"
	// FocusRandom picks uniformly with the simulation's dice.
	FocusRandom Focus = "random"
	// FocusScript defers to the encounter's Lua focus script.
	FocusScript Focus = "script"
)

// ParseFocus matches a strategy name case-insensitively. Empty means first.
func ParseFocus(s string) (Focus, error) {
	switch f := Focus(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FocusFirst, nil
	case FocusFirst, FocusLowest, FocusRandom, FocusScript:
		return f, nil
	}
	return "", fmt.Errorf("npc: unknown focus %q (want first|lowest|random|script)", s)
}

// Encounter groups the enemies the actor faces at once.
type Encounter struct {
	ID      string      `yaml:"id"`
	Name    string      `yaml:"name"`
	Focus   string      `yaml:"focus"`
	Enemies []*Template `yaml:"enemies"`
	// FocusScript is Lua source defining select_target(enemies).
	FocusScript string `yaml:"focus_script"`
}

// ResolveFocus picks the strategy for a run. A flag left at the default
// FocusFirst yields to a strategy named by the encounter file.
func (e *Encounter) ResolveFocus(flag Focus) (Focus, error) {
	if flag != FocusFirst && flag != "" {
		return flag, nil
	}
	return ParseFocus(e.Focus)
}

// Validate checks the encounter and every enemy in it.
//
// Postcondition: Returns an error wrapping ErrNoEnemies iff Enemies is empty.
func (e *Encounter) Validate() error {
	label := e.ID
	if label == "" {
		label = e.Name
	}
	if len(e.Enemies) == 0 {
		return fmt.Errorf("npc encounter %q: %w", label, ErrNoEnemies)
	}
	var errs []error
	for i, enemy := range e.Enemies {
		if enemy == nil {
			errs = append(errs, fmt.Errorf("enemies[%d] is empty", i))
			continue
		}
		if err := enemy.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("enemies[%d]: %w", i, err))
		}
	}
	f, err := ParseFocus(e.Focus)
	if err != nil {
		errs = append(errs, err)
	} else if f == FocusScript && strings.TrimSpace(e.FocusScript) == "" {
		errs = append(errs, errors.New("focus script requires focus_script source"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("npc encounter %q: %w", label, errors.Join(errs...))
	}
	return nil
}

// LoadEncounterFromBytes parses an encounter from raw YAML or JSON bytes.
//
// Postcondition: Returns a validated *Encounter, or an error.
func LoadEncounterFromBytes(data []byte) (*Encounter, error) {
	var enc Encounter
	if err := yaml.Unmarshal(data, &enc); err != nil {
		return nil, fmt.Errorf("parsing encounter: %w", err)
	}
	if err := enc.Validate(); err != nil {
		return nil, err
	}
	return &enc, nil
}
