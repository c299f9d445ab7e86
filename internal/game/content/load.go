package content

import (
	"fmt"

	"github.com/cory-johannsen/solo5e/internal/game/character"
	"github.com/cory-johannsen/solo5e/internal/game/inventory"
	"github.com/cory-johannsen/solo5e/internal/game/npc"
)

// LoadTarget resolves and parses a target template.
func LoadTarget(p, id string) (*npc.Template, error) {
	data, err := Resolve(KindTarget, p, id)
	if err != nil {
		return nil, err
	}
	tmpl, err := npc.LoadTemplateFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading target %s: %w", describe(p, id), err)
	}
	if tmpl.ID == "" {
		tmpl.ID = id
	}
	return tmpl, nil
}

// LoadEncounter resolves and parses an encounter.
func LoadEncounter(p, id string) (*npc.Encounter, error) {
	data, err := Resolve(KindEncounter, p, id)
	if err != nil {
		return nil, err
	}
	enc, err := npc.LoadEncounterFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("loading encounter %s: %w", describe(p, id), err)
	}
	return enc, nil
}

// LoadWeapons resolves a weapon list and indexes it. Without a path or id it
// returns an empty registry so lookups fall through to the presets.
func LoadWeapons(p, id string) (*inventory.Registry, error) {
	if p == "" && id == "" {
		return inventory.NewRegistry(), nil
	}
	data, err := Resolve(KindWeapons, p, id)
	if err != nil {
		return nil, err
	}
	ws, err := inventory.LoadWeapons(data)
	if err != nil {
		return nil, fmt.Errorf("loading weapons %s: %w", describe(p, id), err)
	}
	reg, err := inventory.NewRegistryFrom(ws)
	if err != nil {
		return nil, fmt.Errorf("loading weapons %s: %w", describe(p, id), err)
	}
	return reg, nil
}

// LoadCharacter reads a character sheet from p, or returns the sample
// fighter when p is empty.
func LoadCharacter(p string) (*character.Character, error) {
	if p == "" {
		return character.SampleFighter(), nil
	}
	data, err := ReadText(p)
	if err != nil {
		return nil, fmt.Errorf("reading character %s: %w", p, err)
	}
	c, err := character.Load(data)
	if err != nil {
		return nil, fmt.Errorf("loading character %s: %w", p, err)
	}
	return c, nil
}

func describe(p, id string) string {
	if p != "" {
		return fmt.Sprintf("%q", p)
	}
	return fmt.Sprintf("id %q", id)
}
