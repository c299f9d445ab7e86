package ruleset

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Skill is one of the eighteen 5e skills.
type Skill int

const (
	Acrobatics Skill = iota
	AnimalHandling
	Arcana
	Athletics
	Deception
	History
	Insight
	Intimidation
	Investigation
	Medicine
	Nature
	Perception
	Performance
	Persuasion
	Religion
	SleightOfHand
	Stealth
	Survival
)

type skillInfo struct {
	key     string
	name    string
	ability Ability
}

var skills = [...]skillInfo{
	Acrobatics:     {"acrobatics", "Acrobatics", Dex},
	AnimalHandling: {"animal_handling", "Animal Handling", Wis},
	Arcana:         {"arcana", "Arcana", Int},
	Athletics:      {"athletics", "Athletics", Str},
	Deception:      {"deception", "Deception", Cha},
	History:        {"history", "History", Int},
	Insight:        {"insight", "Insight", Wis},
	Intimidation:   {"intimidation", "Intimidation", Cha},
	Investigation:  {"investigation", "Investigation", Int},
	Medicine:       {"medicine", "Medicine", Wis},
	Nature:         {"nature", "Nature", Int},
	Perception:     {"perception", "Perception", Wis},
	Performance:    {"performance", "Performance", Cha},
	Persuasion:     {"persuasion", "Persuasion", Cha},
	Religion:       {"religion", "Religion", Int},
	SleightOfHand:  {"sleight_of_hand", "Sleight of Hand", Dex},
	Stealth:        {"stealth", "Stealth", Dex},
	Survival:       {"survival", "Survival", Wis},
}

// String returns the display name.
func (s Skill) String() string {
	if s < Acrobatics || s > Survival {
		return "Unknown"
	}
	return skills[s].name
}

// Ability returns the governing ability for the skill.
func (s Skill) Ability() Ability {
	return skills[s].ability
}

// ParseSkill matches a skill by key ("sleight_of_hand") or display name, case-insensitively.
func ParseSkill(in string) (Skill, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(in)), " ", "_")
	for i, info := range skills {
		if info.key == norm {
			return Skill(i), nil
		}
	}
	return 0, fmt.Errorf("ruleset: unknown skill %q", in)
}

// UnmarshalYAML decodes a skill name.
func (s *Skill) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := ParseSkill(value.Value)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// MarshalYAML encodes the skill key.
func (s Skill) MarshalYAML() (interface{}, error) {
	return skills[s].key, nil
}
