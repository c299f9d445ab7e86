package character

import "github.com/cory-johannsen/solo5e/internal/game/ruleset"

// SampleFighter returns the built-in level 1 fighter: STR 16, DEX 14,
// CON 14, INT 10, WIS 12, CHA 8, proficiency +2, STR and CON saves,
// Athletics and Perception.
//
// Postcondition: each call returns an independent copy.
func SampleFighter() *Character {
	return &Character{
		Name: "Fighter",
		Actor: ruleset.Actor{
			Abilities: ruleset.AbilityScores{
				Strength: 16, Dexterity: 14, Constitution: 14,
				Intelligence: 10, Wisdom: 12, Charisma: 8,
			},
			ProficiencyBonus:   2,
			SaveProficiencies:  []ruleset.Ability{ruleset.Str, ruleset.Con},
			SkillProficiencies: []ruleset.Skill{ruleset.Athletics, ruleset.Perception},
		},
	}
}
