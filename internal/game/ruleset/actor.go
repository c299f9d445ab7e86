package ruleset

import "slices"

// Actor is the player-controlled character sheet. It is treated as
// read-only for the duration of a simulation.
type Actor struct {
	Abilities          AbilityScores `yaml:"abilities"`
	ProficiencyBonus   int           `yaml:"proficiency_bonus"`
	SaveProficiencies  []Ability     `yaml:"save_proficiencies"`
	SkillProficiencies []Skill       `yaml:"skill_proficiencies"`
}

// AbilityMod returns the modifier for a.
func (a Actor) AbilityMod(ab Ability) int {
	return a.Abilities.Mod(ab)
}

// ProficientSave reports whether the actor adds proficiency to ab saves.
func (a Actor) ProficientSave(ab Ability) bool {
	return slices.Contains(a.SaveProficiencies, ab)
}

// ProficientSkill reports whether the actor adds proficiency to s checks.
func (a Actor) ProficientSkill(s Skill) bool {
	return slices.Contains(a.SkillProficiencies, s)
}

// SaveMod returns the saving-throw modifier for ab.
//
// Postcondition: AbilityMod(ab) + ProficiencyBonus if proficient, else AbilityMod(ab).
func (a Actor) SaveMod(ab Ability) int {
	return a.AttackBonus(ab, a.ProficientSave(ab))
}

// SkillMod returns the check modifier for s using its governing ability.
func (a Actor) SkillMod(s Skill) int {
	return a.AttackBonus(s.Ability(), a.ProficientSkill(s))
}

// AttackBonus returns the to-hit bonus for an attack keyed on ab.
//
// Postcondition: AbilityMod(ab) + ProficiencyBonus if proficient, else AbilityMod(ab).
func (a Actor) AttackBonus(ab Ability, proficient bool) int {
	mod := a.AbilityMod(ab)
	if proficient {
		mod += a.ProficiencyBonus
	}
	return mod
}

// DamageMod returns the flat damage modifier for an attack keyed on ab.
// It is added once, even on a critical hit.
func (a Actor) DamageMod(ab Ability) int {
	return a.AbilityMod(ab)
}
