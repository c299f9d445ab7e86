package condition

import "github.com/cory-johannsen/solo5e/internal/game/ruleset"

// Duration describes how an applied condition lasts.
type Duration struct {
	// Until, when set, lapses the condition at the bearer's next such boundary.
	Until            Phase `yaml:"until"`
	SaveEndsEachTurn bool  `yaml:"save_ends_each_turn"`
}

// Spec is an on-hit condition carried by an attack.
type Spec struct {
	Kind Kind `yaml:"kind"`
	// Save, when set, is rolled by the target to resist application; it is
	// also the save that ends the condition each turn.
	Save     *ruleset.SavingThrow `yaml:"save"`
	Duration Duration             `yaml:"duration"`
}

// Active builds the record pushed when spec lands.
func (spec Spec) Active() ActiveCondition {
	return ActiveCondition{
		Kind:             spec.Kind,
		SaveEndsEachTurn: spec.Duration.SaveEndsEachTurn,
		EndSave:          spec.Save,
		EndPhase:         spec.Duration.Until,
		PendingOneTurn:   spec.Duration.Until != PhaseNone,
	}
}
