package combat

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/solo5e/internal/game/condition"
	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/eventlog"
	"github.com/cory-johannsen/solo5e/internal/game/npc"
	"github.com/cory-johannsen/solo5e/internal/scripting"
)

// EncounterConfig is one actor-versus-many encounter.
type EncounterConfig struct {
	Seed      uint64
	Side      Side
	Encounter *npc.Encounter
	// Focus is the requested strategy. FocusFirst or empty defers to the
	// encounter file's own focus.
	Focus            npc.Focus
	EnemyConditions  []condition.Kind
	MaxRounds        int
	Recovery         Recovery
	InstructionLimit int
	// Source, when set, replaces the seeded stream.
	Source dice.Source
}

// Validate checks cfg and fills defaults. It rolls no dice.
func (cfg *EncounterConfig) Validate() error {
	if cfg.Encounter == nil {
		return fmt.Errorf("combat: %w", ErrNoEnemies)
	}
	if err := cfg.Encounter.Validate(); err != nil {
		return err
	}
	for i, t := range cfg.Encounter.Enemies {
		if _, err := t.PrimaryAttack(); err != nil {
			return fmt.Errorf("enemies[%d]: %w", i, err)
		}
	}
	if err := cfg.Side.normalize(); err != nil {
		return err
	}
	focus, err := cfg.Encounter.ResolveFocus(cfg.Focus)
	if err != nil {
		return err
	}
	if focus == npc.FocusScript && cfg.Encounter.FocusScript == "" {
		return errors.New("combat: focus script requires the encounter's focus_script source")
	}
	cfg.Focus = focus
	if cfg.MaxRounds == 0 {
		cfg.MaxRounds = DefaultEncounterMaxRounds
	}
	if cfg.MaxRounds < 1 {
		return fmt.Errorf("combat: max rounds must be >= 1, got %d", cfg.MaxRounds)
	}
	cfg.Recovery.normalize()
	return nil
}

// EncounterResult is the terminal snapshot of an encounter.
type EncounterResult struct {
	Survived         bool
	Winner           Winner
	Rounds           int
	ActorHP          int
	EnemyHP          []int
	RemainingEnemies int
	Focus            npc.Focus
	Events           []eventlog.Event
}

// Lines renders the transcript.
func (r *EncounterResult) Lines() []string {
	return eventlog.Render(r.Events)
}

// RunEncounter runs one encounter to completion. Every participant rolls
// initiative once; the sorted order is reused every round.
//
// Precondition: logger must be non-nil.
// Postcondition: on error no die has been rolled.
func RunEncounter(cfg EncounterConfig, logger *zap.Logger) (*EncounterResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	enemies := make([]*Combatant, len(cfg.Encounter.Enemies))
	for i, t := range cfg.Encounter.Enemies {
		e, err := NewEnemy(t, i)
		if err != nil {
			return nil, err
		}
		enemies[i] = e
	}
	actor := NewActor(cfg.Side.Actor, cfg.Side.Loadout.Profile(cfg.Side.Actor), cfg.Side.HP, cfg.Side.AC, cfg.Side.Mode)

	r := newRoller(cfg.Seed, cfg.Source, logger)
	var vm *scripting.FocusVM
	if cfg.Focus == npc.FocusScript {
		var err error
		vm, err = scripting.NewFocusVM(cfg.Encounter.FocusScript, cfg.InstructionLimit, r, logger)
		if err != nil {
			return nil, fmt.Errorf("combat: encounter %q: %w", cfg.Encounter.Name, err)
		}
		defer vm.Close()
	}

	log := eventlog.New(logger)
	b := &battle{
		r:         r,
		sink:      log,
		actor:     actor,
		enemies:   enemies,
		targeter:  NewTargeter(cfg.Focus, r, vm, logger),
		recovery:  cfg.Recovery,
		encounter: true,
	}

	name := cfg.Encounter.Name
	if name == "" {
		name = "Encounter"
	}
	eventlog.Emitf(log, eventlog.TagEncounter, "", "%s vs %d enemies (focus: %s)", name, len(enemies), cfg.Focus)
	b.applyStartingConditions(actor, cfg.Side.Conditions)
	for i, e := range enemies {
		b.applyStartingConditions(e, cfg.Encounter.Enemies[i].Conditions)
		b.applyStartingConditions(e, cfg.EnemyConditions)
	}

	initiative := RollInitiative(r, append([]*Combatant{actor}, enemies...))
	eventlog.Emitf(log, eventlog.TagInit, "", "%s", describeInitiative(initiative))

	rounds := b.run(turnOrder(initiative), cfg.MaxRounds)
	winner := decide(actor, enemies)
	survived := actor.Standing() && !actor.Defeated()
	b.shortRest()

	remaining := len(standing(enemies))
	eventlog.Emitf(log, eventlog.TagEncounterEnd, "", "survived=%t remaining_enemies=%d rounds=%d",
		survived, remaining, rounds)

	hp := make([]int, len(enemies))
	for i, e := range enemies {
		hp[i] = e.Health.HP
	}
	logger.Debug("encounter finished",
		zap.Uint64("seed", cfg.Seed),
		zap.String("winner", string(winner)),
		zap.Int("rounds", rounds),
		zap.Int("remaining_enemies", remaining),
	)
	return &EncounterResult{
		Survived:         survived,
		Winner:           winner,
		Rounds:           rounds,
		ActorHP:          actor.Health.HP,
		EnemyHP:          hp,
		RemainingEnemies: remaining,
		Focus:            cfg.Focus,
		Events:           log.Events(),
	}, nil
}
