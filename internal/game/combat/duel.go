package combat

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/solo5e/internal/game/condition"
	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/eventlog"
	"github.com/cory-johannsen/solo5e/internal/game/inventory"
	"github.com/cory-johannsen/solo5e/internal/game/npc"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

// Defaults applied when a config field is left at its zero value.
const (
	DefaultActorHP            = 12
	DefaultActorAC            = 16
	DefaultDuelMaxRounds      = 30
	DefaultEncounterMaxRounds = 120
	DefaultPotionHeal         = 7
	DefaultShortRestHeal      = 5
)

// Side is the actor's half of a simulation config.
type Side struct {
	Actor      ruleset.Actor
	Loadout    inventory.Loadout
	HP         int
	AC         int
	Mode       dice.Mode
	Conditions []condition.Kind
}

func (s *Side) normalize() error {
	if s.Loadout.Weapon == nil {
		return errors.New("combat: actor loadout has no weapon")
	}
	if err := s.Loadout.Weapon.Validate(); err != nil {
		return fmt.Errorf("combat: %w", err)
	}
	if s.Loadout.DiceOverride != nil {
		if err := s.Loadout.DiceOverride.Validate(); err != nil {
			return fmt.Errorf("combat: dice override: %w", err)
		}
	}
	if s.HP == 0 {
		s.HP = DefaultActorHP
	}
	if s.HP < 1 {
		return fmt.Errorf("combat: actor hp must be >= 1, got %d", s.HP)
	}
	if s.AC == 0 {
		s.AC = DefaultActorAC
	}
	return nil
}

func (r *Recovery) normalize() {
	if r.PotionHeal == 0 {
		r.PotionHeal = DefaultPotionHeal
	}
	if r.ShortRestHeal == 0 {
		r.ShortRestHeal = DefaultShortRestHeal
	}
}

// DuelConfig is one actor-versus-target duel.
type DuelConfig struct {
	Seed            uint64
	Side            Side
	Target          *npc.Template
	EnemyConditions []condition.Kind
	MaxRounds       int
	Recovery        Recovery
	// Source, when set, replaces the seeded stream. DuelMany ignores it.
	Source dice.Source
}

func newRoller(seed uint64, src dice.Source, logger *zap.Logger) *dice.Roller {
	if src != nil {
		return dice.NewRoller(src, logger)
	}
	return dice.NewSeededRoller(seed, logger)
}

// Validate checks cfg and fills defaults. It rolls no dice.
//
// Postcondition: on success MaxRounds, Side.HP and Side.AC are positive.
func (cfg *DuelConfig) Validate() error {
	if cfg.Target == nil {
		return errors.New("combat: duel has no target")
	}
	if err := cfg.Target.Validate(); err != nil {
		return err
	}
	if _, err := cfg.Target.PrimaryAttack(); err != nil {
		return err
	}
	if err := cfg.Side.normalize(); err != nil {
		return err
	}
	if cfg.MaxRounds == 0 {
		cfg.MaxRounds = DefaultDuelMaxRounds
	}
	if cfg.MaxRounds < 1 {
		return fmt.Errorf("combat: max rounds must be >= 1, got %d", cfg.MaxRounds)
	}
	cfg.Recovery.normalize()
	return nil
}

// DuelResult is the terminal snapshot of a duel.
type DuelResult struct {
	Winner            Winner
	Rounds            int
	ActorHP           int
	EnemyHP           int
	RoundLimitReached bool
	Events            []eventlog.Event
}

// Lines renders the transcript.
func (r *DuelResult) Lines() []string {
	return eventlog.Render(r.Events)
}

// Duel runs one duel to completion. The same config always produces the
// same result and transcript.
//
// Precondition: logger must be non-nil.
// Postcondition: on error no die has been rolled.
func Duel(cfg DuelConfig, logger *zap.Logger) (*DuelResult, error) {
	log := eventlog.New(logger)
	res, err := runDuel(cfg, log, logger)
	if err != nil {
		return nil, err
	}
	res.Events = log.Events()
	return res, nil
}

func runDuel(cfg DuelConfig, sink eventlog.Sink, logger *zap.Logger) (*DuelResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	enemy, err := NewEnemy(cfg.Target, 0)
	if err != nil {
		return nil, err
	}
	actor := NewActor(cfg.Side.Actor, cfg.Side.Loadout.Profile(cfg.Side.Actor), cfg.Side.HP, cfg.Side.AC, cfg.Side.Mode)

	r := newRoller(cfg.Seed, cfg.Source, logger)
	b := &battle{
		r:        r,
		sink:     sink,
		actor:    actor,
		enemies:  []*Combatant{enemy},
		targeter: FirstTargeter,
		recovery: cfg.Recovery,
	}

	b.applyStartingConditions(actor, cfg.Side.Conditions)
	b.applyStartingConditions(enemy, cfg.Target.Conditions)
	b.applyStartingConditions(enemy, cfg.EnemyConditions)

	actorInit := r.D20(dice.Normal).Kept + actor.DexMod
	enemyInit := r.D20(dice.Normal).Kept + enemy.DexMod
	order := []*Combatant{actor, enemy}
	if actorInit < enemyInit {
		order = []*Combatant{enemy, actor}
	}

	eventlog.Emitf(sink, eventlog.TagStart, "", "%s (AC %d, HP %d) vs %s (AC %d, HP %d)",
		actor.Name, actor.AC, actor.Health.MaxHP, enemy.Name, enemy.AC, enemy.Health.MaxHP)
	eventlog.Emitf(sink, eventlog.TagInit, "", "%s %d vs %s %d → %s starts",
		actor.Name, actorInit, enemy.Name, enemyInit, order[0].Name)

	rounds := b.run(order, cfg.MaxRounds)
	winner := decide(actor, b.enemies)
	b.shortRest()

	eventlog.Emitf(sink, eventlog.TagEnd, "", "winner=%s actor_hp=%d enemy_hp=%d rounds=%d",
		winner, actor.Health.HP, enemy.Health.HP, rounds)

	logger.Debug("duel finished",
		zap.Uint64("seed", cfg.Seed),
		zap.String("winner", string(winner)),
		zap.Int("rounds", rounds),
	)
	return &DuelResult{
		Winner:            winner,
		Rounds:            rounds,
		ActorHP:           actor.Health.HP,
		EnemyHP:           enemy.Health.HP,
		RoundLimitReached: winner == WinnerMaxRounds,
	}, nil
}
