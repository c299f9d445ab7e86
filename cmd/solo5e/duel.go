package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/solo5e/internal/game/combat"
	"github.com/cory-johannsen/solo5e/internal/game/condition"
	"github.com/cory-johannsen/solo5e/internal/game/content"
	"github.com/cory-johannsen/solo5e/internal/game/npc"
)

// duelFlags select the duel target on top of the shared simulation flags.
type duelFlags struct {
	simFlags
	target   string
	targetID string
}

func (d *duelFlags) register(cmd *cobra.Command) {
	d.simFlags.register(cmd.Flags(), combat.DefaultDuelMaxRounds)
	cmd.Flags().StringVar(&d.target, "target", "", "path to a target YAML/JSON file")
	cmd.Flags().StringVar(&d.targetID, "target-id", "poison_goblin", "built-in target id used when --target is missing")
}

func (d *duelFlags) config(a *app) (combat.DuelConfig, error) {
	side, err := d.side(a, d.actorCond)
	if err != nil {
		return combat.DuelConfig{}, err
	}
	enemyConds, err := condition.ParseList(d.enemyCond)
	if err != nil {
		return combat.DuelConfig{}, err
	}
	tmpl, err := content.LoadTarget(d.target, d.targetID)
	if err != nil {
		return combat.DuelConfig{}, err
	}
	return combat.DuelConfig{
		Seed:            a.cfg.Simulation.Seed,
		Side:            side,
		Target:          tmpl,
		EnemyConditions: enemyConds,
		MaxRounds:       a.cfg.Duel.MaxRounds,
		Recovery:        a.recovery(),
	}, nil
}

func newDuelCmd(a *app) *cobra.Command {
	var d duelFlags
	cmd := &cobra.Command{
		Use:   "duel",
		Short: "Run one actor-versus-target duel and print its transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := d.config(a)
			if err != nil {
				return err
			}
			res, err := combat.Duel(cfg, a.logger)
			if err != nil {
				return err
			}
			for _, line := range res.Lines() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			a.logger.Info("duel finished",
				zap.Uint64("seed", cfg.Seed),
				zap.String("winner", string(res.Winner)),
				zap.Int("rounds", res.Rounds),
			)
			return nil
		},
	}
	d.register(cmd)
	return cmd
}

func newDuelManyCmd(a *app) *cobra.Command {
	var d duelFlags
	cmd := &cobra.Command{
		Use:   "duel-many",
		Short: "Run a Monte Carlo batch of duels and print aggregate stats as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := d.config(a)
			if err != nil {
				return err
			}
			mc := a.cfg.MonteCarlo
			stats, err := combat.DuelMany(cmd.Context(), cfg, mc.Samples, mc.Workers, a.logger)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding stats: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	d.register(cmd)
	cmd.Flags().Int("samples", 50, "number of duels")
	cmd.Flags().Int("workers", 4, "parallel workers")
	return cmd
}

func newEncounterCmd(a *app) *cobra.Command {
	var (
		s        simFlags
		path, id string
	)
	cmd := &cobra.Command{
		Use:   "encounter",
		Short: "Run a multi-enemy encounter and print its transcript",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			side, err := s.side(a, s.actorCond)
			if err != nil {
				return err
			}
			enemyConds, err := condition.ParseList(s.enemyCond)
			if err != nil {
				return err
			}
			enc, err := content.LoadEncounter(path, id)
			if err != nil {
				return err
			}
			focus, err := npc.ParseFocus(a.cfg.Encounter.Focus)
			if err != nil {
				return err
			}
			cfg := combat.EncounterConfig{
				Seed:             a.cfg.Simulation.Seed,
				Side:             side,
				Encounter:        enc,
				Focus:            focus,
				EnemyConditions:  enemyConds,
				MaxRounds:        a.cfg.Encounter.MaxRounds,
				Recovery:         a.recovery(),
				InstructionLimit: a.cfg.Scripting.InstructionLimit,
			}
			res, err := combat.RunEncounter(cfg, a.logger)
			if err != nil {
				return err
			}
			for _, line := range res.Lines() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			a.logger.Info("encounter finished",
				zap.Uint64("seed", cfg.Seed),
				zap.Bool("survived", res.Survived),
				zap.String("focus", string(res.Focus)),
				zap.Int("rounds", res.Rounds),
			)
			return nil
		},
	}
	s.register(cmd.Flags(), combat.DefaultEncounterMaxRounds)
	cmd.Flags().StringVar(&path, "encounter", "", "path to an encounter YAML/JSON file")
	cmd.Flags().StringVar(&id, "encounter-id", "goblin_ambush", "built-in encounter id used when --encounter is missing")
	cmd.Flags().String("focus", "first", "target strategy: first|lowest|random|script")
	cmd.Flags().Int("instruction-limit", 100000, "Lua instruction budget per focus call")
	return cmd
}
