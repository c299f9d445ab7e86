// Package main provides the solo5e command-line harness: dice and check
// demos, actor sheets, single attacks, one-sided attack runs, duels, Monte
// Carlo batches and multi-enemy encounters.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/cory-johannsen/solo5e/internal/config"
	"github.com/cory-johannsen/solo5e/internal/observability"
)

// app carries the per-invocation configuration and logger shared by every
// subcommand.
type app struct {
	configPath string
	cfg        config.Config
	logger     *zap.Logger
}

// flagKeys maps command-line flags onto configuration keys. A flag only
// overrides the key when it is set explicitly.
var flagKeys = map[string]string{
	"log-level":         "logging.level",
	"log-format":        "logging.format",
	"seed":              "simulation.seed",
	"advantage":         "simulation.advantage",
	"two-handed":        "simulation.two_handed",
	"auto-potion":       "simulation.auto_potion",
	"short-rest":        "simulation.short_rest",
	"actor-hp":          "actor.hp",
	"actor-ac":          "actor.ac",
	"focus":             "encounter.focus",
	"samples":           "montecarlo.samples",
	"workers":           "montecarlo.workers",
	"instruction-limit": "scripting.instruction_limit",
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:               "solo5e",
		Short:             "Solo 5e combat simulator",
		Long:              `solo5e runs seeded, reproducible fifth-edition checks, attacks, duels and encounters and prints their transcripts.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML configuration file")
	root.PersistentFlags().String("log-level", "info", "diagnostic log level: debug|info|warn|error")
	root.PersistentFlags().String("log-format", "console", "diagnostic log format: json|console")

	root.AddCommand(
		newRollCmd(a),
		newCheckCmd(a),
		newActorCmd(a),
		newAttackCmd(a),
		newAttackVsCmd(a),
		newDuelCmd(a),
		newDuelManyCmd(a),
		newEncounterCmd(a),
	)
	return root
}

// setup loads configuration, folds explicit flags into it and builds the
// run-scoped logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	v, err := config.New(a.configPath)
	if err != nil {
		return err
	}
	for name, key := range flagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("binding --%s: %w", name, err)
			}
		}
	}
	if f := cmd.Flags().Lookup("max-rounds"); f != nil {
		key := "duel.max_rounds"
		if cmd.Name() == "encounter" {
			key = "encounter.max_rounds"
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --max-rounds: %w", err)
		}
	}
	if changed(cmd.Flags(), "no-prof") {
		v.Set("simulation.proficient", false)
	}

	cfg, err := config.LoadFromViper(v)
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("command", cmd.CommandPath()),
	)
	return nil
}

func changed(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}

func main() {
	// SIGINT or SIGTERM cancels a running Monte Carlo batch.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
