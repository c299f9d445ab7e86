package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/solo5e/internal/game/character"
	"github.com/cory-johannsen/solo5e/internal/game/content"
	"github.com/cory-johannsen/solo5e/internal/game/dice"
)

func newActorCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "actor",
		Short: "Inspect and exercise actor sheets",
	}
	cmd.AddCommand(newActorDumpCmd(), newActorDemoCmd(a, "demo"), newActorDemoCmd(a, "load"))
	return cmd
}

func newActorDumpCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the sample fighter's sheet as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := character.Dump(character.SampleFighter())
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output path (default: stdout)")
	return cmd
}

// newActorDemoCmd builds "demo" (sample fighter) and "load" (sheet from
// --file). Both run the STR, Athletics and CON demo checks.
func newActorDemoCmd(a *app, use string) *cobra.Command {
	var (
		file string
		dc   int
	)
	cmd := &cobra.Command{
		Use:  use,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if use == "load" && file == "" {
				return fmt.Errorf("actor load requires --file")
			}
			ch, err := content.LoadCharacter(file)
			if err != nil {
				return err
			}
			mode, err := dice.ParseMode(a.cfg.Simulation.Advantage)
			if err != nil {
				return err
			}
			r := dice.NewSeededRoller(a.cfg.Simulation.Seed, a.logger)
			for _, line := range character.DemoChecks(ch, r, mode, dc) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	if use == "load" {
		cmd.Short = "Load an actor sheet and run the demo checks"
		cmd.Flags().StringVar(&file, "file", "", "actor sheet YAML/JSON")
	} else {
		cmd.Short = "Run the demo checks with the sample fighter"
	}
	cmd.Flags().IntVar(&dc, "dc", 13, "difficulty class for every demo check")
	cmd.Flags().Uint64("seed", 42, "RNG seed")
	cmd.Flags().String("advantage", "normal", "roll mode: normal|advantage|adv|disadvantage|dis")
	return cmd
}
