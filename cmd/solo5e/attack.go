package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/solo5e/internal/game/combat"
	"github.com/cory-johannsen/solo5e/internal/game/content"
	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

func newAttackCmd(a *app) *cobra.Command {
	var (
		w  weaponFlags
		ac int
	)
	cmd := &cobra.Command{
		Use:   "attack",
		Short: "Roll one weapon attack and its damage against an AC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ch, l, err := w.resolve(a)
			if err != nil {
				return err
			}
			mode, err := dice.ParseMode(a.cfg.Simulation.Advantage)
			if err != nil {
				return err
			}
			p := l.Profile(ch.Actor)
			r := dice.NewSeededRoller(a.cfg.Simulation.Seed, a.logger)

			atk := ruleset.Attack(r, mode, p.Bonus, ac)
			dmg := ruleset.Damage(r, p.Dice, p.DamageMod, atk.Crit)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "attack: %s [%s] using %s: %s bonus=%s total=%d vs ac=%d => %s\n",
				p.Name, p.Dice, p.Ability, combat.FormatD20Sequence(atk.Rolls, atk.Roll),
				combat.FormatModifier(atk.Bonus), atk.Total, atk.AC, combat.AttackOutcome(atk))
			note := ""
			if atk.Crit {
				note = " (crit doubles dice)"
			}
			fmt.Fprintf(out, "damage: %s %s%s => %d [%s]\n",
				p.Dice, combat.FormatModifier(p.DamageMod), note, dmg.Total, p.DamageType)

			a.logger.Info("attack resolved",
				zap.Uint64("seed", a.cfg.Simulation.Seed),
				zap.String("weapon", p.Name),
				zap.Bool("hit", atk.Hit),
			)
			return nil
		},
	}
	w.register(cmd.Flags())
	cmd.Flags().IntVar(&ac, "ac", 13, "armor class to hit")
	cmd.Flags().Uint64("seed", 42, "RNG seed")
	return cmd
}

func newAttackVsCmd(a *app) *cobra.Command {
	var (
		w        weaponFlags
		target   string
		targetID string
		rounds   int
	)
	cmd := &cobra.Command{
		Use:   "attack-vs",
		Short: "Attack a target for one or more rounds; the target never strikes back",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if rounds < 1 {
				return fmt.Errorf("--rounds must be >= 1, got %d", rounds)
			}
			ch, l, err := w.resolve(a)
			if err != nil {
				return err
			}
			mode, err := dice.ParseMode(a.cfg.Simulation.Advantage)
			if err != nil {
				return err
			}
			tmpl, err := content.LoadTarget(target, targetID)
			if err != nil {
				return err
			}
			p := l.Profile(ch.Actor)
			resist := ruleset.NewDamageTypes(tmpl.Resistances...)
			vuln := ruleset.NewDamageTypes(tmpl.Vulnerabilities...)
			immune := ruleset.NewDamageTypes(tmpl.Immunities...)
			ac := tmpl.AC + tmpl.Cover.ACBonus()
			hp := tmpl.HP
			r := dice.NewSeededRoller(a.cfg.Simulation.Seed, a.logger)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "target: %s (AC %d, HP %d)\n", tmpl.DisplayName(), ac, hp)
			prof := " (proficient)"
			if !l.Proficient {
				prof = " (no prof)"
			}
			fmt.Fprintf(out, "weapon: %s [%s] using %s%s\n", p.Name, p.Dice, p.Ability, prof)

			fought := 0
			for round := 1; round <= rounds && hp > 0; round++ {
				fought = round
				atk := ruleset.Attack(r, mode, p.Bonus, ac)
				if !atk.Hit {
					note := ""
					if atk.Nat1 {
						note = " NAT1"
					}
					fmt.Fprintf(out, "round %d: MISS%s (roll=%d total=%d) -> %d HP left\n",
						round, note, atk.Roll, atk.Total, hp)
					continue
				}
				raw := ruleset.Damage(r, p.Dice, p.DamageMod, atk.Crit)
				dmg := ruleset.AdjustDamageByType(raw.Total, p.DamageType, resist, vuln, immune)
				hp = max(hp-max(dmg, 0), 0)
				note := ""
				if atk.Crit {
					note = " CRIT"
				}
				fmt.Fprintf(out, "round %d: HIT%s (roll=%d total=%d) dmg=%d [%s] -> %d HP left\n",
					round, note, atk.Roll, atk.Total, dmg, p.DamageType, hp)
			}
			if hp == 0 {
				fmt.Fprintf(out, "%s is down.\n", tmpl.DisplayName())
			}

			a.logger.Info("attack-vs finished",
				zap.Uint64("seed", a.cfg.Simulation.Seed),
				zap.String("target", tmpl.DisplayName()),
				zap.Int("rounds", fought),
				zap.Int("target_hp", hp),
			)
			return nil
		},
	}
	w.register(cmd.Flags())
	cmd.Flags().StringVar(&target, "target", "", "path to a target YAML/JSON file")
	cmd.Flags().StringVar(&targetID, "target-id", "poison_goblin", "built-in target id used when --target is missing")
	cmd.Flags().IntVar(&rounds, "rounds", 1, "rounds to run; stops early when the target drops")
	cmd.Flags().Uint64("seed", 42, "RNG seed")
	return cmd
}
