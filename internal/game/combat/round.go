package combat

import (
	"github.com/cory-johannsen/solo5e/internal/game/condition"
	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/eventlog"
	"github.com/cory-johannsen/solo5e/internal/game/life"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

// Recovery holds the optional between-hits healing rules.
type Recovery struct {
	AutoPotion    bool
	PotionHeal    int
	ShortRest     bool
	ShortRestHeal int
}

// battle is the mutable state of one running simulation.
type battle struct {
	r        *dice.Roller
	sink     eventlog.Sink
	actor    *Combatant
	enemies  []*Combatant
	targeter Targeter
	recovery Recovery
	// encounter enables the per-enemy HP and defeat lines.
	encounter  bool
	potionUsed bool
}

// over reports whether either side is fully defeated.
func (b *battle) over() bool {
	return b.actor.Health.State == life.Dead || allDown(b.enemies)
}

// run plays rounds in order until the fight is over or maxRounds is reached.
// The termination check runs after every turn.
//
// Postcondition: returns the number of rounds begun, at most maxRounds.
func (b *battle) run(order []*Combatant, maxRounds int) int {
	rounds := 0
	for rounds < maxRounds && !b.over() {
		rounds++
		eventlog.Emitf(b.sink, eventlog.TagRound, "", "%d", rounds)
		for _, c := range order {
			if b.over() {
				break
			}
			if !c.IsActor() && c.Defeated() {
				continue
			}
			b.takeTurn(c)
		}
	}
	return rounds
}

// takeTurn runs the per-turn sequence for c: death save, start-of-turn
// boundary, one attack if conscious, end-of-turn boundary.
func (b *battle) takeTurn(c *Combatant) {
	if outcome, rolled := life.ProcessDeathSave(c.Name, c.Health, b.r, b.sink); rolled {
		eventlog.Emitf(b.sink, eventlog.TagTurn, c.Name, "death save: %s", outcome)
	}

	saver := c.saver(b.r)
	condition.ProcessTurnBoundary(condition.StartOfTurn, c.Name, c.Conditions, saver, b.sink)

	switch {
	case c.Health.State == life.Dead:
		eventlog.Emitf(b.sink, eventlog.TagTurn, c.Name, "is dead; skipping")
	case c.Health.State.IsUnconscious():
		eventlog.Emitf(b.sink, eventlog.TagTurn, c.Name, "is unconscious; skipping actions")
	default:
		if target := b.targetFor(c); target != nil {
			b.strike(c, target)
		}
	}

	condition.ProcessTurnBoundary(condition.EndOfTurn, c.Name, c.Conditions, saver, b.sink)
}

func (b *battle) targetFor(c *Combatant) *Combatant {
	if !c.IsActor() {
		return b.actor
	}
	alive := standing(b.enemies)
	if len(alive) == 0 {
		return nil
	}
	return b.targeter.Select(alive)
}

// strike resolves c's attack against target.
func (b *battle) strike(c, target *Combatant) {
	s := c.Strike
	mode := s.Mode.Combine(condition.FromConditions(c.Conditions, target.Conditions, s.Style))

	logDefense(b.sink, target.Name, target.AC, target.Cover)
	atk := ruleset.Attack(b.r, mode, s.Bonus, target.EffectiveAC())
	logAttack(b.sink, s.Label, atk)
	if !atk.Hit {
		if b.encounter && !target.IsActor() {
			eventlog.Emitf(b.sink, eventlog.TagHP, target.Name, "%d HP", target.Health.HP)
		}
		return
	}

	roll := ruleset.Damage(b.r, s.Dice, s.DamageMod, atk.Crit)
	dmg := ruleset.AdjustDamageByType(roll.Total, s.DamageType, target.Resist, target.Vuln, target.Immune)
	dmg = max(dmg, 0)
	logDamage(b.sink, s.Label, s.Dice, s.DamageMod, atk.Crit, dmg, s.DamageType)

	if target.IsActor() {
		b.damageActor(target, dmg)
	} else {
		b.damageEnemy(target, dmg)
	}

	if s.OnHit != nil && target.Health.State != life.Dead {
		condition.ApplyOnHit(target.Name, target.Conditions, *s.OnHit, target.saver(b.r), b.sink)
	}
}

func (b *battle) damageActor(a *Combatant, dmg int) {
	dropped := life.ApplyDamage(a.Name, a.Health, a.Conditions, dmg, b.sink)
	eventlog.Emitf(b.sink, eventlog.TagHP, a.Name, "%d HP", a.Health.HP)
	if !dropped {
		return
	}
	eventlog.Emitf(b.sink, eventlog.TagItem, a.Name, "drops to 0 HP")
	if b.recovery.AutoPotion && !b.potionUsed {
		b.potionUsed = true
		life.Heal(a.Name, a.Health, b.recovery.PotionHeal, b.sink)
		eventlog.Emitf(b.sink, eventlog.TagItem, a.Name, "Auto-potion consumed (2d4+2 ~ %d)", b.recovery.PotionHeal)
	}
}

// damageEnemy clamps the enemy's HP at 0. An enemy at 0 is defeated and
// makes no death saves.
func (b *battle) damageEnemy(e *Combatant, dmg int) {
	before := e.Health.HP
	e.Health.HP = max(before-dmg, 0)
	eventlog.Emitf(b.sink, eventlog.TagHP, e.Name, "%d → %d", before, e.Health.HP)
	if e.Health.HP > 0 {
		return
	}
	e.Health.State = life.Dead
	if b.encounter {
		eventlog.Emitf(b.sink, eventlog.TagEnemy, "", "%s defeated", e.Name)
	}
}

// applyStartingConditions pushes permanent starting conditions onto c.
func (b *battle) applyStartingConditions(c *Combatant, kinds []condition.Kind) {
	for _, k := range kinds {
		c.Conditions.Apply(condition.Permanent(k))
		eventlog.Emitf(b.sink, eventlog.TagCondition, c.Name, "starts with %s", k)
	}
}

// shortRest heals the actor after the fight when enabled and the actor lived.
func (b *battle) shortRest() {
	if !b.recovery.ShortRest || b.actor.Health.State == life.Dead {
		return
	}
	life.Heal(b.actor.Name, b.actor.Health, b.recovery.ShortRestHeal, b.sink)
	eventlog.Emitf(b.sink, eventlog.TagRest, b.actor.Name, "Short rest: +%d HP", b.recovery.ShortRestHeal)
}
