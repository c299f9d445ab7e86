// Package combat runs duels and encounters between the player-controlled
// actor and scripted enemies, and batches duels for Monte Carlo sampling.
package combat

import (
	"github.com/cory-johannsen/solo5e/internal/game/condition"
	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/inventory"
	"github.com/cory-johannsen/solo5e/internal/game/life"
	"github.com/cory-johannsen/solo5e/internal/game/npc"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

// ActorName is the transcript subject used for the player-controlled actor.
const ActorName = "Actor"

// Content errors surfaced before any die is rolled.
var (
	ErrNoAttacks = npc.ErrNoAttacks
	ErrNoEnemies = npc.ErrNoEnemies
)

// Kind distinguishes the actor from enemy combatants.
type Kind int

const (
	KindActor Kind = iota
	KindEnemy
)

// Winner is the terminal outcome of a simulation.
type Winner string

const (
	WinnerActor     Winner = "actor"
	WinnerEnemy     Winner = "enemy"
	WinnerDraw      Winner = "draw"
	WinnerMaxRounds Winner = "max_rounds"
)

// Strike is the single attack a combatant makes on its turn.
type Strike struct {
	// Label is the transcript subject for the attack and damage lines.
	Label      string
	Bonus      int
	DamageMod  int
	Dice       dice.DamageDice
	DamageType ruleset.DamageType
	Style      condition.Style
	// Mode is the base vantage, combined with condition-derived vantage on every roll.
	Mode  dice.Mode
	OnHit *condition.Spec
}

// Combatant is the runtime state of one participant. It is created fresh for
// every simulation and discarded when the simulation ends.
type Combatant struct {
	Name  string
	Kind  Kind
	Index int
	AC    int
	Cover ruleset.Cover
	// DexMod is the initiative modifier.
	DexMod     int
	Health     *life.Health
	Conditions *condition.Set
	Strike     Strike
	Resist     ruleset.DamageTypes
	Vuln       ruleset.DamageTypes
	Immune     ruleset.DamageTypes

	saveMod func(ruleset.Ability) int
}

// NewActor builds the actor's combatant from its sheet and attack profile.
//
// Precondition: hp >= 1.
// Postcondition: the combatant is Conscious at hp with no conditions.
func NewActor(a ruleset.Actor, p inventory.AttackProfile, hp, ac int, mode dice.Mode) *Combatant {
	style := condition.Melee
	if p.Ranged {
		style = condition.Ranged
	}
	return &Combatant{
		Name:       ActorName,
		Kind:       KindActor,
		AC:         ac,
		DexMod:     a.AbilityMod(ruleset.Dex),
		Health:     life.NewHealth(hp),
		Conditions: condition.NewSet(),
		Strike: Strike{
			Label:      ActorName,
			Bonus:      p.Bonus,
			DamageMod:  p.DamageMod,
			Dice:       p.Dice,
			DamageType: p.DamageType,
			Style:      style,
			Mode:       mode,
		},
		saveMod: a.SaveMod,
	}
}

// NewEnemy builds the combatant for the enemy at position index.
// The template's first attack is used on every turn.
//
// Precondition: t must be non-nil.
// Postcondition: returns an error wrapping ErrNoAttacks when t has no attacks.
func NewEnemy(t *npc.Template, index int) (*Combatant, error) {
	atk, err := t.PrimaryAttack()
	if err != nil {
		return nil, err
	}
	resist, vuln, immune := t.Mitigation()
	return &Combatant{
		Name:       t.DisplayName(),
		Kind:       KindEnemy,
		Index:      index,
		AC:         t.AC,
		Cover:      t.Cover,
		DexMod:     t.DexterityMod(),
		Health:     life.NewHealth(t.HP),
		Conditions: condition.NewSet(),
		Strike: Strike{
			Label:      atk.Name,
			Bonus:      atk.ToHit,
			Dice:       atk.Dice,
			DamageType: atk.ResolvedDamageType(),
			Style:      atk.Style(),
			Mode:       dice.Normal,
			OnHit:      atk.ApplyCondition,
		},
		Resist:  resist,
		Vuln:    vuln,
		Immune:  immune,
		saveMod: t.AbilityMod,
	}, nil
}

// IsActor reports whether c is the player-controlled actor.
func (c *Combatant) IsActor() bool { return c.Kind == KindActor }

// Standing reports whether c has hit points left.
func (c *Combatant) Standing() bool { return c.Health.HP > 0 }

// Defeated reports whether c is out of the fight. The actor is out only once
// Dead; an enemy is out as soon as it reaches 0 HP.
func (c *Combatant) Defeated() bool {
	if c.IsActor() {
		return c.Health.State == life.Dead
	}
	return c.Health.HP <= 0
}

// EffectiveAC is AC plus the cover bonus.
func (c *Combatant) EffectiveAC() int {
	return c.AC + c.Cover.ACBonus()
}

func (c *Combatant) saver(r *dice.Roller) ruleset.Saver {
	return ruleset.ModSaver{Roller: r, Mod: c.saveMod}
}

// decide maps the terminal state to a Winner.
func decide(actor *Combatant, enemies []*Combatant) Winner {
	down := allDown(enemies)
	switch {
	case down && actor.Health.HP > 0:
		return WinnerActor
	case down:
		return WinnerDraw
	case actor.Health.State == life.Dead || actor.Health.HP <= 0:
		return WinnerEnemy
	default:
		return WinnerMaxRounds
	}
}

func allDown(enemies []*Combatant) bool {
	for _, e := range enemies {
		if e.Standing() {
			return false
		}
	}
	return true
}

func standing(enemies []*Combatant) []*Combatant {
	var out []*Combatant
	for _, e := range enemies {
		if e.Standing() {
			out = append(out, e)
		}
	}
	return out
}
