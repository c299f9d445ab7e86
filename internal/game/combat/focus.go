package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/npc"
	"github.com/cory-johannsen/solo5e/internal/scripting"
)

// Targeter picks the enemy the actor attacks. It is re-evaluated on every
// actor turn and receives only standing enemies, in encounter order.
type Targeter interface {
	Select(alive []*Combatant) *Combatant
}

// TargeterFunc adapts a function to Targeter.
type TargeterFunc func(alive []*Combatant) *Combatant

// Select calls f.
func (f TargeterFunc) Select(alive []*Combatant) *Combatant { return f(alive) }

// FirstTargeter picks the standing enemy with the lowest original index.
var FirstTargeter Targeter = TargeterFunc(func(alive []*Combatant) *Combatant {
	if len(alive) == 0 {
		return nil
	}
	return alive[0]
})

// LowestTargeter picks the standing enemy with the least HP, ties broken by index.
var LowestTargeter Targeter = TargeterFunc(func(alive []*Combatant) *Combatant {
	var best *Combatant
	for _, e := range alive {
		if best == nil || e.Health.HP < best.Health.HP ||
			(e.Health.HP == best.Health.HP && e.Index < best.Index) {
			best = e
		}
	}
	return best
})

// RandomTargeter picks uniformly among standing enemies with the simulation's
// own dice stream.
func RandomTargeter(r *dice.Roller) Targeter {
	return TargeterFunc(func(alive []*Combatant) *Combatant {
		if len(alive) == 0 {
			return nil
		}
		return alive[r.Die(len(alive))-1]
	})
}

// ScriptTargeter asks a Lua focus script for the target. Script errors and
// out-of-range answers fall back to FirstTargeter.
func ScriptTargeter(vm *scripting.FocusVM, logger *zap.Logger) Targeter {
	return TargeterFunc(func(alive []*Combatant) *Combatant {
		if len(alive) == 0 {
			return nil
		}
		views := make([]scripting.EnemyView, len(alive))
		for i, e := range alive {
			views[i] = scripting.EnemyView{
				Index: e.Index,
				Name:  e.Name,
				HP:    e.Health.HP,
				MaxHP: e.Health.MaxHP,
				AC:    e.EffectiveAC(),
			}
		}
		pos, err := vm.SelectTarget(views)
		if err != nil {
			logger.Warn("focus script failed; targeting first enemy", zap.Error(err))
			return FirstTargeter.Select(alive)
		}
		return alive[pos]
	})
}

// NewTargeter returns the Targeter for focus. vm is consulted only for
// npc.FocusScript and must be non-nil in that case.
func NewTargeter(focus npc.Focus, r *dice.Roller, vm *scripting.FocusVM, logger *zap.Logger) Targeter {
	switch focus {
	case npc.FocusLowest:
		return LowestTargeter
	case npc.FocusRandom:
		return RandomTargeter(r)
	case npc.FocusScript:
		if vm != nil {
			return ScriptTargeter(vm, logger)
		}
	}
	return FirstTargeter
}
