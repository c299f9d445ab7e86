package main

import (
	"github.com/spf13/pflag"

	"github.com/cory-johannsen/solo5e/internal/game/character"
	"github.com/cory-johannsen/solo5e/internal/game/combat"
	"github.com/cory-johannsen/solo5e/internal/game/condition"
	"github.com/cory-johannsen/solo5e/internal/game/content"
	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/inventory"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

// weaponFlags are the actor and weapon selectors shared by attack, duel,
// duel-many and encounter.
type weaponFlags struct {
	weapon    string
	dice      string
	dtype     string
	ability   string
	weapons   string
	weaponsID string
	file      string
}

func (w *weaponFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&w.weapon, "weapon", "longsword", "weapon name (longsword, shortsword, dagger, greatsword, longbow or one from --weapons)")
	fs.StringVar(&w.dice, "dice", "", "override damage dice (NdS)")
	fs.StringVar(&w.dtype, "dtype", "", "override damage type")
	fs.StringVar(&w.ability, "ability", "auto", "attack ability: auto|str|dex")
	fs.StringVar(&w.weapons, "weapons", "", "path to a weapons YAML/JSON file")
	fs.StringVar(&w.weaponsID, "weapons-id", "", "built-in weapon set id used when --weapons is missing")
	fs.StringVar(&w.file, "file", "", "actor sheet YAML/JSON (default: sample fighter)")
	fs.Bool("no-prof", false, "drop the proficiency bonus from attack rolls")
	fs.Bool("two-handed", false, "use versatile dice when the weapon has them")
	fs.String("advantage", "normal", "actor roll mode: normal|advantage|adv|disadvantage|dis")
}

// resolve loads the actor sheet and weapon and builds the loadout. Loaded
// weapons shadow the built-in basic set, which shadows the presets.
func (w *weaponFlags) resolve(a *app) (*character.Character, inventory.Loadout, error) {
	ch, err := content.LoadCharacter(w.file)
	if err != nil {
		return nil, inventory.Loadout{}, err
	}
	loaded, err := content.LoadWeapons(w.weapons, w.weaponsID)
	if err != nil {
		return nil, inventory.Loadout{}, err
	}
	basic, err := content.LoadWeapons("", "basic")
	if err != nil {
		return nil, inventory.Loadout{}, err
	}
	weapon, err := inventory.Lookup(w.weapon, loaded, basic, inventory.NewPresetRegistry())
	if err != nil {
		return nil, inventory.Loadout{}, err
	}
	ability, err := inventory.ParseAbilityChoice(w.ability)
	if err != nil {
		return nil, inventory.Loadout{}, err
	}

	l := inventory.Loadout{
		Weapon:     weapon,
		Ability:    ability,
		Proficient: a.cfg.Simulation.Proficient,
		TwoHanded:  a.cfg.Simulation.TwoHanded,
	}
	if w.dice != "" {
		d, err := dice.ParseDamageDice(w.dice)
		if err != nil {
			return nil, inventory.Loadout{}, err
		}
		l.DiceOverride = &d
	}
	if w.dtype != "" {
		dt, err := ruleset.ParseDamageType(w.dtype)
		if err != nil {
			return nil, inventory.Loadout{}, err
		}
		l.DamageTypeOverride = &dt
	}
	return ch, l, nil
}

// side builds the actor's half of a simulation from flags and config.
func (w *weaponFlags) side(a *app, actorCond string) (combat.Side, error) {
	ch, l, err := w.resolve(a)
	if err != nil {
		return combat.Side{}, err
	}
	mode, err := dice.ParseMode(a.cfg.Simulation.Advantage)
	if err != nil {
		return combat.Side{}, err
	}
	conds, err := condition.ParseList(actorCond)
	if err != nil {
		return combat.Side{}, err
	}
	return combat.Side{
		Actor:      ch.Actor,
		Loadout:    l,
		HP:         a.cfg.Actor.HP,
		AC:         a.cfg.Actor.AC,
		Mode:       mode,
		Conditions: conds,
	}, nil
}

func (a *app) recovery() combat.Recovery {
	s := a.cfg.Simulation
	return combat.Recovery{
		AutoPotion:    s.AutoPotion,
		PotionHeal:    s.PotionHeal,
		ShortRest:     s.ShortRest,
		ShortRestHeal: s.ShortRestHeal,
	}
}

// simFlags are the flags shared by duel, duel-many and encounter.
type simFlags struct {
	weaponFlags
	actorCond string
	enemyCond string
}

func (s *simFlags) register(fs *pflag.FlagSet, maxRounds int) {
	s.weaponFlags.register(fs)
	fs.StringVar(&s.actorCond, "actor-cond", "", "starting actor conditions (comma-separated: poisoned, prone, restrained, grappled)")
	fs.StringVar(&s.enemyCond, "enemy-cond", "", "starting conditions for every enemy (comma-separated)")
	fs.Uint64("seed", 42, "RNG seed")
	fs.Int("actor-hp", combat.DefaultActorHP, "actor hit points")
	fs.Int("actor-ac", combat.DefaultActorAC, "actor armor class")
	fs.Int("max-rounds", maxRounds, "round cap")
	fs.Bool("auto-potion", false, "drink one potion the first time the actor drops to 0 HP")
	fs.Bool("short-rest", false, "heal after the fight if the actor lived")
}
