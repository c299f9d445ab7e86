package ruleset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

func scripted(faces ...int) *dice.Roller {
	return dice.NewRoller(dice.NewScriptedSource(faces...), nil)
}

func TestCheck_ExposesAllFields(t *testing.T) {
	res := ruleset.Check(scripted(11), 13, 2, dice.Normal)
	assert.Equal(t, 11, res.Roll)
	assert.Equal(t, 13, res.Total)
	assert.Equal(t, 13, res.DC)
	assert.True(t, res.Passed, "total == dc passes")

	res = ruleset.Check(scripted(10), 13, 2, dice.Normal)
	assert.False(t, res.Passed)
}

func TestCheck_AdvantageUsesKeptDie(t *testing.T) {
	res := ruleset.Check(scripted(3, 18), 15, 0, dice.Advantage)
	assert.Equal(t, []int{3, 18}, res.D20.Rolls)
	assert.Equal(t, 18, res.Roll)
	assert.True(t, res.Passed)
}

func TestAttack_Nat20AlwaysHits(t *testing.T) {
	res := ruleset.Attack(scripted(20), dice.Normal, -10, 30)
	assert.True(t, res.Hit)
	assert.True(t, res.Crit)
	assert.Equal(t, 10, res.Total)
}

func TestAttack_Nat1AlwaysMisses(t *testing.T) {
	res := ruleset.Attack(scripted(1), dice.Normal, 50, 5)
	assert.False(t, res.Hit)
	assert.True(t, res.Nat1)
}

func TestAttack_DisadvantageDiscardsTwenty(t *testing.T) {
	res := ruleset.Attack(scripted(20, 4), dice.Disadvantage, 5, 13)
	assert.Equal(t, []int{20, 4}, res.Rolls)
	assert.Equal(t, 4, res.Roll)
	assert.False(t, res.Crit, "crit keys on the kept die")
	assert.False(t, res.Hit)
}

func TestAttack_Property_HitFormula(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		mode := dice.Mode(rapid.IntRange(0, 2).Draw(rt, "mode"))
		bonus := rapid.IntRange(-5, 15).Draw(rt, "bonus")
		ac := rapid.IntRange(5, 30).Draw(rt, "ac")
		res := ruleset.Attack(dice.NewSeededRoller(seed, nil), mode, bonus, ac)
		assert.Equal(rt, res.Roll == 20, res.Crit)
		assert.Equal(rt, res.Roll == 1, res.Nat1)
		assert.Equal(rt, res.Crit || (!res.Nat1 && res.Total >= ac), res.Hit)
		assert.Equal(rt, res.Roll+bonus, res.Total)
	})
}

func TestDamage_CritBounds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		mod := rapid.IntRange(-3, 5).Draw(rt, "mod")
		pool := dice.DamageDice{Count: 1, Sides: 8}
		r := dice.NewSeededRoller(seed, nil)

		normal := ruleset.Damage(r, pool, mod, false)
		assert.Len(rt, normal.Faces, 1)
		assert.GreaterOrEqual(rt, normal.Total, 1+mod)
		assert.LessOrEqual(rt, normal.Total, 8+mod)

		crit := ruleset.Damage(r, pool, mod, true)
		assert.Len(rt, crit.Faces, 2)
		assert.GreaterOrEqual(rt, crit.Total, 2+mod)
		assert.LessOrEqual(rt, crit.Total, 16+mod)
	})
}

func TestDamage_ModifierAddedOnceNotClamped(t *testing.T) {
	res := ruleset.Damage(scripted(1, 1), dice.DamageDice{Count: 1, Sides: 4}, -5, true)
	assert.Equal(t, []int{1, 1}, res.Faces)
	assert.Equal(t, -3, res.Total)
}

func TestContest_TieGoesToDefender(t *testing.T) {
	res := ruleset.Contest(scripted(10, 12), 3, 1)
	assert.Equal(t, 13, res.AttackerTotal)
	assert.Equal(t, 13, res.DefenderTotal)
	assert.Equal(t, ruleset.TieDefender, res.Outcome)

	assert.Equal(t, ruleset.AttackerWins, ruleset.Contest(scripted(15, 2), 0, 0).Outcome)
	assert.Equal(t, ruleset.DefenderWins, ruleset.Contest(scripted(2, 15), 0, 0).Outcome)
}

func TestBestOfStrDex(t *testing.T) {
	ab, mod := ruleset.BestOfStrDex(1, 3)
	assert.Equal(t, ruleset.Dex, ab)
	assert.Equal(t, 3, mod)
	ab, mod = ruleset.BestOfStrDex(2, 2)
	assert.Equal(t, ruleset.Str, ab)
	assert.Equal(t, 2, mod)
}

func TestCover_ACBonus(t *testing.T) {
	assert.Equal(t, 0, ruleset.CoverNone.ACBonus())
	assert.Equal(t, 2, ruleset.CoverHalf.ACBonus())
	assert.Equal(t, 5, ruleset.CoverThreeQuarters.ACBonus())
	for _, in := range []string{"three_quarters", "ThreeQuarters", "three-quarters"} {
		c, err := ruleset.ParseCover(in)
		assert.NoError(t, err)
		assert.Equal(t, ruleset.CoverThreeQuarters, c, in)
	}
}
