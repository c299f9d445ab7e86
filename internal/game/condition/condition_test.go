package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/solo5e/internal/game/condition"
	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/eventlog"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

// fixedSaver returns a canned roll/total and records every save it is asked for.
type fixedSaver struct {
	roll, total int
	asked       []ruleset.SavingThrow
}

func (f *fixedSaver) SavingThrow(st ruleset.SavingThrow) ruleset.CheckResult {
	f.asked = append(f.asked, st)
	return ruleset.CheckResult{Roll: f.roll, Total: f.total, DC: st.DC, Passed: f.total >= st.DC}
}

func TestParseList(t *testing.T) {
	kinds, err := condition.ParseList("Poisoned, prone,,RESTRAINED")
	require.NoError(t, err)
	assert.Equal(t, []condition.Kind{condition.Poisoned, condition.Prone, condition.Restrained}, kinds)

	_, err = condition.ParseList("poisoned,charmed")
	assert.ErrorContains(t, err, "charmed")
}

func TestSet_ApplyRefreshesInsteadOfStacking(t *testing.T) {
	s := condition.NewSet(condition.Prone)
	s.Apply(condition.ActiveCondition{Kind: condition.Poisoned})
	s.Apply(condition.ActiveCondition{Kind: condition.Poisoned, SaveEndsEachTurn: true})
	require.Equal(t, 2, s.Len())
	assert.Equal(t, []condition.Kind{condition.Prone, condition.Poisoned}, s.Kinds())
	assert.True(t, s.All()[1].SaveEndsEachTurn, "second application replaced the first")
}

func TestSet_Property_NoDuplicateKinds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := condition.NewSet()
		ops := rapid.SliceOf(rapid.IntRange(0, 11)).Draw(rt, "ops")
		for _, op := range ops {
			k := condition.Kind(op % 4)
			switch op / 4 {
			case 0:
				s.Apply(condition.Permanent(k))
			case 1:
				s.Ensure(k)
			default:
				s.Remove(k)
			}
			seen := map[condition.Kind]bool{}
			for _, kind := range s.Kinds() {
				require.False(rt, seen[kind], "duplicate %s", kind)
				seen[kind] = true
			}
		}
	})
}

func TestFromConditions(t *testing.T) {
	none := condition.NewSet()
	cases := []struct {
		name     string
		attacker *condition.Set
		target   *condition.Set
		style    condition.Style
		want     dice.Mode
	}{
		{"poisoned attacker", condition.NewSet(condition.Poisoned), none, condition.Melee, dice.Disadvantage},
		{"restrained attacker", condition.NewSet(condition.Restrained), none, condition.Melee, dice.Disadvantage},
		{"restrained target", none, condition.NewSet(condition.Restrained), condition.Ranged, dice.Advantage},
		{"prone target melee", none, condition.NewSet(condition.Prone), condition.Melee, dice.Advantage},
		{"prone target ranged", none, condition.NewSet(condition.Prone), condition.Ranged, dice.Disadvantage},
		{"poisoned vs restrained cancels", condition.NewSet(condition.Poisoned), condition.NewSet(condition.Restrained), condition.Melee, dice.Normal},
		{"prone ranged cancels restrained", none, condition.NewSet(condition.Prone, condition.Restrained), condition.Ranged, dice.Normal},
		{"grappled is neutral", condition.NewSet(condition.Grappled), condition.NewSet(condition.Grappled), condition.Melee, dice.Normal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, condition.FromConditions(tc.attacker, tc.target, tc.style))
		})
	}
}

func TestProcessTurnBoundary_SaveDCZeroEndsOnFirstEndOfTurn(t *testing.T) {
	s := condition.NewSet()
	s.Apply(condition.ActiveCondition{
		Kind:             condition.Poisoned,
		SaveEndsEachTurn: true,
		EndSave:          &ruleset.SavingThrow{Ability: ruleset.Con, DC: 0},
	})
	log := eventlog.New(nil)
	saver := &fixedSaver{roll: 1, total: 0}

	condition.ProcessTurnBoundary(condition.EndOfTurn, "Tester", s, saver, log)

	assert.False(t, s.Has(condition.Poisoned))
	assert.Equal(t, []string{
		"[SAVE][Tester] makes a Con save DC 0 vs Poisoned: roll=1 total=0 → SUCCESS",
		"[COND][Tester] is no longer Poisoned",
	}, log.Lines())
}

func TestProcessTurnBoundary_SaveNotRolledAtStartOfTurn(t *testing.T) {
	s := condition.NewSet()
	s.Apply(condition.ActiveCondition{
		Kind:             condition.Poisoned,
		SaveEndsEachTurn: true,
		EndSave:          &ruleset.SavingThrow{Ability: ruleset.Con, DC: 0},
	})
	saver := &fixedSaver{roll: 20, total: 20}
	condition.ProcessTurnBoundary(condition.StartOfTurn, "Tester", s, saver, eventlog.Discard)
	assert.True(t, s.Has(condition.Poisoned))
	assert.Empty(t, saver.asked)
}

func TestProcessTurnBoundary_FailedSaveKeepsCondition(t *testing.T) {
	s := condition.NewSet()
	s.Apply(condition.ActiveCondition{
		Kind:             condition.Restrained,
		SaveEndsEachTurn: true,
		EndSave:          &ruleset.SavingThrow{Ability: ruleset.Str, DC: 15},
	})
	log := eventlog.New(nil)
	condition.ProcessTurnBoundary(condition.EndOfTurn, "Tester", s, &fixedSaver{roll: 4, total: 7}, log)
	assert.True(t, s.Has(condition.Restrained))
	assert.Equal(t, []string{"[SAVE][Tester] makes a Str save DC 15 vs Restrained: roll=4 total=7 → FAIL"}, log.Lines())
}

func TestProcessTurnBoundary_OneTurnExpiresExactlyOnce(t *testing.T) {
	s := condition.NewSet()
	s.Apply(condition.ActiveCondition{Kind: condition.Prone, EndPhase: condition.StartOfTurn, PendingOneTurn: true})
	log := eventlog.New(nil)
	saver := &fixedSaver{}

	condition.ProcessTurnBoundary(condition.EndOfTurn, "Tester", s, saver, log)
	assert.True(t, s.Has(condition.Prone), "phase mismatch keeps the condition")

	condition.ProcessTurnBoundary(condition.StartOfTurn, "Tester", s, saver, log)
	assert.False(t, s.Has(condition.Prone))

	condition.ProcessTurnBoundary(condition.StartOfTurn, "Tester", s, saver, log)
	assert.Equal(t, []string{"[COND][Tester] Prone ends at StartOfTurn"}, log.Lines())
}

func TestProcessTurnBoundary_SaveThenExpiryOrder(t *testing.T) {
	s := condition.NewSet()
	s.Apply(condition.ActiveCondition{Kind: condition.Prone, EndPhase: condition.EndOfTurn, PendingOneTurn: true})
	s.Apply(condition.ActiveCondition{
		Kind:             condition.Poisoned,
		SaveEndsEachTurn: true,
		EndSave:          &ruleset.SavingThrow{Ability: ruleset.Con, DC: 10},
	})
	log := eventlog.New(nil)
	condition.ProcessTurnBoundary(condition.EndOfTurn, "T", s, &fixedSaver{roll: 12, total: 12}, log)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, []string{
		"[SAVE][T] makes a Con save DC 10 vs Poisoned: roll=12 total=12 → SUCCESS",
		"[COND][T] is no longer Poisoned",
		"[COND][T] Prone ends at EndOfTurn",
	}, log.Lines())
}

func TestApplyOnHit_SaveUsesSpecAbility(t *testing.T) {
	spec := condition.Spec{Kind: condition.Poisoned, Save: &ruleset.SavingThrow{Ability: ruleset.Con, DC: 12}}
	saver := &fixedSaver{roll: 1, total: 1}
	s := condition.NewSet()

	applied := condition.ApplyOnHit("Target", s, spec, saver, eventlog.Discard)

	assert.True(t, applied)
	assert.Equal(t, []ruleset.SavingThrow{{Ability: ruleset.Con, DC: 12}}, saver.asked)
	assert.True(t, s.Has(condition.Poisoned))
}

func TestApplyOnHit_ResistedLeavesSetUntouched(t *testing.T) {
	spec := condition.Spec{Kind: condition.Poisoned, Save: &ruleset.SavingThrow{Ability: ruleset.Con, DC: 12}}
	s := condition.NewSet()
	log := eventlog.New(nil)

	applied := condition.ApplyOnHit("Target", s, spec, &fixedSaver{roll: 14, total: 16}, log)

	assert.False(t, applied)
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, []string{"[SAVE][Target] resists Poisoned? Con save DC 12: roll=14 total=16 → RESISTED"}, log.Lines())
}

func TestApplyOnHit_NoSaveAlwaysLands(t *testing.T) {
	spec := condition.Spec{Kind: condition.Prone, Duration: condition.Duration{Until: condition.EndOfTurn}}
	s := condition.NewSet()
	log := eventlog.New(nil)
	saver := &fixedSaver{}

	require.True(t, condition.ApplyOnHit("Target", s, spec, saver, log))
	assert.Empty(t, saver.asked)
	got := s.All()[0]
	assert.True(t, got.PendingOneTurn)
	assert.Equal(t, condition.EndOfTurn, got.EndPhase)
	assert.Equal(t, []string{"[COND][Target] gains Prone"}, log.Lines())
}

func TestSpec_UnmarshalYAML(t *testing.T) {
	var spec condition.Spec
	require.NoError(t, yaml.Unmarshal([]byte(`
kind: poisoned
save: {ability: con, dc: 11}
duration: {until: end_of_turn, save_ends_each_turn: true}
`), &spec))
	assert.Equal(t, condition.Poisoned, spec.Kind)
	require.NotNil(t, spec.Save)
	assert.Equal(t, ruleset.Con, spec.Save.Ability)
	assert.Equal(t, 11, spec.Save.DC)
	assert.Equal(t, condition.EndOfTurn, spec.Duration.Until)
	assert.True(t, spec.Duration.SaveEndsEachTurn)
}
