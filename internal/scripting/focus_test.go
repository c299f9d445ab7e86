package scripting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/scripting"
)

func threeEnemies() []scripting.EnemyView {
	return []scripting.EnemyView{
		{Index: 0, Name: "Cutter", HP: 7, MaxHP: 7, AC: 13},
		{Index: 1, Name: "Archer", HP: 2, MaxHP: 7, AC: 13},
		{Index: 2, Name: "Trapper", HP: 5, MaxHP: 7, AC: 12},
	}
}

func newVM(t *testing.T, src string, roller scripting.Roller) *scripting.FocusVM {
	t.Helper()
	if roller == nil {
		roller = dice.NewSeededRoller(1, zap.NewNop())
	}
	vm, err := scripting.NewFocusVM(src, 0, roller, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(vm.Close)
	return vm
}

func TestFocusVM_LowestHP(t *testing.T) {
	vm := newVM(t, `
		function select_target(enemies)
			local best = 1
			for i, e in ipairs(enemies) do
				if e.hp < enemies[best].hp then best = i end
			end
			return best
		end
	`, nil)
	idx, err := vm.SelectTarget(threeEnemies())
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestFocusVM_SeesFields(t *testing.T) {
	vm := newVM(t, `
		function select_target(enemies)
			local e = enemies[3]
			assert(e.index == 3 and e.name == "Trapper" and e.max_hp == 7 and e.ac == 12)
			return 3
		end
	`, nil)
	idx, err := vm.SelectTarget(threeEnemies())
	require.NoError(t, err)
	assert.Equal(t, 2, idx)
}

func TestFocusVM_EngineRollUsesRoller(t *testing.T) {
	src := dice.NewScriptedSource(2)
	roller := dice.NewRoller(src, zap.NewNop())
	vm := newVM(t, `
		function select_target(enemies)
			return engine.roll(#enemies)
		end
	`, roller)
	idx, err := vm.SelectTarget(threeEnemies())
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	assert.Equal(t, 1, src.Consumed())
}

func TestFocusVM_MissingFunction(t *testing.T) {
	_, err := scripting.NewFocusVM(`local x = 1`, 0, dice.NewSeededRoller(1, zap.NewNop()), zap.NewNop())
	assert.ErrorIs(t, err, scripting.ErrNoSelectTarget)
}

func TestFocusVM_SyntaxError(t *testing.T) {
	_, err := scripting.NewFocusVM(`function (`, 0, dice.NewSeededRoller(1, zap.NewNop()), zap.NewNop())
	assert.Error(t, err)
}

func TestFocusVM_RejectsBadReturns(t *testing.T) {
	cases := map[string]string{
		"zero":       `function select_target(e) return 0 end`,
		"too large":  `function select_target(e) return 4 end`,
		"fractional": `function select_target(e) return 1.5 end`,
		"string":     `function select_target(e) return "first" end`,
		"nil":        `function select_target(e) end`,
		"raises":     `function select_target(e) error("boom") end`,
		"bad roll":   `function select_target(e) return engine.roll(0) end`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			vm := newVM(t, src, nil)
			_, err := vm.SelectTarget(threeEnemies())
			assert.Error(t, err)
		})
	}
}

func TestFocusVM_BudgetResetsPerCall(t *testing.T) {
	roller := dice.NewSeededRoller(1, zap.NewNop())
	vm, err := scripting.NewFocusVM(`
		function select_target(enemies)
			local n = 0
			for i = 1, 20 do n = n + i end
			return 1
		end
	`, 500, roller, zap.NewNop())
	require.NoError(t, err)
	defer vm.Close()
	for i := 0; i < 50; i++ {
		_, err := vm.SelectTarget(threeEnemies())
		require.NoError(t, err, "call %d", i)
	}
}

func TestFocusVM_InfiniteLoopStops(t *testing.T) {
	vm, err := scripting.NewFocusVM(`function select_target(e) while true do end end`,
		100, dice.NewSeededRoller(1, zap.NewNop()), zap.NewNop())
	require.NoError(t, err)
	defer vm.Close()
	_, err = vm.SelectTarget(threeEnemies())
	assert.Error(t, err)
}

func TestFocusVM_EmptyEnemies(t *testing.T) {
	vm := newVM(t, `function select_target(e) return 1 end`, nil)
	_, err := vm.SelectTarget(nil)
	assert.Error(t, err)
}

func TestProperty_FocusVM_ReturnedIndexInRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 8).Draw(rt, "n")
		seed := rapid.Uint64().Draw(rt, "seed")
		vm, err := scripting.NewFocusVM(`function select_target(e) return engine.roll(#e) end`,
			0, dice.NewSeededRoller(seed, zap.NewNop()), zap.NewNop())
		if err != nil {
			rt.Fatalf("NewFocusVM: %v", err)
		}
		defer vm.Close()
		enemies := make([]scripting.EnemyView, n)
		for i := range enemies {
			enemies[i] = scripting.EnemyView{Index: i, Name: "e", HP: 1, MaxHP: 1, AC: 10}
		}
		idx, err := vm.SelectTarget(enemies)
		if err != nil {
			rt.Fatalf("SelectTarget: %v", err)
		}
		if idx < 0 || idx >= n {
			rt.Fatalf("index %d out of range [0,%d)", idx, n)
		}
	})
}
