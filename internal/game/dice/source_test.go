package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
)

func TestSeededSource_SameSeedSameSequence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		k := rapid.IntRange(1, 64).Draw(rt, "k")
		a := dice.NewSeededSource(seed)
		b := dice.NewSeededSource(seed)
		for i := 0; i < k; i++ {
			require.Equal(rt, a.Intn(20), b.Intn(20), "draw %d diverged for seed %d", i, seed)
		}
	})
}

func TestSeededSource_DifferentSeedsDiverge(t *testing.T) {
	a := dice.NewSeededSource(1)
	b := dice.NewSeededSource(2)
	same := true
	for i := 0; i < 32; i++ {
		if a.Intn(1000) != b.Intn(1000) {
			same = false
		}
	}
	assert.False(t, same, "seeds 1 and 2 produced identical 32-draw sequences")
}

func TestSeededSource_Intn_InRange(t *testing.T) {
	src := dice.NewSeededSource(7)
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestSeededSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewSeededSource(7)
	assert.Panics(t, func() { src.Intn(0) })
}

func TestScriptedSource_ReplaysFaces(t *testing.T) {
	src := dice.NewScriptedSource(20, 1, 7)
	assert.Equal(t, 19, src.Intn(20))
	assert.Equal(t, 0, src.Intn(20))
	assert.Equal(t, 6, src.Intn(20))
	assert.Equal(t, 19, src.Intn(20), "script restarts after the last face")
	assert.Equal(t, 4, src.Consumed())
}

func TestScriptedSource_ClampsToSides(t *testing.T) {
	src := dice.NewScriptedSource(12, 0)
	assert.Equal(t, 5, src.Intn(6), "face above sides clamps to the top face")
	assert.Equal(t, 0, src.Intn(6), "face below 1 clamps to the bottom face")
}

func TestScriptedSource_PanicsWithoutFaces(t *testing.T) {
	assert.Panics(t, func() { dice.NewScriptedSource() })
}
