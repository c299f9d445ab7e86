package dice_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
)

func TestParse_ValidForms(t *testing.T) {
	cases := []struct {
		in   string
		want dice.Expression
	}{
		{"d20", dice.Expression{Raw: "d20", Count: 1, Sides: 20}},
		{"2d6", dice.Expression{Raw: "2d6", Count: 2, Sides: 6}},
		{"2d6+3", dice.Expression{Raw: "2d6+3", Count: 2, Sides: 6, Modifier: 3}},
		{"4d8-2", dice.Expression{Raw: "4d8-2", Count: 4, Sides: 8, Modifier: -2}},
		{"4d6kh3", dice.Expression{Raw: "4d6kh3", Count: 4, Sides: 6, KeepHighest: 3}},
		{"4D6KH3+1", dice.Expression{Raw: "4D6KH3+1", Count: 4, Sides: 6, Modifier: 1, KeepHighest: 3}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := dice.Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, in := range []string{"", "20", "0d6", "2d1", "2dx", "2d6+", "4d6kh4", "xd6"} {
		_, err := dice.Parse(in)
		assert.Truef(t, errors.Is(err, dice.ErrInvalidDice), "expected ErrInvalidDice for %q, got %v", in, err)
	}
}

func TestParse_BoundsCountAndSides(t *testing.T) {
	for _, in := range []string{"101d6", "4611686018427387904d6", "1d1001", "2d99999999999999999999"} {
		_, err := dice.Parse(in)
		assert.Truef(t, errors.Is(err, dice.ErrInvalidDice), "expected ErrInvalidDice for %q, got %v", in, err)
		_, err = dice.ParseDamageDice(in)
		assert.Truef(t, errors.Is(err, dice.ErrInvalidDice), "expected ErrInvalidDice for %q, got %v", in, err)
	}

	e, err := dice.Parse("100d1000")
	require.NoError(t, err)
	assert.Equal(t, dice.MaxCount, e.Count)
	assert.Equal(t, dice.MaxSides, e.Sides)
}

func TestDamageDice_ValidateBounds(t *testing.T) {
	cases := []struct {
		dd dice.DamageDice
		ok bool
	}{
		{dice.DamageDice{Count: 1, Sides: 2}, true},
		{dice.DamageDice{Count: dice.MaxCount, Sides: dice.MaxSides}, true},
		{dice.DamageDice{Count: 0, Sides: 6}, false},
		{dice.DamageDice{Count: dice.MaxCount + 1, Sides: 6}, false},
		{dice.DamageDice{Count: 1 << 62, Sides: 6}, false},
		{dice.DamageDice{Count: 1, Sides: dice.MaxSides + 1}, false},
	}
	for _, tc := range cases {
		t.Run(tc.dd.String(), func(t *testing.T) {
			err := tc.dd.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, dice.ErrInvalidDice), "got %v", err)
		})
	}

	var doc struct {
		A dice.DamageDice `yaml:"a"`
	}
	assert.Error(t, yaml.Unmarshal([]byte("a: {count: 4611686018427387904, sides: 6}\n"), &doc))
}

func TestParse_Property_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		count := rapid.IntRange(1, 20).Draw(rt, "count")
		sides := rapid.IntRange(2, 100).Draw(rt, "sides")
		mod := rapid.IntRange(-20, 20).Draw(rt, "mod")
		in := fmt.Sprintf("%dd%d%+d", count, sides, mod)
		e, err := dice.Parse(in)
		require.NoError(rt, err)
		assert.Equal(rt, count, e.Count)
		assert.Equal(rt, sides, e.Sides)
		assert.Equal(rt, mod, e.Modifier)
	})
}

func TestParseDamageDice_RejectsModifier(t *testing.T) {
	_, err := dice.ParseDamageDice("1d8+2")
	assert.True(t, errors.Is(err, dice.ErrInvalidDice))

	dd, err := dice.ParseDamageDice("2d6")
	require.NoError(t, err)
	assert.Equal(t, dice.DamageDice{Count: 2, Sides: 6}, dd)
	assert.Equal(t, "2d6", dd.String())
	assert.Equal(t, dice.DamageDice{Count: 4, Sides: 6}, dd.Crit())
}

func TestDamageDice_UnmarshalYAML_BothForms(t *testing.T) {
	var doc struct {
		A dice.DamageDice `yaml:"a"`
		B dice.DamageDice `yaml:"b"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("a: 1d8\nb: {count: 2, sides: 6}\n"), &doc))
	assert.Equal(t, dice.DamageDice{Count: 1, Sides: 8}, doc.A)
	assert.Equal(t, dice.DamageDice{Count: 2, Sides: 6}, doc.B)

	var bad struct {
		A dice.DamageDice `yaml:"a"`
	}
	assert.Error(t, yaml.Unmarshal([]byte("a: {count: 0, sides: 6}\n"), &bad))
}
