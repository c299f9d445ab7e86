package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
	"github.com/cory-johannsen/solo5e/internal/game/inventory"
	"github.com/cory-johannsen/solo5e/internal/game/ruleset"
)

func TestRegistry_CaseInsensitiveLookup(t *testing.T) {
	r := inventory.NewPresetRegistry()
	w, err := r.Weapon("  LongSword ")
	require.NoError(t, err)
	assert.Equal(t, "longsword", w.Name)
}

func TestRegistry_UnknownWeapon(t *testing.T) {
	_, err := inventory.NewPresetRegistry().Weapon("halberd")
	require.Error(t, err)
	assert.True(t, errors.Is(err, inventory.ErrUnknownWeapon))
	assert.Contains(t, err.Error(), "halberd")
}

func TestRegistry_CollisionError(t *testing.T) {
	_, err := inventory.NewRegistryFrom([]*inventory.Weapon{
		{Name: "Dagger", Dice: dice.DamageDice{Count: 1, Sides: 4}},
		{Name: "dagger", Dice: dice.DamageDice{Count: 1, Sides: 4}},
	})
	assert.Error(t, err)
}

func TestRegistry_IDAndNameBothResolve(t *testing.T) {
	w := &inventory.Weapon{ID: "ls_plus_one", Name: "Flame Tongue", Dice: dice.DamageDice{Count: 1, Sides: 8}}
	r, err := inventory.NewRegistryFrom([]*inventory.Weapon{w})
	require.NoError(t, err)
	byID, err := r.Weapon("LS_PLUS_ONE")
	require.NoError(t, err)
	byName, err := r.Weapon("flame tongue")
	require.NoError(t, err)
	assert.Same(t, byID, byName)
	assert.Len(t, r.AllWeapons(), 1)
}

func TestNewPresetRegistry_PresetsRegisterCleanly(t *testing.T) {
	assert.NotPanics(t, func() { _ = inventory.NewPresetRegistry() })

	r := inventory.NewRegistry()
	for _, w := range inventory.Presets() {
		require.NoError(t, w.Validate(), w.Name)
		require.NoError(t, r.RegisterWeapon(w), w.Name)
	}
	assert.Error(t, r.RegisterWeapon(inventory.Presets()[0]), "a duplicate preset key is rejected")
}

func TestPresets(t *testing.T) {
	r := inventory.NewPresetRegistry()
	cases := []struct {
		name    string
		dice    string
		finesse bool
		ranged  bool
		dtype   ruleset.DamageType
	}{
		{"longsword", "1d8", false, false, ruleset.Slashing},
		{"shortsword", "1d6", true, false, ruleset.Piercing},
		{"dagger", "1d4", true, false, ruleset.Piercing},
		{"greatsword", "2d6", false, false, ruleset.Slashing},
		{"longbow", "1d8", false, true, ruleset.Piercing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, err := r.Weapon(tc.name)
			require.NoError(t, err)
			assert.Equal(t, tc.dice, w.Dice.String())
			assert.Equal(t, tc.finesse, w.Finesse)
			assert.Equal(t, tc.ranged, w.Ranged)
			assert.Equal(t, tc.dtype, w.ResolvedDamageType())
		})
	}
	assert.Len(t, r.AllWeapons(), 5)
}

func TestLookup_LoadedBeforePresets(t *testing.T) {
	custom, err := inventory.NewRegistryFrom([]*inventory.Weapon{
		{Name: "longsword", Dice: dice.DamageDice{Count: 2, Sides: 8}},
	})
	require.NoError(t, err)

	w, err := inventory.Lookup("longsword", custom, inventory.NewPresetRegistry())
	require.NoError(t, err)
	assert.Equal(t, "2d8", w.Dice.String())

	w, err = inventory.Lookup("dagger", custom, nil, inventory.NewPresetRegistry())
	require.NoError(t, err)
	assert.Equal(t, "1d4", w.Dice.String())

	_, err = inventory.Lookup("whip", custom)
	assert.ErrorIs(t, err, inventory.ErrUnknownWeapon)
}
