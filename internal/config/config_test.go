package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func validConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Simulation: SimulationConfig{
			Seed:          42,
			Advantage:     "normal",
			Proficient:    true,
			PotionHeal:    7,
			ShortRestHeal: 5,
		},
		Actor:      ActorConfig{HP: 12, AC: 16},
		Duel:       DuelConfig{MaxRounds: 30},
		Encounter:  EncounterConfig{MaxRounds: 120, Focus: "first"},
		MonteCarlo: MonteCarloConfig{Samples: 50, Workers: 4},
		Scripting:  ScriptingConfig{InstructionLimit: 100000},
	}
}

func TestValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, validConfig(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	err := os.WriteFile(path, []byte(`
logging:
  level: debug
  format: json
simulation:
  seed: 7
  advantage: advantage
  auto_potion: true
actor:
  hp: 20
encounter:
  focus: lowest
montecarlo:
  samples: 1000
  workers: 8
`), 0644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, uint64(7), cfg.Simulation.Seed)
	assert.Equal(t, "advantage", cfg.Simulation.Advantage)
	assert.True(t, cfg.Simulation.AutoPotion)
	assert.True(t, cfg.Simulation.Proficient, "unset keys keep their defaults")
	assert.Equal(t, 20, cfg.Actor.HP)
	assert.Equal(t, 16, cfg.Actor.AC)
	assert.Equal(t, "lowest", cfg.Encounter.Focus)
	assert.Equal(t, 1000, cfg.MonteCarlo.Samples)
	assert.Equal(t, 8, cfg.MonteCarlo.Workers)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SOLO5E_ACTOR_HP", "33")
	t.Setenv("SOLO5E_DUEL_MAX_ROUNDS", "5")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 33, cfg.Actor.HP)
	assert.Equal(t, 5, cfg.Duel.MaxRounds)
}

func TestLoadInvalidPath(t *testing.T) {
	_, err := Load("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("actor:\n  hp: 0\nencounter:\n  focus: nearest\n"), 0644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration validation failed")
	assert.Contains(t, err.Error(), "actor.hp")
	assert.Contains(t, err.Error(), "encounter.focus")
}

func TestValidateLoggingLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		cfg := validConfig()
		cfg.Logging.Level = level
		assert.NoError(t, cfg.Validate(), "level %q should be valid", level)
	}
	cfg := validConfig()
	cfg.Logging.Level = "trace"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingFormat(t *testing.T) {
	for _, format := range []string{"json", "console"} {
		cfg := validConfig()
		cfg.Logging.Format = format
		assert.NoError(t, cfg.Validate(), "format %q should be valid", format)
	}
	cfg := validConfig()
	cfg.Logging.Format = "xml"
	assert.Error(t, cfg.Validate())
}

func TestValidateLoggingOutputEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Output = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateAdvantage(t *testing.T) {
	for _, mode := range []string{"normal", "advantage", "disadvantage", "Advantage", "adv", "DIS"} {
		cfg := validConfig()
		cfg.Simulation.Advantage = mode
		assert.NoError(t, cfg.Validate(), "mode %q should be valid", mode)
	}
	cfg := validConfig()
	cfg.Simulation.Advantage = "double"
	assert.Error(t, cfg.Validate())
}

func TestValidateEncounterFocus(t *testing.T) {
	for _, focus := range []string{"first", "lowest", "random", "script"} {
		cfg := validConfig()
		cfg.Encounter.Focus = focus
		assert.NoError(t, cfg.Validate(), "focus %q should be valid", focus)
	}
	cfg := validConfig()
	cfg.Encounter.Focus = "nearest"
	assert.Error(t, cfg.Validate())
}

func TestValidateMonteCarlo(t *testing.T) {
	cfg := validConfig()
	cfg.MonteCarlo.Samples = 0
	assert.NoError(t, cfg.Validate())

	cfg.MonteCarlo.Samples = -1
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.MonteCarlo.Workers = 0
	assert.Error(t, cfg.Validate())
}

func TestValidateReportsEveryViolation(t *testing.T) {
	cfg := validConfig()
	cfg.Duel.MaxRounds = 0
	cfg.Scripting.InstructionLimit = 0
	cfg.Simulation.PotionHeal = 0
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duel.max_rounds")
	assert.Contains(t, err.Error(), "scripting.instruction_limit")
	assert.Contains(t, err.Error(), "simulation.potion_heal")
}

// Property-based tests

func TestPropertyPositiveRoundCapsAccepted(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		duel := rapid.IntRange(1, 10000).Draw(t, "duel")
		enc := rapid.IntRange(1, 10000).Draw(t, "encounter")
		cfg := validConfig()
		cfg.Duel.MaxRounds = duel
		cfg.Encounter.MaxRounds = enc
		if err := cfg.Validate(); err != nil {
			t.Fatalf("valid caps duel=%d encounter=%d rejected: %v", duel, enc, err)
		}
	})
}

func TestPropertyNonPositiveActorHPRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		hp := rapid.IntRange(-1000, 0).Draw(t, "hp")
		cfg := validConfig()
		cfg.Actor.HP = hp
		if err := cfg.Validate(); err == nil {
			t.Fatalf("invalid actor hp %d accepted", hp)
		}
	})
}
