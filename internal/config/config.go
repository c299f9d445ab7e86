// Package config provides Viper-based configuration loading for the simulator.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/solo5e/internal/game/dice"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is the diagnostic log sink: "stderr", "stdout" or a file path.
	Output string `mapstructure:"output"`
}

// SimulationConfig holds the settings shared by every simulation command.
type SimulationConfig struct {
	Seed uint64 `mapstructure:"seed"`
	// Advantage is the actor's base vantage: "normal", "advantage" ("adv") or "disadvantage" ("dis").
	Advantage     string `mapstructure:"advantage"`
	Proficient    bool   `mapstructure:"proficient"`
	TwoHanded     bool   `mapstructure:"two_handed"`
	AutoPotion    bool   `mapstructure:"auto_potion"`
	PotionHeal    int    `mapstructure:"potion_heal"`
	ShortRest     bool   `mapstructure:"short_rest"`
	ShortRestHeal int    `mapstructure:"short_rest_heal"`
}

// ActorConfig overrides the actor's combat statistics.
type ActorConfig struct {
	HP int `mapstructure:"hp"`
	AC int `mapstructure:"ac"`
}

// DuelConfig holds duel settings.
type DuelConfig struct {
	MaxRounds int `mapstructure:"max_rounds"`
}

// EncounterConfig holds encounter settings.
type EncounterConfig struct {
	MaxRounds int `mapstructure:"max_rounds"`
	// Focus is the default target strategy: "first", "lowest", "random" or "script".
	Focus string `mapstructure:"focus"`
}

// MonteCarloConfig holds batch settings for duel-many.
type MonteCarloConfig struct {
	Samples int `mapstructure:"samples"`
	Workers int `mapstructure:"workers"`
}

// ScriptingConfig holds Lua sandbox settings.
type ScriptingConfig struct {
	// InstructionLimit bounds the VM work per select_target call.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging    LoggingConfig    `mapstructure:"logging"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Actor      ActorConfig      `mapstructure:"actor"`
	Duel       DuelConfig       `mapstructure:"duel"`
	Encounter  EncounterConfig  `mapstructure:"encounter"`
	MonteCarlo MonteCarloConfig `mapstructure:"montecarlo"`
	Scripting  ScriptingConfig  `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateSimulation(c.Simulation); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateActor(c.Actor); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Duel.MaxRounds < 1 {
		errs = append(errs, fmt.Sprintf("duel.max_rounds must be >= 1, got %d", c.Duel.MaxRounds))
	}
	if err := validateEncounter(c.Encounter); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateMonteCarlo(c.MonteCarlo); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Scripting.InstructionLimit < 1 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 1, got %d", c.Scripting.InstructionLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	if l.Output == "" {
		return errors.New("logging.output must not be empty")
	}
	return nil
}

func validateSimulation(s SimulationConfig) error {
	var errs []string
	if _, err := dice.ParseMode(s.Advantage); err != nil {
		errs = append(errs, fmt.Sprintf("simulation.advantage must be one of [normal, advantage, adv, disadvantage, dis], got %q", s.Advantage))
	}
	if s.PotionHeal < 1 {
		errs = append(errs, fmt.Sprintf("simulation.potion_heal must be >= 1, got %d", s.PotionHeal))
	}
	if s.ShortRestHeal < 1 {
		errs = append(errs, fmt.Sprintf("simulation.short_rest_heal must be >= 1, got %d", s.ShortRestHeal))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateActor(a ActorConfig) error {
	var errs []string
	if a.HP < 1 {
		errs = append(errs, fmt.Sprintf("actor.hp must be >= 1, got %d", a.HP))
	}
	if a.AC < 0 {
		errs = append(errs, fmt.Sprintf("actor.ac must be >= 0, got %d", a.AC))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateEncounter(e EncounterConfig) error {
	var errs []string
	if e.MaxRounds < 1 {
		errs = append(errs, fmt.Sprintf("encounter.max_rounds must be >= 1, got %d", e.MaxRounds))
	}
	validFocus := map[string]bool{"first": true, "lowest": true, "random": true, "script": true}
	if !validFocus[strings.ToLower(e.Focus)] {
		errs = append(errs, fmt.Sprintf("encounter.focus must be one of [first, lowest, random, script], got %q", e.Focus))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateMonteCarlo(m MonteCarloConfig) error {
	var errs []string
	if m.Samples < 0 {
		errs = append(errs, fmt.Sprintf("montecarlo.samples must be >= 0, got %d", m.Samples))
	}
	if m.Workers < 1 {
		errs = append(errs, fmt.Sprintf("montecarlo.workers must be >= 1, got %d", m.Workers))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// New returns a Viper instance with defaults and SOLO5E_ environment
// overrides applied. When path is non-empty the YAML file at path is read.
//
// Postcondition: Returns a configured *viper.Viper or a non-nil error.
func New(path string) (*viper.Viper, error) {
	v := viper.New()

	// Environment variable overrides with SOLO5E_ prefix
	v.SetEnvPrefix("SOLO5E")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return v, nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v, err := New(path)
	if err != nil {
		return Config{}, err
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("simulation.seed", 42)
	v.SetDefault("simulation.advantage", "normal")
	v.SetDefault("simulation.proficient", true)
	v.SetDefault("simulation.two_handed", false)
	v.SetDefault("simulation.auto_potion", false)
	v.SetDefault("simulation.potion_heal", 7)
	v.SetDefault("simulation.short_rest", false)
	v.SetDefault("simulation.short_rest_heal", 5)

	v.SetDefault("actor.hp", 12)
	v.SetDefault("actor.ac", 16)

	v.SetDefault("duel.max_rounds", 30)

	v.SetDefault("encounter.max_rounds", 120)
	v.SetDefault("encounter.focus", "first")

	v.SetDefault("montecarlo.samples", 50)
	v.SetDefault("montecarlo.workers", 4)

	v.SetDefault("scripting.instruction_limit", 100000)
}
