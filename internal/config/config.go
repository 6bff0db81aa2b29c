// Package config provides Viper-based configuration loading for Deckbound.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings for encounter-result
// persistence.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GameConfig holds the encounter engine's tunables.
type GameConfig struct {
	// HandSize is the number of cards drawn at the start of each turn.
	HandSize int `mapstructure:"hand_size"`
	// MaxEnergy is the per-turn energy budget.
	MaxEnergy int `mapstructure:"max_energy"`
	// StartingHP is the player's hit points entering an encounter.
	StartingHP int `mapstructure:"starting_hp"`
	// MaxHP is the player's hit point ceiling.
	MaxHP int `mapstructure:"max_hp"`
	// Region selects which region's damage modifiers apply; empty disables
	// regional modifiers.
	Region string `mapstructure:"region"`
	// Corruption is the run's corruption level, >= 0.
	Corruption int `mapstructure:"corruption"`
}

// ContentConfig holds the on-disk content locations.
type ContentConfig struct {
	// CardsDir contains card template YAML files.
	CardsDir string `mapstructure:"cards_dir"`
	// EnemiesDir contains enemy template YAML files.
	EnemiesDir string `mapstructure:"enemies_dir"`
	// RegionsDir contains region modifier YAML files.
	RegionsDir string `mapstructure:"regions_dir"`
	// ScriptsDir contains Lua behavior precondition scripts.
	ScriptsDir string `mapstructure:"scripts_dir"`
	// ScriptInstructionLimit caps Lua VM instructions per load; 0 uses the
	// scripting package default.
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Game     GameConfig     `mapstructure:"game"`
	Content  ContentConfig  `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateDatabase(d DatabaseConfig) error {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
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
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.HandSize < 1 {
		errs = append(errs, fmt.Sprintf("game.hand_size must be >= 1, got %d", g.HandSize))
	}
	if g.MaxEnergy < 1 {
		errs = append(errs, fmt.Sprintf("game.max_energy must be >= 1, got %d", g.MaxEnergy))
	}
	if g.StartingHP < 1 {
		errs = append(errs, fmt.Sprintf("game.starting_hp must be >= 1, got %d", g.StartingHP))
	}
	if g.MaxHP < g.StartingHP {
		errs = append(errs, fmt.Sprintf("game.max_hp (%d) must be >= game.starting_hp (%d)", g.MaxHP, g.StartingHP))
	}
	if g.Corruption < 0 {
		errs = append(errs, fmt.Sprintf("game.corruption must be >= 0, got %d", g.Corruption))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.CardsDir == "" {
		errs = append(errs, "content.cards_dir must not be empty")
	}
	if c.EnemiesDir == "" {
		errs = append(errs, "content.enemies_dir must not be empty")
	}
	if c.ScriptInstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("content.script_instruction_limit must be >= 0, got %d", c.ScriptInstructionLimit))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DECKBOUND_ prefix
	v.SetEnvPrefix("DECKBOUND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
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
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "deckbound")
	v.SetDefault("database.password", "deckbound")
	v.SetDefault("database.name", "deckbound")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("game.hand_size", 5)
	v.SetDefault("game.max_energy", 3)
	v.SetDefault("game.starting_hp", 70)
	v.SetDefault("game.max_hp", 80)
	v.SetDefault("game.corruption", 0)

	v.SetDefault("content.cards_dir", "content/cards")
	v.SetDefault("content.enemies_dir", "content/enemies")
	v.SetDefault("content.regions_dir", "content/regions")
	v.SetDefault("content.scripts_dir", "content/scripts")
	v.SetDefault("content.script_instruction_limit", 0)
}
