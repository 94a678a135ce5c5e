// Package config provides Viper-based configuration loading for the battle engine.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	// Enabled turns trainer persistence on. The remaining fields are only
	// validated when it is set.
	Enabled         bool          `mapstructure:"enabled"`
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
	// AuditDice logs every random draw at debug level.
	AuditDice bool `mapstructure:"audit_dice"`
}

// BattleConfig holds encounter, reward and pacing tuning.
type BattleConfig struct {
	ShinyChance     float64       `mapstructure:"shiny_chance"`
	DisguiseChance  float64       `mapstructure:"disguise_chance"`
	DisguiseForm    string        `mapstructure:"disguise_form"`
	LootChance      float64       `mapstructure:"loot_chance"`
	PartyLimit      int           `mapstructure:"party_limit"`
	StarterLevel    float64       `mapstructure:"starter_level"`
	WildTurnDelay   time.Duration `mapstructure:"wild_turn_delay"`
	FaintClearDelay time.Duration `mapstructure:"faint_clear_delay"`
	FleeDelay       time.Duration `mapstructure:"flee_delay"`
}

// ContentConfig locates the species, move, route and talent tables.
type ContentConfig struct {
	Dir string `mapstructure:"dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Battle   BattleConfig   `mapstructure:"battle"`
	Content  ContentConfig  `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if c.Database.Enabled {
		if err := validateDatabase(c.Database); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBattle(c.Battle); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Content.Dir == "" {
		errs = append(errs, "content.dir must not be empty")
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

func validateBattle(b BattleConfig) error {
	var errs []string
	for name, p := range map[string]float64{
		"battle.shiny_chance":    b.ShinyChance,
		"battle.disguise_chance": b.DisguiseChance,
		"battle.loot_chance":     b.LootChance,
	} {
		if p < 0 || p > 1 {
			errs = append(errs, fmt.Sprintf("%s must be in [0, 1], got %g", name, p))
		}
	}
	if b.PartyLimit < 1 {
		errs = append(errs, fmt.Sprintf("battle.party_limit must be >= 1, got %d", b.PartyLimit))
	}
	if b.StarterLevel < 1 || b.StarterLevel > 50 {
		errs = append(errs, fmt.Sprintf("battle.starter_level must be 1-50, got %g", b.StarterLevel))
	}
	if b.WildTurnDelay < 0 || b.FaintClearDelay < 0 || b.FleeDelay < 0 {
		errs = append(errs, "battle delays must not be negative")
	}
	if len(errs) > 0 {
		sort.Strings(errs)
		return errors.New(strings.Join(errs, "; "))
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

	// Environment variable overrides with POCKET_ prefix
	v.SetEnvPrefix("POCKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
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

// SetDefaults installs the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "pocket")
	v.SetDefault("database.password", "pocket")
	v.SetDefault("database.name", "pocket")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.audit_dice", false)

	v.SetDefault("battle.shiny_chance", 0.5)
	v.SetDefault("battle.disguise_chance", 0.1)
	v.SetDefault("battle.disguise_form", "Ditto")
	v.SetDefault("battle.loot_chance", 0.25)
	v.SetDefault("battle.party_limit", 30)
	v.SetDefault("battle.starter_level", 3)
	v.SetDefault("battle.wild_turn_delay", "500ms")
	v.SetDefault("battle.faint_clear_delay", "900ms")
	v.SetDefault("battle.flee_delay", "300ms")

	v.SetDefault("content.dir", "content")
}
