// Package config loads and validates the attack-bench run configuration,
// adapted from the teacher's pkg/config/config.go (yaml.v3-backed,
// construct-time Validate()).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoggingConfig mirrors internal/logging.Config's on-disk shape.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MetricsConfig controls the optional Prometheus exporter (§4.12).
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// AttackConfig carries attack parameters that Validate checks. The
// bruteforce and birthdays subcommands take their values from their own
// flags and do not read this section.
type AttackConfig struct {
	HashSize     int     `yaml:"hash_size"`
	Threads      int     `yaml:"threads"`
	Probability  float64 `yaml:"probability"`
	VerboseRatio float64 `yaml:"verbose_ratio"`
}

// HellmanConfig carries table-store parameters that Validate checks. The
// hellman subcommands take their values from their own flags and do not
// read this section.
type HellmanConfig struct {
	TableDir     string `yaml:"table_dir"`
	PrefixSize   int    `yaml:"prefix_size"`
	ChainCount   uint64 `yaml:"chain_count"`
	ChainLength  uint64 `yaml:"chain_length"`
	TablesWanted int    `yaml:"tables_wanted"`
	BatchSize    int    `yaml:"batch_size"`
	Format       string `yaml:"format"`
}

// RunConfig is the root on-disk configuration document.
type RunConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Attack  AttackConfig  `yaml:"attack"`
	Hellman HellmanConfig `yaml:"hellman"`
}

// DefaultConfig mirrors the teacher's DefaultConfig: every field set to a
// sane standalone-run value, valid on its own without a config file.
func DefaultConfig() RunConfig {
	return RunConfig{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Metrics: MetricsConfig{Enabled: false, Addr: ":9090"},
		Attack: AttackConfig{
			HashSize:     1,
			Threads:      1,
			Probability:  0.95,
			VerboseRatio: 0.01,
		},
		Hellman: HellmanConfig{
			TableDir:     "./tables",
			PrefixSize:   2,
			ChainCount:   1000,
			ChainLength:  1000,
			TablesWanted: 1,
			BatchSize:    1,
			Format:       "bin",
		},
	}
}

// Load reads and validates a RunConfig from path, starting from
// DefaultConfig so a partial file only needs to override what it cares
// about.
func Load(path string) (RunConfig, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RunConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(cfg RunConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate enforces every invariant a downstream package assumes holds
// (§4.1's 1<=s<=20, §4.3's non-zero thread count and open probability
// interval), so a bad config fails fast at load time rather than deep
// inside a worker goroutine.
func (c RunConfig) Validate() error {
	if c.Attack.HashSize < 1 || c.Attack.HashSize > 20 {
		return fmt.Errorf("attack.hash_size must be in [1, 20], got %d", c.Attack.HashSize)
	}
	if c.Attack.Threads < 1 {
		return fmt.Errorf("attack.threads must be >= 1, got %d", c.Attack.Threads)
	}
	if c.Attack.Probability <= 0 || c.Attack.Probability >= 1 {
		return fmt.Errorf("attack.probability must be in (0, 1), got %f", c.Attack.Probability)
	}
	if c.Attack.VerboseRatio < 0 || c.Attack.VerboseRatio > 1 {
		return fmt.Errorf("attack.verbose_ratio must be in [0, 1], got %f", c.Attack.VerboseRatio)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}

	if c.Hellman.TableDir == "" {
		return fmt.Errorf("hellman.table_dir must not be empty")
	}
	if c.Hellman.PrefixSize < 1 {
		return fmt.Errorf("hellman.prefix_size must be >= 1, got %d", c.Hellman.PrefixSize)
	}
	if c.Hellman.ChainCount < 1 {
		return fmt.Errorf("hellman.chain_count must be >= 1, got %d", c.Hellman.ChainCount)
	}
	if c.Hellman.ChainLength < 1 {
		return fmt.Errorf("hellman.chain_length must be >= 1, got %d", c.Hellman.ChainLength)
	}
	if c.Hellman.TablesWanted < 1 {
		return fmt.Errorf("hellman.tables_wanted must be >= 1, got %d", c.Hellman.TablesWanted)
	}
	if c.Hellman.BatchSize < 1 {
		return fmt.Errorf("hellman.batch_size must be >= 1, got %d", c.Hellman.BatchSize)
	}
	switch c.Hellman.Format {
	case "bin", "json":
	default:
		return fmt.Errorf("hellman.format must be bin or json, got %q", c.Hellman.Format)
	}

	return nil
}
