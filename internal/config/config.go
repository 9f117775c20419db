package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the server configuration.
type Config struct {
	// DataPath is the source CSV location.
	DataPath string `mapstructure:"data_path" yaml:"data_path"`
	// ListenAddr is the HTTP bind address.
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`
	// ReferenceYear is the fixed base year for store-age derivation.
	// A constant, not wall-clock time, so dashboards are reproducible.
	ReferenceYear int `mapstructure:"reference_year" yaml:"reference_year"`
}

// Load reads configuration from file, env, and defaults.
// Precedence: flags (applied by the caller) > env > config file > defaults.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MARTDASH")
	v.AutomaticEnv()

	v.SetDefault("data_path", "Big_Mart.csv")
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("reference_year", 2025)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".martdash"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine; defaults and env carry it.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the invariants a running server depends on.
func (c *Config) Validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("data_path must not be empty")
	}
	if c.ListenAddr == "" {
		return fmt.Errorf("listen_addr must not be empty")
	}
	if c.ReferenceYear <= 0 {
		return fmt.Errorf("reference_year must be positive, got %d", c.ReferenceYear)
	}
	return nil
}

// Save writes the configuration to cfgFile, or ~/.martdash/config.yaml
// when cfgFile is empty, creating the directory if necessary.
func Save(c *Config, cfgFile string) error {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".martdash")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
