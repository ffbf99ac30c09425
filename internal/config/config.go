package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

var (
	// ErrConfigRead wraps any failure to read or parse the user config file.
	// It is never fatal: Load still returns usable defaults alongside it.
	ErrConfigRead = errors.New("reading config")

	// ErrConfigExists is returned by WriteStarter when a config file is already present.
	ErrConfigExists = errors.New("config file already exists")
)

// Config holds the user settings from python_venv_config.toml.
type Config struct {
	Directories []string   `mapstructure:"directories" toml:"directories"`
	Scan        ScanConfig `mapstructure:"scan" toml:"scan"`
	Log         LogConfig  `mapstructure:"log" toml:"log"`

	// Source is the config file the values came from; empty when defaults were used.
	Source string `mapstructure:"-" toml:"-"`
}

// ScanConfig tunes the full home-directory scan.
type ScanConfig struct {
	Workers int      `mapstructure:"workers" toml:"workers"` // 0 = one per CPU
	Exclude []string `mapstructure:"exclude" toml:"exclude"` // doublestar globs relative to home
}

// LogConfig holds logging configuration
type LogConfig struct {
	Format string `mapstructure:"format" toml:"format"` // "console", "text" or "json"
	Level  string `mapstructure:"level" toml:"level"`   // "debug", "info", "warn", "error"
}

// Load reads the config file at path, applies APE_* environment overrides
// and fills in defaults. A missing file is not an error. A file that cannot
// be read or parsed yields defaults plus an error wrapping ErrConfigRead.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("directories", []string{})
	v.SetDefault("scan.workers", 0)
	v.SetDefault("scan.exclude", []string{})
	v.SetDefault("log.format", "console")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix("APE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var readErr error
	source := ""
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				readErr = fmt.Errorf("%w %s: %v", ErrConfigRead, path, err)
			} else {
				source = path
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			readErr = fmt.Errorf("%w %s: %v", ErrConfigRead, path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Bad values (e.g. a string for scan.workers) fall back to defaults too.
		return Default(), fmt.Errorf("%w %s: %v", ErrConfigRead, path, err)
	}
	cfg.Source = source
	return &cfg, readErr
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Directories: []string{},
		Scan:        ScanConfig{Exclude: []string{}},
		Log:         LogConfig{Format: "console", Level: "info"},
	}
}

// Starter returns the configuration written by WriteStarter: the built-in
// search list spelled with the %USERPROFILE% placeholder so it stays portable.
func Starter() *Config {
	cfg := Default()
	cfg.Directories = PredefinedDirs(HomePlaceholder)
	return cfg
}

// TOML renders cfg as a TOML document.
func (c *Config) TOML() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteStarter writes cfg to path, creating parent directories as needed.
// It never overwrites an existing file.
func WriteStarter(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := cfg.TOML()
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
