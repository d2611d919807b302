// Package config loads server configuration with viper, layering
// defaults, an optional config file, environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"textsaver/internal/saver"
)

const (
	envPrefix      = "TEXTSAVER"
	configDirName  = ".textsaver"
	configFileName = "config"
)

// Config holds the full server configuration.
type Config struct {
	// SaveDir is the base directory all files are written into.
	SaveDir string

	// MaxTextSize is the payload limit in bytes.
	MaxTextSize int64

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// NewViper creates a viper instance with defaults, env bindings and the
// optional config file (~/.textsaver/config.yaml) registered.
//
// Precedence, low to high: defaults < config file < environment < flags
// bound by the CLI.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("save_dir", "")
	v.SetDefault("max_text_size", int64(saver.DefaultMaxTextSize))
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, configDirName))
	}

	return v
}

// Load reads the config file if present and unmarshals the effective
// configuration. A missing config file is not an error; a malformed
// one is.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// Typed getters rather than Unmarshal: environment values arrive
	// as strings and the getters cast them.
	cfg := &Config{
		SaveDir:     v.GetString("save_dir"),
		MaxTextSize: v.GetInt64("max_text_size"),
		LogLevel:    v.GetString("log_level"),
	}

	if strings.TrimSpace(cfg.SaveDir) == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolving working directory: %w", err)
		}
		cfg.SaveDir = cwd
	}
	if cfg.MaxTextSize <= 0 {
		cfg.MaxTextSize = saver.DefaultMaxTextSize
	}

	return cfg, nil
}

// Validate checks that the save directory exists and is writable. The
// server refuses to start otherwise; it never creates the directory.
func (c *Config) Validate() error {
	info, err := os.Stat(c.SaveDir)
	if err != nil {
		return fmt.Errorf("save directory %q: %w", c.SaveDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("save directory %q is not a directory", c.SaveDir)
	}

	probe, err := os.CreateTemp(c.SaveDir, ".textsaver-probe-*")
	if err != nil {
		return fmt.Errorf("save directory %q is not writable: %w", c.SaveDir, err)
	}
	probe.Close()
	os.Remove(probe.Name())

	return nil
}
