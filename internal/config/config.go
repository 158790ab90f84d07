package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds the settings shared by every logpipe command.
type Config struct {
	LogLevel string        `toml:"log_level" env:"LOGPIPE_LOG_LEVEL"`
	Augment  AugmentConfig `toml:"augment"`
	Pretty   PrettyConfig  `toml:"pretty"`
}

// AugmentConfig configures the augment command.
type AugmentConfig struct {
	AppendHostname   bool `toml:"append_hostname" env:"LOGPIPE_APPEND_HOSTNAME"`
	AppendInstanceID bool `toml:"append_instance_id" env:"LOGPIPE_APPEND_INSTANCE_ID"`
	ExcludeOrphans   bool `toml:"exclude_orphans" env:"LOGPIPE_EXCLUDE_ORPHANS"`
}

// PrettyConfig configures the pretty-print command.
type PrettyConfig struct {
	OutputFormat string `toml:"output_format" env:"LOGPIPE_OUTPUT_FORMAT"`
	UseColors    string `toml:"use_colors" env:"LOGPIPE_USE_COLORS"`
	Filter       string `toml:"filter" env:"LOGPIPE_FILTER"`
	Head         int    `toml:"head" env:"LOGPIPE_HEAD"`
	Lag          int    `toml:"lag" env:"LOGPIPE_LAG"`
}

const (
	defaultConfigPath   = "~/.config/logpipe/config.toml"
	defaultLogLevel     = "warn"
	defaultOutputFormat = "pretty"
	defaultUseColors    = "auto"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: defaultLogLevel,
		Pretty: PrettyConfig{
			OutputFormat: defaultOutputFormat,
			UseColors:    defaultUseColors,
		},
	}
}

// Load reads the config file at path (or the default location), then applies
// LOGPIPE_* environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	bytes, err := readFile(resolved)
	if err != nil {
		return Config{}, err
	}
	if bytes != nil {
		if err := toml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read environment: %w", err)
	}

	cfg.normalize()
	if cfg.Pretty.Head < 0 || cfg.Pretty.Lag < 0 {
		return Config{}, fmt.Errorf("head and lag must not be negative")
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.LogLevel = strings.TrimSpace(c.LogLevel)
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	c.Pretty.OutputFormat = strings.TrimSpace(c.Pretty.OutputFormat)
	if c.Pretty.OutputFormat == "" {
		c.Pretty.OutputFormat = defaultOutputFormat
	}
	c.Pretty.UseColors = strings.TrimSpace(c.Pretty.UseColors)
	if c.Pretty.UseColors == "" {
		c.Pretty.UseColors = defaultUseColors
	}
	c.Pretty.Filter = strings.TrimSpace(c.Pretty.Filter)
}

func readFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return bytes, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
