// Package config loads the cubetwist configuration file.
//
// Configuration is merged with priority: environment > file > defaults.
// The file is YAML and optional; a missing file yields the defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/cubetwist"
)

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Config holds every user-tunable setting.
type Config struct {
	// Size is the puzzle size the game starts with.
	Size int `yaml:"size"`

	// Animation times.
	MoveDuration     time.Duration `yaml:"move_duration"`
	ScrambleDuration time.Duration `yaml:"scramble_duration"`

	// ScrambleLength overrides the 20 + 5N default when positive.
	ScrambleLength int `yaml:"scramble_length"`

	// InputBacklog is the number of queued moves tolerated before input
	// is dropped.
	InputBacklog int `yaml:"input_backlog"`

	// PlayerName pre-fills the ranking prompt.
	PlayerName string `yaml:"player_name"`

	// MetricsAddr serves Prometheus metrics when set, e.g. ":9120".
	MetricsAddr string `yaml:"metrics_addr"`

	// LogDir holds the diagnostic log and session logs.
	LogDir string `yaml:"log_dir"`

	// SessionLogs enables JSONL session logs.
	SessionLogs bool `yaml:"session_logs"`

	// Layouts overrides key layouts per puzzle size.
	Layouts map[int]cubetwist.KeyLayout `yaml:"layouts,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Size:             3,
		MoveDuration:     cubetwist.DefaultDuration,
		ScrambleDuration: cubetwist.ScrambleDuration,
		InputBacklog:     cubetwist.DefaultInputBacklog,
		PlayerName:       "",
		LogDir:           defaultLogDir(),
		SessionLogs:      true,
	}
}

func defaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "cubetwist", "logs")
	}
	return filepath.Join(home, ".cubetwist", "logs")
}

// DefaultPath returns the default config file path.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".cubetwist", "config.yaml"), nil
}

// Load reads the configuration at path on top of the defaults and applies
// environment overrides. An empty path or a missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	loadFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("CUBETWIST_SIZE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Size = i
		}
	}
	if v := os.Getenv("CUBETWIST_MOVE_DURATION"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.MoveDuration = d
		}
	}
	if v := os.Getenv("CUBETWIST_PLAYER"); v != "" {
		cfg.PlayerName = v
	}
	if v := os.Getenv("CUBETWIST_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("CUBETWIST_LOG_DIR"); v != "" {
		cfg.LogDir = v
	}
}

// Validate checks ranges and key layouts.
func (c Config) Validate() error {
	if c.Size < cubetwist.MinSize || c.Size > cubetwist.MaxSize {
		return fmt.Errorf("%w: size %d outside %d..%d", ErrInvalid, c.Size, cubetwist.MinSize, cubetwist.MaxSize)
	}
	if c.MoveDuration < 0 || c.ScrambleDuration < 0 {
		return fmt.Errorf("%w: durations must not be negative", ErrInvalid)
	}
	if c.InputBacklog < 0 || c.ScrambleLength < 0 {
		return fmt.Errorf("%w: counts must not be negative", ErrInvalid)
	}
	for size, l := range c.Layouts {
		if err := l.Validate(size); err != nil {
			return fmt.Errorf("%w: layout for size %d: %v", ErrInvalid, size, err)
		}
	}
	return nil
}

// GameOptions converts the configuration into cubetwist game options.
func (c Config) GameOptions(logger *slog.Logger) []cubetwist.Option {
	opts := []cubetwist.Option{
		cubetwist.WithLogger(logger),
		cubetwist.WithMoveDuration(c.MoveDuration),
		cubetwist.WithScrambleDuration(c.ScrambleDuration),
		cubetwist.WithScrambleLength(c.ScrambleLength),
		cubetwist.WithInputBacklog(c.InputBacklog),
	}
	for size, l := range c.Layouts {
		opts = append(opts, cubetwist.WithKeyLayout(size, l))
	}
	return opts
}

// Save writes the configuration as YAML, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
