// Package config handles configuration loading for prepush.
// It layers built-in defaults, an XDG user config, and the project-level
// .prepush.yaml check manifest.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"
)

// ProjectFileName is the project-level check manifest at the workspace root.
const ProjectFileName = ".prepush.yaml"

// Config holds the resolved settings for one verification run. It is built
// once at startup and handed read-only to every component.
type Config struct {
	// RootDir is the workspace root containing Cargo.toml.
	RootDir string `mapstructure:"-"`

	// CheckTimeout bounds each individual check command.
	CheckTimeout time.Duration `mapstructure:"check_timeout"`

	// BaselineFile is where benchmark history is recorded. Relative paths
	// are resolved against RootDir.
	BaselineFile string `mapstructure:"baseline_file"`

	// CriterionDir is where cargo bench writes its measurements. Relative
	// paths are resolved against RootDir.
	CriterionDir string `mapstructure:"criterion_dir"`

	// DebugLog enables the append-only run log under .prepush/logs.
	DebugLog bool `mapstructure:"debug_log"`

	// UpdateBaseline force-records the run's measurements. Set from the
	// command line, never from a file.
	UpdateBaseline bool `mapstructure:"-"`

	// ExtraChecks are user checks appended to the native and wasm lanes,
	// read from the project's .prepush.yaml.
	ExtraChecks []ExtraCheck `mapstructure:"-"`
}

// ExtraCheck is one user-supplied check from .prepush.yaml.
type ExtraCheck struct {
	// Lane names the lane the check joins: "native" or "wasm".
	Lane string `yaml:"lane"`
	// Name is the display name.
	Name string `yaml:"name"`
	// Command is the argument vector to run.
	Command []string `yaml:"command"`
}

// prepushFile represents the .prepush.yaml configuration file structure.
type prepushFile struct {
	Checks []ExtraCheck `yaml:"checks"`
}

// Load builds the configuration for a run rooted at rootDir.
// Precedence (highest to lowest):
// 1. Project manifest (.prepush.yaml at the root, extra checks only)
// 2. User config (~/.config/prepush/config.yaml)
// 3. Built-in defaults
func Load(rootDir string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(getUserConfigDir())

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading user config: %w", err)
		}
	}

	return finish(v, rootDir)
}

// LoadFromPath builds the configuration from a specific config file (for
// testing).
func LoadFromPath(rootDir, path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}

	return finish(v, rootDir)
}

// finish unmarshals the viper state, resolves paths, and attaches the
// project manifest.
func finish(v *viper.Viper, rootDir string) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.RootDir = rootDir
	cfg.BaselineFile = resolve(rootDir, cfg.BaselineFile)
	cfg.CriterionDir = resolve(rootDir, cfg.CriterionDir)

	checks, err := loadProjectChecks(filepath.Join(rootDir, ProjectFileName))
	if err != nil {
		return nil, err
	}
	cfg.ExtraChecks = checks

	return cfg, nil
}

// Default returns a Config with built-in defaults, rooted at rootDir.
func Default(rootDir string) *Config {
	return &Config{
		RootDir:      rootDir,
		CheckTimeout: 10 * time.Minute,
		BaselineFile: filepath.Join(rootDir, ".bench-baselines", "history.json"),
		CriterionDir: filepath.Join(rootDir, "target", "criterion"),
	}
}

// GetUserConfigPath returns the path to the user config file.
func GetUserConfigPath() string {
	return filepath.Join(getUserConfigDir(), "config.yaml")
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("check_timeout", "10m")
	v.SetDefault("baseline_file", filepath.Join(".bench-baselines", "history.json"))
	v.SetDefault("criterion_dir", filepath.Join("target", "criterion"))
	v.SetDefault("debug_log", false)
}

// resolve anchors a relative path at the workspace root.
func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}

// getUserConfigDir returns the XDG config directory for prepush.
func getUserConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "prepush")
	}

	// Fall back to ~/.config/prepush
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "prepush")
	}
	return filepath.Join(home, ".config", "prepush")
}

// loadProjectChecks reads extra lane checks from the project manifest.
// A missing manifest is fine; a malformed one is an error.
func loadProjectChecks(path string) ([]ExtraCheck, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	var pf prepushFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	for i, c := range pf.Checks {
		if c.Name == "" || len(c.Command) == 0 {
			return nil, fmt.Errorf("%s: check %d needs a name and a command", filepath.Base(path), i)
		}
		switch strings.ToLower(c.Lane) {
		case "native", "wasm":
		default:
			return nil, fmt.Errorf("%s: check %q names unknown lane %q", filepath.Base(path), c.Name, c.Lane)
		}
	}

	return pf.Checks, nil
}
