// Package config loads exelaunch settings from a JSON file and the
// environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "EXELAUNCH_"

// configFileName is the name of the config file
const configFileName = "exelaunch.json"

// Config holds the application configuration
type Config struct {
	CatalogPath   string `json:"catalog_path" env:"CATALOG_PATH"`     // Catalog document
	LogPath       string `json:"log_path" env:"LOG_PATH"`             // Log file for interactive sessions
	Backups       int    `json:"backups" env:"BACKUPS"`               // Previous documents to keep, 0 disables
	History       bool   `json:"history" env:"HISTORY"`               // Commit every flush to a git repository
	DefaultMarker string `json:"default_marker" env:"DEFAULT_MARKER"` // Marker for entries added without one
	LaunchShell   string `json:"launch_shell" env:"LAUNCH_SHELL"`     // Run launch paths through this shell
	Editor        string `json:"editor" env:"EDITOR"`                 // "auto", cursor, code, zed or a command
	FirstRun      bool   `json:"-" env:"-"`                           // No config file was found
}

// Default returns the default configuration
func Default() *Config {
	dir := ConfigDir()
	return &Config{
		CatalogPath:   filepath.Join(dir, "catalog.json"),
		LogPath:       filepath.Join(dir, "exelaunch.log"),
		Backups:       5,
		History:       false,
		DefaultMarker: "📁",
		Editor:        "auto",
		FirstRun:      true,
	}
}

// ConfigDir returns the directory containing exelaunch files
func ConfigDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "exelaunch")
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	return filepath.Join(ConfigDir(), configFileName)
}

// Load reads the config file at path (ConfigPath when empty), falls back to
// defaults for missing fields and applies EXELAUNCH_* environment overrides.
func Load(path string) (*Config, error) {
	fileCfg, err := loadFile(path)
	if err != nil {
		return nil, err
	}

	envCfg := &Config{}
	if err := env.ParseWithOptions(envCfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	if err := mergo.Merge(fileCfg, envCfg, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging configs: %w", err)
	}

	fileCfg.expandPaths()
	return fileCfg, fileCfg.Validate()
}

func loadFile(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run - keep the defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.FirstRun = false
	return cfg, nil
}

// Save writes the configuration to path (ConfigPath when empty).
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.CatalogPath) == "" {
		errs = append(errs, errors.New("catalog_path must not be empty"))
	}
	if c.Backups < 0 {
		errs = append(errs, fmt.Errorf("backups must not be negative, got %d", c.Backups))
	}
	if strings.TrimSpace(c.DefaultMarker) == "" {
		errs = append(errs, errors.New("default_marker must not be empty"))
	}
	return errors.Join(errs...)
}

// HistoryDir returns the git repository used for catalog history.
func (c *Config) HistoryDir() string {
	return filepath.Dir(c.CatalogPath)
}

func (c *Config) expandPaths() {
	c.CatalogPath = expandHome(c.CatalogPath)
	c.LogPath = expandHome(c.LogPath)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}
	return path
}
