// Package unit holds the repair-floor configuration and the template for
// new unit sheets. The engine packages never import it; everything here is
// vocabulary and wiring around them.
package unit

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config errors.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigInvalid  = errors.New("invalid config file")

	errUnitsDirEmpty = errors.New("units_dir cannot be empty")
)

// ConfigFileName is the project config file name.
const ConfigFileName = ".rework.json"

// Config holds all configuration options. Files are hujson: comments and
// trailing commas are fine.
type Config struct {
	UnitsDir    string `json:"units_dir"`
	ActionsFile string `json:"actions_file,omitempty"`
	Editor      string `json:"editor,omitempty"`
}

// ConfigSources tracks which config files were actually loaded.
type ConfigSources struct {
	Global  string // global config path if loaded, empty otherwise
	Project string // project/explicit config path if loaded, empty otherwise
}

// DefaultConfig returns the defaults.
func DefaultConfig() Config {
	return Config{UnitsDir: "units"}
}

// LoadConfig loads configuration with the following precedence (highest
// wins):
//  1. Defaults
//  2. Global user config ($XDG_CONFIG_HOME/rework/config.json, else
//     ~/.config/rework/config.json)
//  3. Project config (.rework.json in workDir, if present)
//  4. Explicit config file via configPath (must exist when set)
//  5. CLI overrides (non-empty fields of overrides)
func LoadConfig(workDir, configPath string, overrides Config, env map[string]string) (Config, ConfigSources, error) {
	cfg := DefaultConfig()

	var sources ConfigSources

	globalCfg, globalPath, err := loadGlobalConfig(env)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, configPath)
	if err != nil {
		return Config{}, ConfigSources{}, err
	}

	sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	cfg = mergeConfig(cfg, overrides)

	if cfg.UnitsDir == "" {
		return Config{}, ConfigSources{}, fmt.Errorf("%w: %w", ErrConfigInvalid, errUnitsDirEmpty)
	}

	return cfg, sources, nil
}

// globalConfigPath resolves the global config location. Returns "" when no
// home directory can be determined.
func globalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "rework", "config.json")
	}

	home, err := os.UserHomeDir()
	if err == nil {
		return filepath.Join(home, ".config", "rework", "config.json")
	}

	return ""
}

func loadGlobalConfig(env map[string]string) (Config, string, error) {
	path := globalConfigPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadConfigFile(path, false)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	path := configPath
	mustExist := configPath != ""

	if path == "" {
		path = ConfigFileName
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(workDir, path)
	}

	cfg, loaded, err := loadConfigFile(path, mustExist)
	if err != nil {
		return Config{}, "", err
	}

	if !loaded {
		return Config{}, "", nil
	}

	return cfg, path, nil
}

// loadConfigFile reads one hujson config file. Returns loaded=false when
// the file does not exist and mustExist is false.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return Config{}, false, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}

			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("reading config %s: %w", path, err)
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	// Detect an explicit empty units_dir, which merging would silently
	// ignore.
	var raw map[string]json.RawMessage

	err = json.Unmarshal(standardized, &raw)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	if val, ok := raw["units_dir"]; ok && string(val) == `""` {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, errUnitsDirEmpty)
	}

	var cfg Config

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

// mergeConfig overlays non-empty fields of overlay onto base.
func mergeConfig(base, overlay Config) Config {
	if overlay.UnitsDir != "" {
		base.UnitsDir = overlay.UnitsDir
	}

	if overlay.ActionsFile != "" {
		base.ActionsFile = overlay.ActionsFile
	}

	if overlay.Editor != "" {
		base.Editor = overlay.Editor
	}

	return base
}
