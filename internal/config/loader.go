package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load loads the arena configuration.
// Search order: customPath -> ~/.arena/arena.yaml -> ./configs/arena.yaml -> embedded default.
// Files only need to carry the keys they override.
func Load(customPath string) (Config, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("arena.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if parsed, ok := parse(data); ok {
				return parsed, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/arena.yaml"); err == nil {
		if parsed, ok := parse(data); ok {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	if parsed, ok := parse(defaultArenaYAML); ok {
		return parsed, nil
	}
	return Default(), nil // Fallback to hardcoded if embed fails
}

func parse(data []byte) (Config, bool) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, cfg.Validate() == nil
}

// Validate rejects configurations the simulation cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		errs = append(errs, errors.New("map dimensions must be positive"))
	}
	if c.Map.WaterMargin < 0 || c.Map.WaterMargin >= c.Map.Height {
		errs = append(errs, errors.New("water margin must lie inside the map"))
	}
	if c.Physics.TickRate <= 0 {
		errs = append(errs, errors.New("tick rate must be positive"))
	}
	if c.Physics.MaxSteps <= 0 || c.Physics.QuickMaxSteps <= 0 {
		errs = append(errs, errors.New("step caps must be positive"))
	}
	if c.Worm.HP <= 0 || c.Worm.Radius <= 0 {
		errs = append(errs, errors.New("worm hp and radius must be positive"))
	}
	if c.Teams.Size <= 0 {
		errs = append(errs, errors.New("team size must be positive"))
	}
	if c.Match.MaxTurns <= 0 {
		errs = append(errs, errors.New("max turns must be positive"))
	}
	if c.Match.MoveStepSize <= 0 {
		errs = append(errs, errors.New("move step size must be positive"))
	}
	if c.Scheduler.Slots <= 0 {
		errs = append(errs, errors.New("scheduler needs at least one slot"))
	}
	return errors.Join(errs...)
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arena", filename)
}
