package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// envOverrides maps config keys to the environment variables that override them.
var envOverrides = []struct {
	key string
	env string
}{
	{"python", "VOICEUP_PYTHON"},
	{"pip", "VOICEUP_PIP"},
	{"requirements", "VOICEUP_REQUIREMENTS"},
	{"venv.name", "VOICEUP_VENV"},
}

// Loaded captures resolved config path, parsed values, and non-fatal warnings.
type Loaded struct {
	Path     string
	Config   Config
	Warnings []Warning
	Exists   bool
}

// Load resolves, reads, parses, and validates the runtime configuration.
//
// A .env file in the working directory, when present, is folded into the
// process environment first, so VOICEUP_* overrides can live next to the
// project being installed. Environment overrides win over the config file.
func Load(explicitPath string) (Loaded, error) {
	_ = godotenv.Load()

	resolvedPath, err := ResolvePath(explicitPath)
	if err != nil {
		return Loaded{}, err
	}

	loaded := Loaded{Path: resolvedPath, Config: Default()}

	content, err := os.ReadFile(resolvedPath)
	switch {
	case err == nil:
		cfg, warnings, parseErr := Parse(string(content), loaded.Config)
		if parseErr != nil {
			return Loaded{}, fmt.Errorf("parse config %q: %w", resolvedPath, parseErr)
		}
		loaded.Config = cfg
		loaded.Warnings = append(loaded.Warnings, warnings...)
		loaded.Exists = true
	case errors.Is(err, os.ErrNotExist):
		loaded.Warnings = append(loaded.Warnings, Warning{
			Message: fmt.Sprintf("config file %q not found; using defaults", resolvedPath),
		})
	default:
		return Loaded{}, fmt.Errorf("read config %q: %w", resolvedPath, err)
	}

	if err := applyEnvOverrides(&loaded.Config); err != nil {
		return Loaded{}, err
	}

	validateWarnings, err := Validate(loaded.Config)
	if err != nil {
		return Loaded{}, fmt.Errorf("config %q: %w", resolvedPath, err)
	}
	loaded.Warnings = append(loaded.Warnings, validateWarnings...)

	return loaded, nil
}

func applyEnvOverrides(cfg *Config) error {
	for _, override := range envOverrides {
		value := strings.TrimSpace(os.Getenv(override.env))
		if value == "" {
			continue
		}
		if err := applyKey(cfg, override.key, value); err != nil {
			return fmt.Errorf("env override %s: %w", override.env, err)
		}
	}
	return nil
}
