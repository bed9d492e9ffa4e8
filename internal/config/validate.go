package config

import (
	"fmt"
	"regexp"
	"strings"
)

var importNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if len(cfg.Python.Argv) == 0 {
		return nil, fmt.Errorf("python must not be empty")
	}
	if len(cfg.Pip.Argv) == 0 {
		return nil, fmt.Errorf("pip must not be empty")
	}
	if strings.TrimSpace(cfg.Requirements) == "" {
		return nil, fmt.Errorf("requirements must not be empty")
	}
	if strings.TrimSpace(cfg.Venv.Name) == "" {
		return nil, fmt.Errorf("venv.name must not be empty")
	}
	if strings.ContainsAny(cfg.Venv.Name, "/\\") {
		return nil, fmt.Errorf("venv.name must be a directory name, not a path: %q", cfg.Venv.Name)
	}
	if strings.TrimSpace(cfg.Brew.Formula) == "" {
		return nil, fmt.Errorf("brew.formula must not be empty")
	}
	if len(cfg.Manifest) == 0 {
		return nil, fmt.Errorf("manifest must list at least one import name")
	}

	seen := make(map[string]struct{}, len(cfg.Manifest))
	for _, name := range cfg.Manifest {
		if !importNamePattern.MatchString(name) {
			return nil, fmt.Errorf("manifest entry %q is not an importable module name", name)
		}
		if _, dup := seen[name]; dup {
			warnings = append(warnings, Warning{Message: fmt.Sprintf("manifest lists %q more than once", name)})
			continue
		}
		seen[name] = struct{}{}
	}

	return warnings, nil
}
