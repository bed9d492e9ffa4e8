package config

import (
	"fmt"
	"strings"
)

// Parse applies key=value configuration content over base defaults.
//
// Lines are trimmed; blank lines and `#` comments are skipped. Values may
// be optionally double- or single-quoted. Errors carry the 1-based line
// number they occurred on.
func Parse(content string, base Config) (Config, []Warning, error) {
	cfg := base
	warnings := make([]Warning, 0)

	for idx, raw := range strings.Split(content, "\n") {
		lineNo := idx + 1
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return Config{}, nil, fmt.Errorf("line %d: expected key = value, got %q", lineNo, line)
		}

		key = strings.ToLower(strings.TrimSpace(key))
		if err := applyKey(&cfg, key, unquote(strings.TrimSpace(value))); err != nil {
			return Config{}, nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	return cfg, warnings, nil
}

// applyKey routes one configuration assignment into the Config struct.
func applyKey(cfg *Config, key string, value string) error {
	switch key {
	case "python":
		command, err := parseCommandValue(key, value)
		if err != nil {
			return err
		}
		cfg.Python = command
	case "pip":
		command, err := parseCommandValue(key, value)
		if err != nil {
			return err
		}
		cfg.Pip = command
	case "requirements":
		cfg.Requirements = value
	case "venv.name":
		cfg.Venv.Name = value
	case "brew.formula":
		cfg.Brew.Formula = value
	case "audio.input":
		cfg.Audio.Input = value
	case "audio.fallback":
		cfg.Audio.Fallback = value
	case "manifest":
		cfg.Manifest = splitList(value)
	case "prompt.assume_yes":
		enabled, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		cfg.Prompt.AssumeYes = enabled
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return nil
}

func parseCommandValue(key string, value string) (CommandConfig, error) {
	argv, err := splitCommand(value)
	if err != nil {
		return CommandConfig{}, fmt.Errorf("%s: %w", key, err)
	}
	if len(argv) == 0 {
		return CommandConfig{}, fmt.Errorf("%s must not be empty", key)
	}
	return CommandConfig{Raw: value, Argv: argv}, nil
}

func parseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("expected boolean, got %q", value)
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, part)
	}
	return items
}

func unquote(value string) string {
	if len(value) >= 2 {
		first := value[0]
		last := value[len(value)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
