// Package config resolves, parses, validates, and defaults voiceup configuration.
package config

// Config is the fully materialized runtime configuration used by voiceup.
type Config struct {
	Python       CommandConfig
	Pip          CommandConfig
	Requirements string
	Venv         VenvConfig
	Brew         BrewConfig
	Audio        AudioConfig
	Manifest     []string
	Prompt       PromptConfig
}

// VenvConfig controls the optional isolated-environment stage.
type VenvConfig struct {
	Name string
}

// BrewConfig controls the Darwin native audio dependency stage.
type BrewConfig struct {
	Formula string
}

// AudioConfig controls preferred and fallback capture-source selection.
type AudioConfig struct {
	Input    string
	Fallback string
}

// PromptConfig controls interactive prompt behavior.
type PromptConfig struct {
	AssumeYes bool
}

// CommandConfig stores a raw command string and its parsed argv form.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Line    int
	Message string
}
