package config

// Default returns the canonical runtime configuration used when no file is present.
//
// The manifest lists the import names verified after installation. It is
// deliberately independent of requirements.txt: the two are hand-maintained
// in parallel, and the verifier is the only place a drift between them
// surfaces.
func Default() Config {
	python := "python3"
	pip := "pip3"

	return Config{
		Python:       CommandConfig{Raw: python, Argv: mustSplitCommand(python)},
		Pip:          CommandConfig{Raw: pip, Argv: mustSplitCommand(pip)},
		Requirements: "requirements.txt",
		Venv:         VenvConfig{Name: "voice_ai_env"},
		Brew:         BrewConfig{Formula: "portaudio"},
		Audio: AudioConfig{
			Input:    "default",
			Fallback: "default",
		},
		Manifest: []string{"speech_recognition", "pyaudio", "soundcard", "numpy"},
		Prompt:   PromptConfig{},
	}
}
