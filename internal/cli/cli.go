package cli

import (
	"errors"
	"fmt"
	"strings"
)

type Command string

const (
	CommandInstall Command = "install"
	CommandDoctor  Command = "doctor"
	CommandDevices Command = "devices"
	CommandVersion Command = "version"
	CommandHelp    Command = "help"
)

var validCommands = map[Command]struct{}{
	CommandInstall: {},
	CommandDoctor:  {},
	CommandDevices: {},
	CommandVersion: {},
	CommandHelp:    {},
}

type Parsed struct {
	Command    Command
	ConfigPath string
	AssumeYes  bool
	ShowHelp   bool
}

func Parse(args []string) (Parsed, error) {
	parsed := Parsed{Command: CommandHelp, ShowHelp: true}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch arg {
		case "-h", "--help":
			parsed.ShowHelp = true
			parsed.Command = CommandHelp
		case "--version":
			parsed.ShowHelp = false
			parsed.Command = CommandVersion
		case "-y", "--yes":
			parsed.AssumeYes = true
		case "--config":
			i++
			if i >= len(args) {
				return Parsed{}, errors.New("--config requires a path")
			}
			parsed.ConfigPath = args[i]
		default:
			if strings.HasPrefix(arg, "-") {
				return Parsed{}, fmt.Errorf("unknown flag: %s", arg)
			}

			cmd := Command(arg)
			if _, ok := validCommands[cmd]; !ok {
				return Parsed{}, fmt.Errorf("unknown command: %s", arg)
			}

			parsed.Command = cmd
			parsed.ShowHelp = cmd == CommandHelp
			if i != len(args)-1 {
				return Parsed{}, fmt.Errorf("unexpected arguments after command %q", arg)
			}
		}
	}

	return parsed, nil
}

func HelpText(binaryName string) string {
	return fmt.Sprintf(`Usage:
  %[1]s [--config PATH] [--yes] <command>

Commands:
  install   Prepare the host for the voice assistant: probe the Python
            runtime, set up PortAudio on macOS, optionally create the
            virtualenv, install requirements, and verify imports
  doctor    Run runtime and import verification checks without installing
  devices   List available audio capture sources
  version   Print version information
  help      Show this help

Flags:
  --config PATH   Config file path (default: $XDG_CONFIG_HOME/voiceup/config.conf)
  -y, --yes       Answer the virtualenv prompt affirmatively
  -h, --help      Show help
  --version       Show version
`, binaryName)
}
