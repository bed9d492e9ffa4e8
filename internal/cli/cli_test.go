package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToHelp(t *testing.T) {
	parsed, err := Parse(nil)
	require.NoError(t, err)
	require.True(t, parsed.ShowHelp)
	require.Equal(t, CommandHelp, parsed.Command)
}

func TestParseCommandWithConfig(t *testing.T) {
	parsed, err := Parse([]string{"--config", "/tmp/voiceup.conf", "doctor"})
	require.NoError(t, err)
	require.Equal(t, CommandDoctor, parsed.Command)
	require.Equal(t, "/tmp/voiceup.conf", parsed.ConfigPath)
	require.False(t, parsed.ShowHelp)
}

func TestParseYesFlag(t *testing.T) {
	parsed, err := Parse([]string{"--yes", "install"})
	require.NoError(t, err)
	require.Equal(t, CommandInstall, parsed.Command)
	require.True(t, parsed.AssumeYes)
}

func TestParseArgMatrix(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantErr  string
		wantCmd  Command
		wantHelp bool
		wantYes  bool
	}{
		{
			name:     "help short flag",
			args:     []string{"-h"},
			wantCmd:  CommandHelp,
			wantHelp: true,
		},
		{
			name:    "version flag",
			args:    []string{"--version"},
			wantCmd: CommandVersion,
		},
		{
			name:    "yes short flag",
			args:    []string{"-y", "install"},
			wantCmd: CommandInstall,
			wantYes: true,
		},
		{
			name:    "install command",
			args:    []string{"install"},
			wantCmd: CommandInstall,
		},
		{
			name:    "devices command",
			args:    []string{"devices"},
			wantCmd: CommandDevices,
		},
		{
			name:    "config after command",
			args:    []string{"doctor", "--config", "/tmp/cfg"},
			wantErr: "unexpected arguments after command",
		},
		{
			name:    "missing config path",
			args:    []string{"--config"},
			wantErr: "requires a path",
		},
		{
			name:    "unknown flag",
			args:    []string{"--bogus"},
			wantErr: "unknown flag",
		},
		{
			name:    "unknown command",
			args:    []string{"bogus"},
			wantErr: "unknown command",
		},
		{
			name:    "extra args after command",
			args:    []string{"install", "extra"},
			wantErr: "unexpected arguments",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parsed, err := Parse(tc.args)
			if tc.wantErr != "" {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.wantCmd, parsed.Command)
			require.Equal(t, tc.wantHelp, parsed.ShowHelp)
			require.Equal(t, tc.wantYes, parsed.AssumeYes)
		})
	}
}

func TestHelpTextListsCommands(t *testing.T) {
	text := HelpText("voiceup")
	require.Contains(t, text, "voiceup [--config PATH]")
	for _, cmd := range []string{"install", "doctor", "devices", "version", "help"} {
		require.Contains(t, text, cmd)
	}
}
