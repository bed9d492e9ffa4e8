// Package brew handles the Darwin-only native audio dependency stage.
package brew

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// InstallHint is the remediation command suggested when Homebrew is absent.
const InstallHint = `/bin/bash -c "$(curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh)"`

// IsDarwin reports whether the host should run the Homebrew stage. $OSTYPE
// wins when set, so shells and tests can steer the branch; otherwise the
// compiled target decides.
func IsDarwin() bool {
	if ostype := strings.TrimSpace(os.Getenv("OSTYPE")); ostype != "" {
		return strings.HasPrefix(strings.ToLower(ostype), "darwin")
	}
	return runtime.GOOS == "darwin"
}

// Available reports whether the brew executable resolves on PATH.
func Available() (string, bool) {
	path, err := exec.LookPath("brew")
	return path, err == nil
}

// Install runs `brew install <formula>`, streaming brew's own output
// through. The returned error is advisory: the caller reports it and
// continues the workflow.
func Install(ctx context.Context, formula string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, "brew", "install", formula)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("brew install %s: %w", formula, err)
	}
	return nil
}
