// Package python shells out to the host Python toolchain: interpreter and
// pip resolution, virtualenv creation, requirements installation, and
// per-module import probes.
package python

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Interpreter is a resolved Python invocation with its reported version banner.
type Interpreter struct {
	Argv    []string
	Path    string
	Version string
}

// ResolveInterpreter locates the configured interpreter on PATH and queries
// its version. CombinedOutput because old CPython prints the banner on stderr.
func ResolveInterpreter(ctx context.Context, argv []string) (Interpreter, error) {
	if len(argv) == 0 {
		return Interpreter{}, fmt.Errorf("python command is empty")
	}

	path, err := exec.LookPath(argv[0])
	if err != nil {
		return Interpreter{}, fmt.Errorf("python interpreter %q not found in PATH", argv[0])
	}

	out, err := command(ctx, argv, "--version").CombinedOutput()
	if err != nil {
		return Interpreter{}, commandError(fmt.Sprintf("query %s version", argv[0]), out, err)
	}

	version := strings.TrimSpace(string(out))
	if version == "" {
		return Interpreter{}, fmt.Errorf("python interpreter %q reported no version", argv[0])
	}

	return Interpreter{Argv: argv, Path: path, Version: version}, nil
}

// ResolvePip locates the configured pip executable on PATH.
func ResolvePip(argv []string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("pip command is empty")
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return "", fmt.Errorf("pip executable %q not found in PATH", argv[0])
	}
	return path, nil
}

// CreateVenv runs `python -m venv <name>` in the working directory.
func CreateVenv(ctx context.Context, pythonArgv []string, name string) error {
	out, err := command(ctx, pythonArgv, "-m", "venv", name).CombinedOutput()
	if err != nil {
		return commandError(fmt.Sprintf("create virtualenv %q", name), out, err)
	}
	return nil
}

// ActivateEnv prepends the virtualenv bin directory to PATH and sets
// VIRTUAL_ENV, mirroring what `source <name>/bin/activate` does for a shell.
// Later interpreter and pip lookups in this process resolve inside the env.
func ActivateEnv(name string) (string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", fmt.Errorf("resolve virtualenv path: %w", err)
	}

	binDir := filepath.Join(abs, "bin")
	if _, err := os.Stat(binDir); err != nil {
		return "", fmt.Errorf("virtualenv bin directory missing: %w", err)
	}

	if err := os.Setenv("VIRTUAL_ENV", abs); err != nil {
		return "", err
	}
	if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH")); err != nil {
		return "", err
	}
	return binDir, nil
}

// Install runs `pip install -r <requirements>`, streaming pip's own output
// through. The returned error is informational: callers defer failure
// detection to the import verification pass.
func Install(ctx context.Context, pipArgv []string, requirements string, stdout, stderr io.Writer) error {
	cmd := command(ctx, pipArgv, "install", "-r", requirements)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pip install -r %s: %w", requirements, err)
	}
	return nil
}

// ProbeImport attempts to import one module in the target interpreter.
func ProbeImport(ctx context.Context, pythonArgv []string, module string) error {
	out, err := command(ctx, pythonArgv, "-c", "import "+module).CombinedOutput()
	if err != nil {
		return commandError(fmt.Sprintf("import %s", module), out, err)
	}
	return nil
}

// command builds an exec.Cmd from an argv prefix plus extra arguments.
func command(ctx context.Context, argv []string, extra ...string) *exec.Cmd {
	args := append(append([]string{}, argv[1:]...), extra...)
	return exec.CommandContext(ctx, argv[0], args...)
}

func commandError(action string, out []byte, err error) error {
	trimmed := strings.TrimSpace(string(out))
	if trimmed == "" {
		return fmt.Errorf("%s: %w", action, err)
	}
	return fmt.Errorf("%s: %w (%s)", action, err, trimmed)
}
