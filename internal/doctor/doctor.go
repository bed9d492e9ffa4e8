// Package doctor runs installation readiness diagnostics for the Python
// runtime, pip, audio capture, and the import manifest.
package doctor

import (
	"context"
	"fmt"
	"io"
	"strings"

	"voiceup/internal/audio"
	"voiceup/internal/config"
	"voiceup/internal/python"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// Failed returns the names of failing checks, in check order.
func (r Report) Failed() []string {
	var names []string
	for _, check := range r.Checks {
		if !check.Pass {
			names = append(names, check.Name)
		}
	}
	return names
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment and manifest checks for a loaded config.
func Run(ctx context.Context, cfg config.Loaded) Report {
	checks := []Check{}

	checks = append(checks, Check{
		Name:    "config",
		Pass:    true,
		Message: fmt.Sprintf("loaded %q", cfg.Path),
	})

	interp, err := python.ResolveInterpreter(ctx, cfg.Config.Python.Argv)
	if err != nil {
		checks = append(checks, Check{Name: "python", Pass: false, Message: err.Error()})
		checks = append(checks, checkPip(cfg.Config))
		// Import probes are meaningless without an interpreter.
		return Report{Checks: checks}
	}
	checks = append(checks, Check{Name: "python", Pass: true, Message: fmt.Sprintf("%s at %s", interp.Version, interp.Path)})

	checks = append(checks, checkPip(cfg.Config))
	checks = append(checks, checkCaptureSource(ctx, cfg.Config))

	verified := VerifyImports(ctx, cfg.Config.Python.Argv, cfg.Config.Manifest, io.Discard)
	checks = append(checks, verified.Checks...)

	return Report{Checks: checks}
}

// VerifyImports probes each manifest module in order in the target
// interpreter, writing one progress line per module. Every module is always
// probed; a failure never short-circuits the loop.
func VerifyImports(ctx context.Context, pythonArgv []string, manifest []string, progress io.Writer) Report {
	checks := make([]Check, 0, len(manifest))
	for _, module := range manifest {
		if err := python.ProbeImport(ctx, pythonArgv, module); err != nil {
			fmt.Fprintf(progress, "❌ %s 安装失败\n", module)
			checks = append(checks, Check{Name: module, Pass: false, Message: err.Error()})
			continue
		}
		fmt.Fprintf(progress, "✅ %s 已安装\n", module)
		checks = append(checks, Check{Name: module, Pass: true, Message: "importable"})
	}
	return Report{Checks: checks}
}

// checkPip validates that the pip executable resolves on PATH.
func checkPip(cfg config.Config) Check {
	path, err := python.ResolvePip(cfg.Pip.Argv)
	if err != nil {
		return Check{Name: "pip", Pass: false, Message: err.Error()}
	}
	return Check{Name: "pip", Pass: true, Message: fmt.Sprintf("found at %s", path)}
}

// checkCaptureSource surfaces whether a usable capture source exists. It is
// advisory and always passes: Darwin hosts have no Pulse server, and an
// install may legitimately finish on a machine with no microphone attached.
func checkCaptureSource(ctx context.Context, cfg config.Config) Check {
	selection, err := audio.SelectDevice(ctx, cfg.Audio.Input, cfg.Audio.Fallback)
	if err != nil {
		return Check{Name: "audio.capture", Pass: true, Message: fmt.Sprintf("advisory: %v", err)}
	}
	message := fmt.Sprintf("selected %q", selection.Device.ID)
	if selection.Warning != "" {
		message = message + " (" + selection.Warning + ")"
	}
	return Check{Name: "audio.capture", Pass: true, Message: message}
}
