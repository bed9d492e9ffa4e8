package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"voiceup/internal/audio"
	"voiceup/internal/brew"
	"voiceup/internal/cli"
	"voiceup/internal/config"
	"voiceup/internal/doctor"
	"voiceup/internal/logging"
	"voiceup/internal/python"
	"voiceup/internal/version"
)

// affirmative matches the only inputs that opt into the virtualenv stage.
var affirmative = regexp.MustCompile(`^[Yy]$`)

type Runner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	r := Runner{Stdin: stdin, Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("voiceup"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("voiceup"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		msg := w.Message
		if w.Line > 0 {
			msg = fmt.Sprintf("line %d: %s", w.Line, w.Message)
		}
		fmt.Fprintf(r.Stderr, "warning: %s\n", msg)
		logger.Warn("config warning", "line", w.Line, "message", w.Message)
	}

	if parsed.AssumeYes {
		cfgLoaded.Config.Prompt.AssumeYes = true
	}

	logger.Info("command start",
		"command", parsed.Command,
		"config", cfgLoaded.Path,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandInstall:
		return r.commandInstall(ctx, cfgLoaded.Config, logger)
	case cli.CommandDoctor:
		report := doctor.Run(ctx, cfgLoaded)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandDevices:
		return r.commandDevices(ctx)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

// commandInstall runs the five installation stages top to bottom. Only the
// runtime probe aborts; the audio and virtualenv stages degrade into
// advisories, and install failures surface through the final verification.
func (r Runner) commandInstall(ctx context.Context, cfg config.Config, logger *slog.Logger) int {
	fmt.Fprintln(r.Stdout, "🚀 开始安装语音识别助手依赖...")

	interp, err := python.ResolveInterpreter(ctx, cfg.Python.Argv)
	if err != nil {
		fmt.Fprintf(r.Stderr, "❌ 未找到 Python 解释器: %v\n", err)
		logger.Error("runtime probe failed", "error", err.Error())
		return 1
	}
	fmt.Fprintf(r.Stdout, "✅ %s 已安装\n", interp.Version)

	pipPath, err := python.ResolvePip(cfg.Pip.Argv)
	if err != nil {
		fmt.Fprintf(r.Stderr, "❌ 未找到 pip: %v\n", err)
		logger.Error("runtime probe failed", "error", err.Error())
		return 1
	}
	fmt.Fprintf(r.Stdout, "✅ pip 已安装: %s\n", pipPath)
	logger.Info("runtime probe ok", "python", interp.Path, "version", interp.Version, "pip", pipPath)

	r.setupDarwinAudio(ctx, cfg, logger)
	r.maybeCreateVenv(ctx, cfg, logger)

	fmt.Fprintln(r.Stdout, "📦 正在安装依赖包...")
	if err := python.Install(ctx, cfg.Pip.Argv, cfg.Requirements, r.Stdout, r.Stderr); err != nil {
		// Deferred failure: the import verification below is the arbiter.
		logger.Warn("pip install finished with error", "requirements", cfg.Requirements, "error", err.Error())
	} else {
		logger.Info("pip install finished", "requirements", cfg.Requirements)
	}

	fmt.Fprintln(r.Stdout, "🔍 检查安装结果...")
	report := doctor.VerifyImports(ctx, cfg.Python.Argv, cfg.Manifest, r.Stdout)
	logger.Info("verification complete", "ok", report.OK(), "failed", strings.Join(report.Failed(), ","))

	if report.OK() {
		r.printSuccessReport()
		return 0
	}
	r.printFailureReport(report.Failed())
	return 1
}

// setupDarwinAudio installs the native audio library through Homebrew on
// Darwin. Every outcome here is advisory: a missing brew or a failed
// formula prints and the workflow continues. Non-Darwin hosts produce no
// output at all.
func (r Runner) setupDarwinAudio(ctx context.Context, cfg config.Config, logger *slog.Logger) {
	if !brew.IsDarwin() {
		return
	}

	if _, ok := brew.Available(); !ok {
		fmt.Fprintln(r.Stdout, "⚠️  未找到 Homebrew，建议先安装:")
		fmt.Fprintf(r.Stdout, "    %s\n", brew.InstallHint)
		logger.Warn("homebrew missing")
		return
	}

	fmt.Fprintf(r.Stdout, "🍺 正在通过 Homebrew 安装 %s...\n", cfg.Brew.Formula)
	if err := brew.Install(ctx, cfg.Brew.Formula, r.Stdout, r.Stderr); err != nil {
		fmt.Fprintf(r.Stderr, "⚠️  %s 安装未完成: %v\n", cfg.Brew.Formula, err)
		logger.Warn("brew install failed", "formula", cfg.Brew.Formula, "error", err.Error())
		return
	}
	logger.Info("brew install finished", "formula", cfg.Brew.Formula)
}

// maybeCreateVenv prompts for the isolated environment. Anything but y/Y
// declines silently; creation or activation errors degrade into warnings.
func (r Runner) maybeCreateVenv(ctx context.Context, cfg config.Config, logger *slog.Logger) {
	answer := "y"
	if !cfg.Prompt.AssumeYes {
		fmt.Fprint(r.Stdout, "是否创建虚拟环境? (y/N): ")
		answer = ""
		scanner := bufio.NewScanner(r.Stdin)
		if scanner.Scan() {
			answer = strings.TrimSpace(scanner.Text())
		}
	}
	if !affirmative.MatchString(answer) {
		return
	}

	fmt.Fprintf(r.Stdout, "📦 正在创建虚拟环境 %s...\n", cfg.Venv.Name)
	if err := python.CreateVenv(ctx, cfg.Python.Argv, cfg.Venv.Name); err != nil {
		fmt.Fprintf(r.Stderr, "⚠️  虚拟环境创建失败: %v\n", err)
		logger.Warn("venv create failed", "name", cfg.Venv.Name, "error", err.Error())
		return
	}

	binDir, err := python.ActivateEnv(cfg.Venv.Name)
	if err != nil {
		fmt.Fprintf(r.Stderr, "⚠️  虚拟环境激活失败: %v\n", err)
		logger.Warn("venv activate failed", "name", cfg.Venv.Name, "error", err.Error())
		return
	}

	fmt.Fprintf(r.Stdout, "💡 以后使用前请先执行: source %s/bin/activate\n", cfg.Venv.Name)
	logger.Info("venv activated", "name", cfg.Venv.Name, "bin", binDir)
}

func (r Runner) printSuccessReport() {
	fmt.Fprint(r.Stdout, `
🎉 所有依赖安装完成！

使用方法:
  python voice.py --mode mic     # 麦克风识别
  python voice.py --mode system  # 系统音频识别
  python voice.py --mode mixed   # 混合音频识别

提示: macOS 上识别系统音频需要额外安装 BlackHole:
  https://github.com/ExistentialAudio/BlackHole
`)
}

func (r Runner) printFailureReport(failed []string) {
	fmt.Fprintf(r.Stderr, `
❌ 部分依赖安装失败: %s

请尝试:
  1. 手动重新安装: pip3 install -r requirements.txt
  2. 创建虚拟环境后重新运行安装
`, strings.Join(failed, ", "))
}

func (r Runner) commandDevices(ctx context.Context) int {
	devices, err := audio.ListDevices(ctx)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if len(devices) == 0 {
		fmt.Fprintln(r.Stdout, "no audio devices found")
		return 1
	}

	for _, device := range devices {
		defaultMark := " "
		if device.Default {
			defaultMark = "*"
		}
		availability := "yes"
		if !device.Available {
			availability = "no"
		}
		muted := "no"
		if device.Muted {
			muted = "yes"
		}
		fmt.Fprintf(
			r.Stdout,
			"%s id=%s | description=%q | state=%s | available=%s | muted=%s\n",
			defaultMark,
			device.ID,
			device.Description,
			device.State,
			availability,
			muted,
		)
	}

	return 0
}
