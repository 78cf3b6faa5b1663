package toolchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/saasdev/devassist/internal/telemetry"
)

// VCSRunner wraps the version-control operations the workflow helpers use.
// Each call reports the tool's combined output text and its success or
// failure; orchestration of full commit-and-push flows stays with callers.
type VCSRunner interface {
	// Stage stages the given paths ("." stages everything).
	Stage(ctx context.Context, paths ...string) (CommandResult, error)

	// Commit records a commit with the given message.
	Commit(ctx context.Context, message string) (CommandResult, error)

	// Push pushes the current branch to its upstream.
	Push(ctx context.Context) (CommandResult, error)
}

// GitRunner is the git-backed VCSRunner.
type GitRunner struct {
	bin     string
	runner  CommandRunner
	metrics *telemetry.MetricsCollector
}

// NewGitRunner creates a GitRunner invoking the given git binary through
// the given CommandRunner.
func NewGitRunner(bin string, runner CommandRunner, metrics *telemetry.MetricsCollector) *GitRunner {
	if bin == "" {
		bin = "git"
	}
	return &GitRunner{bin: bin, runner: runner, metrics: metrics}
}

// Stage stages the given paths.
func (g *GitRunner) Stage(ctx context.Context, paths ...string) (CommandResult, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	args := append([]string{"add", "--"}, paths...)
	return g.run(ctx, args...)
}

// Commit records a commit with the given message.
func (g *GitRunner) Commit(ctx context.Context, message string) (CommandResult, error) {
	if message == "" {
		return CommandResult{}, fmt.Errorf("commit message must not be empty")
	}
	return g.run(ctx, "commit", "-m", message)
}

// Push pushes the current branch to its upstream.
func (g *GitRunner) Push(ctx context.Context) (CommandResult, error) {
	return g.run(ctx, "push")
}

func (g *GitRunner) run(ctx context.Context, args ...string) (CommandResult, error) {
	if g.metrics != nil {
		g.metrics.IncrementCounter(telemetry.MetricVCSCommands, 1)
	}

	slog.Debug("Running version-control command", "bin", g.bin, "args", args)
	result, err := g.runner.Run(ctx, g.bin, args...)
	if err != nil {
		return result, err
	}
	if !result.Success() {
		slog.Warn("Version-control command failed", "bin", g.bin, "args", args, "exit_code", result.ExitCode)
	}
	return result, nil
}
