// Package toolchain provides the external command-line collaborators used
// by the DevAssist workflow helpers: a version-control runner, a
// cloud-deploy runner, an SSH-agent prober, and a project scanner. The
// protocol server core does not depend on anything in this package.
package toolchain

import (
	"context"
	"fmt"
	"os/exec"
)

// CommandResult holds the outcome of one external command invocation.
type CommandResult struct {
	// Output is the combined stdout and stderr text.
	Output string

	// ExitCode is the command's exit status.
	ExitCode int
}

// Success reports whether the command exited cleanly.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// CommandRunner executes an external command. Arguments are always passed
// as a vector; nothing in this package ever interpolates into a shell
// string.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (CommandResult, error)
}

// ExecRunner is the exec-backed CommandRunner.
type ExecRunner struct{}

// NewExecRunner creates a new ExecRunner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command and captures its combined output. A non-zero
// exit status is reported through CommandResult, not as an error; an error
// means the command could not be run at all.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	output, err := cmd.CombinedOutput()
	result := CommandResult{Output: string(output)}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, fmt.Errorf("failed to run %s: %w", name, err)
	}

	return result, nil
}
