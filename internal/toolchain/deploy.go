package toolchain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/saasdev/devassist/internal/history"
	"github.com/saasdev/devassist/internal/telemetry"
	"github.com/saasdev/devassist/internal/util"
)

// DeployRunner wraps the cloud-deploy CLI: a deploy either reports the
// deployment URL or fails.
type DeployRunner interface {
	Deploy(ctx context.Context, project string) (string, error)
}

// ExecDeployer is the CLI-backed DeployRunner. Successful deployments are
// recorded in the history store when one is configured.
type ExecDeployer struct {
	bin     string
	args    []string
	runner  CommandRunner
	store   history.Store
	metrics *telemetry.MetricsCollector
}

// NewExecDeployer creates an ExecDeployer invoking the given deploy CLI
// with the given fixed leading arguments. store may be nil to skip
// history recording.
func NewExecDeployer(bin string, args []string, runner CommandRunner, store history.Store, metrics *telemetry.MetricsCollector) *ExecDeployer {
	return &ExecDeployer{
		bin:     bin,
		args:    args,
		runner:  runner,
		store:   store,
		metrics: metrics,
	}
}

// Deploy runs the deploy CLI for the given project and returns the
// deployment URL parsed from its output.
func (d *ExecDeployer) Deploy(ctx context.Context, project string) (string, error) {
	if d.metrics != nil {
		d.metrics.IncrementCounter(telemetry.MetricDeployRuns, 1)
	}

	slog.Info("Running deployment", "bin", d.bin, "project", project)
	result, err := d.runner.Run(ctx, d.bin, d.args...)
	if err != nil {
		d.countFailure()
		return "", err
	}
	if !result.Success() {
		d.countFailure()
		return "", fmt.Errorf("deploy command exited with status %d: %s", result.ExitCode, strings.TrimSpace(result.Output))
	}

	url := parseDeploymentURL(result.Output)
	if url == "" {
		d.countFailure()
		return "", fmt.Errorf("deploy command reported no deployment URL")
	}

	if d.store != nil {
		timestamp := time.Now()
		dep := history.Deployment{
			ID:        util.GenerateID(url, timestamp.UnixNano()),
			Project:   project,
			URL:       url,
			Timestamp: timestamp,
		}
		if err := d.store.Record(dep); err != nil {
			// Recording is best effort; the deployment itself succeeded.
			slog.Warn("Failed to record deployment", "url", url, "error", err)
		}
	}

	slog.Info("Deployment succeeded", "project", project, "url", url)
	return url, nil
}

func (d *ExecDeployer) countFailure() {
	if d.metrics != nil {
		d.metrics.IncrementCounter(telemetry.MetricDeployFailed, 1)
	}
}

// parseDeploymentURL returns the first https URL in the CLI output.
func parseDeploymentURL(output string) string {
	for _, field := range strings.Fields(output) {
		if strings.HasPrefix(field, "https://") {
			return field
		}
	}
	return ""
}
