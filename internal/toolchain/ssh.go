package toolchain

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/saasdev/devassist/internal/telemetry"
)

// AgentProber reports whether an SSH agent is reachable.
type AgentProber interface {
	Probe(ctx context.Context) bool
}

// DefaultProbeTimeout bounds how long a single agent probe may take.
const DefaultProbeTimeout = 2 * time.Second

// SocketProber probes the SSH agent by dialing its unix socket. The socket
// path comes from configuration (populated from SSH_AUTH_SOCK at process
// entry); an empty path means no agent is configured.
type SocketProber struct {
	socket  string
	timeout time.Duration
	metrics *telemetry.MetricsCollector
}

// NewSocketProber creates a SocketProber for the given agent socket path.
func NewSocketProber(socket string, metrics *telemetry.MetricsCollector) *SocketProber {
	return &SocketProber{
		socket:  socket,
		timeout: DefaultProbeTimeout,
		metrics: metrics,
	}
}

// Probe reports whether the agent socket accepts a connection.
func (p *SocketProber) Probe(ctx context.Context) bool {
	if p.metrics != nil {
		p.metrics.IncrementCounter(telemetry.MetricAgentProbes, 1)
	}

	if p.socket == "" {
		slog.Debug("No SSH agent socket configured")
		return false
	}

	dialer := net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "unix", p.socket)
	if err != nil {
		slog.Debug("SSH agent unreachable", "socket", p.socket, "error", err)
		return false
	}
	conn.Close()
	return true
}
