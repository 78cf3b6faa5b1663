// Package devassist is a developer-workflow toolkit: an MCP tool/resource
// server with a fixed catalog of code-assistance tools and SaaS reference
// resources, plus thin wrappers over the external command-line tools a
// developer workflow touches (version control, cloud deploy, SSH agent,
// project scanning).
package devassist

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/saasdev/devassist/internal/catalog"
	"github.com/saasdev/devassist/internal/config"
	"github.com/saasdev/devassist/internal/errortypes"
	"github.com/saasdev/devassist/internal/history"
	"github.com/saasdev/devassist/internal/registry"
	"github.com/saasdev/devassist/internal/server"
	"github.com/saasdev/devassist/internal/telemetry"
	"github.com/saasdev/devassist/internal/toolchain"
	"github.com/saasdev/devassist/internal/util"
)

// Config represents the configuration for the DevAssist service.
type Config = config.Config

// Server represents the DevAssist service.
type Server struct {
	config     *config.Config
	metrics    *telemetry.MetricsCollector
	registry   *registry.Registry
	toolServer server.ToolServer
	store      history.Store
	vcs        toolchain.VCSRunner
	deployer   toolchain.DeployRunner
	prober     toolchain.AgentProber
	scanner    toolchain.ProjectScanner
	logger     *slog.Logger // Logger for this Server instance
}

// ServerOptions defines the options for creating a new Server.
type ServerOptions struct {
	Config     *Config      // Pre-filled config. If nil, ConfigPath is used.
	ConfigPath string       // Path to config file. Used if Config is nil. If both are empty, DefaultConfig() is used.
	Logger     *slog.Logger // External logger. If nil, slog.Default() is used.
}

// NewServer creates a new DevAssist Server with the given options.
// If opts.Config is provided, it will be used directly.
// Otherwise, if opts.ConfigPath is provided, configuration will be loaded from that path.
// If neither is provided, DefaultConfig() will be used.
// If opts.Logger is nil, slog.Default() will be used.
func NewServer(opts ServerOptions) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var cfg *Config
	var err error

	if opts.Config != nil {
		cfg = opts.Config
		logger.Info("Using provided Config object for server initialization")
	} else if opts.ConfigPath != "" {
		logger.Info("Loading configuration for server initialization", "path", opts.ConfigPath)
		cfg, err = config.LoadConfigWithPath(opts.ConfigPath)
		if err != nil {
			logger.Error("Failed to load configuration from path", "path", opts.ConfigPath, "error", err)
			return nil, errortypes.ConfigError(err, "Failed to load configuration from path: "+opts.ConfigPath)
		}
	} else {
		logger.Warn("No Config object or ConfigPath provided, using default configuration for server initialization")
		cfg = DefaultConfig()
	}

	reg, metrics, store, err := CreateComponents(cfg, logger)
	if err != nil {
		// CreateComponents already logs the specific error
		logger.Error("Failed to create components during server initialization", "error", err)
		return nil, err
	}

	logger.Info("Initializing MCP tool server component")
	mcpServer := server.NewToolServer(cfg.Server.Name, reg)
	err = mcpServer.Initialize()
	if err != nil {
		logger.Error("Failed to initialize MCP tool server component", "error", err)
		return nil, errortypes.ConfigError(err, "Failed to initialize MCP tool server component")
	}

	runner := toolchain.NewExecRunner()

	logger.Info("DevAssist server successfully initialized")
	return &Server{
		config:     cfg,
		metrics:    metrics,
		registry:   reg,
		toolServer: mcpServer,
		store:      store,
		vcs:        toolchain.NewGitRunner(cfg.Toolchain.GitBinary, runner, metrics),
		deployer:   toolchain.NewExecDeployer(cfg.Toolchain.DeployBinary, cfg.Toolchain.DeployArgs, runner, store, metrics),
		prober:     toolchain.NewSocketProber(cfg.Toolchain.SSHAuthSock, metrics),
		scanner:    toolchain.NewFSScanner(metrics),
		logger:     logger,
	}, nil
}

// DefaultConfig returns the default configuration for the DevAssist service.
func DefaultConfig() *Config {
	return config.NewConfig()
}

// SaveConfig returns the JSON content of the configuration, pretty-printed.
func SaveConfig(config *Config, path string) ([]byte, error) {
	content, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, errortypes.ConfigError(err, "failed to marshal configuration")
	}

	return content, nil
}

// Start starts the DevAssist service: it serves the stdio transport and
// blocks until it closes.
func (s *Server) Start() error {
	s.logger.Info("Starting DevAssist service")
	return s.toolServer.Start()
}

// Stop stops the DevAssist service.
func (s *Server) Stop() error {
	s.logger.Info("Stopping DevAssist service")
	err := s.toolServer.Stop()
	if err != nil {
		s.logger.Error("Error stopping tool server", "error", err)
		return err
	}

	// Close the history store
	s.logger.Info("Closing history store")
	err = s.store.Close()
	if err != nil {
		s.logger.Error("Failed to close history store", "error", err)
		return err
	}

	s.logger.Info("DevAssist service stopped")
	return nil
}

// AnalyzeCode runs the analyze-code tool directly and returns its report text.
func (s *Server) AnalyzeCode(code, language string) (string, error) {
	req := catalog.AnalyzeCodeRequest{Code: code, Language: language}
	result, err := s.registry.CallTool(catalog.ToolAnalyzeCode, req.Args())
	if err != nil {
		s.logger.Error("analyze-code call failed", "error", err)
		return "", err
	}
	return result.Text(), nil
}

// GenerateTests runs the generate-tests tool directly and returns the
// scaffold text. An empty framework selects the default.
func (s *Server) GenerateTests(code, framework string) (string, error) {
	req := catalog.GenerateTestsRequest{Code: code, Framework: framework}
	result, err := s.registry.CallTool(catalog.ToolGenerateTests, req.Args())
	if err != nil {
		s.logger.Error("generate-tests call failed", "error", err)
		return "", err
	}
	return result.Text(), nil
}

// OptimizePerformance runs the optimize-performance tool directly and
// returns its report text. An empty metrics slice selects the default set.
func (s *Server) OptimizePerformance(code string, metrics []string) (string, error) {
	req := catalog.OptimizePerformanceRequest{Code: code, Metrics: metrics}
	result, err := s.registry.CallTool(catalog.ToolOptimizePerformance, req.Args())
	if err != nil {
		s.logger.Error("optimize-performance call failed", "error", err)
		return "", err
	}
	return result.Text(), nil
}

// ReadResource reads a catalog resource directly.
func (s *Server) ReadResource(uri string) (*registry.Content, error) {
	content, err := s.registry.ReadResource(uri)
	if err != nil {
		s.logger.Error("resource read failed", "uri", uri, "error", err)
		return nil, err
	}
	return content, nil
}

// ListTools returns the fixed tool catalog in registration order.
func (s *Server) ListTools() []registry.ToolDescriptor {
	return s.registry.ListTools()
}

// ListResources returns the fixed resource catalog in registration order.
func (s *Server) ListResources() []registry.ResourceDescriptor {
	return s.registry.ListResources()
}

// Deploy runs the configured cloud-deploy CLI for the given project and
// returns the deployment URL. Successful deployments are recorded in the
// history store.
func (s *Server) Deploy(ctx context.Context, project string) (string, error) {
	return s.deployer.Deploy(ctx, project)
}

// RecentDeployments returns up to limit recorded deployments, newest first.
func (s *Server) RecentDeployments(limit int) ([]history.Deployment, error) {
	return s.store.Recent(limit)
}

// SSHAgentReachable reports whether the configured SSH agent socket
// accepts connections.
func (s *Server) SSHAgentReachable(ctx context.Context) bool {
	return s.prober.Probe(ctx)
}

// ScanProject scans a project directory for file/directory counts and
// declared technologies.
func (s *Server) ScanProject(dir string) (*toolchain.ScanReport, error) {
	return s.scanner.Scan(dir)
}

// VCS returns the version-control runner used by the server.
func (s *Server) VCS() toolchain.VCSRunner {
	return s.vcs
}

// GetStore returns the deployment history store used by the server.
func (s *Server) GetStore() history.Store {
	return s.store
}

// MetricsReport returns a snapshot report of the collected metrics.
func (s *Server) MetricsReport() string {
	return s.metrics.GetReport()
}

// CreateComponents creates and initializes the components of the DevAssist
// service without creating a server instance. This is useful for callers
// that need direct access to the registry or the history store.
func CreateComponents(cfg *Config, logger *slog.Logger) (*registry.Registry, *telemetry.MetricsCollector, history.Store, error) {
	if logger == nil {
		logger = slog.Default()
		logger.Debug("CreateComponents called with nil logger, defaulting to slog.Default()")
	}

	metrics := telemetry.NewMetricsCollector()

	// Build the dispatch registry with the fixed catalog
	logger.Info("Building tool/resource registry for CreateComponents")
	reg, err := catalog.NewRegistry(metrics)
	if err != nil {
		logger.Error("Failed to build registry in CreateComponents", "error", err)
		return nil, nil, nil, errortypes.InternalError(err, "Failed to build tool/resource registry")
	}

	// Initialize the SQLite history store
	logger.Info("Initializing SQLite history store for CreateComponents", "path", cfg.History.SQLitePath)
	store := history.NewSQLiteStore()
	if err := store.Initialize(cfg.History.SQLitePath); err != nil {
		logger.Error("Failed to initialize SQLite history store in CreateComponents", "path", cfg.History.SQLitePath, "error", err)
		return nil, nil, nil, errortypes.DatabaseError(err, "Failed to initialize SQLite history store")
	}

	logger.Info("Components successfully initialized via CreateComponents")
	return reg, metrics, store, nil
}

// GenerateID creates a short stable identifier from a value and a timestamp.
// This is a convenience wrapper around the internal util.GenerateID function.
func GenerateID(value string, timestamp int64) string {
	return util.GenerateID(value, timestamp)
}
