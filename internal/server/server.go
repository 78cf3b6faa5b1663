// Package server provides the MCP server implementation for the DevAssist service.
package server

import (
	"errors"
	"log/slog"

	"github.com/localrivet/gomcp/server"
	"github.com/saasdev/devassist/internal/catalog"
	"github.com/saasdev/devassist/internal/errortypes"
	"github.com/saasdev/devassist/internal/registry"
)

// Common server error types
var (
	ErrServerNotInitialized = errors.New("server not initialized")
	ErrMissingRegistry      = errors.New("dispatch registry is nil")
)

// MCPToolServer exposes the fixed tool/resource catalog over a single MCP
// stdio transport. Every request is forwarded into the dispatch registry;
// the server itself holds no per-request state.
type MCPToolServer struct {
	name      string
	registry  *registry.Registry
	mcpServer server.Server
}

// NewToolServer creates a new MCPToolServer instance dispatching into the
// given registry.
func NewToolServer(name string, reg *registry.Registry) *MCPToolServer {
	return &MCPToolServer{
		name:     name,
		registry: reg,
	}
}

// Initialize registers the full catalog with the MCP server. The catalog is
// closed after this point: nothing is added or removed while serving.
func (s *MCPToolServer) Initialize() error {
	slog.Info("Initializing DevAssist MCP Tool Server", "name", s.name)

	if s.registry == nil {
		return errortypes.ConfigError(ErrMissingRegistry, "server initialization failed")
	}

	srv := server.NewServer(s.name)

	// Register analyze-code tool
	srv = srv.Tool(catalog.ToolAnalyzeCode, "Analyze code quality and suggest improvements",
		s.handleAnalyzeCode)

	// Register generate-tests tool
	srv = srv.Tool(catalog.ToolGenerateTests, "Generate a unit test scaffold for the given code",
		s.handleGenerateTests)

	// Register optimize-performance tool
	srv = srv.Tool(catalog.ToolOptimizePerformance, "Suggest performance optimizations for the given code",
		s.handleOptimizePerformance)

	// Register the static resources
	for _, desc := range s.registry.ListResources() {
		uri := desc.URI
		srv = srv.Resource(uri, desc.Description,
			func(ctx *server.Context, args *struct{}) (registry.Content, error) {
				return s.readResource(uri)
			})
	}

	s.mcpServer = srv
	slog.Info("DevAssist MCP Tool Server initialized successfully",
		"tool_count", len(s.registry.ListTools()),
		"resource_count", len(s.registry.ListResources()))
	return nil
}

// Start starts the MCP server on the stdio transport. It blocks until the
// transport closes.
func (s *MCPToolServer) Start() error {
	if s.mcpServer == nil {
		return errortypes.ConfigError(ErrServerNotInitialized, "cannot start server")
	}

	slog.Info("Starting DevAssist MCP Tool Server")

	stdioServer := s.mcpServer.AsStdio()
	return stdioServer.Run()
}

// Stop gracefully shuts down the MCP server.
func (s *MCPToolServer) Stop() error {
	slog.Info("Stopping DevAssist MCP Tool Server")
	// The server exits when stdin is closed; in-flight handlers are
	// synchronous and complete before the read loop returns.
	return nil
}

// handleAnalyzeCode handles the analyze-code MCP tool call.
func (s *MCPToolServer) handleAnalyzeCode(ctx *server.Context, req catalog.AnalyzeCodeRequest) (registry.Result, error) {
	slog.Info("Processing analyze-code request", "language", req.Language, "code_length", len(req.Code))
	return s.callTool(catalog.ToolAnalyzeCode, req.Args())
}

// handleGenerateTests handles the generate-tests MCP tool call.
func (s *MCPToolServer) handleGenerateTests(ctx *server.Context, req catalog.GenerateTestsRequest) (registry.Result, error) {
	slog.Info("Processing generate-tests request", "framework", req.Framework, "code_length", len(req.Code))
	return s.callTool(catalog.ToolGenerateTests, req.Args())
}

// handleOptimizePerformance handles the optimize-performance MCP tool call.
func (s *MCPToolServer) handleOptimizePerformance(ctx *server.Context, req catalog.OptimizePerformanceRequest) (registry.Result, error) {
	slog.Info("Processing optimize-performance request", "metrics", req.Metrics, "code_length", len(req.Code))
	return s.callTool(catalog.ToolOptimizePerformance, req.Args())
}

// callTool forwards a request into the registry. Dispatch errors come back
// as the call's failure result; they never terminate the server.
func (s *MCPToolServer) callTool(name string, args map[string]any) (registry.Result, error) {
	result, err := s.registry.CallTool(name, args)
	if err != nil {
		errortypes.LogError(nil, errortypes.ProtocolError(err, "tool call failed").
			WithField("tool", name).
			WithField("code", classifyError(err)))
		return registry.Result{}, err
	}
	return *result, nil
}

// readResource forwards a resource read into the registry.
func (s *MCPToolServer) readResource(uri string) (registry.Content, error) {
	content, err := s.registry.ReadResource(uri)
	if err != nil {
		errortypes.LogError(nil, errortypes.ProtocolError(err, "resource read failed").
			WithField("uri", uri).
			WithField("code", classifyError(err)))
		return registry.Content{}, err
	}
	return *content, nil
}
