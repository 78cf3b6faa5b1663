package server

import (
	"errors"
	"strings"
	"testing"

	"github.com/saasdev/devassist/internal/catalog"
	"github.com/saasdev/devassist/internal/registry"
	"github.com/saasdev/devassist/internal/telemetry"
)

func newTestServer(t *testing.T) *MCPToolServer {
	t.Helper()

	reg, err := catalog.NewRegistry(telemetry.NewMetricsCollector())
	if err != nil {
		t.Fatalf("Failed to build registry: %v", err)
	}

	srv := NewToolServer("devassist-test", reg)
	if err := srv.Initialize(); err != nil {
		t.Fatalf("Failed to initialize server: %v", err)
	}
	return srv
}

// TestInitializeWithoutRegistry tests that initialization fails when no
// dispatch registry is supplied
func TestInitializeWithoutRegistry(t *testing.T) {
	srv := NewToolServer("devassist-test", nil)

	err := srv.Initialize()
	if err == nil {
		t.Fatal("Expected error initializing without a registry")
	}
	if !errors.Is(err, ErrMissingRegistry) {
		t.Errorf("Expected ErrMissingRegistry, got %v", err)
	}
}

// TestStartBeforeInitialize tests that Start fails before Initialize
func TestStartBeforeInitialize(t *testing.T) {
	reg, err := catalog.NewRegistry(telemetry.NewMetricsCollector())
	if err != nil {
		t.Fatalf("Failed to build registry: %v", err)
	}

	srv := NewToolServer("devassist-test", reg)
	err = srv.Start()
	if err == nil {
		t.Fatal("Expected error starting uninitialized server")
	}
	if !errors.Is(err, ErrServerNotInitialized) {
		t.Errorf("Expected ErrServerNotInitialized, got %v", err)
	}
}

// TestHandleAnalyzeCode tests the analyze-code tool handler
func TestHandleAnalyzeCode(t *testing.T) {
	srv := newTestServer(t)

	req := catalog.AnalyzeCodeRequest{
		Code:     "fmt.Println(\"hello\")",
		Language: "go",
	}

	result, err := srv.handleAnalyzeCode(nil, req)
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}

	text := result.Text()
	if !strings.Contains(text, "# Code Analysis Report") {
		t.Error("Expected analysis report header in output")
	}
	if !strings.Contains(text, "Language: go") {
		t.Errorf("Expected 'Language: go' in output, got:\n%s", text)
	}
}

// TestHandleGenerateTests tests the generate-tests tool handler with and
// without the optional framework argument
func TestHandleGenerateTests(t *testing.T) {
	srv := newTestServer(t)

	// Omitted framework defaults to jest.
	result, err := srv.handleGenerateTests(nil, catalog.GenerateTestsRequest{
		Code: "const add = (a, b) => a + b;",
	})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if !strings.Contains(result.Text(), "jest framework") {
		t.Errorf("Expected jest default, got:\n%s", result.Text())
	}

	// Explicit framework is passed through.
	result, err = srv.handleGenerateTests(nil, catalog.GenerateTestsRequest{
		Code:      "const add = (a, b) => a + b;",
		Framework: "vitest",
	})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if !strings.Contains(result.Text(), "vitest framework") {
		t.Errorf("Expected vitest in output, got:\n%s", result.Text())
	}
}

// TestHandleOptimizePerformance tests the optimize-performance tool handler
func TestHandleOptimizePerformance(t *testing.T) {
	srv := newTestServer(t)

	result, err := srv.handleOptimizePerformance(nil, catalog.OptimizePerformanceRequest{
		Code:    "rows := queryAll()",
		Metrics: []string{"database"},
	})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}

	text := result.Text()
	if !strings.Contains(text, "Metrics reviewed: database") {
		t.Errorf("Expected supplied metric in output, got:\n%s", text)
	}
}

// TestCallToolUnknown tests that unknown-tool dispatch failures surface with
// the exact failure message
func TestCallToolUnknown(t *testing.T) {
	srv := newTestServer(t)

	_, err := srv.callTool("summarize-code", map[string]any{"code": "x"})
	if err == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if err.Error() != "Unknown tool: summarize-code" {
		t.Errorf("Expected 'Unknown tool: summarize-code', got '%s'", err.Error())
	}
}

// TestReadResource tests resource reads through the server
func TestReadResource(t *testing.T) {
	srv := newTestServer(t)

	content, err := srv.readResource(catalog.ResourceBestPractices)
	if err != nil {
		t.Fatalf("readResource returned error: %v", err)
	}
	if content.MimeType != "text/markdown" {
		t.Errorf("Expected 'text/markdown', got '%s'", content.MimeType)
	}
	if content.Text == "" {
		t.Error("Expected non-empty resource payload")
	}
}

// TestReadResourceUnknown tests the unknown-resource failure message
func TestReadResourceUnknown(t *testing.T) {
	srv := newTestServer(t)

	_, err := srv.readResource("saas://docs/missing")
	if err == nil {
		t.Fatal("Expected error for unknown resource")
	}
	if err.Error() != "Unknown resource: saas://docs/missing" {
		t.Errorf("Expected 'Unknown resource: saas://docs/missing', got '%s'", err.Error())
	}

	var unknownErr *registry.UnknownResourceError
	if !errors.As(err, &unknownErr) {
		t.Errorf("Expected UnknownResourceError, got %T", err)
	}
}
