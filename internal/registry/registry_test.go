package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/saasdev/devassist/internal/telemetry"
)

var testError = errors.New("test error")

// newTestRegistry builds a small registry with one two-argument tool, one
// failing tool, and one resource.
func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	reg := New(telemetry.NewMetricsCollector())

	err := reg.RegisterTool(ToolDescriptor{
		Name:        "echo",
		Description: "Echo the input back",
		InputSchema: InputSchema{
			Required: []Param{
				{Name: "text", Type: "string"},
				{Name: "language", Type: "string"},
			},
		},
	}, func(args map[string]any) (*Result, error) {
		text, _ := args["text"].(string)
		return TextResult(text), nil
	})
	if err != nil {
		t.Fatalf("Failed to register echo tool: %v", err)
	}

	err = reg.RegisterTool(ToolDescriptor{
		Name:        "broken",
		Description: "Always fails",
	}, func(args map[string]any) (*Result, error) {
		return nil, testError
	})
	if err != nil {
		t.Fatalf("Failed to register broken tool: %v", err)
	}

	err = reg.RegisterResource(ResourceDescriptor{
		URI:         "test://docs/readme",
		Name:        "Readme",
		Description: "A fixed document",
		MimeType:    "text/markdown",
	}, func() (*Content, error) {
		return &Content{Type: "text", Text: "# Readme", MimeType: "text/markdown"}, nil
	})
	if err != nil {
		t.Fatalf("Failed to register resource: %v", err)
	}

	return reg
}

// TestCallTool tests dispatch of a known tool with all required arguments
func TestCallTool(t *testing.T) {
	reg := newTestRegistry(t)

	result, err := reg.CallTool("echo", map[string]any{
		"text":     "hello",
		"language": "go",
	})
	if err != nil {
		t.Fatalf("CallTool returned error: %v", err)
	}

	if result.Text() != "hello" {
		t.Errorf("Expected result 'hello', got '%s'", result.Text())
	}
	if len(result.Content) != 1 || result.Content[0].Type != "text" {
		t.Errorf("Expected a single text content block, got %+v", result.Content)
	}
}

// TestCallToolUnknown tests that an unregistered name produces the exact
// unknown-tool failure message
func TestCallToolUnknown(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.CallTool("no-such-tool", map[string]any{})
	if err == nil {
		t.Fatal("Expected error for unknown tool")
	}
	if err.Error() != "Unknown tool: no-such-tool" {
		t.Errorf("Expected 'Unknown tool: no-such-tool', got '%s'", err.Error())
	}

	var unknownErr *UnknownToolError
	if !errors.As(err, &unknownErr) {
		t.Errorf("Expected UnknownToolError, got %T", err)
	}
}

// TestCallToolCaseSensitive tests that name matching is exact
func TestCallToolCaseSensitive(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.CallTool("Echo", map[string]any{"text": "hi", "language": "go"})
	if err == nil {
		t.Fatal("Expected error for case-mismatched tool name")
	}
	if err.Error() != "Unknown tool: Echo" {
		t.Errorf("Expected 'Unknown tool: Echo', got '%s'", err.Error())
	}
}

// TestCallToolMissingArgument tests required-argument presence checks
func TestCallToolMissingArgument(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.CallTool("echo", map[string]any{"text": "hello"})
	if err == nil {
		t.Fatal("Expected error for missing required argument")
	}

	var missingErr *MissingArgumentError
	if !errors.As(err, &missingErr) {
		t.Fatalf("Expected MissingArgumentError, got %T", err)
	}
	if missingErr.Argument != "language" {
		t.Errorf("Expected missing argument 'language', got '%s'", missingErr.Argument)
	}
	if !strings.Contains(err.Error(), "echo") {
		t.Errorf("Expected error to name the tool, got '%s'", err.Error())
	}
}

// TestCallToolPresenceOnly tests that arguments are checked for presence,
// not for type conformance
func TestCallToolPresenceOnly(t *testing.T) {
	reg := newTestRegistry(t)

	// A non-string value for a string parameter still dispatches.
	result, err := reg.CallTool("echo", map[string]any{
		"text":     42,
		"language": "go",
	})
	if err != nil {
		t.Fatalf("CallTool returned error for non-string argument: %v", err)
	}
	if result.Text() != "" {
		t.Errorf("Expected empty text for non-string argument, got '%s'", result.Text())
	}
}

// TestCallToolHandlerError tests that handler errors propagate unchanged
func TestCallToolHandlerError(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.CallTool("broken", map[string]any{})
	if !errors.Is(err, testError) {
		t.Errorf("Expected handler error to propagate, got %v", err)
	}
}

// TestReadResource tests dispatch of a known resource
func TestReadResource(t *testing.T) {
	reg := newTestRegistry(t)

	content, err := reg.ReadResource("test://docs/readme")
	if err != nil {
		t.Fatalf("ReadResource returned error: %v", err)
	}

	if content.Text != "# Readme" {
		t.Errorf("Expected '# Readme', got '%s'", content.Text)
	}
	if content.MimeType != "text/markdown" {
		t.Errorf("Expected mime type 'text/markdown', got '%s'", content.MimeType)
	}
}

// TestReadResourceUnknown tests that an unregistered uri produces the exact
// unknown-resource failure message
func TestReadResourceUnknown(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.ReadResource("test://docs/missing")
	if err == nil {
		t.Fatal("Expected error for unknown resource")
	}
	if err.Error() != "Unknown resource: test://docs/missing" {
		t.Errorf("Expected 'Unknown resource: test://docs/missing', got '%s'", err.Error())
	}

	var unknownErr *UnknownResourceError
	if !errors.As(err, &unknownErr) {
		t.Errorf("Expected UnknownResourceError, got %T", err)
	}
}

// TestListOrder tests that listings preserve registration order and are
// stable across repeated calls
func TestListOrder(t *testing.T) {
	reg := newTestRegistry(t)

	first := reg.ListTools()
	second := reg.ListTools()

	if len(first) != 2 {
		t.Fatalf("Expected 2 tools, got %d", len(first))
	}
	if first[0].Name != "echo" || first[1].Name != "broken" {
		t.Errorf("Tools not in registration order: %s, %s", first[0].Name, first[1].Name)
	}
	for i := range first {
		if first[i].Name != second[i].Name {
			t.Errorf("Listing changed between calls at index %d", i)
		}
	}

	resources := reg.ListResources()
	if len(resources) != 1 || resources[0].URI != "test://docs/readme" {
		t.Errorf("Unexpected resource listing: %+v", resources)
	}
}

// TestRegisterDuplicate tests that duplicate registration is rejected
func TestRegisterDuplicate(t *testing.T) {
	reg := newTestRegistry(t)

	err := reg.RegisterTool(ToolDescriptor{Name: "echo"}, func(args map[string]any) (*Result, error) {
		return TextResult(""), nil
	})
	if err == nil {
		t.Error("Expected error registering duplicate tool name")
	}

	err = reg.RegisterResource(ResourceDescriptor{URI: "test://docs/readme"}, func() (*Content, error) {
		return &Content{}, nil
	})
	if err == nil {
		t.Error("Expected error registering duplicate resource uri")
	}
}

// TestMetrics tests that dispatch outcomes are counted
func TestMetrics(t *testing.T) {
	metrics := telemetry.NewMetricsCollector()
	reg := New(metrics)

	err := reg.RegisterTool(ToolDescriptor{Name: "noop"}, func(args map[string]any) (*Result, error) {
		return TextResult("ok"), nil
	})
	if err != nil {
		t.Fatalf("Failed to register tool: %v", err)
	}

	reg.CallTool("noop", map[string]any{})
	reg.CallTool("noop", map[string]any{})
	reg.CallTool("missing", map[string]any{})

	if got := metrics.GetCounter(telemetry.MetricToolCallsSuccess); got != 2 {
		t.Errorf("Expected 2 successful calls counted, got %d", got)
	}
	if got := metrics.GetCounter(telemetry.MetricToolCallsUnknown); got != 1 {
		t.Errorf("Expected 1 unknown call counted, got %d", got)
	}
}
