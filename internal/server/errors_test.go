package server

import (
	"errors"
	"testing"

	"github.com/saasdev/devassist/internal/errortypes"
	"github.com/saasdev/devassist/internal/registry"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Unknown Tool",
			err:      &registry.UnknownToolError{Name: "summarize-code"},
			expected: FailureCodeUnknownTool,
		},
		{
			name:     "Unknown Resource",
			err:      &registry.UnknownResourceError{URI: "saas://docs/missing"},
			expected: FailureCodeUnknownResource,
		},
		{
			name:     "Missing Argument",
			err:      &registry.MissingArgumentError{Tool: "analyze-code", Argument: "language"},
			expected: FailureCodeInvalidRequest,
		},
		{
			name:     "Validation Error",
			err:      errortypes.ValidationError(errors.New("bad input"), "validation failed"),
			expected: FailureCodeValidation,
		},
		{
			name:     "Database Error",
			err:      errortypes.DatabaseError(errors.New("disk full"), "insert failed"),
			expected: FailureCodeDatabase,
		},
		{
			name:     "Toolchain Error",
			err:      errortypes.ToolchainError(errors.New("exit 128"), "git failed"),
			expected: FailureCodeToolchain,
		},
		{
			name:     "Config Error",
			err:      errortypes.ConfigError(errors.New("no such file"), "load failed"),
			expected: FailureCodeConfig,
		},
		{
			name:     "Plain Error",
			err:      errors.New("something broke"),
			expected: FailureCodeInternal,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if code := classifyError(tc.err); code != tc.expected {
				t.Errorf("Expected code %s, got %s", tc.expected, code)
			}
		})
	}
}

// TestClassifyWrappedError tests that classification sees through wrapping
func TestClassifyWrappedError(t *testing.T) {
	inner := &registry.UnknownToolError{Name: "deploy-code"}
	wrapped := errortypes.ProtocolError(inner, "tool call failed")

	if code := classifyError(wrapped); code != FailureCodeUnknownTool {
		t.Errorf("Expected %s through wrapping, got %s", FailureCodeUnknownTool, code)
	}
}
