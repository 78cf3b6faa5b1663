package server

import (
	"errors"

	"github.com/saasdev/devassist/internal/errortypes"
	"github.com/saasdev/devassist/internal/registry"
)

// Failure codes attached to dispatch errors when they are logged. The MCP
// transport carries only the error message; the code gives log readers a
// stable label to filter on.
const (
	FailureCodeUnknownTool     = "UNKNOWN_TOOL"
	FailureCodeUnknownResource = "UNKNOWN_RESOURCE"
	FailureCodeInvalidRequest  = "INVALID_REQUEST"
	FailureCodeValidation      = "VALIDATION_ERROR"
	FailureCodeDatabase        = "DATABASE_ERROR"
	FailureCodeToolchain       = "TOOLCHAIN_ERROR"
	FailureCodeConfig          = "CONFIG_ERROR"
	FailureCodeInternal        = "INTERNAL_ERROR"
)

// classifyError maps a dispatch error to its failure code.
func classifyError(err error) string {
	var unknownTool *registry.UnknownToolError
	if errors.As(err, &unknownTool) {
		return FailureCodeUnknownTool
	}

	var unknownResource *registry.UnknownResourceError
	if errors.As(err, &unknownResource) {
		return FailureCodeUnknownResource
	}

	var missingArg *registry.MissingArgumentError
	if errors.As(err, &missingArg) {
		return FailureCodeInvalidRequest
	}

	var appErr *errortypes.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case errortypes.ErrorTypeValidation:
			return FailureCodeValidation
		case errortypes.ErrorTypeDatabase:
			return FailureCodeDatabase
		case errortypes.ErrorTypeToolchain:
			return FailureCodeToolchain
		case errortypes.ErrorTypeConfig:
			return FailureCodeConfig
		}
	}

	return FailureCodeInternal
}
