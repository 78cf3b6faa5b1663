// Package catalog defines the fixed tool and resource catalogs
// advertised by the DevAssist server.
package catalog

const (
	// ToolAnalyzeCode is the name of the analyze-code tool
	ToolAnalyzeCode = "analyze-code"

	// ToolGenerateTests is the name of the generate-tests tool
	ToolGenerateTests = "generate-tests"

	// ToolOptimizePerformance is the name of the optimize-performance tool
	ToolOptimizePerformance = "optimize-performance"

	// ResourceBestPractices is the uri of the best-practices document
	ResourceBestPractices = "saas://docs/best-practices"

	// ResourceAPITemplate is the uri of the endpoint-template document
	ResourceAPITemplate = "saas://templates/api"

	// DefaultFramework is the test framework assumed when a
	// generate-tests request omits the framework argument
	DefaultFramework = "jest"
)

// DefaultMetrics is the metric set reviewed when an optimize-performance
// request omits the metrics argument.
var DefaultMetrics = []string{"execution-time", "memory-usage"}

// AnalyzeCodeRequest defines the input schema for the analyze-code tool
type AnalyzeCodeRequest struct {
	// Code is the source text to analyze
	Code string `json:"code"`

	// Language is the language the code is written in
	Language string `json:"language"`
}

// Args converts the request into the argument mapping dispatched to the
// registry. Both fields are required, so both are always present.
func (r AnalyzeCodeRequest) Args() map[string]any {
	return map[string]any{
		"code":     r.Code,
		"language": r.Language,
	}
}

// GenerateTestsRequest defines the input schema for the generate-tests tool
type GenerateTestsRequest struct {
	// Code is the source text to scaffold tests for
	Code string `json:"code"`

	// Framework selects the test framework; DefaultFramework when empty
	Framework string `json:"framework,omitempty"`
}

// Args converts the request into the argument mapping dispatched to the
// registry. The optional framework argument is omitted when unset so that
// presence checks and defaulting behave the same as over the wire.
func (r GenerateTestsRequest) Args() map[string]any {
	args := map[string]any{"code": r.Code}
	if r.Framework != "" {
		args["framework"] = r.Framework
	}
	return args
}

// OptimizePerformanceRequest defines the input schema for the
// optimize-performance tool
type OptimizePerformanceRequest struct {
	// Code is the source text to review
	Code string `json:"code"`

	// Metrics names the performance metrics to review; DefaultMetrics
	// when empty
	Metrics []string `json:"metrics,omitempty"`
}

// Args converts the request into the argument mapping dispatched to the
// registry.
func (r OptimizePerformanceRequest) Args() map[string]any {
	args := map[string]any{"code": r.Code}
	if len(r.Metrics) > 0 {
		args["metrics"] = r.Metrics
	}
	return args
}
