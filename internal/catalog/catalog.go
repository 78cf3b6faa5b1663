package catalog

import (
	"github.com/saasdev/devassist/internal/registry"
	"github.com/saasdev/devassist/internal/telemetry"
)

// Tools returns the fixed tool catalog in its canonical registration order.
func Tools() []registry.ToolDescriptor {
	return []registry.ToolDescriptor{
		{
			Name:        ToolAnalyzeCode,
			Description: "Analyze code quality and suggest improvements",
			InputSchema: registry.InputSchema{
				Required: []registry.Param{
					{Name: "code", Type: "string"},
					{Name: "language", Type: "string"},
				},
			},
		},
		{
			Name:        ToolGenerateTests,
			Description: "Generate a unit test scaffold for the given code",
			InputSchema: registry.InputSchema{
				Required: []registry.Param{
					{Name: "code", Type: "string"},
				},
				Optional: []registry.Param{
					{Name: "framework", Type: "string"},
				},
			},
		},
		{
			Name:        ToolOptimizePerformance,
			Description: "Suggest performance optimizations for the given code",
			InputSchema: registry.InputSchema{
				Required: []registry.Param{
					{Name: "code", Type: "string"},
				},
				Optional: []registry.Param{
					{Name: "metrics", Type: "array"},
				},
			},
		},
	}
}

// Resources returns the fixed resource catalog in its canonical
// registration order.
func Resources() []registry.ResourceDescriptor {
	return []registry.ResourceDescriptor{
		{
			URI:         ResourceBestPractices,
			Name:        "SaaS Best Practices",
			Description: "Best practices for building SaaS services",
			MimeType:    "text/markdown",
		},
		{
			URI:         ResourceAPITemplate,
			Name:        "API Endpoint Template",
			Description: "Template describing a standard SaaS REST API surface",
			MimeType:    "application/json",
		},
	}
}

// NewRegistry builds the dispatch registry with the full fixed catalog
// registered. The returned registry is complete: no further registration
// happens after this point.
func NewRegistry(metrics *telemetry.MetricsCollector) (*registry.Registry, error) {
	reg := registry.New(metrics)

	handlers := map[string]registry.ToolHandler{
		ToolAnalyzeCode:         handleAnalyzeCode,
		ToolGenerateTests:       handleGenerateTests,
		ToolOptimizePerformance: handleOptimizePerformance,
	}
	for _, desc := range Tools() {
		if err := reg.RegisterTool(desc, handlers[desc.Name]); err != nil {
			return nil, err
		}
	}

	payloads := map[string]string{
		ResourceBestPractices: bestPracticesDoc,
		ResourceAPITemplate:   apiTemplateDoc,
	}
	for _, desc := range Resources() {
		desc := desc
		payload := payloads[desc.URI]
		handler := func() (*registry.Content, error) {
			return &registry.Content{
				Type:     "text",
				Text:     payload,
				MimeType: desc.MimeType,
			}, nil
		}
		if err := reg.RegisterResource(desc, handler); err != nil {
			return nil, err
		}
	}

	return reg, nil
}

func handleAnalyzeCode(args map[string]any) (*registry.Result, error) {
	code := stringArg(args, "code")
	language := stringArg(args, "language")
	return registry.TextResult(analyzeCodeReport(code, language)), nil
}

func handleGenerateTests(args map[string]any) (*registry.Result, error) {
	code := stringArg(args, "code")
	framework := stringArg(args, "framework")
	if framework == "" {
		framework = DefaultFramework
	}
	return registry.TextResult(generateTestsScaffold(code, framework)), nil
}

func handleOptimizePerformance(args map[string]any) (*registry.Result, error) {
	code := stringArg(args, "code")
	metrics := stringSliceArg(args, "metrics")
	if len(metrics) == 0 {
		metrics = DefaultMetrics
	}
	return registry.TextResult(optimizePerformanceReport(code, metrics)), nil
}
