package catalog

import (
	"fmt"
	"strings"
)

// The tool handlers below are deliberately canned: each formats a fixed
// textual report templated with the supplied arguments and performs no real
// analysis. The server is a scaffold for a capability-serving endpoint, not
// an analyzer, and the templates are part of its contract.

// stringArg reads a string argument, tolerating absent or non-string values.
// Dispatch only guarantees presence of required arguments, not their types.
func stringArg(args map[string]any, name string) string {
	v, ok := args[name].(string)
	if !ok {
		return ""
	}
	return v
}

// stringSliceArg reads an array-of-string argument. JSON decoding hands the
// value over as []any, direct library callers as []string; both are accepted.
func stringSliceArg(args map[string]any, name string) []string {
	switch v := args[name].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func analyzeCodeReport(code, language string) string {
	var b strings.Builder

	b.WriteString("# Code Analysis Report\n\n")
	fmt.Fprintf(&b, "Language: %s\n\n", language)
	b.WriteString("## Review Summary\n")
	fmt.Fprintf(&b, "The submitted %s code was checked against the standard review checklist:\n\n", language)
	b.WriteString("- Structure: keep modules small and group related behavior together\n")
	b.WriteString("- Readability: prefer descriptive names over abbreviations\n")
	b.WriteString("- Error handling: validate inputs at the boundary and fail fast\n")
	b.WriteString("- Security: never build shell commands or queries by string concatenation\n")
	b.WriteString("- Testing: cover the public surface before refactoring internals\n\n")
	b.WriteString("## Submitted Code\n\n")
	fmt.Fprintf(&b, "```%s\n%s\n```\n", language, code)

	return b.String()
}

func generateTestsScaffold(code, framework string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "// Test scaffold generated for the %s framework.\n", framework)
	b.WriteString("//\n// Code under test:\n")
	for _, line := range strings.Split(code, "\n") {
		fmt.Fprintf(&b, "// %s\n", line)
	}
	b.WriteString("\ndescribe('generated suite', () => {\n")
	b.WriteString("  beforeEach(() => {\n")
	b.WriteString("    // arrange shared fixtures\n")
	b.WriteString("  });\n\n")
	b.WriteString("  test('executes the code under test without throwing', () => {\n")
	b.WriteString("    expect(true).toBe(true);\n")
	b.WriteString("  });\n\n")
	b.WriteString("  test.todo('cover the edge cases of the code under test');\n")
	b.WriteString("});\n")

	return b.String()
}

func optimizePerformanceReport(code string, metrics []string) string {
	var b strings.Builder

	b.WriteString("# Performance Optimization Report\n\n")
	fmt.Fprintf(&b, "Metrics reviewed: %s\n\n", strings.Join(metrics, ", "))
	b.WriteString("## Recommendations\n")
	for _, metric := range metrics {
		fmt.Fprintf(&b, "- %s: %s\n", metric, recommendationFor(metric))
	}
	b.WriteString("\n## Submitted Code\n\n")
	fmt.Fprintf(&b, "```\n%s\n```\n", code)

	return b.String()
}

func recommendationFor(metric string) string {
	switch metric {
	case "execution-time":
		return "cache repeated computations and avoid quadratic loops over request data"
	case "memory-usage":
		return "reuse buffers, stream large payloads, and release references promptly"
	case "network":
		return "batch round trips and compress payloads above a few kilobytes"
	case "database":
		return "index the columns in your hot queries and paginate result sets"
	default:
		return "profile before optimizing; measure the baseline for this metric first"
	}
}

// bestPracticesDoc is the static text/markdown payload served for
// saas://docs/best-practices.
const bestPracticesDoc = `# SaaS Development Best Practices

## Architecture
- Keep services stateless; put durable state in managed stores
- Version every public API from day one
- Design each endpoint to be idempotent where the operation allows it

## Security
- Pass subprocess arguments as vectors, never interpolated shell strings
- Keep secrets in the environment or a secret manager, never in source
- Validate and bound every request at the edge

## Delivery
- Ship behind feature flags and roll out incrementally
- Automate the path from commit to deploy; keep it under ten minutes
- Record every deployment with its URL and timestamp

## Observability
- Log structured events, not prose
- Count every request outcome, including the failures
- Alert on symptoms users feel, not on internal thresholds
`

// apiTemplateDoc is the static application/json payload served for
// saas://templates/api.
const apiTemplateDoc = `{
  "name": "saas-api-template",
  "version": "1.0.0",
  "baseUrl": "/api/v1",
  "endpoints": [
    {"method": "GET", "path": "/health", "description": "Service health probe", "auth": "none"},
    {"method": "POST", "path": "/auth/login", "description": "Exchange credentials for a bearer token", "auth": "none"},
    {"method": "GET", "path": "/users", "description": "List users in the tenant", "auth": "bearer"},
    {"method": "POST", "path": "/users", "description": "Create a user", "auth": "bearer"},
    {"method": "GET", "path": "/users/{id}", "description": "Fetch a single user", "auth": "bearer"},
    {"method": "PATCH", "path": "/users/{id}", "description": "Update a user", "auth": "bearer"},
    {"method": "DELETE", "path": "/users/{id}", "description": "Remove a user", "auth": "bearer"}
  ]
}
`
