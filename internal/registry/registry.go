// Package registry implements the dispatch core of the DevAssist tool/resource
// server: two read-only name→descriptor maps and two name→handler maps,
// constructed once at startup and consulted with O(1) exact-match lookups.
package registry

import (
	"fmt"
	"time"

	"github.com/saasdev/devassist/internal/telemetry"
)

// Param describes a single named parameter in a tool's input schema.
type Param struct {
	// Name is the argument name as it appears in an invocation request.
	Name string `json:"name"`

	// Type is the primitive type expected for the argument ("string",
	// "array", ...). Recorded for discovery only; dispatch checks
	// presence, not type conformance.
	Type string `json:"type"`
}

// InputSchema is the structural description of a tool's named parameters.
type InputSchema struct {
	Required []Param `json:"required,omitempty"`
	Optional []Param `json:"optional,omitempty"`
}

// ToolDescriptor describes a registered tool. Immutable once registered.
type ToolDescriptor struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

// ResourceDescriptor describes a registered resource. Immutable once registered.
type ResourceDescriptor struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MimeType    string `json:"mimeType"`
}

// Content is a single typed content block in a response.
type Content struct {
	// Type is the block type; every built-in handler produces "text".
	Type string `json:"type"`

	// Text is the block payload.
	Text string `json:"text"`

	// MimeType tags the payload for resource reads ("text/markdown",
	// "application/json", ...). Empty for plain tool output.
	MimeType string `json:"mimeType,omitempty"`
}

// Result is the success payload of a tool call: one or more content blocks.
type Result struct {
	Content []Content `json:"content"`
}

// Text returns the concatenated text of all content blocks.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	var out string
	for _, c := range r.Content {
		out += c.Text
	}
	return out
}

// TextResult wraps a single text block into a Result.
func TextResult(text string) *Result {
	return &Result{Content: []Content{{Type: "text", Text: text}}}
}

// ToolHandler produces the result of a tool invocation. Handlers receive the
// raw argument mapping from the request; required-argument presence has
// already been checked by the time a handler runs.
type ToolHandler func(args map[string]any) (*Result, error)

// ResourceHandler produces the content block for a resource read.
type ResourceHandler func() (*Content, error)

// Registry is the dispatcher for the tool/resource server. It is stateless
// across requests: the catalogs are fixed after construction and every call
// is independent, so no locking is needed on the dispatch path.
type Registry struct {
	toolOrder     []string
	tools         map[string]ToolDescriptor
	toolHandlers  map[string]ToolHandler
	resourceOrder []string
	resources     map[string]ResourceDescriptor
	resHandlers   map[string]ResourceHandler
	metrics       *telemetry.MetricsCollector
}

// New creates an empty Registry. Register the full catalog before serving;
// there is no dynamic registration once requests are being dispatched.
func New(metrics *telemetry.MetricsCollector) *Registry {
	return &Registry{
		tools:        make(map[string]ToolDescriptor),
		toolHandlers: make(map[string]ToolHandler),
		resources:    make(map[string]ResourceDescriptor),
		resHandlers:  make(map[string]ResourceHandler),
		metrics:      metrics,
	}
}

// RegisterTool adds a tool descriptor and its handler to the catalog.
// Registration order is preserved by ListTools.
func (r *Registry) RegisterTool(desc ToolDescriptor, handler ToolHandler) error {
	if desc.Name == "" {
		return fmt.Errorf("tool descriptor requires a name")
	}
	if handler == nil {
		return fmt.Errorf("tool %q requires a handler", desc.Name)
	}
	if _, exists := r.tools[desc.Name]; exists {
		return fmt.Errorf("tool %q already registered", desc.Name)
	}

	r.toolOrder = append(r.toolOrder, desc.Name)
	r.tools[desc.Name] = desc
	r.toolHandlers[desc.Name] = handler
	return nil
}

// RegisterResource adds a resource descriptor and its handler to the catalog.
func (r *Registry) RegisterResource(desc ResourceDescriptor, handler ResourceHandler) error {
	if desc.URI == "" {
		return fmt.Errorf("resource descriptor requires a uri")
	}
	if handler == nil {
		return fmt.Errorf("resource %q requires a handler", desc.URI)
	}
	if _, exists := r.resources[desc.URI]; exists {
		return fmt.Errorf("resource %q already registered", desc.URI)
	}

	r.resourceOrder = append(r.resourceOrder, desc.URI)
	r.resources[desc.URI] = desc
	r.resHandlers[desc.URI] = handler
	return nil
}

// ListTools returns the full tool catalog in registration order.
func (r *Registry) ListTools() []ToolDescriptor {
	out := make([]ToolDescriptor, 0, len(r.toolOrder))
	for _, name := range r.toolOrder {
		out = append(out, r.tools[name])
	}
	return out
}

// ListResources returns the full resource catalog in registration order.
func (r *Registry) ListResources() []ResourceDescriptor {
	out := make([]ResourceDescriptor, 0, len(r.resourceOrder))
	for _, uri := range r.resourceOrder {
		out = append(out, r.resources[uri])
	}
	return out
}

// Tool returns the descriptor registered under name, if any.
func (r *Registry) Tool(name string) (ToolDescriptor, bool) {
	desc, ok := r.tools[name]
	return desc, ok
}

// Resource returns the descriptor registered under uri, if any.
func (r *Registry) Resource(uri string) (ResourceDescriptor, bool) {
	desc, ok := r.resources[uri]
	return desc, ok
}

// CallTool dispatches an invocation request by exact, case-sensitive name
// match. The name must be in the catalog and every required argument
// declared by the descriptor must be present; argument types are not
// checked beyond presence.
func (r *Registry) CallTool(name string, args map[string]any) (*Result, error) {
	desc, ok := r.tools[name]
	if !ok {
		r.count(telemetry.MetricToolCallsUnknown)
		return nil, &UnknownToolError{Name: name}
	}

	for _, param := range desc.InputSchema.Required {
		if _, present := args[param.Name]; !present {
			r.count(telemetry.MetricToolCallsInvalid)
			return nil, &MissingArgumentError{Tool: name, Argument: param.Name}
		}
	}

	start := time.Now()
	result, err := r.toolHandlers[name](args)
	r.timer(telemetry.MetricToolCallDuration, time.Since(start))
	if err != nil {
		r.count(telemetry.MetricToolCallsFailure)
		return nil, err
	}

	r.count(telemetry.MetricToolCallsSuccess)
	return result, nil
}

// ReadResource dispatches a resource read by exact uri match.
func (r *Registry) ReadResource(uri string) (*Content, error) {
	_, ok := r.resources[uri]
	if !ok {
		r.count(telemetry.MetricResourceReadsUnknown)
		return nil, &UnknownResourceError{URI: uri}
	}

	content, err := r.resHandlers[uri]()
	if err != nil {
		r.count(telemetry.MetricResourceReadsFailure)
		return nil, err
	}

	r.count(telemetry.MetricResourceReadsSuccess)
	return content, nil
}

func (r *Registry) count(name string) {
	if r.metrics != nil {
		r.metrics.IncrementCounter(name, 1)
	}
}

func (r *Registry) timer(name string, d time.Duration) {
	if r.metrics != nil {
		r.metrics.RecordTimer(name, d)
	}
}
