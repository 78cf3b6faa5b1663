package registry

import "fmt"

// UnknownToolError reports an invocation request naming a tool outside the
// catalog. It is a caller error: the failure propagates to the caller as a
// dispatch error and the server keeps serving.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

// UnknownResourceError reports a read request naming a resource uri outside
// the catalog.
type UnknownResourceError struct {
	URI string
}

func (e *UnknownResourceError) Error() string {
	return fmt.Sprintf("Unknown resource: %s", e.URI)
}

// MissingArgumentError reports an invocation request that omits an argument
// the tool's input schema declares as required.
type MissingArgumentError struct {
	Tool     string
	Argument string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("Missing required argument for %s: %s", e.Tool, e.Argument)
}
