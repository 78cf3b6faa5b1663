package server

// ToolServer defines the interface for the MCP server that answers
// tool and resource requests from MCP clients.
type ToolServer interface {
	// Initialize registers the fixed catalogs with the transport layer.
	Initialize() error

	// Start serves the single stdio transport until it closes.
	Start() error

	// Stop gracefully shuts down the MCP server.
	Stop() error
}
