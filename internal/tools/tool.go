// Package tools defines the tool executor contract and the registry the
// MCP server dispatches tools/call requests through.
package tools

import "context"

// ToolExecutor executes a single tool call
type ToolExecutor interface {
	// Execute runs the tool with given arguments
	Execute(ctx context.Context, call ToolCall) (*ToolResult, error)

	// Definition returns the tool's schema for the client
	Definition() ToolDefinition

	// Metadata returns tool metadata
	Metadata() ToolMetadata
}

// ToolCall is a single invocation request
type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// ToolResult is the outcome of one tool invocation. Error marks the
// result as failed without aborting the protocol: tool failures are
// structured payloads, never transport errors.
type ToolResult struct {
	CallID  string
	Content string
	Error   error
}

// ToolDefinition describes a tool and its input schema
type ToolDefinition struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  ParameterSchema `json:"inputSchema"`
}

// ParameterSchema is a JSON-Schema object declaration
type ParameterSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required,omitempty"`
}

// Property describes one schema property
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ToolMetadata carries registry bookkeeping for a tool
type ToolMetadata struct {
	Name      string
	Version   string
	Category  string
	Dangerous bool
}
