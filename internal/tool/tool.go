package tool

import (
	"context"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/notmcp/notmcp/internal/invoke"
)

// Tool defines the interface that all tools must implement.
type Tool interface {
	Name() string
	Description() string
	Manifest() Manifest
	InputSchema() anthropic.ToolInputSchemaParam
	// Execute performs the tool's single action. Protocol and transport
	// failures come back as a Result with IsError set; a returned error is an
	// unexpected failure.
	Execute(ctx context.Context, in invoke.Input) (Result, error)
}

// Result holds the output from a tool execution. Payload is serialized to
// standard output as-is.
type Result struct {
	Payload any
	IsError bool
}

func errorResult(payload any) Result {
	return Result{Payload: payload, IsError: true}
}
