package tool

import (
	"context"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/notmcp/notmcp/internal/invoke"
)

const (
	echoDefaultMessage = "Hello from notmcp!"
	echoTagline        = "Tools are just code."
)

// EchoTool echoes its input back with a timestamp. It is useful for checking
// that a caller can run tools at all.
type EchoTool struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

type echoOutput struct {
	Echo      any    `json:"echo"`
	Timestamp string `json:"timestamp"`
	Notmcp    string `json:"notmcp"`
}

func (t *EchoTool) Name() string { return "demo-echo" }

func (t *EchoTool) Description() string {
	return "Echo back the input (useful for testing notmcp)"
}

func (t *EchoTool) Manifest() Manifest {
	return Manifest{
		Name:        t.Name(),
		Description: t.Description(),
		Input: []Field{
			{Name: "message", Type: "string", Default: echoDefaultMessage, Description: "Message to echo back"},
		},
		Output: []Field{
			{Name: "echo", Description: "The input message echoed back"},
			{Name: "timestamp", Description: "RFC 3339 timestamp when the tool ran"},
			{Name: "notmcp", Description: "A fixed tagline"},
		},
	}
}

func (t *EchoTool) InputSchema() anthropic.ToolInputSchemaParam {
	return t.Manifest().InputSchema()
}

func (t *EchoTool) Execute(_ context.Context, in invoke.Input) (Result, error) {
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}

	return Result{Payload: echoOutput{
		Echo:      in.Optional("message", echoDefaultMessage),
		Timestamp: now().Format(time.RFC3339Nano),
		Notmcp:    echoTagline,
	}}, nil
}
