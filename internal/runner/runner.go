// Package runner drives a single tool invocation: read the request from
// standard input, execute the tool, print the result, and pick the exit status.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/notmcp/notmcp/internal/invoke"
	"github.com/notmcp/notmcp/internal/secret"
	"github.com/notmcp/notmcp/internal/tool"
)

// Exit statuses.
const (
	ExitOK      = 0
	ExitFailure = 1
)

// Runner runs one tool against one request.
type Runner struct {
	tool   tool.Tool
	logger *slog.Logger
}

// New creates a new Runner.
func New(t tool.Tool, logger *slog.Logger) *Runner {
	return &Runner{tool: t, logger: logger}
}

// Run reads the request from stdin, executes the tool, and writes exactly one
// JSON object to stdout. It returns ExitOK for a success result and
// ExitFailure for every error path. Nothing is written anywhere but stdout.
func (r *Runner) Run(ctx context.Context, stdin io.Reader, interactive bool, stdout io.Writer) int {
	in := invoke.ReadInput(stdin, interactive)
	r.logger.Info("tool invoked", "tool", r.tool.Name(), "fields", len(in), "interactive", interactive)

	res := r.execute(ctx, in)

	if err := invoke.Write(stdout, res.Payload); err != nil {
		r.logger.Error("writing result", "tool", r.tool.Name(), "error", err)
		return ExitFailure
	}

	if res.IsError {
		r.logger.Info("tool finished", "tool", r.tool.Name(), "exit", ExitFailure)
		return ExitFailure
	}
	r.logger.Info("tool finished", "tool", r.tool.Name(), "exit", ExitOK)
	return ExitOK
}

// execute runs the tool and folds returned errors and panics into an error result.
func (r *Runner) execute(ctx context.Context, in invoke.Input) (res tool.Result) {
	defer func() {
		if p := recover(); p != nil {
			r.logger.Error("tool panicked", "tool", r.tool.Name(), "panic", p)
			res = Failure(fmt.Errorf("%v", p))
		}
	}()

	res, err := r.tool.Execute(ctx, in)
	if err != nil {
		r.logError(err)
		return Failure(err)
	}
	if res.IsError {
		r.logger.Warn("tool returned error result", "tool", r.tool.Name())
	}
	return res
}

func (r *Runner) logError(err error) {
	var missingParam *invoke.MissingParamError
	var missingSecret *secret.MissingError
	switch {
	case errors.As(err, &missingParam):
		r.logger.Info("missing parameter", "tool", r.tool.Name(), "param", missingParam.Name)
	case errors.As(err, &missingSecret):
		r.logger.Warn("missing credential", "tool", r.tool.Name(), "credential", missingSecret.Name)
	default:
		r.logger.Error("tool execution error", "tool", r.tool.Name(), "error", err)
	}
}

// Failure is the error result for err: {"error": err.Error()}.
func Failure(err error) tool.Result {
	return tool.Result{Payload: invoke.ErrorFrom(err), IsError: true}
}
