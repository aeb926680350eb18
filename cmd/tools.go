package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/notmcp/notmcp/internal/config"
	"github.com/notmcp/notmcp/internal/invoke"
	"github.com/notmcp/notmcp/internal/logging"
	"github.com/notmcp/notmcp/internal/runner"
	"github.com/notmcp/notmcp/internal/secret"
	"github.com/notmcp/notmcp/internal/tool"
)

// newRegistry builds every tool from the resolved configuration.
func newRegistry(cfg config.Config, secrets secret.Store) (*tool.Registry, error) {
	registry := tool.NewRegistry()
	tools := []tool.Tool{
		&tool.Context7Tool{BaseURL: cfg.Context7BaseURL, Timeout: cfg.Timeout, Secrets: secrets},
		&tool.HTTPGetTool{UserAgent: cfg.UserAgent, Timeout: cfg.Timeout},
		&tool.EchoTool{},
	}
	for _, t := range tools {
		if err := registry.Register(t); err != nil {
			return nil, fmt.Errorf("registering tool %s: %w", t.Name(), err)
		}
	}
	return registry, nil
}

func newToolCmd(name, short string) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		Long: short + `

Reads a JSON object from standard input and prints a JSON object to standard
output. See "notmcp describe ` + name + `" for the fields.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTool(cmd, name)
		},
	}
}

func runTool(cmd *cobra.Command, name string) error {
	stdout := cmd.OutOrStdout()

	cfg, cfgErr := loadConfig(cmd)
	logger, cleanup := setupLogging(cfg.SlogLevel())
	defer cleanup()

	if cfgErr != nil {
		logger.Error("config error", "tool", name, "error", cfgErr)
		if err := invoke.Write(stdout, runner.Failure(cfgErr).Payload); err != nil {
			return err
		}
		return &exitError{code: runner.ExitFailure}
	}

	registry, err := newRegistry(cfg, secret.EnvStore{})
	if err != nil {
		return err
	}
	t := registry.Lookup(name)
	if t == nil {
		return fmt.Errorf("unknown tool: %s", name)
	}

	stdin := cmd.InOrStdin()
	code := runner.New(t, logger).Run(cmd.Context(), stdin, isTerminal(stdin), stdout)
	if code != runner.ExitOK {
		return &exitError{code: code}
	}
	return nil
}

// setupLogging opens the debug log. A log that cannot be opened never affects
// the tool's output, so failures fall back to discarding records.
func setupLogging(level slog.Level) (*slog.Logger, func()) {
	logger, closeLog, err := logging.Setup(level)
	if err != nil {
		return logging.Discard(), func() {}
	}
	return logger, func() { _ = closeLog() }
}

// isTerminal reports whether r is a file attached to a terminal.
func isTerminal(r any) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
