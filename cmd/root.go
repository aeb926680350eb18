package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notmcp/notmcp/internal/config"
	"github.com/notmcp/notmcp/internal/secret"
	"github.com/notmcp/notmcp/internal/version"
)

// exitError carries a tool's non-zero exit status. The tool has already
// reported the failure on stdout, so nothing more is printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "notmcp",
		Short: "Standalone tools that read JSON on stdin and print JSON on stdout",
		Long: `notmcp bundles small single-shot tools. Each tool reads one JSON object
from standard input, performs one action, prints one JSON object to standard
output, and exits 0 on success or 1 on any error.

Run a tool as a subcommand (notmcp http-get) or through a link named after it.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "path to a config file")

	registry, err := newRegistry(config.Default(), secret.EnvStore{})
	cobra.CheckErr(err)
	for _, t := range registry.List() {
		root.AddCommand(newToolCmd(t.Name(), t.Description()))
	}

	root.AddCommand(newListCmd(), newDescribeCmd(), newSchemaCmd())
	return root
}

// Execute runs the root command.
func Execute() {
	root := newRootCmd()
	root.SetArgs(dispatchArgs(os.Args))

	if err := root.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// dispatchArgs maps argv to cobra arguments. When the binary is invoked under
// a tool's name (a symlink or hard link), that tool runs directly.
func dispatchArgs(argv []string) []string {
	if len(argv) == 0 {
		return nil
	}

	name := strings.TrimSuffix(filepath.Base(argv[0]), ".exe")
	registry, err := newRegistry(config.Default(), secret.EnvStore{})
	if err == nil && registry.Lookup(name) != nil {
		return append([]string{name}, argv[1:]...)
	}
	return argv[1:]
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	explicit, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Default(), err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return config.Default(), fmt.Errorf("getting working directory: %w", err)
	}

	cfg, err := config.Load(workDir, explicit)
	if err != nil {
		return config.Default(), fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}
