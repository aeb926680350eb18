package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/notmcp/notmcp/internal/secret"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available tools",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	registry, err := newRegistry(cfg, secret.EnvStore{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-16s  %-20s  %s\n", "NAME", "CREDENTIALS", "DESCRIPTION")
	fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────────")

	for _, t := range registry.List() {
		creds := strings.Join(t.Manifest().Credentials, ",")
		if creds == "" {
			creds = "-"
		}
		fmt.Fprintf(out, "%-16s  %-20s  %s\n", t.Name(), creds, t.Description())
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run a tool with: echo '{...}' | notmcp <name>")
	fmt.Fprintln(out, "Show its fields: notmcp describe <name>")

	return nil
}
