package cmd

import (
	"github.com/spf13/cobra"

	"github.com/notmcp/notmcp/internal/invoke"
	"github.com/notmcp/notmcp/internal/secret"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print tool definitions for the Anthropic Messages API",
		Long: `Print a JSON array of tool definitions (name, description, input_schema)
that can be passed as the "tools" parameter of an Anthropic Messages API request.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			registry, err := newRegistry(cfg, secret.EnvStore{})
			if err != nil {
				return err
			}
			return invoke.Write(cmd.OutOrStdout(), registry.ToolParams())
		},
	}
}
