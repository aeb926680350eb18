package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/notmcp/notmcp/internal/config"
	"github.com/notmcp/notmcp/internal/secret"
)

// markdownRenderer is the glamour renderer for terminal markdown.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithStylePath("tokyo-night"),
		glamour.WithWordWrap(0),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe <tool>",
		Short: "Show a tool's input, output, and credentials",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			registry, err := newRegistry(config.Default(), secret.EnvStore{})
			if err != nil || len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return registry.Names(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: runDescribe,
	}
	cmd.Flags().String("format", "markdown", "output format: markdown or yaml")
	return cmd
}

func runDescribe(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	registry, err := newRegistry(cfg, secret.EnvStore{})
	if err != nil {
		return err
	}

	t := registry.Lookup(args[0])
	if t == nil {
		return fmt.Errorf("unknown tool %q (available: %s)", args[0], strings.Join(registry.Names(), ", "))
	}
	manifest := t.Manifest()
	out := cmd.OutOrStdout()

	switch format {
	case "yaml":
		data, err := yaml.Marshal(&manifest)
		if err != nil {
			return fmt.Errorf("marshaling manifest: %w", err)
		}
		_, err = out.Write(data)
		return err
	case "markdown":
		md := manifest.Markdown()
		if f, ok := out.(*os.File); ok && isTerminal(f) {
			md = renderMarkdown(md)
		}
		_, err := fmt.Fprintln(out, strings.TrimSuffix(md, "\n"))
		return err
	default:
		return fmt.Errorf("unknown format %q, must be markdown or yaml", format)
	}
}

// renderMarkdown converts markdown to styled terminal output using glamour.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimSuffix(rendered, "\n")
}
