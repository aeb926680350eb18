package tool

import (
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
)

// Manifest describes a tool's contract: what it reads from standard input,
// which credentials it needs, and what it prints.
type Manifest struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Credentials []string `yaml:"credentials"`
	Input       []Field  `yaml:"input"`
	Output      []Field  `yaml:"output"`
}

// Field is one input parameter or output key.
type Field struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
	Default     any    `yaml:"default,omitempty"`
	Description string `yaml:"description"`
}

// InputSchema builds a JSON schema for the manifest's input fields.
func (m Manifest) InputSchema() anthropic.ToolInputSchemaParam {
	props := make(map[string]any, len(m.Input))
	var required []string
	for _, f := range m.Input {
		prop := map[string]any{"description": f.Description}
		if f.Type != "" {
			prop["type"] = f.Type
		}
		if f.Default != nil {
			prop["default"] = f.Default
		}
		props[f.Name] = prop
		if f.Required {
			required = append(required, f.Name)
		}
	}
	return anthropic.ToolInputSchemaParam{
		Properties: props,
		Required:   required,
	}
}

// Markdown renders the manifest as a markdown document.
func (m Manifest) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n", m.Name, m.Description)

	b.WriteString("\n## Credentials\n\n")
	if len(m.Credentials) == 0 {
		b.WriteString("None.\n")
	}
	for _, c := range m.Credentials {
		fmt.Fprintf(&b, "- `%s` (environment)\n", c)
	}

	b.WriteString("\n## Input\n\n")
	if len(m.Input) == 0 {
		b.WriteString("None.\n")
	}
	for _, f := range m.Input {
		var qual string
		switch {
		case f.Required:
			qual = "required"
		case f.Default != nil:
			qual = fmt.Sprintf("optional, default `%v`", f.Default)
		default:
			qual = "optional"
		}
		fmt.Fprintf(&b, "- `%s` (%s, %s): %s\n", f.Name, f.Type, qual, f.Description)
	}

	b.WriteString("\n## Output\n\n")
	for _, f := range m.Output {
		fmt.Fprintf(&b, "- `%s`: %s\n", f.Name, f.Description)
	}

	return b.String()
}
