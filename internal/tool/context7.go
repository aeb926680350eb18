package tool

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/notmcp/notmcp/internal/invoke"
	"github.com/notmcp/notmcp/internal/secret"
)

const (
	context7DefaultBaseURL = "https://context7.com/api/v1"
	context7Credential     = "CONTEXT7_API_KEY"
	context7DefaultTokens  = 5000
	maxContext7ErrorLen    = 500
)

// Context7Tool fetches up-to-date library documentation from Context7.
type Context7Tool struct {
	// BaseURL defaults to the public Context7 API.
	BaseURL string
	Timeout time.Duration
	Secrets secret.Store
}

type context7Output struct {
	Library         any    `json:"library"`
	Topic           any    `json:"topic"`
	Docs            string `json:"docs"`
	TokensRequested any    `json:"tokens_requested"`
}

type context7Error struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func (t *Context7Tool) Name() string { return "context7-docs" }

func (t *Context7Tool) Description() string {
	return "Fetch up-to-date API documentation from Context7"
}

func (t *Context7Tool) Manifest() Manifest {
	return Manifest{
		Name:        t.Name(),
		Description: t.Description(),
		Credentials: []string{context7Credential},
		Input: []Field{
			{Name: "library", Type: "string", Required: true, Description: `Library path like "googleapis/gmail" or "vercel/next.js"`},
			{Name: "topic", Type: "string", Description: `Specific topic to search for like "send" or "authentication"`},
			{Name: "tokens", Type: "integer", Default: context7DefaultTokens, Description: "Maximum tokens to return"},
		},
		Output: []Field{
			{Name: "library", Description: "The library that was queried"},
			{Name: "topic", Description: `The topic that was queried, or "(all)"`},
			{Name: "docs", Description: "The documentation content"},
			{Name: "tokens_requested", Description: "The token budget sent to Context7"},
		},
	}
}

func (t *Context7Tool) InputSchema() anthropic.ToolInputSchemaParam {
	return t.Manifest().InputSchema()
}

func (t *Context7Tool) Execute(ctx context.Context, in invoke.Input) (Result, error) {
	library, err := in.Required("library")
	if err != nil {
		return Result{}, err
	}
	topic := in.Optional("topic", "")
	tokens := in.Optional("tokens", context7DefaultTokens)

	secrets := t.Secrets
	if secrets == nil {
		secrets = secret.EnvStore{}
	}
	apiKey, err := secrets.GetSecret(context7Credential)
	if err != nil {
		return Result{}, err
	}

	req, err := newGetRequest(ctx, t.docsURL(library, topic, tokens))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Accept", "text/plain")

	resp, err := fetch(newHTTPClient(t.Timeout), req)
	if err != nil {
		var statusErr *StatusError
		var transportErr *TransportError
		switch {
		case errors.As(err, &statusErr):
			return errorResult(context7Error{
				Error:   fmt.Sprintf("Context7 API error: HTTP %d", statusErr.Code),
				Details: truncateRunes(decodeText(statusErr.Body), maxContext7ErrorLen),
			}), nil
		case errors.As(err, &transportErr):
			return errorResult(invoke.ErrorPayload{
				Error: "Network error: " + transportErr.Reason(),
			}), nil
		default:
			return Result{}, err
		}
	}

	if invoke.IsBlank(topic) {
		topic = "(all)"
	}

	return Result{Payload: context7Output{
		Library:         library,
		Topic:           topic,
		Docs:            decodeText(resp.Body),
		TokensRequested: tokens,
	}}, nil
}

// docsURL path-composes library onto the base URL without escaping it, since
// library identifiers are themselves paths.
func (t *Context7Tool) docsURL(library, topic, tokens any) string {
	base := t.BaseURL
	if base == "" {
		base = context7DefaultBaseURL
	}

	q := url.Values{}
	q.Set("tokens", fmt.Sprint(tokens))
	if !invoke.IsBlank(topic) {
		q.Set("topic", fmt.Sprint(topic))
	}

	return fmt.Sprintf("%s/%s?%s", strings.TrimRight(base, "/"), fmt.Sprint(library), q.Encode())
}
