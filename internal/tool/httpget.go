package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/notmcp/notmcp/internal/invoke"
)

const (
	httpGetDefaultUserAgent = "notmcp/1.0"
	maxHTTPGetTextLen       = 10000
	maxHTTPGetErrorLen      = 2000
)

// HTTPGetTool fetches a URL and returns the status, headers, and body.
type HTTPGetTool struct {
	// UserAgent defaults to notmcp/1.0. A caller-supplied User-Agent header replaces it.
	UserAgent string
	Timeout   time.Duration
}

type httpGetOutput struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Body    any               `json:"body"`
	Size    int               `json:"size"`
}

type httpGetError struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
	Body   string `json:"body"`
}

func (t *HTTPGetTool) Name() string { return "http-get" }

func (t *HTTPGetTool) Description() string {
	return "Fetch a URL and return the response (useful for APIs and web pages)"
}

func (t *HTTPGetTool) Manifest() Manifest {
	return Manifest{
		Name:        t.Name(),
		Description: t.Description(),
		Input: []Field{
			{Name: "url", Type: "string", Required: true, Description: "The URL to fetch"},
			{Name: "headers", Type: "object", Description: "Additional headers to send"},
		},
		Output: []Field{
			{Name: "status", Description: "HTTP status code"},
			{Name: "headers", Description: "Response headers"},
			{Name: "body", Description: "Response body, parsed as JSON if possible, otherwise text"},
			{Name: "size", Description: "Response size in bytes"},
		},
	}
}

func (t *HTTPGetTool) InputSchema() anthropic.ToolInputSchemaParam {
	return t.Manifest().InputSchema()
}

func (t *HTTPGetTool) Execute(ctx context.Context, in invoke.Input) (Result, error) {
	rawURL, err := in.Required("url")
	if err != nil {
		return Result{}, err
	}

	headers, err := headerMap(in.Optional("headers", map[string]any{}))
	if err != nil {
		return Result{}, err
	}

	req, err := newGetRequest(ctx, fmt.Sprint(rawURL))
	if err != nil {
		return Result{}, err
	}

	userAgent := t.UserAgent
	if userAgent == "" {
		userAgent = httpGetDefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	for _, key := range sortedKeys(headers) {
		req.Header.Set(key, fmt.Sprint(headers[key]))
	}

	resp, err := fetch(newHTTPClient(t.Timeout), req)
	if err != nil {
		var statusErr *StatusError
		var transportErr *TransportError
		switch {
		case errors.As(err, &statusErr):
			return errorResult(httpGetError{
				Error:  statusErr.Error(),
				Status: statusErr.Code,
				Body:   truncateRunes(decodeText(statusErr.Body), maxHTTPGetErrorLen),
			}), nil
		case errors.As(err, &transportErr):
			return errorResult(invoke.ErrorPayload{
				Error: "URL Error: " + transportErr.Reason(),
			}), nil
		default:
			return Result{}, err
		}
	}

	return Result{Payload: httpGetOutput{
		Status:  resp.Status,
		Headers: flattenHeader(resp.Header),
		Body:    responseBody(resp.Body),
		Size:    len(resp.Body),
	}}, nil
}

// responseBody returns the body as a JSON value when it parses, otherwise as
// text capped at maxHTTPGetTextLen characters.
func responseBody(raw []byte) any {
	text := decodeText(raw)
	if json.Valid([]byte(text)) {
		return json.RawMessage(text)
	}
	if runeCount(text) > maxHTTPGetTextLen {
		return truncateRunes(text, maxHTTPGetTextLen) +
			fmt.Sprintf("\n... (truncated, %d bytes total)", len(raw))
	}
	return text
}

func headerMap(v any) (map[string]any, error) {
	switch h := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return h, nil
	default:
		return nil, fmt.Errorf("headers must be an object, got %T", v)
	}
}

func flattenHeader(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key, values := range h {
		out[key] = strings.Join(values, ", ")
	}
	return out
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
