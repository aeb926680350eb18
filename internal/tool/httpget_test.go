package tool

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/notmcp/notmcp/internal/invoke"
)

func TestHTTPGetBodies(t *testing.T) {
	t.Parallel()

	longText := strings.Repeat("a", 15000)

	tests := []struct {
		name     string
		body     string
		wantJSON bool
		wantText string
		wantSize int
	}{
		{
			name:     "json object",
			body:     `{"name": "notmcp", "tags": ["a", "b"]}`,
			wantJSON: true,
			wantSize: 38,
		},
		{
			name:     "json array",
			body:     `[1, 2, 3]`,
			wantJSON: true,
			wantSize: 9,
		},
		{
			name:     "short text",
			body:     "<html>hello & goodbye</html>",
			wantText: "<html>hello & goodbye</html>",
			wantSize: 28,
		},
		{
			name:     "empty body",
			body:     "",
			wantText: "",
			wantSize: 0,
		},
		{
			name:     "long text truncated",
			body:     longText,
			wantText: strings.Repeat("a", 10000) + "\n... (truncated, 15000 bytes total)",
			wantSize: 15000,
		},
		{
			name:     "exactly at limit",
			body:     strings.Repeat("b", 10000),
			wantText: strings.Repeat("b", 10000),
			wantSize: 10000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Upstream", "test")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			res, err := (&HTTPGetTool{}).Execute(context.Background(), invoke.Input{"url": srv.URL})
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if res.IsError {
				t.Fatalf("unexpected error result: %+v", res.Payload)
			}

			out := res.Payload.(httpGetOutput)
			if out.Status != http.StatusOK {
				t.Errorf("status = %d", out.Status)
			}
			if out.Size != tt.wantSize {
				t.Errorf("size = %d, want %d", out.Size, tt.wantSize)
			}
			if out.Headers["X-Upstream"] != "test" {
				t.Errorf("expected upstream header, got %v", out.Headers)
			}

			if tt.wantJSON {
				raw, ok := out.Body.(json.RawMessage)
				if !ok {
					t.Fatalf("expected parsed JSON body, got %T", out.Body)
				}
				if string(raw) != tt.body {
					t.Errorf("body = %s, want %s", raw, tt.body)
				}
				return
			}

			text, ok := out.Body.(string)
			if !ok {
				t.Fatalf("expected text body, got %T", out.Body)
			}
			if text != tt.wantText {
				t.Errorf("body mismatch: got %d chars, want %d", len(text), len(tt.wantText))
			}
		})
	}
}

func TestHTTPGetJSONBodyIsNotAString(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	res, err := (&HTTPGetTool{}).Execute(context.Background(), invoke.Input{"url": srv.URL})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := json.Marshal(res.Payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Body map[string]any `json:"body"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("body is not an embedded object: %v (%s)", err, data)
	}
	if decoded.Body["ok"] != true {
		t.Errorf("unexpected body %v", decoded.Body)
	}
}

func TestHTTPGetHeaders(t *testing.T) {
	t.Parallel()

	received := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.Header.Clone()
	}))
	defer srv.Close()

	tests := []struct {
		name          string
		headers       any
		wantUserAgent string
		wantExtra     map[string]string
	}{
		{
			name:          "default user agent",
			wantUserAgent: "notmcp/1.0",
		},
		{
			name:          "caller headers",
			headers:       map[string]any{"X-Api-Key": "abc", "X-Count": json.Number("3")},
			wantUserAgent: "notmcp/1.0",
			wantExtra:     map[string]string{"X-Api-Key": "abc", "X-Count": "3"},
		},
		{
			name:          "caller user agent replaces default",
			headers:       map[string]any{"user-agent": "curl/8.0"},
			wantUserAgent: "curl/8.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := invoke.Input{"url": srv.URL}
			if tt.headers != nil {
				in["headers"] = tt.headers
			}

			res, err := (&HTTPGetTool{}).Execute(context.Background(), in)
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if res.IsError {
				t.Fatalf("unexpected error result: %+v", res.Payload)
			}

			got := <-received
			if ua := got.Values("User-Agent"); len(ua) != 1 || ua[0] != tt.wantUserAgent {
				t.Errorf("User-Agent = %v, want %q", ua, tt.wantUserAgent)
			}
			for k, v := range tt.wantExtra {
				if got.Get(k) != v {
					t.Errorf("header %s = %q, want %q", k, got.Get(k), v)
				}
			}
		})
	}
}

func TestHTTPGetConfiguredUserAgent(t *testing.T) {
	t.Parallel()

	received := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received <- r.UserAgent()
	}))
	defer srv.Close()

	if _, err := (&HTTPGetTool{UserAgent: "mirror/2.0"}).Execute(context.Background(), invoke.Input{"url": srv.URL}); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if ua := <-received; ua != "mirror/2.0" {
		t.Errorf("User-Agent = %q", ua)
	}
}

func TestHTTPGetProtocolError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("no such page: " + strings.Repeat("z", 3000)))
	}))
	defer srv.Close()

	res, err := (&HTTPGetTool{}).Execute(context.Background(), invoke.Input{"url": srv.URL + "/missing"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}

	out := res.Payload.(httpGetError)
	if out.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", out.Status)
	}
	if out.Error != "HTTP 404: Not Found" {
		t.Errorf("unexpected error %q", out.Error)
	}
	if len(out.Body) != 2000 {
		t.Errorf("expected body truncated to 2000 chars, got %d", len(out.Body))
	}
	if !strings.HasPrefix(out.Body, "no such page: ") {
		t.Errorf("expected body prefix from upstream, got %q", out.Body[:20])
	}
}

func TestHTTPGetTransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := srv.URL
	srv.Close()

	res, err := (&HTTPGetTool{Timeout: 2 * time.Second}).Execute(context.Background(), invoke.Input{"url": target})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}

	out := res.Payload.(invoke.ErrorPayload)
	if !strings.HasPrefix(out.Error, "URL Error: ") {
		t.Errorf("unexpected error %q", out.Error)
	}
	if strings.Contains(out.Error, target) {
		t.Errorf("expected reason without request URL, got %q", out.Error)
	}
}

func TestHTTPGetTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	res, err := (&HTTPGetTool{Timeout: 50 * time.Millisecond}).Execute(context.Background(), invoke.Input{"url": srv.URL})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !res.IsError {
		t.Fatal("expected error result")
	}
	if _, ok := res.Payload.(invoke.ErrorPayload); !ok {
		t.Fatalf("expected transport error payload, got %T", res.Payload)
	}
}

func TestHTTPGetUnexpectedFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input invoke.Input
	}{
		{name: "headers not an object", input: invoke.Input{"url": "http://example.com", "headers": "X-A: 1"}},
		{name: "url without scheme", input: invoke.Input{"url": "example.com/page"}},
		{name: "unparseable url", input: invoke.Input{"url": "http://[::1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res, err := (&HTTPGetTool{}).Execute(context.Background(), tt.input)
			if err == nil {
				t.Fatalf("expected error, got result %+v", res)
			}
			var missing *invoke.MissingParamError
			if errors.As(err, &missing) {
				t.Errorf("expected catch-all error, got %v", err)
			}
		})
	}
}

func TestHTTPGetMissingURL(t *testing.T) {
	t.Parallel()

	_, err := (&HTTPGetTool{}).Execute(context.Background(), invoke.Input{})
	var missing *invoke.MissingParamError
	if !errors.As(err, &missing) || missing.Name != "url" {
		t.Fatalf("expected missing url error, got %v", err)
	}
}
