package tool

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const defaultFetchTimeout = 30 * time.Second

// StatusError is a protocol error: the server answered with a non-2xx status.
type StatusError struct {
	Code   int
	Reason string
	Body   []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Code, e.Reason)
}

// TransportError is a failure before any response arrived: name resolution,
// connection, or the timeout elapsing.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return e.Reason() }

func (e *TransportError) Unwrap() error { return e.Err }

// Reason returns the underlying cause without the request method and URL.
func (e *TransportError) Reason() string {
	var uerr *url.Error
	if errors.As(e.Err, &uerr) {
		return uerr.Err.Error()
	}
	return e.Err.Error()
}

type response struct {
	Status int
	Header http.Header
	Body   []byte
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &http.Client{
		Timeout: timeout,
	}
}

// fetch sends req once. It returns a *StatusError for a non-2xx response, a
// *TransportError when no response arrived, and any other error for failures
// reading the body.
func fetch(client *http.Client, req *http.Request) (*response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Code:   resp.StatusCode,
			Reason: reasonPhrase(resp),
			Body:   body,
		}
	}

	return &response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   body,
	}, nil
}

// reasonPhrase extracts the server's reason phrase from the status line.
func reasonPhrase(resp *http.Response) string {
	reason := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return http.StatusText(resp.StatusCode)
	}
	return reason
}

// newGetRequest builds a GET for rawURL, rejecting URLs without a scheme or host.
func newGetRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if req.URL.Scheme == "" || req.URL.Host == "" {
		return nil, fmt.Errorf("unknown url type: %q", rawURL)
	}
	return req, nil
}

// decodeText decodes body as UTF-8, replacing invalid sequences.
func decodeText(body []byte) string {
	return strings.ToValidUTF8(string(body), "\uFFFD")
}

// truncateRunes returns the first n characters of s.
func truncateRunes(s string, n int) string {
	if n < 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func runeCount(s string) int {
	return utf8.RuneCountInString(s)
}
