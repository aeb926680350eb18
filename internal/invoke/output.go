package invoke

import (
	"encoding/json"
	"fmt"
	"io"
)

// Write serializes payload to w as two-space indented JSON followed by a newline.
// HTML characters are written verbatim.
func Write(w io.Writer, payload any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}

// ErrorPayload is the minimal error shape: a single "error" string.
type ErrorPayload struct {
	Error string `json:"error"`
}

// ErrorFrom wraps err's message in an ErrorPayload.
func ErrorFrom(err error) ErrorPayload {
	return ErrorPayload{Error: err.Error()}
}
