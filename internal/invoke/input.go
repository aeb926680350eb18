// Package invoke implements the stdin/stdout contract shared by every tool:
// read one JSON object, pull parameters out of it, and print one JSON object.
package invoke

import (
	"encoding/json"
	"fmt"
	"io"
)

// Input is the request object a tool receives on standard input.
type Input map[string]any

// MissingParamError reports a required parameter that was absent from the input.
type MissingParamError struct {
	Name string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("Missing required parameter: %s", e.Name)
}

// ReadInput decodes a single JSON object from r. It never fails: an
// interactive stream, an empty stream, malformed JSON, a JSON value that is
// not an object, or trailing data after the object all produce an empty Input.
func ReadInput(r io.Reader, interactive bool) Input {
	if interactive || r == nil {
		return Input{}
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()

	var in Input
	if err := dec.Decode(&in); err != nil || in == nil {
		return Input{}
	}
	if _, err := dec.Token(); err != io.EOF {
		return Input{}
	}
	return in
}

// Required returns the value stored under name. A missing key, a null value,
// and an empty string all count as absent.
func (in Input) Required(name string) (any, error) {
	v, ok := in[name]
	if !ok || IsBlank(v) {
		return nil, &MissingParamError{Name: name}
	}
	return v, nil
}

// Optional returns the value stored under name, or def when the key is absent.
// The stored value is returned as-is, including null.
func (in Input) Optional(name string, def any) any {
	if v, ok := in[name]; ok {
		return v
	}
	return def
}

// IsBlank reports whether v is null or an empty string.
func IsBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	}
	return false
}
