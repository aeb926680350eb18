// Package secret retrieves credentials that tools attach to outbound requests.
// Values returned here must never be logged or written to tool output.
package secret

import (
	"fmt"
	"os"
)

// Store defines how to retrieve secrets.
type Store interface {
	GetSecret(key string) (string, error)
}

// MissingError reports a credential that is not configured.
type MissingError struct {
	Name string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("Missing %s credential", e.Name)
}

// EnvStore reads from environment variables.
type EnvStore struct{}

// GetSecret returns the value of the environment variable key. An unset or
// empty variable is a *MissingError.
func (EnvStore) GetSecret(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", &MissingError{Name: key}
	}
	return val, nil
}

// MapStore serves secrets from a fixed map.
type MapStore map[string]string

func (m MapStore) GetSecret(key string) (string, error) {
	val := m[key]
	if val == "" {
		return "", &MissingError{Name: key}
	}
	return val, nil
}
