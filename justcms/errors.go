package justcms

import (
	"fmt"
	"net/http"
)

// ConfigError indicates a credential that could not be resolved from
// either explicit arguments or ambient configuration
type ConfigError struct {
	Field string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("justcms: missing %s", e.Field)
}

var (
	// ErrMissingToken is returned when no API token could be resolved
	ErrMissingToken = &ConfigError{Field: "API token"}
	// ErrMissingProjectID is returned when no project ID could be resolved
	ErrMissingProjectID = &ConfigError{Field: "project ID"}
)

// APIError represents a non-success HTTP response from the JustCMS API
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("justcms API error: status %d: %s", e.StatusCode, e.Body)
}

// IsNotFound checks if the error represents a 404 response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthorized checks if the error represents an auth failure
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
