package services

import "fmt"

// ValidationError marks client input the service refused to process.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConfigError marks a missing credential or other startup configuration gap.
// It maps to a 500 with a fixed message; there is nothing the caller can fix.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return e.Message
}

// UpstreamError carries a non-success response from a third-party service,
// including the raw error body for diagnostics.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Service, e.StatusCode, e.Body)
}
