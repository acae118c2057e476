package models

// APIError is the error payload returned to clients.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse wraps an APIError in the response envelope.
type ErrorResponse struct {
	Error APIError `json:"error"`
}
