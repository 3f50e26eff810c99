// Package api defines the shared HTTP response envelopes.
package api

// ErrorResponse is the canonical error envelope for all API errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the envelope for operations with no payload.
type MessageResponse struct {
	Message string `json:"message"`
}
