package postmark

import (
	"errors"
	"fmt"
)

var (
	ErrMissingBaseURL   = errors.New("postmark: base url is required")
	ErrEncodeRequest    = errors.New("postmark: failed to encode request")
	ErrRequestFailed    = errors.New("postmark: request failed")
	ErrUnexpectedStatus = errors.New("postmark: unexpected response status")
)

// maxErrorBody caps how much of a failed response is kept for logs.
const maxErrorBody = 1 << 10

// APIError describes a non-2xx response from the API.
// It matches ErrUnexpectedStatus with errors.Is.
type APIError struct {
	Message    string `json:"Message"`
	Body       string `json:"-"`
	StatusCode int    `json:"-"`
	ErrorCode  int    `json:"ErrorCode"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("postmark: status %d: error code %d: %s", e.StatusCode, e.ErrorCode, e.Message)
	}
	return fmt.Sprintf("postmark: status %d: %s", e.StatusCode, e.Body)
}

func (e *APIError) Unwrap() error {
	return ErrUnexpectedStatus
}
