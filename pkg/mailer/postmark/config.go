package postmark

import "time"

const defaultTimeout = 10 * time.Second

// Config holds Postmark API settings.
type Config struct {
	// BaseURL of the API, e.g. https://api.postmarkapp.com. Tests point it
	// at an httptest server.
	BaseURL string
	// SenderEmail is used when an Email has no From.
	SenderEmail string
	// ServerToken is sent as X-Postmark-Server-Token.
	ServerToken string
	// Timeout bounds connect, send and receive of a single call.
	Timeout time.Duration
}
