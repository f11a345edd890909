package resend

import "time"

// Config holds Resend provider settings.
type Config struct {
	APIKey      string
	SenderEmail string
	// BaseURL overrides the API endpoint; empty keeps the SDK default.
	BaseURL string
	Timeout time.Duration
}
