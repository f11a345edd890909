// Package postmark sends email through the Postmark HTTP API.
//
//	sender := postmark.New(postmark.Config{
//		BaseURL:     "https://api.postmarkapp.com",
//		SenderEmail: "newsletter@example.com",
//		ServerToken: token,
//		Timeout:     10 * time.Second,
//	})
//
// Non-2xx responses are returned as *APIError, which matches
// ErrUnexpectedStatus. Transport failures, including the client timeout,
// match ErrRequestFailed.
package postmark
