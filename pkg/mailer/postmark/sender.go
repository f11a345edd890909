package postmark

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrymomot/newsletter/pkg/mailer"
)

// Sender implements mailer.Sender on top of the Postmark email API.
type Sender struct {
	client *http.Client
	config Config
}

var _ mailer.Sender = (*Sender)(nil)

// New creates a Postmark sender. The HTTP client's timeout covers the whole
// request, so a stalled API call fails instead of hanging the caller.
func New(cfg Config) *Sender {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Sender{
		client: &http.Client{Timeout: cfg.Timeout},
		config: cfg,
	}
}

type sendEmailRequest struct {
	From     string `json:"From"`
	To       string `json:"To"`
	Subject  string `json:"Subject"`
	HTMLBody string `json:"HtmlBody"`
	TextBody string `json:"TextBody"`
	ReplyTo  string `json:"ReplyTo,omitempty"`
}

// Send posts the email to {BaseURL}/email. Exactly one attempt is made.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if s.config.BaseURL == "" {
		return ErrMissingBaseURL
	}

	from := email.From
	if from == "" {
		from = s.config.SenderEmail
	}

	payload, err := json.Marshal(sendEmailRequest{
		From:     from,
		To:       strings.Join(email.To, ","),
		Subject:  email.Subject,
		HTMLBody: email.HTML,
		TextBody: email.Text,
		ReplyTo:  email.ReplyTo,
	})
	if err != nil {
		return errors.Join(ErrEncodeRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.BaseURL+"/email", bytes.NewReader(payload))
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Postmark-Server-Token", s.config.ServerToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Join(ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	_ = json.Unmarshal(body, apiErr)
	return apiErr
}
