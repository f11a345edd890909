package resend

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/newsletter/pkg/mailer"
)

const defaultTimeout = 10 * time.Second

var (
	ErrInvalidBaseURL = errors.New("resend: invalid base url")
	ErrSendFailed     = errors.New("resend: failed to send email")
)

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

var _ mailer.Sender = (*Sender)(nil)

// New creates a Resend sender whose HTTP client is bounded by cfg.Timeout.
func New(cfg Config) (*Sender, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	client := resend.NewCustomClient(&http.Client{Timeout: cfg.Timeout}, cfg.APIKey)
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, errors.Join(ErrInvalidBaseURL, err)
		}
		client.BaseURL = base
	}

	return &Sender{client: client, config: cfg}, nil
}

// Send implements mailer.Sender.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	from := email.From
	if from == "" {
		from = s.config.SenderEmail
	}

	req := &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}
