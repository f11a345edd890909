package subscription

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/newsletter/internal/emails"
	"github.com/dmitrymomot/newsletter/internal/subscriber"
	"github.com/dmitrymomot/newsletter/pkg/logger"
	"github.com/dmitrymomot/newsletter/pkg/mailer"
)

// DefaultConfirmationLink is used until confirmation tokens exist.
const DefaultConfirmationLink = "https://example.com/confirm?subscription_token=some_token"

var (
	ErrInvalidSubscriber = errors.New("subscription: invalid subscriber")
	ErrStorage           = errors.New("subscription: failed to store subscriber")
	ErrDispatch          = errors.New("subscription: failed to send confirmation email")
)

// Store persists validated subscribers.
type Store interface {
	Insert(ctx context.Context, sub subscriber.NewSubscriber) error
}

// Mailer sends templated email. *mailer.Mailer satisfies it.
type Mailer interface {
	Send(ctx context.Context, params mailer.SendParams) error
}

// Form is the raw, untrusted subscription input.
type Form struct {
	Name  string
	Email string
}

// Service runs the subscription pipeline: validate, store, notify.
type Service struct {
	store            Store
	mailer           Mailer
	logger           *slog.Logger
	confirmationLink string
}

// Option configures a Service.
type Option func(*Service)

// WithConfirmationLink sets the link placed in the confirmation email.
func WithConfirmationLink(link string) Option {
	return func(s *Service) {
		if link != "" {
			s.confirmationLink = link
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates a Service.
func NewService(store Store, m Mailer, opts ...Option) *Service {
	s := &Service{
		store:            store,
		mailer:           m,
		logger:           logger.NewNope(),
		confirmationLink: DefaultConfirmationLink,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe validates form, stores the subscriber and sends one confirmation
// email. Steps run strictly in that order and the first failure stops the
// pipeline: nothing is stored for invalid input and nothing is sent when the
// insert fails. A stored row is never rolled back if sending fails.
func (s *Service) Subscribe(ctx context.Context, form Form) error {
	sub, err := subscriber.New(form.Name, form.Email)
	if err != nil {
		return errors.Join(ErrInvalidSubscriber, err)
	}

	if err := s.store.Insert(ctx, sub); err != nil {
		return errors.Join(ErrStorage, err)
	}
	s.logger.InfoContext(ctx, "subscriber saved", slog.String("subscriber_email", sub.Email.String()))

	// The row is committed; a client disconnect must not abort the email.
	sendCtx := context.WithoutCancel(ctx)
	if err := s.mailer.Send(sendCtx, mailer.SendParams{
		To:       sub.Email.String(),
		Template: emails.Confirmation,
		Data:     emails.ConfirmationData{ConfirmationLink: s.confirmationLink},
	}); err != nil {
		return errors.Join(ErrDispatch, err)
	}
	s.logger.InfoContext(ctx, "confirmation email sent", slog.String("subscriber_email", sub.Email.String()))

	return nil
}
