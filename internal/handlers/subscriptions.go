package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/newsletter/internal"
	"github.com/dmitrymomot/newsletter/internal/subscription"
)

// Subscriber runs the subscription pipeline. *subscription.Service satisfies it.
type Subscriber interface {
	Subscribe(ctx context.Context, form subscription.Form) error
}

// Subscriptions serves POST /subscriptions.
type Subscriptions struct {
	service Subscriber
}

// NewSubscriptions creates the subscriptions handler.
func NewSubscriptions(service Subscriber) *Subscriptions {
	return &Subscriptions{service: service}
}

// Routes registers POST /subscriptions.
func (h *Subscriptions) Routes(r internal.Router) {
	r.POST("/subscriptions", h.subscribe)
}

// subscribe expects an urlencoded body with name and email fields.
// Responses carry no body: 400 for missing or invalid fields, 500 when the
// subscriber could not be stored or notified, 200 otherwise.
func (h *Subscriptions) subscribe(c internal.Context) error {
	name, hasName := c.FormValue("name")
	email, hasEmail := c.FormValue("email")
	if !hasName || !hasEmail {
		c.LogWarn("subscription form incomplete",
			slog.Bool("has_name", hasName),
			slog.Bool("has_email", hasEmail),
		)
		return internal.ErrBadRequest("missing form field")
	}

	err := h.service.Subscribe(c, subscription.Form{Name: name, Email: email})
	switch {
	case err == nil:
		return c.NoContent(http.StatusOK)
	case errors.Is(err, subscription.ErrInvalidSubscriber):
		c.LogWarn("invalid subscriber", slog.Any("error", err))
		return internal.ErrBadRequest("invalid subscriber", internal.WithError(err))
	default:
		c.LogError("subscription failed",
			slog.String("subscriber_email", email),
			slog.Any("error", err),
		)
		return internal.ErrInternal("subscription failed", internal.WithError(err))
	}
}
