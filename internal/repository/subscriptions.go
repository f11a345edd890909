package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/newsletter/internal/subscriber"
)

// StatusConfirmed is the status every new subscription is stored with.
const StatusConfirmed = "confirmed"

var ErrInsertSubscriber = errors.New("repository: failed to insert subscriber")

// DBTX is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx the repository needs.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const insertSubscription = `
INSERT INTO subscriptions (id, email, name, subscribed_at, status)
VALUES ($1, $2, $3, $4, $5)`

// Subscriptions stores subscription records. There is no update or delete path.
type Subscriptions struct {
	db    DBTX
	now   func() time.Time
	newID func() uuid.UUID
}

// Option configures Subscriptions.
type Option func(*Subscriptions)

// WithClock overrides the source of subscribed_at timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Subscriptions) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how record ids are generated.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Subscriptions) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewSubscriptions creates the repository over db.
func NewSubscriptions(db DBTX, opts ...Option) *Subscriptions {
	s := &Subscriptions{
		db:    db,
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert records a confirmed subscription with a fresh id and the current
// UTC time. It runs a single statement and never retries.
func (s *Subscriptions) Insert(ctx context.Context, sub subscriber.NewSubscriber) error {
	_, err := s.db.Exec(ctx, insertSubscription,
		s.newID(),
		sub.Email.String(),
		sub.Name.String(),
		s.now().UTC(),
		StatusConfirmed,
	)
	if err != nil {
		return errors.Join(ErrInsertSubscriber, err)
	}
	return nil
}
