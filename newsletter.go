package newsletter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/newsletter/internal"
	"github.com/dmitrymomot/newsletter/internal/config"
	"github.com/dmitrymomot/newsletter/internal/emails"
	"github.com/dmitrymomot/newsletter/internal/handlers"
	"github.com/dmitrymomot/newsletter/internal/migrations"
	"github.com/dmitrymomot/newsletter/internal/repository"
	"github.com/dmitrymomot/newsletter/internal/subscription"
	"github.com/dmitrymomot/newsletter/middlewares"
	"github.com/dmitrymomot/newsletter/pkg/db"
	"github.com/dmitrymomot/newsletter/pkg/logger"
	"github.com/dmitrymomot/newsletter/pkg/mailer"
	"github.com/dmitrymomot/newsletter/pkg/mailer/postmark"
	"github.com/dmitrymomot/newsletter/pkg/mailer/resend"
	"github.com/dmitrymomot/newsletter/pkg/sanitizer"
)

// Paths of the operational endpoints.
const (
	HealthCheckPath = "/health_check"
	ReadinessPath   = "/health/ready"
)

var (
	ErrNilSettings = errors.New("newsletter: settings are required")
	ErrDatabase    = errors.New("newsletter: database setup failed")
	ErrEmailClient = errors.New("newsletter: email client setup failed")
	ErrListen      = errors.New("newsletter: failed to bind address")
)

// Application is a fully wired service bound to its port.
type Application struct {
	app      *internal.App
	listener net.Listener
	pool     *pgxpool.Pool
	logger   *slog.Logger
}

// Build connects to the database, migrates it and binds the HTTP listener.
// Nothing is served until Run is called.
func Build(ctx context.Context, settings *config.Settings, log *slog.Logger) (*Application, error) {
	if settings == nil {
		return nil, ErrNilSettings
	}
	if log == nil {
		log = logger.NewNope()
	}

	sender, err := newSender(settings.EmailClient)
	if err != nil {
		return nil, errors.Join(ErrEmailClient, err)
	}

	pool, err := db.Connect(ctx, settings.Database)
	if err != nil {
		return nil, errors.Join(ErrDatabase, err)
	}
	if err := db.Migrate(ctx, pool, migrations.FS, settings.Database.MigrationsTable, log); err != nil {
		pool.Close()
		return nil, errors.Join(ErrDatabase, err)
	}

	app := newApp(settings, repository.NewSubscriptions(pool), sender, log,
		internal.WithReadinessCheck("postgres", db.Healthcheck(pool)),
	)

	addr := net.JoinHostPort(settings.Application.Host, strconv.Itoa(int(settings.Application.Port)))
	ln, err := internal.Listen(addr)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w %s: %w", ErrListen, addr, err)
	}

	return &Application{app: app, listener: ln, pool: pool, logger: log}, nil
}

// Port is the TCP port the application is bound to.
func (a *Application) Port() int {
	return a.listener.Addr().(*net.TCPAddr).Port
}

// Handler exposes the router, mostly for tests.
func (a *Application) Handler() *internal.App {
	return a.app
}

// Run serves requests until ctx is cancelled or SIGINT/SIGTERM arrives, then
// drains in-flight requests and closes the database pool.
func (a *Application) Run(ctx context.Context) error {
	return a.app.Serve(a.listener,
		internal.WithContext(ctx),
		internal.Logger(a.logger),
		internal.ShutdownHook(db.Shutdown(a.pool)),
	)
}

// newApp wires the HTTP surface around any subscription store and sender.
func newApp(settings *config.Settings, store subscription.Store, sender mailer.Sender, log *slog.Logger, checks ...internal.HealthOption) *internal.App {
	renderer := mailer.NewRendererWithConfig(emails.FS, mailer.RendererConfig{
		ContentFilter: sanitizer.EmailHTML,
	})
	service := subscription.NewService(store, mailer.New(sender, renderer, settings.Mailer),
		subscription.WithConfirmationLink(settings.Application.ConfirmationLink),
		subscription.WithLogger(log),
	)

	healthOpts := append([]internal.HealthOption{
		internal.WithLivenessPath(HealthCheckPath),
		internal.WithReadinessPath(ReadinessPath),
	}, checks...)

	return internal.New(
		internal.WithLogger(log),
		internal.WithMiddleware(
			middlewares.RequestID(),
			middlewares.RequestLogger(),
			middlewares.Recover(),
		),
		internal.WithHealthChecks(healthOpts...),
		internal.WithHandlers(handlers.NewSubscriptions(service)),
	)
}

// newSender picks the email API client named by the configuration.
func newSender(cfg config.EmailClientSettings) (mailer.Sender, error) {
	sender, err := cfg.Sender()
	if err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case config.ProviderResend:
		s, err := resend.New(resend.Config{
			APIKey:      cfg.AuthorizationToken,
			SenderEmail: sender.String(),
			BaseURL:     cfg.BaseURL,
			Timeout:     cfg.Timeout(),
		})
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.ProviderPostmark, "":
		return postmark.New(postmark.Config{
			BaseURL:     cfg.BaseURL,
			SenderEmail: sender.String(),
			ServerToken: cfg.AuthorizationToken,
			Timeout:     cfg.Timeout(),
		}), nil
	default:
		return nil, fmt.Errorf("unsupported email provider %q", cfg.Provider)
	}
}
