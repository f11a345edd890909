package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrymomot/newsletter"
	"github.com/dmitrymomot/newsletter/internal/config"
	"github.com/dmitrymomot/newsletter/middlewares"
	"github.com/dmitrymomot/newsletter/pkg/logger"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	environment, err := config.EnvironmentFromEnv()
	if err != nil {
		return err
	}

	settings, err := config.Load(environment)
	if err != nil {
		return err
	}

	log := logger.NewWithSentry(
		settings.Application.Name,
		logger.ParseLevel(settings.Log.Level),
		os.Stdout,
		settings.Sentry,
		middlewares.RequestIDExtractor(),
	)
	slog.SetDefault(log)

	app, err := newsletter.Build(ctx, settings, log)
	if err != nil {
		return err
	}
	log.Info("listening", slog.String("environment", string(environment)), slog.Int("port", app.Port()))

	return app.Run(ctx)
}
