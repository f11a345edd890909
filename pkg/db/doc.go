// Package db manages the PostgreSQL connection pool and schema migrations.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] for pooling and
// [github.com/pressly/goose/v3] for migrations:
//
//	pool, err := db.Connect(ctx, cfg.Database)
//	if err != nil {
//		return err
//	}
//	if err := db.Migrate(ctx, pool, migrations.FS, cfg.Database.MigrationsTable, log); err != nil {
//		return err
//	}
//
// [Healthcheck] and [Shutdown] plug into the HTTP kernel's readiness probe
// and shutdown hooks.
//
// Errors are sentinel values joined with the driver error via [errors.Join],
// so callers match with [errors.Is].
package db
