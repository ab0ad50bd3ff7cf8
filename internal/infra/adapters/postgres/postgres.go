package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-retry"
)

// NewPostgres подключается к базе с экспоненциальным ретраем:
// при старте в docker-compose постгрес может подняться позже приложения
func NewPostgres(ctx context.Context, url string) (*sqlx.DB, error) {
	var db *sqlx.DB

	backoff := retry.WithMaxRetries(5, retry.NewExponential(time.Second))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		conn, err := sqlx.ConnectContext(connCtx, "pgx", url)
		if err != nil {
			return retry.RetryableError(fmt.Errorf("connect to postgres: %w", err))
		}

		db = conn
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("connected to postgres")

	return db, nil
}
