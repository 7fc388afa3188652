package db

import (
	"context"
	"fmt"
	"time"

	"github.com/senyabanana/tender-lifecycle/internal/router/config"

	"github.com/cenkalti/backoff/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// InitDb инициализирует подключение к базе данных и возвращает пул соединений.
// Пока база не принимает соединения, попытки повторяются в пределах cfg.DBConnectRetry.
func InitDb(ctx context.Context, cfg config.Config) (*pgxpool.Pool, error) {
	if cfg.PostgresConn == "" {
		return nil, fmt.Errorf("database connection string is missing")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.PostgresConn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database connection string: %w", err)
	}
	if cfg.DBMaxConns > 0 {
		poolConfig.MaxConns = cfg.DBMaxConns
	}
	poolConfig.MinConns = cfg.DBMinConns
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute

	dbPool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	log := zerolog.Ctx(ctx)
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		pingErr := dbPool.Ping(ctx)
		if pingErr != nil {
			log.Warn().Err(pingErr).Msg("database is not ready")
		}
		return struct{}{}, pingErr
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(cfg.DBConnectRetry),
	)
	if err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return dbPool, nil
}
