package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/senyabanana/tender-lifecycle/internal/models"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// MapError переводит ошибки Postgres и драйвера в ошибки ядра.
// Ошибки, которые не удалось классифицировать, возвращаются как есть.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		var connectErr *pgconn.ConnectError
		if errors.As(err, &connectErr) {
			return fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
		}
		return err
	}

	switch {
	case pgErr.Code == pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("%w: organization does not exist", models.ErrValidation)

	case pgErr.Code == pgerrcode.InvalidTextRepresentation,
		pgErr.Code == pgerrcode.CheckViolation,
		pgErr.Code == pgerrcode.NotNullViolation,
		pgErr.Code == pgerrcode.StringDataRightTruncationDataException:
		return fmt.Errorf("%w: %s", models.ErrValidation, pgErr.Message)

	case pgerrcode.IsConnectionException(pgErr.Code),
		pgerrcode.IsOperatorIntervention(pgErr.Code),
		pgerrcode.IsInsufficientResources(pgErr.Code):
		// query_canceled, admin_shutdown, too_many_connections и т.п.
		return fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)

	default:
		return fmt.Errorf("postgres error [%s]: %s: %w", pgErr.Code, pgErr.Message, err)
	}
}
