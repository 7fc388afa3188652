package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/senyabanana/tender-lifecycle/internal/db"
	"github.com/senyabanana/tender-lifecycle/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Responsibility - результат проверки прав: найденный пользователь и наличие связи с организацией.
type Responsibility struct {
	UserID      string
	Responsible bool
}

// ResponsibleRepository читает таблицы employee и organization_responsible.
// Обе реализации возвращают models.ErrUnknownUser, если пользователя с таким username нет.
type ResponsibleRepository interface {
	ResolveOrganization(ctx context.Context, username, organizationId string) (Responsibility, error)
	ResolveTender(ctx context.Context, username, tenderId string) (Responsibility, error)
}

// PostgresResponsibleRepository - реализация ResponsibleRepository для базы данных.
type PostgresResponsibleRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresResponsibleRepository создаёт новый экземпляр PostgresResponsibleRepository.
func NewPostgresResponsibleRepository(db *pgxpool.Pool) *PostgresResponsibleRepository {
	return &PostgresResponsibleRepository{DB: db}
}

// ResolveOrganization одним запросом находит пользователя и проверяет, что он ответственный за организацию.
func (r *PostgresResponsibleRepository) ResolveOrganization(ctx context.Context, username, organizationId string) (Responsibility, error) {
	query := `
		SELECT e.id, EXISTS(
			SELECT 1
			FROM organization_responsible orr
			WHERE orr.user_id = e.id AND orr.organization_id = $2
		)
		FROM employee e
		WHERE e.username = $1`
	return r.resolve(ctx, query, username, organizationId)
}

// ResolveTender делает то же, что ResolveOrganization, но организацию берёт из тендера.
// Для несуществующего тендера пользователь считается неответственным.
func (r *PostgresResponsibleRepository) ResolveTender(ctx context.Context, username, tenderId string) (Responsibility, error) {
	query := `
		SELECT e.id, EXISTS(
			SELECT 1
			FROM tender t
			JOIN organization_responsible orr ON orr.organization_id = t.organization_id
			WHERE t.id = $2 AND orr.user_id = e.id
		)
		FROM employee e
		WHERE e.username = $1`
	return r.resolve(ctx, query, username, tenderId)
}

func (r *PostgresResponsibleRepository) resolve(ctx context.Context, query, username, id string) (Responsibility, error) {
	var res Responsibility
	err := r.DB.QueryRow(ctx, query, username, id).Scan(&res.UserID, &res.Responsible)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Responsibility{}, models.ErrUnknownUser
		}
		return Responsibility{}, fmt.Errorf("failed to check responsibility: %w", db.MapError(err))
	}
	return res, nil
}
