package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/senyabanana/tender-lifecycle/internal/db"
	"github.com/senyabanana/tender-lifecycle/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

// TenderRepository - интерфейс для работы с тендерами.
// Каждая изменяющая операция выполняется одним SQL-выражением и потому атомарна.
type TenderRepository interface {
	CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error)
	GetTender(ctx context.Context, tenderId string) (*models.Tender, error)
	// UpdateTenderStatus возвращает ErrNotFoundOrInvalidTransition, если тендера нет
	// или его текущий статус не допускает перехода в status.
	UpdateTenderStatus(ctx context.Context, tenderId string, status models.TenderStatus) (*models.Tender, error)
	// EditTender возвращает ErrNotFound, если тендера нет.
	EditTender(ctx context.Context, tenderId string, patch models.TenderPatch) (*models.Tender, error)
}

// PostgresTenderRepository - реализация TenderRepository для базы данных.
type PostgresTenderRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresTenderRepository создаёт новый экземпляр PostgresTenderRepository.
func NewPostgresTenderRepository(db *pgxpool.Pool) *PostgresTenderRepository {
	return &PostgresTenderRepository{DB: db}
}

func scanTender(row pgx.Row) (*models.Tender, error) {
	var tender models.Tender
	err := row.Scan(
		&tender.ID,
		&tender.Name,
		&tender.Description,
		&tender.ServiceType,
		&tender.Status,
		&tender.OrganizationID,
		&tender.Version,
		&tender.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &tender, nil
}

// CreateTender создает новый тендер в статусе Created с версией 1.
func (r *PostgresTenderRepository) CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error) {
	query := `INSERT INTO tender (id, name, description, service_type, status, organization_id, version, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, 1, $7)
	          RETURNING ` + tenderColumns

	tender, err := scanTender(r.DB.QueryRow(ctx, query,
		uuid.NewString(),
		tenderReq.Name,
		tenderReq.Description,
		tenderReq.ServiceType,
		string(models.CreatedTender),
		tenderReq.OrganizationID,
		time.Now().UTC().Truncate(time.Microsecond),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert tender: %w", db.MapError(err))
	}
	return tender, nil
}

// GetTender получает тендер по ID.
func (r *PostgresTenderRepository) GetTender(ctx context.Context, tenderId string) (*models.Tender, error) {
	query := `SELECT ` + tenderColumns + ` FROM tender WHERE id = $1`

	tender, err := scanTender(r.DB.QueryRow(ctx, query, tenderId))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tender: %w", db.MapError(err))
	}
	return tender, nil
}

// UpdateTenderStatus меняет статус тендера. Проверка текущего статуса и запись нового
// выполняются одним условным UPDATE: из конкурирующих запросов на один переход выигрывает ровно один.
func (r *PostgresTenderRepository) UpdateTenderStatus(ctx context.Context, tenderId string, status models.TenderStatus) (*models.Tender, error) {
	from := models.Predecessors(status)
	fromValues := make([]string, 0, len(from))
	for _, s := range from {
		fromValues = append(fromValues, string(s))
	}

	query := `UPDATE tender SET status = $2
	          WHERE id = $1 AND status = ANY($3::tender_status[])
	          RETURNING ` + tenderColumns

	tender, err := scanTender(r.DB.QueryRow(ctx, query, tenderId, string(status), pq.Array(fromValues)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFoundOrInvalidTransition
		}
		return nil, fmt.Errorf("failed to update tender status: %w", db.MapError(err))
	}
	return tender, nil
}

// EditTender меняет переданные поля тендера и увеличивает версию на единицу одним UPDATE.
func (r *PostgresTenderRepository) EditTender(ctx context.Context, tenderId string, patch models.TenderPatch) (*models.Tender, error) {
	query, args, err := buildTenderUpdate(tenderId, patch)
	if err != nil {
		return nil, err
	}

	tender, err := scanTender(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("failed to edit tender: %w", db.MapError(err))
	}
	return tender, nil
}
