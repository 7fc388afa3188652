//go:build integration

package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/senyabanana/tender-lifecycle/internal/db"
	"github.com/senyabanana/tender-lifecycle/internal/models"
	"github.com/senyabanana/tender-lifecycle/internal/router/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// externalSchema - таблицы, которыми владеет другой сервис.
const externalSchema = `
CREATE TABLE employee (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    username VARCHAR(50) UNIQUE NOT NULL
);
CREATE TABLE organization (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    name VARCHAR(100) NOT NULL
);
CREATE TABLE organization_responsible (
    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
    organization_id UUID REFERENCES organization(id) ON DELETE CASCADE,
    user_id UUID REFERENCES employee(id) ON DELETE CASCADE
);`

type seed struct {
	orgID string
}

func setupPostgres(t *testing.T, ctx context.Context) (*pgxpool.Pool, seed) {
	t.Helper()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := config.Config{
		PostgresConn:   fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port()),
		DBMaxConns:     40,
		DBConnectRetry: 30 * time.Second,
	}

	pool, err := db.InitDb(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, externalSchema)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations("file://../../db/migration", cfg.PostgresConn, zerolog.Nop()))

	var s seed
	require.NoError(t, pool.QueryRow(ctx, `INSERT INTO organization (name) VALUES ('org-1') RETURNING id`).Scan(&s.orgID))

	var userID string
	require.NoError(t, pool.QueryRow(ctx, `INSERT INTO employee (username) VALUES ('user1') RETURNING id`).Scan(&userID))
	_, err = pool.Exec(ctx, `INSERT INTO employee (username) VALUES ('user2')`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `INSERT INTO organization_responsible (organization_id, user_id) VALUES ($1, $2)`, s.orgID, userID)
	require.NoError(t, err)

	return pool, s
}

func TestIntegration_TenderRepository(t *testing.T) {
	ctx := context.Background()
	pool, s := setupPostgres(t, ctx)
	tenders := NewPostgresTenderRepository(pool)
	responsible := NewPostgresResponsibleRepository(pool)

	newTender := func(t *testing.T) *models.Tender {
		tender, err := tenders.CreateTender(ctx, models.TenderRequest{
			Name:           "Audit",
			Description:    "Q1 audit",
			ServiceType:    "Consulting",
			OrganizationID: s.orgID,
		})
		require.NoError(t, err)
		return tender
	}

	t.Run("create", func(t *testing.T) {
		tender := newTender(t)
		require.Equal(t, models.CreatedTender, tender.Status)
		require.EqualValues(t, 1, tender.Version)
		require.Equal(t, s.orgID, tender.OrganizationID)

		stored, err := tenders.GetTender(ctx, tender.ID)
		require.NoError(t, err)
		require.Equal(t, tender.ID, stored.ID)
		require.True(t, tender.CreatedAt.Equal(stored.CreatedAt))
	})

	t.Run("create for missing organization", func(t *testing.T) {
		_, err := tenders.CreateTender(ctx, models.TenderRequest{
			Name: "Audit", Description: "Q1 audit", ServiceType: "Consulting", OrganizationID: uuid.NewString(),
		})
		require.ErrorIs(t, err, models.ErrValidation)
	})

	t.Run("transitions", func(t *testing.T) {
		tender := newTender(t)

		_, err := tenders.UpdateTenderStatus(ctx, tender.ID, models.ClosedTender)
		require.ErrorIs(t, err, models.ErrNotFoundOrInvalidTransition)

		published, err := tenders.UpdateTenderStatus(ctx, tender.ID, models.PublishedTender)
		require.NoError(t, err)
		require.Equal(t, models.PublishedTender, published.Status)
		require.EqualValues(t, 1, published.Version)

		_, err = tenders.UpdateTenderStatus(ctx, tender.ID, models.CreatedTender)
		require.ErrorIs(t, err, models.ErrNotFoundOrInvalidTransition)

		closed, err := tenders.UpdateTenderStatus(ctx, tender.ID, models.ClosedTender)
		require.NoError(t, err)
		require.Equal(t, models.ClosedTender, closed.Status)

		_, err = tenders.UpdateTenderStatus(ctx, uuid.NewString(), models.PublishedTender)
		require.ErrorIs(t, err, models.ErrNotFoundOrInvalidTransition)
	})

	t.Run("concurrent transitions have one winner", func(t *testing.T) {
		tender := newTender(t)

		const callers = 25
		var wg sync.WaitGroup
		errs := make([]error, callers)
		for i := 0; i < callers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = tenders.UpdateTenderStatus(ctx, tender.ID, models.PublishedTender)
			}(i)
		}
		wg.Wait()

		winners := 0
		for _, err := range errs {
			if err == nil {
				winners++
				continue
			}
			require.ErrorIs(t, err, models.ErrNotFoundOrInvalidTransition)
		}
		require.Equal(t, 1, winners)
	})

	t.Run("concurrent edits never lose a version", func(t *testing.T) {
		tender := newTender(t)

		const editors = 25
		var wg sync.WaitGroup
		errs := make([]error, editors)
		for i := 0; i < editors; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				name := fmt.Sprintf("Audit %d", i)
				_, errs[i] = tenders.EditTender(ctx, tender.ID, models.TenderPatch{Name: &name})
			}(i)
		}
		wg.Wait()
		for _, err := range errs {
			require.NoError(t, err)
		}

		stored, err := tenders.GetTender(ctx, tender.ID)
		require.NoError(t, err)
		require.EqualValues(t, 1+editors, stored.Version)
		require.Equal(t, "Q1 audit", stored.Description)
	})

	t.Run("edit missing tender", func(t *testing.T) {
		name := "x"
		_, err := tenders.EditTender(ctx, uuid.NewString(), models.TenderPatch{Name: &name})
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("responsibility", func(t *testing.T) {
		tender := newTender(t)

		res, err := responsible.ResolveOrganization(ctx, "user1", s.orgID)
		require.NoError(t, err)
		require.True(t, res.Responsible)
		require.NotEmpty(t, res.UserID)

		res, err = responsible.ResolveTender(ctx, "user1", tender.ID)
		require.NoError(t, err)
		require.True(t, res.Responsible)

		res, err = responsible.ResolveTender(ctx, "user2", tender.ID)
		require.NoError(t, err)
		require.False(t, res.Responsible)

		res, err = responsible.ResolveTender(ctx, "user1", uuid.NewString())
		require.NoError(t, err)
		require.False(t, res.Responsible)

		_, err = responsible.ResolveOrganization(ctx, "ghost", s.orgID)
		require.ErrorIs(t, err, models.ErrUnknownUser)
	})

	t.Run("timeout surfaces as store unavailable", func(t *testing.T) {
		tender := newTender(t)

		timeoutCtx, cancel := context.WithTimeout(ctx, time.Nanosecond)
		defer cancel()
		<-timeoutCtx.Done()

		_, err := tenders.UpdateTenderStatus(timeoutCtx, tender.ID, models.PublishedTender)
		require.ErrorIs(t, err, models.ErrStoreUnavailable)

		stored, err := tenders.GetTender(ctx, tender.ID)
		require.NoError(t, err)
		require.Equal(t, models.CreatedTender, stored.Status)
	})
}
