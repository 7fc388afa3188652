// Package memory - реализация репозиториев в памяти для тестов сервисов и обработчиков.
// Каждый метод держит блокировку всё время выполнения, поэтому атомарен так же,
// как одно SQL-выражение в Postgres.
package memory

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/senyabanana/tender-lifecycle/internal/db"
	"github.com/senyabanana/tender-lifecycle/internal/models"
	"github.com/senyabanana/tender-lifecycle/internal/repository"

	"github.com/google/uuid"
)

var (
	_ repository.TenderRepository      = (*Store)(nil)
	_ repository.ResponsibleRepository = (*Store)(nil)
)

// Store хранит тендеры и таблицы сотрудников и организаций.
type Store struct {
	mu sync.RWMutex

	employees     map[string]string          // username -> id
	organizations map[string]struct{}        // organization id
	responsible   map[string]map[string]bool // organization id -> user id
	tenders       map[string]*models.Tender  // tender id -> tender

	calls atomic.Int64
	fail  error
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{
		employees:     make(map[string]string),
		organizations: make(map[string]struct{}),
		responsible:   make(map[string]map[string]bool),
		tenders:       make(map[string]*models.Tender),
	}
}

// AddEmployee добавляет сотрудника и возвращает его id.
func (s *Store) AddEmployee(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.employees[username] = id
	return id
}

// AddOrganization добавляет организацию и возвращает её id.
func (s *Store) AddOrganization() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	s.organizations[id] = struct{}{}
	return id
}

// AddResponsible делает сотрудника ответственным за организацию.
func (s *Store) AddResponsible(organizationId, userId string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.responsible[organizationId] == nil {
		s.responsible[organizationId] = make(map[string]bool)
	}
	s.responsible[organizationId][userId] = true
}

// RemoveResponsible убирает связь сотрудника с организацией.
func (s *Store) RemoveResponsible(organizationId, userId string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.responsible[organizationId], userId)
}

// Calls возвращает число вызовов методов репозитория.
func (s *Store) Calls() int64 {
	return s.calls.Load()
}

// FailWith заставляет все следующие вызовы возвращать err. nil возвращает обычную работу.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fail = err
}

func (s *Store) enter(ctx context.Context) error {
	s.calls.Add(1)
	if err := ctx.Err(); err != nil {
		return db.MapError(err)
	}
	return s.fail
}

// ResolveOrganization реализует repository.ResponsibleRepository.
func (s *Store) ResolveOrganization(ctx context.Context, username, organizationId string) (repository.Responsibility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.enter(ctx); err != nil {
		return repository.Responsibility{}, err
	}

	userId, ok := s.employees[username]
	if !ok {
		return repository.Responsibility{}, models.ErrUnknownUser
	}
	return repository.Responsibility{UserID: userId, Responsible: s.responsible[organizationId][userId]}, nil
}

// ResolveTender реализует repository.ResponsibleRepository.
func (s *Store) ResolveTender(ctx context.Context, username, tenderId string) (repository.Responsibility, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.enter(ctx); err != nil {
		return repository.Responsibility{}, err
	}

	userId, ok := s.employees[username]
	if !ok {
		return repository.Responsibility{}, models.ErrUnknownUser
	}
	res := repository.Responsibility{UserID: userId}
	if tender, ok := s.tenders[tenderId]; ok {
		res.Responsible = s.responsible[tender.OrganizationID][userId]
	}
	return res, nil
}

// CreateTender реализует repository.TenderRepository.
func (s *Store) CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx); err != nil {
		return nil, err
	}

	if _, ok := s.organizations[tenderReq.OrganizationID]; !ok {
		return nil, fmt.Errorf("%w: organization does not exist", models.ErrValidation)
	}

	tender := &models.Tender{
		ID:             uuid.NewString(),
		Name:           tenderReq.Name,
		Description:    tenderReq.Description,
		Status:         models.CreatedTender,
		ServiceType:    tenderReq.ServiceType,
		OrganizationID: tenderReq.OrganizationID,
		Version:        1,
		CreatedAt:      time.Now().UTC(),
	}
	s.tenders[tender.ID] = tender

	clone := *tender
	return &clone, nil
}

// GetTender реализует repository.TenderRepository.
func (s *Store) GetTender(ctx context.Context, tenderId string) (*models.Tender, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.enter(ctx); err != nil {
		return nil, err
	}

	tender, ok := s.tenders[tenderId]
	if !ok {
		return nil, models.ErrNotFound
	}
	clone := *tender
	return &clone, nil
}

// UpdateTenderStatus реализует repository.TenderRepository.
func (s *Store) UpdateTenderStatus(ctx context.Context, tenderId string, status models.TenderStatus) (*models.Tender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx); err != nil {
		return nil, err
	}

	tender, ok := s.tenders[tenderId]
	if !ok || !tender.Status.CanTransitionTo(status) {
		return nil, models.ErrNotFoundOrInvalidTransition
	}
	tender.Status = status

	clone := *tender
	return &clone, nil
}

// EditTender реализует repository.TenderRepository.
func (s *Store) EditTender(ctx context.Context, tenderId string, patch models.TenderPatch) (*models.Tender, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.enter(ctx); err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		return nil, fmt.Errorf("%w: no fields provided for update", models.ErrValidation)
	}
	tender, ok := s.tenders[tenderId]
	if !ok {
		return nil, models.ErrNotFound
	}
	if patch.Name != nil {
		tender.Name = *patch.Name
	}
	if patch.Description != nil {
		tender.Description = *patch.Description
	}
	if patch.ServiceType != nil {
		tender.ServiceType = *patch.ServiceType
	}
	tender.Version++

	clone := *tender
	return &clone, nil
}
