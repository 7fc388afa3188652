package services

import (
	"context"

	"github.com/senyabanana/tender-lifecycle/internal/models"
	"github.com/senyabanana/tender-lifecycle/internal/repository"
)

// LifecycleEngine владеет машиной состояний тендера и счётчиком версий.
// Права он не проверяет: это делает TenderService до вызова движка.
// Движок можно использовать и без TenderService, поэтому входные данные он проверяет сам.
type LifecycleEngine struct {
	Repo repository.TenderRepository
}

// NewLifecycleEngine создаёт новый экземпляр LifecycleEngine.
func NewLifecycleEngine(repo repository.TenderRepository) *LifecycleEngine {
	return &LifecycleEngine{Repo: repo}
}

// Create создаёт тендер в статусе Created с версией 1.
func (e *LifecycleEngine) Create(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error) {
	if err := ValidateTenderRequest(tenderReq); err != nil {
		return nil, err
	}
	return e.Repo.CreateTender(ctx, tenderReq)
}

// Get возвращает текущее состояние тендера.
func (e *LifecycleEngine) Get(ctx context.Context, tenderId string) (*models.Tender, error) {
	if err := validateID("tenderId", tenderId); err != nil {
		return nil, err
	}
	return e.Repo.GetTender(ctx, tenderId)
}

// TransitionStatus переводит тендер в статус target. Решение о допустимости перехода принимает
// хранилище по текущему статусу в момент записи, поэтому отдельного чтения перед записью нет.
// Версия не меняется.
func (e *LifecycleEngine) TransitionStatus(ctx context.Context, tenderId string, target models.TenderStatus) (*models.Tender, error) {
	if err := validateID("tenderId", tenderId); err != nil {
		return nil, err
	}
	if _, err := ParseStatus(string(target)); err != nil {
		return nil, err
	}
	return e.Repo.UpdateTenderStatus(ctx, tenderId, target)
}

// EditFields применяет частичное изменение и увеличивает версию ровно на единицу.
func (e *LifecycleEngine) EditFields(ctx context.Context, tenderId string, patch models.TenderPatch) (*models.Tender, error) {
	if err := validateID("tenderId", tenderId); err != nil {
		return nil, err
	}
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}
	return e.Repo.EditTender(ctx, tenderId, patch)
}
