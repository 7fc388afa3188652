package services

import (
	"context"
	"fmt"

	"github.com/senyabanana/tender-lifecycle/internal/models"
)

// TenderService связывает проверку прав и машину состояний.
// Порядок в каждом методе: проверка входа без обращения к базе, затем Resolver, затем LifecycleEngine.
// Между проверкой прав и изменением тендера права могут быть отозваны; это окно не закрывается.
type TenderService struct {
	Resolver *Resolver
	Engine   *LifecycleEngine
}

// NewTenderService создаёт новый экземпляр TenderService.
func NewTenderService(resolver *Resolver, engine *LifecycleEngine) *TenderService {
	return &TenderService{Resolver: resolver, Engine: engine}
}

// CreateTender создает новый тендер от имени ответственного за организацию.
func (s *TenderService) CreateTender(ctx context.Context, tenderReq models.TenderRequest) (*models.Tender, error) {
	if err := ValidateTenderRequest(tenderReq); err != nil {
		return nil, err
	}
	if err := validateUsername(tenderReq.CreatorUsername); err != nil {
		return nil, err
	}

	isResponsible, err := s.Resolver.IsResponsible(ctx, tenderReq.CreatorUsername, tenderReq.OrganizationID)
	if err != nil {
		return nil, err
	}
	if !isResponsible {
		return nil, fmt.Errorf("%w: you are not authorized to create tenders for this organization", models.ErrForbidden)
	}

	return s.Engine.Create(ctx, tenderReq)
}

// GetTenderStatus получает статус тендера.
func (s *TenderService) GetTenderStatus(ctx context.Context, tenderId, username string) (models.TenderStatus, error) {
	if err := validateID("tenderId", tenderId); err != nil {
		return "", err
	}
	if err := s.authorizeTender(ctx, tenderId, username); err != nil {
		return "", err
	}

	tender, err := s.Engine.Get(ctx, tenderId)
	if err != nil {
		return "", err
	}
	return tender.Status, nil
}

// UpdateTenderStatus меняет статус тендера.
func (s *TenderService) UpdateTenderStatus(ctx context.Context, tenderId, status, username string) (*models.Tender, error) {
	if err := validateID("tenderId", tenderId); err != nil {
		return nil, err
	}
	target, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeTender(ctx, tenderId, username); err != nil {
		return nil, err
	}

	return s.Engine.TransitionStatus(ctx, tenderId, target)
}

// EditTender меняет поля тендера.
func (s *TenderService) EditTender(ctx context.Context, tenderId, username string, patch models.TenderPatch) (*models.Tender, error) {
	if err := validateID("tenderId", tenderId); err != nil {
		return nil, err
	}
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}
	if err := s.authorizeTender(ctx, tenderId, username); err != nil {
		return nil, err
	}

	return s.Engine.EditFields(ctx, tenderId, patch)
}

func (s *TenderService) authorizeTender(ctx context.Context, tenderId, username string) error {
	isResponsible, err := s.Resolver.IsResponsibleForTender(ctx, username, tenderId)
	if err != nil {
		return err
	}
	if !isResponsible {
		return fmt.Errorf("%w: you are not authorized to manage this tender", models.ErrForbidden)
	}
	return nil
}
