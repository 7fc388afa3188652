package services

import (
	"context"

	"github.com/senyabanana/tender-lifecycle/internal/repository"
)

// Resolver отвечает на вопрос, может ли пользователь действовать от имени организации.
// Если пользователя нет, возвращается models.ErrUnknownUser, а не false.
type Resolver struct {
	Repo repository.ResponsibleRepository
}

// NewResolver создаёт новый экземпляр Resolver.
func NewResolver(repo repository.ResponsibleRepository) *Resolver {
	return &Resolver{Repo: repo}
}

// IsResponsible проверяет, что пользователь ответственный за организацию.
func (r *Resolver) IsResponsible(ctx context.Context, username, organizationId string) (bool, error) {
	if err := validateUsername(username); err != nil {
		return false, err
	}
	if err := validateID("organizationId", organizationId); err != nil {
		return false, err
	}

	res, err := r.Repo.ResolveOrganization(ctx, username, organizationId)
	if err != nil {
		return false, err
	}
	return res.Responsible, nil
}

// IsResponsibleForTender проверяет, что пользователь ответственный за организацию, которой принадлежит тендер.
func (r *Resolver) IsResponsibleForTender(ctx context.Context, username, tenderId string) (bool, error) {
	if err := validateUsername(username); err != nil {
		return false, err
	}
	if err := validateID("tenderId", tenderId); err != nil {
		return false, err
	}

	res, err := r.Repo.ResolveTender(ctx, username, tenderId)
	if err != nil {
		return false, err
	}
	return res.Responsible, nil
}
