package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/senyabanana/tender-lifecycle/internal/models"

	"github.com/google/uuid"
)

func validateID(field, id string) error {
	if id == "" {
		return fmt.Errorf("%w: missing required field: %s", models.ErrValidation, field)
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: invalid %s: %s", models.ErrValidation, field, id)
	}
	return nil
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return fmt.Errorf("%w: username is required", models.ErrValidation)
	}
	return nil
}

func validateText(field, value string, maxLen int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: missing required field: %s", models.ErrValidation, field)
	}
	if maxLen > 0 && utf8.RuneCountInString(value) > maxLen {
		return fmt.Errorf("%w: %s must be at most %d characters", models.ErrValidation, field, maxLen)
	}
	return nil
}

// ValidateTenderRequest проверяет поля запроса на создание тендера, не обращаясь к хранилищу.
func ValidateTenderRequest(tenderReq models.TenderRequest) error {
	if err := validateText("name", tenderReq.Name, models.MaxNameLength); err != nil {
		return err
	}
	if err := validateText("description", tenderReq.Description, 0); err != nil {
		return err
	}
	if err := validateText("serviceType", tenderReq.ServiceType, models.MaxServiceTypeLength); err != nil {
		return err
	}
	return validateID("organizationId", tenderReq.OrganizationID)
}

// ValidatePatch проверяет, что патч содержит хотя бы одно поле и все поля непустые.
func ValidatePatch(patch models.TenderPatch) error {
	if patch.IsEmpty() {
		return fmt.Errorf("%w: no fields provided for update", models.ErrValidation)
	}
	if patch.Name != nil {
		if err := validateText("name", *patch.Name, models.MaxNameLength); err != nil {
			return err
		}
	}
	if patch.Description != nil {
		if err := validateText("description", *patch.Description, 0); err != nil {
			return err
		}
	}
	if patch.ServiceType != nil {
		if err := validateText("serviceType", *patch.ServiceType, models.MaxServiceTypeLength); err != nil {
			return err
		}
	}
	return nil
}

// ParseStatus разбирает целевой статус тендера.
func ParseStatus(status string) (models.TenderStatus, error) {
	if status == "" {
		return "", fmt.Errorf("%w: missing required parameter: status", models.ErrValidation)
	}
	parsed, ok := models.ParseTenderStatus(status)
	if !ok {
		return "", fmt.Errorf("%w: invalid status value: %s", models.ErrValidation, status)
	}
	return parsed, nil
}
