package repository

import (
	"fmt"
	"strings"

	"github.com/senyabanana/tender-lifecycle/internal/models"
)

const tenderColumns = `id, name, description, service_type, status, organization_id, version, created_at`

// patchColumn связывает поле патча с колонкой таблицы tender.
type patchColumn struct {
	column string
	value  func(models.TenderPatch) *string
}

// Порядок фиксирован, чтобы один и тот же патч всегда давал один и тот же запрос.
var tenderPatchColumns = []patchColumn{
	{column: "name", value: func(p models.TenderPatch) *string { return p.Name }},
	{column: "description", value: func(p models.TenderPatch) *string { return p.Description }},
	{column: "service_type", value: func(p models.TenderPatch) *string { return p.ServiceType }},
}

// buildTenderUpdate собирает один UPDATE из присутствующих полей патча.
// Значения передаются только параметрами, в текст запроса попадают лишь имена колонок.
// Версия увеличивается в том же выражении.
func buildTenderUpdate(tenderId string, patch models.TenderPatch) (string, []any, error) {
	var updates []string
	var args []any
	argIndex := 1

	for _, c := range tenderPatchColumns {
		value := c.value(patch)
		if value == nil {
			continue
		}
		updates = append(updates, fmt.Sprintf("%s = $%d", c.column, argIndex))
		args = append(args, *value)
		argIndex++
	}

	if len(updates) == 0 {
		return "", nil, fmt.Errorf("%w: no fields provided for update", models.ErrValidation)
	}

	updates = append(updates, "version = version + 1")
	args = append(args, tenderId)

	query := "UPDATE tender SET " + strings.Join(updates, ", ") +
		fmt.Sprintf(" WHERE id = $%d RETURNING %s", argIndex, tenderColumns)
	return query, args, nil
}
