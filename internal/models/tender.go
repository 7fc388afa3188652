package models

import "time"

// TenderStatus - статус тендера.
type TenderStatus string

const (
	CreatedTender   TenderStatus = "Created"   // Тендер создан
	PublishedTender TenderStatus = "Published" // Тендер опубликован
	ClosedTender    TenderStatus = "Closed"    // Тендер закрыт
)

const (
	MaxNameLength        = 255
	MaxServiceTypeLength = 100
)

// tenderTransitions - допустимые переходы статуса. Переходы только вперёд и строго на один шаг.
var tenderTransitions = map[TenderStatus][]TenderStatus{
	CreatedTender:   {PublishedTender},
	PublishedTender: {ClosedTender},
	ClosedTender:    {},
}

// ParseTenderStatus проверяет, что строка является одним из статусов тендера.
func ParseTenderStatus(s string) (TenderStatus, bool) {
	status := TenderStatus(s)
	if _, ok := tenderTransitions[status]; !ok {
		return "", false
	}
	return status, true
}

// CanTransitionTo сообщает, разрешён ли переход из s в next.
func (s TenderStatus) CanTransitionTo(next TenderStatus) bool {
	for _, allowed := range tenderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Predecessors возвращает статусы, из которых разрешён переход в target.
// Используется как условие атомарного обновления статуса в хранилище.
func Predecessors(target TenderStatus) []TenderStatus {
	var from []TenderStatus
	for _, status := range []TenderStatus{CreatedTender, PublishedTender, ClosedTender} {
		if status.CanTransitionTo(target) {
			from = append(from, status)
		}
	}
	return from
}

// Tender представляет модель тендера.
type Tender struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Description    string       `json:"description"`
	Status         TenderStatus `json:"status"`
	ServiceType    string       `json:"serviceType"`
	OrganizationID string       `json:"organizationId"`
	Version        int32        `json:"version"`
	CreatedAt      time.Time    `json:"createdAt"`
}

// TenderRequest представляет структуру запроса для создания тендера.
type TenderRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	ServiceType     string `json:"serviceType"`
	OrganizationID  string `json:"organizationId"`
	CreatorUsername string `json:"creatorUsername"`
}

// TenderPatch - частичное изменение тендера. nil означает, что поле не меняется.
type TenderPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ServiceType *string `json:"serviceType"`
}

// IsEmpty сообщает, что в патче нет ни одного поля.
func (p TenderPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.ServiceType == nil
}
