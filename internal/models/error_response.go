package models

import (
	"errors"
	"net/http"
)

// ErrorResponse описывает ошибку с кодом и сообщением.
type ErrorResponse struct {
	StatusCode int    `json:"-"`
	Message    string `json:"reason"`
}

// NewErrorResponse создает новую ошибку с кодом и сообщением.
func NewErrorResponse(statusCode int, message string) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Message:    message}
}

// ErrorResponseFrom сопоставляет ошибку ядра с HTTP-кодом. Текст ошибки становится причиной в ответе,
// кроме неизвестных ошибок: их детали наружу не отдаются.
func ErrorResponseFrom(err error) *ErrorResponse {
	var errorResponse *ErrorResponse
	if errors.As(err, &errorResponse) {
		return errorResponse
	}

	switch {
	case errors.Is(err, ErrValidation):
		return NewErrorResponse(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrUnknownUser):
		return NewErrorResponse(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrForbidden):
		return NewErrorResponse(http.StatusForbidden, err.Error())
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotFoundOrInvalidTransition):
		return NewErrorResponse(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrStoreUnavailable):
		return NewErrorResponse(http.StatusServiceUnavailable, "service temporarily unavailable")
	default:
		return NewErrorResponse(http.StatusInternalServerError, "internal server error")
	}
}

// Реализация метода Error() для удовлетворения интерфейса error.
func (e *ErrorResponse) Error() string {
	return e.Message
}
