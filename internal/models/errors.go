package models

import "errors"

// Ошибки ядра. Обработчики сопоставляют их с HTTP-кодами через errors.Is.
var (
	ErrValidation                  = errors.New("validation error")
	ErrUnknownUser                 = errors.New("user does not exist")
	ErrForbidden                   = errors.New("user is not responsible for the organization")
	ErrNotFound                    = errors.New("tender not found")
	ErrNotFoundOrInvalidTransition = errors.New("tender not found or cannot change status")
	ErrStoreUnavailable            = errors.New("store unavailable")
)
