package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись или ресурс не найдены.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized используется для ошибок авторизации (неверный токен, нет прав).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden используется, когда у пользователя недостаточно прав для действия.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation используется для ошибок валидации входных данных.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState используется, когда операция не допускается текущим статусом
	// попытки (например, автосохранение после финализации).
	ErrInvalidState = errors.New("operation not allowed in current state")

	// ErrAlreadySubmitted используется при повторной финализации попытки.
	// После финализации счет заморожен и не пересчитывается.
	ErrAlreadySubmitted = errors.New("submission already finalized")

	// ErrConflict используется для конфликтов конкурентного доступа,
	// не разрешившихся за отведенное число повторов.
	ErrConflict = errors.New("resource state conflict")

	// ErrContestNotStarted используется при попытке действия до открытия окна конкурса.
	ErrContestNotStarted = errors.New("contest has not started yet")

	// ErrContestClosed используется при попытке действия после закрытия окна конкурса.
	ErrContestClosed = errors.New("contest is closed")
)
