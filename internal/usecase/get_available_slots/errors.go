package get_available_slots

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда расписание бизнеса не найдено
	ErrBusinessNotFound = errors.New("get_available_slots: business schedule not found")

	// ErrInvalidTimezone возвращается при некорректной таймзоне в расписании бизнеса
	ErrInvalidTimezone = errors.New("get_available_slots: invalid business timezone")

	// ErrInvalidDate возвращается при некорректной дате запроса
	ErrInvalidDate = errors.New("get_available_slots: invalid date")

	// ErrInvalidDuration возвращается при некорректной запрошенной длительности
	ErrInvalidDuration = errors.New("get_available_slots: invalid duration")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
