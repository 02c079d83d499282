package schedulestore

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание бизнеса не найдено
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("schedulestore client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от стора
	ErrInvalidResponse = errors.New("schedulestore client: invalid response")
)
