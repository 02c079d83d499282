package generate_slots

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда расписание бизнеса не найдено
	ErrBusinessNotFound = errors.New("generate_slots: business schedule not found")

	// ErrInvalidSchedule возвращается при некорректной конфигурации расписания
	// (неизвестная таймзона, ночное окно, некорректная длительность)
	// Ошибка содержит имя проблемного поля и не маскируется дефолтами
	ErrInvalidSchedule = errors.New("generate_slots: invalid business schedule")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
