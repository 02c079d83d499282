package get_available_slots

import (
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BusinessID      int64     // ID бизнеса
	Date            time.Time // Запрошенная локальная календарная дата (без времени)
	DurationMinutes int       // Запрошенная длительность; 0 = длительность по умолчанию
}

// Response модель ответа со списком доступных кандидатов
type Response struct {
	BusinessID      int64              // ID бизнеса
	Date            time.Time          // Дата, на которую запрашивались слоты
	DurationMinutes int                // Фактически использованная длительность
	Candidates      []domain.Candidate // Кандидаты, отсортированы по возрастанию старта
}
