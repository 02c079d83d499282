package get_available_slots

import (
	"fmt"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidDuration)
	}

	if req.DurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must not exceed %d", ErrInvalidDuration, domain.MaxSlotDurationMinutes)
	}

	return nil
}
