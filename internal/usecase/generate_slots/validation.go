package generate_slots

import (
	"fmt"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.HorizonDays < 0 {
		return fmt.Errorf("%w: horizonDays must not be negative", ErrInvalidInput)
	}

	if req.HorizonDays > domain.MaxHorizonDays {
		return fmt.Errorf("%w: horizonDays must not exceed %d", ErrInvalidInput, domain.MaxHorizonDays)
	}

	return nil
}
