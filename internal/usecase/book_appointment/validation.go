package book_appointment

import (
	"fmt"
	"strings"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
)

func validateRequest(req Request) error {
	if req.BusinessID <= 0 {
		return fmt.Errorf("%w: businessID must be positive", ErrInvalidInput)
	}

	if req.StartUTC.IsZero() {
		return fmt.Errorf("%w: startUTC is required", ErrInvalidInput)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidDuration)
	}

	if req.DurationMinutes != 0 {
		if req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes {
			return fmt.Errorf("%w: durationMinutes must be between %d and %d",
				ErrInvalidDuration, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
		}
	}

	if strings.TrimSpace(req.Customer.Name) == "" {
		return fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Customer.Phone) == "" {
		return fmt.Errorf("%w: customer phone is required", ErrInvalidInput)
	}

	if req.Customer.Notes != nil && len(*req.Customer.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
