package generate_slots

import (
	generateSlots "github.com/GreenGloo/Calendar-SlotEngine/internal/usecase/generate_slots"
)

// GenerateSlotsRequest HTTP request model
// Тело опционально: пустое тело означает генерацию с дефолтным горизонтом
type GenerateSlotsRequest struct {
	HorizonDays int `json:"horizonDays,omitempty"`
}

// GenerateSlotsResponse HTTP response model
type GenerateSlotsResponse struct {
	BusinessID   int64 `json:"businessId"`
	HorizonDays  int   `json:"horizonDays"`
	SlotsCreated int   `json:"slotsCreated"`
	SlotsDeleted int   `json:"slotsDeleted"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *GenerateSlotsResponse {
	return &GenerateSlotsResponse{
		BusinessID:   resp.BusinessID,
		HorizonDays:  resp.HorizonDays,
		SlotsCreated: resp.SlotsCreated,
		SlotsDeleted: resp.SlotsDeleted,
	}
}
