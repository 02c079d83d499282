package get_available_slots

import (
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	getAvailableSlots "github.com/GreenGloo/Calendar-SlotEngine/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string      `json:"date"`
	BusinessID      int64       `json:"businessId"`
	DurationMinutes int         `json:"durationMinutes"`
	Candidates      []Candidate `json:"candidates"`
}

// Candidate доступный для бронирования вариант
type Candidate struct {
	StartUTC         string `json:"startUtc"`
	EndUTC           string `json:"endUtc"`
	DisplayLocalTime string `json:"displayLocalTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	candidates := make([]Candidate, len(resp.Candidates))
	for i, c := range resp.Candidates {
		candidates[i] = Candidate{
			StartUTC:         c.StartUTC.Format(time.RFC3339),
			EndUTC:           c.EndUTC.Format(time.RFC3339),
			DisplayLocalTime: c.DisplayLocalTime,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		BusinessID:      resp.BusinessID,
		DurationMinutes: resp.DurationMinutes,
		Candidates:      candidates,
	}
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(businessID int64, dateStr string, durationMinutes int) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		BusinessID:      businessID,
		Date:            date,
		DurationMinutes: durationMinutes,
	}, nil
}
