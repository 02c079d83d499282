package block_slot

import (
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/service/slots/models"
)

// BlockSlotRequest HTTP request model
type BlockSlotRequest struct {
	StartUTC string `json:"startUtc"` // RFC3339
	Blocked  bool   `json:"blocked"`
}

// SlotResponse HTTP response model
type SlotResponse struct {
	ID          int64  `json:"id"`
	BusinessID  int64  `json:"businessId"`
	StartUTC    string `json:"startUtc"`
	EndUTC      string `json:"endUtc"`
	IsAvailable bool   `json:"isAvailable"`
	IsBlocked   bool   `json:"isBlocked"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *BlockSlotRequest) ToServiceRequest(businessID int64) (*models.SetBlockedRequest, error) {
	startUTC, err := time.Parse(time.RFC3339, r.StartUTC)
	if err != nil {
		return nil, err
	}

	return &models.SetBlockedRequest{
		BusinessID: businessID,
		StartUTC:   startUTC,
		Blocked:    r.Blocked,
	}, nil
}

// FromServiceResponse конвертирует ответ сервиса в HTTP response
func FromServiceResponse(resp *models.SlotResponse) *SlotResponse {
	return &SlotResponse{
		ID:          resp.ID,
		BusinessID:  resp.BusinessID,
		StartUTC:    resp.StartUTC.Format(time.RFC3339),
		EndUTC:      resp.EndUTC.Format(time.RFC3339),
		IsAvailable: resp.IsAvailable,
		IsBlocked:   resp.IsBlocked,
	}
}
