package models

import (
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
)

// Request модели

// SetBlockedRequest запрос на ручную блокировку или разблокировку слота
type SetBlockedRequest struct {
	BusinessID int64     `json:"businessId"`
	StartUTC   time.Time `json:"startUtc"`
	Blocked    bool      `json:"blocked"`
}

// Response модели

// SlotResponse слот календаря
type SlotResponse struct {
	ID          int64     `json:"id"`
	BusinessID  int64     `json:"businessId"`
	StartUTC    time.Time `json:"startUtc"`
	EndUTC      time.Time `json:"endUtc"`
	IsAvailable bool      `json:"isAvailable"`
	IsBlocked   bool      `json:"isBlocked"`
}

// HorizonResponse сводка по сгенерированному горизонту бизнеса
type HorizonResponse struct {
	BusinessID         int64      `json:"businessId"`
	FutureSlotCount    int        `json:"futureSlotCount"`
	FurthestFutureSlot *time.Time `json:"furthestFutureSlot,omitempty"`
	HorizonDays        int        `json:"horizonDays"`
}

// FromDomainSlot конвертирует domain слот в response
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:          s.ID,
		BusinessID:  s.BusinessID,
		StartUTC:    s.StartUTC,
		EndUTC:      s.EndUTC,
		IsAvailable: s.IsAvailable,
		IsBlocked:   s.IsBlocked,
	}
}

// FromDomainHorizon конвертирует domain сводку горизонта в response
func FromDomainHorizon(info *domain.HorizonInfo, now time.Time) *HorizonResponse {
	return &HorizonResponse{
		BusinessID:         info.BusinessID,
		FutureSlotCount:    info.FutureSlotCount,
		FurthestFutureSlot: info.FurthestFutureSlot,
		HorizonDays:        info.HorizonDays(now),
	}
}
