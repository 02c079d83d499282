package domain

import "time"

// Slot represents a generated bookable time window derived from business hours
// Окно всегда хранится в UTC; уникальность гарантируется парой (business_id, slot_start)
type Slot struct {
	ID          int64
	BusinessID  int64
	StartUTC    time.Time
	EndUTC      time.Time
	IsAvailable bool // capacity flag, снимается только явными операциями
	IsBlocked   bool // ручная блокировка владельцем бизнеса
}

// IsBookable returns true if the slot can still be offered to a caller:
// available, not manually blocked and strictly in the future
func (s *Slot) IsBookable(now time.Time) bool {
	return s.IsAvailable && !s.IsBlocked && s.StartUTC.After(now)
}

// Candidate доступный для бронирования вариант, возвращаемый резолвером
type Candidate struct {
	StartUTC         time.Time
	EndUTC           time.Time
	DisplayLocalTime string // локальное время начала в таймзоне бизнеса, HH:MM
}

// HorizonInfo сводка по сгенерированному горизонту бизнеса
type HorizonInfo struct {
	BusinessID         int64
	FutureSlotCount    int
	FurthestFutureSlot *time.Time
}

// HorizonDays возвращает размер горизонта в днях относительно now
// Ноль, если будущих слотов нет
func (h *HorizonInfo) HorizonDays(now time.Time) int {
	if h.FurthestFutureSlot == nil {
		return 0
	}
	days := int(h.FurthestFutureSlot.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
