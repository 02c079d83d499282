package block_slot

import (
	"context"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/service/slots/models"
)

type SlotsService interface {
	SetBlocked(ctx context.Context, req *models.SetBlockedRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
