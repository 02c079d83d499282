package get_horizon

import (
	"context"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/service/slots/models"
)

type SlotsService interface {
	GetHorizon(ctx context.Context, businessID int64) (*models.HorizonResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
