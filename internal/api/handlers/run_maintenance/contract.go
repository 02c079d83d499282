package run_maintenance

import (
	"context"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
)

type Maintainer interface {
	RunCycle(ctx context.Context) error
	Status() domain.MaintenanceStatus
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
