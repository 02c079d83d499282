package maintenance_status

import (
	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
)

type Maintainer interface {
	Status() domain.MaintenanceStatus
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
