package domain

import "time"

// MaintenanceStatus операционный статус фонового обслуживания горизонта
type MaintenanceStatus struct {
	LastCleanup    *time.Time
	LastGeneration *time.Time
	IsRunning      bool
}
