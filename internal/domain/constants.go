package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 60
	DefaultSlotStepMinutes     = 30
	DefaultHorizonDays         = 400
	DefaultMinHorizonDays      = 350
	DefaultFutureSlotFloor     = 50
	DefaultRetentionDays       = 30
	DefaultCandidatePageSize   = 8
)

// Buffer policy
// Длинные работы уже содержат запас по времени, поэтому буфер для них меньше
const (
	TravelBufferMinutes        = 30
	LongJobTravelBufferMinutes = 15
	LongJobThresholdMinutes    = 180
)

// Business validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinSlotStepMinutes     = 5
	MaxHorizonDays         = 730 // 2 years
	MaxNotesLength         = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TravelBufferFor возвращает буфер в минутах для запрошенной длительности
func TravelBufferFor(durationMinutes int) int {
	if durationMinutes > LongJobThresholdMinutes {
		return LongJobTravelBufferMinutes
	}
	return TravelBufferMinutes
}
