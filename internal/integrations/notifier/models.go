package notifier

import "time"

// EventType тип события для Notification Sink
type EventType string

const (
	EventBookingCreated EventType = "booking.created"
)

// Event событие, отправляемое в Notification Sink
type Event struct {
	EventID       string    `json:"event_id"` // uuid, для дедупликации на стороне получателя
	Type          EventType `json:"type"`
	BusinessID    int64     `json:"business_id"`
	AppointmentID int64     `json:"appointment_id"`
	ServiceName   string    `json:"service_name"`
	StartUTC      time.Time `json:"start_utc"`
	EndUTC        time.Time `json:"end_utc"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	OccurredAt    time.Time `json:"occurred_at"`
}
