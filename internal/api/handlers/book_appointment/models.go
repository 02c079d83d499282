package book_appointment

import (
	"time"

	"github.com/GreenGloo/Calendar-SlotEngine/internal/domain"
	bookAppointment "github.com/GreenGloo/Calendar-SlotEngine/internal/usecase/book_appointment"
)

// BookAppointmentRequest HTTP request model
type BookAppointmentRequest struct {
	BusinessID      int64   `json:"businessId"`
	StartUTC        string  `json:"startUtc"` // RFC3339
	ServiceName     string  `json:"serviceName,omitempty"`
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerEmail   *string `json:"customerEmail,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	BusinessID      int64   `json:"businessId"`
	ServiceName     string  `json:"serviceName"`
	StartUTC        string  `json:"startUtc"`
	EndUTC          string  `json:"endUtc"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerEmail   *string `json:"customerEmail,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *BookAppointmentRequest) ToUseCaseRequest() (*bookAppointment.Request, error) {
	// Парсим время начала
	startUTC, err := time.Parse(time.RFC3339, r.StartUTC)
	if err != nil {
		return nil, err
	}

	return &bookAppointment.Request{
		BusinessID:      r.BusinessID,
		StartUTC:        startUTC,
		ServiceName:     r.ServiceName,
		DurationMinutes: r.DurationMinutes,
		Customer: domain.CustomerInfo{
			Name:  r.CustomerName,
			Phone: r.CustomerPhone,
			Email: r.CustomerEmail,
			Notes: r.Notes,
		},
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *bookAppointment.Response) *AppointmentResponse {
	appt := resp.Appointment

	return &AppointmentResponse{
		ID:              appt.ID,
		BusinessID:      appt.BusinessID,
		ServiceName:     appt.ServiceName,
		StartUTC:        appt.StartUTC.Format(time.RFC3339),
		EndUTC:          appt.EndUTC.Format(time.RFC3339),
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
		CustomerName:    appt.CustomerName,
		CustomerPhone:   appt.CustomerPhone,
		CustomerEmail:   appt.CustomerEmail,
		Notes:           appt.Notes,
		CreatedAt:       appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       appt.UpdatedAt.Format(time.RFC3339),
	}
}
