package book_appointment

import "errors"

var (
	ErrBusinessNotFound     = errors.New("book_appointment: business not found")
	ErrServiceNotFound      = errors.New("book_appointment: service not found")
	ErrSlotConflict         = errors.New("book_appointment: slot conflicts with an existing appointment")
	ErrOutsideBusinessHours = errors.New("book_appointment: requested time is outside business hours")
	ErrInvalidDuration      = errors.New("book_appointment: invalid appointment duration")
	ErrInvalidInput         = errors.New("book_appointment: invalid input")
	ErrInternal             = errors.New("book_appointment: internal error")
)
