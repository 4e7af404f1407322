package reservations

import "errors"

var (
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrScreeningNotFound    = errors.New("screening for this reservation not found")
	ErrDuplicateReservation = errors.New("user already has a reservation for this screening")
	ErrAccessDenied         = errors.New("access to this reservation is denied")
)
