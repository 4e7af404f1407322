package fields

import (
	"fmt"
	"strconv"
)

type MovieDuration int32

func (d MovieDuration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(fmt.Sprintf("%d mins", d))), nil
}

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusCheckedIn ReservationStatus = "checked_in"
	StatusNoShow    ReservationStatus = "no_show"
)

// IsActive reports whether a reservation in this status still holds a seat.
// Every status except cancelled counts, no_show included.
func (s ReservationStatus) IsActive() bool {
	return s.IsValid() && s != StatusCancelled
}

func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCheckedIn, StatusNoShow:
		return true
	}
	return false
}
