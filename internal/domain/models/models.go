package models

import (
	"cinehall/proj/internal/domain/fields"
	"time"
)

type Movie struct {
	ID              int64                  `json:"id"`                         // Unique integer ID for the movie
	Title           string                 `json:"title"`                      // Movie title
	Synopsis        *string                `json:"synopsis,omitempty"`         // Optional plot summary
	DurationMinutes *fields.MovieDuration  `json:"duration_minutes,omitempty"` // Runtime in minutes, unset when unknown
	Rating          *string                `json:"rating,omitempty"`           // Age rating label (i.e. PG-13, R)
	PosterURL       *string                `json:"poster_url,omitempty"`       // Reference to the poster image
	IsActive        bool                   `json:"is_active"`                  // Whether the movie is currently programmed
	CreatedAt       time.Time              `json:"-"`
	UpdatedAt       time.Time              `json:"-"`
}

type Screening struct {
	ID         int64      `json:"id"`
	MovieID    int64      `json:"movie_id"`
	StartsAt   time.Time  `json:"starts_at"`
	EndsAt     *time.Time `json:"ends_at,omitempty"` // Must be after StartsAt when present
	Auditorium string     `json:"auditorium"`
	Capacity   int32      `json:"capacity"`
	Notes      *string    `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"-"`
	UpdatedAt  time.Time  `json:"-"`
}

type Reservation struct {
	ID          int64                    `json:"id"`
	ScreeningID int64                    `json:"screening_id"`
	UserID      int64                    `json:"user_id"`
	Status      fields.ReservationStatus `json:"status"`
	SeatLabel   *string                  `json:"seat_label,omitempty"`
	QRToken     string                   `json:"qr_token"` // Opaque globally unique entrance token
	ReservedAt  time.Time                `json:"reserved_at"`
	CreatedAt   time.Time                `json:"-"`
	UpdatedAt   time.Time                `json:"-"`
}

// AttendanceLog is the immutable audit record of a successful QR validation.
// At most one exists per reservation; it is never updated after insert.
type AttendanceLog struct {
	ID            int64     `json:"id"`
	ReservationID int64     `json:"reservation_id"`
	ScannedBy     *int64    `json:"scanned_by,omitempty"`
	ScannedAt     time.Time `json:"scanned_at"`
	CreatedAt     time.Time `json:"-"`
}

type Profile struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"-"`
}

const RoleAdmin = "admin"

func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// ScreeningCounts holds the raw per-screening aggregates as read from storage.
type ScreeningCounts struct {
	ScreeningID        int64 `json:"screening_id"`
	Capacity           int32 `json:"capacity"`
	TotalReservations  int64 `json:"total_reservations"`
	ActiveReservations int64 `json:"active_reservations"`
	CheckedInCount     int64 `json:"checked_in_count"`
}

// ScreeningStats is the derived occupancy/attendance projection. It is
// recomputed on read and never persisted.
type ScreeningStats struct {
	ScreeningCounts
	OccupancyRate  float64 `json:"occupancy_rate"`
	AttendanceRate float64 `json:"attendance_rate"`
}

// ValidationResult is the structured outcome of a QR scan. Expected failures
// (bad token, duplicate scan, unauthorized scanner) are reported here rather
// than as errors so the caller can render every case the same way.
type ValidationResult struct {
	ReservationID  *int64 `json:"reservation_id"`
	ScreeningID    *int64 `json:"screening_id"`
	Status         string `json:"status"`
	Message        string `json:"message"`
	AlreadyScanned bool   `json:"already_scanned"`
	IsValid        bool   `json:"is_valid"`
}

// CheckInOutcome reports what the storage layer observed while attempting a
// check-in. Reservation is nil when the token matched nothing; CheckedIn is
// true only when a new attendance log was written in this call.
type CheckInOutcome struct {
	Reservation    *Reservation
	AlreadyScanned bool
	CheckedIn      bool
}
