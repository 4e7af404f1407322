package models

import "cinehall/proj/internal/storage/postgres"

type Models struct {
	Movie       *MovieModel
	Screening   *ScreeningModel
	Reservation *ReservationModel
	Attendance  *AttendanceModel
	Profile     *ProfileModel
	Stats       *StatsModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		Movie:       &MovieModel{db.Conn},
		Screening:   &ScreeningModel{db.Conn},
		Reservation: &ReservationModel{db.Conn},
		Attendance:  &AttendanceModel{db.Conn},
		Profile:     &ProfileModel{db.Conn},
		Stats:       &StatsModel{db.Conn},
	}
}
