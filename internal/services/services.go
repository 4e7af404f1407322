package services

import (
	"log/slog"

	"cinehall/proj/internal/config"
	"cinehall/proj/internal/mails"
	"cinehall/proj/internal/services/attendance"
	"cinehall/proj/internal/services/auth"
	"cinehall/proj/internal/services/movies"
	"cinehall/proj/internal/services/reservations"
	"cinehall/proj/internal/services/screenings"
	"cinehall/proj/internal/services/stats"
	storagemodels "cinehall/proj/internal/storage/postgres/models"
)

type Services struct {
	Auth         *auth.AuthService
	Movies       *movies.MovieService
	Screenings   *screenings.ScreeningService
	Reservations *reservations.ReservationService
	Attendance   *attendance.AttendanceService
	Stats        *stats.StatsService
}

func New(
	log *slog.Logger,
	cfg *config.Config,
	models *storagemodels.Models,
	statsCache stats.Cache,
	taskExecutor reservations.TaskExecutor,
) *Services {
	var mailer reservations.MailProvider
	if cfg.SMTP.Enabled {
		mailer = mails.New(
			cfg.SMTP.Host,
			cfg.SMTP.Port,
			cfg.SMTP.Timeout,
			cfg.SMTP.Username,
			cfg.SMTP.Password,
			cfg.SMTP.Sender,
			cfg.SMTP.RetriesCount,
		)
	}
	authService := auth.New(log, models.Profile)
	return &Services{
		Auth:       authService,
		Movies:     movies.New(log, models.Movie),
		Screenings: screenings.New(log, models.Screening),
		Reservations: reservations.New(
			log,
			models.Reservation,
			models.Screening,
			models.Movie,
			models.Profile,
			mailer,
			taskExecutor,
		),
		Attendance: attendance.New(log, models.Attendance, authService),
		Stats:      stats.New(log, models.Stats, statsCache),
	}
}
