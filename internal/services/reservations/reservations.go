package reservations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"cinehall/proj/internal/domain/fields"
	"cinehall/proj/internal/domain/filters"
	"cinehall/proj/internal/domain/models"
	"cinehall/proj/internal/lib/qr"
	"cinehall/proj/internal/mails"
	"cinehall/proj/internal/storage"

	"github.com/google/uuid"
)

const qrImageSize = 256

type ReservationsStorage interface {
	Get(ctx context.Context, id int64) (*models.Reservation, error)
	Insert(ctx context.Context, r *models.Reservation) (*models.Reservation, error)
	List(ctx context.Context, screeningID, userID int64, status fields.ReservationStatus, filters filters.Filters) ([]models.Reservation, int, error)
	Update(ctx context.Context, r *models.Reservation) (*models.Reservation, error)
	Delete(ctx context.Context, id int64) error
}

type ScreeningsStorage interface {
	Get(ctx context.Context, id int64) (*models.Screening, error)
}

type MoviesStorage interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
}

type ProfilesStorage interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
}

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any, attachments ...mails.Attachment) error
}

type TaskExecutor interface {
	Add(task func())
}

type ReservationService struct {
	log          *slog.Logger
	storage      ReservationsStorage
	screenings   ScreeningsStorage
	movies       MoviesStorage
	profiles     ProfilesStorage
	mailer       MailProvider // nil when mail delivery is disabled
	taskExecutor TaskExecutor
}

func New(
	log *slog.Logger,
	storage ReservationsStorage,
	screenings ScreeningsStorage,
	movies MoviesStorage,
	profiles ProfilesStorage,
	mailer MailProvider,
	taskExecutor TaskExecutor,
) *ReservationService {
	return &ReservationService{
		log:          log,
		storage:      storage,
		screenings:   screenings,
		movies:       movies,
		profiles:     profiles,
		mailer:       mailer,
		taskExecutor: taskExecutor,
	}
}

// canAccess is the self-service rule: admins see every row, everyone else
// only rows whose user_id matches their own identity.
func canAccess(actor *models.Profile, reservationUserID int64) bool {
	if actor == nil {
		return false
	}
	return actor.IsAdmin() || actor.UserID == reservationUserID
}

func (s *ReservationService) Get(ctx context.Context, actor *models.Profile, id int64) (*models.Reservation, error) {
	const op = "reservations.ReservationService.Get"
	log := s.log.With("op", op, "id", id)
	reservation, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("reservation not found")
			return nil, ErrReservationNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	if !canAccess(actor, reservation.UserID) {
		log.Warn("access denied", "reservation_user_id", reservation.UserID)
		return nil, ErrAccessDenied
	}
	return reservation, nil
}

type CreateReservationParams struct {
	ScreeningID int64
	UserID      int64
	SeatLabel   *string
}

// Create books a seat. The QR token is generated server-side and is globally
// unique; a second reservation for the same (screening, user) pair comes back
// as ErrDuplicateReservation. Status always starts out as confirmed.
func (s *ReservationService) Create(ctx context.Context, actor *models.Profile, params CreateReservationParams) (*models.Reservation, error) {
	const op = "reservations.ReservationService.Create"
	log := s.log.With("op", op, "screening_id", params.ScreeningID, "user_id", params.UserID)
	if actor == nil || (!actor.IsAdmin() && actor.UserID != params.UserID) {
		log.Warn("access denied")
		return nil, ErrAccessDenied
	}
	reservation := &models.Reservation{
		ScreeningID: params.ScreeningID,
		UserID:      params.UserID,
		Status:      fields.StatusConfirmed,
		SeatLabel:   params.SeatLabel,
		QRToken:     "RSV-" + uuid.NewString(),
	}
	created, err := s.storage.Insert(ctx, reservation)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrConflict):
			log.Info("duplicate reservation")
			return nil, ErrDuplicateReservation
		case errors.Is(err, storage.ErrNotFound):
			log.Info("screening not found")
			return nil, ErrScreeningNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	s.sendConfirmation(ctx, created)
	return created, nil
}

// sendConfirmation queues the confirmation email with the QR code attached.
// Booking never fails because of mail problems, they are only logged.
func (s *ReservationService) sendConfirmation(ctx context.Context, reservation *models.Reservation) {
	const op = "reservations.ReservationService.sendConfirmation"
	if s.mailer == nil || s.taskExecutor == nil {
		return
	}
	log := s.log.With("op", op, "reservation_id", reservation.ID)
	profile, err := s.profiles.GetByUserID(ctx, reservation.UserID)
	if err != nil || profile.Email == "" {
		log.Info("no mailable profile for reservation user")
		return
	}
	screening, err := s.screenings.Get(ctx, reservation.ScreeningID)
	if err != nil {
		log.Error("failed to load screening for confirmation email", "err", err.Error())
		return
	}
	movie, err := s.movies.Get(ctx, screening.MovieID)
	if err != nil {
		log.Error("failed to load movie for confirmation email", "err", err.Error())
		return
	}
	qrPNG, err := qr.EncodePNG(reservation.QRToken, qrImageSize)
	if err != nil {
		log.Error("failed to render QR code", "err", err.Error())
		return
	}
	recipient := profile.Email
	seatLabel := ""
	if reservation.SeatLabel != nil {
		seatLabel = *reservation.SeatLabel
	}
	tmplData := map[string]any{
		"reservationID": reservation.ID,
		"movieTitle":    movie.Title,
		"startsAt":      screening.StartsAt.Format("02 Jan 2006 15:04"),
		"auditorium":    screening.Auditorium,
		"seatLabel":     seatLabel,
	}
	attachment := mails.Attachment{
		Filename: fmt.Sprintf("reservation_%d.png", reservation.ID),
		Data:     qrPNG,
	}
	s.taskExecutor.Add(func() {
		if err := s.mailer.Send(recipient, "reservation_confirmation.html", tmplData, attachment); err != nil {
			log.Error("failed to send confirmation email", "err", err.Error())
		}
	})
}

func (s *ReservationService) List(ctx context.Context, actor *models.Profile, screeningID, userID int64, status fields.ReservationStatus, filters filters.Filters) ([]models.Reservation, int, error) {
	const op = "reservations.ReservationService.List"
	if actor == nil {
		return nil, 0, ErrAccessDenied
	}
	if !actor.IsAdmin() {
		// Non-admins only ever see their own rows.
		userID = actor.UserID
	}
	reservations, total, err := s.storage.List(ctx, screeningID, userID, status, filters)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, 0, err
	}
	return reservations, total, nil
}

type UpdateReservationParams struct {
	Status    *fields.ReservationStatus
	SeatLabel *string
}

func (s *ReservationService) Update(ctx context.Context, actor *models.Profile, id int64, params UpdateReservationParams) (*models.Reservation, error) {
	const op = "reservations.ReservationService.Update"
	log := s.log.With("op", op, "id", id)
	reservation, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if params.Status != nil {
		reservation.Status = *params.Status
	}
	if params.SeatLabel != nil {
		reservation.SeatLabel = params.SeatLabel
	}
	updated, err := s.storage.Update(ctx, reservation)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("reservation not found")
			return nil, ErrReservationNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *ReservationService) Delete(ctx context.Context, actor *models.Profile, id int64) error {
	const op = "reservations.ReservationService.Delete"
	log := s.log.With("op", op, "id", id)
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrReservationNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}

// QRCodePNG renders the reservation's entrance token as a PNG image.
func (s *ReservationService) QRCodePNG(ctx context.Context, actor *models.Profile, id int64) ([]byte, error) {
	const op = "reservations.ReservationService.QRCodePNG"
	reservation, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	png, err := qr.EncodePNG(reservation.QRToken, qrImageSize)
	if err != nil {
		s.log.With("op", op, "id", id).Error(err.Error())
		return nil, err
	}
	return png, nil
}
