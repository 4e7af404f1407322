package attendance

import (
	"context"
	"log/slog"
	"strings"

	"cinehall/proj/internal/domain/models"
)

// Scan outcome messages, part of the API contract with the scanner UI.
const (
	MsgUnauthorized   = "only authorized staff may validate codes"
	MsgInvalidToken   = "invalid QR code"
	MsgNotFound       = "no reservation found for this code"
	MsgCancelled      = "reservation is cancelled and cannot be checked in"
	MsgAlreadyScanned = "this reservation was already validated"
	MsgSuccess        = "attendance registered successfully"
)

type AttendanceStorage interface {
	CheckInByToken(ctx context.Context, token string, scannedBy *int64) (*models.CheckInOutcome, error)
	ListForScreening(ctx context.Context, screeningID int64) ([]models.AttendanceLog, error)
}

type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

type AttendanceService struct {
	log     *slog.Logger
	storage AttendanceStorage
	auth    AdminChecker
}

func New(log *slog.Logger, storage AttendanceStorage, auth AdminChecker) *AttendanceService {
	return &AttendanceService{
		log:     log,
		storage: storage,
		auth:    auth,
	}
}

// ValidateQR validates a scanned token and, when it names a live reservation,
// records attendance and moves the reservation to checked_in. Guards run in a
// fixed order: authorization, token shape, existence, cancelled state,
// duplicate scan. Every expected outcome comes back as a ValidationResult;
// an error return means the backend itself failed, not the scan.
func (s *AttendanceService) ValidateQR(ctx context.Context, token string, scannerID *int64) (*models.ValidationResult, error) {
	const op = "attendance.AttendanceService.ValidateQR"
	log := s.log.With("op", op)

	isAdmin := false
	if scannerID != nil {
		var err error
		isAdmin, err = s.auth.IsAdmin(ctx, *scannerID)
		if err != nil {
			log.Error(err.Error())
			return nil, err
		}
		log = log.With("scanner_id", *scannerID)
	}
	if !isAdmin {
		log.Warn("scan rejected: scanner is not an admin")
		return &models.ValidationResult{Message: MsgUnauthorized}, nil
	}

	if strings.TrimSpace(token) == "" {
		return &models.ValidationResult{Message: MsgInvalidToken}, nil
	}

	outcome, err := s.storage.CheckInByToken(ctx, token, scannerID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	if outcome.Reservation == nil {
		log.Info("scan matched no reservation")
		return &models.ValidationResult{Message: MsgNotFound}, nil
	}

	reservation := outcome.Reservation
	result := &models.ValidationResult{
		ReservationID: &reservation.ID,
		ScreeningID:   &reservation.ScreeningID,
		Status:        string(reservation.Status),
	}
	switch {
	case outcome.AlreadyScanned:
		log.Info("duplicate scan", "reservation_id", reservation.ID)
		result.AlreadyScanned = true
		result.Message = MsgAlreadyScanned
	case outcome.CheckedIn:
		log.Info("attendance registered", "reservation_id", reservation.ID)
		result.IsValid = true
		result.Message = MsgSuccess
	default:
		// Only the cancelled guard leaves the storage layer without either flag.
		log.Info("scan of cancelled reservation", "reservation_id", reservation.ID)
		result.Message = MsgCancelled
	}
	return result, nil
}

func (s *AttendanceService) ListForScreening(ctx context.Context, screeningID int64) ([]models.AttendanceLog, error) {
	const op = "attendance.AttendanceService.ListForScreening"
	logs, err := s.storage.ListForScreening(ctx, screeningID)
	if err != nil {
		s.log.With("op", op, "screening_id", screeningID).Error(err.Error())
		return nil, err
	}
	return logs, nil
}
