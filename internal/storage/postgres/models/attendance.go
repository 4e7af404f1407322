package models

import (
	"context"
	"errors"
	"fmt"

	"cinehall/proj/internal/domain/fields"
	"cinehall/proj/internal/domain/models"
	"cinehall/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AttendanceModel struct {
	DB *pgxpool.Pool
}

// CheckInByToken runs the check-then-act part of QR validation as a single
// transaction. The reservation row is locked for the duration, so concurrent
// scans of the same token serialize: exactly one caller observes no prior log
// and writes one, the rest come back with AlreadyScanned. Expected outcomes
// (unknown token, cancelled, duplicate) are reported in the outcome struct;
// an error return means the backend itself failed.
func (m *AttendanceModel) CheckInByToken(ctx context.Context, token string, scannedBy *int64) (*models.CheckInOutcome, error) {
	tx, err := m.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(
		ctx,
		fmt.Sprintf("SELECT %s FROM reservations WHERE qr_token = $1 FOR UPDATE", reservationColumns),
		token,
	)
	if err != nil {
		return nil, err
	}
	reservation, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Reservation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.CheckInOutcome{}, nil
		}
		return nil, err
	}

	if reservation.Status == fields.StatusCancelled {
		return &models.CheckInOutcome{Reservation: &reservation}, nil
	}

	var logExists bool
	err = tx.QueryRow(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM attendance_logs WHERE reservation_id = $1)",
		reservation.ID,
	).Scan(&logExists)
	if err != nil {
		return nil, err
	}
	if logExists {
		return &models.CheckInOutcome{Reservation: &reservation, AlreadyScanned: true}, nil
	}

	_, err = tx.Exec(
		ctx,
		"INSERT INTO attendance_logs (reservation_id, scanned_by) VALUES ($1, $2)",
		reservation.ID,
		scannedBy,
	)
	if err != nil {
		// The row lock should make this unreachable, but the unique index on
		// reservation_id is the invariant of record: map a violation to the
		// already-scanned outcome rather than failing the scan.
		var pgxErr *pgconn.PgError
		if errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrConflictCode {
			return &models.CheckInOutcome{Reservation: &reservation, AlreadyScanned: true}, nil
		}
		return nil, err
	}

	updatedRows, err := tx.Query(
		ctx,
		"UPDATE reservations SET status = 'checked_in', updated_at = now() WHERE id = $1 RETURNING *",
		reservation.ID,
	)
	if err != nil {
		return nil, err
	}
	updated, err := pgx.CollectOneRow(updatedRows, pgx.RowToStructByName[models.Reservation])
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &models.CheckInOutcome{Reservation: &updated, CheckedIn: true}, nil
}

func (m *AttendanceModel) ListForScreening(ctx context.Context, screeningID int64) ([]models.AttendanceLog, error) {
	rows, _ := m.DB.Query(
		ctx,
		`SELECT al.id, al.reservation_id, al.scanned_by, al.scanned_at, al.created_at
		FROM attendance_logs al
		JOIN reservations r ON r.id = al.reservation_id
		WHERE r.screening_id = $1
		ORDER BY al.scanned_at DESC`,
		screeningID,
	)
	logs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.AttendanceLog])
	if err != nil {
		return nil, err
	}
	return logs, nil
}
