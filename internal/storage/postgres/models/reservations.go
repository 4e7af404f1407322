package models

import (
	"context"
	"errors"
	"fmt"

	"cinehall/proj/internal/domain/fields"
	"cinehall/proj/internal/domain/filters"
	"cinehall/proj/internal/domain/models"
	"cinehall/proj/internal/storage"
	"cinehall/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationModel struct {
	DB *pgxpool.Pool
}

const reservationColumns = "id, screening_id, user_id, status, seat_label, qr_token, reserved_at, created_at, updated_at"

func (m *ReservationModel) Get(ctx context.Context, id int64) (*models.Reservation, error) {
	rows, err := m.DB.Query(
		ctx,
		fmt.Sprintf("SELECT %s FROM reservations WHERE id = $1", reservationColumns),
		id,
	)
	if err != nil {
		return nil, err
	}
	reservation, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Reservation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

// Insert creates a reservation. The (screening_id, user_id) and qr_token
// unique constraints both surface as storage.ErrConflict.
func (m *ReservationModel) Insert(ctx context.Context, r *models.Reservation) (*models.Reservation, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO reservations (screening_id, user_id, status, seat_label, qr_token)
		VALUES ($1, $2, $3, $4, $5) RETURNING *`,
		r.ScreeningID,
		r.UserID,
		r.Status,
		r.SeatLabel,
		r.QRToken,
	)
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Reservation])
	if err != nil {
		var pgxErr *pgconn.PgError
		if errors.As(err, &pgxErr) {
			switch pgxErr.Code {
			case postgres.ErrConflictCode:
				return nil, storage.ErrConflict
			case "23503": // screening_id references a missing screening
				return nil, storage.ErrNotFound
			}
		}
		return nil, err
	}
	return &created, nil
}

// List returns reservations, newest first. Zero-valued filters are ignored;
// pass userID to scope the result to a single user's rows.
func (m *ReservationModel) List(ctx context.Context, screeningID, userID int64, status fields.ReservationStatus, filters filters.Filters) ([]models.Reservation, int, error) {
	query := fmt.Sprintf(`
	SELECT count(*) OVER(), %s FROM reservations
	WHERE (screening_id = $1 OR $1 = 0)
	AND (user_id = $2 OR $2 = 0)
	AND (status::text = $3 OR $3 = '')
	ORDER BY %s %s, id ASC
	LIMIT $4 OFFSET $5
	`, reservationColumns, filters.SortColumn(), filters.SortDirection())
	args := []any{screeningID, userID, string(status), filters.Limit(), filters.Offset()}
	rows, _ := m.DB.Query(ctx, query, args...)
	type row struct {
		Count int
		models.Reservation
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	reservations := make([]models.Reservation, 0, len(outputRows))
	for _, row := range outputRows {
		reservations = append(reservations, row.Reservation)
	}
	totalRecords := 0
	if len(outputRows) > 0 {
		totalRecords = outputRows[0].Count
	}
	return reservations, totalRecords, nil
}

func (m *ReservationModel) Update(ctx context.Context, r *models.Reservation) (*models.Reservation, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE reservations SET status = $1, seat_label = $2, updated_at = now()
		WHERE id = $3 RETURNING *`,
		r.Status,
		r.SeatLabel,
		r.ID,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Reservation])
	if err != nil {
		var pgxErr *pgconn.PgError
		switch {
		case errors.As(err, &pgxErr) && pgxErr.Code == postgres.ErrConflictCode:
			return nil, storage.ErrConflict
		case errors.Is(err, pgx.ErrNoRows):
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (m *ReservationModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM reservations WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
