package models

import (
	"context"
	"errors"

	"cinehall/proj/internal/domain/models"
	"cinehall/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type StatsModel struct {
	DB *pgxpool.Pool
}

// Reservations in any status except cancelled count as active; no_show stays
// in the active bucket on purpose.
const countsQuery = `
SELECT s.id AS screening_id,
       s.capacity,
       count(r.id) AS total_reservations,
       count(r.id) FILTER (WHERE r.status <> 'cancelled') AS active_reservations,
       count(r.id) FILTER (WHERE r.status = 'checked_in') AS checked_in_count
FROM screenings s
LEFT JOIN reservations r ON r.screening_id = s.id
`

func (m *StatsModel) CountsForScreening(ctx context.Context, screeningID int64) (*models.ScreeningCounts, error) {
	rows, err := m.DB.Query(
		ctx,
		countsQuery+"WHERE s.id = $1 GROUP BY s.id, s.capacity",
		screeningID,
	)
	if err != nil {
		return nil, err
	}
	counts, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.ScreeningCounts])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &counts, nil
}

func (m *StatsModel) ListCounts(ctx context.Context) ([]models.ScreeningCounts, error) {
	rows, _ := m.DB.Query(ctx, countsQuery+"GROUP BY s.id, s.capacity ORDER BY s.id")
	counts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.ScreeningCounts])
	if err != nil {
		return nil, err
	}
	return counts, nil
}
