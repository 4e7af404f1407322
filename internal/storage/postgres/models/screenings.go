package models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinehall/proj/internal/domain/filters"
	"cinehall/proj/internal/domain/models"
	"cinehall/proj/internal/storage"
	"cinehall/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScreeningModel struct {
	DB *pgxpool.Pool
}

const screeningColumns = "id, movie_id, starts_at, ends_at, auditorium, capacity, notes, created_at, updated_at"

func (m *ScreeningModel) Get(ctx context.Context, id int64) (*models.Screening, error) {
	rows, err := m.DB.Query(
		ctx,
		fmt.Sprintf("SELECT %s FROM screenings WHERE id = $1", screeningColumns),
		id,
	)
	if err != nil {
		return nil, err
	}
	screening, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Screening])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &screening, nil
}

func (m *ScreeningModel) Insert(ctx context.Context, s *models.Screening) (*models.Screening, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO screenings (movie_id, starts_at, ends_at, auditorium, capacity, notes)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING *`,
		s.MovieID,
		s.StartsAt,
		s.EndsAt,
		s.Auditorium,
		s.Capacity,
		s.Notes,
	)
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Screening])
	if err != nil {
		var pgxErr *pgconn.PgError
		if errors.As(err, &pgxErr) {
			switch pgxErr.Code {
			case postgres.ErrConflictCode:
				return nil, storage.ErrConflict
			case "23503": // movie_id references a missing movie
				return nil, storage.ErrNotFound
			}
		}
		return nil, err
	}
	return &created, nil
}

func (m *ScreeningModel) List(ctx context.Context, movieID int64, from, to *time.Time, filters filters.Filters) ([]models.Screening, int, error) {
	query := fmt.Sprintf(`
	SELECT count(*) OVER(), %s FROM screenings
	WHERE (movie_id = $1 OR $1 = 0)
	AND ($2::timestamptz IS NULL OR starts_at >= $2)
	AND ($3::timestamptz IS NULL OR starts_at <= $3)
	ORDER BY %s %s, id ASC
	LIMIT $4 OFFSET $5
	`, screeningColumns, filters.SortColumn(), filters.SortDirection())
	args := []any{movieID, from, to, filters.Limit(), filters.Offset()}
	rows, _ := m.DB.Query(ctx, query, args...)
	type row struct {
		Count int
		models.Screening
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	screenings := make([]models.Screening, 0, len(outputRows))
	for _, row := range outputRows {
		screenings = append(screenings, row.Screening)
	}
	totalRecords := 0
	if len(outputRows) > 0 {
		totalRecords = outputRows[0].Count
	}
	return screenings, totalRecords, nil
}

func (m *ScreeningModel) Update(ctx context.Context, s *models.Screening) (*models.Screening, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE screenings SET movie_id = $1, starts_at = $2, ends_at = $3, auditorium = $4,
		capacity = $5, notes = $6, updated_at = now()
		WHERE id = $7 RETURNING *`,
		s.MovieID,
		s.StartsAt,
		s.EndsAt,
		s.Auditorium,
		s.Capacity,
		s.Notes,
		s.ID,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Screening])
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

func (m *ScreeningModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM screenings WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
