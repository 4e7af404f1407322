package models

import (
	"context"
	"errors"
	"fmt"

	"cinehall/proj/internal/domain/filters"
	"cinehall/proj/internal/domain/models"
	"cinehall/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MovieModel struct {
	DB *pgxpool.Pool
}

func (m *MovieModel) Get(ctx context.Context, id int64) (*models.Movie, error) {
	rows, err := m.DB.Query(
		ctx,
		`SELECT id, title, synopsis, duration_minutes, rating, poster_url, is_active, created_at, updated_at
		FROM movies WHERE id = $1`,
		id,
	)
	if err != nil {
		return nil, err
	}
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &movie, nil
}

func (m *MovieModel) Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO movies (title, synopsis, duration_minutes, rating, poster_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING *`,
		movie.Title,
		movie.Synopsis,
		movie.DurationMinutes,
		movie.Rating,
		movie.PosterURL,
		movie.IsActive,
	)
	created, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (m *MovieModel) List(ctx context.Context, title string, activeOnly bool, filters filters.Filters) ([]models.Movie, int, error) {
	query := fmt.Sprintf(`
	SELECT count(*) OVER(), id, title, synopsis, duration_minutes, rating, poster_url, is_active, created_at, updated_at
	FROM movies
	WHERE (to_tsvector('english', title) @@ plainto_tsquery('english', $1) OR $1 = '')
	AND (is_active OR NOT $2)
	ORDER BY %s %s, id ASC
	LIMIT $3 OFFSET $4
	`, filters.SortColumn(), filters.SortDirection())
	args := []any{title, activeOnly, filters.Limit(), filters.Offset()}
	rows, _ := m.DB.Query(ctx, query, args...)
	type row struct {
		Count int
		models.Movie
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, err
	}
	movies := make([]models.Movie, 0, len(outputRows))
	for _, row := range outputRows {
		movies = append(movies, row.Movie)
	}
	totalRecords := 0
	if len(outputRows) > 0 {
		totalRecords = outputRows[0].Count
	}
	return movies, totalRecords, nil
}

func (m *MovieModel) Update(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE movies SET title = $1, synopsis = $2, duration_minutes = $3, rating = $4,
		poster_url = $5, is_active = $6, updated_at = now()
		WHERE id = $7 RETURNING *`,
		movie.Title,
		movie.Synopsis,
		movie.DurationMinutes,
		movie.Rating,
		movie.PosterURL,
		movie.IsActive,
		movie.ID,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// Delete removes the movie; dependent screenings (and their reservations)
// go with it via ON DELETE CASCADE.
func (m *MovieModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM movies WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
