package movies

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"cinehall/proj/internal/domain/filters"
	"cinehall/proj/internal/domain/models"
	"cinehall/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMoviesStorage struct {
	rows   map[int64]*models.Movie
	nextID int64
}

func newFakeMoviesStorage() *fakeMoviesStorage {
	return &fakeMoviesStorage{rows: make(map[int64]*models.Movie), nextID: 1}
}

func (s *fakeMoviesStorage) Get(ctx context.Context, id int64) (*models.Movie, error) {
	row, ok := s.rows[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	copied := *row
	return &copied, nil
}

func (s *fakeMoviesStorage) Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	created := *movie
	created.ID = s.nextID
	s.nextID++
	s.rows[created.ID] = &created
	return &created, nil
}

func (s *fakeMoviesStorage) List(ctx context.Context, title string, activeOnly bool, f filters.Filters) ([]models.Movie, int, error) {
	var out []models.Movie
	for _, row := range s.rows {
		if activeOnly && !row.IsActive {
			continue
		}
		out = append(out, *row)
	}
	return out, len(out), nil
}

func (s *fakeMoviesStorage) Update(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	if _, ok := s.rows[movie.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	s.rows[movie.ID] = movie
	return movie, nil
}

func (s *fakeMoviesStorage) Delete(ctx context.Context, id int64) error {
	if _, ok := s.rows[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

func newTestService(store *fakeMoviesStorage) *MovieService {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), store)
}

func ptr[T any](v T) *T {
	return &v
}

func TestCreateMovie(t *testing.T) {
	store := newFakeMoviesStorage()
	service := newTestService(store)

	created, err := service.Create(context.Background(), CreateMovieParams{
		Title:           "Titanic",
		DurationMinutes: ptr(int32(195)),
		IsActive:        true,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	// Titles are not unique: remakes and re-releases share a title freely.
	remake, err := service.Create(context.Background(), CreateMovieParams{
		Title:    "Titanic",
		IsActive: true,
	})
	require.NoError(t, err)
	assert.NotEqual(t, created.ID, remake.ID)
	assert.Equal(t, created.Title, remake.Title)
}

func TestUpdateMoviePatchSemantics(t *testing.T) {
	store := newFakeMoviesStorage()
	service := newTestService(store)
	created, err := service.Create(context.Background(), CreateMovieParams{
		Title:           "Dune Part 2",
		DurationMinutes: ptr(int32(166)),
		Rating:          ptr("PG-13"),
		IsActive:        true,
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, UpdateMovieParams{
		IsActive: ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "Dune Part 2", updated.Title)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, "PG-13", *updated.Rating)

	_, err = service.Update(context.Background(), int64(99), UpdateMovieParams{})
	assert.ErrorIs(t, err, ErrMovieNotFound)
}

func TestDeleteMovie(t *testing.T) {
	store := newFakeMoviesStorage()
	service := newTestService(store)
	created, err := service.Create(context.Background(), CreateMovieParams{Title: "Alien", IsActive: true})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	assert.ErrorIs(t, service.Delete(context.Background(), created.ID), ErrMovieNotFound)
	_, err = service.Get(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrMovieNotFound)
}
