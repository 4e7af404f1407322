package movies

import (
	"context"
	"errors"
	"log/slog"

	"cinehall/proj/internal/domain/fields"
	"cinehall/proj/internal/domain/filters"
	"cinehall/proj/internal/domain/models"
	"cinehall/proj/internal/storage"
)

type MoviesStorage interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
	Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	List(ctx context.Context, title string, activeOnly bool, filters filters.Filters) ([]models.Movie, int, error)
	Update(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	Delete(ctx context.Context, id int64) error
}

type MovieService struct {
	log     *slog.Logger
	storage MoviesStorage
}

func New(log *slog.Logger, storage MoviesStorage) *MovieService {
	return &MovieService{
		log:     log,
		storage: storage,
	}
}

func (s *MovieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	const op = "movies.MovieService.Get"
	log := s.log.With("op", op, "id", id)
	movie, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

type CreateMovieParams struct {
	Title           string
	Synopsis        *string
	DurationMinutes *int32
	Rating          *string
	PosterURL       *string
	IsActive        bool
}

func (s *MovieService) Create(ctx context.Context, params CreateMovieParams) (*models.Movie, error) {
	const op = "movies.MovieService.Create"
	log := s.log.With("op", op, "title", params.Title)
	movie := &models.Movie{
		Title:     params.Title,
		Synopsis:  params.Synopsis,
		Rating:    params.Rating,
		PosterURL: params.PosterURL,
		IsActive:  params.IsActive,
	}
	if params.DurationMinutes != nil {
		d := fields.MovieDuration(*params.DurationMinutes)
		movie.DurationMinutes = &d
	}
	created, err := s.storage.Insert(ctx, movie)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return created, nil
}

func (s *MovieService) List(ctx context.Context, title string, activeOnly bool, filters filters.Filters) ([]models.Movie, int, error) {
	const op = "movies.MovieService.List"
	movies, total, err := s.storage.List(ctx, title, activeOnly, filters)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, 0, err
	}
	return movies, total, nil
}

type UpdateMovieParams struct {
	Title           *string
	Synopsis        *string
	DurationMinutes *int32
	Rating          *string
	PosterURL       *string
	IsActive        *bool
}

func (s *MovieService) Update(ctx context.Context, id int64, params UpdateMovieParams) (*models.Movie, error) {
	const op = "movies.MovieService.Update"
	log := s.log.With("op", op, "id", id)
	movie, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.Title != nil {
		movie.Title = *params.Title
	}
	if params.Synopsis != nil {
		movie.Synopsis = params.Synopsis
	}
	if params.DurationMinutes != nil {
		d := fields.MovieDuration(*params.DurationMinutes)
		movie.DurationMinutes = &d
	}
	if params.Rating != nil {
		movie.Rating = params.Rating
	}
	if params.PosterURL != nil {
		movie.PosterURL = params.PosterURL
	}
	if params.IsActive != nil {
		movie.IsActive = *params.IsActive
	}
	updatedMovie, err := s.storage.Update(ctx, movie)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updatedMovie, nil
}

// Delete removes a movie together with its screenings and their reservations.
func (s *MovieService) Delete(ctx context.Context, id int64) error {
	const op = "movies.MovieService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return ErrMovieNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
