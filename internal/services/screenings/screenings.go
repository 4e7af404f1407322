package screenings

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"cinehall/proj/internal/domain/filters"
	"cinehall/proj/internal/domain/models"
	"cinehall/proj/internal/storage"
)

type ScreeningsStorage interface {
	Get(ctx context.Context, id int64) (*models.Screening, error)
	Insert(ctx context.Context, s *models.Screening) (*models.Screening, error)
	List(ctx context.Context, movieID int64, from, to *time.Time, filters filters.Filters) ([]models.Screening, int, error)
	Update(ctx context.Context, s *models.Screening) (*models.Screening, error)
	Delete(ctx context.Context, id int64) error
}

type ScreeningService struct {
	log     *slog.Logger
	storage ScreeningsStorage
}

func New(log *slog.Logger, storage ScreeningsStorage) *ScreeningService {
	return &ScreeningService{
		log:     log,
		storage: storage,
	}
}

func (s *ScreeningService) Get(ctx context.Context, id int64) (*models.Screening, error) {
	const op = "screenings.ScreeningService.Get"
	log := s.log.With("op", op, "id", id)
	screening, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("screening not found")
			return nil, ErrScreeningNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return screening, nil
}

type CreateScreeningParams struct {
	MovieID    int64
	StartsAt   time.Time
	EndsAt     *time.Time
	Auditorium string
	Capacity   int32
	Notes      *string
}

func (s *ScreeningService) Create(ctx context.Context, params CreateScreeningParams) (*models.Screening, error) {
	const op = "screenings.ScreeningService.Create"
	log := s.log.With("op", op, "movie_id", params.MovieID, "starts_at", params.StartsAt)
	if params.EndsAt != nil && !params.EndsAt.After(params.StartsAt) {
		return nil, ErrInvalidTimeRange
	}
	screening := &models.Screening{
		MovieID:    params.MovieID,
		StartsAt:   params.StartsAt,
		EndsAt:     params.EndsAt,
		Auditorium: params.Auditorium,
		Capacity:   params.Capacity,
		Notes:      params.Notes,
	}
	created, err := s.storage.Insert(ctx, screening)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return created, nil
}

func (s *ScreeningService) List(ctx context.Context, movieID int64, from, to *time.Time, filters filters.Filters) ([]models.Screening, int, error) {
	const op = "screenings.ScreeningService.List"
	screenings, total, err := s.storage.List(ctx, movieID, from, to, filters)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, 0, err
	}
	return screenings, total, nil
}

type UpdateScreeningParams struct {
	StartsAt   *time.Time
	EndsAt     *time.Time
	Auditorium *string
	Capacity   *int32
	Notes      *string
}

func (s *ScreeningService) Update(ctx context.Context, id int64, params UpdateScreeningParams) (*models.Screening, error) {
	const op = "screenings.ScreeningService.Update"
	log := s.log.With("op", op, "id", id)
	screening, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.StartsAt != nil {
		screening.StartsAt = *params.StartsAt
	}
	if params.EndsAt != nil {
		screening.EndsAt = params.EndsAt
	}
	if params.Auditorium != nil {
		screening.Auditorium = *params.Auditorium
	}
	if params.Capacity != nil {
		screening.Capacity = *params.Capacity
	}
	if params.Notes != nil {
		screening.Notes = params.Notes
	}
	if screening.EndsAt != nil && !screening.EndsAt.After(screening.StartsAt) {
		return nil, ErrInvalidTimeRange
	}
	updated, err := s.storage.Update(ctx, screening)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("screening not found")
			return nil, ErrScreeningNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *ScreeningService) Delete(ctx context.Context, id int64) error {
	const op = "screenings.ScreeningService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("screening not found")
			return ErrScreeningNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
