package stats

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"cinehall/proj/internal/domain/models"
	"cinehall/proj/internal/storage"
)

var ErrScreeningNotFound = errors.New("screening not found")

type StatsStorage interface {
	CountsForScreening(ctx context.Context, screeningID int64) (*models.ScreeningCounts, error)
	ListCounts(ctx context.Context) ([]models.ScreeningCounts, error)
}

// Cache fronts List reads; stale entries age out on their own, mutations are
// never blocked on it.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

type StatsService struct {
	log     *slog.Logger
	storage StatsStorage
	cache   Cache // nil when caching is disabled
}

func New(log *slog.Logger, storage StatsStorage, cache Cache) *StatsService {
	return &StatsService{
		log:     log,
		storage: storage,
		cache:   cache,
	}
}

const listCacheKey = "screening_stats"

// Compute derives the occupancy/attendance projection from raw counts. Both
// rates collapse to 0 instead of dividing by zero, and no_show reservations
// count toward occupancy because they are in the active bucket.
func Compute(counts models.ScreeningCounts) models.ScreeningStats {
	stats := models.ScreeningStats{ScreeningCounts: counts}
	if counts.Capacity > 0 {
		stats.OccupancyRate = round2(float64(counts.TotalReservations) / float64(counts.Capacity) * 100)
	}
	if counts.TotalReservations > 0 {
		stats.AttendanceRate = round2(float64(counts.CheckedInCount) / float64(counts.TotalReservations) * 100)
	}
	return stats
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *StatsService) ForScreening(ctx context.Context, screeningID int64) (*models.ScreeningStats, error) {
	const op = "stats.StatsService.ForScreening"
	counts, err := s.storage.CountsForScreening(ctx, screeningID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrScreeningNotFound
		}
		s.log.With("op", op, "screening_id", screeningID).Error(err.Error())
		return nil, err
	}
	stats := Compute(*counts)
	return &stats, nil
}

func (s *StatsService) List(ctx context.Context) ([]models.ScreeningStats, error) {
	const op = "stats.StatsService.List"
	log := s.log.With("op", op)

	if s.cache != nil {
		var cached []models.ScreeningStats
		hit, err := s.cache.Get(ctx, listCacheKey, &cached)
		if err != nil {
			log.Warn("stats cache read failed", "err", err.Error())
		} else if hit {
			return cached, nil
		}
	}

	counts, err := s.storage.ListCounts(ctx)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	stats := make([]models.ScreeningStats, 0, len(counts))
	for _, c := range counts {
		stats = append(stats, Compute(c))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, listCacheKey, stats); err != nil {
			log.Warn("stats cache write failed", "err", err.Error())
		}
	}
	return stats, nil
}
