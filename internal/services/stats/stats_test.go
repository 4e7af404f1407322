package stats

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"cinehall/proj/internal/domain/models"
	"cinehall/proj/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute(t *testing.T) {
	t.Run("zero capacity", func(t *testing.T) {
		stats := Compute(models.ScreeningCounts{ScreeningID: 1, Capacity: 0, TotalReservations: 5})
		assert.Equal(t, float64(0), stats.OccupancyRate)
		assert.Equal(t, float64(0), stats.AttendanceRate)
	})
	t.Run("zero reservations", func(t *testing.T) {
		stats := Compute(models.ScreeningCounts{ScreeningID: 1, Capacity: 50})
		assert.Equal(t, float64(0), stats.OccupancyRate)
		assert.Equal(t, float64(0), stats.AttendanceRate)
	})
	t.Run("partial house", func(t *testing.T) {
		stats := Compute(models.ScreeningCounts{
			ScreeningID:        1,
			Capacity:           50,
			TotalReservations:  30,
			ActiveReservations: 30,
			CheckedInCount:     10,
		})
		assert.Equal(t, 60.0, stats.OccupancyRate)
		assert.Equal(t, 33.33, stats.AttendanceRate)
	})
	t.Run("rates round to two decimals", func(t *testing.T) {
		stats := Compute(models.ScreeningCounts{
			Capacity:          3,
			TotalReservations: 1,
			CheckedInCount:    1,
		})
		assert.Equal(t, 33.33, stats.OccupancyRate)
		assert.Equal(t, 100.0, stats.AttendanceRate)
	})
}

type fakeStatsStorage struct {
	counts []models.ScreeningCounts
	calls  int
}

func (s *fakeStatsStorage) CountsForScreening(ctx context.Context, screeningID int64) (*models.ScreeningCounts, error) {
	for _, c := range s.counts {
		if c.ScreeningID == screeningID {
			return &c, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *fakeStatsStorage) ListCounts(ctx context.Context) ([]models.ScreeningCounts, error) {
	s.calls++
	return s.counts, nil
}

type fakeCache struct {
	entries map[string][]byte
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	data, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = data
	return nil
}

func newTestService(storage StatsStorage, cache Cache) *StatsService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, storage, cache)
}

func TestForScreening(t *testing.T) {
	store := &fakeStatsStorage{counts: []models.ScreeningCounts{
		{ScreeningID: 1, Capacity: 50, TotalReservations: 30, ActiveReservations: 28, CheckedInCount: 10},
	}}
	service := newTestService(store, nil)

	t.Run("found", func(t *testing.T) {
		stats, err := service.ForScreening(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, 60.0, stats.OccupancyRate)
		assert.Equal(t, 33.33, stats.AttendanceRate)
	})
	t.Run("unknown screening", func(t *testing.T) {
		_, err := service.ForScreening(context.Background(), 99)
		assert.ErrorIs(t, err, ErrScreeningNotFound)
	})
}

func TestListUsesCache(t *testing.T) {
	store := &fakeStatsStorage{counts: []models.ScreeningCounts{
		{ScreeningID: 1, Capacity: 100, TotalReservations: 40, ActiveReservations: 40, CheckedInCount: 20},
		{ScreeningID: 2, Capacity: 0},
	}}
	cache := &fakeCache{entries: make(map[string][]byte)}
	service := newTestService(store, cache)

	first, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, 40.0, first[0].OccupancyRate)
	assert.Equal(t, float64(0), first[1].OccupancyRate)
	assert.Equal(t, 1, store.calls)

	second, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.calls)
}

func TestListWithoutCache(t *testing.T) {
	store := &fakeStatsStorage{counts: []models.ScreeningCounts{{ScreeningID: 1, Capacity: 10}}}
	service := newTestService(store, nil)
	for i := 0; i < 2; i++ {
		_, err := service.List(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 2, store.calls)
}
