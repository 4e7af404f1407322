package attendance

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"cinehall/proj/internal/domain/fields"
	"cinehall/proj/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStorage mimics the transactional check-in: the mutex stands in for the
// row lock, so concurrent scans of the same token serialize exactly like the
// real thing.
type fakeStorage struct {
	mu           sync.Mutex
	reservations map[string]*models.Reservation
	scanned      map[int64]bool
	calls        int
}

func newFakeStorage(reservations ...*models.Reservation) *fakeStorage {
	s := &fakeStorage{
		reservations: make(map[string]*models.Reservation),
		scanned:      make(map[int64]bool),
	}
	for _, r := range reservations {
		s.reservations[r.QRToken] = r
	}
	return s
}

func (s *fakeStorage) CheckInByToken(ctx context.Context, token string, scannedBy *int64) (*models.CheckInOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	reservation, ok := s.reservations[token]
	if !ok {
		return &models.CheckInOutcome{}, nil
	}
	if reservation.Status == fields.StatusCancelled {
		return &models.CheckInOutcome{Reservation: reservation}, nil
	}
	if s.scanned[reservation.ID] {
		return &models.CheckInOutcome{Reservation: reservation, AlreadyScanned: true}, nil
	}
	s.scanned[reservation.ID] = true
	reservation.Status = fields.StatusCheckedIn
	return &models.CheckInOutcome{Reservation: reservation, CheckedIn: true}, nil
}

func (s *fakeStorage) ListForScreening(ctx context.Context, screeningID int64) ([]models.AttendanceLog, error) {
	return nil, nil
}

type fakeAdminChecker struct {
	admins map[int64]bool
}

func (c *fakeAdminChecker) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return c.admins[userID], nil
}

func newTestService(storage *fakeStorage, admins ...int64) *AttendanceService {
	checker := &fakeAdminChecker{admins: make(map[int64]bool)}
	for _, id := range admins {
		checker.admins[id] = true
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(log, storage, checker)
}

func ptr[T any](v T) *T {
	return &v
}

func TestValidateQRAuthorization(t *testing.T) {
	storage := newFakeStorage(&models.Reservation{
		ID: 1, ScreeningID: 10, Status: fields.StatusConfirmed, QRToken: "RSV-abc",
	})
	service := newTestService(storage, 42)

	t.Run("anonymous scanner", func(t *testing.T) {
		result, err := service.ValidateQR(context.Background(), "RSV-abc", nil)
		require.NoError(t, err)
		assert.False(t, result.IsValid)
		assert.Equal(t, MsgUnauthorized, result.Message)
	})
	t.Run("non-admin scanner", func(t *testing.T) {
		result, err := service.ValidateQR(context.Background(), "RSV-abc", ptr(int64(7)))
		require.NoError(t, err)
		assert.False(t, result.IsValid)
		assert.Equal(t, MsgUnauthorized, result.Message)
	})
	t.Run("rejection happens before token lookup", func(t *testing.T) {
		assert.Equal(t, 0, storage.calls)
	})
}

func TestValidateQREmptyToken(t *testing.T) {
	storage := newFakeStorage()
	service := newTestService(storage, 42)
	for _, token := range []string{"", "   ", "\t\n"} {
		result, err := service.ValidateQR(context.Background(), token, ptr(int64(42)))
		require.NoError(t, err)
		assert.False(t, result.IsValid)
		assert.Equal(t, MsgInvalidToken, result.Message)
	}
	assert.Equal(t, 0, storage.calls)
}

func TestValidateQRUnknownToken(t *testing.T) {
	service := newTestService(newFakeStorage(), 42)
	result, err := service.ValidateQR(context.Background(), "RSV-missing", ptr(int64(42)))
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.Equal(t, MsgNotFound, result.Message)
	assert.Nil(t, result.ReservationID)
}

func TestValidateQRCancelledReservation(t *testing.T) {
	reservation := &models.Reservation{
		ID: 3, ScreeningID: 10, Status: fields.StatusCancelled, QRToken: "RSV-cancelled",
	}
	service := newTestService(newFakeStorage(reservation), 42)

	result, err := service.ValidateQR(context.Background(), "RSV-cancelled", ptr(int64(42)))
	require.NoError(t, err)
	assert.False(t, result.IsValid)
	assert.False(t, result.AlreadyScanned)
	assert.Equal(t, MsgCancelled, result.Message)
	// A cancelled reservation never transitions, no matter how often scanned.
	_, err = service.ValidateQR(context.Background(), "RSV-cancelled", ptr(int64(42)))
	require.NoError(t, err)
	assert.Equal(t, fields.StatusCancelled, reservation.Status)
}

func TestValidateQRSuccessThenDuplicate(t *testing.T) {
	reservation := &models.Reservation{
		ID: 5, ScreeningID: 10, Status: fields.StatusConfirmed, QRToken: "RSV-fresh",
	}
	service := newTestService(newFakeStorage(reservation), 42)

	first, err := service.ValidateQR(context.Background(), "RSV-fresh", ptr(int64(42)))
	require.NoError(t, err)
	assert.True(t, first.IsValid)
	assert.False(t, first.AlreadyScanned)
	assert.Equal(t, MsgSuccess, first.Message)
	assert.Equal(t, string(fields.StatusCheckedIn), first.Status)
	require.NotNil(t, first.ReservationID)
	assert.Equal(t, int64(5), *first.ReservationID)
	require.NotNil(t, first.ScreeningID)
	assert.Equal(t, int64(10), *first.ScreeningID)

	second, err := service.ValidateQR(context.Background(), "RSV-fresh", ptr(int64(42)))
	require.NoError(t, err)
	assert.False(t, second.IsValid)
	assert.True(t, second.AlreadyScanned)
	assert.Equal(t, MsgAlreadyScanned, second.Message)
}

func TestValidateQRConcurrentScans(t *testing.T) {
	const scanners = 8
	reservation := &models.Reservation{
		ID: 9, ScreeningID: 10, Status: fields.StatusConfirmed, QRToken: "RSV-race",
	}
	service := newTestService(newFakeStorage(reservation), 42)

	results := make([]*models.ValidationResult, scanners)
	var wg sync.WaitGroup
	for i := 0; i < scanners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := service.ValidateQR(context.Background(), "RSV-race", ptr(int64(42)))
			require.NoError(t, err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	valid, duplicates := 0, 0
	for _, result := range results {
		if result.IsValid {
			valid++
		}
		if result.AlreadyScanned {
			duplicates++
		}
	}
	assert.Equal(t, 1, valid)
	assert.Equal(t, scanners-1, duplicates)
}
