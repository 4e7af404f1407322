package auth

import (
	"context"
	"errors"
	"log/slog"

	"cinehall/proj/internal/domain/models"
	"cinehall/proj/internal/storage"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileStorage interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
}

type AuthService struct {
	log     *slog.Logger
	storage ProfileStorage
}

func New(log *slog.Logger, storage ProfileStorage) *AuthService {
	return &AuthService{
		log:     log,
		storage: storage,
	}
}

// IsAdmin reports whether a profile exists for userID with the admin role.
// A missing profile is not an error, just a negative answer. Every
// access-control decision in the API goes through this predicate.
func (s *AuthService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	const op = "auth.AuthService.IsAdmin"
	profile, err := s.storage.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		s.log.With("op", op, "user_id", userID).Error(err.Error())
		return false, err
	}
	return profile.IsAdmin(), nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID int64) (*models.Profile, error) {
	const op = "auth.AuthService.GetProfile"
	profile, err := s.storage.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		s.log.With("op", op, "user_id", userID).Error(err.Error())
		return nil, err
	}
	return profile, nil
}
