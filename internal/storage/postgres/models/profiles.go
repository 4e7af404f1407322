package models

import (
	"context"
	"errors"

	"cinehall/proj/internal/domain/models"
	"cinehall/proj/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProfileModel struct {
	DB *pgxpool.Pool
}

func (m *ProfileModel) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	rows, err := m.DB.Query(
		ctx,
		"SELECT id, user_id, email, role, created_at FROM profiles WHERE user_id = $1",
		userID,
	)
	if err != nil {
		return nil, err
	}
	profile, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Profile])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}
