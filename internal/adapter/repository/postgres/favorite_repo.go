package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/photospot-app/photospot-backend/internal/domain/entity"
)

type FavoriteRepo struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepo(pool *pgxpool.Pool) *FavoriteRepo {
	return &FavoriteRepo{pool: pool}
}

// Add is idempotent: favoriting an already-favorited photo is a no-op.
func (r *FavoriteRepo) Add(ctx context.Context, fav *entity.Favorite) error {
	query := `
		INSERT INTO favorites (photo_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (photo_id, user_id) DO NOTHING
	`
	_, err := r.pool.Exec(ctx, query, fav.PhotoID, fav.UserID, fav.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepo) Remove(ctx context.Context, photoID, userID uuid.UUID) error {
	query := `DELETE FROM favorites WHERE photo_id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, photoID, userID)
	if err != nil {
		return fmt.Errorf("deleting favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepo) CountByPhoto(ctx context.Context, photoID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM favorites WHERE photo_id = $1`
	var count int
	if err := r.pool.QueryRow(ctx, query, photoID).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting favorites: %w", err)
	}
	return count, nil
}

func (r *FavoriteRepo) Exists(ctx context.Context, photoID, userID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM favorites WHERE photo_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, photoID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking favorite existence: %w", err)
	}
	return exists, nil
}
