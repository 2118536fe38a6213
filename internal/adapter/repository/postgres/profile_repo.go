package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
)

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Create(ctx context.Context, profile *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, email, password_hash, display_name, avatar_url, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		profile.ID, profile.Email, profile.PasswordHash, profile.DisplayName,
		profile.AvatarURL, profile.Role, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	return nil
}

func (r *ProfileRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	query := `
		SELECT id, email, password_hash, display_name, avatar_url, role, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`
	return r.scanProfile(ctx, query, id)
}

func (r *ProfileRepo) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	query := `
		SELECT id, email, password_hash, display_name, avatar_url, role, created_at, updated_at
		FROM profiles
		WHERE email = $1
	`
	return r.scanProfile(ctx, query, email)
}

func (r *ProfileRepo) scanProfile(ctx context.Context, query string, args ...any) (*entity.Profile, error) {
	var profile entity.Profile
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&profile.ID, &profile.Email, &profile.PasswordHash, &profile.DisplayName,
		&profile.AvatarURL, &profile.Role, &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	return &profile, nil
}

func (r *ProfileRepo) Update(ctx context.Context, profile *entity.Profile) error {
	query := `
		UPDATE profiles
		SET email = $2, password_hash = $3, display_name = $4, avatar_url = $5, role = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := r.pool.Exec(ctx, query,
		profile.ID, profile.Email, profile.PasswordHash, profile.DisplayName,
		profile.AvatarURL, profile.Role, profile.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM profiles WHERE email = $1)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}
	return exists, nil
}
