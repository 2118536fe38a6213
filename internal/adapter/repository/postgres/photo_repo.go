package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/photospot-app/photospot-backend/internal/adapter/repository"
	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/domain/valueobject"
	"github.com/photospot-app/photospot-backend/internal/pkg/pagination"
)

type PhotoRepo struct {
	pool *pgxpool.Pool
}

func NewPhotoRepo(pool *pgxpool.Pool) *PhotoRepo {
	return &PhotoRepo{pool: pool}
}

func (r *PhotoRepo) Create(ctx context.Context, photo *entity.Photo) error {
	gearJSON, err := marshalNullable(photo.Gear)
	if err != nil {
		return fmt.Errorf("encoding gear: %w", err)
	}
	exifJSON, err := marshalNullable(photo.EXIF)
	if err != nil {
		return fmt.Errorf("encoding exif: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO photos (
			id, owner_id, status, title, description,
			public_location, exact_location,
			category, season, time_of_day, gear, exif,
			url, thumbnail_url, storage_key, created_at, updated_at
		)
		VALUES (
			$1, $2, $3, $4, $5,
			ST_SetSRID(ST_MakePoint($6, $7), 4326)::geography,
			CASE WHEN $8::float8 IS NULL THEN NULL
			     ELSE ST_SetSRID(ST_MakePoint($8, $9), 4326)::geography END,
			$10, $11, $12, $13, $14,
			$15, $16, $17, $18, $19
		)
	`
	var exactLng, exactLat *float64
	if photo.ExactLocation != nil {
		exactLng = &photo.ExactLocation.Longitude
		exactLat = &photo.ExactLocation.Latitude
	}

	_, err = tx.Exec(ctx, query,
		photo.ID, photo.OwnerID, photo.Status, photo.Title, photo.Description,
		photo.PublicLocation.Longitude, photo.PublicLocation.Latitude,
		exactLng, exactLat,
		photo.Category, photo.Season, photo.TimeOfDay, gearJSON, exifJSON,
		photo.URL, photo.ThumbnailURL, photo.StorageKey, photo.CreatedAt, photo.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting photo: %w", err)
	}

	for _, tag := range photo.Tags {
		if _, err := tx.Exec(ctx,
			`INSERT INTO photo_tags (photo_id, tag) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			photo.ID, tag,
		); err != nil {
			return fmt.Errorf("inserting tag: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetByID loads the full record including owner-only fields. Soft-deleted
// rows are treated as missing so deletion state never leaks.
func (r *PhotoRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Photo, error) {
	query := `
		SELECT p.id, p.owner_id, p.status, p.title, p.description,
			   ST_Y(p.public_location::geometry), ST_X(p.public_location::geometry),
			   ST_Y(p.exact_location::geometry), ST_X(p.exact_location::geometry),
			   p.category, p.season, p.time_of_day, p.gear, p.exif,
			   p.url, p.thumbnail_url, p.storage_key,
			   p.created_at, p.updated_at,
			   COALESCE(array_agg(t.tag) FILTER (WHERE t.tag IS NOT NULL), '{}')
		FROM photos p
		LEFT JOIN photo_tags t ON t.photo_id = p.id
		WHERE p.id = $1 AND p.deleted_at IS NULL
		GROUP BY p.id
	`
	var (
		photo              entity.Photo
		pubLat, pubLng     float64
		exactLat, exactLng *float64
		season, timeOfDay  *string
		gearJSON, exifJSON []byte
	)

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&photo.ID, &photo.OwnerID, &photo.Status, &photo.Title, &photo.Description,
		&pubLat, &pubLng,
		&exactLat, &exactLng,
		&photo.Category, &season, &timeOfDay, &gearJSON, &exifJSON,
		&photo.URL, &photo.ThumbnailURL, &photo.StorageKey,
		&photo.CreatedAt, &photo.UpdatedAt,
		&photo.Tags,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPhotoNotFound
		}
		return nil, fmt.Errorf("querying photo: %w", err)
	}

	photo.PublicLocation = valueobject.NewLocation(pubLat, pubLng)
	if exactLat != nil && exactLng != nil {
		loc := valueobject.NewLocation(*exactLat, *exactLng)
		photo.ExactLocation = &loc
	}
	if season != nil {
		s := entity.Season(*season)
		photo.Season = &s
	}
	if timeOfDay != nil {
		t := entity.TimeOfDay(*timeOfDay)
		photo.TimeOfDay = &t
	}
	if err := unmarshalNullable(gearJSON, &photo.Gear); err != nil {
		return nil, fmt.Errorf("decoding gear: %w", err)
	}
	if err := unmarshalNullable(exifJSON, &photo.EXIF); err != nil {
		return nil, fmt.Errorf("decoding exif: %w", err)
	}

	return &photo, nil
}

// publicConditions assembles the WHERE clause for the public listing. The
// approved/not-deleted predicate always comes first and cannot be disabled
// by any filter combination.
func publicConditions(filter repository.ListFilter) ([]string, []any) {
	conditions := []string{
		"p.status = 'approved'",
		"p.deleted_at IS NULL",
	}
	var args []any
	argNum := 1

	if filter.BoundingBox != nil {
		bb := filter.BoundingBox
		conditions = append(conditions, fmt.Sprintf(
			"ST_Intersects(p.public_location, ST_MakeEnvelope($%d, $%d, $%d, $%d, 4326)::geography)",
			argNum, argNum+1, argNum+2, argNum+3,
		))
		args = append(args, bb.MinLng, bb.MinLat, bb.MaxLng, bb.MaxLat)
		argNum += 4
	}

	if filter.Category != nil {
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", argNum))
		args = append(args, *filter.Category)
		argNum++
	}
	if filter.Season != nil {
		conditions = append(conditions, fmt.Sprintf("p.season = $%d", argNum))
		args = append(args, *filter.Season)
		argNum++
	}
	if filter.TimeOfDay != nil {
		conditions = append(conditions, fmt.Sprintf("p.time_of_day = $%d", argNum))
		args = append(args, *filter.TimeOfDay)
		argNum++
	}

	if filter.PhotographerOnly {
		// Role comes from profile data, never from request input.
		conditions = append(conditions,
			"EXISTS (SELECT 1 FROM profiles pr2 WHERE pr2.id = p.owner_id AND pr2.role = 'photographer')")
	}

	return conditions, args
}

func (r *PhotoRepo) ListPublic(ctx context.Context, filter repository.ListFilter, page pagination.Params) ([]repository.PhotoListRow, error) {
	conditions, args := publicConditions(filter)
	whereClause := strings.Join(conditions, " AND ")
	argNum := len(args) + 1

	query := fmt.Sprintf(`
		SELECT p.id, p.title,
			   ST_Y(p.public_location::geometry), ST_X(p.public_location::geometry),
			   p.category, p.season, p.time_of_day,
			   p.url, p.thumbnail_url, p.created_at,
			   COALESCE(pr.display_name, ''), pr.avatar_url,
			   COALESCE(array_agg(t.tag) FILTER (WHERE t.tag IS NOT NULL), '{}')
		FROM photos p
		LEFT JOIN profiles pr ON pr.id = p.owner_id
		LEFT JOIN photo_tags t ON t.photo_id = p.id
		WHERE %s
		GROUP BY p.id, pr.display_name, pr.avatar_url
		ORDER BY p.created_at DESC, p.id ASC
		LIMIT $%d OFFSET $%d
	`, whereClause, argNum, argNum+1)
	args = append(args, page.Limit, page.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying photos: %w", err)
	}
	defer rows.Close()

	var result []repository.PhotoListRow
	for rows.Next() {
		var (
			row               repository.PhotoListRow
			lat, lng          float64
			season, timeOfDay *string
		)
		if err := rows.Scan(
			&row.Photo.ID, &row.Photo.Title,
			&lat, &lng,
			&row.Photo.Category, &season, &timeOfDay,
			&row.Photo.URL, &row.Photo.ThumbnailURL, &row.Photo.CreatedAt,
			&row.AuthorName, &row.AuthorAvatar,
			&row.Photo.Tags,
		); err != nil {
			return nil, fmt.Errorf("scanning photo row: %w", err)
		}

		row.Photo.Status = entity.StatusApproved
		row.Photo.PublicLocation = valueobject.NewLocation(lat, lng)
		if season != nil {
			s := entity.Season(*season)
			row.Photo.Season = &s
		}
		if timeOfDay != nil {
			t := entity.TimeOfDay(*timeOfDay)
			row.Photo.TimeOfDay = &t
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating photos: %w", err)
	}
	return result, nil
}

func (r *PhotoRepo) CountPublic(ctx context.Context, filter repository.ListFilter) (int, error) {
	conditions, args := publicConditions(filter)
	query := fmt.Sprintf("SELECT COUNT(*) FROM photos p WHERE %s", strings.Join(conditions, " AND "))

	var total int
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("counting photos: %w", err)
	}
	return total, nil
}

func (r *PhotoRepo) ListByStatus(ctx context.Context, status entity.PhotoStatus, page pagination.Params) ([]entity.Photo, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM photos WHERE status = $1 AND deleted_at IS NULL`
	if err := r.pool.QueryRow(ctx, countQuery, status).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting photos by status: %w", err)
	}

	query := `
		SELECT id, owner_id, status, title, description,
			   ST_Y(public_location::geometry), ST_X(public_location::geometry),
			   category, url, thumbnail_url, created_at, updated_at
		FROM photos
		WHERE status = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC, id ASC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, status, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("querying photos by status: %w", err)
	}
	defer rows.Close()

	var photos []entity.Photo
	for rows.Next() {
		var photo entity.Photo
		var lat, lng float64
		if err := rows.Scan(
			&photo.ID, &photo.OwnerID, &photo.Status, &photo.Title, &photo.Description,
			&lat, &lng,
			&photo.Category, &photo.URL, &photo.ThumbnailURL, &photo.CreatedAt, &photo.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scanning photo: %w", err)
		}
		photo.PublicLocation = valueobject.NewLocation(lat, lng)
		photos = append(photos, photo)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating photos: %w", err)
	}
	return photos, total, nil
}

func (r *PhotoRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.PhotoStatus) error {
	query := `
		UPDATE photos
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.pool.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("updating photo status: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

func (r *PhotoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE photos
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
	`
	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft deleting photo: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrPhotoNotFound
	}
	return nil
}

// ClusterHints buckets approved photos in the box onto a 32x32 grid and
// numbers the occupied cells. The grid is viewport-relative, so hints are
// only meaningful for the bbox they were computed against.
func (r *PhotoRepo) ClusterHints(ctx context.Context, bbox *valueobject.BoundingBox) (map[uuid.UUID]int, error) {
	query := `
		WITH cells AS (
			SELECT p.id,
				   ST_SnapToGrid(p.public_location::geometry, $1, $2) AS cell
			FROM photos p
			WHERE p.status = 'approved' AND p.deleted_at IS NULL
			  AND ST_Intersects(p.public_location, ST_MakeEnvelope($3, $4, $5, $6, 4326)::geography)
		)
		SELECT id, DENSE_RANK() OVER (ORDER BY ST_AsBinary(cell)) AS cluster_id
		FROM cells
	`
	cellW := (bbox.MaxLng - bbox.MinLng) / 32
	cellH := (bbox.MaxLat - bbox.MinLat) / 32

	rows, err := r.pool.Query(ctx, query, cellW, cellH, bbox.MinLng, bbox.MinLat, bbox.MaxLng, bbox.MaxLat)
	if err != nil {
		return nil, fmt.Errorf("querying cluster hints: %w", err)
	}
	defer rows.Close()

	hints := make(map[uuid.UUID]int)
	for rows.Next() {
		var id uuid.UUID
		var cluster int
		if err := rows.Scan(&id, &cluster); err != nil {
			return nil, fmt.Errorf("scanning cluster hint: %w", err)
		}
		hints[id] = cluster
	}
	return hints, rows.Err()
}

func marshalNullable[T any](v *T) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func unmarshalNullable[T any](data []byte, dst **T) error {
	if len(data) == 0 {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*dst = &v
	return nil
}
