package photo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/photospot-app/photospot-backend/internal/adapter/repository"
	"github.com/photospot-app/photospot-backend/internal/domain"
	"github.com/photospot-app/photospot-backend/internal/domain/entity"
	"github.com/photospot-app/photospot-backend/internal/pkg/apperror"
	"github.com/photospot-app/photospot-backend/internal/pkg/pagination"
)

// CountStrategy makes the total-count tradeoff explicit: the first page pays
// for an exact count, later pages may serve a cached one. has_more inherits
// whatever staleness the serving total has.
type CountStrategy int

const (
	CountExact CountStrategy = iota
	CountCached
)

// TotalCache stores listing totals keyed by filter fingerprint. A cache
// failure is indistinguishable from a miss; callers fall back to an exact
// count.
type TotalCache interface {
	GetTotal(ctx context.Context, key string) (int, bool)
	SetTotal(ctx context.Context, key string, total int)
}

type Service struct {
	photoRepo    repository.PhotoRepository
	profileRepo  repository.ProfileRepository
	favoriteRepo repository.FavoriteRepository
	totals       TotalCache
}

func NewService(
	photoRepo repository.PhotoRepository,
	profileRepo repository.ProfileRepository,
	favoriteRepo repository.FavoriteRepository,
	totals TotalCache,
) *Service {
	return &Service{
		photoRepo:    photoRepo,
		profileRepo:  profileRepo,
		favoriteRepo: favoriteRepo,
		totals:       totals,
	}
}

type ListInput struct {
	Filter           repository.ListFilter
	Page             pagination.Params
	WithClusterHints bool
}

type ListItem struct {
	Row       repository.PhotoListRow
	ClusterID *int
}

type ListResult struct {
	Items []ListItem
	Meta  pagination.Meta
}

// ListPublic runs the public listing. The repository enforces the
// approved/not-deleted boundary; this layer decides the count strategy,
// attaches optional cluster hints and shapes pagination metadata.
func (s *Service) ListPublic(ctx context.Context, input ListInput) (*ListResult, error) {
	strategy := CountExact
	if input.Page.Offset > 0 {
		strategy = CountCached
	}

	total, err := s.resolveTotal(ctx, input.Filter, strategy)
	if err != nil {
		return nil, apperror.Infrastructure(fmt.Errorf("counting photos: %w", err))
	}

	rows, err := s.photoRepo.ListPublic(ctx, input.Filter, input.Page)
	if err != nil {
		return nil, apperror.Infrastructure(fmt.Errorf("listing photos: %w", err))
	}

	items := make([]ListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, ListItem{Row: row})
	}

	if input.WithClusterHints && input.Filter.BoundingBox != nil {
		// Hints are an annotation; if the hint query fails the listing is
		// still correct, just unclustered.
		if hints, err := s.photoRepo.ClusterHints(ctx, input.Filter.BoundingBox); err == nil {
			for i := range items {
				if cluster, ok := hints[items[i].Row.Photo.ID]; ok {
					c := cluster
					items[i].ClusterID = &c
				}
			}
		}
	}

	return &ListResult{
		Items: items,
		Meta:  pagination.NewMeta(input.Page, total),
	}, nil
}

func (s *Service) resolveTotal(ctx context.Context, filter repository.ListFilter, strategy CountStrategy) (int, error) {
	key := totalKey(filter)

	if strategy == CountCached {
		if total, ok := s.totals.GetTotal(ctx, key); ok {
			return total, nil
		}
	}

	total, err := s.photoRepo.CountPublic(ctx, filter)
	if err != nil {
		return 0, err
	}
	s.totals.SetTotal(ctx, key, total)
	return total, nil
}

// totalKey is a stable fingerprint of every field that affects the count.
func totalKey(f repository.ListFilter) string {
	bbox := ""
	if f.BoundingBox != nil {
		bbox = fmt.Sprintf("%.6f,%.6f,%.6f,%.6f",
			f.BoundingBox.MinLng, f.BoundingBox.MinLat, f.BoundingBox.MaxLng, f.BoundingBox.MaxLat)
	}
	return fmt.Sprintf("photos:total:%s|%s|%s|%s|%t",
		bbox, deref(f.Category), deref(f.Season), deref(f.TimeOfDay), f.PhotographerOnly)
}

func deref[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return string(*v)
}

// Detail is the resolved single-photo view: the record, the projection the
// viewer is entitled to, and the derived flags that are computed for every
// viewer.
type Detail struct {
	Photo      *entity.Photo
	Visibility Visibility

	AuthorName   string
	AuthorAvatar *string

	IsLocationBlurred bool
	FavoriteCount     int
	IsFavorited       bool
}

// GetDetail fetches one photo and projects it for the viewer. Missing and
// soft-deleted records both surface as ErrPhotoNotFound; a non-owner asking
// for an unapproved photo gets ErrForbidden no matter how they are
// authenticated.
func (s *Service) GetDetail(ctx context.Context, photoID uuid.UUID, viewer domain.Viewer) (*Detail, error) {
	p, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, domain.ErrPhotoNotFound) {
			return nil, err
		}
		return nil, apperror.Infrastructure(fmt.Errorf("loading photo: %w", err))
	}

	var visibility Visibility
	switch {
	case viewer.IsOwnerOf(p):
		visibility = VisibilityOwner
	case p.Status == entity.StatusApproved:
		visibility = VisibilityPublic
	default:
		return nil, domain.ErrForbidden
	}

	detail := &Detail{
		Photo:             p,
		Visibility:        visibility,
		IsLocationBlurred: p.IsLocationBlurred(),
	}

	// The favorite lookups and the author fetch are independent reads;
	// issue them together and assemble once all complete.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.favoriteRepo.CountByPhoto(gctx, p.ID)
		if err != nil {
			return fmt.Errorf("counting favorites: %w", err)
		}
		detail.FavoriteCount = count
		return nil
	})

	if viewerID, ok := viewer.UserID(); ok {
		g.Go(func() error {
			favorited, err := s.favoriteRepo.Exists(gctx, p.ID, viewerID)
			if err != nil {
				return fmt.Errorf("checking favorite: %w", err)
			}
			detail.IsFavorited = favorited
			return nil
		})
	}

	g.Go(func() error {
		author, err := s.profileRepo.GetByID(gctx, p.OwnerID)
		if err != nil {
			if errors.Is(err, domain.ErrProfileNotFound) {
				return nil
			}
			return fmt.Errorf("loading author: %w", err)
		}
		detail.AuthorName = author.DisplayName
		detail.AuthorAvatar = author.AvatarURL
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, apperror.Infrastructure(err)
	}

	return detail, nil
}
