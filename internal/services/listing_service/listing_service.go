package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"inmobiliaria/internal/domain/models"
	"inmobiliaria/internal/lib/logger/sl"
	"inmobiliaria/internal/lib/slug"
	"inmobiliaria/internal/metrics"
	"inmobiliaria/internal/repository"
	"inmobiliaria/internal/storage"
)

const DefaultPageSize = 12

var ErrInvalidEstado = errors.New("invalid estado")

// Filters are the raw listing filters as they arrive from a route. Slugs
// are resolved to stored names before querying.
type Filters struct {
	Operation   string
	MinBedrooms int
	TagSlug     string
	BarrioSlug  string
	CitySlug    string
	Featured    bool
	Admin       bool
}

type Options struct {
	PageSize    int
	CacheTTL    time.Duration
	KnownCities []string
}

type ListingService struct {
	log      *slog.Logger
	props    repository.PropertyRepository
	images   repository.ImageRepository
	taxonomy repository.TaxonomyRepository
	cache    repository.ListingCache
	opts     Options
}

// NewListingService accepts a nil cache.
func NewListingService(
	log *slog.Logger,
	props repository.PropertyRepository,
	images repository.ImageRepository,
	taxonomy repository.TaxonomyRepository,
	cache repository.ListingCache,
	opts Options,
) *ListingService {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}

	return &ListingService{
		log:      log,
		props:    props,
		images:   images,
		taxonomy: taxonomy,
		cache:    cache,
		opts:     opts,
	}
}

// ListProperties returns one page of available properties with their
// galleries. A page past the end is empty but keeps the total count.
func (s *ListingService) ListProperties(ctx context.Context, filters Filters, sort models.SortOrder, page int) (*models.PropertyPage, error) {
	const op = "listing_service.ListProperties"
	log := s.log.With(
		slog.String("op", op),
		slog.String("sort", string(sort)),
		slog.Int("page", page),
	)

	if page < 1 {
		page = 1
	}

	cacheKey := ""
	if s.cache != nil && !filters.Admin {
		cacheKey = listingCacheKey(filters, sort, page)

		var cached models.PropertyPage
		hit, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			log.Warn("listing cache read failed", sl.Err(err))
		}
		if hit {
			metrics.ListingCache.WithLabelValues("hit").Inc()
			return &cached, nil
		}
		metrics.ListingCache.WithLabelValues("miss").Inc()
	}

	result := &models.PropertyPage{
		Items:    []models.Property{},
		Page:     page,
		PageSize: s.opts.PageSize,
	}

	filter, ok, err := s.resolveFilter(ctx, filters)
	if err != nil {
		log.Error("failed to resolve filters", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrFetchProperties, err)
	}
	if !ok {
		log.Debug("unknown barrio, empty result", slog.String("barrio", filters.BarrioSlug))
		return result, nil
	}

	total, err := s.props.CountProperties(ctx, filter)
	if err != nil {
		log.Error("failed to count properties", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrFetchProperties, err)
	}
	result.TotalCount = total

	items, err := s.props.ListProperties(ctx, models.PropertyQuery{
		Filter: filter,
		Sort:   sort,
		Limit:  s.opts.PageSize,
		Offset: (page - 1) * s.opts.PageSize,
	})
	if err != nil {
		log.Error("failed to list properties", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrFetchProperties, err)
	}

	if err := s.hydrateGalleries(ctx, items); err != nil {
		log.Error("failed to load galleries", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrFetchProperties, err)
	}
	result.Items = items

	if cacheKey != "" {
		if err := s.cache.Set(ctx, cacheKey, result, s.opts.CacheTTL); err != nil {
			log.Warn("listing cache write failed", sl.Err(err))
		}
	}

	log.Debug("properties listed", slog.Int("count", len(items)), slog.Int("total", total))
	return result, nil
}

func (s *ListingService) ListFeatured(ctx context.Context, limit int) ([]models.Property, error) {
	const op = "listing_service.ListFeatured"
	log := s.log.With(slog.String("op", op))

	if limit < 1 || limit > s.opts.PageSize {
		limit = s.opts.PageSize
	}

	items, err := s.props.ListProperties(ctx, models.PropertyQuery{
		Filter: models.PropertyFilter{Featured: true},
		Sort:   models.SortNewest,
		Limit:  limit,
	})
	if err != nil {
		log.Error("failed to list featured properties", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrFetchProperties, err)
	}

	if err := s.hydrateGalleries(ctx, items); err != nil {
		log.Error("failed to load galleries", sl.Err(err))
		return nil, fmt.Errorf("%s: %w: %w", op, storage.ErrFetchProperties, err)
	}

	return items, nil
}

func (s *ListingService) GetProperty(ctx context.Context, propertySlug string) (*models.Property, error) {
	const op = "listing_service.GetProperty"
	log := s.log.With(
		slog.String("op", op),
		slog.String("slug", propertySlug),
	)

	p, err := s.props.GetPropertyBySlug(ctx, propertySlug)
	if err != nil {
		if !errors.Is(err, storage.ErrPropertyNotFound) {
			log.Error("failed to get property", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := []models.Property{*p}
	if err := s.hydrateGalleries(ctx, items); err != nil {
		log.Error("failed to load gallery", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	tags, err := s.taxonomy.TagsForProperty(ctx, p.ID)
	if err != nil {
		log.Error("failed to load tags", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	items[0].Tags = tags

	return &items[0], nil
}

func (s *ListingService) UpdateStatus(ctx context.Context, id uuid.UUID, estado models.Availability) error {
	const op = "listing_service.UpdateStatus"
	log := s.log.With(
		slog.String("op", op),
		slog.String("property_id", id.String()),
		slog.String("estado", string(estado)),
	)

	if !estado.Valid() {
		return fmt.Errorf("%s: %w: %q", op, ErrInvalidEstado, estado)
	}

	if err := s.props.UpdatePropertyStatus(ctx, id, estado); err != nil {
		log.Error("failed to update status", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("property status updated")
	s.InvalidateCache(ctx)
	return nil
}

func (s *ListingService) SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	const op = "listing_service.SetFeatured"
	log := s.log.With(
		slog.String("op", op),
		slog.String("property_id", id.String()),
		slog.Bool("featured", featured),
	)

	if err := s.props.SetPropertyFeatured(ctx, id, featured); err != nil {
		log.Error("failed to set featured flag", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("property featured flag updated")
	s.InvalidateCache(ctx)
	return nil
}

// InvalidateCache drops every cached listing page. Failures only log.
func (s *ListingService) InvalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePrefix(ctx, repository.ListingCachePrefix); err != nil {
		s.log.Warn("listing cache invalidation failed", slog.String("op", "listing_service.InvalidateCache"), sl.Err(err))
	}
}

// resolveFilter reports false when a barrio slug matches nothing.
func (s *ListingService) resolveFilter(ctx context.Context, f Filters) (models.PropertyFilter, bool, error) {
	filter := models.PropertyFilter{
		MinBedrooms: f.MinBedrooms,
		TagSlug:     f.TagSlug,
		Featured:    f.Featured,
		Admin:       f.Admin,
	}

	if operation := models.Operation(f.Operation); operation.Valid() {
		filter.Operation = operation
	}
	if filter.MinBedrooms < 0 {
		filter.MinBedrooms = 0
	}

	if f.BarrioSlug != "" {
		barrio, err := s.taxonomy.GetBarrioBySlug(ctx, f.BarrioSlug)
		if err != nil {
			if errors.Is(err, storage.ErrBarrioNotFound) {
				return filter, false, nil
			}
			return filter, false, err
		}
		filter.BarrioSlug = barrio.Slug
	}

	if f.CitySlug != "" {
		filter.City = s.cityName(f.CitySlug)
	}

	return filter, true, nil
}

// cityName maps a city slug back to its configured spelling. Unknown slugs
// are turned back into words so accent-free names still match.
func (s *ListingService) cityName(citySlug string) string {
	for _, city := range s.opts.KnownCities {
		if slug.Make(city) == citySlug {
			return city
		}
	}
	return strings.ReplaceAll(citySlug, "-", " ")
}

func (s *ListingService) hydrateGalleries(ctx context.Context, items []models.Property) error {
	if len(items) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(items))
	for i, p := range items {
		ids[i] = p.ID
	}

	images, err := s.images.ImagesForProperties(ctx, ids)
	if err != nil {
		return err
	}

	attachGallery(items, images)
	return nil
}

// attachGallery groups images by property keeping their query order.
func attachGallery(items []models.Property, images []models.PropertyImage) {
	byProperty := make(map[uuid.UUID][]string, len(items))
	for _, img := range images {
		byProperty[img.PropertyID] = append(byProperty[img.PropertyID], img.URL)
	}

	for i := range items {
		gallery := byProperty[items[i].ID]
		if gallery == nil {
			gallery = []string{}
		}
		items[i].Gallery = gallery
		if items[i].MainImage == "" && len(gallery) > 0 {
			items[i].MainImage = gallery[0]
		}
	}
}

func listingCacheKey(f Filters, sort models.SortOrder, page int) string {
	return repository.QueryCacheKey(repository.ListingCachePrefix, map[string]string{
		"operacion":    f.Operation,
		"habitaciones": strconv.Itoa(f.MinBedrooms),
		"tag":          f.TagSlug,
		"barrio":       f.BarrioSlug,
		"ciudad":       f.CitySlug,
		"destacado":    strconv.FormatBool(f.Featured),
		"orden":        string(sort),
		"page":         strconv.Itoa(page),
	})
}
