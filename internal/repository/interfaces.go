package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"inmobiliaria/internal/domain/models"
)

type PropertyRepository interface {
	ListProperties(ctx context.Context, q models.PropertyQuery) ([]models.Property, error)
	CountProperties(ctx context.Context, f models.PropertyFilter) (int, error)
	GetPropertyBySlug(ctx context.Context, slug string) (*models.Property, error)
	// InsertProperty reports false when the slug already exists.
	InsertProperty(ctx context.Context, p models.Property) (uuid.UUID, bool, error)
	UpdatePropertyStatus(ctx context.Context, id uuid.UUID, estado models.Availability) error
	SetPropertyFeatured(ctx context.Context, id uuid.UUID, featured bool) error
}

type ImageRepository interface {
	ImagesForProperties(ctx context.Context, propertyIDs []uuid.UUID) ([]models.PropertyImage, error)
	AddImages(ctx context.Context, propertyID uuid.UUID, urls []string) error
}

type TaxonomyRepository interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error)
	SaveTag(ctx context.Context, tag models.Tag) (uuid.UUID, error)
	EnsureTags(ctx context.Context, names []string) ([]uuid.UUID, error)
	AttachTags(ctx context.Context, propertyID uuid.UUID, tagIDs []uuid.UUID) error
	TagsForProperty(ctx context.Context, propertyID uuid.UUID) ([]string, error)

	ListBarrios(ctx context.Context) ([]models.Barrio, error)
	GetBarrioBySlug(ctx context.Context, slug string) (*models.Barrio, error)
	SaveBarrio(ctx context.Context, barrio models.Barrio) (uuid.UUID, error)
	EnsureBarrio(ctx context.Context, name, city string) error
}

type BlogRepository interface {
	SaveBlogPost(ctx context.Context, blogPost models.BlogPost) (uuid.UUID, error)
	UpdateBlogPostFields(ctx context.Context, postID uuid.UUID, updates map[string]interface{}) error
	DeleteBlogPost(ctx context.Context, postID uuid.UUID) error
	GetBlogPostByID(ctx context.Context, postID uuid.UUID) (*models.BlogPost, error)
	GetBlogPosts(ctx context.Context, statusFilter string, page int, perPage int) ([]models.BlogPost, int, error)
	GetVisiblePosts(ctx context.Context, now time.Time, page int, perPage int) ([]models.BlogPost, int, error)
	GetVisiblePostBySlug(ctx context.Context, slug string, now time.Time) (*models.BlogPost, error)
	PromoteDuePosts(ctx context.Context, now time.Time) (int64, error)
}

type LeadRepository interface {
	SaveLead(ctx context.Context, lead models.Lead) (uuid.UUID, error)
	GetLeads(ctx context.Context, status string, page int, perPage int) ([]models.Lead, int, error)
	UpdateLeadStatus(ctx context.Context, leadID uuid.UUID, status string) error
}

// ListingCache stores JSON-encoded listing pages for a short window.
type ListingCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	InvalidatePrefix(ctx context.Context, prefix string) error
}
