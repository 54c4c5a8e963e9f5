package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"inmobiliaria/internal/domain/models"
	"inmobiliaria/internal/lib/logger/sl"
	"inmobiliaria/internal/storage"
	"inmobiliaria/internal/transport/http/dto"
	"inmobiliaria/internal/transport/http/dto/response"

	blogsvc "inmobiliaria/internal/services/blog_service"
	importsvc "inmobiliaria/internal/services/import_service"
	leadsvc "inmobiliaria/internal/services/lead_service"
	listingsvc "inmobiliaria/internal/services/listing_service"
	taxonomysvc "inmobiliaria/internal/services/taxonomy_service"

	_ "inmobiliaria/docs"
)

type ListingService interface {
	ListProperties(ctx context.Context, filters listingsvc.Filters, sort models.SortOrder, page int) (*models.PropertyPage, error)
	ListFeatured(ctx context.Context, limit int) ([]models.Property, error)
	GetProperty(ctx context.Context, slug string) (*models.Property, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, estado models.Availability) error
	SetFeatured(ctx context.Context, id uuid.UUID, featured bool) error
}

type ImportService interface {
	Import(ctx context.Context, r io.Reader, format importsvc.Format, dryRun bool) (*importsvc.Summary, error)
}

type BlogService interface {
	CreatePost(ctx context.Context, req dto.CreateBlogPostRequest) (*dto.BlogPostResponse, error)
	UpdatePost(ctx context.Context, postID uuid.UUID, req dto.UpdateBlogPostRequest) (*dto.BlogPostResponse, error)
	GetPostByID(ctx context.Context, id uuid.UUID) (*dto.BlogPostResponse, error)
	PublishPost(ctx context.Context, postID uuid.UUID) (*dto.BlogPostResponse, error)
	SchedulePost(ctx context.Context, postID uuid.UUID, at time.Time) (*dto.BlogPostResponse, error)
	ArchivePost(ctx context.Context, postID uuid.UUID) (*dto.BlogPostResponse, error)
	DeletePost(ctx context.Context, postID uuid.UUID) error
	ListPosts(ctx context.Context, statusFilter string, page, perPage int) (*dto.BlogPostListResponse, error)
	PromoteDuePosts(ctx context.Context) (int64, error)
	ListPublishedPosts(ctx context.Context, page, perPage int) (*dto.BlogPostListResponse, error)
	GetPublishedPost(ctx context.Context, slug string) (*dto.BlogPostResponse, error)
}

type LeadService interface {
	CreateLead(ctx context.Context, req dto.CreateLeadRequest) (*dto.LeadResponse, error)
	ListLeads(ctx context.Context, status string, page, perPage int) (*dto.LeadListResponse, error)
	UpdateLeadStatus(ctx context.Context, id uuid.UUID, status string) error
}

type TaxonomyService interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	ListBarrios(ctx context.Context) ([]models.Barrio, error)
	CreateTag(ctx context.Context, req dto.CreateTagRequest) (*models.Tag, error)
	CreateBarrio(ctx context.Context, req dto.CreateBarrioRequest) (*models.Barrio, error)
}

type AuthService interface {
	Login(ctx context.Context, password string) (string, error)
	ValidateToken(token string) error
}

// FileStorage keeps uploaded import files.
type FileStorage interface {
	Save(ctx context.Context, file *multipart.FileHeader, subPath string) (string, int64, error)
	Open(relativePath string) (*os.File, error)
}

type Routers struct {
	log             *slog.Logger
	ListingService  ListingService
	ImportService   ImportService
	BlogService     BlogService
	LeadService     LeadService
	TaxonomyService TaxonomyService
	AuthService     AuthService
	Files           FileStorage
}

func NewRouter(
	log *slog.Logger,
	listingService ListingService,
	importService ImportService,
	blogService BlogService,
	leadService LeadService,
	taxonomyService TaxonomyService,
	authService AuthService,
	files FileStorage,
) *Routers {
	return &Routers{
		log:             log,
		ListingService:  listingService,
		ImportService:   importService,
		BlogService:     blogService,
		LeadService:     leadService,
		TaxonomyService: taxonomyService,
		AuthService:     authService,
		Files:           files,
	}
}

var ErrInvalidUUID = errors.New("not valid UUID")

// fail maps service errors onto HTTP statuses.
func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	switch {
	case errors.Is(err, storage.ErrPropertyNotFound),
		errors.Is(err, storage.ErrPostNotFound),
		errors.Is(err, storage.ErrLeadNotFound),
		errors.Is(err, storage.ErrTagNotFound),
		errors.Is(err, storage.ErrBarrioNotFound):
		return c.JSON(http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, storage.ErrSlugExists):
		return c.JSON(http.StatusConflict, response.ErrSlugTaken)
	case errors.Is(err, blogsvc.ErrEmptyTitle),
		errors.Is(err, blogsvc.ErrPublishNotAhead),
		errors.Is(err, blogsvc.ErrInvalidStatus),
		errors.Is(err, listingsvc.ErrInvalidEstado),
		errors.Is(err, leadsvc.ErrEmptyStatus),
		errors.Is(err, taxonomysvc.ErrEmptyName):
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails("invalid_request", err.Error()))
	}

	log.Error("request failed", sl.Err(err))
	return c.JSON(http.StatusInternalServerError, response.ErrInternal)
}

// bind returns the error body to send when the request is malformed.
func bind(c echo.Context, req interface{}) *response.ErrorResponse {
	if err := c.Bind(req); err != nil {
		resp := response.ErrInvalidRequestFormat
		return &resp
	}

	if err := c.Validate(req); err != nil {
		resp := response.ErrorResponseWithDetails("invalid_request", err.Error())
		return &resp
	}

	return nil
}

func paramUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, ErrInvalidUUID
	}
	return id, nil
}

func queryInt(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return def
	}
	return v
}
