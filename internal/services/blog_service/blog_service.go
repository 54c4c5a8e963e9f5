package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"inmobiliaria/internal/domain/models"
	"inmobiliaria/internal/lib/logger/sl"
	"inmobiliaria/internal/lib/slug"
	"inmobiliaria/internal/metrics"
	"inmobiliaria/internal/repository"
	"inmobiliaria/internal/storage"
	"inmobiliaria/internal/transport/http/dto"
)

const maxSlugAttempts = 5

var (
	ErrEmptyTitle      = errors.New("post title is required")
	ErrPublishNotAhead = errors.New("publish time must be in the future")
	ErrInvalidStatus   = errors.New("invalid post status")
)

type BlogService struct {
	log  *slog.Logger
	repo repository.BlogRepository
	now  func() time.Time
}

func NewBlogService(log *slog.Logger, repo repository.BlogRepository) *BlogService {
	return &BlogService{log: log, repo: repo, now: time.Now}
}

// CreatePost stores a new post. A missing slug is derived from the title and
// a taken one gets a numeric suffix.
func (s *BlogService) CreatePost(ctx context.Context, req dto.CreateBlogPostRequest) (*dto.BlogPostResponse, error) {
	const op = "blog_service.CreatePost"
	log := s.log.With(slog.String("op", op))

	log.Info("creating new blog post", slog.String("title", req.Title))

	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyTitle)
	}

	now := s.now()
	post := models.BlogPost{
		Title:         req.Title,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		FeaturedImage: req.FeaturedImage,
		Status:        models.PostStatus(req.Status),
		PublishedAt:   req.PublishedAt,
		Metadata:      req.Metadata,
	}

	if post.Status == "" {
		post.Status = models.PostStatusDraft
	}
	if !post.Status.Valid() {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrInvalidStatus, post.Status)
	}

	switch post.Status {
	case models.PostStatusScheduled:
		if post.PublishedAt == nil || !post.PublishedAt.After(now) {
			return nil, fmt.Errorf("%s: %w", op, ErrPublishNotAhead)
		}
	case models.PostStatusPublished:
		if post.PublishedAt == nil {
			post.PublishedAt = &now
		}
	}

	base := req.Slug
	if base == "" {
		base = postSlug(req.Title)
		log.Debug("generated slug", slog.String("slug", base))
	}

	var id uuid.UUID
	var err error
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		post.Slug = base
		if attempt > 0 {
			post.Slug = fmt.Sprintf("%s-%d", base, attempt+1)
		}

		id, err = s.repo.SaveBlogPost(ctx, post)
		if !errors.Is(err, storage.ErrSlugExists) {
			break
		}
		log.Warn("slug conflict, retrying", slog.String("slug", post.Slug))
	}
	if err != nil {
		log.Error("failed to create post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post created", slog.String("post_id", id.String()), slog.String("slug", post.Slug))
	return s.toPostResponse(ctx, id)
}

func (s *BlogService) UpdatePost(ctx context.Context, postID uuid.UUID, req dto.UpdateBlogPostRequest) (*dto.BlogPostResponse, error) {
	const op = "blog_service.UpdatePost"
	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", postID.String()),
	)

	existing, err := s.repo.GetBlogPostByID(ctx, postID)
	if err != nil {
		log.Error("failed to get post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%s: %w", op, ErrEmptyTitle)
		}
		updates["title"] = *req.Title
	}
	if req.Slug != nil {
		newSlug := *req.Slug
		if newSlug == "" {
			title := existing.Title
			if req.Title != nil {
				title = *req.Title
			}
			newSlug = postSlug(title)
		}
		if newSlug != existing.Slug {
			updates["slug"] = newSlug
		}
	}
	if req.Excerpt != nil {
		updates["excerpt"] = *req.Excerpt
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.FeaturedImage != nil {
		updates["featured_image"] = *req.FeaturedImage
	}
	if req.Metadata != nil {
		updates["metadata"] = req.Metadata
	}

	if len(updates) == 0 {
		return mapToPostResponse(existing), nil
	}

	if err := s.repo.UpdateBlogPostFields(ctx, postID, updates); err != nil {
		log.Error("failed to update post", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post updated")
	return s.toPostResponse(ctx, postID)
}

func (s *BlogService) PublishPost(ctx context.Context, postID uuid.UUID) (*dto.BlogPostResponse, error) {
	const op = "blog_service.PublishPost"
	now := s.now()
	return s.transition(ctx, op, postID, map[string]interface{}{
		"status":       models.PostStatusPublished,
		"published_at": now,
	})
}

// SchedulePost sets a future publish time; PromoteDuePosts makes it visible.
func (s *BlogService) SchedulePost(ctx context.Context, postID uuid.UUID, at time.Time) (*dto.BlogPostResponse, error) {
	const op = "blog_service.SchedulePost"

	if !at.After(s.now()) {
		return nil, fmt.Errorf("%s: %w", op, ErrPublishNotAhead)
	}

	return s.transition(ctx, op, postID, map[string]interface{}{
		"status":       models.PostStatusScheduled,
		"published_at": at,
	})
}

func (s *BlogService) ArchivePost(ctx context.Context, postID uuid.UUID) (*dto.BlogPostResponse, error) {
	const op = "blog_service.ArchivePost"
	return s.transition(ctx, op, postID, map[string]interface{}{
		"status": models.PostStatusArchived,
	})
}

func (s *BlogService) transition(ctx context.Context, op string, postID uuid.UUID, updates map[string]interface{}) (*dto.BlogPostResponse, error) {
	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", postID.String()),
		slog.Any("status", updates["status"]),
	)

	if err := s.repo.UpdateBlogPostFields(ctx, postID, updates); err != nil {
		if !errors.Is(err, storage.ErrPostNotFound) {
			log.Error("failed to change post status", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post status changed")
	return s.toPostResponse(ctx, postID)
}

func (s *BlogService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	const op = "blog_service.DeletePost"
	log := s.log.With(
		slog.String("op", op),
		slog.String("post_id", postID.String()),
	)

	if err := s.repo.DeleteBlogPost(ctx, postID); err != nil {
		log.Error("failed to delete post", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("post deleted")
	return nil
}

func (s *BlogService) GetPostByID(ctx context.Context, id uuid.UUID) (*dto.BlogPostResponse, error) {
	const op = "blog_service.GetPostByID"

	post, err := s.repo.GetBlogPostByID(ctx, id)
	if err != nil {
		if !errors.Is(err, storage.ErrPostNotFound) {
			s.log.Error("failed to get post", slog.String("op", op), sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return mapToPostResponse(post), nil
}

// ListPosts is the admin listing; statusFilter "" or "all" returns every post.
func (s *BlogService) ListPosts(ctx context.Context, statusFilter string, page, perPage int) (*dto.BlogPostListResponse, error) {
	const op = "blog_service.ListPosts"
	log := s.log.With(
		slog.String("op", op),
		slog.String("status_filter", statusFilter),
	)

	if statusFilter != "" && statusFilter != "all" && !models.PostStatus(statusFilter).Valid() {
		return nil, fmt.Errorf("%s: %w: %q", op, ErrInvalidStatus, statusFilter)
	}

	page, perPage = normalizePaging(page, perPage)

	posts, total, err := s.repo.GetBlogPosts(ctx, statusFilter, page, perPage)
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return mapToListResponse(posts, total, page, perPage), nil
}

// PromoteDuePosts publishes every scheduled post whose time has come.
// Running it twice is harmless.
func (s *BlogService) PromoteDuePosts(ctx context.Context) (int64, error) {
	const op = "blog_service.PromoteDuePosts"
	log := s.log.With(slog.String("op", op))

	n, err := s.repo.PromoteDuePosts(ctx, s.now())
	if err != nil {
		log.Error("failed to promote posts", sl.Err(err))
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if n > 0 {
		metrics.PromotedPosts.Add(float64(n))
		log.Info("scheduled posts published", slog.Int64("count", n))
	}

	return n, nil
}

func (s *BlogService) ListPublishedPosts(ctx context.Context, page, perPage int) (*dto.BlogPostListResponse, error) {
	const op = "blog_service.ListPublishedPosts"

	if _, err := s.PromoteDuePosts(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	page, perPage = normalizePaging(page, perPage)

	posts, total, err := s.repo.GetVisiblePosts(ctx, s.now(), page, perPage)
	if err != nil {
		s.log.Error("failed to list published posts", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return mapToListResponse(posts, total, page, perPage), nil
}

func (s *BlogService) GetPublishedPost(ctx context.Context, postSlug string) (*dto.BlogPostResponse, error) {
	const op = "blog_service.GetPublishedPost"

	if _, err := s.PromoteDuePosts(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	post, err := s.repo.GetVisiblePostBySlug(ctx, postSlug, s.now())
	if err != nil {
		if !errors.Is(err, storage.ErrPostNotFound) {
			s.log.Error("failed to get published post", slog.String("op", op), sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return mapToPostResponse(post), nil
}

func postSlug(title string) string {
	if s := slug.Make(title); s != "" {
		return s
	}
	return "post"
}

func normalizePaging(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return page, perPage
}

func (s *BlogService) toPostResponse(ctx context.Context, postID uuid.UUID) (*dto.BlogPostResponse, error) {
	post, err := s.repo.GetBlogPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return mapToPostResponse(post), nil
}

func mapToListResponse(posts []models.BlogPost, total, page, perPage int) *dto.BlogPostListResponse {
	resp := &dto.BlogPostListResponse{
		Posts:      make([]dto.BlogPostResponse, 0, len(posts)),
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}
	for i := range posts {
		resp.Posts = append(resp.Posts, *mapToPostResponse(&posts[i]))
	}
	return resp
}

func mapToPostResponse(post *models.BlogPost) *dto.BlogPostResponse {
	return &dto.BlogPostResponse{
		ID:            post.ID,
		Title:         post.Title,
		Slug:          post.Slug,
		Excerpt:       post.Excerpt,
		Content:       post.Content,
		FeaturedImage: post.FeaturedImage,
		Status:        string(post.Status),
		PublishedAt:   post.PublishedAt,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
		Metadata:      post.Metadata,
	}
}
