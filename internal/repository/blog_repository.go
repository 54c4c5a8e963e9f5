package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"inmobiliaria/internal/domain/models"
	"inmobiliaria/internal/storage"
)

var blogColumns = []string{
	"id", "title", "slug", "excerpt", "content", "featured_image",
	"status", "published_at", "created_at", "updated_at", "metadata",
}

type BlogRepo struct {
	db DBTX
	sb sq.StatementBuilderType
}

func NewBlogRepository(db DBTX) *BlogRepo {
	return &BlogRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (b *BlogRepo) SaveBlogPost(ctx context.Context, blogPost models.BlogPost) (uuid.UUID, error) {
	const op = "repository.blog_repository.SaveBlogPost"

	query, args, err := b.sb.Insert("blog_posts").
		Columns(
			"title",
			"slug",
			"excerpt",
			"content",
			"featured_image",
			"status",
			"published_at",
			"metadata",
		).
		Values(
			blogPost.Title,
			blogPost.Slug,
			blogPost.Excerpt,
			blogPost.Content,
			blogPost.FeaturedImage,
			blogPost.Status,
			blogPost.PublishedAt,
			blogPost.Metadata,
		).
		Suffix("ON CONFLICT (slug) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	err = b.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (b *BlogRepo) UpdateBlogPostFields(ctx context.Context, postID uuid.UUID, updates map[string]interface{}) error {
	const op = "repository.blog_repository.UpdateBlogPostFields"

	allowedFields := map[string]bool{
		"title":          true,
		"slug":           true,
		"excerpt":        true,
		"content":        true,
		"featured_image": true,
		"status":         true,
		"published_at":   true,
		"metadata":       true,
	}

	if len(updates) == 0 {
		return fmt.Errorf("%s: no fields to update", op)
	}

	updateBuilder := b.sb.Update("blog_posts").
		Set("updated_at", time.Now())

	for field, value := range updates {
		if !allowedFields[field] {
			return fmt.Errorf("%s: field '%s' is not allowed for update", op, field)
		}

		updateBuilder = updateBuilder.Set(field, value)
	}

	query, args, err := updateBuilder.Where(sq.Eq{"id": postID}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := b.db.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}

	return nil
}

func (b *BlogRepo) DeleteBlogPost(ctx context.Context, postID uuid.UUID) error {
	const op = "repository.blog_repository.DeleteBlogPost"

	query, args, err := b.sb.Delete("blog_posts").
		Where(sq.Eq{"id": postID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := b.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
	}

	return nil
}

func (b *BlogRepo) GetBlogPostByID(ctx context.Context, postID uuid.UUID) (*models.BlogPost, error) {
	const op = "repository.blog_repository.GetBlogPostByID"

	return b.getOne(ctx, op, sq.Eq{"id": postID})
}

// GetVisiblePostBySlug only finds posts that are published and due.
func (b *BlogRepo) GetVisiblePostBySlug(ctx context.Context, slug string, now time.Time) (*models.BlogPost, error) {
	const op = "repository.blog_repository.GetVisiblePostBySlug"

	return b.getOne(ctx, op, sq.And{sq.Eq{"slug": slug}, visiblePredicate(now)})
}

func (b *BlogRepo) getOne(ctx context.Context, op string, where sq.Sqlizer) (*models.BlogPost, error) {
	query, args, err := b.sb.Select(blogColumns...).
		From("blog_posts").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	post, err := scanBlogPost(b.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrPostNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &post, nil
}

func (b *BlogRepo) GetBlogPosts(
	ctx context.Context,
	statusFilter string, // "all", "draft", "scheduled", "published", "archived"
	page int,
	perPage int,
) ([]models.BlogPost, int, error) {
	const op = "repository.blog_repository.GetBlogPosts"

	var where sq.Sqlizer = sq.Expr("TRUE")
	switch statusFilter {
	case "all", "":
	default:
		if !models.PostStatus(statusFilter).Valid() {
			return nil, 0, fmt.Errorf("%s: invalid status filter '%s'", op, statusFilter)
		}
		where = sq.Eq{"status": statusFilter}
	}

	posts, total, err := b.list(ctx, where, []string{"created_at DESC", "id DESC"}, page, perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return posts, total, nil
}

func (b *BlogRepo) GetVisiblePosts(ctx context.Context, now time.Time, page int, perPage int) ([]models.BlogPost, int, error) {
	const op = "repository.blog_repository.GetVisiblePosts"

	posts, total, err := b.list(ctx, visiblePredicate(now), []string{"published_at DESC", "id DESC"}, page, perPage)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return posts, total, nil
}

// PromoteDuePosts publishes every scheduled post whose time has come.
// Running it twice for the same instant changes nothing the second time.
func (b *BlogRepo) PromoteDuePosts(ctx context.Context, now time.Time) (int64, error) {
	const op = "repository.blog_repository.PromoteDuePosts"

	query, args, err := b.sb.Update("blog_posts").
		Set("status", models.PostStatusPublished).
		Set("updated_at", now).
		Where(sq.Eq{"status": models.PostStatusScheduled}).
		Where(sq.LtOrEq{"published_at": now}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	result, err := b.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return result.RowsAffected(), nil
}

func (b *BlogRepo) list(ctx context.Context, where sq.Sqlizer, orderBy []string, page, perPage int) ([]models.BlogPost, int, error) {
	limit, offset := pageOffset(page, perPage)

	totalCount, err := b.getTotalCount(ctx, where)
	if err != nil {
		return nil, 0, err
	}

	query, args, err := b.sb.Select(blogColumns...).
		From("blog_posts").
		Where(where).
		OrderBy(orderBy...).
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := b.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts := make([]models.BlogPost, 0, limit)
	for rows.Next() {
		post, err := scanBlogPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, post)
	}

	return posts, totalCount, rows.Err()
}

func (b *BlogRepo) getTotalCount(ctx context.Context, where sq.Sqlizer) (int, error) {
	query, args, err := b.sb.Select("COUNT(*)").
		From("blog_posts").
		Where(where).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error build query: %w", err)
	}

	var count int
	if err := b.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error execute query: %w (SQL: %s)", err, query)
	}

	return count, nil
}

func visiblePredicate(now time.Time) sq.And {
	return sq.And{
		sq.Eq{"status": models.PostStatusPublished},
		sq.LtOrEq{"published_at": now},
	}
}

func scanBlogPost(row pgx.Row) (models.BlogPost, error) {
	var post models.BlogPost
	err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Slug,
		&post.Excerpt,
		&post.Content,
		&post.FeaturedImage,
		&post.Status,
		&post.PublishedAt,
		&post.CreatedAt,
		&post.UpdatedAt,
		&post.Metadata,
	)
	return post, err
}
