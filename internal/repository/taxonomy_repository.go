package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"inmobiliaria/internal/domain/models"
	"inmobiliaria/internal/lib/slug"
	"inmobiliaria/internal/storage"
)

type TaxonomyRepo struct {
	db DBTX
	sb sq.StatementBuilderType
}

func NewTaxonomyRepository(db DBTX) *TaxonomyRepo {
	return &TaxonomyRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *TaxonomyRepo) ListTags(ctx context.Context) ([]models.Tag, error) {
	const op = "repository.TaxonomyRepo.ListTags"

	query, args, err := r.sb.Select("id", "name", "slug", "seo_title", "seo_description").
		From("tags").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.SEOTitle, &t.SEODescription); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}

func (r *TaxonomyRepo) GetTagBySlug(ctx context.Context, tagSlug string) (*models.Tag, error) {
	const op = "repository.TaxonomyRepo.GetTagBySlug"

	query, args, err := r.sb.Select("id", "name", "slug", "seo_title", "seo_description").
		From("tags").
		Where(sq.Eq{"slug": tagSlug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var t models.Tag
	err = r.db.QueryRow(ctx, query, args...).Scan(&t.ID, &t.Name, &t.Slug, &t.SEOTitle, &t.SEODescription)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrTagNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &t, nil
}

func (r *TaxonomyRepo) SaveTag(ctx context.Context, tag models.Tag) (uuid.UUID, error) {
	const op = "repository.TaxonomyRepo.SaveTag"

	query, args, err := r.sb.Insert("tags").
		Columns("name", "slug", "seo_title", "seo_description").
		Values(tag.Name, tag.Slug, tag.SEOTitle, tag.SEODescription).
		Suffix("ON CONFLICT (slug) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return r.insertReturningID(ctx, op, query, args)
}

// EnsureTags creates missing tags and returns the ids of all of them.
// Names that slug to the same value share one tag.
func (r *TaxonomyRepo) EnsureTags(ctx context.Context, names []string) ([]uuid.UUID, error) {
	const op = "repository.TaxonomyRepo.EnsureTags"

	ids := make([]uuid.UUID, 0, len(names))
	seen := make(map[string]bool, len(names))

	for _, name := range names {
		s := slug.Make(name)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true

		query, args, err := r.sb.Insert("tags").
			Columns("name", "slug").
			Values(name, s).
			Suffix("ON CONFLICT (slug) DO UPDATE SET name = tags.name RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		var id uuid.UUID
		if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func (r *TaxonomyRepo) AttachTags(ctx context.Context, propertyID uuid.UUID, tagIDs []uuid.UUID) error {
	const op = "repository.TaxonomyRepo.AttachTags"

	if len(tagIDs) == 0 {
		return nil
	}

	builder := r.sb.Insert("property_tags").Columns("property_id", "tag_id")
	for _, tagID := range tagIDs {
		builder = builder.Values(propertyID, tagID)
	}

	query, args, err := builder.Suffix("ON CONFLICT DO NOTHING").ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *TaxonomyRepo) TagsForProperty(ctx context.Context, propertyID uuid.UUID) ([]string, error) {
	const op = "repository.TaxonomyRepo.TagsForProperty"

	query, args, err := r.sb.Select("t.name").
		From("tags t").
		Join("property_tags pt ON pt.tag_id = t.id").
		Where(sq.Eq{"pt.property_id": propertyID}).
		OrderBy("t.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// ListBarrios carries the number of available properties in each barrio.
func (r *TaxonomyRepo) ListBarrios(ctx context.Context) ([]models.Barrio, error) {
	const op = "repository.TaxonomyRepo.ListBarrios"

	query, args, err := r.sb.Select(
		"b.id", "b.name", "b.slug", "b.city", "b.seo_title", "b.seo_description", "COUNT(p.id)",
	).
		From("barrios b").
		LeftJoin("properties p ON p.neighborhood_slug = b.slug AND p.estado = ?", models.AvailabilityAvailable).
		GroupBy("b.id").
		OrderBy("b.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	barrios := []models.Barrio{}
	for rows.Next() {
		var b models.Barrio
		if err := rows.Scan(&b.ID, &b.Name, &b.Slug, &b.City, &b.SEOTitle, &b.SEODescription, &b.PropertyCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		barrios = append(barrios, b)
	}

	return barrios, rows.Err()
}

func (r *TaxonomyRepo) GetBarrioBySlug(ctx context.Context, barrioSlug string) (*models.Barrio, error) {
	const op = "repository.TaxonomyRepo.GetBarrioBySlug"

	query, args, err := r.sb.Select("id", "name", "slug", "city", "seo_title", "seo_description").
		From("barrios").
		Where(sq.Eq{"slug": barrioSlug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var b models.Barrio
	err = r.db.QueryRow(ctx, query, args...).Scan(&b.ID, &b.Name, &b.Slug, &b.City, &b.SEOTitle, &b.SEODescription)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrBarrioNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &b, nil
}

func (r *TaxonomyRepo) SaveBarrio(ctx context.Context, barrio models.Barrio) (uuid.UUID, error) {
	const op = "repository.TaxonomyRepo.SaveBarrio"

	query, args, err := r.sb.Insert("barrios").
		Columns("name", "slug", "city", "seo_title", "seo_description").
		Values(barrio.Name, barrio.Slug, barrio.City, barrio.SEOTitle, barrio.SEODescription).
		Suffix("ON CONFLICT (slug) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return r.insertReturningID(ctx, op, query, args)
}

// EnsureBarrio creates the barrio unless its slug is already known.
func (r *TaxonomyRepo) EnsureBarrio(ctx context.Context, name, city string) error {
	const op = "repository.TaxonomyRepo.EnsureBarrio"

	s := slug.Make(name)
	if s == "" {
		return nil
	}

	query, args, err := r.sb.Insert("barrios").
		Columns("name", "slug", "city").
		Values(name, s, city).
		Suffix("ON CONFLICT (slug) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *TaxonomyRepo) insertReturningID(ctx context.Context, op, query string, args []interface{}) (uuid.UUID, error) {
	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrSlugExists)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}
