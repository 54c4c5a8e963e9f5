package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/lib/pq"

	"inmobiliaria/internal/domain/models"
	"inmobiliaria/internal/lib/slug"
	"inmobiliaria/internal/storage"
)

var propertyColumns = []string{
	"p.id",
	"p.slug",
	"p.title",
	"p.description",
	"p.excerpt",
	"p.property_type",
	"p.operation",
	"p.city",
	"p.neighborhood",
	"p.address",
	"p.price",
	"p.bedrooms",
	"p.bathrooms",
	"p.area_m2",
	"p.main_image",
	"p.estado",
	"p.featured",
	"p.amenities",
	"p.agent_id",
	"p.created_at",
	"p.updated_at",
}

type PropertyRepo struct {
	db DBTX
	sb sq.StatementBuilderType
}

func NewPropertyRepository(db DBTX) *PropertyRepo {
	return &PropertyRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PropertyRepo) ListProperties(ctx context.Context, q models.PropertyQuery) ([]models.Property, error) {
	const op = "repository.PropertyRepo.ListProperties"

	query, args, err := r.buildListQuery(q)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	props := make([]models.Property, 0, q.Limit)
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		props = append(props, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return props, nil
}

func (r *PropertyRepo) CountProperties(ctx context.Context, f models.PropertyFilter) (int, error) {
	const op = "repository.PropertyRepo.CountProperties"

	query, args, err := r.buildCountQuery(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return count, nil
}

func (r *PropertyRepo) GetPropertyBySlug(ctx context.Context, slug string) (*models.Property, error) {
	const op = "repository.PropertyRepo.GetPropertyBySlug"

	query, args, err := r.sb.Select(propertyColumns...).
		From("properties p").
		Where(sq.Eq{"p.slug": slug}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	p, err := scanProperty(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrPropertyNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &p, nil
}

func (r *PropertyRepo) InsertProperty(ctx context.Context, p models.Property) (uuid.UUID, bool, error) {
	const op = "repository.PropertyRepo.InsertProperty"

	estado := p.Estado
	if estado == "" {
		estado = models.AvailabilityAvailable
	}
	amenities := p.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	query, args, err := r.sb.Insert("properties").
		Columns(
			"slug",
			"title",
			"description",
			"excerpt",
			"property_type",
			"operation",
			"city",
			"neighborhood",
			"neighborhood_slug",
			"address",
			"price",
			"bedrooms",
			"bathrooms",
			"area_m2",
			"main_image",
			"estado",
			"featured",
			"amenities",
			"agent_id",
		).
		Values(
			p.Slug,
			p.Title,
			p.Description,
			p.Excerpt,
			p.PropertyType,
			p.Operation,
			p.City,
			p.Neighborhood,
			slug.Make(p.Neighborhood),
			p.Address,
			p.Price,
			p.Bedrooms,
			p.Bathrooms,
			p.AreaM2,
			p.MainImage,
			estado,
			p.Featured,
			pq.Array(amenities),
			p.AgentID,
		).
		Suffix("ON CONFLICT (slug) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("%s: %w", op, err)
	}

	return id, true, nil
}

func (r *PropertyRepo) UpdatePropertyStatus(ctx context.Context, id uuid.UUID, estado models.Availability) error {
	const op = "repository.PropertyRepo.UpdatePropertyStatus"

	return r.updateField(ctx, op, id, "estado", estado)
}

func (r *PropertyRepo) SetPropertyFeatured(ctx context.Context, id uuid.UUID, featured bool) error {
	const op = "repository.PropertyRepo.SetPropertyFeatured"

	return r.updateField(ctx, op, id, "featured", featured)
}

func (r *PropertyRepo) updateField(ctx context.Context, op string, id uuid.UUID, column string, value any) error {
	query, args, err := r.sb.Update("properties").
		Set(column, value).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPropertyNotFound)
	}

	return nil
}

func (r *PropertyRepo) buildListQuery(q models.PropertyQuery) (string, []interface{}, error) {
	builder := applyPropertyFilter(r.sb.Select(propertyColumns...).From("properties p"), q.Filter).
		OrderBy(orderByClauses(q.Sort)...)

	if q.Limit > 0 {
		builder = builder.Limit(uint64(q.Limit))
	}
	if q.Offset > 0 {
		builder = builder.Offset(uint64(q.Offset))
	}

	return builder.ToSql()
}

func (r *PropertyRepo) buildCountQuery(f models.PropertyFilter) (string, []interface{}, error) {
	return applyPropertyFilter(r.sb.Select("COUNT(*)").From("properties p"), f).ToSql()
}

// applyPropertyFilter is shared by the page and count queries so both see
// the same predicate.
func applyPropertyFilter(b sq.SelectBuilder, f models.PropertyFilter) sq.SelectBuilder {
	if !f.Admin {
		b = b.Where(sq.Eq{"p.estado": models.AvailabilityAvailable})
	}
	if f.Operation != "" {
		b = b.Where(sq.Eq{"p.operation": f.Operation})
	}
	if f.MinBedrooms > 0 {
		b = b.Where(sq.GtOrEq{"p.bedrooms": f.MinBedrooms})
	}
	if f.TagSlug != "" {
		b = b.Where("p.id IN (SELECT pt.property_id FROM property_tags pt JOIN tags t ON t.id = pt.tag_id WHERE t.slug = ?)", f.TagSlug)
	}
	if f.BarrioSlug != "" {
		b = b.Where(sq.Eq{"p.neighborhood_slug": f.BarrioSlug})
	}
	if f.City != "" {
		b = b.Where("LOWER(p.city) = LOWER(?)", f.City)
	}
	if f.Featured {
		b = b.Where(sq.Eq{"p.featured": true})
	}

	return b
}

// orderByClauses always ends with created_at and id so pages are stable.
func orderByClauses(sort models.SortOrder) []string {
	switch sort {
	case models.SortPriceAsc:
		return []string{"p.price ASC", "p.created_at DESC", "p.id DESC"}
	case models.SortPriceDesc:
		return []string{"p.price DESC", "p.created_at DESC", "p.id DESC"}
	default:
		return []string{"p.created_at DESC", "p.id DESC"}
	}
}

func scanProperty(row pgx.Row) (models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.Description,
		&p.Excerpt,
		&p.PropertyType,
		&p.Operation,
		&p.City,
		&p.Neighborhood,
		&p.Address,
		&p.Price,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.AreaM2,
		&p.MainImage,
		&p.Estado,
		&p.Featured,
		pq.Array(&p.Amenities),
		&p.AgentID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return models.Property{}, err
	}
	p.Gallery = []string{}

	return p, nil
}
