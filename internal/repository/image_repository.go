package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"inmobiliaria/internal/domain/models"
)

type ImageRepo struct {
	db DBTX
	sb sq.StatementBuilderType
}

func NewImageRepository(db DBTX) *ImageRepo {
	return &ImageRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// ImagesForProperties loads the galleries of a whole page in one query,
// ordered by position then id.
func (r *ImageRepo) ImagesForProperties(ctx context.Context, propertyIDs []uuid.UUID) ([]models.PropertyImage, error) {
	const op = "repository.ImageRepo.ImagesForProperties"

	if len(propertyIDs) == 0 {
		return nil, nil
	}

	query, args, err := r.sb.Select("id", "property_id", "url", "position").
		From("property_images").
		Where(sq.Eq{"property_id": propertyIDs}).
		OrderBy("position ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var images []models.PropertyImage
	for rows.Next() {
		var img models.PropertyImage
		if err := rows.Scan(&img.ID, &img.PropertyID, &img.URL, &img.Position); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return images, nil
}

func (r *ImageRepo) AddImages(ctx context.Context, propertyID uuid.UUID, urls []string) error {
	const op = "repository.ImageRepo.AddImages"

	if len(urls) == 0 {
		return nil
	}

	builder := r.sb.Insert("property_images").Columns("property_id", "url", "position")
	for i, url := range urls {
		builder = builder.Values(propertyID, url, i)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
