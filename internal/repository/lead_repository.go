package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"inmobiliaria/internal/domain/models"
	"inmobiliaria/internal/storage"
)

type LeadRepo struct {
	db DBTX
	sb sq.StatementBuilderType
}

func NewLeadRepository(db DBTX) *LeadRepo {
	return &LeadRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *LeadRepo) SaveLead(ctx context.Context, lead models.Lead) (uuid.UUID, error) {
	const op = "repository.LeadRepo.SaveLead"

	query, args, err := r.sb.Insert("leads").
		Columns("property_id", "kind", "name", "phone", "email", "message", "status").
		Values(lead.PropertyID, lead.Kind, lead.Name, lead.Phone, lead.Email, lead.Message, lead.Status).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetLeads lists newest first; an empty status lists all of them.
func (r *LeadRepo) GetLeads(ctx context.Context, status string, page int, perPage int) ([]models.Lead, int, error) {
	const op = "repository.LeadRepo.GetLeads"

	limit, offset := pageOffset(page, perPage)

	var where sq.Sqlizer = sq.Expr("TRUE")
	if status != "" {
		where = sq.Eq{"l.status": status}
	}

	countQuery, countArgs, err := r.sb.Select("COUNT(*)").From("leads l").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query, args, err := r.sb.Select(
		"l.id", "l.property_id", "COALESCE(p.slug, '')", "l.kind", "l.name",
		"l.phone", "l.email", "l.message", "l.status", "l.created_at",
	).
		From("leads l").
		LeftJoin("properties p ON p.id = l.property_id").
		Where(where).
		OrderBy("l.created_at DESC", "l.id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	leads := make([]models.Lead, 0, limit)
	for rows.Next() {
		var l models.Lead
		err := rows.Scan(
			&l.ID,
			&l.PropertyID,
			&l.PropertySlug,
			&l.Kind,
			&l.Name,
			&l.Phone,
			&l.Email,
			&l.Message,
			&l.Status,
			&l.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	return leads, total, nil
}

func (r *LeadRepo) UpdateLeadStatus(ctx context.Context, leadID uuid.UUID, status string) error {
	const op = "repository.LeadRepo.UpdateLeadStatus"

	query, args, err := r.sb.Update("leads").
		Set("status", status).
		Where(sq.Eq{"id": leadID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrLeadNotFound)
	}

	return nil
}
