package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type Repository struct {
	Property PropertyRepository
	Image    ImageRepository
	Taxonomy TaxonomyRepository
	Blog     BlogRepository
	Lead     LeadRepository

	pool *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{
		Property: NewPropertyRepository(db),
		Image:    NewImageRepository(db),
		Taxonomy: NewTaxonomyRepository(db),
		Blog:     NewBlogRepository(db),
		Lead:     NewLeadRepository(db),
		pool:     db,
	}
}

// CatalogStores are the repositories a catalog write goes through.
type CatalogStores struct {
	Property PropertyRepository
	Image    ImageRepository
	Taxonomy TaxonomyRepository
}

// Transactor runs fn with stores bound to a single transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(CatalogStores) error) error
}

// WithinTx commits when fn returns nil and rolls back otherwise.
func (r *Repository) WithinTx(ctx context.Context, fn func(CatalogStores) error) (err error) {
	const op = "repository.Repository.WithinTx"

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, fmt.Errorf("%s: rollback: %w", op, rbErr))
			}
		}
	}()

	if err = fn(CatalogStores{
		Property: NewPropertyRepository(tx),
		Image:    NewImageRepository(tx),
		Taxonomy: NewTaxonomyRepository(tx),
	}); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	return nil
}

// isUniqueViolation reports a PostgreSQL unique_violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func pageOffset(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return perPage, (page - 1) * perPage
}
