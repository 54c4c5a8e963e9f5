package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"inmobiliaria/internal/domain/models"
	"inmobiliaria/internal/importer"
	"inmobiliaria/internal/lib/logger/sl"
	"inmobiliaria/internal/metrics"
	"inmobiliaria/internal/repository"
)

type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

var ErrUnknownFormat = errors.New("unknown import format")

// FormatFromFilename picks the decoder from the file extension.
func FormatFromFilename(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Summary is the import report plus confidence counters for the CLI.
type Summary struct {
	models.ImportReport
	DefaultPrices  int  `json:"-"`
	InferredPrices int  `json:"-"`
	GuessedCities  int  `json:"-"`
	DryRun         bool `json:"-"`
}

// CacheInvalidator drops cached listing pages after a write.
type CacheInvalidator interface {
	InvalidateCache(ctx context.Context)
}

type ImportService struct {
	log        *slog.Logger
	normalizer *importer.Normalizer
	tx         repository.Transactor
	cache      CacheInvalidator
}

func NewImportService(
	log *slog.Logger,
	normalizer *importer.Normalizer,
	tx repository.Transactor,
	cache CacheInvalidator,
) *ImportService {
	return &ImportService{
		log:        log,
		normalizer: normalizer,
		tx:         tx,
		cache:      cache,
	}
}

// Import decodes, normalizes and stores a batch. Row problems end up in the
// report; store failures abort the batch. With dryRun nothing is written and
// Inserted counts the rows that would be attempted.
func (s *ImportService) Import(ctx context.Context, r io.Reader, format Format, dryRun bool) (*Summary, error) {
	const op = "import_service.Import"
	log := s.log.With(
		slog.String("op", op),
		slog.String("format", string(format)),
		slog.Bool("dry_run", dryRun),
	)

	rows, err := s.decode(ctx, r, format)
	if err != nil {
		log.Warn("failed to decode import", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Debug("rows decoded", slog.Int("rows", len(rows)))

	res := s.normalizer.Normalize(rows)

	summary := &Summary{ImportReport: res.Report, DryRun: dryRun}
	for _, rec := range res.Records {
		switch rec.Price.Confidence {
		case models.ConfidenceDefault:
			summary.DefaultPrices++
		case models.ConfidenceInferred:
			summary.InferredPrices++
		}
		if rec.City.Confidence != models.ConfidenceExplicit {
			summary.GuessedCities++
		}
	}

	metrics.ImportRows.WithLabelValues("omitted").Add(float64(res.Report.Omitted))
	metrics.ImportRows.WithLabelValues("duplicate").Add(float64(res.Report.Duplicates))
	metrics.ImportRows.WithLabelValues("error").Add(float64(len(res.Report.Errors)))

	if dryRun {
		log.Info("dry run finished", slog.Int("records", len(res.Records)))
		return summary, nil
	}

	summary.Inserted = 0
	for _, rec := range res.Records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		inserted, err := s.store(ctx, rec)
		if err != nil {
			log.Error("failed to store record",
				slog.Int("row", rec.Row),
				slog.String("slug", rec.Property.Slug),
				sl.Err(err),
			)
			if summary.Inserted > 0 {
				s.cache.InvalidateCache(ctx)
			}
			return nil, fmt.Errorf("%s: row %d (%s): %w", op, rec.Row, rec.Property.Slug, err)
		}

		if !inserted {
			summary.Duplicates++
			metrics.ImportRows.WithLabelValues("duplicate").Inc()
			continue
		}
		summary.Inserted++
		metrics.ImportRows.WithLabelValues("inserted").Inc()
	}

	if summary.Inserted > 0 {
		s.cache.InvalidateCache(ctx)
	}

	log.Info("import finished",
		slog.Int("inserted", summary.Inserted),
		slog.Int("omitted", summary.Omitted),
		slog.Int("duplicates", summary.Duplicates),
		slog.Int("errors", len(summary.Errors)),
	)

	return summary, nil
}

func (s *ImportService) decode(ctx context.Context, r io.Reader, format Format) ([]importer.Row, error) {
	switch format {
	case FormatCSV:
		return importer.DecodeCSV(r)
	case FormatJSON:
		return importer.DecodeJSON(ctx, r)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// store writes one record and its gallery and tags in a single transaction,
// so a failed record leaves nothing behind for a re-run to skip. It reports
// false when the slug is already in the catalog.
func (s *ImportService) store(ctx context.Context, rec models.ImportRecord) (bool, error) {
	p := rec.Property
	inserted := false

	err := s.tx.WithinTx(ctx, func(tx repository.CatalogStores) error {
		if rec.Barrio.Confidence != models.ConfidenceDefault && p.Neighborhood != "" {
			if err := tx.Taxonomy.EnsureBarrio(ctx, p.Neighborhood, p.City); err != nil {
				return fmt.Errorf("ensure barrio: %w", err)
			}
		}

		id, ok, err := tx.Property.InsertProperty(ctx, p)
		if err != nil {
			return fmt.Errorf("insert property: %w", err)
		}
		if !ok {
			return nil
		}

		if len(p.Gallery) > 0 {
			if err := tx.Image.AddImages(ctx, id, p.Gallery); err != nil {
				return fmt.Errorf("add images: %w", err)
			}
		}

		if len(p.Tags) > 0 {
			tagIDs, err := tx.Taxonomy.EnsureTags(ctx, p.Tags)
			if err != nil {
				return fmt.Errorf("ensure tags: %w", err)
			}
			if err := tx.Taxonomy.AttachTags(ctx, id, tagIDs); err != nil {
				return fmt.Errorf("attach tags: %w", err)
			}
		}

		inserted = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return inserted, nil
}
