package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"inmobiliaria/internal/domain/models"
	"inmobiliaria/internal/lib/logger/sl"
	"inmobiliaria/internal/lib/slug"
	"inmobiliaria/internal/repository"
	"inmobiliaria/internal/storage"
	"inmobiliaria/internal/transport/http/dto"
)

var ErrEmptyName = errors.New("name is required")

type TaxonomyService struct {
	log  *slog.Logger
	repo repository.TaxonomyRepository
}

func NewTaxonomyService(log *slog.Logger, repo repository.TaxonomyRepository) *TaxonomyService {
	return &TaxonomyService{log: log, repo: repo}
}

func (s *TaxonomyService) ListTags(ctx context.Context) ([]models.Tag, error) {
	const op = "taxonomy_service.ListTags"

	tags, err := s.repo.ListTags(ctx)
	if err != nil {
		s.log.Error("failed to list tags", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if tags == nil {
		tags = []models.Tag{}
	}

	return tags, nil
}

// ListBarrios returns every barrio with its count of available properties.
func (s *TaxonomyService) ListBarrios(ctx context.Context) ([]models.Barrio, error) {
	const op = "taxonomy_service.ListBarrios"

	barrios, err := s.repo.ListBarrios(ctx)
	if err != nil {
		s.log.Error("failed to list barrios", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if barrios == nil {
		barrios = []models.Barrio{}
	}

	return barrios, nil
}

func (s *TaxonomyService) GetTag(ctx context.Context, tagSlug string) (*models.Tag, error) {
	const op = "taxonomy_service.GetTag"

	tag, err := s.repo.GetTagBySlug(ctx, tagSlug)
	if err != nil {
		if !errors.Is(err, storage.ErrTagNotFound) {
			s.log.Error("failed to get tag", slog.String("op", op), sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return tag, nil
}

func (s *TaxonomyService) GetBarrio(ctx context.Context, barrioSlug string) (*models.Barrio, error) {
	const op = "taxonomy_service.GetBarrio"

	barrio, err := s.repo.GetBarrioBySlug(ctx, barrioSlug)
	if err != nil {
		if !errors.Is(err, storage.ErrBarrioNotFound) {
			s.log.Error("failed to get barrio", slog.String("op", op), sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return barrio, nil
}

func (s *TaxonomyService) CreateTag(ctx context.Context, req dto.CreateTagRequest) (*models.Tag, error) {
	const op = "taxonomy_service.CreateTag"
	log := s.log.With(slog.String("op", op))

	tag := models.Tag{
		Name:           strings.TrimSpace(req.Name),
		Slug:           req.Slug,
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
	}
	if tag.Slug == "" {
		tag.Slug = slug.Make(tag.Name)
	}
	if tag.Slug == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyName)
	}

	id, err := s.repo.SaveTag(ctx, tag)
	if err != nil {
		if !errors.Is(err, storage.ErrSlugExists) {
			log.Error("failed to save tag", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	tag.ID = id

	log.Info("tag created", slog.String("slug", tag.Slug))
	return &tag, nil
}

func (s *TaxonomyService) CreateBarrio(ctx context.Context, req dto.CreateBarrioRequest) (*models.Barrio, error) {
	const op = "taxonomy_service.CreateBarrio"
	log := s.log.With(slog.String("op", op))

	barrio := models.Barrio{
		Name:           strings.TrimSpace(req.Name),
		Slug:           req.Slug,
		City:           strings.TrimSpace(req.City),
		SEOTitle:       req.SEOTitle,
		SEODescription: req.SEODescription,
	}
	if barrio.Slug == "" {
		barrio.Slug = slug.Make(barrio.Name)
	}
	if barrio.Slug == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyName)
	}

	id, err := s.repo.SaveBarrio(ctx, barrio)
	if err != nil {
		if !errors.Is(err, storage.ErrSlugExists) {
			log.Error("failed to save barrio", sl.Err(err))
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	barrio.ID = id

	log.Info("barrio created", slog.String("slug", barrio.Slug))
	return &barrio, nil
}
