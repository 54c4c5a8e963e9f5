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
	"inmobiliaria/internal/repository"
	"inmobiliaria/internal/storage"
	"inmobiliaria/internal/transport/http/dto"
)

var ErrEmptyStatus = errors.New("lead status is required")

type LeadService struct {
	log   *slog.Logger
	leads repository.LeadRepository
	props repository.PropertyRepository
	now   func() time.Time
}

func NewLeadService(log *slog.Logger, leads repository.LeadRepository, props repository.PropertyRepository) *LeadService {
	return &LeadService{
		log:   log,
		leads: leads,
		props: props,
		now:   time.Now,
	}
}

// CreateLead records a contact request. A property slug, when present, must
// name an existing property.
func (s *LeadService) CreateLead(ctx context.Context, req dto.CreateLeadRequest) (*dto.LeadResponse, error) {
	const op = "lead_service.CreateLead"
	log := s.log.With(
		slog.String("op", op),
		slog.String("property_slug", req.PropertySlug),
	)

	lead := models.Lead{
		Kind:    models.LeadKind(req.Kind),
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
		Status:  models.LeadStatusPending,
	}
	if lead.Kind == "" {
		lead.Kind = models.LeadKindContact
	}

	if req.PropertySlug != "" {
		p, err := s.props.GetPropertyBySlug(ctx, req.PropertySlug)
		if err != nil {
			if errors.Is(err, storage.ErrPropertyNotFound) {
				log.Warn("lead for unknown property")
			} else {
				log.Error("failed to resolve property", sl.Err(err))
			}
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		lead.PropertyID = &p.ID
		lead.PropertySlug = p.Slug
	}

	id, err := s.leads.SaveLead(ctx, lead)
	if err != nil {
		log.Error("failed to save lead", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	lead.ID = id
	lead.CreatedAt = s.now()

	log.Info("lead created", slog.String("lead_id", id.String()), slog.String("kind", string(lead.Kind)))
	return mapToLeadResponse(lead), nil
}

func (s *LeadService) ListLeads(ctx context.Context, status string, page, perPage int) (*dto.LeadListResponse, error) {
	const op = "lead_service.ListLeads"

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	leads, total, err := s.leads.GetLeads(ctx, strings.TrimSpace(status), page, perPage)
	if err != nil {
		s.log.Error("failed to list leads", slog.String("op", op), sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	resp := &dto.LeadListResponse{
		Leads:      make([]dto.LeadResponse, 0, len(leads)),
		TotalCount: total,
		Page:       page,
		PerPage:    perPage,
	}
	for _, l := range leads {
		resp.Leads = append(resp.Leads, *mapToLeadResponse(l))
	}

	return resp, nil
}

func (s *LeadService) UpdateLeadStatus(ctx context.Context, id uuid.UUID, status string) error {
	const op = "lead_service.UpdateLeadStatus"
	log := s.log.With(
		slog.String("op", op),
		slog.String("lead_id", id.String()),
	)

	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyStatus)
	}

	if err := s.leads.UpdateLeadStatus(ctx, id, status); err != nil {
		if !errors.Is(err, storage.ErrLeadNotFound) {
			log.Error("failed to update lead status", sl.Err(err))
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("lead status updated", slog.String("status", status))
	return nil
}

func mapToLeadResponse(l models.Lead) *dto.LeadResponse {
	return &dto.LeadResponse{
		ID:           l.ID,
		PropertyID:   l.PropertyID,
		PropertySlug: l.PropertySlug,
		Kind:         string(l.Kind),
		Name:         l.Name,
		Phone:        l.Phone,
		Email:        l.Email,
		Message:      l.Message,
		Status:       l.Status,
		CreatedAt:    l.CreatedAt,
	}
}
