package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateLeadRequest struct {
	PropertySlug string `json:"property_slug,omitempty" validate:"omitempty,slug"`
	Kind         string `json:"kind,omitempty" validate:"omitempty,oneof=contacto asesoria"`
	Name         string `json:"name" validate:"required,min=2,max=120"`
	Phone        string `json:"phone" validate:"required,min=7,max=20"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Message      string `json:"message,omitempty" validate:"omitempty,max=2000"`
}

type UpdateLeadStatusRequest struct {
	Status string `json:"status" validate:"required,max=20"`
}

type LeadResponse struct {
	ID           uuid.UUID  `json:"id" swaggertype:"string" format:"uuid"`
	PropertyID   *uuid.UUID `json:"property_id,omitempty" swaggertype:"string" format:"uuid"`
	PropertySlug string     `json:"property_slug,omitempty"`
	Kind         string     `json:"kind"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Email        string     `json:"email,omitempty"`
	Message      string     `json:"message,omitempty"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

type LeadListResponse struct {
	Leads      []LeadResponse `json:"leads"`
	TotalCount int            `json:"total_count"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
}
