package models

import (
	"time"

	"github.com/google/uuid"
)

type LeadKind string

const (
	LeadKindContact  LeadKind = "contacto"
	LeadKindAdvisory LeadKind = "asesoria"
)

// Lead statuses are free text in practice; these are the ones the admin uses.
const (
	LeadStatusPending   = "pendiente"
	LeadStatusContacted = "contactado"
	LeadStatusClosed    = "cerrado"
)

type Lead struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	PropertyID   *uuid.UUID `db:"property_id" json:"property_id,omitempty"`
	PropertySlug string     `db:"property_slug" json:"property_slug,omitempty"`
	Kind         LeadKind   `db:"kind" json:"kind"`
	Name         string     `db:"name" json:"name"`
	Phone        string     `db:"phone" json:"phone"`
	Email        string     `db:"email" json:"email,omitempty"`
	Message      string     `db:"message" json:"message,omitempty"`
	Status       string     `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}
