package models

import "github.com/google/uuid"

type Tag struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Slug           string    `db:"slug" json:"slug"`
	SEOTitle       string    `db:"seo_title" json:"seo_title,omitempty"`
	SEODescription string    `db:"seo_description" json:"seo_description,omitempty"`
}

type Barrio struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Slug           string    `db:"slug" json:"slug"`
	City           string    `db:"city" json:"city,omitempty"`
	SEOTitle       string    `db:"seo_title" json:"seo_title,omitempty"`
	SEODescription string    `db:"seo_description" json:"seo_description,omitempty"`
	// PropertyCount is filled by facet queries only.
	PropertyCount int `json:"property_count"`
}
