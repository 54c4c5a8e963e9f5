package models

import (
	"time"

	"github.com/google/uuid"
)

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusScheduled PostStatus = "scheduled"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostStatusDraft, PostStatusScheduled, PostStatusPublished, PostStatusArchived:
		return true
	}
	return false
}

type BlogPost struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	Title         string         `db:"title" json:"title"`
	Slug          string         `db:"slug" json:"slug"`
	Excerpt       string         `db:"excerpt" json:"excerpt,omitempty"`
	Content       string         `db:"content" json:"content"`
	FeaturedImage string         `db:"featured_image" json:"featured_image,omitempty"`
	Status        PostStatus     `db:"status" json:"status"`
	PublishedAt   *time.Time     `db:"published_at" json:"published_at,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
	Metadata      map[string]any `db:"metadata" json:"metadata,omitempty"`
}

// IsDue reports whether a scheduled post should be published at now.
func (p *BlogPost) IsDue(now time.Time) bool {
	return p.Status == PostStatusScheduled && p.PublishedAt != nil && !p.PublishedAt.After(now)
}

// IsVisible reports whether the post may be served by public queries.
func (p *BlogPost) IsVisible(now time.Time) bool {
	return p.Status == PostStatusPublished && p.PublishedAt != nil && !p.PublishedAt.After(now)
}
