package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateBlogPostRequest struct {
	Title         string         `json:"title" validate:"required,min=3,max=200"`
	Slug          string         `json:"slug,omitempty" validate:"omitempty,slug"`
	Excerpt       string         `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Content       string         `json:"content" validate:"required"`
	FeaturedImage string         `json:"featured_image,omitempty" validate:"omitempty,url"`
	Status        string         `json:"status,omitempty" validate:"omitempty,oneof=draft scheduled published"`
	PublishedAt   *time.Time     `json:"published_at,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

type UpdateBlogPostRequest struct {
	Title         *string        `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Slug          *string        `json:"slug,omitempty" validate:"omitempty,slug"`
	Excerpt       *string        `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Content       *string        `json:"content,omitempty"`
	FeaturedImage *string        `json:"featured_image,omitempty" validate:"omitempty,url"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

type SchedulePostRequest struct {
	PublishAt time.Time `json:"publish_at" validate:"required"`
}

type BlogPostResponse struct {
	ID            uuid.UUID      `json:"id" swaggertype:"string" format:"uuid"`
	Title         string         `json:"title"`
	Slug          string         `json:"slug"`
	Excerpt       string         `json:"excerpt,omitempty"`
	Content       string         `json:"content"`
	FeaturedImage string         `json:"featured_image,omitempty"`
	Status        string         `json:"status"`
	PublishedAt   *time.Time     `json:"published_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

type BlogPostListResponse struct {
	Posts      []BlogPostResponse `json:"posts"`
	TotalCount int                `json:"total_count"`
	Page       int                `json:"page"`
	PerPage    int                `json:"per_page"`
}

type PromoteResponse struct {
	Promoted int64 `json:"promoted"`
}
