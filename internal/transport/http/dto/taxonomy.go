package dto

type CreateTagRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=80"`
	Slug           string `json:"slug,omitempty" validate:"omitempty,slug"`
	SEOTitle       string `json:"seo_title,omitempty" validate:"omitempty,max=120"`
	SEODescription string `json:"seo_description,omitempty" validate:"omitempty,max=300"`
}

type CreateBarrioRequest struct {
	Name           string `json:"name" validate:"required,min=2,max=80"`
	Slug           string `json:"slug,omitempty" validate:"omitempty,slug"`
	City           string `json:"city,omitempty" validate:"omitempty,max=80"`
	SEOTitle       string `json:"seo_title,omitempty" validate:"omitempty,max=120"`
	SEODescription string `json:"seo_description,omitempty" validate:"omitempty,max=300"`
}
