package project

import (
	"time"

	errors "github.com/frahmantamala/portfolio/internal"
	"github.com/frahmantamala/portfolio/internal/core/common/validation"
)

var (
	ErrProjectNotFound = errors.NewNotFoundError("project not found", errors.ErrCodeProjectNotFound)
	ErrSlugTaken       = errors.NewConflictError("project slug already exists", errors.ErrCodeSlugTaken)
)

type CreateProjectDTO struct {
	Title            string   `json:"title"`
	Slug             string   `json:"slug"`
	Year             string   `json:"year"`
	Category         string   `json:"category"`
	Client           string   `json:"client"`
	Overview         string   `json:"overview"`
	HeroImage        string   `json:"hero_image"`
	HeroImageCaption *string  `json:"hero_image_caption,omitempty"`
	GalleryImages    []string `json:"gallery_images,omitempty"`
	Featured         bool     `json:"featured"`
	Order            *int     `json:"order,omitempty"`
	WebsiteURL       *string  `json:"website_url,omitempty"`
	Description      *string  `json:"description,omitempty"`
}

func (dto CreateProjectDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("title", dto.Title).Required().MaxLength(200)
	v.Field("slug", dto.Slug).Required().Slug().MaxLength(200)
	v.Field("year", dto.Year).Required()
	v.Field("category", dto.Category).Required()
	v.Field("client", dto.Client).Required()
	v.Field("overview", dto.Overview).Required()
	v.Field("hero_image", dto.HeroImage).Required()
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

// UpdateProjectDTO patches only the fields that are set.
type UpdateProjectDTO struct {
	Title            *string   `json:"title,omitempty"`
	Slug             *string   `json:"slug,omitempty"`
	Year             *string   `json:"year,omitempty"`
	Category         *string   `json:"category,omitempty"`
	Client           *string   `json:"client,omitempty"`
	Overview         *string   `json:"overview,omitempty"`
	HeroImage        *string   `json:"hero_image,omitempty"`
	HeroImageCaption *string   `json:"hero_image_caption,omitempty"`
	GalleryImages    *[]string `json:"gallery_images,omitempty"`
	Featured         *bool     `json:"featured,omitempty"`
	Order            *int      `json:"order,omitempty"`
	WebsiteURL       *string   `json:"website_url,omitempty"`
	Description      *string   `json:"description,omitempty"`
}

func (dto UpdateProjectDTO) Validate() error {
	v := validation.NewValidator()
	if dto.Title != nil {
		v.Field("title", *dto.Title).Required().MaxLength(200)
	}
	if dto.Slug != nil {
		v.Field("slug", *dto.Slug).Required().Slug().MaxLength(200)
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

func (dto UpdateProjectDTO) apply(p *Project) {
	setString(&p.Title, dto.Title)
	setString(&p.Slug, dto.Slug)
	setString(&p.Year, dto.Year)
	setString(&p.Category, dto.Category)
	setString(&p.Client, dto.Client)
	setString(&p.Overview, dto.Overview)
	setString(&p.HeroImage, dto.HeroImage)
	if dto.HeroImageCaption != nil {
		p.HeroImageCaption = dto.HeroImageCaption
	}
	if dto.GalleryImages != nil {
		p.GalleryImages = *dto.GalleryImages
	}
	if dto.Featured != nil {
		p.Featured = *dto.Featured
	}
	if dto.Order != nil {
		p.Order = dto.Order
	}
	if dto.WebsiteURL != nil {
		p.WebsiteURL = dto.WebsiteURL
	}
	if dto.Description != nil {
		p.Description = dto.Description
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

type ProjectResponse struct {
	ID               int64     `json:"id"`
	Title            string    `json:"title"`
	Slug             string    `json:"slug"`
	Year             string    `json:"year"`
	Category         string    `json:"category"`
	Client           string    `json:"client"`
	Overview         string    `json:"overview"`
	HeroImage        string    `json:"hero_image"`
	HeroImageCaption *string   `json:"hero_image_caption,omitempty"`
	GalleryImages    []string  `json:"gallery_images"`
	Featured         bool      `json:"featured"`
	Order            *int      `json:"order,omitempty"`
	WebsiteURL       *string   `json:"website_url,omitempty"`
	Description      *string   `json:"description,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type ProjectsResponse struct {
	Projects []ProjectResponse `json:"projects"`
}

func (p Project) ToResponse() ProjectResponse {
	gallery := p.GalleryImages
	if gallery == nil {
		gallery = []string{}
	}
	return ProjectResponse{
		ID:               p.ID,
		Title:            p.Title,
		Slug:             p.Slug,
		Year:             p.Year,
		Category:         p.Category,
		Client:           p.Client,
		Overview:         p.Overview,
		HeroImage:        p.HeroImage,
		HeroImageCaption: p.HeroImageCaption,
		GalleryImages:    gallery,
		Featured:         p.Featured,
		Order:            p.Order,
		WebsiteURL:       p.WebsiteURL,
		Description:      p.Description,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
