package project

import (
	"sort"
	"time"

	projectDatamodel "github.com/frahmantamala/portfolio/internal/core/datamodel/project"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Project struct {
	ID               int64
	Title            string
	Slug             string
	Year             string
	Category         string
	Client           string
	Overview         string
	HeroImage        string
	HeroImageCaption *string
	GalleryImages    []string
	Featured         bool
	Order            *int
	WebsiteURL       *string
	Description      *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Sort orders projects for display: explicitly ordered projects come first
// by ascending order, the rest follow by title in English collation. Projects
// sharing an order keep the order they came in.
func Sort(projects []Project) {
	titles := collate.New(language.English, collate.IgnoreCase)
	sort.SliceStable(projects, func(i, j int) bool {
		a, b := projects[i], projects[j]
		switch {
		case a.Order != nil && b.Order != nil:
			return *a.Order < *b.Order
		case a.Order != nil:
			return true
		case b.Order != nil:
			return false
		}
		return titles.CompareString(a.Title, b.Title) < 0
	})
}

func FromDataModel(p *projectDatamodel.Project) Project {
	return Project{
		ID:               p.ID,
		Title:            p.Title,
		Slug:             p.Slug,
		Year:             p.Year,
		Category:         p.Category,
		Client:           p.Client,
		Overview:         p.Overview,
		HeroImage:        p.HeroImage,
		HeroImageCaption: p.HeroImageCaption,
		GalleryImages:    p.GalleryImages,
		Featured:         p.Featured,
		Order:            p.SortOrder,
		WebsiteURL:       p.WebsiteURL,
		Description:      p.Description,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func ToDataModel(p Project) *projectDatamodel.Project {
	return &projectDatamodel.Project{
		ID:               p.ID,
		Title:            p.Title,
		Slug:             p.Slug,
		Year:             p.Year,
		Category:         p.Category,
		Client:           p.Client,
		Overview:         p.Overview,
		HeroImage:        p.HeroImage,
		HeroImageCaption: p.HeroImageCaption,
		GalleryImages:    p.GalleryImages,
		Featured:         p.Featured,
		SortOrder:        p.Order,
		WebsiteURL:       p.WebsiteURL,
		Description:      p.Description,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
