package experience

import (
	"time"

	experienceDatamodel "github.com/frahmantamala/portfolio/internal/core/datamodel/experience"
)

// Position is one role held at an employer.
type Position = experienceDatamodel.Position

type Experience struct {
	ID                int64
	ExternalID        string
	CompanyName       string
	CompanyLogo       *string
	Positions         []Position
	IsCurrentEmployer bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func FromDataModel(e *experienceDatamodel.Experience) Experience {
	return Experience{
		ID:                e.ID,
		ExternalID:        e.ExternalID,
		CompanyName:       e.CompanyName,
		CompanyLogo:       e.CompanyLogo,
		Positions:         e.Positions,
		IsCurrentEmployer: e.IsCurrentEmployer,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func ToDataModel(e Experience) *experienceDatamodel.Experience {
	return &experienceDatamodel.Experience{
		ID:                e.ID,
		ExternalID:        e.ExternalID,
		CompanyName:       e.CompanyName,
		CompanyLogo:       e.CompanyLogo,
		Positions:         e.Positions,
		IsCurrentEmployer: e.IsCurrentEmployer,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}
