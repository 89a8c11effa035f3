package education

import (
	"time"

	educationDatamodel "github.com/frahmantamala/portfolio/internal/core/datamodel/education"
)

// Degree is one qualification earned at an institution.
type Degree = educationDatamodel.Degree

type Education struct {
	ID              int64
	ExternalID      string
	InstitutionName string
	InstitutionLogo *string
	Degrees         []Degree
	IsCurrent       bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func FromDataModel(e *educationDatamodel.Education) Education {
	return Education{
		ID:              e.ID,
		ExternalID:      e.ExternalID,
		InstitutionName: e.InstitutionName,
		InstitutionLogo: e.InstitutionLogo,
		Degrees:         e.Degrees,
		IsCurrent:       e.IsCurrent,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func ToDataModel(e Education) *educationDatamodel.Education {
	return &educationDatamodel.Education{
		ID:              e.ID,
		ExternalID:      e.ExternalID,
		InstitutionName: e.InstitutionName,
		InstitutionLogo: e.InstitutionLogo,
		Degrees:         e.Degrees,
		IsCurrent:       e.IsCurrent,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}
