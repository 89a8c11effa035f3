package experience

import (
	"fmt"

	errors "github.com/frahmantamala/portfolio/internal"
	"github.com/frahmantamala/portfolio/internal/core/common/validation"
)

var (
	ErrExperienceNotFound = errors.NewNotFoundError("experience not found", errors.ErrCodeExperienceNotFound)
	ErrExperienceExists   = errors.NewConflictError("Experience ID already exists", errors.ErrCodeExperienceExists)
)

// ExperienceDTO is the full content of an experience entry. Updates replace
// every field except the external id.
type ExperienceDTO struct {
	ID                string     `json:"id"`
	CompanyName       string     `json:"company_name"`
	CompanyLogo       *string    `json:"company_logo,omitempty"`
	Positions         []Position `json:"positions"`
	IsCurrentEmployer bool       `json:"is_current_employer"`
}

func (dto ExperienceDTO) Validate(requireID bool) error {
	v := validation.NewValidator()
	if requireID {
		v.Field("id", dto.ID).Required().MaxLength(100)
	}
	v.Field("company_name", dto.CompanyName).Required().MaxLength(200)
	for i, p := range dto.Positions {
		v.Field(fmt.Sprintf("positions[%d].id", i), p.ID).Required()
		v.Field(fmt.Sprintf("positions[%d].title", i), p.Title).Required()
		v.Field(fmt.Sprintf("positions[%d].employment_period", i), p.EmploymentPeriod).Required()
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type ExperienceResponse struct {
	ID                int64      `json:"id"`
	ExternalID        string     `json:"external_id"`
	CompanyName       string     `json:"company_name"`
	CompanyLogo       *string    `json:"company_logo,omitempty"`
	Positions         []Position `json:"positions"`
	IsCurrentEmployer bool       `json:"is_current_employer"`
}

type ExperiencesResponse struct {
	Experiences []ExperienceResponse `json:"experiences"`
}

func (e Experience) ToResponse() ExperienceResponse {
	positions := e.Positions
	if positions == nil {
		positions = []Position{}
	}
	return ExperienceResponse{
		ID:                e.ID,
		ExternalID:        e.ExternalID,
		CompanyName:       e.CompanyName,
		CompanyLogo:       e.CompanyLogo,
		Positions:         positions,
		IsCurrentEmployer: e.IsCurrentEmployer,
	}
}
