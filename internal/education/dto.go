package education

import (
	"fmt"

	errors "github.com/frahmantamala/portfolio/internal"
	"github.com/frahmantamala/portfolio/internal/core/common/validation"
)

var (
	ErrEducationNotFound = errors.NewNotFoundError("education not found", errors.ErrCodeEducationNotFound)
	ErrEducationExists   = errors.NewConflictError("Education ID already exists", errors.ErrCodeEducationExists)
)

type EducationDTO struct {
	ID              string   `json:"id"`
	InstitutionName string   `json:"institution_name"`
	InstitutionLogo *string  `json:"institution_logo,omitempty"`
	Degrees         []Degree `json:"degrees"`
	IsCurrent       bool     `json:"is_current"`
}

// Validate checks dto; the external id is only required on create.
func (dto EducationDTO) Validate(requireID bool) error {
	v := validation.NewValidator()
	if requireID {
		v.Field("id", dto.ID).Required().MaxLength(100)
	}
	v.Field("institution_name", dto.InstitutionName).Required().MaxLength(200)
	for i, d := range dto.Degrees {
		v.Field(fmt.Sprintf("degrees[%d].id", i), d.ID).Required()
		v.Field(fmt.Sprintf("degrees[%d].degree", i), d.Degree).Required()
		v.Field(fmt.Sprintf("degrees[%d].period", i), d.Period).Required()
	}
	if err := v.Validate(); err != nil {
		return err
	}
	return nil
}

type EducationResponse struct {
	ID              int64    `json:"id"`
	ExternalID      string   `json:"external_id"`
	InstitutionName string   `json:"institution_name"`
	InstitutionLogo *string  `json:"institution_logo,omitempty"`
	Degrees         []Degree `json:"degrees"`
	IsCurrent       bool     `json:"is_current"`
}

type EducationsResponse struct {
	Educations []EducationResponse `json:"educations"`
}

func (e Education) ToResponse() EducationResponse {
	degrees := e.Degrees
	if degrees == nil {
		degrees = []Degree{}
	}
	return EducationResponse{
		ID:              e.ID,
		ExternalID:      e.ExternalID,
		InstitutionName: e.InstitutionName,
		InstitutionLogo: e.InstitutionLogo,
		Degrees:         degrees,
		IsCurrent:       e.IsCurrent,
	}
}
