package education

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/portfolio/internal"
	educationDatamodel "github.com/frahmantamala/portfolio/internal/core/datamodel/education"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*educationDatamodel.Education, error)
	GetByID(ctx context.Context, id int64) (*educationDatamodel.Education, error)
	GetByExternalID(ctx context.Context, externalID string) (*educationDatamodel.Education, error)
	Create(ctx context.Context, education *educationDatamodel.Education) error
	Update(ctx context.Context, education *educationDatamodel.Education) error
	Delete(ctx context.Context, id int64) error
}

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context) ([]Education, error) {
	dataEducations, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get educations from repository", "error", err)
		return nil, errors.NewInternalError("failed to list educations", err)
	}

	educations := make([]Education, len(dataEducations))
	for i, e := range dataEducations {
		educations[i] = FromDataModel(e)
	}
	return educations, nil
}

func (s *Service) Create(ctx context.Context, dto EducationDTO) (*Education, error) {
	if err := dto.Validate(true); err != nil {
		s.logger.Warn("education validation failed", "error", err)
		return nil, err
	}

	existing, err := s.repo.GetByExternalID(ctx, dto.ID)
	if err != nil {
		s.logger.Error("failed to check education id", "error", err, "external_id", dto.ID)
		return nil, errors.NewInternalError("failed to create education", err)
	}
	if existing != nil {
		return nil, ErrEducationExists
	}

	dataEducation := ToDataModel(Education{
		ExternalID:      dto.ID,
		InstitutionName: dto.InstitutionName,
		InstitutionLogo: dto.InstitutionLogo,
		Degrees:         dto.Degrees,
		IsCurrent:       dto.IsCurrent,
	})
	if err := s.repo.Create(ctx, dataEducation); err != nil {
		s.logger.Error("failed to create education", "error", err, "external_id", dto.ID)
		return nil, errors.NewInternalError("failed to create education", err)
	}

	e := FromDataModel(dataEducation)
	s.logger.Info("education created", "education_id", e.ID, "institution", e.InstitutionName)
	return &e, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto EducationDTO) (*Education, error) {
	if err := dto.Validate(false); err != nil {
		s.logger.Warn("education validation failed", "error", err, "education_id", id)
		return nil, err
	}

	dataEducation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get education", "error", err, "education_id", id)
		return nil, errors.NewInternalError("failed to update education", err)
	}
	if dataEducation == nil {
		return nil, ErrEducationNotFound
	}

	dataEducation.InstitutionName = dto.InstitutionName
	dataEducation.InstitutionLogo = dto.InstitutionLogo
	dataEducation.Degrees = dto.Degrees
	dataEducation.IsCurrent = dto.IsCurrent
	if err := s.repo.Update(ctx, dataEducation); err != nil {
		s.logger.Error("failed to update education", "error", err, "education_id", id)
		return nil, errors.NewInternalError("failed to update education", err)
	}

	e := FromDataModel(dataEducation)
	return &e, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	dataEducation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get education", "error", err, "education_id", id)
		return errors.NewInternalError("failed to delete education", err)
	}
	if dataEducation == nil {
		return ErrEducationNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete education", "error", err, "education_id", id)
		return errors.NewInternalError("failed to delete education", err)
	}
	return nil
}
