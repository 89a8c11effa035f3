package experience

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/portfolio/internal"
	experienceDatamodel "github.com/frahmantamala/portfolio/internal/core/datamodel/experience"
)

type RepositoryAPI interface {
	GetAll(ctx context.Context) ([]*experienceDatamodel.Experience, error)
	GetByID(ctx context.Context, id int64) (*experienceDatamodel.Experience, error)
	GetByExternalID(ctx context.Context, externalID string) (*experienceDatamodel.Experience, error)
	Create(ctx context.Context, experience *experienceDatamodel.Experience) error
	Update(ctx context.Context, experience *experienceDatamodel.Experience) error
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

func (s *Service) List(ctx context.Context) ([]Experience, error) {
	dataExperiences, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to get experiences from repository", "error", err)
		return nil, errors.NewInternalError("failed to list experiences", err)
	}

	experiences := make([]Experience, len(dataExperiences))
	for i, e := range dataExperiences {
		experiences[i] = FromDataModel(e)
	}
	return experiences, nil
}

func (s *Service) Create(ctx context.Context, dto ExperienceDTO) (*Experience, error) {
	if err := dto.Validate(true); err != nil {
		s.logger.Warn("experience validation failed", "error", err)
		return nil, err
	}

	existing, err := s.repo.GetByExternalID(ctx, dto.ID)
	if err != nil {
		s.logger.Error("failed to check experience id", "error", err, "external_id", dto.ID)
		return nil, errors.NewInternalError("failed to create experience", err)
	}
	if existing != nil {
		return nil, ErrExperienceExists
	}

	dataExperience := ToDataModel(Experience{
		ExternalID:        dto.ID,
		CompanyName:       dto.CompanyName,
		CompanyLogo:       dto.CompanyLogo,
		Positions:         dto.Positions,
		IsCurrentEmployer: dto.IsCurrentEmployer,
	})
	if err := s.repo.Create(ctx, dataExperience); err != nil {
		s.logger.Error("failed to create experience", "error", err, "external_id", dto.ID)
		return nil, errors.NewInternalError("failed to create experience", err)
	}

	e := FromDataModel(dataExperience)
	s.logger.Info("experience created", "experience_id", e.ID, "company", e.CompanyName)
	return &e, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto ExperienceDTO) (*Experience, error) {
	if err := dto.Validate(false); err != nil {
		s.logger.Warn("experience validation failed", "error", err, "experience_id", id)
		return nil, err
	}

	dataExperience, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get experience", "error", err, "experience_id", id)
		return nil, errors.NewInternalError("failed to update experience", err)
	}
	if dataExperience == nil {
		return nil, ErrExperienceNotFound
	}

	dataExperience.CompanyName = dto.CompanyName
	dataExperience.CompanyLogo = dto.CompanyLogo
	dataExperience.Positions = dto.Positions
	dataExperience.IsCurrentEmployer = dto.IsCurrentEmployer
	if err := s.repo.Update(ctx, dataExperience); err != nil {
		s.logger.Error("failed to update experience", "error", err, "experience_id", id)
		return nil, errors.NewInternalError("failed to update experience", err)
	}

	e := FromDataModel(dataExperience)
	return &e, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	dataExperience, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get experience", "error", err, "experience_id", id)
		return errors.NewInternalError("failed to delete experience", err)
	}
	if dataExperience == nil {
		return ErrExperienceNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete experience", "error", err, "experience_id", id)
		return errors.NewInternalError("failed to delete experience", err)
	}
	return nil
}
