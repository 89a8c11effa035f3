package project

import (
	"context"
	"log/slog"

	errors "github.com/frahmantamala/portfolio/internal"
	projectDatamodel "github.com/frahmantamala/portfolio/internal/core/datamodel/project"
)

type RepositoryAPI interface {
	List(ctx context.Context, featured *bool) ([]*projectDatamodel.Project, error)
	GetByID(ctx context.Context, id int64) (*projectDatamodel.Project, error)
	GetBySlug(ctx context.Context, slug string) (*projectDatamodel.Project, error)
	Create(ctx context.Context, project *projectDatamodel.Project) error
	Update(ctx context.Context, project *projectDatamodel.Project) error
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

// List returns projects in display order, optionally filtered on featured.
func (s *Service) List(ctx context.Context, featured *bool) ([]Project, error) {
	dataProjects, err := s.repo.List(ctx, featured)
	if err != nil {
		s.logger.Error("failed to list projects", "error", err)
		return nil, errors.NewInternalError("failed to list projects", err)
	}

	projects := make([]Project, len(dataProjects))
	for i, p := range dataProjects {
		projects[i] = FromDataModel(p)
	}
	Sort(projects)

	s.logger.Debug("retrieved projects", "count", len(projects))
	return projects, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*Project, error) {
	dataProject, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.Error("failed to get project", "error", err, "slug", slug)
		return nil, errors.NewInternalError("failed to get project", err)
	}
	if dataProject == nil {
		return nil, ErrProjectNotFound
	}
	p := FromDataModel(dataProject)
	return &p, nil
}

func (s *Service) Create(ctx context.Context, dto CreateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("project validation failed", "error", err)
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, dto.Slug, 0); err != nil {
		return nil, err
	}

	dataProject := ToDataModel(Project{
		Title:            dto.Title,
		Slug:             dto.Slug,
		Year:             dto.Year,
		Category:         dto.Category,
		Client:           dto.Client,
		Overview:         dto.Overview,
		HeroImage:        dto.HeroImage,
		HeroImageCaption: dto.HeroImageCaption,
		GalleryImages:    dto.GalleryImages,
		Featured:         dto.Featured,
		Order:            dto.Order,
		WebsiteURL:       dto.WebsiteURL,
		Description:      dto.Description,
	})
	if err := s.repo.Create(ctx, dataProject); err != nil {
		s.logger.Error("failed to create project", "error", err, "slug", dto.Slug)
		return nil, errors.NewInternalError("failed to create project", err)
	}

	p := FromDataModel(dataProject)
	s.logger.Info("project created", "project_id", p.ID, "slug", p.Slug)
	return &p, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Warn("project validation failed", "error", err, "project_id", id)
		return nil, err
	}

	dataProject, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get project", "error", err, "project_id", id)
		return nil, errors.NewInternalError("failed to get project", err)
	}
	if dataProject == nil {
		return nil, ErrProjectNotFound
	}

	if dto.Slug != nil && *dto.Slug != dataProject.Slug {
		if err := s.ensureSlugFree(ctx, *dto.Slug, id); err != nil {
			return nil, err
		}
	}

	p := FromDataModel(dataProject)
	dto.apply(&p)
	dataProject = ToDataModel(p)
	if err := s.repo.Update(ctx, dataProject); err != nil {
		s.logger.Error("failed to update project", "error", err, "project_id", id)
		return nil, errors.NewInternalError("failed to update project", err)
	}

	updated := FromDataModel(dataProject)
	return &updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	dataProject, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get project", "error", err, "project_id", id)
		return errors.NewInternalError("failed to get project", err)
	}
	if dataProject == nil {
		return ErrProjectNotFound
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete project", "error", err, "project_id", id)
		return errors.NewInternalError("failed to delete project", err)
	}
	s.logger.Info("project deleted", "project_id", id, "slug", dataProject.Slug)
	return nil
}

func (s *Service) ensureSlugFree(ctx context.Context, slug string, ownerID int64) error {
	existing, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.Error("failed to check slug", "error", err, "slug", slug)
		return errors.NewInternalError("failed to check slug", err)
	}
	if existing != nil && existing.ID != ownerID {
		return ErrSlugTaken
	}
	return nil
}
