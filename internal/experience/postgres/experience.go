package postgres

import (
	"context"
	"errors"

	experienceDatamodel "github.com/frahmantamala/portfolio/internal/core/datamodel/experience"
	"github.com/frahmantamala/portfolio/internal/experience"
	"gorm.io/gorm"
)

type ExperienceRepository struct {
	db *gorm.DB
}

func NewExperienceRepository(db *gorm.DB) experience.RepositoryAPI {
	return &ExperienceRepository{db: db}
}

func (r *ExperienceRepository) GetAll(ctx context.Context) ([]*experienceDatamodel.Experience, error) {
	var experiences []*experienceDatamodel.Experience
	err := r.db.WithContext(ctx).Order("id ASC").Find(&experiences).Error
	return experiences, err
}

func (r *ExperienceRepository) GetByID(ctx context.Context, id int64) (*experienceDatamodel.Experience, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ExperienceRepository) GetByExternalID(ctx context.Context, externalID string) (*experienceDatamodel.Experience, error) {
	return r.first(ctx, "external_id = ?", externalID)
}

func (r *ExperienceRepository) Create(ctx context.Context, e *experienceDatamodel.Experience) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *ExperienceRepository) Update(ctx context.Context, e *experienceDatamodel.Experience) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *ExperienceRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&experienceDatamodel.Experience{}).Error
}

func (r *ExperienceRepository) first(ctx context.Context, query string, arg interface{}) (*experienceDatamodel.Experience, error) {
	var e experienceDatamodel.Experience
	err := r.db.WithContext(ctx).Where(query, arg).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
