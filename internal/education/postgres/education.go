package postgres

import (
	"context"
	"errors"

	educationDatamodel "github.com/frahmantamala/portfolio/internal/core/datamodel/education"
	"github.com/frahmantamala/portfolio/internal/education"
	"gorm.io/gorm"
)

type EducationRepository struct {
	db *gorm.DB
}

func NewEducationRepository(db *gorm.DB) education.RepositoryAPI {
	return &EducationRepository{db: db}
}

func (r *EducationRepository) GetAll(ctx context.Context) ([]*educationDatamodel.Education, error) {
	var educations []*educationDatamodel.Education
	err := r.db.WithContext(ctx).Order("id ASC").Find(&educations).Error
	return educations, err
}

func (r *EducationRepository) GetByID(ctx context.Context, id int64) (*educationDatamodel.Education, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *EducationRepository) GetByExternalID(ctx context.Context, externalID string) (*educationDatamodel.Education, error) {
	return r.first(ctx, "external_id = ?", externalID)
}

func (r *EducationRepository) Create(ctx context.Context, e *educationDatamodel.Education) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EducationRepository) Update(ctx context.Context, e *educationDatamodel.Education) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *EducationRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&educationDatamodel.Education{}).Error
}

func (r *EducationRepository) first(ctx context.Context, query string, arg interface{}) (*educationDatamodel.Education, error) {
	var e educationDatamodel.Education
	err := r.db.WithContext(ctx).Where(query, arg).First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
