package repositories

import (
	"context"

	"uni-egresados/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// employmentRepository implements EmploymentRepository interface
type employmentRepository struct {
	db *gorm.DB
}

// NewEmploymentRepository creates a new employment repository
func NewEmploymentRepository(db *gorm.DB) EmploymentRepository {
	return &employmentRepository{db: db}
}

// Create creates a new employment entry
func (r *employmentRepository) Create(ctx context.Context, employment *models.Employment) error {
	return r.db.WithContext(ctx).Create(employment).Error
}

// ClearCurrent unsets the "current" flag on all of a graduate's entries.
// Runs as a separate write from the insert that follows it; concurrent
// requests for the same graduate race between the two (known limitation
// of the clear-then-insert design).
func (r *employmentRepository) ClearCurrent(ctx context.Context, graduateID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Employment{}).
		Where("egresado_id = ?", graduateID).
		Where("actual = ?", true).
		Update("actual", false).Error
}

// ListByGraduate lists a graduate's employment history, newest first
func (r *employmentRepository) ListByGraduate(ctx context.Context, graduateID uint) ([]*models.Employment, error) {
	var employments []*models.Employment
	err := r.db.WithContext(ctx).
		Where("egresado_id = ?", graduateID).
		Order("fecha_inicio DESC").
		Find(&employments).Error
	if err != nil {
		return nil, err
	}
	return employments, nil
}
