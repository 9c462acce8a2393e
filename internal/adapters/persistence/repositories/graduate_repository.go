package repositories

import (
	"context"
	"strings"

	"uni-egresados/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// graduateRepository implements GraduateRepository interface
type graduateRepository struct {
	db *gorm.DB
}

// NewGraduateRepository creates a new graduate repository
func NewGraduateRepository(db *gorm.DB) GraduateRepository {
	return &graduateRepository{db: db}
}

// CreateWithUser creates the login user and the graduate row in one
// transaction. Both succeed or both fail.
func (r *graduateRepository) CreateWithUser(ctx context.Context, user *models.User, graduate *models.Graduate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		graduate.UsuarioID = user.ID
		return tx.Create(graduate).Error
	})
}

// GetByID gets a graduate with its employment history, newest first
func (r *graduateRepository) GetByID(ctx context.Context, id uint) (*models.Graduate, error) {
	var graduate models.Graduate
	err := r.db.WithContext(ctx).
		Preload("Empleos", func(db *gorm.DB) *gorm.DB {
			return db.Order("fecha_inicio DESC")
		}).
		Where("id = ?", id).
		First(&graduate).Error
	if err != nil {
		return nil, err
	}
	return &graduate, nil
}

// GetByUserID gets the graduate linked to a login user
func (r *graduateRepository) GetByUserID(ctx context.Context, userID uint) (*models.Graduate, error) {
	var graduate models.Graduate
	err := r.db.WithContext(ctx).Where("usuario_id = ?", userID).First(&graduate).Error
	if err != nil {
		return nil, err
	}
	return &graduate, nil
}

// Update updates a graduate
func (r *graduateRepository) Update(ctx context.Context, graduate *models.Graduate) error {
	return r.db.WithContext(ctx).Save(graduate).Error
}

// List lists graduates with pagination and filters. Each row carries
// its current employment (at most one) for the list view.
func (r *graduateRepository) List(ctx context.Context, filter *GraduateFilter, offset, limit int) ([]*models.Graduate, int64, error) {
	var graduates []*models.Graduate
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Graduate{})
	query = applyFilter(query, filter)

	// Count total
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get page, newest first
	err := query.
		Preload("Empleos", "actual = ?", true).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&graduates).Error
	if err != nil {
		return nil, 0, err
	}

	return graduates, total, nil
}

// applyFilter applies search/carrera/anio filters to a query
func applyFilter(query *gorm.DB, filter *GraduateFilter) *gorm.DB {
	if filter == nil {
		return query
	}

	if filter.Search != "" {
		term := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(nombres) LIKE ? OR LOWER(apellidos) LIKE ? OR LOWER(dni) LIKE ?",
			term, term, term,
		)
	}
	if filter.Carrera != "" {
		query = query.Where("carrera = ?", filter.Carrera)
	}
	if filter.Anio > 0 {
		query = query.Where("anio_egreso = ?", filter.Anio)
	}

	return query
}

// ExistsByDNI checks if a DNI is already registered
func (r *graduateRepository) ExistsByDNI(ctx context.Context, dni string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Graduate{}).Where("dni = ?", dni).Count(&count).Error
	return count > 0, err
}

// ExistsByEmail checks if an email is already registered
func (r *graduateRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Graduate{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
