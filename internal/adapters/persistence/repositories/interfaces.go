package repositories

import (
	"context"

	"uni-egresados/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeByTokenHash(ctx context.Context, tokenHash string) error
	RevokeAllByUserID(ctx context.Context, userID uint) error
	DeleteExpired(ctx context.Context) error
}

// GraduateFilter holds list filters for graduates
type GraduateFilter struct {
	Search  string // substring over nombres/apellidos/dni, case-insensitive
	Carrera string // exact match
	Anio    int    // exact match on anio_egreso, 0 = no filter
}

// GraduateRepository defines graduate repository interface
type GraduateRepository interface {
	CreateWithUser(ctx context.Context, user *models.User, graduate *models.Graduate) error
	GetByID(ctx context.Context, id uint) (*models.Graduate, error)
	GetByUserID(ctx context.Context, userID uint) (*models.Graduate, error)
	Update(ctx context.Context, graduate *models.Graduate) error
	List(ctx context.Context, filter *GraduateFilter, offset, limit int) ([]*models.Graduate, int64, error)
	ExistsByDNI(ctx context.Context, dni string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// EmploymentRepository defines employment repository interface
type EmploymentRepository interface {
	Create(ctx context.Context, employment *models.Employment) error
	ClearCurrent(ctx context.Context, graduateID uint) error
	ListByGraduate(ctx context.Context, graduateID uint) ([]*models.Employment, error)
}
