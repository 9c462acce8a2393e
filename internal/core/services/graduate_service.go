package services

import (
	"context"
	"errors"
	"log"

	"uni-egresados/internal/adapters/persistence/models"
	"uni-egresados/internal/adapters/persistence/repositories"
	"uni-egresados/internal/pkg/password"

	"gorm.io/gorm"
)

// Graduate errors
var (
	ErrGraduateNotFound = errors.New("graduate not found")
	ErrDNIAlreadyUsed   = errors.New("dni already registered")
	ErrEmailAlreadyUsed = errors.New("email already registered")
)

// GraduateService handles graduate records business logic
type GraduateService struct {
	graduateRepo repositories.GraduateRepository
	userRepo     repositories.UserRepository
}

// NewGraduateService creates a new graduate service
func NewGraduateService(
	graduateRepo repositories.GraduateRepository,
	userRepo repositories.UserRepository,
) *GraduateService {
	return &GraduateService{
		graduateRepo: graduateRepo,
		userRepo:     userRepo,
	}
}

// CreateGraduateInput represents graduate registration input
type CreateGraduateInput struct {
	Nombres    string
	Apellidos  string
	DNI        string
	Email      string
	Telefono   string
	Linkedin   string
	Carrera    string
	AnioEgreso int
}

// UpdateGraduateInput represents a partial profile update.
// Nil fields are left unchanged; DNI and email are immutable here.
type UpdateGraduateInput struct {
	Nombres   *string
	Apellidos *string
	Telefono  *string
	Linkedin  *string
}

// Create registers a graduate together with its login account. The
// initial password is the graduate's DNI and the account is flagged
// for a forced change on first login. Both rows are created in one
// transaction.
func (s *GraduateService) Create(ctx context.Context, input *CreateGraduateInput) (*models.Graduate, error) {
	// 1. Duplicate checks
	exists, err := s.graduateRepo.ExistsByDNI(ctx, input.DNI)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDNIAlreadyUsed
	}

	exists, err = s.graduateRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if !exists {
		exists, err = s.userRepo.ExistsByEmail(ctx, input.Email)
		if err != nil {
			return nil, err
		}
	}
	if exists {
		return nil, ErrEmailAlreadyUsed
	}

	// 2. Initial password = DNI
	hashedPassword, err := password.Hash(input.DNI)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:              input.Email,
		Password:           hashedPassword,
		Role:               models.RoleGraduate,
		MustChangePassword: true,
	}

	graduate := &models.Graduate{
		Nombres:    input.Nombres,
		Apellidos:  input.Apellidos,
		DNI:        input.DNI,
		Email:      input.Email,
		Telefono:   input.Telefono,
		Linkedin:   input.Linkedin,
		Carrera:    input.Carrera,
		AnioEgreso: input.AnioEgreso,
	}

	// 3. Atomic create of both rows
	if err := s.graduateRepo.CreateWithUser(ctx, user, graduate); err != nil {
		return nil, err
	}

	log.Printf("✅ Graduate registered: %s %s (DNI: %s)", graduate.Nombres, graduate.Apellidos, graduate.DNI)

	return graduate, nil
}

// List lists graduates with filters and pagination
func (s *GraduateService) List(ctx context.Context, filter *repositories.GraduateFilter, offset, limit int) ([]*models.Graduate, int64, error) {
	return s.graduateRepo.List(ctx, filter, offset, limit)
}

// GetByID gets a graduate with its employment history
func (s *GraduateService) GetByID(ctx context.Context, id uint) (*models.Graduate, error) {
	graduate, err := s.graduateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGraduateNotFound
		}
		return nil, err
	}
	return graduate, nil
}

// Update applies a partial update of the mutable profile fields
func (s *GraduateService) Update(ctx context.Context, id uint, input *UpdateGraduateInput) (*models.Graduate, error) {
	graduate, err := s.graduateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGraduateNotFound
		}
		return nil, err
	}

	if input.Nombres != nil {
		graduate.Nombres = *input.Nombres
	}
	if input.Apellidos != nil {
		graduate.Apellidos = *input.Apellidos
	}
	if input.Telefono != nil {
		graduate.Telefono = *input.Telefono
	}
	if input.Linkedin != nil {
		graduate.Linkedin = *input.Linkedin
	}

	if err := s.graduateRepo.Update(ctx, graduate); err != nil {
		return nil, err
	}

	return graduate, nil
}
