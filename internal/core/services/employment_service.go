package services

import (
	"context"
	"errors"
	"log"
	"time"

	"uni-egresados/internal/adapters/persistence/models"
	"uni-egresados/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// EmploymentService handles employment records business logic
type EmploymentService struct {
	employmentRepo repositories.EmploymentRepository
	graduateRepo   repositories.GraduateRepository
}

// NewEmploymentService creates a new employment service
func NewEmploymentService(
	employmentRepo repositories.EmploymentRepository,
	graduateRepo   repositories.GraduateRepository,
) *EmploymentService {
	return &EmploymentService{
		employmentRepo: employmentRepo,
		graduateRepo:   graduateRepo,
	}
}

// CreateEmploymentInput represents employment creation input
type CreateEmploymentInput struct {
	Empresa     string
	Cargo       string
	Sector      string
	FechaInicio time.Time
	FechaFin    *time.Time
	Salario     *float64
	Actual      bool
	EgresadoID  uint
}

// Create inserts a new employment entry. When the entry is marked as
// current, the flag is first cleared on the graduate's other entries,
// then the row is inserted. The two writes are not wrapped in a
// transaction; concurrent requests for the same graduate may race.
func (s *EmploymentService) Create(ctx context.Context, input *CreateEmploymentInput) (*models.Employment, error) {
	// 1. Owning graduate must exist
	if _, err := s.graduateRepo.GetByID(ctx, input.EgresadoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGraduateNotFound
		}
		return nil, err
	}

	// 2. Keep at most one current entry per graduate
	if input.Actual {
		if err := s.employmentRepo.ClearCurrent(ctx, input.EgresadoID); err != nil {
			return nil, err
		}
	}

	employment := &models.Employment{
		Empresa:     input.Empresa,
		Cargo:       input.Cargo,
		Sector:      input.Sector,
		FechaInicio: input.FechaInicio,
		FechaFin:    input.FechaFin,
		Salario:     input.Salario,
		Actual:      input.Actual,
		EgresadoID:  input.EgresadoID,
	}

	if err := s.employmentRepo.Create(ctx, employment); err != nil {
		return nil, err
	}

	log.Printf("✅ Employment created: %s @ %s (egresado %d)", employment.Cargo, employment.Empresa, employment.EgresadoID)

	return employment, nil
}

// ListByGraduate lists a graduate's employment history
func (s *EmploymentService) ListByGraduate(ctx context.Context, graduateID uint) ([]*models.Employment, error) {
	return s.employmentRepo.ListByGraduate(ctx, graduateID)
}
