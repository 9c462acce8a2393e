package config

import (
	"log"

	"uni-egresados/internal/adapters/persistence/models"
	"uni-egresados/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the default admin account.
// For development/testing only; in production create the admin
// through a secure process.
func (s *Seeder) seedAdminUser() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count > 0 {
		return nil // Admin already exists
	}

	hashedPassword, err := password.Hash("Admin12345")
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:              "admin@uni.edu.pe",
		Password:           hashedPassword,
		Role:               models.RoleAdmin,
		MustChangePassword: false,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Seeded admin user: %s", admin.Email)
	return nil
}

// SeedData seeds initial data after migration
func SeedData(db *gorm.DB) error {
	return NewSeeder(db).Run()
}
