package services

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"
)

// StatsService handles dashboard statistics
type StatsService struct {
	db *gorm.DB
}

// NewStatsService creates a new stats service
func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// StatsData represents dashboard statistics
type StatsData struct {
	TotalEgresados int64 `json:"totalEgresados"`
	Empleados      int64 `json:"empleados"`
	Encuestas      int64 `json:"encuestas"`
	Eventos        int64 `json:"eventos"`
}

// GetStats returns the dashboard counters. Failures are swallowed and
// surface as a zeroed payload so the dashboard never breaks on a bad
// query.
func (s *StatsService) GetStats(ctx context.Context) *StatsData {
	data := &StatsData{}

	if err := s.db.WithContext(ctx).Table("egresados").Count(&data.TotalEgresados).Error; err != nil {
		log.Printf("⚠️ Stats query failed: %v", err)
		return &StatsData{}
	}

	// Graduates holding a current job
	if err := s.db.WithContext(ctx).Table("empleos").
		Where("actual = ?", true).
		Distinct("egresado_id").
		Count(&data.Empleados).Error; err != nil {
		log.Printf("⚠️ Stats query failed: %v", err)
		return &StatsData{}
	}

	if err := s.db.WithContext(ctx).Table("encuestas").
		Where("activa = ?", true).
		Count(&data.Encuestas).Error; err != nil {
		log.Printf("⚠️ Stats query failed: %v", err)
		return &StatsData{}
	}

	if err := s.db.WithContext(ctx).Table("eventos").
		Where("fecha >= ?", time.Now()).
		Count(&data.Eventos).Error; err != nil {
		log.Printf("⚠️ Stats query failed: %v", err)
		return &StatsData{}
	}

	return data
}
