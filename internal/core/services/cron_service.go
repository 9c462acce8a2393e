package services

import (
	"context"
	"log"

	"uni-egresados/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs scheduled maintenance jobs
type CronService struct {
	refreshTokenRepo repositories.RefreshTokenRepository
	cron             *cron.Cron
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	return &CronService{
		refreshTokenRepo: repositories.NewRefreshTokenRepository(db),
		cron:             cron.New(),
	}
}

// Start schedules the daily expired-token purge (03:00)
func (s *CronService) Start() {
	if _, err := s.cron.AddFunc("0 3 * * *", s.PurgeExpiredTokens); err != nil {
		log.Printf("❌ Failed to schedule token purge: %v", err)
		return
	}
	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the scheduler and waits for a running job to finish
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 CronService stopped")
}

// PurgeExpiredTokens deletes refresh tokens past their expiry. Revoked
// rows inside their window are kept so replayed tokens keep failing
// with a revocation, not a miss.
func (s *CronService) PurgeExpiredTokens() {
	if err := s.refreshTokenRepo.DeleteExpired(context.Background()); err != nil {
		log.Printf("❌ Expired token purge failed: %v", err)
		return
	}
	log.Println("🧹 Expired refresh tokens purged")
}
