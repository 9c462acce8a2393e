package services

import (
	"path/filepath"
	"testing"
	"time"

	"uni-egresados/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

func TestPurgeExpiredTokens(t *testing.T) {
	db := newTestDB(t)

	user := models.User{Email: "ana@uni.edu.pe", Password: "x", Role: models.RoleGraduate}
	require.NoError(t, db.Create(&user).Error)

	now := time.Now()
	revokedAt := now.Add(-time.Hour)
	seed := []models.RefreshToken{
		{UserID: user.ID, TokenHash: "expired", ExpiresAt: now.Add(-time.Hour)},
		{UserID: user.ID, TokenHash: "live", ExpiresAt: now.Add(time.Hour)},
		{UserID: user.ID, TokenHash: "revoked-live", ExpiresAt: now.Add(time.Hour), RevokedAt: &revokedAt},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	NewCronService(db).PurgeExpiredTokens()

	var remaining []models.RefreshToken
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)

	hashes := []string{remaining[0].TokenHash, remaining[1].TokenHash}
	assert.Contains(t, hashes, "live")
	// Revoked rows inside their window survive the purge
	assert.Contains(t, hashes, "revoked-live")
}
