package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"uni-egresados/internal/adapters/http/middleware"
	"uni-egresados/internal/adapters/http/routes"
	"uni-egresados/internal/adapters/persistence/models"
	"uni-egresados/internal/config"
	"uni-egresados/internal/pkg/jwt"
	"uni-egresados/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestApp builds a fresh app on a throwaway sqlite database
func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB, *config.Config) {
	t.Helper()

	cfg := &config.Config{
		AppMode: "dev",
		Port:    "3000",
		JWT: config.JWTConfig{
			Secret:           "test_secret",
			RefreshSecret:    "test_refresh_secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
		Cookie: config.CookieConfig{SameSite: "lax"},
	}
	config.AppConfig = cfg

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	routes.Setup(app, db, cfg)

	return app, db, cfg
}

// createUser seeds a login user with a bcrypt-hashed password
func createUser(t *testing.T, db *gorm.DB, email, plain, role string, mustChange bool) *models.User {
	t.Helper()

	hash, err := password.Hash(plain)
	require.NoError(t, err)

	user := &models.User{
		Email:              email,
		Password:           hash,
		Role:               role,
		MustChangePassword: mustChange,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// createGraduate seeds a graduate row linked to a fresh user
func createGraduate(t *testing.T, db *gorm.DB, dni, email, carrera string, anio int) *models.Graduate {
	t.Helper()

	user := createUser(t, db, email, dni, models.RoleGraduate, true)
	graduate := &models.Graduate{
		Nombres:    "Ana",
		Apellidos:  "Quispe",
		DNI:        dni,
		Email:      email,
		Carrera:    carrera,
		AnioEgreso: anio,
		UsuarioID:  user.ID,
	}
	require.NoError(t, db.Create(graduate).Error)
	return graduate
}

// accessTokenFor builds a valid session token for a seeded user
func accessTokenFor(t *testing.T, cfg *config.Config, user *models.User, egresadoID uint) string {
	t.Helper()

	token, err := jwt.GenerateAccessToken(
		user.ID, user.Email, user.Role, egresadoID, user.MustChangePassword,
		cfg.JWT.Secret, cfg.JWT.AccessTokenMins,
	)
	require.NoError(t, err)
	return token
}

// doJSON performs a JSON request against the app, optionally authenticated
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(encoded)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, int(5*time.Second/time.Millisecond))
	require.NoError(t, err)
	return resp
}

// decodeBody decodes a JSON response body into a map
func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}
