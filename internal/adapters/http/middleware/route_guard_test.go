package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"uni-egresados/internal/config"
	"uni-egresados/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func guardTestConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "guard_test_secret",
			RefreshSecret:    "guard_test_refresh",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func guardTestApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(RouteGuard(cfg))

	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	app.Get("/", ok)
	app.Get(LoginPath, ok)
	app.Get(AdminHomePath, ok)
	app.Get("/egresados", ok)
	app.Get(GraduateHomePath, ok)
	app.Get(ChangePasswordPath, ok)
	app.Get("/api/ping", ok)

	return app
}

func requestAs(t *testing.T, app *fiber.App, cfg *config.Config, path, role string, mustChange bool) *http.Response {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	if role != "" {
		token, err := jwt.GenerateAccessToken(1, "user@uni.edu.pe", role, 1, mustChange, cfg.JWT.Secret, 15)
		assert.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req)
	assert.NoError(t, err)
	return resp
}

func TestGuardRedirectsAnonymousFromProtected(t *testing.T) {
	cfg := guardTestConfig()
	app := guardTestApp(cfg)

	for _, path := range []string{"/dashboard", "/egresados", "/perfil"} {
		resp := requestAs(t, app, cfg, path, "", false)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode, path)
		assert.Equal(t, LoginPath, resp.Header.Get("Location"), path)
	}

	// Login page itself stays reachable
	resp := requestAs(t, app, cfg, LoginPath, "", false)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGuardRedirectsAuthenticatedFromLogin(t *testing.T) {
	cfg := guardTestConfig()
	app := guardTestApp(cfg)

	resp := requestAs(t, app, cfg, LoginPath, "ADMIN", false)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, AdminHomePath, resp.Header.Get("Location"))

	resp = requestAs(t, app, cfg, LoginPath, "GRADUATE", false)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, GraduateHomePath, resp.Header.Get("Location"))

	// Pending password change wins over the role home
	resp = requestAs(t, app, cfg, LoginPath, "GRADUATE", true)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, ChangePasswordPath, resp.Header.Get("Location"))
}

func TestGuardForcesPasswordChange(t *testing.T) {
	cfg := guardTestConfig()
	app := guardTestApp(cfg)

	// Every protected page and the root redirect to the change page
	for _, path := range []string{"/dashboard", "/egresados", "/perfil", "/"} {
		resp := requestAs(t, app, cfg, path, "GRADUATE", true)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode, path)
		assert.Equal(t, ChangePasswordPath, resp.Header.Get("Location"), path)
	}

	// The change page itself is allowed
	resp := requestAs(t, app, cfg, ChangePasswordPath, "GRADUATE", true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGuardRedirectsFromChangePageOnceRotated(t *testing.T) {
	cfg := guardTestConfig()
	app := guardTestApp(cfg)

	resp := requestAs(t, app, cfg, ChangePasswordPath, "GRADUATE", false)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, GraduateHomePath, resp.Header.Get("Location"))

	resp = requestAs(t, app, cfg, ChangePasswordPath, "ADMIN", false)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, AdminHomePath, resp.Header.Get("Location"))
}

func TestGuardPassesAPIThrough(t *testing.T) {
	cfg := guardTestConfig()
	app := guardTestApp(cfg)

	// API paths are never redirected, with or without a session
	resp := requestAs(t, app, cfg, "/api/ping", "", false)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = requestAs(t, app, cfg, "/api/ping", "GRADUATE", true)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGuardIgnoresInvalidToken(t *testing.T) {
	cfg := guardTestConfig()
	app := guardTestApp(cfg)

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	assert.NoError(t, err)

	// Garbage token counts as no session
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, LoginPath, resp.Header.Get("Location"))
}
