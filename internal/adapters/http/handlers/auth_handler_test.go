package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"uni-egresados/internal/adapters/persistence/models"
	"uni-egresados/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginSuccess(t *testing.T) {
	app, db, _ := setupTestApp(t)
	graduate := createGraduate(t, db, "12345678", "ana@uni.edu.pe", "Ingeniería de Sistemas", 2020)

	resp := doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"email":    "ana@uni.edu.pe",
		"password": "12345678", // initial password = DNI
	}, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["access_token"])

	user := data["user"].(map[string]interface{})
	assert.Equal(t, "ana@uni.edu.pe", user["email"])
	assert.Equal(t, models.RoleGraduate, user["rol"])
	assert.Equal(t, true, user["mustChangePassword"])
	assert.Equal(t, float64(graduate.ID), user["egresadoId"])
}

func TestLoginInvalidCredentials(t *testing.T) {
	app, db, _ := setupTestApp(t)
	createUser(t, db, "admin@uni.edu.pe", "Admin12345", models.RoleAdmin, false)

	// Wrong password and unknown email yield the same external shape
	resp := doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"email":    "admin@uni.edu.pe",
		"password": "wrong-password",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	wrongPassword := decodeBody(t, resp)

	resp = doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"email":    "nobody@uni.edu.pe",
		"password": "Admin12345",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	unknownEmail := decodeBody(t, resp)

	assert.Equal(t, wrongPassword["error"], unknownEmail["error"])
}

func TestCambiarPasswordRequiresSession(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp := doJSON(t, app, "POST", "/api/auth/cambiar-password", fiber.Map{
		"passwordActual":    "Abcd1234",
		"passwordNueva":     "Nueva1234",
		"confirmarPassword": "Nueva1234",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCambiarPasswordValidation(t *testing.T) {
	app, db, cfg := setupTestApp(t)
	user := createUser(t, db, "ana@uni.edu.pe", "Abcd1234", models.RoleGraduate, true)
	token := accessTokenFor(t, cfg, user, 0)

	tests := []struct {
		name string
		body fiber.Map
	}{
		{"policy: no uppercase", fiber.Map{
			"passwordActual": "Abcd1234", "passwordNueva": "abcd1234", "confirmarPassword": "abcd1234",
		}},
		{"policy: no digit", fiber.Map{
			"passwordActual": "Abcd1234", "passwordNueva": "Abcdefgh", "confirmarPassword": "Abcdefgh",
		}},
		{"policy: too short", fiber.Map{
			"passwordActual": "Abcd1234", "passwordNueva": "Ab1", "confirmarPassword": "Ab1",
		}},
		{"confirmation mismatch", fiber.Map{
			"passwordActual": "Abcd1234", "passwordNueva": "Nueva1234", "confirmarPassword": "Otra1234",
		}},
		{"wrong current password", fiber.Map{
			"passwordActual": "Wrong1234", "passwordNueva": "Nueva1234", "confirmarPassword": "Nueva1234",
		}},
		{"new equals current", fiber.Map{
			"passwordActual": "Abcd1234", "passwordNueva": "Abcd1234", "confirmarPassword": "Abcd1234",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, app, "POST", "/api/auth/cambiar-password", tt.body, token)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	// Nothing was written along the way
	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.True(t, stored.MustChangePassword)
	assert.True(t, password.Verify("Abcd1234", stored.Password))
}

func TestCambiarPasswordSuccess(t *testing.T) {
	app, db, cfg := setupTestApp(t)
	user := createUser(t, db, "ana@uni.edu.pe", "Abcd1234", models.RoleGraduate, true)
	token := accessTokenFor(t, cfg, user, 0)

	resp := doJSON(t, app, "POST", "/api/auth/cambiar-password", fiber.Map{
		"passwordActual":    "Abcd1234",
		"passwordNueva":     "Nueva1234",
		"confirmarPassword": "Nueva1234",
	}, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// The new hash is persisted and the forced-change flag cleared
	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.False(t, stored.MustChangePassword)
	assert.True(t, password.Verify("Nueva1234", stored.Password))
	assert.False(t, password.Verify("Abcd1234", stored.Password))
}

func TestCambiarPasswordRevokesSessions(t *testing.T) {
	app, db, _ := setupTestApp(t)
	createUser(t, db, "ana@uni.edu.pe", "Abcd1234", models.RoleGraduate, false)

	resp := doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"email":    "ana@uni.edu.pe",
		"password": "Abcd1234",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "refresh_token" {
			refreshCookie = cookie
		}
	}
	require.NotNil(t, refreshCookie)

	loginBody := decodeBody(t, resp)
	token := loginBody["data"].(map[string]interface{})["access_token"].(string)

	resp = doJSON(t, app, "POST", "/api/auth/cambiar-password", fiber.Map{
		"passwordActual":    "Abcd1234",
		"passwordNueva":     "Nueva1234",
		"confirmarPassword": "Nueva1234",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Refresh tokens issued under the old password are revoked
	req := httptest.NewRequest("POST", "/api/auth/refresh", nil)
	req.AddCookie(refreshCookie)
	refreshResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, refreshResp.StatusCode)
}

func TestRefreshTokenRotation(t *testing.T) {
	app, db, _ := setupTestApp(t)
	createUser(t, db, "admin@uni.edu.pe", "Admin12345", models.RoleAdmin, false)

	resp := doJSON(t, app, "POST", "/api/auth/login", fiber.Map{
		"email":    "admin@uni.edu.pe",
		"password": "Admin12345",
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var refreshCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "refresh_token" {
			refreshCookie = cookie
		}
	}
	require.NotNil(t, refreshCookie)

	// First refresh succeeds
	req := httptest.NewRequest("POST", "/api/auth/refresh", nil)
	req.AddCookie(refreshCookie)
	refreshResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, refreshResp.StatusCode)

	// Replaying the rotated-out token fails
	req = httptest.NewRequest("POST", "/api/auth/refresh", nil)
	req.AddCookie(refreshCookie)
	replayResp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, replayResp.StatusCode)
}
