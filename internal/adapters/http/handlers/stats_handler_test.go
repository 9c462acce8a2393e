package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"uni-egresados/internal/adapters/persistence/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsRequiresSession(t *testing.T) {
	app, _, _ := setupTestApp(t)

	resp := doJSON(t, app, "GET", "/api/stats", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStatsCounters(t *testing.T) {
	app, db, cfg := setupTestApp(t)
	admin := createUser(t, db, "admin@uni.edu.pe", "Admin12345", models.RoleAdmin, false)
	token := accessTokenFor(t, cfg, admin, 0)

	employed := createGraduate(t, db, "11111111", "maria@uni.edu.pe", "Derecho", 2018)
	createGraduate(t, db, "22222222", "jose@uni.edu.pe", "Derecho", 2021)

	start := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Employment{
		Empresa: "Acme SAC", Cargo: "Analista", Sector: "Tecnología",
		FechaInicio: start, Actual: true, EgresadoID: employed.ID,
	}).Error)
	// Past jobs don't count as employed
	require.NoError(t, db.Create(&models.Employment{
		Empresa: "Antigua SAC", Cargo: "Practicante", Sector: "Tecnología",
		FechaInicio: start.AddDate(-2, 0, 0), Actual: false, EgresadoID: employed.ID,
	}).Error)

	require.NoError(t, db.Create(&models.Survey{Titulo: "Inserción laboral", Activa: true}).Error)
	closed := models.Survey{Titulo: "Cerrada"}
	require.NoError(t, db.Create(&closed).Error)
	// Activa has a DB default of true, so flip it explicitly
	require.NoError(t, db.Model(&closed).Update("activa", false).Error)

	require.NoError(t, db.Create(&models.Event{Titulo: "Feria laboral", Fecha: time.Now().AddDate(0, 1, 0)}).Error)
	require.NoError(t, db.Create(&models.Event{Titulo: "Pasado", Fecha: time.Now().AddDate(0, -1, 0)}).Error)

	resp := doJSON(t, app, "GET", "/api/stats", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(2), body["totalEgresados"])
	assert.Equal(t, float64(1), body["empleados"])
	assert.Equal(t, float64(1), body["encuestas"])
	assert.Equal(t, float64(1), body["eventos"])
}

func TestStatsDegradesToZeroes(t *testing.T) {
	app, db, cfg := setupTestApp(t)
	admin := createUser(t, db, "admin@uni.edu.pe", "Admin12345", models.RoleAdmin, false)
	token := accessTokenFor(t, cfg, admin, 0)
	createGraduate(t, db, "12345678", "ana@uni.edu.pe", "Derecho", 2020)

	// A broken query must not break the dashboard
	require.NoError(t, db.Migrator().DropTable(&models.Survey{}))

	resp := doJSON(t, app, "GET", "/api/stats", nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, float64(0), body["totalEgresados"])
	assert.Equal(t, float64(0), body["empleados"])
	assert.Equal(t, float64(0), body["encuestas"])
	assert.Equal(t, float64(0), body["eventos"])
}
