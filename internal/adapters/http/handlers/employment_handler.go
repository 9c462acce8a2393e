package handlers

import (
	"errors"
	"strings"
	"time"

	"uni-egresados/internal/adapters/persistence/models"
	"uni-egresados/internal/core/services"
	"uni-egresados/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmploymentHandler handles employment record endpoints
type EmploymentHandler struct {
	employmentService *services.EmploymentService
}

// NewEmploymentHandler creates a new employment handler
func NewEmploymentHandler(employmentService *services.EmploymentService) *EmploymentHandler {
	return &EmploymentHandler{employmentService: employmentService}
}

// CreateEmploymentRequest represents employment creation request body
type CreateEmploymentRequest struct {
	Empresa     string   `json:"empresa"`
	Cargo       string   `json:"cargo"`
	Sector      string   `json:"sector"`
	FechaInicio string   `json:"fechaInicio"`
	FechaFin    string   `json:"fechaFin"`
	Salario     *float64 `json:"salario"`
	Actual      bool     `json:"actual"`
	EgresadoID  uint     `json:"egresadoId"`
}

// Create handles employment creation
// @Summary Create employment
// @Description Create an employment entry; a "current" entry clears the flag on the graduate's other entries first
// @Tags Empleos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateEmploymentRequest true "Employment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /empleos [post]
func (h *EmploymentHandler) Create(c *fiber.Ctx) error {
	var req CreateEmploymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if len(strings.TrimSpace(req.Empresa)) < 2 {
		return response.BadRequest(c, "Empresa debe tener al menos 2 caracteres")
	}
	if len(strings.TrimSpace(req.Cargo)) < 2 {
		return response.BadRequest(c, "Cargo debe tener al menos 2 caracteres")
	}
	if strings.TrimSpace(req.Sector) == "" {
		return response.BadRequest(c, "Seleccione un sector")
	}
	if req.EgresadoID == 0 {
		return response.BadRequest(c, "egresadoId es requerido")
	}

	fechaInicio, err := parseDate(req.FechaInicio)
	if err != nil {
		return response.BadRequest(c, "Fecha de inicio inválida")
	}

	var fechaFin *time.Time
	if req.FechaFin != "" {
		parsed, err := parseDate(req.FechaFin)
		if err != nil {
			return response.BadRequest(c, "Fecha de fin inválida")
		}
		fechaFin = &parsed
	}

	// Graduates may only register their own employment; admins may
	// register anyone's.
	if role, _ := c.Locals("role").(string); role != models.RoleAdmin {
		egresadoID, _ := c.Locals("egresadoID").(uint)
		if egresadoID != req.EgresadoID {
			return response.Forbidden(c, "You don't have permission to access this resource")
		}
	}

	input := &services.CreateEmploymentInput{
		Empresa:     strings.TrimSpace(req.Empresa),
		Cargo:       strings.TrimSpace(req.Cargo),
		Sector:      strings.TrimSpace(req.Sector),
		FechaInicio: fechaInicio,
		FechaFin:    fechaFin,
		Salario:     req.Salario,
		Actual:      req.Actual,
		EgresadoID:  req.EgresadoID,
	}

	employment, err := h.employmentService.Create(c.Context(), input)
	if err != nil {
		if errors.Is(err, services.ErrGraduateNotFound) {
			return response.NotFound(c, "Egresado no encontrado")
		}
		return response.InternalServerError(c, "Error al crear empleo")
	}

	return response.Created(c, "Empleo registrado correctamente", employment)
}

// parseDate accepts "2006-01-02" or RFC3339 timestamps
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
