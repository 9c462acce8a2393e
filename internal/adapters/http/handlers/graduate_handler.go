package handlers

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"uni-egresados/internal/adapters/persistence/repositories"
	"uni-egresados/internal/core/services"
	"uni-egresados/internal/pkg/pagination"
	"uni-egresados/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

var (
	dniRegex   = regexp.MustCompile(`^\d{8}$`)
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// GraduateHandler handles graduate record endpoints
type GraduateHandler struct {
	graduateService *services.GraduateService
}

// NewGraduateHandler creates a new graduate handler
func NewGraduateHandler(graduateService *services.GraduateService) *GraduateHandler {
	return &GraduateHandler{graduateService: graduateService}
}

// CreateGraduateRequest represents graduate registration request body
type CreateGraduateRequest struct {
	Nombres    string `json:"nombres"`
	Apellidos  string `json:"apellidos"`
	DNI        string `json:"dni"`
	Email      string `json:"email"`
	Telefono   string `json:"telefono"`
	Linkedin   string `json:"linkedin"`
	Carrera    string `json:"carrera"`
	AnioEgreso int    `json:"anioEgreso"`
}

// UpdateGraduateRequest represents a partial profile update body.
// DNI and email are immutable through this endpoint.
type UpdateGraduateRequest struct {
	Nombres   *string `json:"nombres"`
	Apellidos *string `json:"apellidos"`
	Telefono  *string `json:"telefono"`
	Linkedin  *string `json:"linkedin"`
}

// List handles graduate listing with pagination and filters
// @Summary List graduates
// @Description List graduates with pagination, free-text search and carrera/anio filters
// @Tags Egresados
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Substring over nombres/apellidos/dni"
// @Param carrera query string false "Exact carrera filter"
// @Param anio query int false "Exact graduation year filter"
// @Success 200 {object} pagination.Response
// @Failure 401 {object} response.Response
// @Router /egresados [get]
func (h *GraduateHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	anio, _ := strconv.Atoi(c.Query("anio", "0"))
	filter := &repositories.GraduateFilter{
		Search:  strings.TrimSpace(c.Query("search")),
		Carrera: strings.TrimSpace(c.Query("carrera")),
		Anio:    anio,
	}

	graduates, total, err := h.graduateService.List(c.Context(), filter, params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Error al listar egresados")
	}

	return c.JSON(pagination.NewResponse(graduates, params, total))
}

// Create handles graduate registration
// @Summary Register graduate
// @Description Create a graduate and its login account (initial password = DNI, forced change on first login)
// @Tags Egresados
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateGraduateRequest true "Graduate data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /egresados [post]
func (h *GraduateHandler) Create(c *fiber.Ctx) error {
	var req CreateGraduateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if msg := validateGraduate(&req); msg != "" {
		return response.BadRequest(c, msg)
	}

	input := &services.CreateGraduateInput{
		Nombres:    strings.TrimSpace(req.Nombres),
		Apellidos:  strings.TrimSpace(req.Apellidos),
		DNI:        strings.TrimSpace(req.DNI),
		Email:      strings.TrimSpace(req.Email),
		Telefono:   strings.TrimSpace(req.Telefono),
		Linkedin:   strings.TrimSpace(req.Linkedin),
		Carrera:    strings.TrimSpace(req.Carrera),
		AnioEgreso: req.AnioEgreso,
	}

	graduate, err := h.graduateService.Create(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDNIAlreadyUsed):
			return response.BadRequest(c, "El DNI ya está registrado")
		case errors.Is(err, services.ErrEmailAlreadyUsed):
			return response.BadRequest(c, "El email ya está registrado")
		default:
			return response.InternalServerError(c, "Error al crear egresado")
		}
	}

	return response.Created(c, "Egresado registrado correctamente", graduate)
}

// GetByID handles fetching one graduate with its employment history
// @Summary Get graduate
// @Description Get a graduate with employment history ordered by start date descending
// @Tags Egresados
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Graduate ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /egresados/{id} [get]
func (h *GraduateHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid graduate ID")
	}

	graduate, err := h.graduateService.GetByID(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrGraduateNotFound) {
			return response.NotFound(c, "Egresado no encontrado")
		}
		return response.InternalServerError(c, "Error al obtener egresado")
	}

	return response.Success(c, "Egresado retrieved successfully", graduate)
}

// Update handles partial update of mutable profile fields
// @Summary Update graduate
// @Description Partial update of nombres/apellidos/telefono/linkedin
// @Tags Egresados
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Graduate ID"
// @Param body body UpdateGraduateRequest true "Mutable fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /egresados/{id} [put]
func (h *GraduateHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid graduate ID")
	}

	var req UpdateGraduateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Nombres != nil && len(strings.TrimSpace(*req.Nombres)) < 2 {
		return response.BadRequest(c, "Nombres debe tener al menos 2 caracteres")
	}
	if req.Apellidos != nil && len(strings.TrimSpace(*req.Apellidos)) < 2 {
		return response.BadRequest(c, "Apellidos debe tener al menos 2 caracteres")
	}

	input := &services.UpdateGraduateInput{
		Nombres:   req.Nombres,
		Apellidos: req.Apellidos,
		Telefono:  req.Telefono,
		Linkedin:  req.Linkedin,
	}

	graduate, err := h.graduateService.Update(c.Context(), uint(id), input)
	if err != nil {
		if errors.Is(err, services.ErrGraduateNotFound) {
			return response.NotFound(c, "Egresado no encontrado")
		}
		return response.InternalServerError(c, "Error al actualizar egresado")
	}

	return response.Success(c, "Egresado actualizado correctamente", graduate)
}

// validateGraduate validates the registration payload, returning an
// error message or "" when valid
func validateGraduate(req *CreateGraduateRequest) string {
	if len(strings.TrimSpace(req.Nombres)) < 2 {
		return "Nombres debe tener al menos 2 caracteres"
	}
	if len(strings.TrimSpace(req.Apellidos)) < 2 {
		return "Apellidos debe tener al menos 2 caracteres"
	}
	if !dniRegex.MatchString(strings.TrimSpace(req.DNI)) {
		return "DNI debe tener 8 dígitos"
	}
	if !emailRegex.MatchString(strings.TrimSpace(req.Email)) {
		return "Email inválido"
	}
	if linkedin := strings.TrimSpace(req.Linkedin); linkedin != "" && !strings.HasPrefix(linkedin, "http") {
		return "URL de LinkedIn inválida"
	}
	if strings.TrimSpace(req.Carrera) == "" {
		return "Seleccione una carrera"
	}
	if req.AnioEgreso < 2000 || req.AnioEgreso > time.Now().Year() {
		return "Año de egreso fuera de rango"
	}
	return ""
}
