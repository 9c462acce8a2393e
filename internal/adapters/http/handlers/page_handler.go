package handlers

import "github.com/gofiber/fiber/v2"

// PageHandler serves the page routes the route guard decides over.
// The real UI is rendered by a separate frontend; these stubs exist so
// the guard's redirect table operates against real routes.
type PageHandler struct{}

// NewPageHandler creates a new page handler
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) page(name string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"page": name})
	}
}

// Login serves the login page
func (h *PageHandler) Login(c *fiber.Ctx) error {
	return h.page("login")(c)
}

// Dashboard serves the admin dashboard page
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	return h.page("dashboard")(c)
}

// Egresados serves the graduate list page
func (h *PageHandler) Egresados(c *fiber.Ctx) error {
	return h.page("egresados")(c)
}

// Perfil serves the graduate profile page
func (h *PageHandler) Perfil(c *fiber.Ctx) error {
	return h.page("perfil")(c)
}

// CambiarPassword serves the password change page
func (h *PageHandler) CambiarPassword(c *fiber.Ctx) error {
	return h.page("cambiar-password")(c)
}
