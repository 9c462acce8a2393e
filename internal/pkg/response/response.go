package response

import "github.com/gofiber/fiber/v2"

// Response is the envelope every JSON endpoint replies with. Success
// bodies carry message and data; error bodies carry only the error
// string the UI shows as-is.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func ok(message string, data interface{}) Response {
	return Response{Success: true, Message: message, Data: data}
}

// Success sends a 200 response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(ok(message, data))
}

// Created sends a 201 response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(ok(message, data))
}

// Error sends an error response with the given status code
func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Response{Error: message})
}

// BadRequest sends a 400 response; validation and duplicate-key
// rejections all land here
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// InternalServerError sends a 500 response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
