package response

import "github.com/gofiber/fiber/v2"

// Response represents a standard API response envelope
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a success response
func Success(c *fiber.Ctx, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Data:    data,
	})
}

// Created sends a 201 created response with an empty body
func Created(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusCreated)
}

// FieldErrors sends a bare field→message map with the given status.
// Validation failures return the full map, never a single string.
func FieldErrors(c *fiber.Ctx, statusCode int, fields map[string]string) error {
	return c.Status(statusCode).JSON(fields)
}

// BadRequestFields sends a 400 response with a field→message map
func BadRequestFields(c *fiber.Ctx, fields map[string]string) error {
	return FieldErrors(c, fiber.StatusBadRequest, fields)
}

// Error sends an error response
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
	})
}

// BadRequest sends a 400 bad request response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 unauthorized response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 forbidden response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// InternalServerError sends a 500 internal server error response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
