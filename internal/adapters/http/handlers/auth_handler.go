package handlers

import (
	"customerhub/internal/core/domain"
	"customerhub/internal/core/services"
	"customerhub/internal/pkg/response"
	"customerhub/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	service *services.CustomerService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service *services.CustomerService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Register handles customer registration
// @Summary Register new customer
// @Description Register a new customer account
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.RegisterInput true "Registration data"
// @Success 201
// @Failure 400 {object} map[string]string
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input services.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequestFields(c, map[string]string{"body": "Invalid request body"})
	}

	if fields := validate.Struct(&input); fields != nil {
		return response.BadRequestFields(c, fields)
	}

	if err := h.service.Register(c.Context(), &input); err != nil {
		if fieldErr, ok := domain.AsFieldValidationError(err); ok {
			return response.BadRequestFields(c, fieldErr.Fields)
		}
		return response.InternalServerError(c, "Failed to register customer")
	}

	return response.Created(c)
}

// Login handles customer login
// @Summary Login customer
// @Description Authenticate a customer and return a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body services.LoginInput true "Login credentials"
// @Success 200 {object} response.Response
// @Failure 400 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input services.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequestFields(c, map[string]string{"body": "Invalid request body"})
	}

	if fields := validate.Struct(&input); fields != nil {
		return response.BadRequestFields(c, fields)
	}

	tok, err := h.service.Login(c.Context(), &input)
	if err != nil {
		if fieldErr, ok := domain.AsFieldValidationError(err); ok {
			return response.BadRequestFields(c, fieldErr.Fields)
		}
		return response.InternalServerError(c, "Failed to login")
	}

	return response.Success(c, fiber.Map{"token": tok})
}
