package handlers

import (
	"customerhub/internal/adapters/http/middleware"
	"customerhub/internal/core/domain"
	"customerhub/internal/core/services"
	"customerhub/internal/pkg/pagination"
	"customerhub/internal/pkg/response"
	"customerhub/internal/pkg/validate"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	service *services.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// AverageAge returns the average age across all customers
// @Summary Average customer age
// @Description Returns the average age across all customers
// @Tags Customer
// @Produce json
// @Success 200 {object} response.Response
// @Router /customer/averageAge [get]
func (h *CustomerHandler) AverageAge(c *fiber.Ctx) error {
	avg, err := h.service.AverageAge(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to compute average age")
	}

	return response.Success(c, fiber.Map{"averageAge": avg})
}

// Between18And40 lists customers aged 18 to 40 inclusive
// @Summary Customers aged 18-40
// @Description Returns customers whose age is between 18 and 40 inclusive
// @Tags Customer
// @Produce json
// @Success 200 {object} response.Response
// @Router /customer/between18And40 [get]
func (h *CustomerHandler) Between18And40(c *fiber.Ctx) error {
	customers, err := h.service.Between18And40(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list customers")
	}

	return response.Success(c, customers)
}

// GetByID returns a customer by id
// @Summary Get customer
// @Description Returns a customer's details by id
// @Tags Customer
// @Produce json
// @Param id path int true "Customer ID"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} map[string]string
// @Router /customer/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequestFields(c, map[string]string{"id": "invalid id"})
	}

	customer, err := h.service.GetByID(c.Context(), uint(id))
	if err != nil {
		if fieldErr, ok := domain.AsFieldValidationError(err); ok {
			return response.BadRequestFields(c, fieldErr.Fields)
		}
		return response.InternalServerError(c, "Failed to get customer")
	}

	return response.Success(c, customer)
}

// List lists customers with pagination
// @Summary List customers
// @Description Returns a page of customers
// @Tags Customer
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /customer [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	customers, total, err := h.service.ListCustomers(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list customers")
	}

	return response.Success(c, pagination.NewPage(customers, params, total))
}

// Edit applies a partial update to a customer
// @Summary Edit customer
// @Description Updates the non-null fields of an existing customer. When an
// @Description admin edits their own record a fresh token is returned.
// @Tags Customer
// @Accept json
// @Produce json
// @Param body body services.EditCustomerInput true "Customer update"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} map[string]string
// @Router /customer [put]
func (h *CustomerHandler) Edit(c *fiber.Ctx) error {
	var input services.EditCustomerInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequestFields(c, map[string]string{"body": "Invalid request body"})
	}

	if fields := validate.Struct(&input); fields != nil {
		return response.BadRequestFields(c, fields)
	}

	principal, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	newToken, err := h.service.Edit(c.Context(), &input, principal)
	if err != nil {
		if fieldErr, ok := domain.AsFieldValidationError(err); ok {
			return response.BadRequestFields(c, fieldErr.Fields)
		}
		return response.InternalServerError(c, "Failed to edit customer")
	}

	if newToken != "" {
		return response.Success(c, fiber.Map{"newToken": newToken})
	}
	return response.Success(c, nil)
}

// Delete removes a customer by id
// @Summary Delete customer
// @Description Deletes a customer by id
// @Tags Customer
// @Produce json
// @Param id path int true "Customer ID"
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 400 {object} map[string]string
// @Router /customer/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return response.BadRequestFields(c, map[string]string{"id": "invalid id"})
	}

	if err := h.service.Delete(c.Context(), uint(id)); err != nil {
		if fieldErr, ok := domain.AsFieldValidationError(err); ok {
			return response.BadRequestFields(c, fieldErr.Fields)
		}
		return response.InternalServerError(c, "Failed to delete customer")
	}

	return response.Success(c, nil)
}
