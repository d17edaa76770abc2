package middleware

import (
	"errors"
	"strings"

	"customerhub/internal/adapters/persistence/repositories"
	"customerhub/internal/core/domain"
	"customerhub/internal/pkg/response"
	"customerhub/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// principalKey is the fiber Locals key holding the request principal
const principalKey = "principal"

// Authenticate resolves a bearer token to a request principal. It runs
// once per inbound request, before any role checks:
//   - no Authorization header or no Bearer prefix: pass through anonymous
//   - expired or malformed token: pass through anonymous
//   - token naming an unknown customer: short-circuit 401 with a
//     one-entry field map
//   - token valid for the resolved customer: set the request principal
func Authenticate(tokens *token.Service, customers repositories.CustomerRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Next()
		}

		raw := strings.TrimPrefix(authHeader, "Bearer ")
		username, err := tokens.ExtractUsername(raw)
		if err != nil || username == "" {
			// Malformed tokens error, expired ones come back empty.
			// Either way the request continues unauthenticated.
			return c.Next()
		}

		if _, ok := CurrentPrincipal(c); ok {
			return c.Next()
		}

		customer, err := customers.GetByUsername(c.Context(), username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.FieldErrors(c, fiber.StatusUnauthorized, map[string]string{
					"username": "not found",
				})
			}
			return c.Next()
		}

		principal := domain.NewPrincipal(customer.Username, customer.Role.Name)
		if tokens.IsValid(raw, principal.Username) {
			c.Locals(principalKey, principal)
		}

		return c.Next()
	}
}

// CurrentPrincipal returns the authenticated principal for this
// request, if any.
func CurrentPrincipal(c *fiber.Ctx) (domain.Principal, bool) {
	principal, ok := c.Locals(principalKey).(domain.Principal)
	return principal, ok
}

// RequireRole creates role-based authorization middleware
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			return response.Unauthorized(c, "Authentication required")
		}

		for _, role := range allowedRoles {
			if principal.HasRole(role) {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the ADMIN role
func AdminOnly() fiber.Handler {
	return RequireRole("ADMIN")
}
