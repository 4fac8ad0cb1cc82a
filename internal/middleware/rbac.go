package middleware

import (
	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/apperrors"
	"blood-connect/internal/domain"
)

// RequireRole must run after AuthRequired.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := GetIdentity(c)
		if identity == nil {
			return apperrors.ErrUnauthorized
		}
		if identity.Role != role {
			return apperrors.Forbidden("insufficient permissions for this operation")
		}
		return c.Next()
	}
}

func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
