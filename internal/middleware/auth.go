package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/apperrors"
	"blood-connect/internal/domain"
	"blood-connect/internal/service/auth"
)

const IdentityKey = "identity"

// OptionalAuth resolves the caller when a valid bearer token is sent.
// Missing or invalid tokens leave the request anonymous.
func OptionalAuth(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if identity, err := resolveIdentity(c, authService); err == nil {
			c.Locals(IdentityKey, identity)
		}
		return c.Next()
	}
}

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := resolveIdentity(c, authService)
		if err != nil {
			return err
		}
		c.Locals(IdentityKey, identity)
		return c.Next()
	}
}

// GetIdentity returns the authenticated caller or nil.
func GetIdentity(c *fiber.Ctx) *domain.Identity {
	identity, ok := c.Locals(IdentityKey).(*domain.Identity)
	if !ok {
		return nil
	}
	return identity
}

func resolveIdentity(c *fiber.Ctx, authService auth.Service) (*domain.Identity, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return nil, apperrors.ErrUnauthorized
	}

	token, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || token == "" {
		return nil, apperrors.ErrInvalidToken
	}

	claims, err := authService.ValidateAccessToken(token)
	if err != nil {
		return nil, err
	}

	user, err := authService.GetUserByID(c.UserContext(), claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	return user.Identity(), nil
}
