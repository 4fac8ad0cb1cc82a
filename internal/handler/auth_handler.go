package handler

import (
	"github.com/gofiber/fiber/v2"

	"blood-connect/internal/domain"
	"blood-connect/internal/middleware"
	"blood-connect/internal/service/auth"
)

type AuthHandler struct {
	authService auth.Service
}

func NewAuthHandler(authService auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type refreshTokenInput struct {
	RefreshToken string `json:"refreshToken"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input domain.RegisterUserInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, tokens, err := h.authService.Register(c.Context(), input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, sessionPayload("User registered successfully", user, tokens))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input domain.LoginInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, tokens, err := h.authService.Login(c.Context(), input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, sessionPayload("Login successful", user, tokens))
}

func (h *AuthHandler) GoogleAuth(c *fiber.Ctx) error {
	var input domain.GoogleAuthInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, tokens, err := h.authService.GoogleAuth(c.Context(), input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, sessionPayload("Google authentication successful", user, tokens))
}

func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var input refreshTokenInput
	if err := parseBody(c, &input); err != nil {
		return err
	}
	if input.RefreshToken == "" {
		return middleware.BadRequest("Refresh token is required")
	}

	tokens, err := h.authService.RefreshToken(c.Context(), input.RefreshToken)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"token":        tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"expiresIn":    tokens.ExpiresIn,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var input refreshTokenInput
	if err := parseOptionalBody(c, &input); err != nil {
		return err
	}

	if input.RefreshToken != "" {
		if err := h.authService.Logout(c.Context(), input.RefreshToken); err != nil {
			return err
		}
	}

	return respond(c, fiber.StatusOK, fiber.Map{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	user, err := h.authService.GetUserByID(c.Context(), identity.UserID)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"user": user})
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.UpdateProfileInput
	if err := parseBody(c, &input); err != nil {
		return err
	}

	user, err := h.authService.UpdateProfile(c.Context(), identity.UserID, input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func sessionPayload(message string, user *domain.User, tokens *domain.TokenPair) fiber.Map {
	return fiber.Map{
		"message":      message,
		"user":         user,
		"token":        tokens.AccessToken,
		"refreshToken": tokens.RefreshToken,
		"expiresIn":    tokens.ExpiresIn,
	}
}
