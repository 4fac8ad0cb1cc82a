package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"blood-connect/internal/apperrors"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewErrorHandler maps service errors onto HTTP statuses and writes the
// failure envelope. Conflicts are reported as 400.
func NewErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, message := classify(err)

		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Any("request_id", c.Locals(RequestIDKey)),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(ErrorResponse{
			Success: false,
			Error:   message,
		})
	}
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		return fe.Code, fe.Message
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrConflict):
		return fiber.StatusBadRequest, apperrors.Message(err)
	case errors.Is(err, apperrors.ErrNotFound):
		return fiber.StatusNotFound, apperrors.Message(err)
	case errors.Is(err, apperrors.ErrForbidden):
		return fiber.StatusForbidden, apperrors.Message(err)
	case errors.Is(err, apperrors.ErrUnauthorized):
		return fiber.StatusUnauthorized, apperrors.Message(err)
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}
