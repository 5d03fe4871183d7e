package serverutils

import (
	"errors"

	"quiz-generation-be/internal/pkg/apperror"
	"quiz-generation-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware renders errors returned by downstream handlers as the
// standard envelope. Unknown errors become a 500 without leaking their text;
// the cause goes to log under the HTTP module.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := StatusFor(err)
		if code == fiber.StatusInternalServerError {
			log.Error("HTTP", "Unhandled request error", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err.Error(),
			})
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}

// StatusFor maps an error to its HTTP status and client-facing message.
func StatusFor(err error) (int, string) {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, apperror.ErrValidation), errors.Is(err, apperror.ErrInsufficientContext):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, apperror.ErrGenerationExhausted):
		return fiber.StatusBadGateway, err.Error()
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	}
	return fiber.StatusInternalServerError, "Internal server error"
}
