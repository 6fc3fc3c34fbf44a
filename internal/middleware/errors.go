package middleware

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/tunebox/tunebox/internal/apperr"
)

const internalErrorMessage = "internal server error"

// ErrorHandler renders every handler error as {"detail": "..."}. Typed
// application errors keep their status and message, Fiber errors keep theirs,
// and anything else collapses to a generic 500 so no internal detail leaks.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if e, ok := apperr.As(err); ok {
			return c.Status(e.Status()).JSON(fiber.Map{"detail": e.Message()})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"detail": fe.Message})
		}

		requestID, _ := c.Locals(requestIDHeader).(string)
		logger.Error("unhandled error",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("request_id", requestID),
			slog.Any("error", err),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": internalErrorMessage})
	}
}
