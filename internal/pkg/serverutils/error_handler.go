package serverutils

import (
	"errors"

	"ai-quickdoc-be/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware converts taxonomy errors into the HTTP contract.
// Upstream provider messages stay in the logs; the body only ever carries
// the generic text.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if errors.Is(err, apperrors.ErrInvalidRequest) {
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse("Bad Request"))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal Server Error"))
	}
}
