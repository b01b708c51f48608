package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stakeholder-rag-be/internal/apperrors"
)

// ErrorHandlerMiddleware converts domain errors into JSON responses with the
// appropriate status code. Fiber errors keep their own status.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(Response{
				Status:  "error",
				Message: fiberErr.Message,
			})
		}

		status := fiber.StatusInternalServerError
		message := "internal server error"

		var appErr *apperrors.Error
		if errors.As(err, &appErr) {
			message = appErr.Message
			switch appErr.Kind {
			case apperrors.KindNotFound:
				status = fiber.StatusNotFound
			case apperrors.KindIngestion:
				status = fiber.StatusUnprocessableEntity
			case apperrors.KindRetrieval, apperrors.KindGeneration:
				status = fiber.StatusBadGateway
			}
		}

		return ctx.Status(status).JSON(Response{
			Status:  "error",
			Message: message,
		})
	}
}
