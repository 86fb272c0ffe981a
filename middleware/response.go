package middleware

import (
	"errors"
	"log"

	"ieltsprep/ai"
	"ieltsprep/services"

	"github.com/gofiber/fiber/v2"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}

// ErrorResponse maps a service or bridge error onto the HTTP status taxonomy.
// Anything unrecognized is a generic 500 without leaking internals.
func ErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrBadRequest):
		return JsonResponse(c, fiber.StatusBadRequest, false, err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, err.Error(), nil)
	case errors.Is(err, services.ErrForbidden):
		return JsonResponse(c, fiber.StatusForbidden, false, err.Error(), nil)
	case errors.Is(err, services.ErrUpstream), errors.Is(err, ai.ErrUpstream), errors.Is(err, ai.ErrTimeout):
		return JsonResponse(c, fiber.StatusBadGateway, false, "External dependency failed!", nil)
	case errors.Is(err, ai.ErrInvalidResponse):
		// Raw model output is already logged by the bridge.
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Evaluation response could not be parsed!", nil)
	default:
		log.Printf("[ERROR] unhandled: %v", err)
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}
