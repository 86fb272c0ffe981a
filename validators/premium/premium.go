package premiumValidator

import (
	"ieltsprep/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreatePaymentSession validates the checkout creation request
func CreatePaymentSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PlanID uint `json:"plan_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.PlanID == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "plan_id required!", nil)
		}

		return c.Next()
	}
}
