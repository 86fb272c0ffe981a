package profileValidator

import (
	"ieltsprep/middleware"

	"github.com/gofiber/fiber/v2"
)

// PatchMe validates the profile patch request
func PatchMe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			FullName  *string  `json:"full_name"`
			BandGoal  *float64 `json:"band_goal"`
			AvatarURL *string  `json:"avatar_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.BandGoal != nil && (*reqData.BandGoal < 0 || *reqData.BandGoal > 9) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "band_goal must be between 0 and 9!", nil)
		}

		return c.Next()
	}
}
