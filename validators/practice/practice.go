package practiceValidator

import (
	"ieltsprep/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateSession validates the practice session creation request
func CreateSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PracticeSetID uint `json:"practice_set_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.PracticeSetID == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "practice_set_id required!", nil)
		}

		return c.Next()
	}
}

// AddAnswer validates the answer submission request
func AddAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			QuestionID uint   `json:"question_id"`
			OptionID   *uint  `json:"option_id"`
			AnswerText string `json:"answer_text"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.QuestionID == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "question_id required!", nil)
		}

		return c.Next()
	}
}
