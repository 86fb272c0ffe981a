package examValidator

import (
	"strings"

	"ieltsprep/middleware"

	"github.com/gofiber/fiber/v2"
)

// CreateSection validates the exam section creation request
func CreateSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ExamSessionID uint   `json:"exam_session_id"`
			SkillSlug     string `json:"skill_slug"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.ExamSessionID == 0 {
			errors["exam_session_id"] = "exam_session_id is required!"
		}
		if strings.TrimSpace(reqData.SkillSlug) == "" {
			errors["skill_slug"] = "skill_slug is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// AddAnswer validates the exam answer submission request
func AddAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ExamSessionID   uint `json:"exam_session_id"`
			SectionResultID uint `json:"section_result_id"`
			QuestionID      uint `json:"question_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.ExamSessionID == 0 {
			errors["exam_session_id"] = "exam_session_id is required!"
		}
		if reqData.SectionResultID == 0 {
			errors["section_result_id"] = "section_result_id is required!"
		}
		if reqData.QuestionID == 0 {
			errors["question_id"] = "question_id is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		return c.Next()
	}
}

// CompleteSection validates the section completion request
func CompleteSection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			TotalQuestions   int  `json:"total_questions"`
			TimeTakenSeconds *int `json:"time_taken_seconds"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.TotalQuestions < 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "total_questions must not be negative!", nil)
		}

		return c.Next()
	}
}
