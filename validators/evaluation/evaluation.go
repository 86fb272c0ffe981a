package evaluationValidator

import (
	"ieltsprep/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

type speakingAttemptRequest struct {
	QuestionID      uint   `json:"question_id" validate:"required"`
	AudioPath       string `json:"audio_path" validate:"required"`
	DurationSeconds *int   `json:"duration_seconds" validate:"required,gte=0"`
	Mode            string `json:"mode" validate:"required,oneof=practice exam"`
	ExamSessionID   *uint  `json:"exam_session_id" validate:"required_if=Mode exam"`
}

// CreateSpeakingAttempt validates the speaking attempt upload request
func CreateSpeakingAttempt() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(speakingAttemptRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[fieldErr.Field()] = "failed on " + fieldErr.Tag()
			}
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "question_id, audio_path, duration_seconds, mode required!", errors)
		}

		return c.Next()
	}
}

type targetBandRequest struct {
	TargetBand *float64 `json:"target_band" validate:"omitempty,gte=0,lte=9"`
}

// TargetBand validates the optional target band of an evaluation trigger
func TargetBand() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(targetBandRequest)

		// Body is optional on evaluation triggers
		if err := c.BodyParser(reqData); err != nil {
			return c.Next()
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "target_band must be between 0 and 9!", nil)
		}

		return c.Next()
	}
}
