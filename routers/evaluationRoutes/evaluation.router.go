package evaluationRoutes

import (
	evaluationController "ieltsprep/controllers/evaluation"
	evaluationValidator "ieltsprep/validators/evaluation"

	"github.com/gofiber/fiber/v2"
)

func SetupEvaluationRoutes(app *fiber.App, ctl *evaluationController.EvaluationController, identity fiber.Handler) {
	writingGroup := app.Group("/api/writing-eval", identity)
	writingGroup.Post("/practice/:answerId", evaluationValidator.TargetBand(), ctl.EvaluateWritingPractice)
	writingGroup.Post("/exam/:answerId", evaluationValidator.TargetBand(), ctl.EvaluateWritingExam)

	speakingGroup := app.Group("/api", identity)
	speakingGroup.Post("/speaking-attempts", evaluationValidator.CreateSpeakingAttempt(), ctl.CreateSpeakingAttempt)
	speakingGroup.Post("/speaking-eval/:attemptId", evaluationValidator.TargetBand(), ctl.EvaluateSpeaking)
}
