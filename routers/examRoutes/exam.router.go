package examRoutes

import (
	examController "ieltsprep/controllers/exam"
	examValidator "ieltsprep/validators/exam"

	"github.com/gofiber/fiber/v2"
)

func SetupExamRoutes(app *fiber.App, ctl *examController.ExamController, identity fiber.Handler) {
	sessionGroup := app.Group("/api/exam-sessions", identity)
	sessionGroup.Post("/", ctl.CreateSession)
	sessionGroup.Post("/:id/complete", ctl.CompleteSession)

	sectionGroup := app.Group("/api/exam-sections", identity)
	sectionGroup.Post("/", examValidator.CreateSection(), ctl.CreateSection)
	sectionGroup.Post("/:id/complete", examValidator.CompleteSection(), ctl.CompleteSection)

	answerGroup := app.Group("/api/exam-answers", identity)
	answerGroup.Post("/", examValidator.AddAnswer(), ctl.AddAnswer)
}
