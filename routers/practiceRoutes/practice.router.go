package practiceRoutes

import (
	practiceController "ieltsprep/controllers/practice"
	practiceValidator "ieltsprep/validators/practice"

	"github.com/gofiber/fiber/v2"
)

func SetupPracticeRoutes(app *fiber.App, ctl *practiceController.PracticeController, identity fiber.Handler) {
	practiceGroup := app.Group("/api/practice-sessions", identity)

	practiceGroup.Post("/", practiceValidator.CreateSession(), ctl.CreateSession)
	practiceGroup.Get("/recent", ctl.RecentSessions)
	practiceGroup.Post("/:id/answers", practiceValidator.AddAnswer(), ctl.AddAnswer)
	practiceGroup.Post("/:id/complete", ctl.CompleteSession)
}
