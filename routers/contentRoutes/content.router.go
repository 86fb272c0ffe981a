package contentRoutes

import (
	contentController "ieltsprep/controllers/content"

	"github.com/gofiber/fiber/v2"
)

// SetupContentRoutes registers the public catalog endpoints. Catalog reads
// carry no user identity so none of these routes take the identity middleware.
func SetupContentRoutes(app *fiber.App, ctl *contentController.ContentController) {
	apiGroup := app.Group("/api")

	apiGroup.Get("/skills", ctl.ListSkills)
	apiGroup.Get("/skills/:slug/practice-sets", ctl.SkillPracticeSets)
	apiGroup.Get("/practice-sets/:id", ctl.GetPracticeSet)
	apiGroup.Get("/practice-sets/:id/questions", ctl.PracticeSetQuestions)
}
