package profileRoutes

import (
	profileController "ieltsprep/controllers/profile"
	profileValidator "ieltsprep/validators/profile"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App, ctl *profileController.ProfileController, identity fiber.Handler) {
	apiGroup := app.Group("/api")

	// FAQ and testimonial content is public marketing material
	apiGroup.Get("/faqs", ctl.GetFaqs)
	apiGroup.Get("/testimonials", ctl.GetTestimonials)

	apiGroup.Get("/me", identity, ctl.GetMe)
	apiGroup.Patch("/me", identity, profileValidator.PatchMe(), ctl.PatchMe)
}
