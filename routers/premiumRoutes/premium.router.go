package premiumRoutes

import (
	premiumController "ieltsprep/controllers/premium"
	premiumValidator "ieltsprep/validators/premium"

	"github.com/gofiber/fiber/v2"
)

func SetupPremiumRoutes(app *fiber.App, ctl *premiumController.PremiumController, identity fiber.Handler) {
	apiGroup := app.Group("/api")

	// Plan listing is public so the paywall page can render before sign-in
	apiGroup.Get("/plans", ctl.ListPlans)

	paymentGroup := app.Group("/api/payments", identity)
	paymentGroup.Post("/session", premiumValidator.CreatePaymentSession(), ctl.CreatePaymentSession)
	paymentGroup.Post("/session/:id/confirm", ctl.ConfirmPaymentSession)

	subscriptionGroup := app.Group("/api/subscriptions", identity)
	subscriptionGroup.Get("/current", ctl.CurrentSubscription)
}
