package premiumController

import (
	"strconv"

	"ieltsprep/middleware"
	"ieltsprep/services"

	"github.com/gofiber/fiber/v2"
)

// PremiumController runs the mock payment and subscription endpoints.
type PremiumController struct {
	Premium *services.PremiumService
}

func NewPremiumController(premium *services.PremiumService) *PremiumController {
	return &PremiumController{Premium: premium}
}

// ListPlans returns the purchasable plans
func (ctl *PremiumController) ListPlans(c *fiber.Ctx) error {
	plans, err := ctl.Premium.ListPlans()
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Plans fetched!", plans)
}

// CreatePaymentSession opens a mock checkout for a plan
func (ctl *PremiumController) CreatePaymentSession(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		PlanID uint `json:"plan_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	ps, err := ctl.Premium.CreatePaymentSession(userID, reqData.PlanID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment session created!", fiber.Map{
		"id":           ps.ID,
		"plan_id":      ps.PlanID,
		"amount_cents": ps.AmountCents,
		"currency":     ps.Currency,
		"status":       ps.Status,
	})
}

// ConfirmPaymentSession marks the checkout paid and grants premium
func (ctl *PremiumController) ConfirmPaymentSession(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	paymentID, err := parseID(c, "id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid payment session id!", nil)
	}

	sub, err := ctl.Premium.ConfirmPayment(userID, paymentID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment confirmed!", fiber.Map{
		"subscription": sub,
		"profile":      fiber.Map{"is_premium": true},
	})
}

// CurrentSubscription returns the latest subscription and premium state
func (ctl *PremiumController) CurrentSubscription(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sub, prof, err := ctl.Premium.CurrentSubscription(userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Subscription fetched!", fiber.Map{
		"subscription": sub,
		"profile": fiber.Map{
			"is_premium":    prof.IsPremium,
			"premium_until": prof.PremiumUntil,
		},
	})
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(raw), nil
}
