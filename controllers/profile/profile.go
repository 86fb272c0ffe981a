package profileController

import (
	"ieltsprep/middleware"
	"ieltsprep/models"
	"ieltsprep/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProfileController serves the user profile plus the public help content.
type ProfileController struct {
	Profiles *services.ProfileService
	DB       *gorm.DB
}

func NewProfileController(profiles *services.ProfileService, db *gorm.DB) *ProfileController {
	return &ProfileController{Profiles: profiles, DB: db}
}

// GetMe returns the caller's profile, creating it on first access
func (ctl *ProfileController) GetMe(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	prof, err := ctl.Profiles.GetOrCreate(userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched!", prof)
}

// PatchMe updates the editable profile fields
func (ctl *ProfileController) PatchMe(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		FullName  *string  `json:"full_name"`
		BandGoal  *float64 `json:"band_goal"`
		AvatarURL *string  `json:"avatar_url"`
		Email     *string  `json:"email"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	prof, err := ctl.Profiles.Update(userID, services.ProfilePatch{
		FullName:  reqData.FullName,
		BandGoal:  reqData.BandGoal,
		AvatarURL: reqData.AvatarURL,
		Email:     reqData.Email,
	})
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated!", prof)
}

// GetFaqs lists help entries ordered for display
func (ctl *ProfileController) GetFaqs(c *fiber.Ctx) error {
	var faqs []models.FAQ
	if err := ctl.DB.Order("sort_order").Find(&faqs).Error; err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "FAQs fetched!", faqs)
}

// GetTestimonials lists marketing quotes ordered for display
func (ctl *ProfileController) GetTestimonials(c *fiber.Ctx) error {
	var testimonials []models.Testimonial
	if err := ctl.DB.Order("sort_order").Find(&testimonials).Error; err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Testimonials fetched!", testimonials)
}
