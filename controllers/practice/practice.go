package practiceController

import (
	"strconv"

	"ieltsprep/middleware"
	"ieltsprep/services"

	"github.com/gofiber/fiber/v2"
)

// PracticeController drives the practice session lifecycle.
type PracticeController struct {
	Sessions *services.SessionService
}

func NewPracticeController(sessions *services.SessionService) *PracticeController {
	return &PracticeController{Sessions: sessions}
}

// CreateSession starts a practice session on a set
func (ctl *PracticeController) CreateSession(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		PracticeSetID uint `json:"practice_set_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	started, err := ctl.Sessions.StartPractice(userID, reqData.PracticeSetID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Practice session started!", started)
}

// AddAnswer records one answer in an owned session
func (ctl *PracticeController) AddAnswer(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	sessionID, err := parseID(c, "id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session id!", nil)
	}

	reqData := new(struct {
		QuestionID uint   `json:"question_id"`
		OptionID   *uint  `json:"option_id"`
		AnswerText string `json:"answer_text"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	answer, err := ctl.Sessions.RecordPracticeAnswer(userID, sessionID, reqData.QuestionID, reqData.OptionID, reqData.AnswerText)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Answer recorded!", answer)
}

// CompleteSession closes the session and returns the scored summary
func (ctl *PracticeController) CompleteSession(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	sessionID, err := parseID(c, "id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid session id!", nil)
	}

	reqData := new(struct {
		TimeTakenSeconds *int `json:"time_taken_seconds"`
	})
	// Body is optional on completion
	_ = c.BodyParser(reqData)

	summary, err := ctl.Sessions.CompletePractice(userID, sessionID, reqData.TimeTakenSeconds)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Practice session completed!", summary)
}

// RecentSessions lists the caller's latest completed sessions
func (ctl *PracticeController) RecentSessions(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	items, err := ctl.Sessions.RecentPractice(userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Recent sessions fetched!", items)
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(raw), nil
}
