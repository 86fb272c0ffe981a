package examController

import (
	"strconv"

	"ieltsprep/middleware"
	"ieltsprep/services"

	"github.com/gofiber/fiber/v2"
)

// ExamController drives the exam session and section lifecycle.
type ExamController struct {
	Sessions *services.SessionService
}

func NewExamController(sessions *services.SessionService) *ExamController {
	return &ExamController{Sessions: sessions}
}

// CreateSession starts a full exam simulation (premium only)
func (ctl *ExamController) CreateSession(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	sess, err := ctl.Sessions.StartExam(userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Exam session started!", fiber.Map{
		"exam_session_id": sess.ID,
	})
}

// CreateSection opens one skill section inside an owned exam session
func (ctl *ExamController) CreateSection(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		ExamSessionID uint   `json:"exam_session_id"`
		SkillSlug     string `json:"skill_slug"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	section, err := ctl.Sessions.StartSection(userID, reqData.ExamSessionID, reqData.SkillSlug)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Exam section started!", fiber.Map{
		"section_result_id": section.ID,
	})
}

// AddAnswer records one exam answer
func (ctl *ExamController) AddAnswer(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		ExamSessionID   uint   `json:"exam_session_id"`
		SectionResultID uint   `json:"section_result_id"`
		QuestionID      uint   `json:"question_id"`
		OptionID        *uint  `json:"option_id"`
		AnswerText      string `json:"answer_text"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	answer, err := ctl.Sessions.RecordExamAnswer(userID, reqData.ExamSessionID, reqData.SectionResultID, reqData.QuestionID, reqData.OptionID, reqData.AnswerText)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Answer recorded!", answer)
}

// CompleteSection closes one section and computes its score
func (ctl *ExamController) CompleteSection(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	sectionID, err := parseID(c, "id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section id!", nil)
	}

	reqData := new(struct {
		TotalQuestions   int  `json:"total_questions"`
		TimeTakenSeconds *int `json:"time_taken_seconds"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	section, err := ctl.Sessions.CompleteSection(userID, sectionID, reqData.TotalQuestions, reqData.TimeTakenSeconds)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam section completed!", section)
}

// CompleteSession closes the exam and returns the nested summary
func (ctl *ExamController) CompleteSession(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	examSessionID, err := parseID(c, "id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid exam session id!", nil)
	}

	reqData := new(struct {
		TotalTimeSeconds *int `json:"total_time_seconds"`
	})
	// Body is optional on completion
	_ = c.BodyParser(reqData)

	summary, err := ctl.Sessions.CompleteExam(userID, examSessionID, reqData.TotalTimeSeconds)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam completed!", summary)
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(raw), nil
}
