package evaluationController

import (
	"strconv"

	"ieltsprep/middleware"
	"ieltsprep/models"
	"ieltsprep/services"

	"github.com/gofiber/fiber/v2"
)

const defaultTargetBand = 7.0

// EvaluationController triggers AI writing and speaking evaluations.
type EvaluationController struct {
	Evals *services.EvaluationService
}

func NewEvaluationController(evals *services.EvaluationService) *EvaluationController {
	return &EvaluationController{Evals: evals}
}

// EvaluateWritingPractice scores one practice writing answer
func (ctl *EvaluationController) EvaluateWritingPractice(c *fiber.Ctx) error {
	return ctl.evaluateWriting(c, models.EvalModePractice)
}

// EvaluateWritingExam scores one exam writing answer
func (ctl *EvaluationController) EvaluateWritingExam(c *fiber.Ctx) error {
	return ctl.evaluateWriting(c, models.EvalModeExam)
}

func (ctl *EvaluationController) evaluateWriting(c *fiber.Ctx, mode string) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	answerID, err := parseID(c, "answerId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid answer id!", nil)
	}

	reqData := new(struct {
		TaskType   string   `json:"task_type"`
		TargetBand *float64 `json:"target_band"`
	})
	// Body is optional; defaults cover both fields
	_ = c.BodyParser(reqData)

	targetBand := defaultTargetBand
	if reqData.TargetBand != nil {
		targetBand = *reqData.TargetBand
	}
	taskType := reqData.TaskType
	if taskType == "" {
		taskType = "task2"
	}

	eval, err := ctl.Evals.EvaluateWriting(c.Context(), userID, mode, answerID, taskType, targetBand)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Writing evaluated!", eval)
}

// CreateSpeakingAttempt registers an uploaded speaking recording
func (ctl *EvaluationController) CreateSpeakingAttempt(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData := new(struct {
		QuestionID          uint   `json:"question_id"`
		AudioPath           string `json:"audio_path"`
		DurationSeconds     int    `json:"duration_seconds"`
		Mode                string `json:"mode"`
		ExamSessionID       *uint  `json:"exam_session_id"`
		ExamSectionResultID *uint  `json:"exam_section_result_id"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	attempt, err := ctl.Evals.CreateSpeakingAttempt(userID, reqData.QuestionID, reqData.AudioPath, reqData.DurationSeconds, reqData.Mode, reqData.ExamSessionID, reqData.ExamSectionResultID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Speaking attempt recorded!", attempt)
}

// EvaluateSpeaking downloads and scores one recorded attempt
func (ctl *EvaluationController) EvaluateSpeaking(c *fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	attemptID, err := parseID(c, "attemptId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid attempt id!", nil)
	}

	reqData := new(struct {
		TargetBand *float64 `json:"target_band"`
	})
	// Body is optional
	_ = c.BodyParser(reqData)

	targetBand := defaultTargetBand
	if reqData.TargetBand != nil {
		targetBand = *reqData.TargetBand
	}

	eval, res, err := ctl.Evals.EvaluateSpeaking(c.Context(), userID, attemptID, targetBand)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Speaking evaluated!", fiber.Map{
		"evaluation":         eval,
		"on_topic":           res.OnTopic,
		"relevance_score":    res.RelevanceScore,
		"relevance_feedback": res.RelevanceFeedback,
	})
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(raw), nil
}
