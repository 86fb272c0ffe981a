package services

import (
	"context"
	"fmt"

	"ieltsprep/ai"
	"ieltsprep/models"

	"gorm.io/datatypes"
)

// EvaluationBridge is the external AI scoring capability. ai.Client satisfies
// it; tests substitute a fake.
type EvaluationBridge interface {
	EvaluateWriting(ctx context.Context, prompt, candidateAnswer, taskType string, targetBand float64) (*ai.WritingResult, error)
	EvaluateSpeaking(ctx context.Context, audio []byte, mimeType, questionText string, targetBand float64, durationSeconds *int) (*ai.SpeakingResult, error)
}

// AudioFetcher retrieves a stored speaking recording by its storage path,
// returning the bytes and the content type.
type AudioFetcher interface {
	Fetch(ctx context.Context, audioPath string) ([]byte, string, error)
}

// EvaluationService runs AI evaluations for writing answers and speaking
// attempts and persists the immutable evaluation records.
type EvaluationService struct {
	store  Store
	bridge EvaluationBridge
	audio  AudioFetcher
}

func NewEvaluationService(store Store, bridge EvaluationBridge, audio AudioFetcher) *EvaluationService {
	return &EvaluationService{store: store, bridge: bridge, audio: audio}
}

// EvaluateWriting scores one free-text answer (practice or exam variant) and
// stores the result. The answer must belong to a session owned by the caller.
func (e *EvaluationService) EvaluateWriting(ctx context.Context, userID, mode string, answerID uint, taskType string, targetBand float64) (*models.WritingEvaluation, error) {
	questionID, answerText, err := e.ownedWritingAnswer(userID, mode, answerID)
	if err != nil {
		return nil, err
	}
	if answerText == "" {
		return nil, fmt.Errorf("%w: answer has no text to evaluate", ErrBadRequest)
	}

	q, err := e.store.QuestionByID(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: question", ErrNotFound)
	}

	res, err := e.bridge.EvaluateWriting(ctx, q.Prompt, answerText, taskType, targetBand)
	if err != nil {
		return nil, err
	}

	eval := &models.WritingEvaluation{
		AnswerID:         answerID,
		Mode:             mode,
		UserID:           userID,
		QuestionID:       questionID,
		OverallBand:      res.OverallBand,
		BandTaskResponse: res.TaskResponse,
		BandCoherence:    res.CoherenceAndCohesion,
		BandLexical:      res.LexicalResource,
		BandGrammar:      res.GrammaticalRangeAndAccuracy,
		IsGoodEnough:     res.IsGoodEnough,
		FeedbackShort:    res.FeedbackShort,
		FeedbackDetailed: res.FeedbackDetailed,
		ModelAnswer:      res.ModelAnswer,
		Raw:              datatypes.JSON(res.Raw),
	}
	if err := e.store.CreateWritingEvaluation(eval); err != nil {
		return nil, err
	}
	return eval, nil
}

// CreateSpeakingAttempt records an uploaded speaking recording. Exam-mode
// attempts must reference an exam session owned by the caller.
func (e *EvaluationService) CreateSpeakingAttempt(userID string, questionID uint, audioPath string, durationSeconds int, mode string, examSessionID, sectionResultID *uint) (*models.SpeakingAttempt, error) {
	q, err := e.store.QuestionByID(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: question", ErrNotFound)
	}

	if mode == models.EvalModeExam {
		if examSessionID == nil {
			return nil, fmt.Errorf("%w: exam_session_id required for exam mode", ErrBadRequest)
		}
		sess, err := e.store.ExamSessionByID(*examSessionID)
		if err != nil {
			return nil, err
		}
		if sess == nil || sess.UserID != userID {
			return nil, fmt.Errorf("%w: exam session", ErrNotFound)
		}
	}

	attempt := &models.SpeakingAttempt{
		UserID:              userID,
		QuestionID:          questionID,
		AudioPath:           audioPath,
		DurationSeconds:     durationSeconds,
		Mode:                mode,
		ExamSessionID:       examSessionID,
		ExamSectionResultID: sectionResultID,
	}
	if err := e.store.CreateSpeakingAttempt(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// EvaluateSpeaking downloads the attempt's audio, runs the AI examiner and
// stores the 1:1 evaluation record.
func (e *EvaluationService) EvaluateSpeaking(ctx context.Context, userID string, attemptID uint, targetBand float64) (*models.SpeakingEvaluation, *ai.SpeakingResult, error) {
	attempt, err := e.store.SpeakingAttemptByID(attemptID)
	if err != nil {
		return nil, nil, err
	}
	if attempt == nil || attempt.UserID != userID {
		return nil, nil, fmt.Errorf("%w: attempt", ErrNotFound)
	}

	q, err := e.store.QuestionByID(attempt.QuestionID)
	if err != nil {
		return nil, nil, err
	}
	if q == nil {
		return nil, nil, fmt.Errorf("%w: question", ErrNotFound)
	}

	audio, mimeType, err := e.audio.Fetch(ctx, attempt.AudioPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to download audio for evaluation: %v", ErrUpstream, err)
	}

	duration := attempt.DurationSeconds
	res, err := e.bridge.EvaluateSpeaking(ctx, audio, mimeType, q.Prompt, targetBand, &duration)
	if err != nil {
		return nil, nil, err
	}

	eval := &models.SpeakingEvaluation{
		AttemptID:         attempt.ID,
		UserID:            userID,
		QuestionID:        attempt.QuestionID,
		Mode:              attempt.Mode,
		OverallBand:       res.OverallBand,
		BandFluency:       res.FluencyAndCoherence,
		BandLexical:       res.LexicalResource,
		BandGrammar:       res.GrammaticalRangeAndAccuracy,
		BandPronunciation: res.Pronunciation,
		IsGoodEnough:      res.IsGoodEnough,
		FeedbackShort:     res.FeedbackShort,
		FeedbackDetailed:  res.FeedbackDetailed,
		Transcript:        res.Transcript,
		Raw:               datatypes.JSON(res.Raw),
	}
	if err := e.store.CreateSpeakingEvaluation(eval); err != nil {
		return nil, nil, err
	}
	return eval, res, nil
}

func (e *EvaluationService) ownedWritingAnswer(userID, mode string, answerID uint) (questionID uint, answerText string, err error) {
	switch mode {
	case models.EvalModePractice:
		answer, err := e.store.PracticeAnswerByID(answerID)
		if err != nil {
			return 0, "", err
		}
		if answer == nil {
			return 0, "", fmt.Errorf("%w: answer", ErrNotFound)
		}
		sess, err := e.store.PracticeSessionByID(answer.SessionID)
		if err != nil {
			return 0, "", err
		}
		if sess == nil || sess.UserID != userID {
			return 0, "", fmt.Errorf("%w: answer", ErrNotFound)
		}
		return answer.QuestionID, answer.AnswerText, nil
	case models.EvalModeExam:
		answer, err := e.store.ExamAnswerByID(answerID)
		if err != nil {
			return 0, "", err
		}
		if answer == nil {
			return 0, "", fmt.Errorf("%w: answer", ErrNotFound)
		}
		sess, err := e.store.ExamSessionByID(answer.ExamSessionID)
		if err != nil {
			return 0, "", err
		}
		if sess == nil || sess.UserID != userID {
			return 0, "", fmt.Errorf("%w: answer", ErrNotFound)
		}
		return answer.QuestionID, answer.AnswerText, nil
	default:
		return 0, "", fmt.Errorf("%w: unknown evaluation mode %q", ErrBadRequest, mode)
	}
}
