package services

import (
	"fmt"
	"time"

	"ieltsprep/models"
)

// SessionService drives the practice and exam session state machines:
// created -> active -> completed, with exam sections nested inside a session.
// All ownership failures surface as ErrNotFound so existence cannot be probed.
type SessionService struct {
	store        Store
	entitlements *EntitlementService
	aggregator   *Aggregator
}

func NewSessionService(store Store, entitlements *EntitlementService, aggregator *Aggregator) *SessionService {
	return &SessionService{store: store, entitlements: entitlements, aggregator: aggregator}
}

// StartedPracticeSession is the response of StartPractice.
type StartedPracticeSession struct {
	ID          uint           `json:"id"`
	PracticeSet PracticeSetRef `json:"practice_set"`
	StartedAt   time.Time      `json:"started_at"`
}

// RecentPracticeItem is one row of the recent-sessions listing.
type RecentPracticeItem struct {
	ID               uint       `json:"id"`
	PracticeSetID    uint       `json:"practice_set_id"`
	PracticeSetTitle string     `json:"practice_set_title"`
	SkillSlug        string     `json:"skill_slug"`
	CompletedAt      *time.Time `json:"completed_at"`
	TotalQuestions   int        `json:"total_questions"`
	CorrectQuestions int        `json:"correct_questions"`
	Score            float64    `json:"score"`
}

// StartPractice creates a practice session. Premium-flagged sets require
// entitlement; an unknown set is NotFound.
func (s *SessionService) StartPractice(userID string, practiceSetID uint) (*StartedPracticeSession, error) {
	ps, err := s.store.PracticeSetByID(practiceSetID)
	if err != nil {
		return nil, err
	}
	if ps == nil {
		return nil, fmt.Errorf("%w: practice set", ErrNotFound)
	}
	if ps.IsPremium {
		entitled, err := s.entitlements.IsEntitled(userID)
		if err != nil {
			return nil, err
		}
		if !entitled {
			return nil, fmt.Errorf("%w: premium required for this practice set", ErrForbidden)
		}
	}

	sess := &models.PracticeSession{
		UserID:        userID,
		PracticeSetID: practiceSetID,
		StartedAt:     time.Now().UTC(),
	}
	if err := s.store.CreatePracticeSession(sess); err != nil {
		return nil, err
	}
	return &StartedPracticeSession{
		ID:          sess.ID,
		PracticeSet: PracticeSetRef{ID: ps.ID, Title: ps.Title},
		StartedAt:   sess.StartedAt,
	}, nil
}

// RecordPracticeAnswer persists one answer. Correctness is fixed here for
// objective answers by comparing against the question's designated correct
// option; if no option is marked correct it stays unknown, never false.
// Repeat answers for the same question are inserted, not overwritten.
func (s *SessionService) RecordPracticeAnswer(userID string, sessionID, questionID uint, optionID *uint, answerText string) (*models.PracticeAnswer, error) {
	sess, err := s.ownedPracticeSession(userID, sessionID)
	if err != nil {
		return nil, err
	}

	q, err := s.store.QuestionByID(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: question", ErrNotFound)
	}

	isCorrect, err := s.gradeObjective(questionID, optionID)
	if err != nil {
		return nil, err
	}

	answer := &models.PracticeAnswer{
		SessionID:  sess.ID,
		QuestionID: questionID,
		OptionID:   optionID,
		AnswerText: answerText,
		IsCorrect:  isCorrect,
		AnsweredAt: time.Now().UTC(),
	}
	if err := s.store.CreatePracticeAnswer(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// CompletePractice computes the write-once totals from the authoritative
// answer set and returns the enriched summary. Completing twice is rejected.
func (s *SessionService) CompletePractice(userID string, sessionID uint, timeTakenSeconds *int) (*PracticeSummary, error) {
	sess, err := s.ownedPracticeSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.CompletedAt != nil {
		return nil, fmt.Errorf("%w: session already completed", ErrBadRequest)
	}

	sess.TimeTakenSeconds = timeTakenSeconds
	summary, err := s.aggregator.BuildPracticeSummary(sess)
	if err != nil {
		return nil, err
	}

	completedAt := time.Now().UTC()
	err = s.store.UpdatePracticeSession(sess.ID, map[string]interface{}{
		"completed_at":       completedAt,
		"time_taken_seconds": timeTakenSeconds,
		"total_questions":    summary.Stats.TotalQuestions,
		"correct_questions":  summary.Stats.CorrectQuestions,
		"score":              summary.Stats.Score,
	})
	if err != nil {
		return nil, err
	}
	summary.CompletedAt = completedAt

	ps, err := s.store.PracticeSetByID(sess.PracticeSetID)
	if err != nil {
		return nil, err
	}
	if ps != nil {
		ref := PracticeSetRef{ID: ps.ID, Title: ps.Title}
		if skills, err := s.store.SkillsByIDs([]uint{ps.SkillID}); err == nil && len(skills) == 1 {
			ref.SkillSlug = skills[0].Slug
		}
		summary.PracticeSet = ref
	}
	return summary, nil
}

// RecentPractice lists the user's latest completed sessions with set title and
// skill slug attached through two batch lookups.
func (s *SessionService) RecentPractice(userID string) ([]RecentPracticeItem, error) {
	sessions, err := s.store.RecentPracticeSessions(userID, 10)
	if err != nil {
		return nil, err
	}

	setIDs := make([]uint, 0, len(sessions))
	for _, sess := range sessions {
		setIDs = append(setIDs, sess.PracticeSetID)
	}
	sets, err := s.store.PracticeSetsByIDs(setIDs)
	if err != nil {
		return nil, err
	}
	setByID := make(map[uint]models.PracticeSet, len(sets))
	skillIDs := make([]uint, 0, len(sets))
	for _, ps := range sets {
		setByID[ps.ID] = ps
		skillIDs = append(skillIDs, ps.SkillID)
	}
	skills, err := s.store.SkillsByIDs(skillIDs)
	if err != nil {
		return nil, err
	}
	slugBySkill := make(map[uint]string, len(skills))
	for _, sk := range skills {
		slugBySkill[sk.ID] = sk.Slug
	}

	items := make([]RecentPracticeItem, 0, len(sessions))
	for _, sess := range sessions {
		item := RecentPracticeItem{
			ID:               sess.ID,
			PracticeSetID:    sess.PracticeSetID,
			CompletedAt:      sess.CompletedAt,
			TotalQuestions:   sess.TotalQuestions,
			CorrectQuestions: sess.CorrectQuestions,
			Score:            sess.Score,
		}
		if ps, ok := setByID[sess.PracticeSetID]; ok {
			item.PracticeSetTitle = ps.Title
			item.SkillSlug = slugBySkill[ps.SkillID]
		}
		items = append(items, item)
	}
	return items, nil
}

// StartExam creates an exam session. Full exam simulations are premium-only.
func (s *SessionService) StartExam(userID string) (*models.ExamSession, error) {
	entitled, err := s.entitlements.IsEntitled(userID)
	if err != nil {
		return nil, err
	}
	if !entitled {
		return nil, fmt.Errorf("%w: full exam simulations are for premium users", ErrForbidden)
	}

	sess := &models.ExamSession{UserID: userID, StartedAt: time.Now().UTC()}
	if err := s.store.CreateExamSession(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// StartSection opens the per-skill sub-lifecycle inside an owned exam session.
func (s *SessionService) StartSection(userID string, examSessionID uint, skillSlug string) (*models.ExamSectionResult, error) {
	if _, err := s.ownedExamSession(userID, examSessionID); err != nil {
		return nil, err
	}
	skill, err := s.store.SkillBySlug(skillSlug)
	if err != nil {
		return nil, err
	}
	if skill == nil {
		return nil, fmt.Errorf("%w: skill", ErrNotFound)
	}

	section := &models.ExamSectionResult{
		ExamSessionID: examSessionID,
		SkillID:       skill.ID,
		StartedAt:     time.Now().UTC(),
	}
	if err := s.store.CreateSectionResult(section); err != nil {
		return nil, err
	}
	return section, nil
}

// RecordExamAnswer persists one exam answer, grading objective choices the
// same way practice answers are graded.
func (s *SessionService) RecordExamAnswer(userID string, examSessionID, sectionResultID, questionID uint, optionID *uint, answerText string) (*models.ExamAnswer, error) {
	if _, err := s.ownedExamSession(userID, examSessionID); err != nil {
		return nil, err
	}

	q, err := s.store.QuestionByID(questionID)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, fmt.Errorf("%w: question", ErrNotFound)
	}

	isCorrect, err := s.gradeObjective(questionID, optionID)
	if err != nil {
		return nil, err
	}

	answer := &models.ExamAnswer{
		ExamSessionID:   examSessionID,
		SectionResultID: sectionResultID,
		SkillID:         q.SkillID,
		QuestionID:      questionID,
		OptionID:        optionID,
		AnswerText:      answerText,
		IsCorrect:       isCorrect,
		AnsweredAt:      time.Now().UTC(),
	}
	if err := s.store.CreateExamAnswer(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

// CompleteSection closes one section: correct count comes from the answer
// rows, total from the client (section question counts are assembled
// client-side from the served catalog), score = 100*correct/total with 0 for
// an empty section.
func (s *SessionService) CompleteSection(userID string, sectionID uint, totalQuestions int, timeTakenSeconds *int) (*models.ExamSectionResult, error) {
	section, err := s.store.SectionResultByID(sectionID)
	if err != nil {
		return nil, err
	}
	if section == nil {
		return nil, fmt.Errorf("%w: section", ErrNotFound)
	}
	if _, err := s.ownedExamSession(userID, section.ExamSessionID); err != nil {
		return nil, err
	}
	if section.CompletedAt != nil {
		return nil, fmt.Errorf("%w: section already completed", ErrBadRequest)
	}

	correct, err := s.store.CountCorrectExamAnswers(sectionID)
	if err != nil {
		return nil, err
	}

	completedAt := time.Now().UTC()
	err = s.store.UpdateSectionResult(sectionID, map[string]interface{}{
		"completed_at":       completedAt,
		"time_taken_seconds": timeTakenSeconds,
		"total_questions":    totalQuestions,
		"correct_questions":  int(correct),
		"score":              Score(int(correct), totalQuestions),
	})
	if err != nil {
		return nil, err
	}
	return s.store.SectionResultByID(sectionID)
}

// CompleteExam stamps the session and hands off to the aggregator for the
// nested summary.
func (s *SessionService) CompleteExam(userID string, examSessionID uint, totalTimeSeconds *int) (*ExamSummary, error) {
	sess, err := s.ownedExamSession(userID, examSessionID)
	if err != nil {
		return nil, err
	}
	if sess.CompletedAt != nil {
		return nil, fmt.Errorf("%w: exam session already completed", ErrBadRequest)
	}

	completedAt := time.Now().UTC()
	err = s.store.UpdateExamSession(examSessionID, map[string]interface{}{
		"completed_at":       completedAt,
		"total_time_seconds": totalTimeSeconds,
	})
	if err != nil {
		return nil, err
	}
	sess.CompletedAt = &completedAt
	sess.TotalTimeSeconds = totalTimeSeconds

	return s.aggregator.BuildExamSummary(sess)
}

// gradeObjective fixes correctness at submission time: a selected option is
// compared against the question's unique correct option. No selected option,
// or no option marked correct, leaves correctness unknown.
func (s *SessionService) gradeObjective(questionID uint, optionID *uint) (*bool, error) {
	if optionID == nil {
		return nil, nil
	}
	correct, err := s.store.CorrectOptionByQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if correct == nil {
		return nil, nil
	}
	result := *optionID == correct.ID
	return &result, nil
}

func (s *SessionService) ownedPracticeSession(userID string, sessionID uint) (*models.PracticeSession, error) {
	sess, err := s.store.PracticeSessionByID(sessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.UserID != userID {
		return nil, fmt.Errorf("%w: session", ErrNotFound)
	}
	return sess, nil
}

func (s *SessionService) ownedExamSession(userID string, examSessionID uint) (*models.ExamSession, error) {
	sess, err := s.store.ExamSessionByID(examSessionID)
	if err != nil {
		return nil, err
	}
	if sess == nil || sess.UserID != userID {
		return nil, fmt.Errorf("%w: exam session", ErrNotFound)
	}
	return sess, nil
}
