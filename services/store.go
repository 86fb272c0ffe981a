package services

import (
	"errors"

	"ieltsprep/models"

	"gorm.io/gorm"
)

// CatalogStore reads the question/option catalog. Everything that can be
// needed for more than one row at a time is fetched by id set, never per row.
type CatalogStore interface {
	SkillBySlug(slug string) (*models.Skill, error)
	SkillsByIDs(ids []uint) ([]models.Skill, error)
	PracticeSetByID(id uint) (*models.PracticeSet, error)
	PracticeSetsByIDs(ids []uint) ([]models.PracticeSet, error)
	QuestionByID(id uint) (*models.Question, error)
	QuestionsByIDs(ids []uint) ([]models.Question, error)
	QuestionsByPracticeSet(setID uint) ([]models.Question, error)
	OptionsByQuestionIDs(ids []uint) ([]models.QuestionOption, error)
	CorrectOptionByQuestion(questionID uint) (*models.QuestionOption, error)
}

// PracticeStore persists the practice session lifecycle.
type PracticeStore interface {
	CreatePracticeSession(s *models.PracticeSession) error
	PracticeSessionByID(id uint) (*models.PracticeSession, error)
	UpdatePracticeSession(id uint, fields map[string]interface{}) error
	RecentPracticeSessions(userID string, limit int) ([]models.PracticeSession, error)
	CreatePracticeAnswer(a *models.PracticeAnswer) error
	PracticeAnswerByID(id uint) (*models.PracticeAnswer, error)
	PracticeAnswersBySession(sessionID uint) ([]models.PracticeAnswer, error)
}

// ExamStore persists the exam session lifecycle.
type ExamStore interface {
	CreateExamSession(s *models.ExamSession) error
	ExamSessionByID(id uint) (*models.ExamSession, error)
	UpdateExamSession(id uint, fields map[string]interface{}) error
	CreateSectionResult(r *models.ExamSectionResult) error
	SectionResultByID(id uint) (*models.ExamSectionResult, error)
	SectionResultsBySession(sessionID uint) ([]models.ExamSectionResult, error)
	UpdateSectionResult(id uint, fields map[string]interface{}) error
	CreateExamAnswer(a *models.ExamAnswer) error
	ExamAnswerByID(id uint) (*models.ExamAnswer, error)
	ExamAnswersBySection(sectionID uint) ([]models.ExamAnswer, error)
	CountCorrectExamAnswers(sectionID uint) (int64, error)
}

// EvaluationStore persists AI evaluation records and speaking attempts.
type EvaluationStore interface {
	CreateWritingEvaluation(e *models.WritingEvaluation) error
	WritingEvaluationsByAnswerIDs(mode string, answerIDs []uint) ([]models.WritingEvaluation, error)
	CreateSpeakingAttempt(a *models.SpeakingAttempt) error
	SpeakingAttemptByID(id uint) (*models.SpeakingAttempt, error)
	SpeakingAttemptsByExamSession(sessionID uint) ([]models.SpeakingAttempt, error)
	CreateSpeakingEvaluation(e *models.SpeakingEvaluation) error
	SpeakingEvaluationsByAttemptIDs(attemptIDs []uint) ([]models.SpeakingEvaluation, error)
}

// Store is the full storage capability handed to the service constructors.
type Store interface {
	CatalogStore
	PracticeStore
	ExamStore
	EvaluationStore
}

// GormStore implements Store on a GORM connection.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// notFoundAsNil converts gorm's record-not-found into a nil row so callers
// can decide between NotFound and Forbidden themselves.
func notFoundAsNil(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (s *GormStore) SkillBySlug(slug string) (*models.Skill, error) {
	var skill models.Skill
	if err := s.db.Where("slug = ?", slug).First(&skill).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &skill, nil
}

func (s *GormStore) SkillsByIDs(ids []uint) ([]models.Skill, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var skills []models.Skill
	if err := s.db.Where("id IN ?", ids).Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

func (s *GormStore) PracticeSetByID(id uint) (*models.PracticeSet, error) {
	var ps models.PracticeSet
	if err := s.db.Where("id = ?", id).First(&ps).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &ps, nil
}

func (s *GormStore) PracticeSetsByIDs(ids []uint) ([]models.PracticeSet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var sets []models.PracticeSet
	if err := s.db.Where("id IN ?", ids).Find(&sets).Error; err != nil {
		return nil, err
	}
	return sets, nil
}

func (s *GormStore) QuestionByID(id uint) (*models.Question, error) {
	var q models.Question
	if err := s.db.Where("id = ?", id).First(&q).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &q, nil
}

func (s *GormStore) QuestionsByIDs(ids []uint) ([]models.Question, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var qs []models.Question
	if err := s.db.Where("id IN ?", ids).Order("order_index").Find(&qs).Error; err != nil {
		return nil, err
	}
	return qs, nil
}

func (s *GormStore) QuestionsByPracticeSet(setID uint) ([]models.Question, error) {
	var qs []models.Question
	if err := s.db.Where("practice_set_id = ?", setID).Order("order_index").Find(&qs).Error; err != nil {
		return nil, err
	}
	return qs, nil
}

func (s *GormStore) OptionsByQuestionIDs(ids []uint) ([]models.QuestionOption, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var opts []models.QuestionOption
	if err := s.db.Where("question_id IN ?", ids).Order("option_index").Find(&opts).Error; err != nil {
		return nil, err
	}
	return opts, nil
}

func (s *GormStore) CorrectOptionByQuestion(questionID uint) (*models.QuestionOption, error) {
	var opt models.QuestionOption
	err := s.db.Where("question_id = ? AND is_correct = ?", questionID, true).First(&opt).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &opt, nil
}

func (s *GormStore) CreatePracticeSession(sess *models.PracticeSession) error {
	return s.db.Create(sess).Error
}

func (s *GormStore) PracticeSessionByID(id uint) (*models.PracticeSession, error) {
	var sess models.PracticeSession
	if err := s.db.Where("id = ?", id).First(&sess).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &sess, nil
}

func (s *GormStore) UpdatePracticeSession(id uint, fields map[string]interface{}) error {
	return s.db.Model(&models.PracticeSession{}).Where("id = ?", id).Updates(fields).Error
}

func (s *GormStore) RecentPracticeSessions(userID string, limit int) ([]models.PracticeSession, error) {
	var sessions []models.PracticeSession
	err := s.db.
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Order("completed_at DESC").
		Limit(limit).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *GormStore) CreatePracticeAnswer(a *models.PracticeAnswer) error {
	return s.db.Create(a).Error
}

func (s *GormStore) PracticeAnswerByID(id uint) (*models.PracticeAnswer, error) {
	var a models.PracticeAnswer
	if err := s.db.Where("id = ?", id).First(&a).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &a, nil
}

func (s *GormStore) PracticeAnswersBySession(sessionID uint) ([]models.PracticeAnswer, error) {
	var answers []models.PracticeAnswer
	if err := s.db.Where("session_id = ?", sessionID).Order("answered_at").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (s *GormStore) CreateExamSession(sess *models.ExamSession) error {
	return s.db.Create(sess).Error
}

func (s *GormStore) ExamSessionByID(id uint) (*models.ExamSession, error) {
	var sess models.ExamSession
	if err := s.db.Where("id = ?", id).First(&sess).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &sess, nil
}

func (s *GormStore) UpdateExamSession(id uint, fields map[string]interface{}) error {
	return s.db.Model(&models.ExamSession{}).Where("id = ?", id).Updates(fields).Error
}

func (s *GormStore) CreateSectionResult(r *models.ExamSectionResult) error {
	return s.db.Create(r).Error
}

func (s *GormStore) SectionResultByID(id uint) (*models.ExamSectionResult, error) {
	var r models.ExamSectionResult
	if err := s.db.Where("id = ?", id).First(&r).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &r, nil
}

func (s *GormStore) SectionResultsBySession(sessionID uint) ([]models.ExamSectionResult, error) {
	var results []models.ExamSectionResult
	if err := s.db.Where("exam_session_id = ?", sessionID).Order("id").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *GormStore) UpdateSectionResult(id uint, fields map[string]interface{}) error {
	return s.db.Model(&models.ExamSectionResult{}).Where("id = ?", id).Updates(fields).Error
}

func (s *GormStore) CreateExamAnswer(a *models.ExamAnswer) error {
	return s.db.Create(a).Error
}

func (s *GormStore) ExamAnswerByID(id uint) (*models.ExamAnswer, error) {
	var a models.ExamAnswer
	if err := s.db.Where("id = ?", id).First(&a).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &a, nil
}

func (s *GormStore) ExamAnswersBySection(sectionID uint) ([]models.ExamAnswer, error) {
	var answers []models.ExamAnswer
	if err := s.db.Where("section_result_id = ?", sectionID).Order("answered_at").Find(&answers).Error; err != nil {
		return nil, err
	}
	return answers, nil
}

func (s *GormStore) CountCorrectExamAnswers(sectionID uint) (int64, error) {
	var count int64
	err := s.db.Model(&models.ExamAnswer{}).
		Where("section_result_id = ? AND is_correct = ?", sectionID, true).
		Count(&count).Error
	return count, err
}

func (s *GormStore) CreateWritingEvaluation(e *models.WritingEvaluation) error {
	return s.db.Create(e).Error
}

func (s *GormStore) WritingEvaluationsByAnswerIDs(mode string, answerIDs []uint) ([]models.WritingEvaluation, error) {
	if len(answerIDs) == 0 {
		return nil, nil
	}
	var evals []models.WritingEvaluation
	err := s.db.Where("mode = ? AND answer_id IN ?", mode, answerIDs).Find(&evals).Error
	if err != nil {
		return nil, err
	}
	return evals, nil
}

func (s *GormStore) CreateSpeakingAttempt(a *models.SpeakingAttempt) error {
	return s.db.Create(a).Error
}

func (s *GormStore) SpeakingAttemptByID(id uint) (*models.SpeakingAttempt, error) {
	var a models.SpeakingAttempt
	if err := s.db.Where("id = ?", id).First(&a).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &a, nil
}

func (s *GormStore) SpeakingAttemptsByExamSession(sessionID uint) ([]models.SpeakingAttempt, error) {
	var attempts []models.SpeakingAttempt
	if err := s.db.Where("exam_session_id = ?", sessionID).Find(&attempts).Error; err != nil {
		return nil, err
	}
	return attempts, nil
}

func (s *GormStore) CreateSpeakingEvaluation(e *models.SpeakingEvaluation) error {
	return s.db.Create(e).Error
}

func (s *GormStore) SpeakingEvaluationsByAttemptIDs(attemptIDs []uint) ([]models.SpeakingEvaluation, error) {
	if len(attemptIDs) == 0 {
		return nil, nil
	}
	var evals []models.SpeakingEvaluation
	if err := s.db.Where("attempt_id IN ?", attemptIDs).Find(&evals).Error; err != nil {
		return nil, err
	}
	return evals, nil
}
