package models

import (
	"time"

	"gorm.io/gorm"
)

// ExamSession is a full mock exam run. Its own totals are just timestamps and
// elapsed time; per-skill results live on ExamSectionResult rows.
type ExamSession struct {
	gorm.Model
	UserID           string     `json:"user_id" gorm:"index;not null"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	TotalTimeSeconds *int       `json:"total_time_seconds"`
}

func (ExamSession) TableName() string {
	return "exam_sessions"
}

// ExamSectionResult is the per-skill sub-lifecycle nested inside an exam session
type ExamSectionResult struct {
	gorm.Model
	ExamSessionID    uint       `json:"exam_session_id" gorm:"index;not null"`
	SkillID          uint       `json:"skill_id" gorm:"index;not null"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	TimeTakenSeconds *int       `json:"time_taken_seconds"`
	TotalQuestions   int        `json:"total_questions" gorm:"default:0"`
	CorrectQuestions int        `json:"correct_questions" gorm:"default:0"`
	Score            float64    `json:"score" gorm:"default:0"`
}

func (ExamSectionResult) TableName() string {
	return "exam_section_results"
}

// ExamAnswer records one submitted exam answer
type ExamAnswer struct {
	gorm.Model
	ExamSessionID   uint      `json:"exam_session_id" gorm:"index;not null"`
	SectionResultID uint      `json:"section_result_id" gorm:"index;not null"`
	SkillID         uint      `json:"skill_id" gorm:"index;not null"`
	QuestionID      uint      `json:"question_id" gorm:"index;not null"`
	OptionID        *uint     `json:"option_id"`
	AnswerText      string    `json:"answer_text" gorm:"type:text"`
	IsCorrect       *bool     `json:"is_correct"`
	AnsweredAt      time.Time `json:"answered_at"`
}

func (ExamAnswer) TableName() string {
	return "exam_answers"
}
