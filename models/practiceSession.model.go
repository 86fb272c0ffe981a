package models

import (
	"time"

	"gorm.io/gorm"
)

// PracticeSession is one run of a user through a practice set.
// Totals and score are write-once, computed server-side at completion.
type PracticeSession struct {
	gorm.Model
	UserID           string     `json:"user_id" gorm:"index;not null"`
	PracticeSetID    uint       `json:"practice_set_id" gorm:"index;not null"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at"`
	TimeTakenSeconds *int       `json:"time_taken_seconds"`
	TotalQuestions   int        `json:"total_questions" gorm:"default:0"`
	CorrectQuestions int        `json:"correct_questions" gorm:"default:0"`
	Score            float64    `json:"score" gorm:"default:0"`
}

func (PracticeSession) TableName() string {
	return "practice_sessions"
}

// PracticeAnswer records one submitted answer. IsCorrect is tri-state:
// nil means unknown (subjective answer, or no correct option marked).
type PracticeAnswer struct {
	gorm.Model
	SessionID  uint      `json:"session_id" gorm:"index;not null"`
	QuestionID uint      `json:"question_id" gorm:"index;not null"`
	OptionID   *uint     `json:"option_id"`
	AnswerText string    `json:"answer_text" gorm:"type:text"`
	IsCorrect  *bool     `json:"is_correct"`
	AnsweredAt time.Time `json:"answered_at"`
}

func (PracticeAnswer) TableName() string {
	return "practice_answers"
}
