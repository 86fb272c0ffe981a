package models

import "gorm.io/gorm"

// Question type enum values
const (
	QuestionTypeObjective  = "objective"
	QuestionTypeSubjective = "subjective"
)

// Question belongs to a practice set (practice mode) or directly to a skill (exam mode)
type Question struct {
	gorm.Model
	PracticeSetID    *uint  `json:"practice_set_id" gorm:"index"`
	SkillID          uint   `json:"skill_id" gorm:"index;not null"`
	Type             string `json:"type" gorm:"not null;type:varchar(20)"` // objective, subjective
	OrderIndex       int    `json:"order_index" gorm:"default:0"`
	Prompt           string `json:"prompt" gorm:"type:text;not null"`
	Passage          string `json:"passage" gorm:"type:text"`
	MaxScore         int    `json:"max_score" gorm:"default:1"`
	ListeningTrackID *uint  `json:"listening_track_id"`
	AudioStartSec    *int   `json:"audio_start_sec"`
	AudioEndSec      *int   `json:"audio_end_sec"`
}

func (Question) TableName() string {
	return "questions"
}

// QuestionOption is one choice of an objective question; exactly one per question is marked correct
type QuestionOption struct {
	gorm.Model
	QuestionID  uint   `json:"question_id" gorm:"index;not null"`
	OptionIndex int    `json:"option_index" gorm:"default:0"`
	Text        string `json:"text" gorm:"not null"`
	IsCorrect   bool   `json:"is_correct" gorm:"default:false"`
}

func (QuestionOption) TableName() string {
	return "question_options"
}
