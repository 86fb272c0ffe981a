package models

import "gorm.io/gorm"

// Skill is one of the four IELTS skills (listening, reading, writing, speaking)
type Skill struct {
	gorm.Model
	Slug        string `json:"slug" gorm:"uniqueIndex;not null"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	ColorHex    string `json:"color_hex"`
	IconKey     string `json:"icon_key"`
}

func (Skill) TableName() string {
	return "skills"
}

// PracticeSet groups questions for one skill into a practicable unit
type PracticeSet struct {
	gorm.Model
	SkillID          uint   `json:"skill_id" gorm:"index;not null"`
	Title            string `json:"title" gorm:"not null"`
	LevelTag         string `json:"level_tag"`
	ShortDescription string `json:"short_description" gorm:"type:text"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	IsPremium        bool   `json:"is_premium" gorm:"default:false"`
	IsActive         bool   `json:"is_active" gorm:"default:true"`
}

func (PracticeSet) TableName() string {
	return "practice_sets"
}

// ListeningTrack is an audio recording attached to a practice set
type ListeningTrack struct {
	gorm.Model
	PracticeSetID   uint   `json:"practice_set_id" gorm:"index;not null"`
	Title           string `json:"title"`
	AudioPath       string `json:"audio_path"`
	DurationSeconds int    `json:"duration_seconds"`
}

func (ListeningTrack) TableName() string {
	return "listening_tracks"
}
