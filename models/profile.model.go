package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile is the per-user record, exactly one row per user id.
// Created lazily on first access; concurrent creation must converge on one row.
type Profile struct {
	gorm.Model
	UserID       string     `json:"user_id" gorm:"uniqueIndex;not null"`
	Email        *string    `json:"email"`
	FullName     *string    `json:"full_name"`
	AvatarURL    *string    `json:"avatar_url"`
	BandGoal     *float64   `json:"band_goal"`
	IsPremium    bool       `json:"is_premium" gorm:"default:false"`
	PremiumUntil *time.Time `json:"premium_until"`
}

func (Profile) TableName() string {
	return "profiles"
}

// PremiumEvent is an audit trail entry for premium grants and revocations
type PremiumEvent struct {
	gorm.Model
	UserID    string `json:"user_id" gorm:"index;not null"`
	EventType string `json:"event_type" gorm:"type:varchar(20)"` // grant, revoke
	Reason    string `json:"reason"`
}

func (PremiumEvent) TableName() string {
	return "premium_events"
}
