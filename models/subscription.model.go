package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment session status enum values
const (
	PaymentStatusCreated = "created"
	PaymentStatusPaid    = "paid"
)

// Subscription status enum values
const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// SubscriptionPlan is a purchasable premium plan
type SubscriptionPlan struct {
	gorm.Model
	Name            string `json:"name" gorm:"not null"`
	Description     string `json:"description" gorm:"type:text"`
	PriceCents      int    `json:"price_cents" gorm:"not null"`
	Currency        string `json:"currency" gorm:"type:varchar(10);default:'USD'"`
	BillingInterval string `json:"billing_interval" gorm:"type:varchar(20);default:'monthly'"`
	IsActive        bool   `json:"is_active" gorm:"default:true"`
}

func (SubscriptionPlan) TableName() string {
	return "subscription_plans"
}

// PaymentSession tracks one checkout with the (mock) payment provider
type PaymentSession struct {
	gorm.Model
	UserID            string     `json:"user_id" gorm:"index;not null"`
	PlanID            uint       `json:"plan_id" gorm:"not null"`
	Provider          string     `json:"provider" gorm:"type:varchar(20)"`
	ProviderSessionID string     `json:"provider_session_id"`
	AmountCents       int        `json:"amount_cents"`
	Currency          string     `json:"currency" gorm:"type:varchar(10)"`
	Status            string     `json:"status" gorm:"type:varchar(20);default:'created'"`
	CompletedAt       *time.Time `json:"completed_at"`
}

func (PaymentSession) TableName() string {
	return "payment_sessions"
}

// Subscription is an active or expired premium period bought by a user
type Subscription struct {
	gorm.Model
	UserID             string    `json:"user_id" gorm:"index;not null"`
	PlanID             uint      `json:"plan_id" gorm:"not null"`
	PaymentSessionID   uint      `json:"payment_session_id"`
	Status             string    `json:"status" gorm:"type:varchar(20);default:'active'"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	ReminderSent       bool      `json:"-" gorm:"default:false"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
