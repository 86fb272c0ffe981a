package utils

import (
	"log"
	"time"

	"ieltsprep/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeSubscriptionScheduler sets up the daily premium expiry scheduler.
// The entitlement gate only ever reads the premium flag; this job is what
// makes premium_until matter, by clearing the flag once the period ends.
func InitializeSubscriptionScheduler(db *gorm.DB) {
	log.Println("[SUBSCRIPTION-SCHEDULER] Initializing subscription scheduler...")

	c := cron.New()

	c.AddFunc("0 9 * * *", func() {
		log.Println("[SUBSCRIPTION-SCHEDULER] Running daily subscription check...")
		ProcessExpiringSubscriptions(db)
		ExpireSubscriptions(db)
	})

	c.Start()
	log.Println("[SUBSCRIPTION-SCHEDULER] Subscription scheduler started - runs daily at 9 AM")
}

// ProcessExpiringSubscriptions sends reminder emails for subscriptions expiring in 2 days
func ProcessExpiringSubscriptions(db *gorm.DB) {
	now := time.Now()
	twoDaysFromNow := now.AddDate(0, 0, 2)

	var expiring []models.Subscription
	err := db.
		Where("status = ? AND reminder_sent = ?", models.SubscriptionActive, false).
		Where("current_period_end BETWEEN ? AND ?", now, twoDaysFromNow).
		Find(&expiring).Error
	if err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching expiring subscriptions: %v", err)
		return
	}

	log.Printf("[SUBSCRIPTION-SCHEDULER] Found %d subscriptions expiring soon", len(expiring))

	for _, sub := range expiring {
		var profile models.Profile
		if err := db.Where("user_id = ?", sub.UserID).First(&profile).Error; err != nil {
			log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching profile %s: %v", sub.UserID, err)
			continue
		}

		email, name := "", ""
		if profile.Email != nil {
			email = *profile.Email
		}
		if profile.FullName != nil {
			name = *profile.FullName
		}
		SendSubscriptionExpiryReminder(email, name, sub.CurrentPeriodEnd)

		db.Model(&sub).Update("reminder_sent", true)
	}
}

// ExpireSubscriptions marks ended subscriptions as expired and revokes the
// premium flag on profiles whose premium_until has passed
func ExpireSubscriptions(db *gorm.DB) {
	now := time.Now()

	err := db.Model(&models.Subscription{}).
		Where("status = ? AND current_period_end < ?", models.SubscriptionActive, now).
		Update("status", models.SubscriptionExpired).Error
	if err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error expiring subscriptions: %v", err)
	}

	var lapsed []models.Profile
	err = db.
		Where("is_premium = ? AND premium_until IS NOT NULL AND premium_until < ?", true, now).
		Find(&lapsed).Error
	if err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching lapsed profiles: %v", err)
		return
	}

	for _, profile := range lapsed {
		err := db.Model(&models.Profile{}).
			Where("user_id = ?", profile.UserID).
			Update("is_premium", false).Error
		if err != nil {
			log.Printf("[SUBSCRIPTION-SCHEDULER] Error revoking premium for %s: %v", profile.UserID, err)
			continue
		}
		db.Create(&models.PremiumEvent{
			UserID:    profile.UserID,
			EventType: "revoke",
			Reason:    "expired",
		})
		log.Printf("[SUBSCRIPTION-SCHEDULER] Premium revoked for %s", profile.UserID)
	}
}
