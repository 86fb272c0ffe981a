package services

import (
	"fmt"
	"log"
	"time"

	"ieltsprep/models"

	"github.com/google/uuid"
)

// PremiumStore is the storage capability the premium service needs.
type PremiumStore interface {
	ActivePlans() ([]models.SubscriptionPlan, error)
	PlanByID(id uint) (*models.SubscriptionPlan, error)
	CreatePaymentSession(ps *models.PaymentSession) error
	PaymentSessionByID(id uint) (*models.PaymentSession, error)
	MarkPaymentPaid(id uint, userID string, completedAt time.Time) (int64, error)
	CreateSubscription(sub *models.Subscription) error
	LatestSubscription(userID string) (*models.Subscription, error)
	SetProfilePremium(userID string, premium bool, until *time.Time) error
	CreatePremiumEvent(ev *models.PremiumEvent) error
}

func (s *GormStore) ActivePlans() ([]models.SubscriptionPlan, error) {
	var plans []models.SubscriptionPlan
	err := s.db.Where("is_active = ?", true).Order("created_at DESC").Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

func (s *GormStore) PlanByID(id uint) (*models.SubscriptionPlan, error) {
	var plan models.SubscriptionPlan
	if err := s.db.Where("id = ?", id).First(&plan).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &plan, nil
}

func (s *GormStore) CreatePaymentSession(ps *models.PaymentSession) error {
	return s.db.Create(ps).Error
}

func (s *GormStore) PaymentSessionByID(id uint) (*models.PaymentSession, error) {
	var ps models.PaymentSession
	if err := s.db.Where("id = ?", id).First(&ps).Error; err != nil {
		return nil, notFoundAsNil(err)
	}
	return &ps, nil
}

func (s *GormStore) MarkPaymentPaid(id uint, userID string, completedAt time.Time) (int64, error) {
	res := s.db.Model(&models.PaymentSession{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"status":       models.PaymentStatusPaid,
			"completed_at": completedAt,
		})
	return res.RowsAffected, res.Error
}

func (s *GormStore) CreateSubscription(sub *models.Subscription) error {
	return s.db.Create(sub).Error
}

func (s *GormStore) LatestSubscription(userID string) (*models.Subscription, error) {
	var sub models.Subscription
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").First(&sub).Error
	if err != nil {
		return nil, notFoundAsNil(err)
	}
	return &sub, nil
}

func (s *GormStore) SetProfilePremium(userID string, premium bool, until *time.Time) error {
	return s.db.Model(&models.Profile{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"is_premium":    premium,
		"premium_until": until,
	}).Error
}

func (s *GormStore) CreatePremiumEvent(ev *models.PremiumEvent) error {
	return s.db.Create(ev).Error
}

// PremiumService runs the mock payment and subscription flow.
type PremiumService struct {
	store    PremiumStore
	profiles *ProfileService
}

func NewPremiumService(store PremiumStore, profiles *ProfileService) *PremiumService {
	return &PremiumService{store: store, profiles: profiles}
}

func (p *PremiumService) ListPlans() ([]models.SubscriptionPlan, error) {
	return p.store.ActivePlans()
}

// CreatePaymentSession opens a checkout against the mock provider.
func (p *PremiumService) CreatePaymentSession(userID string, planID uint) (*models.PaymentSession, error) {
	plan, err := p.store.PlanByID(planID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("%w: plan", ErrNotFound)
	}

	ps := &models.PaymentSession{
		UserID:            userID,
		PlanID:            planID,
		Provider:          "mock",
		ProviderSessionID: "mock_" + uuid.NewString(),
		AmountCents:       plan.PriceCents,
		Currency:          plan.Currency,
		Status:            models.PaymentStatusCreated,
	}
	if err := p.store.CreatePaymentSession(ps); err != nil {
		return nil, err
	}
	return ps, nil
}

// ConfirmPayment marks the session paid, opens a 30-day subscription and
// grants the premium flag. The audit event is best-effort only.
func (p *PremiumService) ConfirmPayment(userID string, paymentSessionID uint) (*models.Subscription, error) {
	now := time.Now().UTC()
	affected, err := p.store.MarkPaymentPaid(paymentSessionID, userID, now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: payment session", ErrNotFound)
	}

	payment, err := p.store.PaymentSessionByID(paymentSessionID)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, fmt.Errorf("%w: payment session", ErrNotFound)
	}

	periodEnd := now.AddDate(0, 0, 30)
	sub := &models.Subscription{
		UserID:             userID,
		PlanID:             payment.PlanID,
		PaymentSessionID:   payment.ID,
		Status:             models.SubscriptionActive,
		CurrentPeriodStart: now,
		CurrentPeriodEnd:   periodEnd,
	}
	if err := p.store.CreateSubscription(sub); err != nil {
		return nil, err
	}

	// Profile must exist before the premium flag can be flipped.
	if _, err := p.profiles.GetOrCreate(userID); err != nil {
		return nil, err
	}
	if err := p.store.SetProfilePremium(userID, true, &periodEnd); err != nil {
		return nil, err
	}

	if err := p.store.CreatePremiumEvent(&models.PremiumEvent{
		UserID:    userID,
		EventType: "grant",
		Reason:    "mock_payment",
	}); err != nil {
		log.Printf("[PREMIUM] failed to record grant event for %s: %v", userID, err)
	}

	return sub, nil
}

// CurrentSubscription returns the newest subscription (if any) and the profile
// premium state.
func (p *PremiumService) CurrentSubscription(userID string) (*models.Subscription, *models.Profile, error) {
	sub, err := p.store.LatestSubscription(userID)
	if err != nil {
		return nil, nil, err
	}
	prof, err := p.profiles.GetOrCreate(userID)
	if err != nil {
		return nil, nil, err
	}
	return sub, prof, nil
}
