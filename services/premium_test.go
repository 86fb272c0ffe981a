package services

import (
	"strings"
	"testing"
	"time"

	"ieltsprep/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPlan(t *testing.T, store *GormStore) uint {
	t.Helper()
	plan := models.SubscriptionPlan{
		Name:            "Premium Monthly",
		PriceCents:      1499,
		Currency:        "USD",
		BillingInterval: "monthly",
		IsActive:        true,
	}
	require.NoError(t, store.db.Create(&plan).Error)
	return plan.ID
}

func TestListPlansOnlyActive(t *testing.T) {
	store := newTestStore(t)
	premium := NewPremiumService(store, NewProfileService(store))
	seedPlan(t, store)
	require.NoError(t, store.db.Create(&models.SubscriptionPlan{Name: "Retired", PriceCents: 999, IsActive: false}).Error)

	plans, err := premium.ListPlans()
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "Premium Monthly", plans[0].Name)
}

func TestCreatePaymentSession(t *testing.T) {
	store := newTestStore(t)
	premium := NewPremiumService(store, NewProfileService(store))
	planID := seedPlan(t, store)

	ps, err := premium.CreatePaymentSession("user-1", planID)
	require.NoError(t, err)
	assert.Equal(t, "mock", ps.Provider)
	assert.True(t, strings.HasPrefix(ps.ProviderSessionID, "mock_"))
	assert.Equal(t, 1499, ps.AmountCents)
	assert.Equal(t, models.PaymentStatusCreated, ps.Status)

	_, err = premium.CreatePaymentSession("user-1", 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConfirmPaymentGrantsPremium(t *testing.T) {
	store := newTestStore(t)
	profiles := NewProfileService(store)
	premium := NewPremiumService(store, profiles)
	planID := seedPlan(t, store)

	ps, err := premium.CreatePaymentSession("user-1", planID)
	require.NoError(t, err)

	sub, err := premium.ConfirmPayment("user-1", ps.ID)
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	assert.Equal(t, planID, sub.PlanID)
	assert.InDelta(t, 30*24*time.Hour, sub.CurrentPeriodEnd.Sub(sub.CurrentPeriodStart), float64(time.Hour))

	paid, err := store.PaymentSessionByID(ps.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, paid.Status)
	require.NotNil(t, paid.CompletedAt)

	prof, err := profiles.GetOrCreate("user-1")
	require.NoError(t, err)
	assert.True(t, prof.IsPremium)
	require.NotNil(t, prof.PremiumUntil)

	var events []models.PremiumEvent
	require.NoError(t, store.db.Where("user_id = ?", "user-1").Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, "grant", events[0].EventType)
}

func TestConfirmPaymentWrongUserOrUnknown(t *testing.T) {
	store := newTestStore(t)
	premium := NewPremiumService(store, NewProfileService(store))
	planID := seedPlan(t, store)

	ps, err := premium.CreatePaymentSession("user-1", planID)
	require.NoError(t, err)

	// Another user cannot confirm the session, and the real owner still can.
	_, err = premium.ConfirmPayment("user-2", ps.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = premium.ConfirmPayment("user-1", 999)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = premium.ConfirmPayment("user-1", ps.ID)
	require.NoError(t, err)
}

func TestCurrentSubscription(t *testing.T) {
	store := newTestStore(t)
	profiles := NewProfileService(store)
	premium := NewPremiumService(store, profiles)
	planID := seedPlan(t, store)

	// No subscription yet: nil sub, lazily created profile.
	sub, prof, err := premium.CurrentSubscription("user-1")
	require.NoError(t, err)
	assert.Nil(t, sub)
	require.NotNil(t, prof)
	assert.False(t, prof.IsPremium)

	ps, err := premium.CreatePaymentSession("user-1", planID)
	require.NoError(t, err)
	_, err = premium.ConfirmPayment("user-1", ps.ID)
	require.NoError(t, err)

	sub, prof, err = premium.CurrentSubscription("user-1")
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, models.SubscriptionActive, sub.Status)
	assert.True(t, prof.IsPremium)
}
