package investment

import (
	"context"
	"testing"
	"time"

	domainerrors "trivest/internal/errors"
	"trivest/internal/lock"
	"trivest/internal/models"
	"trivest/internal/money"
	"trivest/internal/repositories/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, now time.Time) (*service, *repotest.Store) {
	t.Helper()
	store := repotest.NewStore()
	svc := NewService(store, store.Investments(), store.Plans(), nil, lock.NewKeyedMutex()).(*service)
	svc.now = func() time.Time { return now }
	return svc, store
}

func seedPlan(t *testing.T, store *repotest.Store, name string, invest, daily int64, validity string) *models.Plan {
	t.Helper()
	plan := &models.Plan{
		Name:         name,
		InvestAmount: money.FromMajor(invest),
		DailyIncome:  money.FromMajor(daily),
		Validity:     validity,
		IsActive:     true,
	}
	require.NoError(t, store.Plans().Create(plan))
	return plan
}

func TestParseValidityDays(t *testing.T) {
	tests := []struct {
		in       string
		wantDays int
		wantOK   bool
	}{
		{"30 days", 30, true},
		{"1 day", 1, true},
		{"45", 45, true},
		{"  60 DAYS ", 60, true},
		{"forever", 0, false},
		{"", 0, false},
		{"-5 days", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			days, ok := ParseValidityDays(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantDays, days)
		})
	}
}

func TestRemainingDays(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	inv := &models.Investment{InvestDate: start, Validity: "10 days"}

	// Day 3 of a 10-day window leaves 7 days.
	assert.Equal(t, 7, RemainingDays(inv, start.AddDate(0, 0, 3)))
	assert.Equal(t, 10, RemainingDays(inv, start))
	assert.Equal(t, 0, RemainingDays(inv, start.AddDate(0, 0, 10)))
	assert.Equal(t, 0, RemainingDays(inv, start.AddDate(0, 0, 15)))

	// Unparsable validity reports zero but never expires.
	odd := &models.Investment{InvestDate: start, Validity: "forever"}
	assert.Equal(t, 0, RemainingDays(odd, start))
	assert.False(t, IsExpired(odd, start.AddDate(10, 0, 0)))
}

func TestPurchase(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("debits the balance and snapshots the plan", func(t *testing.T) {
		svc, store := newTestService(t, now)
		plan := seedPlan(t, store, "Silver", 5000, 280, "30 days")
		require.NoError(t, store.Create(&models.Account{Phone: "01700000001", Balance: money.FromMajor(5000)}))

		inv, err := svc.Purchase(ctx, "01700000001", plan.ID)
		require.NoError(t, err)
		assert.Equal(t, "Silver", inv.PlanName)
		assert.Equal(t, money.FromMajor(5000), inv.InvestAmount)
		assert.Equal(t, money.FromMajor(280), inv.DailyIncome)
		assert.Equal(t, now, inv.InvestDate)
		assert.Equal(t, now.Add(FirstIncomeDelay), inv.FirstIncomeDate)
		assert.True(t, inv.IsActive)

		account, err := store.GetByPhone("01700000001")
		require.NoError(t, err)
		assert.Equal(t, money.Amount(0), account.Balance)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		svc, store := newTestService(t, now)
		plan := seedPlan(t, store, "Silver", 5000, 280, "30 days")
		require.NoError(t, store.Create(&models.Account{Phone: "01700000001", Balance: money.FromMajor(4999)}))

		_, err := svc.Purchase(ctx, "01700000001", plan.ID)
		assert.ErrorIs(t, err, domainerrors.ErrInsufficientBalance)
	})

	t.Run("one active plan per account", func(t *testing.T) {
		svc, store := newTestService(t, now)
		plan := seedPlan(t, store, "Starter", 1000, 50, "30 days")
		require.NoError(t, store.Create(&models.Account{Phone: "01700000001", Balance: money.FromMajor(5000)}))

		_, err := svc.Purchase(ctx, "01700000001", plan.ID)
		require.NoError(t, err)
		_, err = svc.Purchase(ctx, "01700000001", plan.ID)
		assert.ErrorIs(t, err, ErrActivePlanExists)
	})

	t.Run("inactive plan", func(t *testing.T) {
		svc, store := newTestService(t, now)
		plan := seedPlan(t, store, "Retired", 1000, 50, "30 days")
		plan.IsActive = false
		require.NoError(t, store.Plans().Update(plan))
		require.NoError(t, store.Create(&models.Account{Phone: "01700000001", Balance: money.FromMajor(5000)}))

		_, err := svc.Purchase(ctx, "01700000001", plan.ID)
		assert.ErrorIs(t, err, ErrPlanInactive)
	})

	t.Run("unknown plan", func(t *testing.T) {
		svc, store := newTestService(t, now)
		require.NoError(t, store.Create(&models.Account{Phone: "01700000001", Balance: money.FromMajor(5000)}))

		_, err := svc.Purchase(ctx, "01700000001", 42)
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	svc, store := newTestService(t, now)
	plan := seedPlan(t, store, "Starter", 1000, 50, "30 days")
	require.NoError(t, store.Create(&models.Account{Phone: "01700000001", Balance: money.FromMajor(1000)}))

	inv, err := svc.Purchase(ctx, "01700000001", plan.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, inv.ID))

	stored, err := store.Investments().GetByID(inv.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	// No refund.
	account, err := store.GetByPhone("01700000001")
	require.NoError(t, err)
	assert.Equal(t, money.Amount(0), account.Balance)
}

func TestDeactivateExpired(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	svc, store := newTestService(t, start)
	plan := seedPlan(t, store, "Starter", 1000, 50, "10 days")
	require.NoError(t, store.Create(&models.Account{Phone: "01700000001", Balance: money.FromMajor(1000)}))

	inv, err := svc.Purchase(ctx, "01700000001", plan.ID)
	require.NoError(t, err)

	// Still inside the window.
	svc.now = func() time.Time { return start.AddDate(0, 0, 9) }
	n, err := svc.DeactivateExpired(ctx, "01700000001")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Past the window.
	svc.now = func() time.Time { return start.AddDate(0, 0, 11) }
	n, err = svc.DeactivateExpired(ctx, "01700000001")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stored, err := store.Investments().GetByID(inv.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}
