package income

import (
	"context"
	"testing"
	"time"

	"trivest/internal/lock"
	"trivest/internal/models"
	"trivest/internal/money"
	"trivest/internal/repositories/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const phone = "01700000001"

func newTestService(t *testing.T, now time.Time) (*service, *repotest.Store) {
	t.Helper()
	store := repotest.NewStore()
	svc := NewService(store, store.Investments(), nil, lock.NewKeyedMutex(), nil).(*service)
	svc.now = func() time.Time { return now }
	return svc, store
}

func seedInvestment(t *testing.T, store *repotest.Store, daily int64, investDate time.Time, validity string) *models.Investment {
	t.Helper()
	inv := &models.Investment{
		AccountPhone:    phone,
		PlanName:        "Silver",
		InvestAmount:    money.FromMajor(5000),
		DailyIncome:     money.FromMajor(daily),
		Validity:        validity,
		InvestDate:      investDate,
		FirstIncomeDate: investDate.Add(24 * time.Hour),
		IsActive:        true,
	}
	require.NoError(t, store.CreateInvestment(inv))
	return inv
}

func TestCheckAndCredit(t *testing.T) {
	ctx := context.Background()
	purchased := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	t.Run("nothing due before the first income date", func(t *testing.T) {
		now := purchased.Add(18 * time.Hour)
		svc, store := newTestService(t, now)
		require.NoError(t, store.Create(&models.Account{Phone: phone}))
		seedInvestment(t, store, 280, purchased, "30 days")

		result, err := svc.CheckAndCredit(ctx, phone)
		require.NoError(t, err)
		assert.Equal(t, 0, result.CreditedCount)
		assert.False(t, result.AlreadyPaid)
		assert.InDelta(t, 6.0, result.HoursRemaining, 0.01)

		account, err := store.GetByPhone(phone)
		require.NoError(t, err)
		assert.Equal(t, money.Amount(0), account.Balance)
	})

	t.Run("credits once per calendar day", func(t *testing.T) {
		now := purchased.Add(25 * time.Hour)
		svc, store := newTestService(t, now)
		require.NoError(t, store.Create(&models.Account{Phone: phone}))
		inv := seedInvestment(t, store, 280, purchased, "30 days")

		result, err := svc.CheckAndCredit(ctx, phone)
		require.NoError(t, err)
		assert.Equal(t, 1, result.CreditedCount)
		assert.Equal(t, money.FromMajor(280), result.Credited)

		account, err := store.GetByPhone(phone)
		require.NoError(t, err)
		assert.Equal(t, money.FromMajor(280), account.Balance)
		assert.Equal(t, money.FromMajor(280), account.EarnBalance)
		require.NotNil(t, account.LastDailyIncomeDate)

		stored, err := store.Investments().GetByID(inv.ID)
		require.NoError(t, err)
		assert.Equal(t, money.FromMajor(280), stored.TotalEarned)
		require.NotNil(t, stored.LastIncomeDate)

		// A completed ledger entry accompanies the credit.
		txs, err := store.Transactions().ListByAccount(phone, 10, 0)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, models.TransactionTypeDailyIncome, txs[0].Type)
		assert.Equal(t, models.TransactionStatusCompleted, txs[0].Status)

		// A second call the same day is a no-op.
		result, err = svc.CheckAndCredit(ctx, phone)
		require.NoError(t, err)
		assert.Equal(t, 0, result.CreditedCount)
		assert.True(t, result.AlreadyPaid)

		account, err = store.GetByPhone(phone)
		require.NoError(t, err)
		assert.Equal(t, money.FromMajor(280), account.Balance)
	})

	t.Run("credits again the next day", func(t *testing.T) {
		svc, store := newTestService(t, purchased.Add(25*time.Hour))
		require.NoError(t, store.Create(&models.Account{Phone: phone}))
		seedInvestment(t, store, 280, purchased, "30 days")

		_, err := svc.CheckAndCredit(ctx, phone)
		require.NoError(t, err)

		svc.now = func() time.Time { return purchased.Add(49 * time.Hour) }
		result, err := svc.CheckAndCredit(ctx, phone)
		require.NoError(t, err)
		assert.Equal(t, 1, result.CreditedCount)

		account, err := store.GetByPhone(phone)
		require.NoError(t, err)
		assert.Equal(t, money.FromMajor(560), account.Balance)
	})

	t.Run("expired investments are deactivated without credit", func(t *testing.T) {
		now := purchased.AddDate(0, 0, 31)
		svc, store := newTestService(t, now)
		require.NoError(t, store.Create(&models.Account{Phone: phone}))
		inv := seedInvestment(t, store, 280, purchased, "30 days")

		result, err := svc.CheckAndCredit(ctx, phone)
		require.NoError(t, err)
		assert.Equal(t, 0, result.CreditedCount)

		stored, err := store.Investments().GetByID(inv.ID)
		require.NoError(t, err)
		assert.False(t, stored.IsActive)

		account, err := store.GetByPhone(phone)
		require.NoError(t, err)
		assert.Equal(t, money.Amount(0), account.Balance)
	})

	t.Run("each investment is gated independently", func(t *testing.T) {
		now := purchased.Add(25 * time.Hour)
		svc, store := newTestService(t, now)
		require.NoError(t, store.Create(&models.Account{Phone: phone}))

		paid := seedInvestment(t, store, 100, purchased, "30 days")
		paid.LastIncomeDate = &now
		require.NoError(t, store.SaveInvestment(paid))
		seedInvestment(t, store, 200, purchased, "30 days")

		result, err := svc.CheckAndCredit(ctx, phone)
		require.NoError(t, err)
		assert.Equal(t, 1, result.CreditedCount)
		assert.Equal(t, money.FromMajor(200), result.Credited)
		assert.True(t, result.AlreadyPaid)
	})

	t.Run("unknown account", func(t *testing.T) {
		svc, _ := newTestService(t, purchased)
		_, err := svc.CheckAndCredit(ctx, "01799999999")
		assert.Error(t, err)
	})
}
