package coupon

import (
	"context"
	"testing"

	"trivest/internal/lock"
	"trivest/internal/models"
	"trivest/internal/money"
	"trivest/internal/repositories/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (Service, *repotest.Store) {
	t.Helper()
	store := repotest.NewStore()
	return NewService(store, store.Coupons(), nil, lock.NewKeyedMutex(), nil), store
}

func seedCoupon(t *testing.T, store *repotest.Store, code string, bonus int64, maxUsage *int) *models.Coupon {
	t.Helper()
	c := &models.Coupon{
		Code:        code,
		BonusAmount: money.FromMajor(bonus),
		MaxUsage:    maxUsage,
		IsActive:    true,
	}
	require.NoError(t, store.Coupons().Create(c))
	return c
}

func intPtr(v int) *int { return &v }

func TestRedeem(t *testing.T) {
	ctx := context.Background()

	t.Run("credits the bonus and records the usage", func(t *testing.T) {
		svc, store := newTestService(t)
		seedCoupon(t, store, "WELCOME100", 100, nil)
		require.NoError(t, store.Create(&models.Account{Phone: "01700000001", Balance: money.FromMajor(50)}))

		result, err := svc.Redeem(ctx, "WELCOME100", "01700000001")
		require.NoError(t, err)
		assert.Equal(t, money.FromMajor(100), result.Bonus)
		assert.Equal(t, money.FromMajor(150), result.NewBalance)

		account, err := store.GetByPhone("01700000001")
		require.NoError(t, err)
		assert.Equal(t, money.FromMajor(150), account.Balance)
		assert.Equal(t, money.FromMajor(100), account.EarnBalance)

		txs, err := store.Transactions().ListByAccount("01700000001", 10, 0)
		require.NoError(t, err)
		require.Len(t, txs, 1)
		assert.Equal(t, models.TransactionTypeCouponRedeem, txs[0].Type)
		assert.Equal(t, models.TransactionStatusCompleted, txs[0].Status)
	})

	t.Run("one redemption per account", func(t *testing.T) {
		svc, store := newTestService(t)
		seedCoupon(t, store, "ONCE", 100, nil)
		require.NoError(t, store.Create(&models.Account{Phone: "01700000001"}))

		_, err := svc.Redeem(ctx, "ONCE", "01700000001")
		require.NoError(t, err)
		_, err = svc.Redeem(ctx, "ONCE", "01700000001")
		assert.ErrorIs(t, err, ErrAlreadyUsed)

		account, err := store.GetByPhone("01700000001")
		require.NoError(t, err)
		assert.Equal(t, money.FromMajor(100), account.Balance)
	})

	t.Run("usage cap counts distinct accounts", func(t *testing.T) {
		svc, store := newTestService(t)
		c := seedCoupon(t, store, "CAPPED", 100, intPtr(2))
		require.NoError(t, store.Create(&models.Account{Phone: "01700000001"}))
		require.NoError(t, store.Create(&models.Account{Phone: "01700000002"}))
		require.NoError(t, store.Create(&models.Account{Phone: "01700000003"}))

		_, err := svc.Redeem(ctx, "CAPPED", "01700000001")
		require.NoError(t, err)
		_, err = svc.Redeem(ctx, "CAPPED", "01700000002")
		require.NoError(t, err)
		_, err = svc.Redeem(ctx, "CAPPED", "01700000003")
		assert.ErrorIs(t, err, ErrUsageExceeded)

		usages, err := store.Coupons().ListUsages(c.ID)
		require.NoError(t, err)
		assert.Len(t, usages, 2)
	})

	t.Run("inactive coupon", func(t *testing.T) {
		svc, store := newTestService(t)
		c := seedCoupon(t, store, "DEAD", 100, nil)
		c.IsActive = false
		require.NoError(t, store.SaveCoupon(c))
		require.NoError(t, store.Create(&models.Account{Phone: "01700000001"}))

		_, err := svc.Redeem(ctx, "DEAD", "01700000001")
		assert.ErrorIs(t, err, ErrCouponInactive)
	})

	t.Run("unknown code", func(t *testing.T) {
		svc, store := newTestService(t)
		require.NoError(t, store.Create(&models.Account{Phone: "01700000001"}))

		_, err := svc.Redeem(ctx, "NOPE", "01700000001")
		assert.ErrorIs(t, err, ErrCouponNotFound)
	})

	t.Run("code is trimmed", func(t *testing.T) {
		svc, store := newTestService(t)
		seedCoupon(t, store, "SPACY", 100, nil)
		require.NoError(t, store.Create(&models.Account{Phone: "01700000001"}))

		_, err := svc.Redeem(ctx, "  SPACY  ", "01700000001")
		assert.NoError(t, err)
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate code", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Create(ctx, "BONUS", money.FromMajor(100), nil)
		require.NoError(t, err)
		_, err = svc.Create(ctx, "BONUS", money.FromMajor(200), nil)
		assert.ErrorIs(t, err, ErrCodeExists)
	})

	t.Run("rejects empty code and non-positive bonus", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Create(ctx, "", money.FromMajor(100), nil)
		assert.Error(t, err)
		_, err = svc.Create(ctx, "ZERO", 0, nil)
		assert.Error(t, err)
	})
}
