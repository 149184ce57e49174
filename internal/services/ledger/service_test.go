package ledger

import (
	"context"
	"testing"

	domainerrors "trivest/internal/errors"
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
	return NewService(store, store.Transactions(), nil, lock.NewKeyedMutex(), nil), store
}

func seedAccount(t *testing.T, store *repotest.Store, phone string, balance money.Amount) {
	t.Helper()
	require.NoError(t, store.Create(&models.Account{Phone: phone, Balance: balance}))
}

func TestCreateRecharge(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		phone   string
		amount  money.Amount
		wantErr error
	}{
		{name: "below minimum", phone: "01700000001", amount: money.FromMajor(999), wantErr: ErrBelowMinimumRecharge},
		{name: "negative amount", phone: "01700000001", amount: money.FromMajor(-50), wantErr: domainerrors.ErrInvalidAmount},
		{name: "unknown account", phone: "01799999999", amount: money.FromMajor(1000), wantErr: domainerrors.ErrAccountNotFound},
		{name: "exact minimum", phone: "01700000001", amount: money.FromMajor(1000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestService(t)
			seedAccount(t, store, "01700000001", 0)

			tx, err := svc.CreateRecharge(ctx, tt.phone, tt.amount, PaymentMeta{Method: "bkash", Number: "01811111111"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.TransactionStatusPending, tx.Status)
			assert.Equal(t, models.TransactionTypeRecharge, tx.Type)
			assert.Equal(t, tt.amount, tx.Amount)
			assert.NotEmpty(t, tx.TransactionID)

			// Nothing settles before approval.
			account, err := store.GetByPhone("01700000001")
			require.NoError(t, err)
			assert.Equal(t, money.Amount(0), account.Balance)
			assert.Equal(t, money.Amount(0), account.TotalRecharge)
		})
	}
}

func TestCreateWithdrawal(t *testing.T) {
	ctx := context.Background()

	t.Run("below minimum", func(t *testing.T) {
		svc, store := newTestService(t)
		seedAccount(t, store, "01700000001", money.FromMajor(5000))

		_, err := svc.CreateWithdrawal(ctx, "01700000001", money.FromMajor(299), PaymentMeta{Method: "nagad"})
		assert.ErrorIs(t, err, ErrBelowMinimumWithdrawal)
	})

	t.Run("insufficient balance at request time", func(t *testing.T) {
		svc, store := newTestService(t)
		seedAccount(t, store, "01700000001", money.FromMajor(200))

		_, err := svc.CreateWithdrawal(ctx, "01700000001", money.FromMajor(300), PaymentMeta{Method: "nagad"})
		assert.ErrorIs(t, err, domainerrors.ErrInsufficientBalance)
	})

	t.Run("fee is display only", func(t *testing.T) {
		svc, store := newTestService(t)
		seedAccount(t, store, "01700000001", money.FromMajor(1000))

		tx, err := svc.CreateWithdrawal(ctx, "01700000001", money.FromMajor(400), PaymentMeta{Method: "nagad", Number: "01822222222"})
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusPending, tx.Status)
		assert.Equal(t, money.FromMajor(400), tx.Amount)
		assert.Equal(t, money.FromMajor(100), tx.WithdrawalFee)
		assert.Equal(t, money.FromMajor(300), tx.AmountAfterFee)

		// The balance is untouched until approval.
		account, err := store.GetByPhone("01700000001")
		require.NoError(t, err)
		assert.Equal(t, money.FromMajor(1000), account.Balance)
	})
}

func TestApprove(t *testing.T) {
	ctx := context.Background()

	t.Run("recharge approval credits balance and lifetime total", func(t *testing.T) {
		svc, store := newTestService(t)
		seedAccount(t, store, "01700000001", 0)

		tx, err := svc.CreateRecharge(ctx, "01700000001", money.FromMajor(1000), PaymentMeta{Method: "bkash"})
		require.NoError(t, err)

		approved, err := svc.Approve(ctx, tx.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusApproved, approved.Status)

		account, err := store.GetByPhone("01700000001")
		require.NoError(t, err)
		assert.Equal(t, money.FromMajor(1000), account.Balance)
		assert.Equal(t, money.FromMajor(1000), account.TotalRecharge)
	})

	t.Run("approval settles exactly once", func(t *testing.T) {
		svc, store := newTestService(t)
		seedAccount(t, store, "01700000001", 0)

		tx, err := svc.CreateRecharge(ctx, "01700000001", money.FromMajor(1000), PaymentMeta{Method: "bkash"})
		require.NoError(t, err)

		_, err = svc.Approve(ctx, tx.TransactionID)
		require.NoError(t, err)
		_, err = svc.Approve(ctx, tx.TransactionID)
		assert.ErrorIs(t, err, ErrInvalidAction)

		account, err := store.GetByPhone("01700000001")
		require.NoError(t, err)
		assert.Equal(t, money.FromMajor(1000), account.Balance)
	})

	t.Run("withdrawal approval deducts the full requested amount", func(t *testing.T) {
		svc, store := newTestService(t)
		seedAccount(t, store, "01700000001", money.FromMajor(1000))

		tx, err := svc.CreateWithdrawal(ctx, "01700000001", money.FromMajor(400), PaymentMeta{Method: "nagad"})
		require.NoError(t, err)

		_, err = svc.Approve(ctx, tx.TransactionID)
		require.NoError(t, err)

		account, err := store.GetByPhone("01700000001")
		require.NoError(t, err)
		// Full 400 deducted; the 25% fee never reduces the settlement.
		assert.Equal(t, money.FromMajor(600), account.Balance)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.Approve(ctx, "TX-missing")
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})
}

func TestReject(t *testing.T) {
	ctx := context.Background()

	t.Run("rejection leaves the balance untouched", func(t *testing.T) {
		svc, store := newTestService(t)
		seedAccount(t, store, "01700000001", money.FromMajor(500))

		tx, err := svc.CreateWithdrawal(ctx, "01700000001", money.FromMajor(300), PaymentMeta{Method: "nagad"})
		require.NoError(t, err)

		rejected, err := svc.Reject(ctx, tx.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusRejected, rejected.Status)

		account, err := store.GetByPhone("01700000001")
		require.NoError(t, err)
		assert.Equal(t, money.FromMajor(500), account.Balance)
	})

	t.Run("approve after reject fails", func(t *testing.T) {
		svc, store := newTestService(t)
		seedAccount(t, store, "01700000001", 0)

		tx, err := svc.CreateRecharge(ctx, "01700000001", money.FromMajor(1000), PaymentMeta{Method: "bkash"})
		require.NoError(t, err)

		_, err = svc.Reject(ctx, tx.TransactionID)
		require.NoError(t, err)
		_, err = svc.Approve(ctx, tx.TransactionID)
		assert.ErrorIs(t, err, ErrInvalidAction)
	})
}

func TestRecordImmediate(t *testing.T) {
	ctx := context.Background()

	t.Run("income entry is created completed", func(t *testing.T) {
		svc, store := newTestService(t)
		seedAccount(t, store, "01700000001", 0)

		tx, err := svc.RecordImmediate(ctx, "01700000001", models.TransactionTypeDailyIncome, money.FromMajor(280), "Daily income")
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusCompleted, tx.Status)

		stored, err := store.Transactions().GetByTransactionID(tx.TransactionID)
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusCompleted, stored.Status)
	})

	t.Run("approval types are rejected", func(t *testing.T) {
		svc, store := newTestService(t)
		seedAccount(t, store, "01700000001", 0)

		_, err := svc.RecordImmediate(ctx, "01700000001", models.TransactionTypeRecharge, money.FromMajor(1000), "nope")
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})
}

func TestHistoryPaging(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t)
	seedAccount(t, store, "01700000001", money.FromMajor(100000))

	for i := 0; i < 5; i++ {
		_, err := svc.CreateWithdrawal(ctx, "01700000001", money.FromMajor(300), PaymentMeta{Method: "nagad"})
		require.NoError(t, err)
	}

	txs, err := svc.History(ctx, "01700000001", 2, 0)
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	txs, err = svc.History(ctx, "01700000001", 10, 4)
	require.NoError(t, err)
	assert.Len(t, txs, 1)

	pending, err := svc.ListPending(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, pending, 5)
}
