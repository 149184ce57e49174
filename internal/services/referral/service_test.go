package referral

import (
	"context"
	"fmt"
	"testing"

	"trivest/internal/lock"
	"trivest/internal/models"
	"trivest/internal/money"
	"trivest/internal/repositories/repotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, acc Accumulator) (Service, *repotest.Store) {
	t.Helper()
	store := repotest.NewStore()
	return NewService(store, store.Transactions(), nil, lock.NewKeyedMutex(), nil, acc), store
}

func addAccount(t *testing.T, store *repotest.Store, phone, referredBy string) {
	t.Helper()
	require.NoError(t, store.Create(&models.Account{Phone: phone, ReferredBy: referredBy}))
}

func addSettled(t *testing.T, store *repotest.Store, phone, txType, status string, amount int64) {
	t.Helper()
	require.NoError(t, store.CreateTransaction(&models.Transaction{
		TransactionID: fmt.Sprintf("TX-%s-%s-%d", phone, txType, amount),
		AccountPhone:  phone,
		Type:          txType,
		Status:        status,
		Amount:        money.FromMajor(amount),
	}))
}

// A three-deep chain: root <- a <- b <- c, each member with 1000 in
// approved recharge activity.
func seedChain(t *testing.T, store *repotest.Store) {
	addAccount(t, store, "root", "")
	addAccount(t, store, "a", "root")
	addAccount(t, store, "b", "a")
	addAccount(t, store, "c", "b")
	for _, phone := range []string{"a", "b", "c"} {
		addSettled(t, store, phone, models.TransactionTypeRecharge, models.TransactionStatusApproved, 1000)
	}
}

func TestCompute(t *testing.T) {
	ctx := context.Background()

	t.Run("level rates over settled activity", func(t *testing.T) {
		svc, store := newTestService(t, Resumming{})
		seedChain(t, store)

		b, err := svc.Compute(ctx, "root")
		require.NoError(t, err)
		require.Len(t, b.LevelA, 1)
		require.Len(t, b.LevelB, 1)
		require.Len(t, b.LevelC, 1)

		assert.Equal(t, money.FromMajor(1000), b.LevelA[0].Activity)
		assert.Equal(t, money.FromMajor(160), b.LevelAIncome)
		assert.Equal(t, money.FromMajor(20), b.LevelBIncome)
		assert.Equal(t, money.FromMajor(20), b.LevelCIncome)
		assert.Equal(t, money.FromMajor(200), b.TotalTeamIncome)
	})

	t.Run("pending activity is excluded", func(t *testing.T) {
		svc, store := newTestService(t, Resumming{})
		addAccount(t, store, "root", "")
		addAccount(t, store, "a", "root")
		addSettled(t, store, "a", models.TransactionTypeRecharge, models.TransactionStatusPending, 1000)
		addSettled(t, store, "a", models.TransactionTypeRecharge, models.TransactionStatusRejected, 500)

		b, err := svc.Compute(ctx, "root")
		require.NoError(t, err)
		assert.Equal(t, money.Amount(0), b.LevelAIncome)
	})

	t.Run("withdrawals count toward activity", func(t *testing.T) {
		svc, store := newTestService(t, Resumming{})
		addAccount(t, store, "root", "")
		addAccount(t, store, "a", "root")
		addSettled(t, store, "a", models.TransactionTypeRecharge, models.TransactionStatusApproved, 600)
		addSettled(t, store, "a", models.TransactionTypeWithdraw, models.TransactionStatusApproved, 400)

		b, err := svc.Compute(ctx, "root")
		require.NoError(t, err)
		assert.Equal(t, money.FromMajor(1000), b.LevelA[0].Activity)
		assert.Equal(t, money.FromMajor(160), b.LevelAIncome)
	})

	t.Run("daily income is not activity", func(t *testing.T) {
		svc, store := newTestService(t, Resumming{})
		addAccount(t, store, "root", "")
		addAccount(t, store, "a", "root")
		addSettled(t, store, "a", models.TransactionTypeDailyIncome, models.TransactionStatusCompleted, 1000)

		b, err := svc.Compute(ctx, "root")
		require.NoError(t, err)
		assert.Equal(t, money.Amount(0), b.TotalTeamIncome)
	})
}

func TestApplyResumming(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Resumming{})
	seedChain(t, store)

	first, err := svc.Apply(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, money.FromMajor(200), first.Credited)

	account, err := store.GetByPhone("root")
	require.NoError(t, err)
	assert.Equal(t, money.FromMajor(200), account.Balance)
	assert.Equal(t, money.FromMajor(200), account.EarnBalance)
	assert.Equal(t, money.FromMajor(200), account.ReferralCommission)
	assert.Equal(t, money.FromMajor(200), account.TotalCommissionEarned)

	// The historical engine re-sums lifetime activity: a second Apply
	// with unchanged activity credits the full total again.
	second, err := svc.Apply(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, money.FromMajor(200), second.Credited)

	account, err = store.GetByPhone("root")
	require.NoError(t, err)
	assert.Equal(t, money.FromMajor(400), account.Balance)

	txs, err := store.Transactions().ListByAccount("root", 10, 0)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, models.TransactionTypeReferralIncome, txs[0].Type)
}

func TestApplyCheckpoint(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Checkpoint{})
	seedChain(t, store)

	first, err := svc.Apply(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, money.FromMajor(200), first.Credited)

	// Unchanged activity: nothing new to credit, no ledger entry.
	second, err := svc.Apply(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, money.Amount(0), second.Credited)

	account, err := store.GetByPhone("root")
	require.NoError(t, err)
	assert.Equal(t, money.FromMajor(200), account.Balance)

	txs, err := store.Transactions().ListByAccount("root", 10, 0)
	require.NoError(t, err)
	assert.Len(t, txs, 1)

	// New downstream activity credits only the delta.
	addSettled(t, store, "a", models.TransactionTypeRecharge, models.TransactionStatusApproved, 500)
	third, err := svc.Apply(ctx, "root")
	require.NoError(t, err)
	assert.Equal(t, money.FromMajor(80), third.Credited)
}

func TestAccumulatorByName(t *testing.T) {
	assert.Equal(t, "checkpoint", AccumulatorByName("checkpoint").Name())
	assert.Equal(t, "resumming", AccumulatorByName("resumming").Name())
	assert.Equal(t, "resumming", AccumulatorByName("").Name())
}
