package ledger

import (
	"context"
	"errors"
	"fmt"

	domainerrors "trivest/internal/errors"
	"trivest/internal/models"
	"trivest/internal/money"
	"trivest/internal/repositories"

	"github.com/google/uuid"
)

type service struct {
	repo    repositories.AccountRepository
	txRepo  repositories.TransactionRepository
	cache   AccountCache
	locks   AccountLocker
	metrics MetricsCollector
}

// NewService creates the transaction ledger service.
func NewService(
	repo repositories.AccountRepository,
	txRepo repositories.TransactionRepository,
	cache AccountCache,
	locks AccountLocker,
	metrics MetricsCollector,
) Service {
	if repo == nil {
		panic("account repository is required")
	}
	if txRepo == nil {
		panic("transaction repository is required")
	}
	if locks == nil {
		panic("account locker is required")
	}
	if cache == nil {
		cache = noopCache{}
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}
	return &service{
		repo:    repo,
		txRepo:  txRepo,
		cache:   cache,
		locks:   locks,
		metrics: metrics,
	}
}

type noopCache struct{}

func (noopCache) InvalidateAccount(context.Context, string) {}

// NewImmediateTransaction builds a completed ledger entry for the
// non-approval flows (daily income, referral income, coupon bonus).
// The income engines persist it inside their own unit of work so the
// entry and the balance mutation commit together.
func NewImmediateTransaction(phone, txType string, amount money.Amount, description string) (*models.Transaction, error) {
	if !models.IsImmediate(txType) {
		return nil, ErrUnsupportedType
	}
	if amount <= 0 {
		return nil, domainerrors.ErrInvalidAmount
	}
	return &models.Transaction{
		TransactionID: newTransactionID(),
		AccountPhone:  phone,
		Type:          txType,
		Status:        models.TransactionStatusCompleted,
		Amount:        amount,
		Description:   description,
	}, nil
}

func newTransactionID() string {
	return "TX-" + uuid.NewString()
}

func (s *service) CreateRecharge(ctx context.Context, phone string, amount money.Amount, meta PaymentMeta) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, domainerrors.ErrInvalidAmount
	}
	if amount < MinRecharge {
		return nil, ErrBelowMinimumRecharge
	}
	if _, err := s.getAccount(phone); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		TransactionID: newTransactionID(),
		AccountPhone:  phone,
		Type:          models.TransactionTypeRecharge,
		Status:        models.TransactionStatusPending,
		Amount:        amount,
		Description:   fmt.Sprintf("Recharge via %s", meta.Method),
		PaymentMethod: meta.Method,
		PaymentNumber: meta.Number,
		Metadata:      models.NewJSON(meta.Extra),
	}
	if err := s.repo.CreateTransaction(tx); err != nil {
		s.metrics.RecordError("create_recharge", "persistence")
		return nil, fmt.Errorf("failed to record recharge request: %w", err)
	}

	s.metrics.RecordTransaction(tx.Type, amount.Float())
	return tx, nil
}

func (s *service) CreateWithdrawal(ctx context.Context, phone string, amount money.Amount, meta PaymentMeta) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, domainerrors.ErrInvalidAmount
	}
	if amount < MinWithdrawal {
		return nil, ErrBelowMinimumWithdrawal
	}

	account, err := s.getAccount(phone)
	if err != nil {
		return nil, err
	}
	// Balance is checked at request time only; approval settles the
	// full requested amount without a re-check.
	if amount > account.Balance {
		return nil, domainerrors.ErrInsufficientBalance
	}

	fee := amount.MulPercent(WithdrawalFeePercent)
	tx := &models.Transaction{
		TransactionID:  newTransactionID(),
		AccountPhone:   phone,
		Type:           models.TransactionTypeWithdraw,
		Status:         models.TransactionStatusPending,
		Amount:         amount,
		WithdrawalFee:  fee,
		AmountAfterFee: amount - fee,
		Description:    fmt.Sprintf("Withdrawal to %s", meta.Method),
		PaymentMethod:  meta.Method,
		PaymentNumber:  meta.Number,
		Metadata:       models.NewJSON(meta.Extra),
	}
	if err := s.repo.CreateTransaction(tx); err != nil {
		s.metrics.RecordError("create_withdrawal", "persistence")
		return nil, fmt.Errorf("failed to record withdrawal request: %w", err)
	}

	s.metrics.RecordTransaction(tx.Type, amount.Float())
	return tx, nil
}

func (s *service) Approve(ctx context.Context, transactionID string) (*models.Transaction, error) {
	tx, err := s.txRepo.GetByTransactionID(transactionID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	s.locks.Lock(tx.AccountPhone)
	defer s.locks.Unlock(tx.AccountPhone)

	err = s.repo.ExecuteInTransaction(func(r repositories.AccountRepository) error {
		// Re-read under the lock; only a pending entry may settle, so
		// a duplicate approval is rejected instead of double-applied.
		current, err := s.txRepo.GetByTransactionID(transactionID)
		if err != nil {
			return err
		}
		if current.Status != models.TransactionStatusPending {
			return ErrInvalidAction
		}
		*tx = *current

		account, err := r.GetByPhone(tx.AccountPhone)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}
			return err
		}

		switch tx.Type {
		case models.TransactionTypeRecharge:
			account.Balance += tx.Amount
			account.TotalRecharge += tx.Amount
		case models.TransactionTypeWithdraw:
			// The fee is informational; the full requested amount is
			// deducted.
			account.Balance -= tx.Amount
		default:
			return ErrInvalidAction
		}

		if err := r.Update(account); err != nil {
			return err
		}
		tx.Status = models.TransactionStatusApproved
		return r.SaveTransaction(tx)
	})
	if err != nil {
		s.metrics.RecordError("approve", "transition")
		return nil, err
	}

	s.cache.InvalidateAccount(ctx, tx.AccountPhone)
	s.metrics.RecordTransaction("approve_"+tx.Type, tx.Amount.Float())
	return tx, nil
}

func (s *service) Reject(ctx context.Context, transactionID string) (*models.Transaction, error) {
	tx, err := s.txRepo.GetByTransactionID(transactionID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	s.locks.Lock(tx.AccountPhone)
	defer s.locks.Unlock(tx.AccountPhone)

	err = s.repo.ExecuteInTransaction(func(r repositories.AccountRepository) error {
		current, err := s.txRepo.GetByTransactionID(transactionID)
		if err != nil {
			return err
		}
		if current.Status != models.TransactionStatusPending {
			return ErrInvalidAction
		}
		*tx = *current
		// No balance change: nothing was applied at creation.
		tx.Status = models.TransactionStatusRejected
		return r.SaveTransaction(tx)
	})
	if err != nil {
		s.metrics.RecordError("reject", "transition")
		return nil, err
	}

	s.metrics.RecordTransaction("reject_"+tx.Type, tx.Amount.Float())
	return tx, nil
}

func (s *service) RecordImmediate(ctx context.Context, phone, txType string, amount money.Amount, description string) (*models.Transaction, error) {
	tx, err := NewImmediateTransaction(phone, txType, amount, description)
	if err != nil {
		return nil, err
	}
	if _, err := s.getAccount(phone); err != nil {
		return nil, err
	}
	if err := s.repo.CreateTransaction(tx); err != nil {
		s.metrics.RecordError("record_immediate", "persistence")
		return nil, fmt.Errorf("failed to record %s: %w", txType, err)
	}
	s.metrics.RecordTransaction(txType, amount.Float())
	return tx, nil
}

func (s *service) GetTransaction(ctx context.Context, transactionID string) (*models.Transaction, error) {
	tx, err := s.txRepo.GetByTransactionID(transactionID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return tx, nil
}

func (s *service) History(ctx context.Context, phone string, limit, offset int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.txRepo.ListByAccount(phone, limit, offset)
}

func (s *service) ListPending(ctx context.Context, limit, offset int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.txRepo.ListByStatus(models.TransactionStatusPending, limit, offset)
}

func (s *service) getAccount(phone string) (*models.Account, error) {
	account, err := s.repo.GetByPhone(phone)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}
