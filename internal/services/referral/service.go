// Package referral computes and credits commission over the
// fixed-depth three-level referral tree.
package referral

import (
	"context"
	"errors"

	domainerrors "trivest/internal/errors"
	"trivest/internal/models"
	"trivest/internal/money"
	"trivest/internal/repositories"
	"trivest/internal/services/ledger"
)

type Service interface {
	// Compute walks the three referral levels and sums each member's
	// lifetime settled recharge+withdraw activity times the level rate.
	Compute(ctx context.Context, phone string) (*Breakdown, error)
	// Apply runs Compute and credits the accumulator-decided amount to
	// the account, recording one referral_income ledger entry.
	Apply(ctx context.Context, phone string) (*ApplyResult, error)
}

type service struct {
	repo        repositories.AccountRepository
	txRepo      repositories.TransactionRepository
	cache       ledger.AccountCache
	locks       ledger.AccountLocker
	metrics     ledger.MetricsCollector
	accumulator Accumulator
}

func NewService(
	repo repositories.AccountRepository,
	txRepo repositories.TransactionRepository,
	cache ledger.AccountCache,
	locks ledger.AccountLocker,
	metrics ledger.MetricsCollector,
	accumulator Accumulator,
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
	if metrics == nil {
		metrics = &ledger.NoopMetricsCollector{}
	}
	if accumulator == nil {
		accumulator = Resumming{}
	}
	return &service{
		repo:        repo,
		txRepo:      txRepo,
		cache:       cache,
		locks:       locks,
		metrics:     metrics,
		accumulator: accumulator,
	}
}

var activityTypes = []string{
	models.TransactionTypeRecharge,
	models.TransactionTypeWithdraw,
}

func (s *service) Compute(ctx context.Context, phone string) (*Breakdown, error) {
	if _, err := s.repo.GetByPhone(phone); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}
		return nil, err
	}

	levelA, err := s.repo.ListByReferredBy(phone)
	if err != nil {
		return nil, err
	}
	levelB, err := s.nextLevel(levelA)
	if err != nil {
		return nil, err
	}
	levelC, err := s.nextLevel(levelB)
	if err != nil {
		return nil, err
	}

	b := &Breakdown{}
	if b.LevelA, b.LevelAIncome, err = s.levelIncome(levelA, LevelARatePercent); err != nil {
		return nil, err
	}
	if b.LevelB, b.LevelBIncome, err = s.levelIncome(levelB, LevelBRatePercent); err != nil {
		return nil, err
	}
	if b.LevelC, b.LevelCIncome, err = s.levelIncome(levelC, LevelCRatePercent); err != nil {
		return nil, err
	}
	b.TotalTeamIncome = b.LevelAIncome + b.LevelBIncome + b.LevelCIncome
	return b, nil
}

func (s *service) nextLevel(members []models.Account) ([]models.Account, error) {
	var next []models.Account
	for i := range members {
		downstream, err := s.repo.ListByReferredBy(members[i].Phone)
		if err != nil {
			return nil, err
		}
		next = append(next, downstream...)
	}
	return next, nil
}

func (s *service) levelIncome(members []models.Account, ratePercent int64) ([]Member, money.Amount, error) {
	out := make([]Member, 0, len(members))
	var income money.Amount
	for i := range members {
		activity, err := s.txRepo.SumSettledByAccount(members[i].Phone, activityTypes)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, Member{Phone: members[i].Phone, Activity: activity})
		income += activity.MulPercent(ratePercent)
	}
	return out, income, nil
}

func (s *service) Apply(ctx context.Context, phone string) (*ApplyResult, error) {
	breakdown, err := s.Compute(ctx, phone)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(phone)
	defer s.locks.Unlock(phone)

	result := &ApplyResult{Breakdown: *breakdown}

	err = s.repo.ExecuteInTransaction(func(r repositories.AccountRepository) error {
		account, err := r.GetByPhone(phone)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}
			return err
		}

		credit := s.accumulator.CreditAmount(account, breakdown.TotalTeamIncome)
		result.Credited = credit
		if credit <= 0 {
			return nil
		}

		account.ReferralCommission += credit
		account.TotalCommissionEarned += credit
		account.EarnBalance += credit
		account.Balance += credit
		if err := r.Update(account); err != nil {
			return err
		}

		entry, err := ledger.NewImmediateTransaction(
			phone,
			models.TransactionTypeReferralIncome,
			credit,
			"Team referral commission",
		)
		if err != nil {
			return err
		}
		return r.CreateTransaction(entry)
	})
	if err != nil {
		s.metrics.RecordError("referral_apply", "credit")
		return nil, err
	}

	if result.Credited > 0 {
		if s.cache != nil {
			s.cache.InvalidateAccount(ctx, phone)
		}
		s.metrics.RecordTransaction(models.TransactionTypeReferralIncome, result.Credited.Float())
	}
	return result, nil
}
