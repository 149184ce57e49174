// Package income credits daily plan income. Each active investment is
// gated by its own last-income date, so an account holding several
// plans over time collects one credit per investment per calendar day.
package income

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainerrors "trivest/internal/errors"
	"trivest/internal/models"
	"trivest/internal/money"
	"trivest/internal/repositories"
	"trivest/internal/services/investment"
	"trivest/internal/services/ledger"
)

// Result is the outcome of a CheckAndCredit call.
type Result struct {
	Credited       money.Amount `json:"credited"`
	CreditedCount  int          `json:"credited_count"`
	AlreadyPaid    bool         `json:"already_paid"`    // today's credit was applied earlier
	HoursRemaining float64      `json:"hours_remaining"` // until first income, when nothing is eligible yet
}

type Service interface {
	CheckAndCredit(ctx context.Context, phone string) (*Result, error)
}

type service struct {
	repo    repositories.AccountRepository
	invRepo repositories.InvestmentRepository
	cache   ledger.AccountCache
	locks   ledger.AccountLocker
	metrics ledger.MetricsCollector
	now     func() time.Time
}

func NewService(
	repo repositories.AccountRepository,
	invRepo repositories.InvestmentRepository,
	cache ledger.AccountCache,
	locks ledger.AccountLocker,
	metrics ledger.MetricsCollector,
) Service {
	if repo == nil {
		panic("account repository is required")
	}
	if invRepo == nil {
		panic("investment repository is required")
	}
	if locks == nil {
		panic("account locker is required")
	}
	if metrics == nil {
		metrics = &ledger.NoopMetricsCollector{}
	}
	return &service{
		repo:    repo,
		invRepo: invRepo,
		cache:   cache,
		locks:   locks,
		metrics: metrics,
		now:     time.Now,
	}
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func (s *service) CheckAndCredit(ctx context.Context, phone string) (*Result, error) {
	s.locks.Lock(phone)
	defer s.locks.Unlock(phone)

	now := s.now()
	result := &Result{}

	err := s.repo.ExecuteInTransaction(func(r repositories.AccountRepository) error {
		account, err := r.GetByPhone(phone)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}
			return err
		}

		invs, err := s.invRepo.ListActiveByAccount(phone)
		if err != nil {
			return err
		}

		var minUntilFirst time.Duration = -1
		accountDirty := false

		for i := range invs {
			inv := &invs[i]

			if investment.IsExpired(inv, now) {
				inv.IsActive = false
				if err := r.SaveInvestment(inv); err != nil {
					return err
				}
				continue
			}

			if now.Before(inv.FirstIncomeDate) {
				until := inv.FirstIncomeDate.Sub(now)
				if minUntilFirst < 0 || until < minUntilFirst {
					minUntilFirst = until
				}
				continue
			}

			if inv.LastIncomeDate != nil && sameCalendarDay(*inv.LastIncomeDate, now) {
				result.AlreadyPaid = true
				continue
			}

			// Eligible: one credit for this investment today.
			account.Balance += inv.DailyIncome
			account.EarnBalance += inv.DailyIncome
			account.LastDailyIncomeDate = &now
			accountDirty = true

			inv.TotalEarned += inv.DailyIncome
			t := now
			inv.LastIncomeDate = &t
			if err := r.SaveInvestment(inv); err != nil {
				return err
			}

			entry, err := ledger.NewImmediateTransaction(
				phone,
				models.TransactionTypeDailyIncome,
				inv.DailyIncome,
				fmt.Sprintf("Daily income from %s", inv.PlanName),
			)
			if err != nil {
				return err
			}
			if err := r.CreateTransaction(entry); err != nil {
				return err
			}

			result.Credited += inv.DailyIncome
			result.CreditedCount++
		}

		if accountDirty {
			if err := r.Update(account); err != nil {
				return err
			}
		}
		if result.CreditedCount == 0 && minUntilFirst >= 0 {
			result.HoursRemaining = minUntilFirst.Hours()
		}
		return nil
	})
	if err != nil {
		s.metrics.RecordError("daily_income", "credit")
		return nil, err
	}

	if result.CreditedCount > 0 {
		if s.cache != nil {
			s.cache.InvalidateAccount(ctx, phone)
		}
		s.metrics.RecordTransaction(models.TransactionTypeDailyIncome, result.Credited.Float())
	}
	return result, nil
}
