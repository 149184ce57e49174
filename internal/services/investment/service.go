package investment

import (
	"context"
	"errors"
	"time"

	domainerrors "trivest/internal/errors"
	"trivest/internal/models"
	"trivest/internal/repositories"
	"trivest/internal/services/ledger"
)

// Service manages purchased plan instances: creation, the activity
// window, expiration and cancellation. Accrual bookkeeping lives in
// the income service.
type Service interface {
	Purchase(ctx context.Context, phone string, planID uint) (*models.Investment, error)
	Cancel(ctx context.Context, investmentID uint) error
	DeactivateExpired(ctx context.Context, phone string) (int, error)
	ListForAccount(ctx context.Context, phone string) ([]models.Investment, error)
	ActivePlans(ctx context.Context) ([]models.Plan, error)
}

type service struct {
	repo     repositories.AccountRepository
	invRepo  repositories.InvestmentRepository
	planRepo repositories.PlanRepository
	cache    ledger.AccountCache
	locks    ledger.AccountLocker
	now      func() time.Time
}

// NewService creates the investment lifecycle service.
func NewService(
	repo repositories.AccountRepository,
	invRepo repositories.InvestmentRepository,
	planRepo repositories.PlanRepository,
	cache ledger.AccountCache,
	locks ledger.AccountLocker,
) Service {
	if repo == nil {
		panic("account repository is required")
	}
	if invRepo == nil {
		panic("investment repository is required")
	}
	if planRepo == nil {
		panic("plan repository is required")
	}
	if locks == nil {
		panic("account locker is required")
	}
	return &service{
		repo:     repo,
		invRepo:  invRepo,
		planRepo: planRepo,
		cache:    cache,
		locks:    locks,
		now:      time.Now,
	}
}

func (s *service) Purchase(ctx context.Context, phone string, planID uint) (*models.Investment, error) {
	plan, err := s.planRepo.GetByID(planID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlanNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if !plan.IsActive {
		return nil, ErrPlanInactive
	}

	s.locks.Lock(phone)
	defer s.locks.Unlock(phone)

	now := s.now()
	inv := &models.Investment{
		AccountPhone:    phone,
		PlanID:          plan.ID,
		PlanName:        plan.Name,
		InvestAmount:    plan.InvestAmount,
		DailyIncome:     plan.DailyIncome,
		Validity:        plan.Validity,
		InvestDate:      now,
		FirstIncomeDate: now.Add(FirstIncomeDelay),
		IsActive:        true,
	}

	err = s.repo.ExecuteInTransaction(func(r repositories.AccountRepository) error {
		account, err := r.GetByPhone(phone)
		if err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}
			return err
		}

		if _, err := s.invRepo.GetActiveByAccount(phone); err == nil {
			return ErrActivePlanExists
		} else if !errors.Is(err, repositories.ErrInvestmentNotFound) {
			return err
		}

		if account.Balance < plan.InvestAmount {
			return domainerrors.ErrInsufficientBalance
		}

		// The debit is synchronous; plan purchases never enter the
		// approval workflow.
		account.Balance -= plan.InvestAmount
		if err := r.Update(account); err != nil {
			return err
		}
		return r.CreateInvestment(inv)
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.InvalidateAccount(ctx, phone)
	}
	return inv, nil
}

func (s *service) Cancel(ctx context.Context, investmentID uint) error {
	inv, err := s.invRepo.GetByID(investmentID)
	if err != nil {
		if errors.Is(err, repositories.ErrInvestmentNotFound) {
			return ErrInvestmentNotFound
		}
		return err
	}

	s.locks.Lock(inv.AccountPhone)
	defer s.locks.Unlock(inv.AccountPhone)

	// No refund on cancellation.
	inv.IsActive = false
	return s.repo.SaveInvestment(inv)
}

// DeactivateExpired sweeps the account's active investments and
// deactivates any whose validity window has passed. It runs on
// request paths (there is no background scheduler).
func (s *service) DeactivateExpired(ctx context.Context, phone string) (int, error) {
	invs, err := s.invRepo.ListActiveByAccount(phone)
	if err != nil {
		return 0, err
	}

	now := s.now()
	deactivated := 0
	for i := range invs {
		if !IsExpired(&invs[i], now) {
			continue
		}
		invs[i].IsActive = false
		if err := s.repo.SaveInvestment(&invs[i]); err != nil {
			return deactivated, err
		}
		deactivated++
	}
	return deactivated, nil
}

func (s *service) ListForAccount(ctx context.Context, phone string) ([]models.Investment, error) {
	return s.invRepo.ListByAccount(phone)
}

func (s *service) ActivePlans(ctx context.Context) ([]models.Plan, error) {
	return s.planRepo.ListActive()
}
