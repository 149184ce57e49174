// Package repotest provides an in-memory implementation of the
// repository interfaces for service tests.
package repotest

import (
	"sync"

	"trivest/internal/models"
	"trivest/internal/money"
	"trivest/internal/repositories"
)

// Store holds all repository data in memory. It implements
// AccountRepository itself; the narrower read interfaces are exposed
// through the Transactions, Investments, Coupons and Plans views
// because their method sets overlap in name. ExecuteInTransaction
// simply runs the callback against the same store; tests exercise
// business rules, not rollbacks.
type Store struct {
	mu           sync.Mutex
	accounts     map[string]models.Account
	transactions []models.Transaction
	investments  []models.Investment
	plans        map[uint]models.Plan
	coupons      map[uint]models.Coupon
	usages       []models.CouponUsage
	nextID       uint
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]models.Account),
		plans:    make(map[uint]models.Plan),
		coupons:  make(map[uint]models.Coupon),
	}
}

func (s *Store) Transactions() repositories.TransactionRepository { return txView{s} }
func (s *Store) Investments() repositories.InvestmentRepository   { return invView{s} }
func (s *Store) Coupons() repositories.CouponRepository           { return couponView{s} }
func (s *Store) Plans() repositories.PlanRepository               { return planView{s} }

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

// AccountRepository

func (s *Store) Create(account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.Phone]; ok {
		return repositories.ErrDuplicateRecord
	}
	account.ID = s.id()
	s.accounts[account.Phone] = *account
	return nil
}

func (s *Store) GetByPhone(phone string) (*models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[phone]
	if !ok {
		return nil, repositories.ErrAccountNotFound
	}
	return &account, nil
}

func (s *Store) Update(account *models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[account.Phone]; !ok {
		return repositories.ErrAccountNotFound
	}
	s.accounts[account.Phone] = *account
	return nil
}

func (s *Store) ListByReferredBy(phone string) ([]models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Account
	for _, account := range s.accounts {
		if account.ReferredBy == phone {
			out = append(out, account)
		}
	}
	return out, nil
}

func (s *Store) CreateTransaction(tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx.ID = s.id()
	s.transactions = append(s.transactions, *tx)
	return nil
}

func (s *Store) SaveTransaction(tx *models.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].TransactionID == tx.TransactionID {
			s.transactions[i] = *tx
			return nil
		}
	}
	return repositories.ErrTransactionNotFound
}

func (s *Store) CreateInvestment(inv *models.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv.ID = s.id()
	s.investments = append(s.investments, *inv)
	return nil
}

func (s *Store) SaveInvestment(inv *models.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.investments {
		if s.investments[i].ID == inv.ID {
			s.investments[i] = *inv
			return nil
		}
	}
	return repositories.ErrInvestmentNotFound
}

func (s *Store) SaveCoupon(coupon *models.Coupon) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.coupons[coupon.ID]; !ok {
		return repositories.ErrCouponNotFound
	}
	s.coupons[coupon.ID] = *coupon
	return nil
}

func (s *Store) CreateCouponUsage(usage *models.CouponUsage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.usages {
		if u.CouponID == usage.CouponID && u.AccountPhone == usage.AccountPhone {
			return repositories.ErrDuplicateRecord
		}
	}
	usage.ID = s.id()
	s.usages = append(s.usages, *usage)
	return nil
}

func (s *Store) ExecuteInTransaction(fn func(tx repositories.AccountRepository) error) error {
	return fn(s)
}

// TransactionRepository view

type txView struct{ s *Store }

func (v txView) GetByTransactionID(transactionID string) (*models.Transaction, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.transactions {
		if v.s.transactions[i].TransactionID == transactionID {
			tx := v.s.transactions[i]
			return &tx, nil
		}
	}
	return nil, repositories.ErrTransactionNotFound
}

func (v txView) ListByAccount(phone string, limit, offset int) ([]models.Transaction, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []models.Transaction
	for _, tx := range v.s.transactions {
		if tx.AccountPhone == phone {
			out = append(out, tx)
		}
	}
	return page(out, limit, offset), nil
}

func (v txView) ListByStatus(status string, limit, offset int) ([]models.Transaction, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []models.Transaction
	for _, tx := range v.s.transactions {
		if tx.Status == status {
			out = append(out, tx)
		}
	}
	return page(out, limit, offset), nil
}

func (v txView) SumSettledByAccount(phone string, types []string) (money.Amount, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var sum money.Amount
	for _, tx := range v.s.transactions {
		if tx.AccountPhone != phone {
			continue
		}
		if tx.Status != models.TransactionStatusApproved && tx.Status != models.TransactionStatusCompleted {
			continue
		}
		for _, t := range types {
			if tx.Type == t {
				sum += tx.Amount
				break
			}
		}
	}
	return sum, nil
}

func page(txs []models.Transaction, limit, offset int) []models.Transaction {
	if offset >= len(txs) {
		return nil
	}
	txs = txs[offset:]
	if limit > 0 && limit < len(txs) {
		txs = txs[:limit]
	}
	return txs
}

// InvestmentRepository view

type invView struct{ s *Store }

func (v invView) GetByID(id uint) (*models.Investment, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.investments {
		if v.s.investments[i].ID == id {
			inv := v.s.investments[i]
			return &inv, nil
		}
	}
	return nil, repositories.ErrInvestmentNotFound
}

func (v invView) GetActiveByAccount(phone string) (*models.Investment, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for i := range v.s.investments {
		if v.s.investments[i].AccountPhone == phone && v.s.investments[i].IsActive {
			inv := v.s.investments[i]
			return &inv, nil
		}
	}
	return nil, repositories.ErrInvestmentNotFound
}

func (v invView) ListActiveByAccount(phone string) ([]models.Investment, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []models.Investment
	for _, inv := range v.s.investments {
		if inv.AccountPhone == phone && inv.IsActive {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (v invView) ListByAccount(phone string) ([]models.Investment, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []models.Investment
	for _, inv := range v.s.investments {
		if inv.AccountPhone == phone {
			out = append(out, inv)
		}
	}
	return out, nil
}

// CouponRepository view

type couponView struct{ s *Store }

func (v couponView) Create(coupon *models.Coupon) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, c := range v.s.coupons {
		if c.Code == coupon.Code {
			return repositories.ErrDuplicateRecord
		}
	}
	coupon.ID = v.s.id()
	v.s.coupons[coupon.ID] = *coupon
	return nil
}

func (v couponView) GetByCode(code string) (*models.Coupon, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, c := range v.s.coupons {
		if c.Code == code {
			coupon := c
			return &coupon, nil
		}
	}
	return nil, repositories.ErrCouponNotFound
}

func (v couponView) HasUsed(couponID uint, phone string) (bool, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	for _, u := range v.s.usages {
		if u.CouponID == couponID && u.AccountPhone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (v couponView) ListUsages(couponID uint) ([]models.CouponUsage, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []models.CouponUsage
	for _, u := range v.s.usages {
		if u.CouponID == couponID {
			out = append(out, u)
		}
	}
	return out, nil
}

// PlanRepository view

type planView struct{ s *Store }

func (v planView) Create(plan *models.Plan) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	plan.ID = v.s.id()
	v.s.plans[plan.ID] = *plan
	return nil
}

func (v planView) GetByID(id uint) (*models.Plan, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	plan, ok := v.s.plans[id]
	if !ok {
		return nil, repositories.ErrPlanNotFound
	}
	return &plan, nil
}

func (v planView) ListActive() ([]models.Plan, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	var out []models.Plan
	for _, plan := range v.s.plans {
		if plan.IsActive {
			out = append(out, plan)
		}
	}
	return out, nil
}

func (v planView) Update(plan *models.Plan) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.plans[plan.ID]; !ok {
		return repositories.ErrPlanNotFound
	}
	v.s.plans[plan.ID] = *plan
	return nil
}
