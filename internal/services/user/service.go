// Package user handles registration: creating the identity record and
// its account row, and wiring the referral linkage.
package user

import (
	"errors"

	domainerrors "trivest/internal/errors"
	"trivest/internal/models"
	"trivest/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPhoneTaken = domainerrors.New(
		domainerrors.KindConflict, "PHONE_TAKEN", "phone number already registered")
	ErrUnknownReferrer = domainerrors.New(
		domainerrors.KindValidation, "UNKNOWN_REFERRER", "referral code does not match any account")
)

// RegisterInput is the registration payload.
type RegisterInput struct {
	Phone      string
	Name       string
	Password   string
	ReferredBy string // upstream account's phone number, optional
}

type Service interface {
	Register(input RegisterInput) (*models.User, *models.Account, error)
	GetAccount(phone string) (*models.Account, error)
}

type service struct {
	userRepo    repositories.UserRepository
	accountRepo repositories.AccountRepository
}

func NewService(userRepo repositories.UserRepository, accountRepo repositories.AccountRepository) Service {
	return &service{
		userRepo:    userRepo,
		accountRepo: accountRepo,
	}
}

func (s *service) Register(input RegisterInput) (*models.User, *models.Account, error) {
	if input.Phone == "" || input.Password == "" {
		return nil, nil, domainerrors.New(
			domainerrors.KindValidation, "MISSING_FIELDS", "phone and password are required")
	}

	if input.ReferredBy != "" {
		if _, err := s.accountRepo.GetByPhone(input.ReferredBy); err != nil {
			if errors.Is(err, repositories.ErrAccountNotFound) {
				return nil, nil, ErrUnknownReferrer
			}
			return nil, nil, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	u := &models.User{
		Phone:    input.Phone,
		Name:     input.Name,
		Password: string(hashed),
	}
	if err := s.userRepo.Create(u); err != nil {
		if errors.Is(err, repositories.ErrDuplicateRecord) {
			return nil, nil, ErrPhoneTaken
		}
		return nil, nil, err
	}

	account := &models.Account{
		Phone:      input.Phone,
		ReferredBy: input.ReferredBy,
	}
	if err := s.accountRepo.Create(account); err != nil {
		return nil, nil, err
	}

	return u, account, nil
}

func (s *service) GetAccount(phone string) (*models.Account, error) {
	account, err := s.accountRepo.GetByPhone(phone)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound
		}
		return nil, err
	}
	return account, nil
}
