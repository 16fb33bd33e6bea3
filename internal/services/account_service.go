package services

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"motortrade/internal/domain"
	"motortrade/internal/repos"
)

const bcryptCost = 12

type AccountService struct {
	Accounts *repos.AccountRepo
}

func NewAccountService(accounts *repos.AccountRepo) *AccountService {
	return &AccountService{Accounts: accounts}
}

func (s *AccountService) Register(first, last, email, password string) (*domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	exists, err := s.Accounts.EmailExists(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	a := &domain.Account{
		ID:        uuid.NewString(),
		FirstName: first,
		LastName:  last,
		Email:     email,
		Hash:      string(hash),
		Role:      domain.RoleClient, // registration never mints admins
	}
	if err := s.Accounts.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// Login never reveals whether the email or the password was wrong.
func (s *AccountService) Login(email, password string) (*domain.Account, error) {
	a, err := s.Accounts.ByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBadCreds
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte(password)) != nil {
		return nil, ErrBadCreds
	}
	return a, nil
}

func (s *AccountService) Get(id string) (*domain.Account, error) {
	a, err := s.Accounts.ByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *AccountService) Update(id, first, last, email string) (*domain.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	current, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if current.Email != email {
		exists, err := s.Accounts.EmailExists(email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrEmailTaken
		}
	}

	return s.Accounts.Update(id, first, last, email)
}

// UpdatePassword verifies the current password before storing the new
// one; a mismatch maps to the same error as a failed login.
func (s *AccountService) UpdatePassword(id, currentPassword, newPassword string) error {
	a, err := s.Get(id)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.Hash), []byte(currentPassword)) != nil {
		return ErrBadCreds
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return err
	}
	return s.Accounts.UpdatePassword(id, string(hash))
}
