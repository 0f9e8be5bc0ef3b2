package login

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-otp-signup/internal/domain"
	"github.com/go-otp-signup/internal/pkg/validate"
)

type Request struct {
	Role     string `json:"role" validate:"required,oneof=user shopkeeper"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// User is the public view of a logged-in account.
type User struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Phone string      `json:"phone"`
	Role  domain.Role `json:"role"`
}

type Service interface {
	Login(ctx context.Context, req Request) (*User, error)
}

type accountFinder interface {
	FindByCredentials(ctx context.Context, role domain.Role, email, password string) (*domain.Account, error)
}

type service struct {
	accounts accountFinder
}

func NewService(accounts accountFinder) Service {
	return &service{accounts: accounts}
}

// Login matches email and password exactly within the role's collection.
func (s *service) Login(ctx context.Context, req Request) (*User, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	role := domain.Role(req.Role)
	a, err := s.accounts.FindByCredentials(ctx, role, req.Email, req.Password)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("login %s as %s: %w", req.Email, req.Role, domain.ErrInvalidCredentials)
	}
	if err != nil {
		return nil, fmt.Errorf("find account: %v: %w", err, domain.ErrInternal)
	}
	return &User{
		ID:    a.AccountID,
		Name:  a.Name,
		Email: a.Email,
		Phone: a.Phone,
		Role:  role,
	}, nil
}
