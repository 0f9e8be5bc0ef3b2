package account

import (
	"context"
	"fmt"

	"github.com/go-otp-signup/internal/domain"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type Service interface {
	List(ctx context.Context, role domain.Role, limit int) ([]domain.Account, error)
}

type accountLister interface {
	List(ctx context.Context, role domain.Role, limit int) ([]domain.Account, error)
}

type service struct {
	repo accountLister
}

func NewService(repo accountLister) Service { return &service{repo: repo} }

// List returns up to limit accounts of a recognized role, newest first.
func (s *service) List(ctx context.Context, role domain.Role, limit int) ([]domain.Account, error) {
	if !role.Valid() {
		return nil, domain.NewValidationError(fmt.Sprintf("unknown role %q", role))
	}
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	accounts, err := s.repo.List(ctx, role, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s accounts: %v: %w", role, err, domain.ErrInternal)
	}
	return accounts, nil
}
