package account

import (
	"context"
	"errors"
	"testing"

	"github.com/go-otp-signup/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockLister struct{ mock.Mock }

func (m *mockLister) List(ctx context.Context, role domain.Role, limit int) ([]domain.Account, error) {
	args := m.Called(ctx, role, limit)
	accs, _ := args.Get(0).([]domain.Account)
	return accs, args.Error(1)
}

func TestList_UnknownRole(t *testing.T) {
	_, err := NewService(&mockLister{}).List(context.Background(), "admin", 10)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestList_LimitClamped(t *testing.T) {
	cases := map[string]struct{ in, want int }{
		"default": {0, DefaultLimit},
		"max":     {10_000, MaxLimit},
		"as is":   {7, 7},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			l := &mockLister{}
			l.On("List", mock.Anything, domain.RoleUser, tc.want).Return([]domain.Account{{AccountID: "u1"}}, nil)

			accs, err := NewService(l).List(context.Background(), domain.RoleUser, tc.in)

			require.NoError(t, err)
			assert.Len(t, accs, 1)
			l.AssertExpectations(t)
		})
	}
}

func TestList_RepoFailure(t *testing.T) {
	l := &mockLister{}
	l.On("List", mock.Anything, domain.RoleShopkeeper, DefaultLimit).Return(nil, errors.New("scan failed"))

	_, err := NewService(l).List(context.Background(), domain.RoleShopkeeper, 0)

	assert.ErrorIs(t, err, domain.ErrInternal)
}
