package registration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-otp-signup/internal/domain"
	"github.com/go-otp-signup/internal/pkg/clock"
	"github.com/go-otp-signup/internal/pkg/keylock"
	"github.com/go-otp-signup/internal/pkg/otp"
	"github.com/go-otp-signup/internal/pkg/validate"
)

type IssueOTPRequest struct {
	Role     string `json:"role" validate:"required,oneof=user shopkeeper"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}

// VerifyResult identifies the account created by a successful verification.
type VerifyResult struct {
	AccountID string
	Role      domain.Role
}

type Service interface {
	IssueOTP(ctx context.Context, req IssueOTPRequest) error
	VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyResult, error)
}

type emailSender interface {
	SendOTP(ctx context.Context, to, code string) error
}

type ServiceDeps struct {
	PendingStore domain.PendingStore
	AccountStore domain.AccountStore
	EmailSender  emailSender
	Clock        clock.Clock
	Locks        *keylock.Locker
	// GenerateOTP defaults to otp.Generate.
	GenerateOTP func() (string, error)
}

type service struct {
	pending  domain.PendingStore
	accounts domain.AccountStore
	sender   emailSender
	clock    clock.Clock
	locks    *keylock.Locker
	generate func() (string, error)
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		pending:  deps.PendingStore,
		accounts: deps.AccountStore,
		sender:   deps.EmailSender,
		clock:    deps.Clock,
		locks:    deps.Locks,
		generate: deps.GenerateOTP,
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	if s.locks == nil {
		s.locks = keylock.New()
	}
	if s.generate == nil {
		s.generate = otp.Generate
	}
	return s
}

// IssueOTP stages the registration and emails a fresh code. A failed send
// leaves the staged record in place.
func (s *service) IssueOTP(ctx context.Context, req IssueOTPRequest) error {
	if err := validate.Struct(req); err != nil {
		return domain.NewValidationError(err.Error())
	}

	code, err := s.generate()
	if err != nil {
		return fmt.Errorf("%v: %w", err, domain.ErrInternal)
	}
	rec := domain.NewPendingRegistration(domain.Profile{
		Role:     domain.Role(req.Role),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	}, code, s.clock.Now())

	unlock := s.locks.Lock(req.Email)
	err = s.pending.Put(ctx, rec)
	unlock()
	if err != nil {
		return fmt.Errorf("store pending registration: %v: %w", err, domain.ErrInternal)
	}

	if err := s.sender.SendOTP(ctx, req.Email, code); err != nil {
		return fmt.Errorf("send otp to %s: %v: %w", req.Email, err, domain.ErrEmailDelivery)
	}
	return nil
}

// VerifyOTP runs the whole lookup, check, insert and delete sequence under
// the email's lock so one code can create at most one account.
func (s *service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*VerifyResult, error) {
	if err := validate.Struct(req); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	unlock := s.locks.Lock(req.Email)
	defer unlock()

	rec, err := s.pending.Get(ctx, req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("no pending otp for %s: %w", req.Email, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load pending registration: %v: %w", err, domain.ErrInternal)
	}

	if rec.Expired(s.clock.Now()) {
		if err := s.pending.Delete(ctx, req.Email); err != nil {
			slog.WarnContext(ctx, "failed to delete expired pending registration", "email", req.Email, "err", err)
		}
		return nil, fmt.Errorf("otp for %s expired at %s: %w", req.Email, rec.ExpiresAt, domain.ErrExpired)
	}

	if req.OTP != rec.OTP {
		return nil, fmt.Errorf("otp mismatch for %s: %w", req.Email, domain.ErrMismatch)
	}

	role := rec.Profile.Role.Collection()
	acc := &domain.Account{
		Name:      rec.Profile.Name,
		Email:     rec.Profile.Email,
		Phone:     rec.Profile.Phone,
		Password:  rec.Profile.Password,
		CreatedAt: s.clock.Now(),
	}
	accountID, err := s.accounts.Insert(ctx, role, acc)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("insert account: %w: %w", domain.ErrConflict, domain.ErrPersistence)
		}
		return nil, fmt.Errorf("insert account: %v: %w", err, domain.ErrPersistence)
	}

	if err := s.pending.Delete(ctx, req.Email); err != nil {
		slog.WarnContext(ctx, "failed to delete verified pending registration", "email", req.Email, "err", err)
	}
	return &VerifyResult{AccountID: accountID, Role: role}, nil
}
