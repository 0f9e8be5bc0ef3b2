package http

import (
	"context"

	"github.com/go-otp-signup/internal/domain"
	"github.com/go-otp-signup/internal/pkg/clock"
	"github.com/go-otp-signup/internal/pkg/keylock"
)

// EmailSender delivers an OTP to an address.
type EmailSender interface {
	SendOTP(ctx context.Context, to, code string) error
}

// Deps holds the collaborators the router wires into the flows.
type Deps struct {
	PendingStore domain.PendingStore
	AccountStore domain.AccountStore
	EmailSender  EmailSender
	Clock        clock.Clock
	Locks        *keylock.Locker
}
