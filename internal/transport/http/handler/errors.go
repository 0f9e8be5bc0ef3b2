package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-otp-signup/internal/domain"
)

// Caller-facing messages. Kept stable so clients and tests can rely on them.
const (
	MsgInvalidBody        = "Invalid request body"
	MsgOTPNotFound        = "OTP not found, request again"
	MsgOTPExpired         = "OTP expired, request again"
	MsgOTPMismatch        = "Invalid OTP"
	MsgEmailDelivery      = "Failed to send OTP email"
	MsgPersistence        = "Failed to create account"
	MsgAccountExists      = "Account already exists"
	MsgInvalidCredentials = "Invalid email or password"
	MsgInternal           = "Internal server error"

	MsgOTPSent        = "OTP sent to email"
	MsgAccountCreated = "Account created successfully"
	MsgLoginOK        = "Login successful"
	MsgAccountsListed = "Accounts fetched"
)

// messageFor maps a flow error onto its caller-facing message.
func messageFor(err error) string {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Message
	case errors.Is(err, domain.ErrNotFound):
		return MsgOTPNotFound
	case errors.Is(err, domain.ErrExpired):
		return MsgOTPExpired
	case errors.Is(err, domain.ErrMismatch):
		return MsgOTPMismatch
	case errors.Is(err, domain.ErrEmailDelivery):
		return MsgEmailDelivery
	case errors.Is(err, domain.ErrConflict):
		return MsgAccountExists
	case errors.Is(err, domain.ErrPersistence):
		return MsgPersistence
	case errors.Is(err, domain.ErrInvalidCredentials):
		return MsgInvalidCredentials
	default:
		return MsgInternal
	}
}

// operatorVisible reports whether err points at a broken collaborator
// rather than a caller mistake.
func operatorVisible(err error) bool {
	return errors.Is(err, domain.ErrEmailDelivery) ||
		errors.Is(err, domain.ErrPersistence) ||
		errors.Is(err, domain.ErrInternal) ||
		!isKnown(err)
}

func isKnown(err error) bool {
	for _, target := range []error{
		domain.ErrValidation, domain.ErrNotFound, domain.ErrExpired, domain.ErrMismatch,
		domain.ErrEmailDelivery, domain.ErrPersistence, domain.ErrConflict,
		domain.ErrInvalidCredentials, domain.ErrInternal,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// fail logs collaborator failures and writes the uniform failure body.
func fail(ctx context.Context, w http.ResponseWriter, op string, err error) {
	if operatorVisible(err) {
		slog.ErrorContext(ctx, "request failed", "op", op, "err", err)
	} else {
		slog.DebugContext(ctx, "request rejected", "op", op, "err", err)
	}
	writeFailure(w, messageFor(err))
}
