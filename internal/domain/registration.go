package domain

import (
	"context"
	"time"
)

// OTPValidity is how long an issued code may be verified.
const OTPValidity = 5 * time.Minute

// Profile is the registration payload held verbatim until verification.
type Profile struct {
	Role     Role   `json:"role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// PendingRegistration is the staged signup for one email address.
type PendingRegistration struct {
	OTP       string    `json:"otp"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Profile   Profile   `json:"profile"`
}

// NewPendingRegistration stamps a record issued at now.
func NewPendingRegistration(p Profile, code string, now time.Time) *PendingRegistration {
	return &PendingRegistration{
		OTP:       code,
		IssuedAt:  now,
		ExpiresAt: now.Add(OTPValidity),
		Profile:   p,
	}
}

// Email is the record's key.
func (p *PendingRegistration) Email() string { return p.Profile.Email }

// Expired reports whether now is strictly past the validity window.
func (p *PendingRegistration) Expired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// PendingStore is the short-lived keyed staging area for registrations.
// Put overwrites any record already stored for the same email.
type PendingStore interface {
	Get(ctx context.Context, email string) (*PendingRegistration, error)
	Put(ctx context.Context, p *PendingRegistration) error
	Delete(ctx context.Context, email string) error
}
