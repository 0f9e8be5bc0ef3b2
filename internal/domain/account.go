package domain

import (
	"context"
	"time"
)

// Account is a verified registration persisted in the role's collection.
// Password is stored exactly as submitted.
type Account struct {
	AccountID string    `json:"id" dynamodbav:"account_id"`
	Name      string    `json:"name" dynamodbav:"name"`
	Email     string    `json:"email" dynamodbav:"email"`
	Phone     string    `json:"phone" dynamodbav:"phone"`
	Password  string    `json:"-" dynamodbav:"password"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	Role      Role      `json:"role" dynamodbav:"-"`
}

// AccountStore is the persistent account collaborator. Each call is a single
// atomic operation against the collection chosen by role.
type AccountStore interface {
	// Insert stores a new account and returns its assigned identifier.
	// A duplicate email within the collection yields ErrConflict.
	Insert(ctx context.Context, role Role, a *Account) (string, error)
	// FindByCredentials returns ErrNotFound when no account matches both
	// email and password exactly.
	FindByCredentials(ctx context.Context, role Role, email, password string) (*Account, error)
	List(ctx context.Context, role Role, limit int) ([]Account, error)
	Ping(ctx context.Context) error
}
