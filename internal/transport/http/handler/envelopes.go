package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-otp-signup/internal/application/login"
	"github.com/go-otp-signup/internal/domain"
)

// MessageEnvelope is the generic response wrapper. Every flow answers with
// 200 and signals failure through Success.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// VerifyEnvelope wraps a successful OTP verification.
type VerifyEnvelope struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	AccountID string      `json:"accountId"`
	Role      domain.Role `json:"role"`
}

// LoginEnvelope wraps a successful login.
type LoginEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    *login.User `json:"user"`
}

// AccountsEnvelope wraps an admin account listing.
type AccountsEnvelope struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Role     domain.Role      `json:"role"`
	Total    int              `json:"total"`
	Accounts []domain.Account `json:"accounts"`
}

// HealthEnvelope reports service and database status.
type HealthEnvelope struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: true, Message: msg})
}

func writeFailure(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Success: false, Message: msg})
}
