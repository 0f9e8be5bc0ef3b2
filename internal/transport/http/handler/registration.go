package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-otp-signup/internal/application/registration"
)

// RegistrationHandler handles OTP issuance and verification.
type RegistrationHandler struct {
	svc registration.Service
}

func NewRegistrationHandler(svc registration.Service) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

func (h *RegistrationHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req registration.IssueOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, MsgInvalidBody)
		return
	}
	if err := h.svc.IssueOTP(r.Context(), req); err != nil {
		fail(r.Context(), w, "send_otp", err)
		return
	}
	writeOK(w, MsgOTPSent)
}

func (h *RegistrationHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req registration.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, MsgInvalidBody)
		return
	}
	res, err := h.svc.VerifyOTP(r.Context(), req)
	if err != nil {
		fail(r.Context(), w, "verify_otp", err)
		return
	}
	writeJSON(w, http.StatusOK, VerifyEnvelope{
		Success:   true,
		Message:   MsgAccountCreated,
		AccountID: res.AccountID,
		Role:      res.Role,
	})
}
