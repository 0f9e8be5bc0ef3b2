package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-otp-signup/internal/application/login"
)

// LoginHandler handles credential login.
type LoginHandler struct {
	svc login.Service
}

func NewLoginHandler(svc login.Service) *LoginHandler { return &LoginHandler{svc: svc} }

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req login.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, MsgInvalidBody)
		return
	}
	u, err := h.svc.Login(r.Context(), req)
	if err != nil {
		fail(r.Context(), w, "login", err)
		return
	}
	writeJSON(w, http.StatusOK, LoginEnvelope{Success: true, Message: MsgLoginOK, User: u})
}
