package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-otp-signup/internal/application/account"
	"github.com/go-otp-signup/internal/domain"
)

// AccountHandler serves the admin account listings.
type AccountHandler struct {
	svc account.Service
}

func NewAccountHandler(svc account.Service) *AccountHandler { return &AccountHandler{svc: svc} }

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	role := domain.Role(chi.URLParam(r, "role"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	accounts, err := h.svc.List(r.Context(), role, limit)
	if err != nil {
		fail(r.Context(), w, "list_accounts", err)
		return
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	writeJSON(w, http.StatusOK, AccountsEnvelope{
		Success:  true,
		Message:  MsgAccountsListed,
		Role:     role,
		Total:    len(accounts),
		Accounts: accounts,
	})
}
