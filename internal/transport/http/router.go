package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-otp-signup/internal/application/account"
	"github.com/go-otp-signup/internal/application/login"
	"github.com/go-otp-signup/internal/application/registration"
	"github.com/go-otp-signup/internal/config"
	"github.com/go-otp-signup/internal/transport/http/handler"
	appmiddleware "github.com/go-otp-signup/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	registrationSvc := registration.NewService(registration.ServiceDeps{
		PendingStore: deps.PendingStore,
		AccountStore: deps.AccountStore,
		EmailSender:  deps.EmailSender,
		Clock:        deps.Clock,
		Locks:        deps.Locks,
	})
	loginSvc := login.NewService(deps.AccountStore)
	accountSvc := account.NewService(deps.AccountStore)

	healthH := handler.NewHealthHandler(deps.AccountStore)
	registrationH := handler.NewRegistrationHandler(registrationSvc)
	loginH := handler.NewLoginHandler(loginSvc)
	accountH := handler.NewAccountHandler(accountSvc)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health", healthH.Health)
		r.Get("/health-check/{action}", healthH.Ping)

		r.Post("/otp/send", registrationH.SendOTP)
		r.Post("/otp/verify", registrationH.VerifyOTP)
		r.Post("/login", loginH.Login)

		if cfg.AdminToken != "" {
			r.Route("/admin", func(r chi.Router) {
				r.Use(appmiddleware.AdminToken(cfg.AdminToken))
				r.Get("/accounts/{role}", accountH.List)
			})
		}
	})

	return r
}
