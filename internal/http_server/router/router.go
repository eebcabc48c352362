package router

import (
	"log/slog"
	"net/http"

	"staff_portal/internal/http_server/handlers/employees"
	forgotPassword "staff_portal/internal/http_server/handlers/forgot_password"
	"staff_portal/internal/http_server/handlers/login"
	"staff_portal/internal/http_server/handlers/messages"
	register "staff_portal/internal/http_server/handlers/register"
	resendEmail "staff_portal/internal/http_server/handlers/resend"
	resetPassword "staff_portal/internal/http_server/handlers/reset_password"
	"staff_portal/internal/http_server/handlers/verify"
	rateLimit "staff_portal/internal/middleware/ratelimit"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
)

type AuthService interface {
	register.UserRegistrar
	verify.Verifier
	resendEmail.Resender
	login.Authenticator
	forgotPassword.ResetRequester
	resetPassword.PasswordResetter
}

type MessageService interface {
	messages.Sender
	messages.Lister
}

type Deps struct {
	Auth      AuthService
	Directory employees.Directory
	Messages  MessageService

	AllowedOrigins []string
	// RateLimit turns on the per-IP limits of the auth routes.
	RateLimit bool
}

func New(log *slog.Logger, deps Deps) *chi.Mux {
	validate := validator.New()

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
	}))

	limit := func(mw func(http.Handler) http.Handler) func(http.Handler) http.Handler {
		if !deps.RateLimit {
			return func(next http.Handler) http.Handler { return next }
		}

		return mw
	}

	r.Route("/api", func(r chi.Router) {
		r.With(limit(rateLimit.Register())).Post("/register",
			register.New(log, validate, deps.Auth),
		)
		r.With(limit(rateLimit.Verify())).Get("/verify",
			verify.New(log, deps.Auth),
		)
		r.With(limit(rateLimit.ResendVerificationEmail())).Post("/verify/resend",
			resendEmail.New(log, validate, deps.Auth),
		)
		r.With(limit(rateLimit.Login())).Post("/login",
			login.New(log, validate, deps.Auth),
		)
		r.With(limit(rateLimit.ForgotPassword())).Post("/forgot-password",
			forgotPassword.New(log, validate, deps.Auth),
		)
		r.With(limit(rateLimit.ResetPassword())).Post("/reset-password",
			resetPassword.New(log, validate, deps.Auth),
		)

		r.Get("/employees", employees.NewList(log, deps.Directory))
		r.Post("/employees", employees.NewCreate(log, deps.Directory))
		r.Put("/employees/{id}", employees.NewUpdate(log, deps.Directory))
		r.Delete("/employees/{id}", employees.NewDelete(log, deps.Directory))

		r.Post("/messages", messages.NewSend(log, validate, deps.Messages))
		r.Get("/messages", messages.NewList(log, deps.Messages))
	})

	return r
}
