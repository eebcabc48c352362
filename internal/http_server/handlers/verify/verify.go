package verify

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"staff_portal/internal/auth"
	sl "staff_portal/internal/lib/logger/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type Verifier interface {
	VerifyUser(ctx context.Context, email, token string) error
}

// New answers in plain text; the link is opened straight from a mail client.
func New(
	log *slog.Logger,
	verifier Verifier,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.verify.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		token := r.URL.Query().Get("token")
		email := r.URL.Query().Get("email")
		if token == "" || email == "" {
			log.Warn("missing verification token or email")

			render.Status(r, http.StatusBadRequest)
			render.PlainText(w, r, "Invalid verification link")

			return
		}

		if err := verifier.VerifyUser(r.Context(), email, token); err != nil {
			if errors.Is(err, auth.ErrInvalidVerification) {
				log.Warn("invalid verification link")

				render.Status(r, http.StatusBadRequest)
				render.PlainText(w, r, "Invalid verification link")

				return
			}

			log.Error("failed to mark user as verified", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.PlainText(w, r, "Internal server error")

			return
		}

		log.Info("email verified successfully")

		render.PlainText(w, r, "Email verified! You can now log in.")
	}
}
