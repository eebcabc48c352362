package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"staff_portal/internal/auth"
	resp "staff_portal/internal/lib/api/response"
	sl "staff_portal/internal/lib/logger/sl"
	"staff_portal/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Email string `json:"email" validate:"required"`
	Pass  string `json:"password" validate:"required"`
}

type Response struct {
	resp.Response
	Email string      `json:"email"`
	Role  models.Role `json:"role"`
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) (models.Identity, error)
}

func New(
	log *slog.Logger,
	validate *validator.Validate,
	authenticator Authenticator,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.login.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("Failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		if err := validate.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("Invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		identity, err := authenticator.Login(r.Context(), req.Email, req.Pass)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrInvalidCredentials):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("Invalid credentials"))
			case errors.Is(err, auth.ErrNotVerified):
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, resp.Error("Account not verified. Please check your email."))
			default:
				log.Error("failed to login user", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Internal server error"))
			}

			return
		}

		log.Info("User logged in successfully")

		render.JSON(w, r, Response{
			Response: resp.OK("Login successful"),
			Email:    identity.Email,
			Role:     identity.Role,
		})
	}
}
