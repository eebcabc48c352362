package register

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
	Role  string `json:"role" validate:"required"`
}

type UserRegistrar interface {
	RegisterNewUser(ctx context.Context, email, pass string, role models.Role) (string, error)
}

func New(
	log *slog.Logger,
	validate *validator.Validate,
	registrar UserRegistrar,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.register.New"

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

		log.Info("Request body decoded")

		if err := validate.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("Invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		_, err = registrar.RegisterNewUser(r.Context(), req.Email, req.Pass, models.Role(req.Role))
		if err != nil {
			if errors.Is(err, auth.ErrDuplicateEmail) {
				log.Info("email already in use")

				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error("Email already in use"))

				return
			}

			if errors.Is(err, auth.ErrNotificationFailure) {
				log.Error("Failed to send verification email", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Failed to send verification email. Please try again later."))

				return
			}

			log.Error("failed to register user", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal server error"))

			return
		}

		log.Info("User registered")

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, resp.OK("User registered. Check your email to verify."))
	}
}
