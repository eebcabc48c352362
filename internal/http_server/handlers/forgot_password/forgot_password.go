package forgotPassword

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"staff_portal/internal/auth"
	resp "staff_portal/internal/lib/api/response"
	sl "staff_portal/internal/lib/logger/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	Email string `json:"email" validate:"required"`
}

type ResetRequester interface {
	RequestPasswordReset(ctx context.Context, email string) error
}

func New(
	log *slog.Logger,
	validate *validator.Validate,
	requester ResetRequester,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.forgotPassword.New"

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

		if err := requester.RequestPasswordReset(r.Context(), req.Email); err != nil {
			if errors.Is(err, auth.ErrUnknownUser) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("No user with that email"))

				return
			}

			if errors.Is(err, auth.ErrNotificationFailure) {
				log.Error("Failed to send reset email", sl.Err(err))

				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, resp.Error("Failed to send reset email"))

				return
			}

			log.Error("failed to request password reset", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Internal server error"))

			return
		}

		log.Info("Password reset email sent")

		render.JSON(w, r, resp.OK("Password reset email sent"))
	}
}
