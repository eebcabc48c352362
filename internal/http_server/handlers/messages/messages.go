package messages

import (
	"context"
	"log/slog"
	"net/http"

	resp "staff_portal/internal/lib/api/response"
	sl "staff_portal/internal/lib/logger/sl"
	"staff_portal/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

type Request struct {
	From    string `json:"from" validate:"required"`
	To      string `json:"to" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type Sender interface {
	Send(ctx context.Context, from, to, body string) (models.Message, error)
}

type Lister interface {
	ListFor(ctx context.Context, email string) ([]models.Message, error)
}

func NewSend(log *slog.Logger, validate *validator.Validate, sender Sender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.messages.NewSend"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request

		if err := render.DecodeJSON(r.Body, &req); err != nil {
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

		msg, err := sender.Send(r.Context(), req.From, req.To, req.Message)
		if err != nil {
			log.Error("failed to save message", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Could not save message"))

			return
		}

		log.Info("message saved", slog.Int64("id", msg.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, msg)
	}
}

func NewList(log *slog.Logger, lister Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.messages.NewList"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		// no user, no conversation
		email := r.URL.Query().Get("userEmail")
		if email == "" {
			render.JSON(w, r, []models.Message{})

			return
		}

		list, err := lister.ListFor(r.Context(), email)
		if err != nil {
			log.Error("failed to list messages", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Could not fetch messages"))

			return
		}

		render.JSON(w, r, list)
	}
}
