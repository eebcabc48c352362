package employees

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"staff_portal/internal/directory"
	resp "staff_portal/internal/lib/api/response"
	sl "staff_portal/internal/lib/logger/sl"
	"staff_portal/internal/models"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

// Directory is satisfied by both the store-backed directory and the placeholder client.
type Directory interface {
	List(ctx context.Context) ([]models.Employee, error)
	Create(ctx context.Context, fields models.EmployeeFields) (models.Employee, error)
	Update(ctx context.Context, id int64, fields models.EmployeeFields) (models.Employee, error)
	Delete(ctx context.Context, id int64) error
}

func NewList(log *slog.Logger, dir Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.employees.NewList"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		list, err := dir.List(r.Context())
		if err != nil {
			log.Error("failed to list employees", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Could not fetch employees"))

			return
		}

		render.JSON(w, r, list)
	}
}

func NewCreate(log *slog.Logger, dir Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.employees.NewCreate"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var fields models.EmployeeFields

		if err := render.DecodeJSON(r.Body, &fields); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		emp, err := dir.Create(r.Context(), fields)
		if err != nil {
			log.Error("failed to create employee", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Could not create employee"))

			return
		}

		log.Info("employee created", slog.Int64("id", emp.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, emp)
	}
}

func NewUpdate(log *slog.Logger, dir Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.employees.NewUpdate"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, ok := employeeID(r)
		if !ok {
			notFound(w, r)
			return
		}

		var fields models.EmployeeFields

		if err := render.DecodeJSON(r.Body, &fields); err != nil {
			log.Error("Failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to decode request"))

			return
		}

		emp, err := dir.Update(r.Context(), id, fields)
		if err != nil {
			if errors.Is(err, directory.ErrEmployeeNotFound) {
				notFound(w, r)
				return
			}

			log.Error("failed to update employee", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Could not update employee"))

			return
		}

		log.Info("employee updated", slog.Int64("id", emp.ID))

		render.JSON(w, r, emp)
	}
}

func NewDelete(log *slog.Logger, dir Directory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.employees.NewDelete"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, ok := employeeID(r)
		if !ok {
			notFound(w, r)
			return
		}

		if err := dir.Delete(r.Context(), id); err != nil {
			if errors.Is(err, directory.ErrEmployeeNotFound) {
				notFound(w, r)
				return
			}

			log.Error("failed to delete employee", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Could not delete employee"))

			return
		}

		log.Info("employee deleted", slog.Int64("id", id))

		render.JSON(w, r, resp.OK("Employee deleted"))
	}
}

// employeeID reports false for ids that can never match a record.
func employeeID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}

	return id, true
}

func notFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, resp.Error("Employee not found"))
}
