package employees

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"staff_portal/internal/directory"
	"staff_portal/internal/lib/logger/handlers/slogdiscard"
	"staff_portal/internal/models"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDirectory struct {
	err       error
	updatedID int64
	fields    models.EmployeeFields
}

func (s *stubDirectory) List(context.Context) ([]models.Employee, error) {
	if s.err != nil {
		return nil, s.err
	}

	return []models.Employee{{ID: 3, Name: "Ann"}}, nil
}

func (s *stubDirectory) Create(_ context.Context, f models.EmployeeFields) (models.Employee, error) {
	s.fields = f
	if s.err != nil {
		return models.Employee{}, s.err
	}

	return models.Employee{ID: 4, Name: f.Name}, nil
}

func (s *stubDirectory) Update(_ context.Context, id int64, f models.EmployeeFields) (models.Employee, error) {
	s.updatedID = id
	s.fields = f
	if s.err != nil {
		return models.Employee{}, s.err
	}

	return models.Employee{ID: id, Name: f.Name}, nil
}

func (s *stubDirectory) Delete(_ context.Context, id int64) error {
	s.updatedID = id

	return s.err
}

func routes(dir Directory) http.Handler {
	log := slogdiscard.NewDiscardLogger()

	r := chi.NewRouter()
	r.Get("/employees", NewList(log, dir))
	r.Post("/employees", NewCreate(log, dir))
	r.Put("/employees/{id}", NewUpdate(log, dir))
	r.Delete("/employees/{id}", NewDelete(log, dir))

	return r
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestUpdate_PassesIDAndFields(t *testing.T) {
	dir := &stubDirectory{}

	rec := serve(routes(dir), http.MethodPut, "/employees/12", `{"name":"Zed"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 12, dir.updatedID)
	assert.Equal(t, "Zed", dir.fields.Name)
	assert.JSONEq(t, `{"id":12,"name":"Zed","email":"","department":"","position":"","salary":""}`, rec.Body.String())
}

func TestUpdateAndDelete_NotFound(t *testing.T) {
	dir := &stubDirectory{err: fmt.Errorf("directory.Update: %w", directory.ErrEmployeeNotFound)}
	h := routes(dir)

	rec := serve(h, http.MethodPut, "/employees/1", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Employee not found")

	rec = serve(h, http.MethodDelete, "/employees/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, http.MethodDelete, "/employees/not-a-number", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInternalErrors(t *testing.T) {
	h := routes(&stubDirectory{err: errors.New("disk full")})

	cases := []struct {
		method, path, body, want string
	}{
		{http.MethodGet, "/employees", "", "Could not fetch employees"},
		{http.MethodPost, "/employees", `{"name":"Ann"}`, "Could not create employee"},
		{http.MethodPut, "/employees/1", `{"name":"Ann"}`, "Could not update employee"},
		{http.MethodDelete, "/employees/1", "", "Could not delete employee"},
	}

	for _, tc := range cases {
		rec := serve(h, tc.method, tc.path, tc.body)

		assert.Equal(t, http.StatusInternalServerError, rec.Code, tc.path)
		assert.Contains(t, rec.Body.String(), tc.want)
	}
}

func TestCreate(t *testing.T) {
	dir := &stubDirectory{}

	rec := serve(routes(dir), http.MethodPost, "/employees", `{"name":"Ann","salary":"100"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "100", dir.fields.Salary)
	assert.Contains(t, rec.Body.String(), `"id":4`)
}
