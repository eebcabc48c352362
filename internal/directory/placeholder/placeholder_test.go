package placeholder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"staff_portal/internal/directory"
	"staff_portal/internal/lib/logger/handlers/slogdiscard"
	"staff_portal/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return New(slogdiscard.NewDiscardLogger(), srv.URL+"/", time.Second)
}

func TestList_MapsCompany(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users", r.URL.Path)

		_, _ = w.Write([]byte(`[
			{"id":1,"name":"Leanne Graham","email":"Sincere@april.biz","company":{"name":"Romaguera-Crona","catchPhrase":"Multi-layered client-server neural-net"}},
			{"id":2,"name":"Ervin Howell","email":"Shanna@melissa.tv","company":{"name":"Deckow-Crist"}}
		]`))
	})

	list, err := c.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, models.Employee{
		ID:         1,
		Name:       "Leanne Graham",
		Email:      "Sincere@april.biz",
		Department: "Romaguera-Crona",
		Position:   "Multi-layered client-server neural-net",
	}, list[0])
	assert.Equal(t, "Deckow-Crist", list[1].Department)
}

func TestCreate_PostsFields(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var got models.EmployeeFields
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, "Ann", got.Name)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":11,"name":"Ann","email":"ann@x.com","department":"R&D","position":"Dev","salary":"100"}`))
	})

	e, err := c.Create(context.Background(), models.EmployeeFields{Name: "Ann", Email: "ann@x.com", Department: "R&D", Position: "Dev", Salary: "100"})
	require.NoError(t, err)
	assert.Equal(t, models.Employee{ID: 11, Name: "Ann", Email: "ann@x.com", Department: "R&D", Position: "Dev", Salary: "100"}, e)
}

func TestUpdate_PatchesNonEmptyOnly(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/users/3", r.URL.Path)

		var got map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, map[string]string{"name": "New"}, got)

		_, _ = w.Write([]byte(`{"id":3,"name":"New","email":"old@x.com"}`))
	})

	e, err := c.Update(context.Background(), 3, models.EmployeeFields{Name: "New"})
	require.NoError(t, err)
	assert.Equal(t, "New", e.Name)
	assert.Equal(t, "old@x.com", e.Email)
}

func TestDelete_NotFound(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.Delete(context.Background(), 99)
	require.ErrorIs(t, err, directory.ErrEmployeeNotFound)
}

func TestDelete_OK(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	require.NoError(t, c.Delete(context.Background(), 1))
}

func TestServerError(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.List(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, directory.ErrEmployeeNotFound)
}
