package verify

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"staff_portal/internal/auth"
	"staff_portal/internal/lib/logger/handlers/slogdiscard"

	"github.com/stretchr/testify/assert"
)

type verifierFunc func(ctx context.Context, email, token string) error

func (f verifierFunc) VerifyUser(ctx context.Context, email, token string) error {
	return f(ctx, email, token)
}

func TestVerifyHandler(t *testing.T) {
	var gotEmail, gotToken string
	h := New(slogdiscard.NewDiscardLogger(), verifierFunc(func(_ context.Context, email, token string) error {
		gotEmail, gotToken = email, token
		if token != "good" {
			return fmt.Errorf("auth.VerifyUser: %w", auth.ErrInvalidVerification)
		}

		return nil
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/verify?token=good&email=a%40x.com", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Email verified! You can now log in.", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "a@x.com", gotEmail)
	assert.Equal(t, "good", gotToken)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/verify?token=bad&email=a%40x.com", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid verification link", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/verify?email=a%40x.com", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid verification link", rec.Body.String())
}
