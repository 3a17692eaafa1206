// AngelaMos | 2026
// handler_test.go

package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/carterperez-dev/labsamples/internal/middleware"
)

func passthrough(next http.Handler) http.Handler { return next }

func newTestRouter(t *testing.T) (http.Handler, *Service) {
	t.Helper()

	svc, _, _ := newTestService(t)
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, middleware.Authenticator(svc), passthrough)
	return r, svc
}

func post(h http.Handler, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_AuthFlow(t *testing.T) {
	router, svc := newTestRouter(t)

	rec := post(router, "/auth/register-first-admin",
		`{"name":"Root","email":"root@lab.example","password":"correct-horse"}`, "")
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = post(router, "/auth/register-first-admin",
		`{"name":"Again","email":"again@lab.example","password":"correct-horse"}`, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = post(router, "/auth/login", `{"email":"root@lab.example","password":"nope"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = post(router, "/auth/login", `{"email":"bad"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	adminLogin, err := svc.Login(t.Context(), LoginRequest{
		Email:    "root@lab.example",
		Password: "correct-horse",
	})
	assert.NoError(t, err)

	opBody := `{"name":"Op","email":"op@lab.example","password":"correct-horse","role":"data_entry"}`

	rec = post(router, "/auth/register", opBody, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = post(router, "/auth/register", opBody, adminLogin.Token)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = post(router, "/auth/register", opBody, adminLogin.Token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	opLogin, err := svc.Login(t.Context(), LoginRequest{
		Email:    "op@lab.example",
		Password: "correct-horse",
	})
	assert.NoError(t, err)

	rec = post(router, "/auth/register",
		`{"name":"X","email":"x@lab.example","password":"correct-horse","role":"admin"}`,
		opLogin.Token)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = post(router, "/auth/logout", "", opLogin.Token)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = post(router, "/auth/logout", "", opLogin.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
