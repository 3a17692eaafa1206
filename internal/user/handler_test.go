// AngelaMos | 2026
// handler_test.go

package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/labsamples/internal/core"
	"github.com/carterperez-dev/labsamples/internal/middleware"
)

type singleUserRepo struct {
	Repository
	user User
}

func (r *singleUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	if id != r.user.ID {
		return nil, core.ErrNotFound
	}
	u := r.user
	return &u, nil
}

func TestHandler_GetMe(t *testing.T) {
	repo := &singleUserRepo{user: User{
		ID:           "u1",
		Name:         "Op",
		Email:        "op@lab.example",
		PasswordHash: "$argon2id$secret",
		Role:         RoleDataEntry,
	}}

	withPrincipal := func(id, role string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if id != "" {
					r = r.WithContext(middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
						UserID: id,
						Role:   role,
					}))
				}
				next.ServeHTTP(w, r)
			})
		}
	}

	serve := func(auth func(http.Handler) http.Handler) *httptest.ResponseRecorder {
		r := chi.NewRouter()
		NewHandler(NewService(repo)).RegisterRoutes(r, auth)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))
		return rec
	}

	rec := serve(withPrincipal("u1", RoleDataEntry))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "argon2id")

	var body struct {
		Data UserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "op@lab.example", body.Data.Email)

	assert.Equal(t, http.StatusUnauthorized, serve(withPrincipal("", "")).Code)
	assert.Equal(t, http.StatusNotFound, serve(withPrincipal("gone", RoleAdmin)).Code)
}
