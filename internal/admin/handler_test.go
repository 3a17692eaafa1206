// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/labsamples/internal/middleware"
)

func newTestRouter(f *fixture, cfg HandlerConfig) http.Handler {
	cfg.Service = f.svc

	r := chi.NewRouter()
	NewHandler(cfg).RegisterRoutes(r, func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := r.Header.Get("X-Test-Role")
			if role == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx := middleware.WithClaims(r.Context(), &middleware.AccessTokenClaims{
				UserID: adminID,
				Role:   role,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	})
	return r
}

func call(h http.Handler, method, path, role string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if role != "" {
		req.Header.Set("X-Test-Role", role)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandler_RoleGates(t *testing.T) {
	tests := []struct {
		method string
		path   string
		role   string
		want   int
	}{
		{http.MethodGet, "/admin/entries", "admin", http.StatusOK},
		{http.MethodGet, "/admin/entries", "data_entry", http.StatusForbidden},
		{http.MethodGet, "/admin/entries", "", http.StatusUnauthorized},
		{http.MethodGet, "/admin/all-entries", "data_entry", http.StatusOK},
		{http.MethodGet, "/admin/all-entries", "admin", http.StatusOK},
		{http.MethodGet, "/admin/data-entry-users", "data_entry", http.StatusForbidden},
		{http.MethodDelete, "/admin/entries/s1", "data_entry", http.StatusForbidden},
		{http.MethodDelete, "/admin/data-entry-users/" + operatorID, "data_entry", http.StatusForbidden},
		{http.MethodGet, "/admin/stats", "data_entry", http.StatusForbidden},
		{http.MethodGet, "/admin/stats", "admin", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path+" as "+tt.role, func(t *testing.T) {
			router := newTestRouter(newFixture(), HandlerConfig{})
			rec := call(router, tt.method, tt.path, tt.role)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandler_ListEntries(t *testing.T) {
	router := newTestRouter(newFixture(), HandlerConfig{})

	rec := call(router, http.MethodGet, "/admin/entries", "admin")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data struct {
			Count int               `json:"count"`
			Items []json.RawMessage `json:"items"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 4, body.Data.Count)
	assert.Len(t, body.Data.Items, 4)
}

func TestHandler_DeleteDataEntryUser(t *testing.T) {
	f := newFixture()
	router := newTestRouter(f, HandlerConfig{})

	rec := call(router, http.MethodDelete, "/admin/data-entry-users/"+operatorID, "admin")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data DeleteUserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Data.SamplesDeleted)

	rec = call(router, http.MethodDelete, "/admin/data-entry-users/"+adminID, "admin")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_DeleteEntry(t *testing.T) {
	router := newTestRouter(newFixture(), HandlerConfig{})

	rec := call(router, http.MethodDelete, "/admin/entries/not-a-uuid", "admin")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = call(router, http.MethodDelete, "/admin/entries/"+bystanderID, "admin")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Stats(t *testing.T) {
	router := newTestRouter(newFixture(), HandlerConfig{
		DBStats: func() sql.DBStats {
			return sql.DBStats{MaxOpenConnections: 25, InUse: 3}
		},
		DBPing:    func(context.Context) error { return nil },
		RedisPing: func(context.Context) error { return errors.New("down") },
	})

	rec := call(router, http.MethodGet, "/admin/stats", "admin")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data SystemStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.NotNil(t, body.Data.Samples)
	assert.Equal(t, 4, body.Data.Samples.Total)
	assert.True(t, body.Data.Database.Healthy)
	require.NotNil(t, body.Data.Database.Stats)
	assert.Equal(t, 25, body.Data.Database.Stats.MaxOpenConnections)
	assert.False(t, body.Data.Redis.Healthy)
	assert.Nil(t, body.Data.Redis.Stats)
	assert.NotEmpty(t, body.Data.Runtime.GoVersion)
}
