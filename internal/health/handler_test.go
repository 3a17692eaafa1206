// AngelaMos | 2026
// handler_test.go

package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

var (
	up   = pingFunc(func(context.Context) error { return nil })
	down = pingFunc(func(context.Context) error { return errors.New("refused") })
)

func get(h *Handler, path string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestReadiness(t *testing.T) {
	h := NewHandler(map[string]Checker{"redis": up, "database": up})

	rec := get(h, "/readyz")
	require.Equal(t, http.StatusOK, rec.Code)

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	require.Len(t, body.Checks, 2)
	assert.Equal(t, "database", body.Checks[0].Name)
	assert.Equal(t, "redis", body.Checks[1].Name)
}

func TestReadiness_Degraded(t *testing.T) {
	h := NewHandler(map[string]Checker{"database": up, "redis": down})

	rec := get(h, "/readyz")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body ReadinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "degraded", body.Status)
	assert.False(t, body.Checks[1].Healthy)
	assert.Equal(t, "ping failed", body.Checks[1].Message)
}

func TestReadiness_NilChecker(t *testing.T) {
	h := NewHandler(map[string]Checker{"database": nil})

	rec := get(h, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestShutdown(t *testing.T) {
	h := NewHandler(map[string]Checker{"database": up})

	assert.Equal(t, http.StatusOK, get(h, "/healthz").Code)

	h.SetReady(false)
	assert.Equal(t, http.StatusServiceUnavailable, get(h, "/readyz").Code)
	assert.Equal(t, http.StatusOK, get(h, "/livez").Code)

	h.SetShutdown(true)
	assert.Equal(t, http.StatusServiceUnavailable, get(h, "/healthz").Code)
}
