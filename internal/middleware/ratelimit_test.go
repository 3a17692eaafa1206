// AngelaMos | 2026
// ratelimit_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "/api/auth/login", normalizeEndpoint("/api/auth/login"))
	assert.Equal(t,
		"/api/data/entry/{id}",
		normalizeEndpoint("/api/data/entry/5b0e7a52-3a52-4a4e-8d38-2f0c4f3f5d10"),
	)
	assert.Equal(t, "/api/items/{id}", normalizeEndpoint("/api/items/42/"))
}

func TestKeyByUserAndEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	req.RemoteAddr = "10.0.0.7:5123"
	assert.Equal(t, "ratelimit:ip:10.0.0.7:endpoint:/api/auth/login", KeyByUserAndEndpoint(req))

	req = req.WithContext(WithClaims(req.Context(), &AccessTokenClaims{UserID: "u1", Role: "admin"}))
	assert.Equal(t, "ratelimit:user:u1:endpoint:/api/auth/login", KeyByUserAndEndpoint(req))
}

func TestRateLimiter_LocalFallback(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })

	limiter := NewRateLimiter(rdb, RateLimitConfig{
		Limit:    PerMinute(1, 2),
		KeyFunc:  KeyByUserAndEndpoint,
		FailOpen: true,
	})
	h := limiter.Handler(okHandler)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "10.0.0.8:4000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)

		if rec.Code == http.StatusTooManyRequests {
			require.NotEmpty(t, rec.Header().Get("Retry-After"))
		}
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
