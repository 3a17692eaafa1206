// AngelaMos | 2026
// jwt_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/labsamples/internal/config"
	"github.com/carterperez-dev/labsamples/internal/core"
)

func newTestJWTManager(t *testing.T, ttl time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "private.pem")
	publicPath := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	m, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:    privatePath,
		PublicKeyPath:     publicPath,
		AccessTokenExpire: ttl,
		Issuer:            "labsamples",
		Audience:          "labsamples-api",
	})
	require.NoError(t, err)
	return m
}

func TestJWTManager_RoundTrip(t *testing.T) {
	m := newTestJWTManager(t, time.Hour)

	token, err := m.CreateAccessToken("user-1", "data_entry")
	require.NoError(t, err)
	assert.NotEmpty(t, token.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, err := m.VerifyAccessToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "data_entry", claims.Role)
	assert.Equal(t, token.TokenID, claims.TokenID)
}

func TestJWTManager_RejectsForeignKey(t *testing.T) {
	issuer := newTestJWTManager(t, time.Hour)
	verifier := newTestJWTManager(t, time.Hour)

	token, err := issuer.CreateAccessToken("user-1", "admin")
	require.NoError(t, err)

	_, err = verifier.VerifyAccessToken(token.Token)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWTManager_RejectsGarbage(t *testing.T) {
	m := newTestJWTManager(t, time.Hour)

	_, err := m.VerifyAccessToken("not.a.jwt")
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestJWTManager_Expired(t *testing.T) {
	m := newTestJWTManager(t, -time.Minute)

	token, err := m.CreateAccessToken("user-1", "admin")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token.Token)
	assert.Error(t, err)
}

func TestJWTManager_JWKS(t *testing.T) {
	m := newTestJWTManager(t, time.Hour)

	rec := httptest.NewRecorder()
	m.GetJWKSHandler()(rec, httptest.NewRequest(http.MethodGet, "/.well-known/jwks.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var set struct {
		Keys []map[string]any `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &set))
	require.Len(t, set.Keys, 1)
	assert.Equal(t, m.GetKeyID(), set.Keys[0]["kid"])
	assert.NotContains(t, set.Keys[0], "d")
}
