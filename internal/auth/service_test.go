// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/labsamples/internal/core"
)

type memoryUsers struct {
	mu      sync.Mutex
	byEmail map[string]*UserInfo
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{byEmail: map[string]*UserInfo{}}
}

func (m *memoryUsers) GetByEmail(ctx context.Context, email string) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (m *memoryUsers) GetByID(ctx context.Context, id string) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memoryUsers) Create(
	ctx context.Context,
	name, email, passwordHash, role string,
) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	email = strings.ToLower(email)
	if _, ok := m.byEmail[email]; ok {
		return nil, core.ErrDuplicateKey
	}
	u := &UserInfo{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	m.byEmail[email] = u
	return u, nil
}

func (m *memoryUsers) CreateFirstAdmin(
	ctx context.Context,
	name, email, passwordHash string,
) (*UserInfo, error) {
	m.mu.Lock()
	for _, u := range m.byEmail {
		if u.Role == "admin" {
			m.mu.Unlock()
			return nil, ErrAdminExists
		}
	}
	m.mu.Unlock()

	return m.Create(ctx, name, email, passwordHash, "admin")
}

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newMemoryRevocations() *memoryRevocations {
	return &memoryRevocations{revoked: map[string]time.Time{}}
}

func (m *memoryRevocations) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = expiresAt
	return nil
}

func (m *memoryRevocations) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[tokenID]
	return ok, nil
}

func newTestService(t *testing.T) (*Service, *memoryUsers, *memoryRevocations) {
	t.Helper()

	users := newMemoryUsers()
	revocations := newMemoryRevocations()
	return NewService(newTestJWTManager(t, time.Hour), users, revocations), users, revocations
}

func TestService_FirstAdminThenLogin(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.RegisterFirstAdmin(ctx, FirstAdminRequest{
		Name:     "Root",
		Email:    "root@lab.example",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "admin", created.Role)

	_, err = svc.RegisterFirstAdmin(ctx, FirstAdminRequest{
		Name:     "Second",
		Email:    "second@lab.example",
		Password: "correct-horse",
	})
	assert.ErrorIs(t, err, ErrAdminExists)

	resp, err := svc.Login(ctx, LoginRequest{Email: "root@lab.example", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "admin", resp.Role)
	assert.Equal(t, created.ID, resp.UserID)

	claims, err := svc.VerifyAccessToken(ctx, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
}

func TestService_Login_InvalidCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Name:     "Op",
		Email:    "op@lab.example",
		Password: "correct-horse",
		Role:     "data_entry",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginRequest{Email: "op@lab.example", Password: "wrong-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginRequest{Email: "ghost@lab.example", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	req := RegisterRequest{
		Name:     "Op",
		Email:    "op@lab.example",
		Password: "correct-horse",
		Role:     "data_entry",
	}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestService_Logout_RevokesToken(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Name:     "Op",
		Email:    "op@lab.example",
		Password: "correct-horse",
		Role:     "data_entry",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Email: "op@lab.example", Password: "correct-horse"})
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(ctx, resp.Token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, claims))

	_, err = svc.VerifyAccessToken(ctx, resp.Token)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)

	assert.ErrorIs(t, svc.Logout(ctx, nil), core.ErrUnauthorized)
}

func TestService_VerifyAccessToken_RevocationStoreDown(t *testing.T) {
	svc, _, revocations := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterRequest{
		Name:     "Op",
		Email:    "op@lab.example",
		Password: "correct-horse",
		Role:     "data_entry",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, LoginRequest{Email: "op@lab.example", Password: "correct-horse"})
	require.NoError(t, err)

	revocations.err = errors.New("redis: connection refused")

	_, err = svc.VerifyAccessToken(ctx, resp.Token)
	assert.Error(t, err)
}
