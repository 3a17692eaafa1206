// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/carterperez-dev/labsamples/internal/core"
	"github.com/carterperez-dev/labsamples/internal/middleware"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailExists        = errors.New("email already exists")
	ErrAdminExists        = errors.New("admin already exists")
)

type UserInfo struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type UserProvider interface {
	GetByEmail(ctx context.Context, email string) (*UserInfo, error)
	GetByID(ctx context.Context, id string) (*UserInfo, error)
	Create(
		ctx context.Context,
		name, email, passwordHash, role string,
	) (*UserInfo, error)
	CreateFirstAdmin(
		ctx context.Context,
		name, email, passwordHash string,
	) (*UserInfo, error)
}

type TokenIssuer interface {
	CreateAccessToken(userID, role string) (*AccessToken, error)
	VerifyAccessToken(token string) (*middleware.AccessTokenClaims, error)
}

type Service struct {
	tokens      TokenIssuer
	users       UserProvider
	revocations RevocationList
}

func NewService(
	tokens TokenIssuer,
	users UserProvider,
	revocations RevocationList,
) *Service {
	return &Service{
		tokens:      tokens,
		users:       users,
		revocations: revocations,
	}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			//nolint:errcheck // keeps unknown-email logins as slow as bad passwords
			_, _ = core.VerifyPasswordTimingSafe(req.Password, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	valid, err := core.VerifyPasswordTimingSafe(req.Password, &user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.CreateAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	return &LoginResponse{
		Token:     token.Token,
		TokenType: "Bearer",
		ExpiresAt: token.ExpiresAt,
		Role:      user.Role,
		UserID:    user.ID,
	}, nil
}

func (s *Service) Register(
	ctx context.Context,
	req RegisterRequest,
) (*UserResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Name, req.Email, passwordHash, req.Role)
	if err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return toUserResponse(user), nil
}

// RegisterFirstAdmin bootstraps the first administrator. It fails with
// ErrAdminExists once any admin account is present.
func (s *Service) RegisterFirstAdmin(
	ctx context.Context,
	req FirstAdminRequest,
) (*UserResponse, error) {
	passwordHash, err := core.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateFirstAdmin(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		if errors.Is(err, ErrAdminExists) {
			return nil, ErrAdminExists
		}
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create first admin: %w", err)
	}

	return toUserResponse(user), nil
}

func (s *Service) Logout(
	ctx context.Context,
	claims *middleware.AccessTokenClaims,
) error {
	if claims == nil {
		return fmt.Errorf("logout: %w", core.ErrUnauthorized)
	}

	if err := s.revocations.Revoke(ctx, claims.TokenID, claims.ExpiresAt); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

func (s *Service) VerifyAccessToken(
	ctx context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.revocations.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}

	if revoked {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

func toUserResponse(u *UserInfo) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

var _ middleware.TokenVerifier = (*Service)(nil)
