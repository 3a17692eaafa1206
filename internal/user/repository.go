// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/labsamples/internal/auth"
	"github.com/carterperez-dev/labsamples/internal/core"
)

const firstAdminLockKey int64 = 0x6c61625f61646d

type Repository interface {
	Create(ctx context.Context, user *User) error
	CreateFirstAdmin(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListByRole(ctx context.Context, role string) ([]User, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &user.CreatedAt, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// CreateFirstAdmin inserts user as an admin only while no admin exists.
// Concurrent callers are serialized on an advisory lock so exactly one wins.
func (r *repository) CreateFirstAdmin(ctx context.Context, user *User) error {
	if conn, ok := r.db.(*sqlx.DB); ok {
		return core.InTx(ctx, conn, func(tx *sqlx.Tx) error {
			return (&repository{db: tx}).CreateFirstAdmin(ctx, user)
		})
	}

	if _, err := r.db.ExecContext(
		ctx,
		`SELECT pg_advisory_xact_lock($1)`,
		firstAdminLockKey,
	); err != nil {
		return fmt.Errorf("create first admin: lock: %w", err)
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, role)
		SELECT $1::uuid, $2::text, $3::text, $4::text, 'admin'
		WHERE NOT EXISTS (SELECT 1 FROM users WHERE role = 'admin')
		RETURNING created_at`

	err := r.db.GetContext(ctx, &user.CreatedAt, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("create first admin: %w", auth.ErrAdminExists)
	}
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create first admin: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create first admin: %w", err)
	}

	user.Role = RoleAdmin
	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at
		FROM users
		WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) ListByRole(
	ctx context.Context,
	role string,
) ([]User, error) {
	query := `
		SELECT id, name, email, role, created_at
		FROM users
		WHERE role = $1
		ORDER BY created_at DESC`

	var users []User
	if err := r.db.SelectContext(ctx, &users, query, role); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}

	return nil
}
