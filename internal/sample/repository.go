// AngelaMos | 2026
// repository.go

package sample

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/labsamples/internal/core"
)

// sequenceLockKey identifies the advisory lock that serializes sample id
// allocation across every connection to the database.
const sequenceLockKey int64 = 0x6c61625f736d70

type Repository interface {
	// InSequence runs fn inside a transaction holding the sample id lock.
	// The Repository passed to fn is bound to that transaction.
	InSequence(ctx context.Context, fn func(repo Repository) error) error
	MaxSampleID(ctx context.Context) (*int64, error)
	Create(ctx context.Context, s *Sample) error
	GetByID(ctx context.Context, id string) (*Sample, error)
	List(ctx context.Context) ([]Listed, error)
	Delete(ctx context.Context, id string) error
	DeleteByCreator(ctx context.Context, userID string) (int64, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) InSequence(
	ctx context.Context,
	fn func(repo Repository) error,
) error {
	if conn, ok := r.db.(*sqlx.DB); ok {
		return core.InTx(ctx, conn, func(tx *sqlx.Tx) error {
			return (&repository{db: tx}).InSequence(ctx, fn)
		})
	}

	if _, err := r.db.ExecContext(
		ctx,
		`SELECT pg_advisory_xact_lock($1)`,
		sequenceLockKey,
	); err != nil {
		return fmt.Errorf("acquire sample sequence lock: %w", err)
	}

	return fn(r)
}

func (r *repository) MaxSampleID(ctx context.Context) (*int64, error) {
	var current sql.NullInt64
	if err := r.db.GetContext(
		ctx,
		&current,
		`SELECT MAX(sample_id) FROM samples`,
	); err != nil {
		return nil, fmt.Errorf("max sample id: %w", err)
	}

	if !current.Valid {
		return nil, nil
	}
	return &current.Int64, nil
}

func (r *repository) Create(ctx context.Context, s *Sample) error {
	query := `
		INSERT INTO samples (
			id, sample_id, institution_name, roll_number, name, category,
			duration_minutes, acidity_level, secondary_level, temperature,
			substance_detected, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &s.CreatedAt, query,
		s.ID,
		s.SampleID,
		s.InstitutionName,
		s.RollNumber,
		s.Name,
		string(s.Category),
		s.DurationMinutes,
		s.AcidityLevel,
		s.SecondaryLevel,
		s.Temperature,
		s.SubstanceDetected,
		s.CreatedBy,
	)
	if err != nil {
		if core.IsDuplicateKeyError(err) {
			return fmt.Errorf("create sample: %w", core.ErrDuplicateKey)
		}
		if core.IsForeignKeyError(err) {
			return fmt.Errorf(
				"create sample: owner %s: %w",
				s.CreatedBy,
				ErrUnknownOwner,
			)
		}
		return fmt.Errorf("create sample: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Sample, error) {
	query := `
		SELECT id, sample_id, institution_name, roll_number, name, category,
		       duration_minutes, acidity_level, secondary_level, temperature,
		       substance_detected, created_by, created_at
		FROM samples
		WHERE id = $1`

	var s Sample
	err := r.db.GetContext(ctx, &s, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get sample: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get sample: %w", err)
	}

	return &s, nil
}

func (r *repository) List(ctx context.Context) ([]Listed, error) {
	query := `
		SELECT s.id, s.sample_id, s.institution_name, s.roll_number, s.name,
		       s.category, s.duration_minutes, s.acidity_level,
		       s.secondary_level, s.temperature, s.substance_detected,
		       s.created_by, s.created_at,
		       u.name AS creator_name, u.email AS creator_email
		FROM samples s
		JOIN users u ON u.id = s.created_by
		ORDER BY s.created_at DESC, s.sample_id DESC`

	var samples []Listed
	if err := r.db.SelectContext(ctx, &samples, query); err != nil {
		return nil, fmt.Errorf("list samples: %w", err)
	}

	return samples, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM samples WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sample: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete sample: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete sample: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) DeleteByCreator(
	ctx context.Context,
	userID string,
) (int64, error) {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM samples WHERE created_by = $1`,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("delete samples by creator: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete samples by creator: %w", err)
	}

	return rows, nil
}

func (r *repository) CountByCategory(
	ctx context.Context,
) ([]CategoryCount, error) {
	query := `
		SELECT category, COUNT(*) AS count
		FROM samples
		GROUP BY category
		ORDER BY category`

	var counts []CategoryCount
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("count samples by category: %w", err)
	}

	return counts, nil
}
