// AngelaMos | 2026
// service.go

package admin

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/labsamples/internal/core"
	"github.com/carterperez-dev/labsamples/internal/sample"
	"github.com/carterperez-dev/labsamples/internal/user"
)

type UserStore interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
	ListByRole(ctx context.Context, role string) ([]user.User, error)
	Delete(ctx context.Context, id string) error
}

type SampleStore interface {
	List(ctx context.Context) ([]sample.Listed, error)
	Delete(ctx context.Context, id string) error
	DeleteByCreator(ctx context.Context, userID string) (int64, error)
	CountByCategory(ctx context.Context) ([]sample.CategoryCount, error)
}

// TxFunc runs fn with stores bound to a single transaction.
type TxFunc func(
	ctx context.Context,
	fn func(users UserStore, samples SampleStore) error,
) error

func PostgresTx(db *sqlx.DB) TxFunc {
	return func(
		ctx context.Context,
		fn func(users UserStore, samples SampleStore) error,
	) error {
		return core.InTx(ctx, db, func(tx *sqlx.Tx) error {
			return fn(user.NewRepository(tx), sample.NewRepository(tx))
		})
	}
}

type Service struct {
	users   *user.Service
	samples *sample.Service
	inTx    TxFunc
}

func NewService(
	users *user.Service,
	samples *sample.Service,
	inTx TxFunc,
) *Service {
	return &Service{
		users:   users,
		samples: samples,
		inTx:    inTx,
	}
}

func (s *Service) ListSamples(ctx context.Context) ([]sample.Listed, error) {
	return s.samples.List(ctx)
}

func (s *Service) DeleteSample(ctx context.Context, id string) error {
	return s.samples.Delete(ctx, id)
}

func (s *Service) ListDataEntryUsers(ctx context.Context) ([]user.User, error) {
	return s.users.ListDataEntryUsers(ctx)
}

// DeleteDataEntryUser removes a data-entry account together with every
// sample it created and reports how many samples went with it. Admin
// accounts are reported as not found.
func (s *Service) DeleteDataEntryUser(
	ctx context.Context,
	id string,
) (int64, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, fmt.Errorf("delete data entry user: %w", core.ErrNotFound)
	}

	var removed int64
	err := s.inTx(ctx, func(users UserStore, samples SampleStore) error {
		target, err := users.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if !target.IsDataEntry() {
			return fmt.Errorf(
				"delete data entry user: role %q: %w",
				target.Role,
				core.ErrNotFound,
			)
		}

		removed, err = samples.DeleteByCreator(ctx, id)
		if err != nil {
			return err
		}

		return users.Delete(ctx, id)
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

func (s *Service) SampleStats(ctx context.Context) (*sample.StatsResponse, error) {
	return s.samples.Stats(ctx)
}
