// AngelaMos | 2026
// service.go

package sample

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/carterperez-dev/labsamples/internal/core"
)

const tracerName = "github.com/carterperez-dev/labsamples/internal/sample"

var (
	ErrNoOwner      = errors.New("no owner for sample")
	ErrUnknownOwner = errors.New("sample owner does not exist")
)

type Service struct {
	repo           Repository
	validator      *validator.Validate
	tracer         trace.Tracer
	defaultOwnerID string
}

type ServiceOption func(*Service)

// WithDefaultOwner credits submissions that arrive without an authenticated
// user to ownerID.
func WithDefaultOwner(ownerID string) ServiceOption {
	return func(s *Service) {
		s.defaultOwnerID = ownerID
	}
}

func WithTracer(tracer trace.Tracer) ServiceOption {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func NewService(repo Repository, opts ...ServiceOption) *Service {
	s := &Service{
		repo:      repo,
		validator: core.NewValidator(),
		tracer:    otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit allocates the next sample id, validates the request, classifies the
// readings and stores the sample, in that order and inside one sequenced
// transaction. ownerID is the authenticated submitter and may be empty.
func (s *Service) Submit(
	ctx context.Context,
	req SubmitRequest,
	ownerID string,
) (*Sample, error) {
	ctx, span := s.tracer.Start(ctx, "sample.Submit")
	defer span.End()

	createdBy := ownerID
	if createdBy == "" {
		createdBy = s.defaultOwnerID
	}
	if createdBy == "" {
		return nil, fmt.Errorf("submit sample: %w", ErrNoOwner)
	}

	var created *Sample
	err := s.repo.InSequence(ctx, func(repo Repository) error {
		currentMax, err := repo.MaxSampleID(ctx)
		if err != nil {
			return err
		}
		sampleID := NextSampleID(currentMax)
		core.AddSpanEvent(ctx, "sample.allocated",
			attribute.Int64("sample.id", sampleID),
		)

		if err := core.Validate(s.validator, req); err != nil {
			return err
		}

		category := Classify(*req.AcidityLevel, req.SecondaryLevel)
		core.AddSpanEvent(ctx, "sample.classified",
			attribute.String("sample.category", string(category)),
		)

		sample := &Sample{
			ID:                uuid.New().String(),
			SampleID:          sampleID,
			InstitutionName:   req.InstitutionName,
			RollNumber:        req.RollNumber,
			Name:              req.Name,
			Category:          category,
			DurationMinutes:   *req.DurationMinutes,
			AcidityLevel:      *req.AcidityLevel,
			SecondaryLevel:    req.SecondaryLevel,
			Temperature:       *req.Temperature,
			SubstanceDetected: req.SubstanceDetected,
			CreatedBy:         createdBy,
		}

		if err := repo.Create(ctx, sample); err != nil {
			return err
		}

		created = sample
		return nil
	})
	if err != nil {
		core.SetSpanError(ctx, err)
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("sample.id", created.SampleID),
		attribute.String("sample.category", string(created.Category)),
	)
	return created, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Sample, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("get sample: %w", core.ErrNotFound)
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Listed, error) {
	return s.repo.List(ctx)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("delete sample: %w", core.ErrNotFound)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	counts, err := s.repo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[Category]int, len(counts))
	for _, c := range counts {
		byCategory[c.Category] = c.Count
	}

	resp := &StatsResponse{
		Categories: make([]CategoryCount, 0, 3),
	}
	for _, c := range []Category{CategoryNonUser, CategoryRegularUser, CategoryAddict} {
		resp.Categories = append(resp.Categories, CategoryCount{
			Category: c,
			Count:    byCategory[c],
		})
		resp.Total += byCategory[c]
	}

	return resp, nil
}
