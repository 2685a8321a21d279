package scoringservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/scramble-live/scoreboard/eventbus"
	"github.com/scramble-live/scoreboard/pkg/apperrors"

	scoringdb "github.com/scramble-live/scoreboard/app/modules/scoring/infrastructure/repositories"
)

// ScoringService implements the Service interface.
type ScoringService struct {
	repo     scoringdb.Repository
	eventBus eventbus.EventBus
	logger   *slog.Logger
	metrics  Metrics
	tracer   trace.Tracer

	// now is swappable so tests can pin updated_at / locked_at stamps.
	now func() time.Time
}

// NewScoringService creates a new ScoringService.
func NewScoringService(
	repo scoringdb.Repository,
	eventBus eventbus.EventBus,
	logger *slog.Logger,
	metrics Metrics,
	tracer trace.Tracer,
) *ScoringService {
	return &ScoringService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		now:      time.Now,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[T any] func(ctx context.Context) (T, error)

// withTelemetry wraps a service operation with tracing, metrics, logging,
// and panic recovery. Precondition rejections (AppError) are expected
// outcomes and counted separately from infrastructure failures.
func withTelemetry[T any](
	s *ScoringService,
	ctx context.Context,
	operationName string,
	subject string,
	op operationFunc[T],
) (result T, err error) {

	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("subject", subject),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.String("subject", subject),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
		}
	}()

	result, err = op(ctx)

	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			s.logger.WarnContext(ctx, "Operation rejected",
				slog.String("operation", operationName),
				slog.String("subject", subject),
				slog.String("code", appErr.Code),
				slog.String("reason", appErr.Message),
			)
			s.metrics.RecordRejection(ctx, operationName, appErr.Code)
			return result, err
		}

		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("subject", subject),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	return result, nil
}

// publish sends a bus event; a publish failure is logged but never fails the
// write that triggered it.
func (s *ScoringService) publish(ctx context.Context, topic string, payload any) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(topic, payload); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event",
			slog.String("topic", topic),
			slog.Any("error", err),
		)
	}
}
