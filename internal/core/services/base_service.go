package services

import (
	"context"
	"log/slog"

	portsrepo "github.com/SscSPs/farm_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_ledger/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger/internal/middleware"
	"github.com/SscSPs/farm_ledger/internal/platform/metrics"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/SscSPs/farm_ledger/internal/core/services"

// BaseService provides common functionality for all services
type BaseService struct {
	ActorResolver portssvc.ActorResolverSvc
	Metrics       *metrics.Recorder
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// ResolveActor maps the caller's user ID to the actor stored on records.
// Without a resolver the ID is used as given.
func (s *BaseService) ResolveActor(ctx context.Context, userID string) string {
	if s.ActorResolver == nil || userID == "" {
		return userID
	}
	return s.ActorResolver.ResolveActor(ctx, userID)
}

// startSpan starts a span named after the service operation.
func (s *BaseService) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name)
}

// endSpan records err on span, if any, and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// runInTx runs fn in a transaction and commits if fn succeeds.
// The deferred rollback releases any row locks fn acquired when it fails;
// after a commit it is a no-op.
func (s *BaseService) runInTx(ctx context.Context, txm portsrepo.TransactionManager, fn func(tx pgx.Tx) error) error {
	tx, err := txm.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin transaction")
		return err
	}
	defer func() {
		if rbErr := txm.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back transaction")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return txm.Commit(ctx, tx)
}

// readSnapshot runs fn in a read-only transaction whose reads all see one committed state.
func (s *BaseService) readSnapshot(ctx context.Context, txm portsrepo.TransactionManager, fn func(tx pgx.Tx) error) error {
	tx, err := txm.BeginSnapshot(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin snapshot transaction")
		return err
	}
	defer func() {
		if rbErr := txm.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back snapshot transaction")
		}
	}()
	return fn(tx)
}
