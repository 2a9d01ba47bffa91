package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/farm_ledger/internal/apperrors"
	"github.com/SscSPs/farm_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_ledger/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger/internal/dto"
	"github.com/SscSPs/farm_ledger/internal/platform/metrics"
	"github.com/SscSPs/farm_ledger/internal/utils/accounting"
	"github.com/SscSPs/farm_ledger/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
)

// materialService implements the MaterialSvcFacade interface
type materialService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	materialRepo portsrepo.MaterialRepositoryFacade
	movementRepo portsrepo.MovementRepositoryFacade
	expenseRepo  portsrepo.ExpenseReader
	projectRepo  portsrepo.ProjectTransactionSupport
	now          func() time.Time
}

// MaterialServiceOption is a functional option for configuring the material service
type MaterialServiceOption func(*materialService)

// WithMaterialActorResolver sets the resolver used to record actors.
func WithMaterialActorResolver(resolver portssvc.ActorResolverSvc) MaterialServiceOption {
	return func(s *materialService) {
		s.ActorResolver = resolver
	}
}

// WithMaterialMetrics sets the metrics recorder.
func WithMaterialMetrics(rec *metrics.Recorder) MaterialServiceOption {
	return func(s *materialService) {
		s.Metrics = rec
	}
}

// WithExpenseLinkage enables movements that reference an expense.
// The project repository is needed to lock the expense's project first.
func WithExpenseLinkage(expenseRepo portsrepo.ExpenseReader, projectRepo portsrepo.ProjectTransactionSupport) MaterialServiceOption {
	return func(s *materialService) {
		s.expenseRepo = expenseRepo
		s.projectRepo = projectRepo
	}
}

// WithMaterialClock overrides time.Now.
func WithMaterialClock(now func() time.Time) MaterialServiceOption {
	return func(s *materialService) {
		s.now = now
	}
}

// NewMaterialService creates a new material ledger service with the provided options
func NewMaterialService(txManager portsrepo.TransactionManager, materialRepo portsrepo.MaterialRepositoryFacade, movementRepo portsrepo.MovementRepositoryFacade, options ...MaterialServiceOption) portssvc.MaterialSvcFacade {
	svc := &materialService{
		txManager:    txManager,
		materialRepo: materialRepo,
		movementRepo: movementRepo,
		now:          time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.MaterialSvcFacade = (*materialService)(nil)

func (s *materialService) CreateMaterial(ctx context.Context, req dto.CreateMaterialRequest, actorID string) (*domain.Material, error) {
	now := s.now()
	actor := s.ResolveActor(ctx, actorID)

	minimum := domain.DefaultMinimumAlert
	if req.MinimumAlert != nil {
		minimum = *req.MinimumAlert
	}

	material := domain.Material{
		MaterialID:   uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Code:         strings.TrimSpace(req.Code),
		Unit:         req.Unit,
		Category:     req.Category,
		InitialStock: req.InitialStock,
		CurrentStock: req.InitialStock,
		MinimumAlert: minimum,
		Description:  req.Description,
		IsActive:     true,
		AuditFields:  domain.NewAuditFields(actor, now),
	}
	if err := domain.ValidateMaterial(material); err != nil {
		return nil, err
	}

	if err := s.materialRepo.SaveMaterial(ctx, material); err != nil {
		s.LogError(ctx, err, "Failed to save material",
			slog.String("material_name", material.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Material created successfully",
		slog.String("material_id", material.MaterialID),
		slog.String("category", string(material.Category)))
	return &material, nil
}

func (s *materialService) GetMaterial(ctx context.Context, materialID string) (*domain.Material, error) {
	material, err := s.materialRepo.FindMaterialByID(ctx, materialID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get material", slog.String("material_id", materialID))
		}
		return nil, err
	}
	return material, nil
}

func (s *materialService) DeactivateMaterial(ctx context.Context, materialID string, actorID string) error {
	actor := s.ResolveActor(ctx, actorID)
	if err := s.materialRepo.DeactivateMaterial(ctx, materialID, actor, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate material", slog.String("material_id", materialID))
		return err
	}
	s.LogInfo(ctx, "Material deactivated", slog.String("material_id", materialID))
	return nil
}

func (s *materialService) GetBalance(ctx context.Context, materialID string) (decimal.Decimal, error) {
	material, err := s.GetMaterial(ctx, materialID)
	if err != nil {
		return decimal.Zero, err
	}
	return material.CurrentStock, nil
}

func (s *materialService) ListLowStock(ctx context.Context, category domain.MaterialCategory) ([]domain.Material, error) {
	if category != "" && !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown material category %q", apperrors.ErrValidation, category)
	}
	materials, err := s.materialRepo.ListLowStock(ctx, category)
	if err != nil {
		s.LogError(ctx, err, "Failed to list low stock materials", slog.String("category", string(category)))
		return nil, err
	}
	return materials, nil
}

func (s *materialService) ListMovements(ctx context.Context, materialID string, limit int, nextToken *string) ([]domain.MovementRecord, *string, error) {
	if _, err := s.GetMaterial(ctx, materialID); err != nil {
		return nil, nil, err
	}
	movements, next, err := s.movementRepo.ListMovementsByMaterial(ctx, materialID, pagination.ClampLimit(limit), nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list movements", slog.String("material_id", materialID))
		return nil, nil, err
	}
	return movements, next, nil
}

func (s *materialService) VerifyBalance(ctx context.Context, materialID string) (*domain.BalanceAudit, error) {
	var (
		material  *domain.Material
		movements []domain.MovementRecord
	)
	// Stored balance and log are read from one snapshot.
	err := s.readSnapshot(ctx, s.txManager, func(tx pgx.Tx) error {
		var err error
		material, err = s.materialRepo.FindMaterialByIDInTx(ctx, tx, materialID)
		if err != nil {
			if !errors.Is(err, apperrors.ErrNotFound) {
				s.LogError(ctx, err, "Failed to get material", slog.String("material_id", materialID))
			}
			return err
		}
		movements, err = s.movementRepo.ListReplayMovementsInTx(ctx, tx, materialID)
		if err != nil {
			s.LogError(ctx, err, "Failed to load movements for replay", slog.String("material_id", materialID))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	audit := &domain.BalanceAudit{
		MaterialID:    materialID,
		StoredBalance: material.CurrentStock,
	}
	replayed, used, err := accounting.ReplayBalance(material.InitialStock, movements)
	if err != nil {
		s.LogError(ctx, err, "Movement log cannot be replayed", slog.String("material_id", materialID))
		return audit, nil
	}
	audit.ReplayedBalance = replayed
	audit.MovementsUsed = used
	audit.Consistent = replayed.Equal(material.CurrentStock)
	if !audit.Consistent {
		s.GetLogger(ctx).Warn("Stored balance differs from replayed log",
			slog.String("material_id", materialID),
			slog.String("stored", material.CurrentStock.String()),
			slog.String("replayed", replayed.String()))
	}
	return audit, nil
}

func (s *materialService) ApplyMovement(ctx context.Context, materialID string, req dto.ApplyMovementRequest, actorID string) (_ *domain.MovementRecord, err error) {
	ctx, span := s.startSpan(ctx, "MaterialLedger.ApplyMovement")
	span.SetAttributes(
		attribute.String("material.id", materialID),
		attribute.String("movement.type", string(req.Type)),
	)
	defer func() {
		if err != nil {
			s.Metrics.Rejected(metrics.LedgerMaterial, err)
		}
		endSpan(span, err)
	}()

	if err := domain.ValidateMovementType(req.Type); err != nil {
		return nil, err
	}
	if err := domain.ValidateQuantity(req.Quantity); err != nil {
		return nil, err
	}

	material, err := s.GetMaterial(ctx, materialID)
	if err != nil {
		return nil, err
	}
	if err := requireActiveMaterial(material); err != nil {
		return nil, err
	}

	linkedID := ""
	if req.LinkedExpenseID != nil {
		linkedID = strings.TrimSpace(*req.LinkedExpenseID)
	}
	if err := domain.ValidateMovementLinkage(material.Category, req.Type, linkedID != ""); err != nil {
		return nil, err
	}

	var expense *domain.Expense
	if linkedID != "" {
		if expense, err = s.findLinkableExpense(ctx, linkedID); err != nil {
			return nil, err
		}
	}

	actor := s.ResolveActor(ctx, actorID)
	now := s.now()
	intent := movementIntent{Type: req.Type, Quantity: req.Quantity, LinkedExpenseID: linkedID, Note: req.Note}

	var record *domain.MovementRecord
	err = s.runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if expense != nil {
			// Same order as every other writer holding both locks.
			if _, err := lockProject(ctx, tx, s.projectRepo, s.Metrics, expense.ProjectID); err != nil {
				return err
			}
			if _, err := s.findLinkableExpense(ctx, linkedID); err != nil {
				return err
			}
		}

		locked, err := lockMaterial(ctx, tx, s.materialRepo, s.Metrics, materialID)
		if err != nil {
			return err
		}
		if err := requireActiveMaterial(locked); err != nil {
			return err
		}

		record, err = appendMovement(ctx, tx, s.materialRepo, s.movementRepo, locked, intent, actor, now)
		return err
	})
	if err != nil {
		var stockErr *apperrors.InsufficientStockError
		if errors.As(err, &stockErr) {
			s.GetLogger(ctx).Warn("Movement rejected",
				slog.String("material_id", materialID),
				slog.String("requested", stockErr.Requested.String()),
				slog.String("available", stockErr.Available.String()))
		} else {
			s.LogError(ctx, err, "Failed to apply movement",
				slog.String("material_id", materialID),
				slog.String("type", string(req.Type)))
		}
		return nil, err
	}

	s.Metrics.MovementApplied(string(record.Type))
	span.SetAttributes(attribute.String("movement.id", record.MovementID))
	s.LogInfo(ctx, "Movement applied",
		slog.String("movement_id", record.MovementID),
		slog.String("material_id", materialID),
		slog.String("type", string(record.Type)),
		slog.String("balance_after", record.BalanceAfter.String()))
	return record, nil
}

// findLinkableExpense loads an expense a movement may reference.
func (s *materialService) findLinkableExpense(ctx context.Context, expenseID string) (*domain.Expense, error) {
	if s.expenseRepo == nil || s.projectRepo == nil {
		return nil, fmt.Errorf("%w: expense linkage is not configured", apperrors.ErrInternal)
	}
	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if !expense.IsActive {
		return nil, fmt.Errorf("%w: expense %s is inactive", apperrors.ErrNotFound, expenseID)
	}
	return expense, nil
}
