package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_ledger/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger/internal/dto"
	"github.com/SscSPs/farm_ledger/internal/platform/metrics"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/attribute"
)

// procurementService writes an expense and the stock increase it paid for in one transaction.
type procurementService struct {
	BaseService
	txManager    portsrepo.TransactionManager
	projectRepo  portsrepo.ProjectRepositoryFacade
	expenseRepo  portsrepo.ExpenseTransactionSupport
	materialRepo portsrepo.MaterialRepositoryFacade
	movementRepo portsrepo.MovementTransactionSupport
	now          func() time.Time
}

// ProcurementServiceOption is a functional option for configuring the procurement service
type ProcurementServiceOption func(*procurementService)

// WithProcurementActorResolver sets the resolver used to record actors.
func WithProcurementActorResolver(resolver portssvc.ActorResolverSvc) ProcurementServiceOption {
	return func(s *procurementService) {
		s.ActorResolver = resolver
	}
}

// WithProcurementMetrics sets the metrics recorder.
func WithProcurementMetrics(rec *metrics.Recorder) ProcurementServiceOption {
	return func(s *procurementService) {
		s.Metrics = rec
	}
}

// WithProcurementClock overrides time.Now.
func WithProcurementClock(now func() time.Time) ProcurementServiceOption {
	return func(s *procurementService) {
		s.now = now
	}
}

// NewProcurementService creates a new procurement service.
func NewProcurementService(repos portsrepo.RepositoryProvider, options ...ProcurementServiceOption) portssvc.ProcurementSvc {
	svc := &procurementService{
		txManager:    repos.TxManager,
		projectRepo:  repos.ProjectRepo,
		expenseRepo:  repos.ExpenseRepo,
		materialRepo: repos.MaterialRepo,
		movementRepo: repos.MovementRepo,
		now:          time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.ProcurementSvc = (*procurementService)(nil)

func (s *procurementService) RecordMaterialPurchase(ctx context.Context, projectID string, req dto.RecordPurchaseRequest, actorID string) (_ *domain.Expense, _ *domain.MovementRecord, err error) {
	ctx, span := s.startSpan(ctx, "Procurement.RecordMaterialPurchase")
	span.SetAttributes(
		attribute.String("project.id", projectID),
		attribute.String("material.id", req.MaterialID),
	)
	// side names the ledger a failure is counted against.
	side := metrics.LedgerBudget
	defer func() {
		if err != nil {
			s.Metrics.Rejected(side, err)
		}
		endSpan(span, err)
	}()

	now := s.now()
	draft := req.Expense.ToExpenseDraft()
	if err := validateExpenseDraft(draft, now); err != nil {
		return nil, nil, err
	}
	side = metrics.LedgerMaterial
	if err := domain.ValidateQuantity(req.Quantity); err != nil {
		return nil, nil, err
	}

	material, err := s.materialRepo.FindMaterialByID(ctx, req.MaterialID)
	if err != nil {
		return nil, nil, err
	}
	if err := requireActiveMaterial(material); err != nil {
		return nil, nil, err
	}
	if err := domain.ValidateMovementLinkage(material.Category, domain.MovementIncrease, true); err != nil {
		return nil, nil, err
	}

	side = metrics.LedgerBudget
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}
	if err := requireActiveProject(project); err != nil {
		return nil, nil, err
	}

	actor := s.ResolveActor(ctx, actorID)

	var expense *domain.Expense
	var movement *domain.MovementRecord
	err = s.runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		side = metrics.LedgerBudget
		lockedProject, err := lockProject(ctx, tx, s.projectRepo, s.Metrics, projectID)
		if err != nil {
			return err
		}
		if err := requireActiveProject(lockedProject); err != nil {
			return err
		}
		if expense, err = admitExpense(ctx, tx, s.expenseRepo, lockedProject, draft, actor, now); err != nil {
			return err
		}

		side = metrics.LedgerMaterial
		lockedMaterial, err := lockMaterial(ctx, tx, s.materialRepo, s.Metrics, req.MaterialID)
		if err != nil {
			return err
		}
		if err := requireActiveMaterial(lockedMaterial); err != nil {
			return err
		}
		intent := movementIntent{
			Type:            domain.MovementIncrease,
			Quantity:        req.Quantity,
			LinkedExpenseID: expense.ExpenseID,
			Note:            req.Note,
		}
		movement, err = appendMovement(ctx, tx, s.materialRepo, s.movementRepo, lockedMaterial, intent, actor, now)
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to record material purchase",
			slog.String("project_id", projectID),
			slog.String("material_id", req.MaterialID))
		return nil, nil, err
	}

	s.Metrics.ExpenseRegistered()
	s.Metrics.MovementApplied(string(movement.Type))
	s.LogInfo(ctx, "Material purchase recorded",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("movement_id", movement.MovementID),
		slog.String("remaining_after", expense.RemainingAfter.String()),
		slog.String("balance_after", movement.BalanceAfter.String()))
	return expense, movement, nil
}
