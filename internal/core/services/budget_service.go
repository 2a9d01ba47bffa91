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
	"go.opentelemetry.io/otel/attribute"
)

// budgetService implements the BudgetSvcFacade interface
type budgetService struct {
	BaseService
	txManager   portsrepo.TransactionManager
	projectRepo portsrepo.ProjectRepositoryFacade
	expenseRepo portsrepo.ExpenseRepositoryFacade
	now         func() time.Time
}

// BudgetServiceOption is a functional option for configuring the budget service
type BudgetServiceOption func(*budgetService)

// WithBudgetActorResolver sets the resolver used to record actors.
func WithBudgetActorResolver(resolver portssvc.ActorResolverSvc) BudgetServiceOption {
	return func(s *budgetService) {
		s.ActorResolver = resolver
	}
}

// WithBudgetMetrics sets the metrics recorder.
func WithBudgetMetrics(rec *metrics.Recorder) BudgetServiceOption {
	return func(s *budgetService) {
		s.Metrics = rec
	}
}

// WithBudgetClock overrides time.Now.
func WithBudgetClock(now func() time.Time) BudgetServiceOption {
	return func(s *budgetService) {
		s.now = now
	}
}

// NewBudgetService creates a new budget guard service with the provided options
func NewBudgetService(txManager portsrepo.TransactionManager, projectRepo portsrepo.ProjectRepositoryFacade, expenseRepo portsrepo.ExpenseRepositoryFacade, options ...BudgetServiceOption) portssvc.BudgetSvcFacade {
	svc := &budgetService{
		txManager:   txManager,
		projectRepo: projectRepo,
		expenseRepo: expenseRepo,
		now:         time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, actorID string) (*domain.Project, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", apperrors.ErrValidation)
	}
	if err := domain.ValidateBudgetAllocation(req.BudgetAllocation); err != nil {
		return nil, err
	}
	if req.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: project start date is required", apperrors.ErrValidation)
	}

	now := s.now()
	project := domain.Project{
		ProjectID:        uuid.NewString(),
		Name:             name,
		BudgetAllocation: req.BudgetAllocation,
		StartDate:        req.StartDate,
		Description:      req.Description,
		IsActive:         true,
		AuditFields:      domain.NewAuditFields(s.ResolveActor(ctx, actorID), now),
	}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("project_name", project.Name))
		return nil, err
	}

	s.LogInfo(ctx, "Project created successfully",
		slog.String("project_id", project.ProjectID),
		slog.String("budget_allocation", project.BudgetAllocation.String()))
	return &project, nil
}

func (s *budgetService) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get project", slog.String("project_id", projectID))
		}
		return nil, err
	}
	return project, nil
}

func (s *budgetService) DeactivateProject(ctx context.Context, projectID string, actorID string) error {
	actor := s.ResolveActor(ctx, actorID)
	if err := s.projectRepo.DeactivateProject(ctx, projectID, actor, s.now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate project", slog.String("project_id", projectID))
		return err
	}
	s.LogInfo(ctx, "Project deactivated", slog.String("project_id", projectID))
	return nil
}

func (s *budgetService) RegisterExpense(ctx context.Context, projectID string, req dto.RegisterExpenseRequest, actorID string) (_ *domain.Expense, err error) {
	ctx, span := s.startSpan(ctx, "BudgetGuard.RegisterExpense")
	span.SetAttributes(
		attribute.String("project.id", projectID),
		attribute.String("expense.amount", req.Amount.String()),
	)
	defer func() {
		if err != nil {
			s.Metrics.Rejected(metrics.LedgerBudget, err)
		}
		endSpan(span, err)
	}()

	now := s.now()
	draft := req.ToExpenseDraft()
	if err := validateExpenseDraft(draft, now); err != nil {
		return nil, err
	}

	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if err := requireActiveProject(project); err != nil {
		return nil, err
	}

	actor := s.ResolveActor(ctx, actorID)

	var expense *domain.Expense
	err = s.runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		locked, err := lockProject(ctx, tx, s.projectRepo, s.Metrics, projectID)
		if err != nil {
			return err
		}
		if err := requireActiveProject(locked); err != nil {
			return err
		}
		expense, err = admitExpense(ctx, tx, s.expenseRepo, locked, draft, actor, now)
		return err
	})
	if err != nil {
		var budgetErr *apperrors.BudgetExceededError
		if errors.As(err, &budgetErr) {
			s.GetLogger(ctx).Warn("Expense rejected",
				slog.String("project_id", projectID),
				slog.String("amount", budgetErr.Amount.String()),
				slog.String("remaining", budgetErr.Remaining.String()))
		} else {
			s.LogError(ctx, err, "Failed to register expense", slog.String("project_id", projectID))
		}
		return nil, err
	}

	s.Metrics.ExpenseRegistered()
	span.SetAttributes(attribute.String("expense.id", expense.ExpenseID))
	s.LogInfo(ctx, "Expense registered",
		slog.String("expense_id", expense.ExpenseID),
		slog.String("project_id", projectID),
		slog.String("remaining_after", expense.RemainingAfter.String()))
	return expense, nil
}

func (s *budgetService) GetBudgetSummary(ctx context.Context, projectID string) (*domain.BudgetSummary, error) {
	project, err := s.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	spent, count, err := s.expenseRepo.SumActiveExpenses(ctx, projectID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum project expenses", slog.String("project_id", projectID))
		return nil, err
	}
	summary := accounting.BuildBudgetSummary(*project, spent, count)
	return &summary, nil
}

func (s *budgetService) ListExpenses(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, nil, err
	}
	expenses, next, err := s.expenseRepo.ListExpensesByProject(ctx, projectID, pagination.ClampLimit(limit), nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list expenses", slog.String("project_id", projectID))
		return nil, nil, err
	}
	return expenses, next, nil
}

func (s *budgetService) DeactivateExpense(ctx context.Context, expenseID string, actorID string) (err error) {
	ctx, span := s.startSpan(ctx, "BudgetGuard.DeactivateExpense")
	span.SetAttributes(attribute.String("expense.id", expenseID))
	defer func() { endSpan(span, err) }()

	expense, err := s.expenseRepo.FindExpenseByID(ctx, expenseID)
	if err != nil {
		return err
	}
	if !expense.IsActive {
		return fmt.Errorf("%w: expense %s is already inactive", apperrors.ErrValidation, expenseID)
	}

	actor := s.ResolveActor(ctx, actorID)
	now := s.now()
	err = s.runInTx(ctx, s.txManager, func(tx pgx.Tx) error {
		if _, err := lockProject(ctx, tx, s.projectRepo, s.Metrics, expense.ProjectID); err != nil {
			return err
		}
		return s.expenseRepo.DeactivateExpenseInTx(ctx, tx, expenseID, actor, now)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to deactivate expense", slog.String("expense_id", expenseID))
		return err
	}

	s.LogInfo(ctx, "Expense deactivated",
		slog.String("expense_id", expenseID),
		slog.String("project_id", expense.ProjectID))
	return nil
}
