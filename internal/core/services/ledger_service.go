package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/farm_ledger/internal/apperrors"
	"github.com/SscSPs/farm_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/farm_ledger/internal/platform/metrics"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Core ledger steps shared by the material, budget and procurement services.
// Every step runs inside a transaction opened by the caller. When a caller holds
// both kinds of lock, the project row is always locked before the material row.

// lockProject takes the exclusive hold on a project's budget.
func lockProject(ctx context.Context, tx pgx.Tx, repo portsrepo.ProjectTransactionSupport, rec *metrics.Recorder, projectID string) (*domain.Project, error) {
	start := time.Now()
	project, err := repo.FindProjectByIDForUpdate(ctx, tx, projectID)
	rec.ObserveLockWait(metrics.LedgerBudget, time.Since(start))
	if err != nil {
		return nil, err
	}
	return project, nil
}

// lockMaterial takes the exclusive hold on a material's stock.
func lockMaterial(ctx context.Context, tx pgx.Tx, repo portsrepo.MaterialTransactionSupport, rec *metrics.Recorder, materialID string) (*domain.Material, error) {
	start := time.Now()
	material, err := repo.FindMaterialByIDForUpdate(ctx, tx, materialID)
	rec.ObserveLockWait(metrics.LedgerMaterial, time.Since(start))
	if err != nil {
		return nil, err
	}
	return material, nil
}

func requireActiveProject(project *domain.Project) error {
	if !project.IsActive {
		return fmt.Errorf("%w: project %s is inactive", apperrors.ErrValidation, project.ProjectID)
	}
	return nil
}

func requireActiveMaterial(material *domain.Material) error {
	if !material.IsActive {
		return fmt.Errorf("%w: material %s is inactive", apperrors.ErrValidation, material.MaterialID)
	}
	return nil
}

// validateExpenseDraft runs the stateless expense checks.
func validateExpenseDraft(draft domain.ExpenseDraft, now time.Time) error {
	if draft.Category == "" {
		return fmt.Errorf("%w: expense category is required", apperrors.ErrValidation)
	}
	if err := domain.ValidateExpenseAmount(draft.Amount); err != nil {
		return err
	}
	if err := domain.ValidateExpenseDate(draft.ExpenseDate, now); err != nil {
		return err
	}
	if !draft.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", apperrors.ErrValidation, draft.PaymentMethod)
	}
	return nil
}

// admitExpense checks the draft against the locked project's remaining budget and
// inserts it. The caller must hold the project lock.
func admitExpense(ctx context.Context, tx pgx.Tx, repo portsrepo.ExpenseTransactionSupport, project *domain.Project, draft domain.ExpenseDraft, actorID string, now time.Time) (*domain.Expense, error) {
	spent, _, err := repo.SumActiveExpensesInTx(ctx, tx, project.ProjectID)
	if err != nil {
		return nil, err
	}

	remaining := project.BudgetAllocation.Sub(spent)
	if spent.Add(draft.Amount).GreaterThan(project.BudgetAllocation) {
		return nil, &apperrors.BudgetExceededError{
			ProjectID:   project.ProjectID,
			ProjectName: project.Name,
			Amount:      draft.Amount,
			Remaining:   remaining,
		}
	}

	expense := domain.Expense{
		ExpenseID:       uuid.NewString(),
		ProjectID:       project.ProjectID,
		Category:        draft.Category,
		SupplierID:      draft.SupplierID,
		Amount:          draft.Amount,
		Description:     draft.Description,
		ExpenseDate:     draft.ExpenseDate,
		PaymentMethod:   draft.PaymentMethod,
		ReferenceNumber: draft.ReferenceNumber,
		IsRetroactive:   domain.IsRetroactive(draft.ExpenseDate, now),
		Notes:           draft.Notes,
		RemainingAfter:  remaining.Sub(draft.Amount),
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(actorID, now),
	}
	if err := repo.SaveExpenseInTx(ctx, tx, expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

// movementIntent is a validated stock change waiting to be applied.
type movementIntent struct {
	Type            domain.MovementType
	Quantity        decimal.Decimal
	LinkedExpenseID string
	Note            string
}

// appendMovement applies the intent to the locked material and logs it.
// A decrease below zero is rejected before anything is written.
func appendMovement(ctx context.Context, tx pgx.Tx, materialRepo portsrepo.MaterialTransactionSupport, movementRepo portsrepo.MovementTransactionSupport, material *domain.Material, intent movementIntent, actorID string, now time.Time) (*domain.MovementRecord, error) {
	next, ok := domain.NextBalance(material.CurrentStock, intent.Type, intent.Quantity)
	if !ok {
		return nil, &apperrors.InsufficientStockError{
			MaterialID:   material.MaterialID,
			MaterialName: material.Name,
			Unit:         string(material.Unit),
			Requested:    intent.Quantity,
			Available:    material.CurrentStock,
		}
	}
	if err := domain.ValidateStockLevel(next); err != nil {
		return nil, err
	}

	if err := materialRepo.UpdateMaterialStockInTx(ctx, tx, material.MaterialID, next, actorID, now); err != nil {
		return nil, err
	}

	record := domain.MovementRecord{
		MovementID:      uuid.NewString(),
		MaterialID:      material.MaterialID,
		Type:            intent.Type,
		Quantity:        intent.Quantity,
		BalanceAfter:    next,
		LinkedExpenseID: intent.LinkedExpenseID,
		Note:            intent.Note,
		RecordedAt:      now,
		RecordedBy:      actorID,
	}
	if err := movementRepo.SaveMovementInTx(ctx, tx, record); err != nil {
		return nil, err
	}
	return &record, nil
}
