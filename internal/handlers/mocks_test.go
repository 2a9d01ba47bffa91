package handlers_test

import (
	"context"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/farm_ledger/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock MaterialService ---
type MockMaterialService struct {
	mock.Mock
}

var _ portssvc.MaterialSvcFacade = (*MockMaterialService)(nil)

func (m *MockMaterialService) CreateMaterial(ctx context.Context, req dto.CreateMaterialRequest, actorID string) (*domain.Material, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Material), args.Error(1)
}

func (m *MockMaterialService) GetMaterial(ctx context.Context, materialID string) (*domain.Material, error) {
	args := m.Called(ctx, materialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Material), args.Error(1)
}

func (m *MockMaterialService) DeactivateMaterial(ctx context.Context, materialID string, actorID string) error {
	args := m.Called(ctx, materialID, actorID)
	return args.Error(0)
}

func (m *MockMaterialService) GetBalance(ctx context.Context, materialID string) (decimal.Decimal, error) {
	args := m.Called(ctx, materialID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockMaterialService) ListLowStock(ctx context.Context, category domain.MaterialCategory) ([]domain.Material, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Material), args.Error(1)
}

func (m *MockMaterialService) ListMovements(ctx context.Context, materialID string, limit int, nextToken *string) ([]domain.MovementRecord, *string, error) {
	args := m.Called(ctx, materialID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.MovementRecord), returnedNextToken, args.Error(2)
}

func (m *MockMaterialService) VerifyBalance(ctx context.Context, materialID string) (*domain.BalanceAudit, error) {
	args := m.Called(ctx, materialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceAudit), args.Error(1)
}

func (m *MockMaterialService) ApplyMovement(ctx context.Context, materialID string, req dto.ApplyMovementRequest, actorID string) (*domain.MovementRecord, error) {
	args := m.Called(ctx, materialID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MovementRecord), args.Error(1)
}

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

func (m *MockBudgetService) CreateProject(ctx context.Context, req dto.CreateProjectRequest, actorID string) (*domain.Project, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockBudgetService) GetProject(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockBudgetService) DeactivateProject(ctx context.Context, projectID string, actorID string) error {
	args := m.Called(ctx, projectID, actorID)
	return args.Error(0)
}

func (m *MockBudgetService) RegisterExpense(ctx context.Context, projectID string, req dto.RegisterExpenseRequest, actorID string) (*domain.Expense, error) {
	args := m.Called(ctx, projectID, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockBudgetService) GetBudgetSummary(ctx context.Context, projectID string) (*domain.BudgetSummary, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetSummary), args.Error(1)
}

func (m *MockBudgetService) ListExpenses(ctx context.Context, projectID string, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	args := m.Called(ctx, projectID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Expense), returnedNextToken, args.Error(2)
}

func (m *MockBudgetService) DeactivateExpense(ctx context.Context, expenseID string, actorID string) error {
	args := m.Called(ctx, expenseID, actorID)
	return args.Error(0)
}

// --- Mock ProcurementService ---
type MockProcurementService struct {
	mock.Mock
}

var _ portssvc.ProcurementSvc = (*MockProcurementService)(nil)

func (m *MockProcurementService) RecordMaterialPurchase(ctx context.Context, projectID string, req dto.RecordPurchaseRequest, actorID string) (*domain.Expense, *domain.MovementRecord, error) {
	args := m.Called(ctx, projectID, req, actorID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Expense), args.Get(1).(*domain.MovementRecord), args.Error(2)
}

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

func (m *MockReportingService) MonthlyExpenseSummary(ctx context.Context, projectID string) ([]domain.MonthlyExpenseTotal, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyExpenseTotal), args.Error(1)
}

func (m *MockReportingService) MonthlyMovementSummary(ctx context.Context, filter domain.MovementReportFilter) ([]domain.MonthlyMovementTotal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyMovementTotal), args.Error(1)
}
