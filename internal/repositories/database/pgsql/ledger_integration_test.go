package pgsql_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/farm_ledger/internal/apperrors"
	"github.com/SscSPs/farm_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/farm_ledger/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger/internal/core/services"
	"github.com/SscSPs/farm_ledger/internal/dto"
	"github.com/SscSPs/farm_ledger/internal/repositories/database/pgsql"
	"github.com/SscSPs/farm_ledger/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// LedgerIntegrationSuite runs the ledgers against a real PostgreSQL instance.
// It is skipped unless PGSQL_TEST_URL is set.
type LedgerIntegrationSuite struct {
	suite.Suite
	pool      *pgxpool.Pool
	container *portssvc.ServiceContainer
}

func TestLedgerIntegrationSuite(t *testing.T) {
	if os.Getenv("PGSQL_TEST_URL") == "" {
		t.Skip("PGSQL_TEST_URL not set, skipping PostgreSQL integration tests")
	}
	suite.Run(t, new(LedgerIntegrationSuite))
}

func (s *LedgerIntegrationSuite) SetupSuite() {
	url := os.Getenv("PGSQL_TEST_URL")

	migrationDB, err := sql.Open("pgx", url)
	s.Require().NoError(err)
	defer migrationDB.Close()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	s.Require().NoError(err)
	m, err := migrate.NewWithDatabaseInstance("file://../../../../migrations", "postgres", driver)
	s.Require().NoError(err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		s.Require().NoError(err)
	}

	s.pool, err = database.NewPgxPool(context.Background(), url, database.PoolOptions{
		LockTimeout: 5 * time.Second,
		MaxConns:    30,
		PingOnStart: true,
	})
	s.Require().NoError(err)

	s.container = services.NewServiceContainer(pgsql.NewRepositoryProvider(s.pool), nil)
}

func (s *LedgerIntegrationSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
}

func (s *LedgerIntegrationSuite) createMaterial(category domain.MaterialCategory, stock int64) *domain.Material {
	material, err := s.container.Material.CreateMaterial(context.Background(), dto.CreateMaterialRequest{
		Name:         "Cement " + uuid.NewString(),
		Unit:         domain.UnitBag,
		Category:     category,
		InitialStock: decimal.NewFromInt(stock),
	}, "")
	s.Require().NoError(err)
	return material
}

func (s *LedgerIntegrationSuite) createProject(allocation int64) *domain.Project {
	project, err := s.container.Budget.CreateProject(context.Background(), dto.CreateProjectRequest{
		Name:             "Barn " + uuid.NewString(),
		BudgetAllocation: decimal.NewFromInt(allocation),
		StartDate:        time.Now().UTC(),
	}, "")
	s.Require().NoError(err)
	return project
}

func (s *LedgerIntegrationSuite) TestConcurrentDecreasesNeverOverdraw() {
	ctx := context.Background()
	material := s.createMaterial(domain.CategoryFarm, 100)

	const workers = 21
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		rejected int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.container.Material.ApplyMovement(ctx, material.MaterialID, dto.ApplyMovementRequest{
				Type:     domain.MovementDecrease,
				Quantity: decimal.NewFromInt(5),
			}, "")
			if err != nil {
				mu.Lock()
				defer mu.Unlock()
				s.ErrorIs(err, apperrors.ErrInsufficientStock)
				rejected++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, rejected)
	balance, err := s.container.Material.GetBalance(ctx, material.MaterialID)
	s.Require().NoError(err)
	s.True(balance.IsZero(), "balance = %s", balance)

	audit, err := s.container.Material.VerifyBalance(ctx, material.MaterialID)
	s.Require().NoError(err)
	s.True(audit.Consistent)
	s.Equal(20, audit.MovementsUsed)
}

func (s *LedgerIntegrationSuite) TestConcurrentExpensesStayWithinAllocation() {
	ctx := context.Background()
	project := s.createProject(1000)

	const workers = 25
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.container.Budget.RegisterExpense(ctx, project.ProjectID, dto.RegisterExpenseRequest{
				Category:    "labour",
				Amount:      decimal.NewFromInt(100),
				ExpenseDate: time.Now().UTC(),
				Description: "day crew",
			}, "")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				accepted++
				return
			}
			s.ErrorIs(err, apperrors.ErrBudgetExceeded)
		}()
	}
	wg.Wait()

	s.Equal(10, accepted)
	summary, err := s.container.Budget.GetBudgetSummary(ctx, project.ProjectID)
	s.Require().NoError(err)
	s.True(summary.Remaining.IsZero())
	s.Equal(10, summary.ExpenseCount)
}

func (s *LedgerIntegrationSuite) TestPurchaseLinksExpenseAndMovement() {
	ctx := context.Background()
	project := s.createProject(500)
	material := s.createMaterial(domain.CategoryConstruction, 0)

	expense, movement, err := s.container.Procurement.RecordMaterialPurchase(ctx, project.ProjectID, dto.RecordPurchaseRequest{
		MaterialID: material.MaterialID,
		Quantity:   decimal.NewFromInt(20),
		Expense: dto.RegisterExpenseRequest{
			Category:    "cement",
			Amount:      decimal.NewFromInt(300),
			ExpenseDate: time.Now().UTC(),
			Description: "20 bags",
		},
	}, "")
	s.Require().NoError(err)
	s.Equal(expense.ExpenseID, movement.LinkedExpenseID)
	s.True(movement.BalanceAfter.Equal(decimal.NewFromInt(20)))

	_, _, err = s.container.Procurement.RecordMaterialPurchase(ctx, project.ProjectID, dto.RecordPurchaseRequest{
		MaterialID: material.MaterialID,
		Quantity:   decimal.NewFromInt(20),
		Expense: dto.RegisterExpenseRequest{
			Category:    "cement",
			Amount:      decimal.NewFromInt(300),
			ExpenseDate: time.Now().UTC(),
			Description: "20 more bags",
		},
	}, "")
	s.ErrorIs(err, apperrors.ErrBudgetExceeded)

	balance, err := s.container.Material.GetBalance(ctx, material.MaterialID)
	s.Require().NoError(err)
	s.True(balance.Equal(decimal.NewFromInt(20)))
}
