package services

import (
	portsrepo "github.com/SscSPs/farm_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_ledger/internal/core/ports/services"
	"github.com/SscSPs/farm_ledger/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, rec *metrics.Recorder) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Every writer records its actor through the same resolver
	container.Actor = NewActorResolver(repos.UserRepo)

	container.Material = NewMaterialService(
		repos.TxManager,
		repos.MaterialRepo,
		repos.MovementRepo,
		WithExpenseLinkage(repos.ExpenseRepo, repos.ProjectRepo),
		WithMaterialActorResolver(container.Actor),
		WithMaterialMetrics(rec),
	)

	container.Budget = NewBudgetService(
		repos.TxManager,
		repos.ProjectRepo,
		repos.ExpenseRepo,
		WithBudgetActorResolver(container.Actor),
		WithBudgetMetrics(rec),
	)

	container.Procurement = NewProcurementService(
		repos,
		WithProcurementActorResolver(container.Actor),
		WithProcurementMetrics(rec),
	)

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		WithReportingProjectReader(repos.ProjectRepo),
		WithReportingMaterialReader(repos.MaterialRepo),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.MaterialSvcFacade = (*materialService)(nil)
	_ portssvc.BudgetSvcFacade   = (*budgetService)(nil)
	_ portssvc.ProcurementSvc    = (*procurementService)(nil)
)
