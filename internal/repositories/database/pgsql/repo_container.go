package pgsql

import (
	portsrepo "github.com/SscSPs/farm_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:     NewTransactionManager(dbPool),
		MaterialRepo:  newPgxMaterialRepository(dbPool),
		MovementRepo:  newPgxMovementRepository(dbPool),
		ProjectRepo:   newPgxProjectRepository(dbPool),
		ExpenseRepo:   newPgxExpenseRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
		UserRepo:      newPgxUserRepository(dbPool),
	}
}
